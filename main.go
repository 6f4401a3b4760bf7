package main

import (
	"os"

	"github.com/cybersafe/cybersafe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
