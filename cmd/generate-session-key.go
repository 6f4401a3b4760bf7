package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var generateKeyCmd = &cobra.Command{
	Use:   "generate-session-key",
	Short: "Generate a session key for signing cookies",
	Long: `Generate a random key used to sign and encrypt session cookies.

Add the generated key to your configuration file as session_key, or set it
via the CYBERSAFE_SESSION_KEY environment variable.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("failed to generate session key: %w", err)
		}

		fmt.Println("Add this to your config file:")
		fmt.Printf("session_key: %s\n", hex.EncodeToString(key))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateKeyCmd)
}
