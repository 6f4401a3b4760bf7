// Package static embeds the static assets served under /static.
package static

import (
	"embed"
	"io/fs"
)

//go:embed assets
var assetsFS embed.FS

// Assets returns the embedded static files rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		// The assets directory is embedded at compile time.
		panic(err)
	}
	return sub
}
