package template

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed assets
var assetsFS embed.FS

// Assets returns the embedded skeleton templates rooted at the assets
// directory, so template names do not carry the assets/ prefix.
func Assets() (fs.FS, error) {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}
