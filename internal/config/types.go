// Package config persists default repository URLs across skel invocations.
package config

// Dependency kind names accepted by Store.Remember and `skel config set`.
const (
	KindLibrary  = "library"
	KindGraphics = "graphics"
)

// DefaultGraphicsURL is used for --graphics when no URL has been
// supplied or persisted.
const DefaultGraphicsURL = "https://github.com/42Paris/minilibx-linux"

// Defaults holds the remembered repository URLs.
// The zero value means no default has been persisted yet.
type Defaults struct {
	LibraryURL  string `yaml:"library_url"`
	GraphicsURL string `yaml:"graphics_url"`
}

// defaultsFileWrapper wraps Defaults under a top-level key so the file
// stays extensible.
type defaultsFileWrapper struct {
	Defaults Defaults `yaml:"defaults"`
}

// ValidKinds returns the dependency kinds the store tracks.
func ValidKinds() []string {
	return []string{KindLibrary, KindGraphics}
}

// IsValidKind checks if the given name is a tracked dependency kind.
func IsValidKind(kind string) bool {
	return kind == KindLibrary || kind == KindGraphics
}
