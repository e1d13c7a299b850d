package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	defaults, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if defaults != (Defaults{}) {
		t.Errorf("Load() = %+v, want zero defaults", defaults)
	}
}

func TestRememberFirstUse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStoreAt(dir)

	if err := store.Remember(KindLibrary, "https://example.com/libft", false); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}

	// Persisted to disk: a fresh store sees the value.
	defaults, err := NewStoreAt(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if defaults.LibraryURL != "https://example.com/libft" {
		t.Errorf("LibraryURL = %q, want the remembered URL", defaults.LibraryURL)
	}
}

func TestRememberSameURLStillRequiresForce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStoreAt(dir)
	if err := store.Remember(KindLibrary, "https://example.com/libft", false); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}

	before, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read defaults file: %v", err)
	}

	// Once a default exists, re-supplying even the identical URL is
	// refused without force.
	err = store.Remember(KindLibrary, "https://example.com/libft", false)
	if !errors.Is(err, ErrDefaultExists) {
		t.Errorf("Remember() same URL error = %v, want ErrDefaultExists", err)
	}

	after, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read defaults file: %v", err)
	}
	if string(before) != string(after) {
		t.Error("defaults file changed on a refused Remember")
	}

	// With force the identical URL is accepted and the file stays put.
	if err := store.Remember(KindLibrary, "https://example.com/libft", true); err != nil {
		t.Errorf("Remember() same URL with force error = %v, want nil", err)
	}
}

func TestRememberDifferentURLRequiresForce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStoreAt(dir)
	if err := store.Remember(KindLibrary, "https://example.com/libft", false); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}

	err := store.Remember(KindLibrary, "https://example.com/other", false)
	if !errors.Is(err, ErrDefaultExists) {
		t.Fatalf("Remember() error = %v, want ErrDefaultExists", err)
	}

	// File is left untouched on refusal.
	defaults, err := NewStoreAt(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if defaults.LibraryURL != "https://example.com/libft" {
		t.Errorf("LibraryURL = %q, want the original URL", defaults.LibraryURL)
	}
}

func TestRememberForceOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStoreAt(dir)
	if err := store.Remember(KindGraphics, "https://example.com/mlx", false); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}
	if err := store.Remember(KindGraphics, "https://example.com/mlx-fork", true); err != nil {
		t.Fatalf("Remember() with force error = %v", err)
	}

	defaults, err := NewStoreAt(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if defaults.GraphicsURL != "https://example.com/mlx-fork" {
		t.Errorf("GraphicsURL = %q, want the forced URL", defaults.GraphicsURL)
	}
}

func TestRememberKindsAreIndependent(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	if err := store.Remember(KindLibrary, "https://example.com/libft", false); err != nil {
		t.Fatalf("Remember(library) error = %v", err)
	}
	if err := store.Remember(KindGraphics, "https://example.com/mlx", false); err != nil {
		t.Fatalf("Remember(graphics) error = %v", err)
	}

	defaults := store.Defaults()
	if defaults.LibraryURL == "" || defaults.GraphicsURL == "" {
		t.Errorf("Defaults() = %+v, want both kinds set", defaults)
	}
}

func TestRememberUnknownKind(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	err := store.Remember("toolchain", "https://example.com/x", false)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Remember() error = %v, want ErrUnknownKind", err)
	}
}

func TestRememberEmptyURLIsNoOp(t *testing.T) {
	t.Parallel()

	store := NewStoreAt(t.TempDir())
	if err := store.Remember(KindLibrary, "", false); err != nil {
		t.Errorf("Remember() empty URL error = %v, want nil", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("empty URL must not create the defaults file")
	}
}

func TestDefaultsFileFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewStoreAt(dir)
	if err := store.Remember(KindLibrary, "https://example.com/libft", false); err != nil {
		t.Fatalf("Remember() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "defaults.yaml"))
	if err != nil {
		t.Fatalf("read defaults file: %v", err)
	}
	if !strings.Contains(string(data), "library_url: https://example.com/libft") {
		t.Errorf("defaults file content:\n%s", data)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	if err := os.WriteFile(path, []byte("defaults: [unclosed"), 0o644); err != nil {
		t.Fatalf("write malformed file: %v", err)
	}

	if _, err := NewStoreAt(dir).Load(); err == nil {
		t.Error("Load() = nil, want error for malformed YAML")
	}
}
