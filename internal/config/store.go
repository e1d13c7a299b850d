package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/campus42/skel/internal/defs"
)

// Store provides thread-safe access to the persisted defaults file.
// The file lives outside any project tree, under the user config
// directory, and is read once at startup and written at most once per
// invocation unless explicitly overridden.
type Store struct {
	mu       sync.Mutex
	dir      string
	defaults Defaults
	loaded   bool
}

// NewStore creates a Store rooted at the user config directory.
// The SKEL_CONFIG_DIR environment variable overrides the location.
func NewStore() *Store {
	if envDir := os.Getenv("SKEL_CONFIG_DIR"); envDir != "" {
		return &Store{dir: filepath.Clean(envDir)}
	}

	base, err := os.UserConfigDir()
	if err != nil {
		// Fall back to the working directory; Load treats a missing
		// file as empty defaults either way.
		base = "."
	}
	return &Store{dir: filepath.Join(base, defs.ConfigSubdir)}
}

// NewStoreAt creates a Store rooted at an explicit directory (for tests).
func NewStoreAt(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Path returns the location of the defaults file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, defs.DefaultsYAML)
}

// Load reads the defaults file. A missing file yields zero defaults.
func (s *Store) Load() (Defaults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			s.defaults = Defaults{}
			s.loaded = true
			return s.defaults, nil
		}
		return Defaults{}, fmt.Errorf("read defaults: %w", err)
	}

	var wrapper defaultsFileWrapper
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Defaults{}, fmt.Errorf("parse defaults: %w", err)
	}

	s.defaults = wrapper.Defaults
	s.loaded = true
	return s.defaults, nil
}

// Defaults returns the in-memory defaults, loading them on first use.
func (s *Store) Defaults() Defaults {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		d, err := s.Load()
		if err != nil {
			return Defaults{}
		}
		return d
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaults
}

// Remember persists a default URL for the given dependency kind.
// The first URL for a kind is written; once a default exists, any
// further Remember requires force, even for the identical URL.
// Without force ErrDefaultExists is returned and the file is left
// unchanged.
func (s *Store) Remember(kind, url string, force bool) error {
	if !IsValidKind(kind) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if url == "" {
		return nil
	}

	if !s.loaded {
		if _, err := s.Load(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var field *string
	switch kind {
	case KindLibrary:
		field = &s.defaults.LibraryURL
	case KindGraphics:
		field = &s.defaults.GraphicsURL
	}

	if *field != "" && !force {
		return fmt.Errorf("%w: %s default is %q", ErrDefaultExists, kind, *field)
	}
	if *field == url {
		return nil
	}

	*field = url
	return s.saveLocked()
}

// saveLocked persists the defaults atomically. Caller must hold mu.
func (s *Store) saveLocked() error {
	if err := os.MkdirAll(s.dir, defs.DirPerm); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(defaultsFileWrapper{Defaults: s.defaults})
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}

	return atomicWrite(s.Path(), data)
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".skel-defaults-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
