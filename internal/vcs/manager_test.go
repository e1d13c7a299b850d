package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("system git not available")
	}
}

func TestInitRepository(t *testing.T) {
	t.Parallel()
	requireGit(t)

	dir := t.TempDir()
	m := NewManager(nil)

	if m.IsRepository(dir) {
		t.Fatal("fresh directory reported as repository")
	}

	if err := m.InitRepository(context.Background(), dir); err != nil {
		t.Fatalf("InitRepository() error = %v", err)
	}
	if !m.IsRepository(dir) {
		t.Error("directory not a repository after init")
	}

	// Re-initializing is a no-op.
	if err := m.InitRepository(context.Background(), dir); err != nil {
		t.Errorf("InitRepository() on existing repository error = %v", err)
	}
}

func TestAddRemote(t *testing.T) {
	t.Parallel()
	requireGit(t)

	dir := t.TempDir()
	m := NewManager(nil)
	ctx := context.Background()

	if err := m.InitRepository(ctx, dir); err != nil {
		t.Fatalf("InitRepository() error = %v", err)
	}

	if err := m.AddRemote(ctx, dir, "origin", "git@host:me/foo.git"); err != nil {
		t.Fatalf("AddRemote() error = %v", err)
	}

	out, err := execGit(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		t.Fatalf("remote get-url: %v", err)
	}
	if out != "git@host:me/foo.git" {
		t.Errorf("origin URL = %q", out)
	}

	err = m.AddRemote(ctx, dir, "origin", "git@host:me/other.git")
	if !errors.Is(err, ErrRemoteExists) {
		t.Errorf("AddRemote() duplicate error = %v, want ErrRemoteExists", err)
	}
}

// newSourceRepo builds a local repository with one committed file to
// clone from.
func newSourceRepo(t *testing.T, ctx context.Context) string {
	t.Helper()

	src := t.TempDir()
	if _, err := execGit(ctx, src, "init"); err != nil {
		t.Fatalf("git init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "libft.h"), []byte("#ifndef LIBFT_H\n#define LIBFT_H\n#endif\n"), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	if _, err := execGit(ctx, src, "add", "."); err != nil {
		t.Fatalf("git add: %v", err)
	}
	if _, err := execGit(ctx, src,
		"-c", "user.email=test@example.com",
		"-c", "user.name=test",
		"commit", "-m", "initial"); err != nil {
		t.Fatalf("git commit: %v", err)
	}
	return src
}

func TestVendor(t *testing.T) {
	t.Parallel()
	requireGit(t)

	ctx := context.Background()
	m := NewManager(nil)
	src := newSourceRepo(t, ctx)

	dest := filepath.Join(t.TempDir(), "project", "libft")
	if err := m.Vendor(ctx, src, dest); err != nil {
		t.Fatalf("Vendor() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "libft.h")); err != nil {
		t.Errorf("vendored file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, ".git")); !os.IsNotExist(err) {
		t.Error("vendored copy still carries .git metadata")
	}
}

func TestVendorRelativePath(t *testing.T) {
	requireGit(t)

	ctx := context.Background()
	m := NewManager(nil)
	src := newSourceRepo(t, ctx)

	// A relative destination, as produced by `skel new foo` run from the
	// parent directory, must resolve against the process cwd rather than
	// git's own working directory.
	t.Chdir(t.TempDir())

	dest := filepath.Join("foo", "libft")
	if err := m.Vendor(ctx, src, dest); err != nil {
		t.Fatalf("Vendor() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "libft.h")); err != nil {
		t.Errorf("vendored file missing at %s: %v", dest, err)
	}
	if _, err := os.Stat(filepath.Join(dest, ".git")); !os.IsNotExist(err) {
		t.Error("vendored copy still carries .git metadata")
	}
	if _, err := os.Stat(filepath.Join("foo", "foo")); !os.IsNotExist(err) {
		t.Error("clone resolved against the wrong working directory")
	}
}

func TestAddRemoteOutsideRepository(t *testing.T) {
	t.Parallel()
	requireGit(t)

	m := NewManager(nil)
	err := m.AddRemote(context.Background(), t.TempDir(), "origin", "git@host:me/foo.git")
	if !errors.Is(err, ErrNotRepository) {
		t.Errorf("AddRemote() error = %v, want ErrNotRepository", err)
	}
}

func TestVendorBadURL(t *testing.T) {
	t.Parallel()
	requireGit(t)

	m := NewManager(nil)
	dest := filepath.Join(t.TempDir(), "libft")

	err := m.Vendor(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"), dest)
	if err == nil {
		t.Error("Vendor() = nil, want error for missing source")
	}
}
