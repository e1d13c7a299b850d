// Package vcs wraps the system git binary for repository initialization,
// remote registration and dependency vendoring.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds local git operations. Network operations
// (clone) use DefaultFetchTimeout instead.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultFetchTimeout = 5 * time.Minute
)

// Manager runs git operations against the system binary.
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a Manager. A nil logger discards output.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{logger: logger.With("module", "vcs")}
}

// Available reports whether the system git binary can be found.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepository reports whether dir is already a git repository root.
func (m *Manager) IsRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// InitRepository initializes a git repository in dir if none exists.
func (m *Manager) InitRepository(ctx context.Context, dir string) error {
	if m.IsRepository(dir) {
		m.logger.Debug("repository already initialized", "dir", dir)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	if _, err := execGit(ctx, dir, "init"); err != nil {
		return fmt.Errorf("init repository: %w", err)
	}

	m.logger.Debug("repository initialized", "dir", dir)
	return nil
}

// AddRemote registers a remote under the given name. The directory
// must already be a repository root. Registering a name that already
// exists returns ErrRemoteExists; re-registration is not idempotent
// and callers should surface the error to the user.
func (m *Manager) AddRemote(ctx context.Context, dir, name, url string) error {
	if !m.IsRepository(dir) {
		return fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	if _, err := execGit(ctx, dir, "remote", "add", name, url); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return fmt.Errorf("%w: %s", ErrRemoteExists, name)
		}
		return fmt.Errorf("add remote %s: %w", name, err)
	}

	m.logger.Debug("remote registered", "name", name, "url", url)
	return nil
}

// Vendor clones the repository at url into path and strips its
// version-control metadata so the content is vendored as plain files.
func (m *Manager) Vendor(ctx context.Context, url, path string) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultFetchTimeout)
	defer cancel()

	// Git resolves the clone destination against its working directory,
	// which execGit sets to the parent. The destination must be absolute
	// so a relative path does not land inside itself.
	dest, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve destination %s: %w", path, err)
	}

	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	m.logger.Debug("cloning dependency", "url", url, "path", dest)
	if _, err := execGit(ctx, parent, "clone", "--depth", "1", url, dest); err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}

	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return fmt.Errorf("strip git metadata: %w", err)
	}

	m.logger.Debug("dependency vendored", "path", dest)
	return nil
}

// execGit executes a git command in the given directory and returns stdout.
// It sets GIT_TERMINAL_PROMPT=0 and LC_ALL=C for consistent behavior.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("system git lookup: %w", ErrSystemGitNotFound)
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"LC_ALL=C",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if len(args) > 0 {
			return "", fmt.Errorf("git %s: %s: %w", args[0], stderrStr, err)
		}
		return "", fmt.Errorf("git: %s: %w", stderrStr, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}
