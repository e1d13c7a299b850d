package vcs

import "errors"

// Error definitions for the vcs package.
var (
	// ErrSystemGitNotFound is returned when the git binary is not in PATH.
	ErrSystemGitNotFound = errors.New("system git binary not found in PATH")

	// ErrNotRepository is returned when a path is not inside a git repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrRemoteExists is returned when registering a remote name that is
	// already configured.
	ErrRemoteExists = errors.New("remote already exists")
)
