package config

import "errors"

// Error definitions for the config package.
var (
	// ErrDefaultExists is returned when a persisted default would be
	// overwritten without the override flag.
	ErrDefaultExists = errors.New("a default is already configured (pass --save-default to overwrite)")

	// ErrUnknownKind is returned for dependency kinds the store does not track.
	ErrUnknownKind = errors.New("unknown dependency kind")
)
