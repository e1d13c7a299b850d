// Package defs holds file and directory names shared across the project.
package defs

import "io/fs"

// Skeleton directory names inside a generated project.
const (
	SrcsDir     = "srcs"
	IncludesDir = "includes"
	ObjsDir     = "objs"

	// LibraryDir is where the utility-library dependency is vendored.
	LibraryDir = "libft"

	// GraphicsDir is where the graphics-library dependency is vendored.
	GraphicsDir = "minilibx"
)

// Generated file names.
const (
	Makefile = "Makefile"
	ReadmeMD = "README.md"
)

// Persisted configuration.
const (
	// ConfigSubdir is the directory under the user config dir that holds
	// the defaults file.
	ConfigSubdir = "skel"

	// DefaultsYAML is the persisted defaults file name.
	DefaultsYAML = "defaults.yaml"
)

// Filesystem permissions for generated content.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)
