// Package scaffold generates C/C++ project skeletons: directory layout,
// starter source and header, a Makefile, vendored dependencies and an
// optional git repository.
package scaffold

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/campus42/skel/internal/defs"
)

// LinkMode selects how the starter source includes its header.
type LinkMode string

const (
	// LinkAbsolute includes the header through the fixed parent path
	// to the include directory.
	LinkAbsolute LinkMode = "absolute"
	// LinkRelative includes the bare header file name and relies on
	// an -I flag instead.
	LinkRelative LinkMode = "relative"
)

// IsValid reports whether the link mode is one of the known values.
func (m LinkMode) IsValid() bool {
	return m == LinkAbsolute || m == LinkRelative
}

// Language selects the source language of the skeleton.
type Language string

const (
	LangC   Language = "c"
	LangCPP Language = "cpp"
)

// IsValid reports whether the language is one of the known values.
func (l Language) IsValid() bool {
	return l == LangC || l == LangCPP
}

// SourceExt returns the source file extension for the language.
func (l Language) SourceExt() string {
	if l == LangCPP {
		return "cpp"
	}
	return "c"
}

// HeaderExt returns the header file extension for the language.
func (l Language) HeaderExt() string {
	if l == LangCPP {
		return "hpp"
	}
	return "h"
}

// DefaultCompiler returns the platform-appropriate compiler name.
func (l Language) DefaultCompiler() string {
	if l == LangCPP {
		return "c++"
	}
	return "cc"
}

// DependencyKind identifies an optional vendored dependency.
type DependencyKind string

const (
	DepLibrary  DependencyKind = "library"
	DepGraphics DependencyKind = "graphics"
)

// DependencySpec describes one vendored dependency. Presence of a spec
// adds linker flags and triggers a fetch; the graphics kind additionally
// injects a header include.
type DependencySpec struct {
	Kind      DependencyKind
	SourceURL string
	LocalPath string // subdirectory under the project root
}

// Remote is a named version-control remote.
type Remote struct {
	Name string
	URL  string
}

// ProjectSpec describes one generated skeleton. One spec exists per
// skeleton: the main project plus zero or more subprojects sharing a
// single top-level repository.
type ProjectSpec struct {
	Name      string
	TargetDir string // directory the skeleton is written into
	Language  Language
	LinkMode  LinkMode
}

// nameRe restricts names to filesystem-safe identifiers without a
// leading dot or dash.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Validate checks the spec invariants.
func (s ProjectSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if !nameRe.MatchString(s.Name) {
		return fmt.Errorf("project name %q is not filesystem-safe", s.Name)
	}
	if !s.Language.IsValid() {
		return fmt.Errorf("invalid language %q: must be one of: c, cpp", string(s.Language))
	}
	if !s.LinkMode.IsValid() {
		return fmt.Errorf("invalid link mode %q: must be one of: absolute, relative", string(s.LinkMode))
	}
	return nil
}

// Options configures a Generate run, resolved from flags or the wizard.
type Options struct {
	ParentDir   string   // directory the project root is created under
	Name        string   // main project name
	Subprojects []string // additional skeletons under the project root

	Language Language
	Compiler string // empty means the language default
	LinkMode LinkMode

	LibraryURL  string // non-empty enables the library dependency
	Graphics    bool   // enables the graphics dependency
	GraphicsURL string // repository URL for the graphics dependency

	Remotes   []Remote
	SkipFetch bool // scaffold without network fetches
}

// Dependencies returns the selected dependencies in the fixed
// library-then-graphics order.
func (o Options) Dependencies() []DependencySpec {
	var deps []DependencySpec
	if o.LibraryURL != "" {
		deps = append(deps, DependencySpec{
			Kind:      DepLibrary,
			SourceURL: o.LibraryURL,
			LocalPath: defs.LibraryDir,
		})
	}
	if o.Graphics {
		deps = append(deps, DependencySpec{
			Kind:      DepGraphics,
			SourceURL: o.GraphicsURL,
			LocalPath: defs.GraphicsDir,
		})
	}
	return deps
}

// Result summarizes the outcome of a Generate run.
type Result struct {
	ProjectRoot  string
	CreatedDirs  []string // relative to the project root
	CreatedFiles []string // relative to the project root
	VendoredDeps []string // dependency subdirectories that were fetched
	Remotes      []string // remote names registered on the repository
	Warnings     []string // non-fatal problems during generation
}

// ParseRemotes resolves remote flag values of the form "name=url" or a
// bare URL. The first bare URL becomes origin; later bare URLs are
// numbered remote2, remote3, and so on.
func ParseRemotes(specs []string) ([]Remote, error) {
	remotes := make([]Remote, 0, len(specs))
	for i, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			return nil, fmt.Errorf("empty remote specification")
		}

		if name, url, ok := strings.Cut(spec, "="); ok && !strings.Contains(name, "/") {
			if name == "" || url == "" {
				return nil, fmt.Errorf("invalid remote %q: expected name=url", spec)
			}
			remotes = append(remotes, Remote{Name: name, URL: url})
			continue
		}

		name := "origin"
		if i > 0 {
			name = fmt.Sprintf("remote%d", i+1)
		}
		remotes = append(remotes, Remote{Name: name, URL: spec})
	}
	return remotes, nil
}
