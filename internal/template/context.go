package template

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Context provides data for skeleton template rendering.
// All fields are exported for use with Go's text/template package.
type Context struct {
	// Project
	Name  string // project name, e.g. "foo"
	Title string // display name for documentation, e.g. "Foo"

	// Language
	SourceExt string // "c" or "cpp"
	HeaderExt string // "h" or "hpp"

	// Derived file names
	Guard       string // include guard, e.g. "FOO_H"
	HeaderFile  string // e.g. "foo.h"
	SourceFile  string // e.g. "foo.c"
	IncludePath string // include path used by the starter source

	// Build
	Compiler      string
	CompilerFlags string   // space-joined CFLAGS value
	LinkerFlags   string   // space-joined LDFLAGS value
	SubBuilds     []string // dependency subdirectories, library before graphics

	// Dependency switches
	Graphics bool // inject the graphics header include

	// Meta
	Version   string // skel version that generated the skeleton
	CreatedAt string // ISO 8601 timestamp

	// relativeInclude switches IncludePath derivation; templates only
	// see the derived IncludePath.
	relativeInclude bool
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// NewContext creates a Context with sensible defaults, applies the
// provided options, then derives the guard, file names and include path.
func NewContext(opts ...ContextOption) *Context {
	ctx := &Context{
		SourceExt: "c",
		HeaderExt: "h",
		Compiler:  "cc",
	}

	for _, opt := range opts {
		opt(ctx)
	}

	ctx.Guard = DeriveGuard(ctx.Name, ctx.HeaderExt)
	ctx.HeaderFile = ctx.Name + "." + ctx.HeaderExt
	ctx.SourceFile = ctx.Name + "." + ctx.SourceExt
	ctx.IncludePath = DeriveIncludePath(ctx.HeaderFile, ctx.relativeInclude)
	if ctx.Title == "" {
		ctx.Title = deriveTitle(ctx.Name)
	}

	return ctx
}

// WithProject sets the project name.
func WithProject(name string) ContextOption {
	return func(c *Context) {
		c.Name = name
	}
}

// WithExtensions sets the source and header file extensions.
func WithExtensions(sourceExt, headerExt string) ContextOption {
	return func(c *Context) {
		if sourceExt != "" {
			c.SourceExt = sourceExt
		}
		if headerExt != "" {
			c.HeaderExt = headerExt
		}
	}
}

// WithBuild sets the compiler and flag lines.
func WithBuild(compiler, compilerFlags, linkerFlags string) ContextOption {
	return func(c *Context) {
		if compiler != "" {
			c.Compiler = compiler
		}
		c.CompilerFlags = compilerFlags
		c.LinkerFlags = linkerFlags
	}
}

// WithSubBuilds sets the dependency subdirectories invoked by the Makefile.
func WithSubBuilds(dirs []string) ContextOption {
	return func(c *Context) {
		c.SubBuilds = dirs
	}
}

// WithGraphics toggles the graphics header include.
func WithGraphics(on bool) ContextOption {
	return func(c *Context) {
		c.Graphics = on
	}
}

// WithRelativeInclude makes the starter source include the bare header
// file name instead of the parent-relative path.
func WithRelativeInclude(on bool) ContextOption {
	return func(c *Context) {
		c.relativeInclude = on
	}
}

// WithVersion sets the generating skel version.
func WithVersion(version string) ContextOption {
	return func(c *Context) {
		c.Version = version
	}
}

// WithCreatedAt sets the skeleton creation timestamp.
func WithCreatedAt(timestamp string) ContextOption {
	return func(c *Context) {
		c.CreatedAt = timestamp
	}
}

// DeriveGuard builds the include guard from the project name:
// the uppercased name with non-identifier characters mapped to
// underscores, suffixed with the uppercased header extension.
func DeriveGuard(name, headerExt string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + "_" + strings.ToUpper(headerExt)
}

// DeriveIncludePath returns the include path used by the starter source:
// the bare header name in relative mode, the fixed parent path to the
// include directory otherwise.
func DeriveIncludePath(headerFile string, relative bool) string {
	if relative {
		return headerFile
	}
	return "../includes/" + headerFile
}

// deriveTitle produces a human-readable title from the project name.
func deriveTitle(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return cases.Title(language.English).String(cleaned)
}
