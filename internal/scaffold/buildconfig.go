package scaffold

import (
	"strings"

	"github.com/campus42/skel/internal/defs"
)

// baseCompilerFlags are always present in generated Makefiles.
var baseCompilerFlags = []string{"-Wall", "-Wextra", "-Werror"}

// BuildConfig holds the compile and link settings encoded into the
// generated Makefile. Derived once per invocation and never mutated.
type BuildConfig struct {
	Compiler      string
	CompilerFlags []string
	LinkerFlags   []string
}

// DeriveBuildConfig computes the build configuration from the language
// choice, link mode and dependency presence. Linker flags follow the
// dependency order (library before graphics).
func DeriveBuildConfig(lang Language, compiler string, link LinkMode, deps []DependencySpec) BuildConfig {
	if compiler == "" {
		compiler = lang.DefaultCompiler()
	}

	cfg := BuildConfig{
		Compiler:      compiler,
		CompilerFlags: append([]string(nil), baseCompilerFlags...),
	}

	if link == LinkRelative {
		cfg.CompilerFlags = append(cfg.CompilerFlags, "-I"+defs.IncludesDir)
	}

	for _, dep := range deps {
		switch dep.Kind {
		case DepLibrary:
			cfg.LinkerFlags = append(cfg.LinkerFlags, "-L"+dep.LocalPath, "-lft")
		case DepGraphics:
			cfg.LinkerFlags = append(cfg.LinkerFlags, "-L"+dep.LocalPath, "-lmlx")
		}
	}

	return cfg
}

// CompilerFlagLine returns the space-joined CFLAGS value.
func (b BuildConfig) CompilerFlagLine() string {
	return strings.Join(b.CompilerFlags, " ")
}

// LinkerFlagLine returns the space-joined LDFLAGS value.
func (b BuildConfig) LinkerFlagLine() string {
	return strings.Join(b.LinkerFlags, " ")
}

// SubBuildDirs returns the dependency subdirectories the Makefile
// recurses into, in dependency order.
func SubBuildDirs(deps []DependencySpec) []string {
	dirs := make([]string, 0, len(deps))
	for _, dep := range deps {
		dirs = append(dirs, dep.LocalPath)
	}
	return dirs
}
