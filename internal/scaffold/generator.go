package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/campus42/skel/internal/defs"
	"github.com/campus42/skel/internal/template"
	"github.com/campus42/skel/pkg/version"
)

// Fetcher vendors a remote repository into a local path, stripping its
// version-control metadata.
type Fetcher interface {
	Vendor(ctx context.Context, url, path string) error
}

// RepoInitializer initializes a version-control repository and
// registers remotes.
type RepoInitializer interface {
	InitRepository(ctx context.Context, dir string) error
	AddRemote(ctx context.Context, dir, name, url string) error
}

// Reporter receives step titles as generation progresses.
type Reporter interface {
	Step(title string)
}

// Generator scaffolds a project from resolved options.
type Generator interface {
	// Generate creates the skeleton described by opts and returns a
	// summary of what was written. Fetch and remote-registration
	// problems are reported as warnings on the result; filesystem
	// failures are fatal.
	Generate(ctx context.Context, opts Options) (*Result, error)

	// SetReporter wires progress reporting; a nil reporter disables it.
	SetReporter(r Reporter)
}

// skeletonGenerator is the concrete implementation of Generator.
type skeletonGenerator struct {
	renderer template.Renderer
	fetcher  Fetcher         // may be nil when fetching is unavailable
	repo     RepoInitializer // may be nil when git is unavailable
	reporter Reporter        // may be nil
	logger   *slog.Logger
}

// SetReporter wires progress reporting.
func (g *skeletonGenerator) SetReporter(r Reporter) {
	g.reporter = r
}

// step reports a progress step when a reporter is configured.
func (g *skeletonGenerator) step(format string, args ...any) {
	if g.reporter != nil {
		g.reporter.Step(fmt.Sprintf(format, args...))
	}
}

// NewGenerator creates a Generator with the given dependencies.
func NewGenerator(renderer template.Renderer, fetcher Fetcher, repo RepoInitializer, logger *slog.Logger) Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &skeletonGenerator{
		renderer: renderer,
		fetcher:  fetcher,
		repo:     repo,
		logger:   logger,
	}
}

// Generate creates the project skeleton.
func (g *skeletonGenerator) Generate(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := filepath.Clean(filepath.Join(opts.ParentDir, opts.Name))
	deps := opts.Dependencies()

	mainSpec := ProjectSpec{
		Name:      opts.Name,
		TargetDir: root,
		Language:  opts.Language,
		LinkMode:  opts.LinkMode,
	}
	if err := mainSpec.Validate(); err != nil {
		return nil, err
	}

	specs := []ProjectSpec{mainSpec}
	for _, sub := range opts.Subprojects {
		spec := ProjectSpec{
			Name:      sub,
			TargetDir: filepath.Join(root, sub),
			Language:  opts.Language,
			LinkMode:  opts.LinkMode,
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("subproject %q: %w", sub, err)
		}
		specs = append(specs, spec)
	}

	g.logger.Info("scaffolding project",
		"root", root,
		"name", opts.Name,
		"language", string(opts.Language),
		"link", string(opts.LinkMode),
		"dependencies", len(deps),
	)

	result := &Result{ProjectRoot: root}

	// Step 1: write every skeleton. Dependencies are wired into the
	// top-level skeleton only; subprojects share the vendored copies
	// through the top-level repository.
	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var specDeps []DependencySpec
		if i == 0 {
			specDeps = deps
		}
		build := DeriveBuildConfig(spec.Language, opts.Compiler, spec.LinkMode, specDeps)
		g.step("Writing skeleton %s", spec.Name)
		if err := g.writeSkeleton(root, spec, build, specDeps, result); err != nil {
			return nil, err
		}
	}

	// Step 2: vendor the dependencies. Failures are reported and
	// skipped; the run continues without that dependency's content.
	for _, dep := range deps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.SkipFetch {
			continue
		}
		g.step("Fetching %s into %s/", string(dep.Kind), dep.LocalPath)
		if err := g.vendorDependency(ctx, root, dep, result); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("fetch %s from %s: %s (fetch it manually into %s/)", dep.Kind, dep.SourceURL, err, dep.LocalPath))
			g.logger.Warn("dependency fetch failed",
				"kind", string(dep.Kind),
				"url", dep.SourceURL,
				"error", err,
			)
		}
	}

	// Step 3: initialize the repository and register remotes.
	if len(opts.Remotes) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.step("Initializing repository")
		g.initRepository(ctx, root, opts.Remotes, result)
	}

	g.logger.Info("project scaffolded",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
		"warnings", len(result.Warnings),
	)

	return result, nil
}

// writeSkeleton creates the directory layout and renders the starter
// header, source, Makefile and README for one ProjectSpec.
func (g *skeletonGenerator) writeSkeleton(root string, spec ProjectSpec, build BuildConfig, deps []DependencySpec, result *Result) error {
	for _, dir := range []string{defs.SrcsDir, defs.IncludesDir} {
		dirPath := filepath.Join(spec.TargetDir, dir)
		if err := os.MkdirAll(dirPath, defs.DirPerm); err != nil {
			return fmt.Errorf("mkdir %s: %w", dirPath, err)
		}
		result.CreatedDirs = append(result.CreatedDirs, relToRoot(root, dirPath))
	}

	graphics := false
	for _, dep := range deps {
		if dep.Kind == DepGraphics {
			graphics = true
		}
	}

	tmplCtx := template.NewContext(
		template.WithProject(spec.Name),
		template.WithExtensions(spec.Language.SourceExt(), spec.Language.HeaderExt()),
		template.WithBuild(build.Compiler, build.CompilerFlagLine(), build.LinkerFlagLine()),
		template.WithSubBuilds(SubBuildDirs(deps)),
		template.WithGraphics(graphics),
		template.WithRelativeInclude(spec.LinkMode == LinkRelative),
		template.WithVersion(version.GetVersion()),
		template.WithCreatedAt(time.Now().UTC().Format(time.RFC3339)),
	)

	artifacts := []struct {
		tmpl string
		dest string
	}{
		{template.HeaderTemplate, filepath.Join(defs.IncludesDir, tmplCtx.HeaderFile)},
		{template.SourceTemplate, filepath.Join(defs.SrcsDir, tmplCtx.SourceFile)},
		{template.MakefileTemplate, defs.Makefile},
		{template.ReadmeTemplate, defs.ReadmeMD},
	}

	for _, a := range artifacts {
		content, err := g.renderer.Render(a.tmpl, tmplCtx)
		if err != nil {
			return fmt.Errorf("render %s: %w", a.tmpl, err)
		}
		destPath := filepath.Join(spec.TargetDir, a.dest)
		if err := os.WriteFile(destPath, content, defs.FilePerm); err != nil {
			return fmt.Errorf("write %s: %w", destPath, err)
		}
		result.CreatedFiles = append(result.CreatedFiles, relToRoot(root, destPath))
	}

	return nil
}

// vendorDependency fetches one dependency into its subdirectory.
func (g *skeletonGenerator) vendorDependency(ctx context.Context, root string, dep DependencySpec, result *Result) error {
	if g.fetcher == nil {
		return fmt.Errorf("no fetcher available")
	}
	if dep.SourceURL == "" {
		return fmt.Errorf("no repository URL configured")
	}

	localPath := filepath.Join(root, dep.LocalPath)
	g.logger.Info("vendoring dependency",
		"kind", string(dep.Kind),
		"url", dep.SourceURL,
		"path", localPath,
	)

	if err := g.fetcher.Vendor(ctx, dep.SourceURL, localPath); err != nil {
		return err
	}

	result.VendoredDeps = append(result.VendoredDeps, dep.LocalPath)
	return nil
}

// initRepository initializes the repository and registers remotes.
// Remote registration problems (duplicate names, for example) are
// user-visible warnings, not fatal errors.
func (g *skeletonGenerator) initRepository(ctx context.Context, root string, remotes []Remote, result *Result) {
	if g.repo == nil {
		result.Warnings = append(result.Warnings, "git is not available; repository not initialized")
		return
	}

	if err := g.repo.InitRepository(ctx, root); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("initialize repository: %s", err))
		return
	}

	for _, remote := range remotes {
		if err := g.repo.AddRemote(ctx, root, remote.Name, remote.URL); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("register remote %s: %s", remote.Name, err))
			continue
		}
		result.Remotes = append(result.Remotes, remote.Name)
	}
}

// relToRoot returns path relative to root, falling back to path itself.
func relToRoot(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
