package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/campus42/skel/internal/cli/wizard"
	"github.com/campus42/skel/internal/config"
	"github.com/campus42/skel/internal/scaffold"
	"github.com/campus42/skel/internal/template"
	"github.com/campus42/skel/internal/ui"
	"github.com/campus42/skel/internal/update"
	"github.com/campus42/skel/internal/vcs"
	"github.com/campus42/skel/pkg/version"
)

func init() {
	rootCmd.AddCommand(newProjectCmd())
}

// newProjectCmd builds the `skel new` command. Exposed as a factory so
// tests get a fresh flag set per invocation.
func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [project-name] [subproject...]",
		Short: "Scaffold a new project skeleton",
		Long: `Scaffold a new project skeleton.

Creates <project-name>/ with srcs/, includes/, a starter source and
header, and a Makefile. Additional names become subprojects sharing the
top-level repository.

Examples:
  skel new foo                          Minimal C skeleton
  skel new foo --lang cpp               C++ skeleton
  skel new bar --link relative --lib-url https://github.com/me/libft
  skel new app --graphics --remote git@host:me/app.git`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: validateNewFlags,
		RunE:    runNew,
	}

	cmd.Flags().String("dir", ".", "Parent directory the project is created under")
	cmd.Flags().String("lang", "", "Source language: c or cpp (default: c)")
	cmd.Flags().String("compiler", "", "Compiler name (default: cc for C, c++ for C++)")
	cmd.Flags().String("link", "", "Header include mode: absolute or relative (default: absolute)")
	cmd.Flags().String("lib-url", "", "Utility-library repository URL, vendored into libft/")
	cmd.Flags().Bool("graphics", false, "Vendor the graphics library into minilibx/")
	cmd.Flags().String("graphics-url", "", "Graphics-library repository URL")
	cmd.Flags().StringArray("remote", nil, "Git remote as name=url or a bare URL (repeatable)")
	cmd.Flags().Bool("save-default", false, "Allow overwriting a persisted default repository URL")
	cmd.Flags().Bool("skip-fetch", false, "Scaffold without fetching dependencies")
	cmd.Flags().Bool("non-interactive", false, "Skip the interactive wizard; use flags and defaults")

	return cmd
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringArrayFlag retrieves a string array flag value from the command.
func getStringArrayFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		return nil
	}
	return val
}

// validateNewFlags validates flag values before execution.
func validateNewFlags(cmd *cobra.Command, _ []string) error {
	lang := getStringFlag(cmd, "lang")
	if lang != "" && !slices.Contains([]string{"c", "cpp"}, lang) {
		return fmt.Errorf("invalid --lang value %q: must be one of: c, cpp", lang)
	}

	link := getStringFlag(cmd, "link")
	if link != "" && !slices.Contains([]string{"absolute", "relative"}, link) {
		return fmt.Errorf("invalid --link value %q: must be one of: absolute, relative", link)
	}

	if _, err := scaffold.ParseRemotes(getStringArrayFlag(cmd, "remote")); err != nil {
		return fmt.Errorf("invalid --remote value: %w", err)
	}

	return nil
}

// spinnerReporter adapts a ui.Spinner to the scaffold.Reporter interface.
type spinnerReporter struct {
	spinner ui.Spinner
}

func (r spinnerReporter) Step(title string) {
	r.spinner.SetTitle(title)
}

// runNew executes the scaffolding workflow.
func runNew(cmd *cobra.Command, args []string) error {
	nonInteractive := getBoolFlag(cmd, "non-interactive")

	// Fire-and-forget update availability check, detached from the main
	// flow. The outcome is printed only if it arrives before the command
	// finishes; otherwise it is discarded.
	var updateCh chan *update.VersionInfo
	if !nonInteractive && os.Getenv("SKEL_NO_UPDATE_CHECK") == "" {
		updateCh = make(chan *update.VersionInfo, 1)
		go func() {
			checker := update.NewChecker(update.DefaultReleaseURL, nil)
			if ok, info, err := checker.IsUpdateAvailable(version.GetVersion()); err == nil && ok {
				updateCh <- info
			}
		}()
	}

	// Git availability check (non-fatal warning)
	if _, err := exec.LookPath("git"); err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(),
			"Warning: git is not installed. Dependency fetching and repository setup will be skipped.\n  %s\n",
			GitInstallHint())
	}

	store := config.NewStore()
	defaults, err := store.Load()
	if err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Warning: failed to load persisted defaults: %v\n", err)
	}

	opts := scaffold.Options{
		ParentDir:   getStringFlag(cmd, "dir"),
		Language:    scaffold.Language(getStringFlag(cmd, "lang")),
		Compiler:    getStringFlag(cmd, "compiler"),
		LinkMode:    scaffold.LinkMode(getStringFlag(cmd, "link")),
		LibraryURL:  getStringFlag(cmd, "lib-url"),
		Graphics:    getBoolFlag(cmd, "graphics"),
		GraphicsURL: getStringFlag(cmd, "graphics-url"),
		SkipFetch:   getBoolFlag(cmd, "skip-fetch"),
	}
	if len(args) > 0 {
		opts.Name = args[0]
		opts.Subprojects = args[1:]
	}

	remoteSpecs := getStringArrayFlag(cmd, "remote")

	if !nonInteractive && isatty.IsTerminal(os.Stdin.Fd()) && opts.Name == "" {
		PrintBanner(version.GetVersion())
		PrintWelcomeMessage()

		result, err := wizard.RunWithDefaults(defaults.LibraryURL, graphicsDefault(defaults))
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Scaffolding cancelled.")
				return nil
			}
			return fmt.Errorf("wizard failed: %w", err)
		}

		// Wizard values fill whatever the flags left unset.
		if opts.Name == "" {
			opts.Name = result.ProjectName
		}
		if opts.Language == "" {
			opts.Language = scaffold.Language(result.Language)
		}
		if opts.LinkMode == "" {
			opts.LinkMode = scaffold.LinkMode(result.LinkMode)
		}
		if opts.LibraryURL == "" {
			opts.LibraryURL = result.LibraryURL
		}
		if !opts.Graphics {
			opts.Graphics = result.Graphics
		}
		if opts.GraphicsURL == "" {
			opts.GraphicsURL = result.GraphicsURL
		}
		if len(remoteSpecs) == 0 && result.RemoteURL != "" {
			remoteSpecs = []string{result.RemoteURL}
		}
	}

	if opts.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if opts.Language == "" {
		opts.Language = scaffold.LangC
	}
	if opts.LinkMode == "" {
		opts.LinkMode = scaffold.LinkAbsolute
	}

	saveDefault := getBoolFlag(cmd, "save-default")

	// Reconcile the supplied library URL with the persisted default:
	// the first URL is persisted, and once a default exists any
	// explicitly supplied URL requires --save-default. A wizard answer
	// that merely echoes the persisted default is not a new supply.
	if opts.LibraryURL == "" {
		opts.LibraryURL = defaults.LibraryURL
	} else if cmd.Flags().Changed("lib-url") || opts.LibraryURL != defaults.LibraryURL {
		if err := store.Remember(config.KindLibrary, opts.LibraryURL, saveDefault); err != nil {
			return err
		}
	}

	if opts.Graphics {
		if opts.GraphicsURL == "" {
			opts.GraphicsURL = graphicsDefault(defaults)
		} else if cmd.Flags().Changed("graphics-url") || opts.GraphicsURL != defaults.GraphicsURL {
			if err := store.Remember(config.KindGraphics, opts.GraphicsURL, saveDefault); err != nil {
				return err
			}
		}
	}

	remotes, err := scaffold.ParseRemotes(remoteSpecs)
	if err != nil {
		return err
	}
	opts.Remotes = remotes

	assets, err := template.Assets()
	if err != nil {
		return fmt.Errorf("load embedded templates: %w", err)
	}
	renderer := template.NewRenderer(assets)

	var fetcher scaffold.Fetcher
	var repo scaffold.RepoInitializer
	if vcs.Available() {
		mgr := vcs.NewManager(nil)
		fetcher, repo = mgr, mgr
	}

	gen := scaffold.NewGenerator(renderer, fetcher, repo, nil)

	hm := ui.NewHeadlessManager()
	if nonInteractive {
		hm.ForceHeadless(true)
	}
	sp := ui.NewSpinner(hm, "Scaffolding project...")
	gen.SetReporter(spinnerReporter{spinner: sp})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := gen.Generate(ctx, opts)
	sp.Stop()
	if err != nil {
		return fmt.Errorf("scaffolding failed: %w", err)
	}

	// Display success message
	pairs := []kvPair{
		{"Project", result.ProjectRoot},
		{"Directories", fmt.Sprintf("%d created", len(result.CreatedDirs))},
		{"Files", fmt.Sprintf("%d created", len(result.CreatedFiles))},
	}
	if len(result.VendoredDeps) > 0 {
		pairs = append(pairs, kvPair{"Vendored", fmt.Sprintf("%v", result.VendoredDeps)})
	}
	if len(result.Remotes) > 0 {
		pairs = append(pairs, kvPair{"Remotes", fmt.Sprintf("%v", result.Remotes)})
	}
	details := []string{renderKeyValueLines(pairs)}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard("Project scaffolded", details...))

	// Surface the detached update check only when its result is already in.
	if updateCh != nil {
		select {
		case info := <-updateCh:
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nA newer skel is available (%s). Run `skel upgrade` to install it.\n", info.Version)
		default:
		}
	}

	return nil
}

// graphicsDefault returns the persisted graphics URL or the built-in one.
func graphicsDefault(defaults config.Defaults) string {
	if defaults.GraphicsURL != "" {
		return defaults.GraphicsURL
	}
	return config.DefaultGraphicsURL
}
