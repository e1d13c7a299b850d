package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campus42/skel/internal/config"
)

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

// newConfigCmd builds the `skel config` command and its subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change persisted default repository URLs",
		Long: `Show or change the default repository URLs remembered across runs.

Without a subcommand, prints the current defaults and the file they are
stored in.`,
		RunE: runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <kind> <url>",
		Short: "Set a default repository URL",
		Long: fmt.Sprintf(`Set the default repository URL for a dependency kind.

Valid kinds: %s. Overwrites any existing default.`,
			strings.Join(config.ValidKinds(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store := config.NewStore()
	defaults, err := store.Load()
	if err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}

	display := func(url string) string {
		if url == "" {
			return cliMuted.Render("(not set)")
		}
		return url
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, renderKeyValueLines([]kvPair{
		{"library", display(defaults.LibraryURL)},
		{"graphics", display(defaults.GraphicsURL)},
	}))
	_, _ = fmt.Fprintln(out, cliMuted.Render("File: "+store.Path()))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	kind, url := args[0], args[1]
	if !config.IsValidKind(kind) {
		return fmt.Errorf("%w: %q (valid kinds: %s)",
			config.ErrUnknownKind, kind, strings.Join(config.ValidKinds(), ", "))
	}

	store := config.NewStore()
	if _, err := store.Load(); err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}
	if err := store.Remember(kind, url, true); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default %s URL set to %s\n", kind, url)
	return nil
}
