package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/campus42/skel/internal/ui"
	"github.com/campus42/skel/internal/update"
	"github.com/campus42/skel/pkg/version"
)

func init() {
	rootCmd.AddCommand(newUpgradeCmd())
}

// newUpgradeCmd builds the `skel upgrade` command.
func newUpgradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade skel to the latest release",
		Long: `Upgrade skel to the latest published release.

Downloads the release archive for this platform, verifies its checksum
and replaces the running binary in place. Use --check to only report
whether a newer version exists.`,
		RunE: runUpgrade,
	}

	cmd.Flags().Bool("check", false, "Only check for a newer version; do not install")

	return cmd
}

func runUpgrade(cmd *cobra.Command, _ []string) error {
	checkOnly := getBoolFlag(cmd, "check")
	out := cmd.OutOrStdout()
	current := version.GetVersion()

	checker := update.NewChecker(update.DefaultReleaseURL, nil)

	available, info, err := checker.IsUpdateAvailable(current)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !available {
		_, _ = fmt.Fprintf(out, "skel %s is up to date.\n", current)
		return nil
	}

	_, _ = fmt.Fprintln(out, renderKeyValueLines([]kvPair{
		{"Current", current},
		{"Latest", info.Version},
		{"Published", info.Date.Format(time.DateOnly)},
	}))

	if checkOnly {
		_, _ = fmt.Fprintln(out, "Run `skel upgrade` to install it.")
		return nil
	}

	hm := ui.NewHeadlessManager()
	sp := ui.NewSpinner(hm, fmt.Sprintf("Downloading skel %s...", info.Version))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	updater := update.NewUpdater(nil, nil)
	err = updater.Apply(ctx, info)
	sp.Stop()
	if err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, renderSuccessCard("Upgrade complete",
		fmt.Sprintf("skel %s installed over %s", info.Version, current)))
	return nil
}
