package cli

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

//go:embed assets/guide.md
var guideMarkdown string

func init() {
	rootCmd.AddCommand(newGuideCmd())
}

// newGuideCmd builds the `skel guide` command.
func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show the skel usage guide",
		Long:  "Render the built-in usage guide covering layout, dependencies, git setup and upgrades.",
		RunE:  runGuide,
	}
}

func runGuide(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	// Plain markdown when output is piped or redirected.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		_, _ = fmt.Fprint(out, guideMarkdown)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		_, _ = fmt.Fprint(out, guideMarkdown)
		return nil
	}

	rendered, err := renderer.Render(guideMarkdown)
	if err != nil {
		_, _ = fmt.Fprint(out, guideMarkdown)
		return nil
	}

	_, _ = fmt.Fprint(out, rendered)
	return nil
}
