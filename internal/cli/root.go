package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus42/skel/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "skel",
	Short: "skel: project-skeleton generator for C/C++ curriculum projects",
	Long: `skel scaffolds new C/C++ curriculum projects.

It creates the directory layout (srcs/, includes/), a starter source
file, a guarded header and a Makefile; optionally vendors the utility
and graphics library dependencies; and optionally initializes a git
repository with remotes. Default repository URLs are remembered across
invocations.`,
	Version: version.GetVersion(),
}

// Execute runs the root command. It is the entry point called from
// cmd/skel/main.go; a non-nil error maps to exit code 1.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("skel %s\n", version.GetVersion()))
}
