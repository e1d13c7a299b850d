// Command skel scaffolds C/C++ curriculum projects.
package main

import (
	"os"

	"github.com/campus42/skel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
