package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/multigit/internal/application"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Operate on multiple git repositories as one group",
	Long: `Multigit keeps a registry of local git repositories under short names
and has two jobs:

  1. display the status of all of them side by side (ll)
  2. delegate git commands/aliases to some or all of them from any
     working directory

Examples:
  multigit ls
  multigit fetch
  multigit stat myrepo2
  multigit super myrepo1 commit -am 'add some cool feature'`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
