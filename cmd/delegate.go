package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/multigit/internal/aliases"
	"github.com/inovacc/multigit/internal/application"
	"github.com/inovacc/multigit/internal/dispatch"
)

// denylist holds the git verbs that must never run concurrently, built
// from the delegated command table at startup.
var denylist []string

func init() {
	userPath, err := application.UserCmdsPath()
	if err != nil {
		userPath = ""
	}

	table, err := aliases.Load(userPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v, using bundled commands only\n", err)
		table, _ = aliases.Load("")
	}

	denylist = aliases.Denylist(table)

	for name, alias := range table {
		rootCmd.AddCommand(newAliasCommand(name, alias))
	}
}

// newAliasCommand builds the subcommand delegating one entry of the
// command table across the chosen repositories.
func newAliasCommand(name string, alias aliases.Alias) *cobra.Command {
	use := name + " <repo>..."
	argPolicy := cobra.MinimumNArgs(1)
	help := alias.Help + " for the chosen repo(s)"

	if alias.AllowAll {
		use = name + " [repo]..."
		argPolicy = cobra.ArbitraryArgs
		help = alias.Help + " for all repos or the chosen repo(s)"
	}

	return &cobra.Command{
		Use:               use,
		Short:             help,
		Args:              argPolicy,
		ValidArgsFunction: completeRepoNames,
		RunE: func(cmd *cobra.Command, names []string) error {
			reg, err := openRegistry()
			if err != nil {
				return err
			}

			repos, err := reg.Load()
			if err != nil {
				return err
			}

			targets, err := dispatch.ResolveTargets(repos, names)
			if err != nil {
				return err
			}

			return dispatch.New(denylist).Run(cmd.Context(), alias.Argv(name), targets)
		},
	}
}
