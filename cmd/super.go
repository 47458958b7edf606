package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/inovacc/multigit/internal/dispatch"
)

var superCmd = &cobra.Command{
	Use:   "super [repo]... <git-command>...",
	Short: "Superman mode: delegate any git command/alias to specified or all repos",
	Long: `Any leading arguments matching registered repo names select the
targets; the rest runs as a git command in each of them. With no leading
names the command runs in every registered repo.

Examples:
  multigit super myrepo1 commit -am 'fix a bug'
  multigit super repo1 repo2 repo3 checkout new-feature
  multigit super checkout master`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
	RunE:               runSuper,
}

func init() {
	rootCmd.AddCommand(superCmd)
}

func runSuper(cmd *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	repos, err := reg.Load()
	if err != nil {
		return err
	}

	names, gitArgs := splitTargets(repos, args)
	if len(gitArgs) == 0 {
		return errors.New("no git command given")
	}

	targets, err := dispatch.ResolveTargets(repos, names)
	if err != nil {
		return err
	}

	argv := append([]string{"git"}, gitArgs...)

	return dispatch.New(denylist).Run(cmd.Context(), argv, targets)
}

// splitTargets consumes leading registered repo names; the remainder is
// the git command. The scan stops at the first word that is not a
// registered name.
func splitTargets(repos map[string]string, args []string) (names, rest []string) {
	i := 0
	for ; i < len(args); i++ {
		if _, ok := repos[args[i]]; !ok {
			break
		}
		names = append(names, args[i])
	}

	return names, args[i:]
}
