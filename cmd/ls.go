package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inovacc/multigit/internal/registry"
)

var lsCmd = &cobra.Command{
	Use:   "ls [repo]",
	Short: "Display names of all repos, or the path of a chosen repo",
	Long: `Without arguments, print the names of all registered repositories on
one line. With a repo name, print that repository's path.

Examples:
  multigit ls
  multigit ls frontend
  cd $(multigit ls frontend)`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeRepoNames,
	RunE:              runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(_ *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	repos, err := reg.Load()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		path, ok := repos[args[0]]
		if !ok {
			return fmt.Errorf("%q: %w", args[0], registry.ErrRepoNotFound)
		}

		_, _ = fmt.Fprintln(os.Stdout, path)

		return nil
	}

	names := make([]string, 0, len(repos))
	for name := range repos {
		names = append(names, name)
	}
	sort.Strings(names)

	_, _ = fmt.Fprintln(os.Stdout, strings.Join(names, " "))

	return nil
}
