package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/multigit/internal/status"
)

var llCmd = &cobra.Command{
	Use:   "ll",
	Short: "Display summary of all repos",
	Long: `Display one line per registered repository: the name, the current
branch, and the work-tree state.

  status symbols:
    +  staged changes
    *  unstaged changes
    _  untracked files/folders

  branch colors:
    plain:  local has no remote counterpart
    green:  local is the same as remote
    purple: local is ahead of remote (good for push)
    yellow: local is behind remote (good for merge)
    red:    local has diverged from remote`,
	Args: cobra.NoArgs,
	RunE: runLl,
}

func init() {
	rootCmd.AddCommand(llCmd)
}

func runLl(_ *cobra.Command, _ []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	repos, err := reg.Load()
	if err != nil {
		return err
	}

	agg := status.NewAggregator(colorEnabled())
	for _, line := range agg.Describe(repos) {
		_, _ = fmt.Fprintln(os.Stdout, line)
	}

	return nil
}
