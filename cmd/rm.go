package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <repo>...",
	Short: "Unregister repo(s)",
	Long: `Remove the chosen repo(s) from the registry. Nothing is deleted on
disk; the repositories are only forgotten.

Examples:
  multigit rm oldproject
  multigit rm repo1 repo2`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeRepoNames,
	RunE:              runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(_ *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	if err := reg.Remove(args...); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stdout, okStyle.Render(fmt.Sprintf("Removed %d repo(s).", len(args))))

	return nil
}
