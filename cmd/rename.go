package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <repo> <new-name>",
	Short: "Rename a repo",
	Long: `Give a registered repository a new short name.

Examples:
  multigit rename frontend fe`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeRepoNames,
	RunE:              runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(_ *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	if err := reg.Rename(args[0], args[1]); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stdout, okStyle.Render(fmt.Sprintf("Renamed %s to %s.", args[0], args[1])))

	return nil
}
