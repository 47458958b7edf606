package cmd

import (
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Register repo(s)",
	Long: `Register existing local git repositories under their directory names.
Paths that are not git working directories, or that are already
registered, are skipped.

Examples:
  multigit add .
  multigit add ~/work/frontend ~/work/backend`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(args))

	for _, arg := range args {
		p, err := expandPath(arg)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}

	_, err = reg.Add(paths)

	return err
}
