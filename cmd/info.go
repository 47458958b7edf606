package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inovacc/multigit/internal/status"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the status items of the ll sub-command",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, _ []string) error {
	inUse := status.NewAggregator(false).Names()
	all := (&status.Aggregator{Probes: status.AllProbes(false)}).Names()

	_, _ = fmt.Fprintln(os.Stdout, "In use:", strings.Join(inUse, ","))

	used := make(map[string]bool, len(inUse))
	for _, name := range inUse {
		used[name] = true
	}

	var unused []string
	for _, name := range all {
		if !used[name] {
			unused = append(unused, name)
		}
	}

	if len(unused) > 0 {
		_, _ = fmt.Fprintln(os.Stdout, "Unused:", strings.Join(unused, " "))
	}

	return nil
}
