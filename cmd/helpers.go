package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inovacc/multigit/internal/application"
	"github.com/inovacc/multigit/internal/registry"
)

// openRegistry builds the registry backed by the default store location.
// One instance per command run; its first Load caches the snapshot.
func openRegistry() (*registry.Registry, error) {
	path, err := application.StorePath()
	if err != nil {
		return nil, err
	}

	return registry.New(registry.NewStore(path)), nil
}

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	// Make path absolute
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}

// completeRepoNames offers registered repo names for shell completion.
func completeRepoNames(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	reg, err := openRegistry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	repos, err := reg.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for name := range repos {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, cobra.ShellCompDirectiveNoFileComp
}
