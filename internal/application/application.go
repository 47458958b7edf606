package application

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "multigit"

	// storeFile holds the registered repositories, one path,name record per line
	storeFile = "repo_path"

	// cmdsFile is the optional user override for the delegated command table
	cmdsFile = "cmds.yml"
)

// ConfigDirectory returns the multigit configuration directory.
// XDG_CONFIG_HOME takes precedence when set; otherwise the platform
// user config directory is used (~/.config on Linux).
func ConfigDirectory() (string, error) {
	if root := os.Getenv("XDG_CONFIG_HOME"); root != "" {
		return filepath.Join(root, AppName), nil
	}

	baseDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(baseDir, AppName), nil
}

// StorePath returns the default location of the repository registry file.
func StorePath() (string, error) {
	dir, err := ConfigDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, storeFile), nil
}

// UserCmdsPath returns the location of the user command-table override file.
func UserCmdsPath() (string, error) {
	dir, err := ConfigDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, cmdsFile), nil
}
