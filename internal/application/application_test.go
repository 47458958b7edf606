package application

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDirectoryHonorsXDG(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	dir, err := ConfigDirectory()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, AppName), dir)
}

func TestStorePath(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	path, err := StorePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, AppName, "repo_path"), path)
}

func TestUserCmdsPath(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	path, err := UserCmdsPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, AppName, "cmds.yml"), path)
}
