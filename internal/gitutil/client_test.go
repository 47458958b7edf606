package gitutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandInteractiveAttachesClientStdio(t *testing.T) {
	var in strings.Reader
	var out, errOut bytes.Buffer

	c := &Client{
		GitPath: "git",
		RepoDir: t.TempDir(),
		Stdin:   &in,
		Stdout:  &out,
		Stderr:  &errOut,
	}

	cmd := c.CommandInteractive(context.Background(), "status")

	require.Equal(t, c.RepoDir, cmd.Dir)
	require.Same(t, &in, cmd.Stdin.(*strings.Reader))
	require.Same(t, &out, cmd.Stdout.(*bytes.Buffer))
	require.Same(t, &errOut, cmd.Stderr.(*bytes.Buffer))
}

func TestCommandLeavesStdioDetached(t *testing.T) {
	c := NewClientForRepo(t.TempDir())

	cmd := c.Command(context.Background(), "fetch")

	require.Equal(t, c.RepoDir, cmd.Dir)
	require.Nil(t, cmd.Stdin)
	require.Nil(t, cmd.Stdout)
	require.Nil(t, cmd.Stderr)
}

func TestIsRepository(t *testing.T) {
	t.Run("git directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
		require.True(t, IsRepository(dir))
	})

	t.Run("git file marks worktrees and submodules", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: elsewhere\n"), 0o644))
		require.True(t, IsRepository(dir))
	})

	t.Run("plain directory", func(t *testing.T) {
		require.False(t, IsRepository(t.TempDir()))
	})

	t.Run("missing path", func(t *testing.T) {
		require.False(t, IsRepository(filepath.Join(t.TempDir(), "nope")))
	})
}

func TestParseAheadBehind(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantAhead  int
		wantBehind int
		wantErr    bool
	}{
		{name: "in sync", input: "0\t0\n"},
		{name: "ahead only", input: "0\t3\n", wantAhead: 3},
		{name: "behind only", input: "2\t0\n", wantBehind: 2},
		{name: "diverged", input: "2\t3\n", wantAhead: 3, wantBehind: 2},
		{name: "garbage", input: "not numbers here\n", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ahead, behind, err := parseAheadBehind(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantAhead, ahead)
			require.Equal(t, tt.wantBehind, behind)
		})
	}
}

func TestUpstream(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte(content), 0o644))
		return dir
	}

	t.Run("configured upstream", func(t *testing.T) {
		dir := writeConfig(t, `[core]
	bare = false
[remote "origin"]
	url = https://example.com/user/repo.git
	fetch = +refs/heads/*:refs/remotes/origin/*
[branch "main"]
	remote = origin
	merge = refs/heads/main
`)

		upstream, ok := Upstream(dir, "main")
		require.True(t, ok)
		require.Equal(t, "origin/main", upstream)
	})

	t.Run("branch without upstream", func(t *testing.T) {
		dir := writeConfig(t, "[core]\n\tbare = false\n")

		_, ok := Upstream(dir, "main")
		require.False(t, ok)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, ok := Upstream(t.TempDir(), "main")
		require.False(t, ok)
	})
}
