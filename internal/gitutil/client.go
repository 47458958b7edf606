// Package gitutil wraps invocations of the git executable.
// Pattern inspired by github.com/cli/cli
package gitutil

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Client runs git commands in a repository working directory
type Client struct {
	GitPath string // Path to git executable
	RepoDir string // Repository directory
	Stderr  io.Writer
	Stdin   io.Reader
	Stdout  io.Writer
}

// NewClient creates a new git client
func NewClient() *Client {
	gitPath, _ := exec.LookPath("git")

	return &Client{
		GitPath: gitPath,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}
}

// NewClientForRepo creates a client for a specific repository
func NewClientForRepo(repoDir string) *Client {
	c := NewClient()
	c.RepoDir = repoDir
	return c
}

// Command creates a git command with output captured
// Note: Do not set Stdout/Stderr if you plan to use CombinedOutput()
func (c *Client) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)

	if c.RepoDir != "" {
		cmd.Dir = c.RepoDir
	}

	return cmd
}

// CommandInteractive creates a git command with stdio attached for interactive use
func (c *Client) CommandInteractive(ctx context.Context, args ...string) *exec.Cmd {
	cmd := c.Command(ctx, args...)
	cmd.Stderr = c.Stderr
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	return cmd
}

// AheadBehind returns how many commits the working branch is ahead of and
// behind the given upstream ref.
func (c *Client) AheadBehind(ctx context.Context, upstream string) (ahead, behind int, err error) {
	cmd := c.Command(ctx, "rev-list", "--left-right", "--count", upstream+"...HEAD")

	output, err := cmd.Output()
	if err != nil {
		return 0, 0, newGitError(err)
	}

	return parseAheadBehind(string(output))
}

// parseAheadBehind parses `rev-list --left-right --count` output, which is
// "<behind>\t<ahead>" with the upstream on the left side.
func parseAheadBehind(s string) (ahead, behind int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, &GitError{Stderr: "unexpected rev-list output: " + strings.TrimSpace(s)}
	}

	behind, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}

	ahead, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}

	return ahead, behind, nil
}

// IsRepository reports whether path contains a git metadata marker.
// For a regular clone .git is a directory; for worktrees and submodules
// it is a file. Both count as repositories.
func IsRepository(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}
