package gitutil

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// GitError represents a git command error
type GitError struct {
	ExitCode int
	Stderr   string
	err      error
}

// newGitError wraps an exec failure, lifting the exit code and captured
// stderr out of an ExitError when there is one.
func newGitError(err error) *GitError {
	ge := &GitError{err: err}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ge.ExitCode = exitErr.ExitCode()
		ge.Stderr = strings.TrimSpace(string(exitErr.Stderr))
	}

	return ge
}

func (e *GitError) Error() string {
	if e.Stderr == "" {
		return fmt.Errorf("git command failed: %w", e.err).Error()
	}
	return fmt.Sprintf("git command failed: %s", strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}
