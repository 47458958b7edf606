// Package status renders the side-by-side summary of all registered
// repositories.
package status

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-git/go-git/v5"

	"github.com/inovacc/multigit/internal/gitutil"
)

// A Probe inspects one repository working directory and returns a short
// display token, or "" when it has nothing to say.
type Probe struct {
	Name string
	Run  func(path string) string
}

// Branch color encodes the relation to the upstream: plain means no
// upstream, green in sync, purple ahead (good for push), yellow behind
// (good for merge), red diverged.
var (
	syncedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	aheadStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	behindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	divergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// DefaultProbes is the pipeline behind the ll listing, in display order.
func DefaultProbes(color bool) []Probe {
	return []Probe{
		{Name: "branch", Run: func(path string) string { return branchToken(path, color) }},
		{Name: "worktree-symbols", Run: worktreeSymbols},
	}
}

// AllProbes is every available probe, the default pipeline first.
func AllProbes(color bool) []Probe {
	return append(DefaultProbes(color), Probe{Name: "commit-msg", Run: commitSubject})
}

// branchToken returns the current branch name, colored by its relation to
// the configured upstream when color is enabled.
func branchToken(path string, color bool) string {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		// Unborn HEAD: freshly initialized repository.
		return ""
	}

	branch := head.Name().Short()
	if !color {
		return branch
	}

	upstream, ok := gitutil.Upstream(path, branch)
	if !ok {
		return branch
	}

	ahead, behind, err := gitutil.NewClientForRepo(path).AheadBehind(context.Background(), upstream)
	if err != nil {
		return branch
	}

	switch {
	case ahead > 0 && behind > 0:
		return divergedStyle.Render(branch)
	case ahead > 0:
		return aheadStyle.Render(branch)
	case behind > 0:
		return behindStyle.Render(branch)
	default:
		return syncedStyle.Render(branch)
	}
}

// worktreeSymbols reports the work-tree state as compact markers:
// + staged changes, * unstaged changes, _ untracked files.
func worktreeSymbols(path string) string {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return ""
	}

	wt, err := repo.Worktree()
	if err != nil {
		return ""
	}

	st, err := wt.Status()
	if err != nil {
		return ""
	}

	var staged, unstaged, untracked bool

	for _, fs := range st {
		if fs.Worktree == git.Untracked {
			untracked = true
			continue
		}
		if fs.Staging != git.Unmodified {
			staged = true
		}
		if fs.Worktree != git.Unmodified {
			unstaged = true
		}
	}

	var sb strings.Builder
	if staged {
		sb.WriteByte('+')
	}
	if unstaged {
		sb.WriteByte('*')
	}
	if untracked {
		sb.WriteByte('_')
	}

	return sb.String()
}

// commitSubject returns the first line of the HEAD commit message.
func commitSubject(path string) string {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		return ""
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return ""
	}

	subject, _, _ := strings.Cut(commit.Message, "\n")

	return strings.TrimSpace(subject)
}
