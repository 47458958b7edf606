package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

// colorEnabled reports whether stdout is a terminal. Styled output is
// suppressed when it is not (pipes, redirects, CI).
func colorEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
