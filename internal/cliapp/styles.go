package cliapp

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the lipgloss styles the REPL uses to highlight error
// excerpts. Kept as simple package-level values rather than a themeable
// struct, since fnordsql has exactly one rendering mode.
var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// caretLine renders a "^" pointer under column col (1-based) of an excerpt.
func caretLine(col int) string {
	if col < 1 {
		col = 1
	}
	return caretStyle.Render(strings.Repeat(" ", col-1) + "^")
}
