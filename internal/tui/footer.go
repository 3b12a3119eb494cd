package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderFooter renders a key-hint bar: left-aligned status, right-aligned hints.
func renderFooter(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return footerStyle.Render(left + strings.Repeat(" ", gap) + right)
}
