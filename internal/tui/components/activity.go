// Package components holds reusable bubbletea widgets.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ActivityLog is a fixed-height view over the most recent session events,
// pinned to the newest line. It keeps at most limit lines.
type ActivityLog struct {
	vp    viewport.Model
	lines []string // rendered (pre-styled) lines
	limit int
}

// NewActivityLog creates an empty ActivityLog. A limit <= 0 keeps every line.
func NewActivityLog(w, h, limit int) ActivityLog {
	return ActivityLog{vp: viewport.New(w, h), limit: limit}
}

// Append adds a pre-rendered line, dropping the oldest lines past the limit.
func (a ActivityLog) Append(rendered string) ActivityLog {
	lines := append(append([]string(nil), a.lines...), rendered)
	if a.limit > 0 && len(lines) > a.limit {
		lines = lines[len(lines)-a.limit:]
	}
	a.lines = lines
	a.refresh()
	return a
}

// SetSize resizes the view.
func (a ActivityLog) SetSize(w, h int) ActivityLog {
	a.vp.Width = w
	a.vp.Height = h
	a.refresh()
	return a
}

// Lines returns the retained lines, oldest first.
func (a ActivityLog) Lines() []string {
	return a.lines
}

// Len reports how many lines are retained.
func (a ActivityLog) Len() int {
	return len(a.lines)
}

// Update forwards scroll keys and mouse events to the viewport.
func (a ActivityLog) Update(msg tea.Msg) (ActivityLog, tea.Cmd) {
	var cmd tea.Cmd
	a.vp, cmd = a.vp.Update(msg)
	return a, cmd
}

// View renders the visible lines.
func (a ActivityLog) View() string {
	return a.vp.View()
}

func (a *ActivityLog) refresh() {
	a.vp.SetContent(strings.Join(a.lines, "\n"))
	a.vp.GotoBottom()
}
