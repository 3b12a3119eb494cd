package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/printer"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// PreviewModel shows a composed vignette on screen and asks whether to
// print it.
type PreviewModel struct {
	theme Theme
	comp  vignette.Composition
	vp    viewport.Model
	width int

	answered bool
	print    bool
}

// NewPreviewModel creates the preview for c.
func NewPreviewModel(theme Theme, c vignette.Composition) PreviewModel {
	m := PreviewModel{
		theme: theme,
		comp:  c,
		vp:    viewport.New(76, 16),
		width: 80,
	}
	m.vp.SetContent(previewText(c, m.vp.Width))
	return m
}

// Init implements tea.Model.
func (m PreviewModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.vp.Width = max(msg.Width-4, 20)
		m.vp.Height = max(msg.Height-8, 5)
		m.vp.SetContent(previewText(m.comp, m.vp.Width))
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if !handles(previewKeys, key) {
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		m.answered = true
		m.print = key == "y" || key == "enter"
		return m, tea.Quit
	}
	return m, nil
}

// Result reports whether the operator chose to print. An unanswered preview
// counts as declined.
func (m PreviewModel) Result() bool {
	return m.answered && m.print
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	if m.answered {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.theme.Title("Random Vignette"))
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n\n")
	b.WriteString(renderFooter("Would you like to print this vignette?", "↑/↓:scroll  y:print  n:skip", m.width-4))
	return m.theme.Dialog(b.String())
}

// previewText wraps each line of the composition to width, keeping the blank
// lines between blocks.
func previewText(c vignette.Composition, width int) string {
	lines := strings.Split(c.Text(), "\n")
	for i, line := range lines {
		lines[i] = printer.Wrap(line, width)
	}
	return strings.Join(lines, "\n")
}
