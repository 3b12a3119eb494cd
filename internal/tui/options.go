package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/session"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/tui/components"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

const (
	activityHeight = 5
	activityLimit  = 200
)

// OptionsModel is the per-iteration options dialog: pick a length category
// with vignettes remaining, toggle the reflection and auto-print switches,
// then confirm or end the session.
type OptionsModel struct {
	theme  Theme
	counts vignette.Counts

	cursor     int // index into vignette.Categories; -1 when nothing is selectable
	reflection bool
	auto       bool

	activity components.ActivityLog
	width    int

	confirmed bool
	done      bool
}

// NewOptionsModel creates the dialog for the given remaining counts. The
// first category with vignettes remaining is pre-selected; the toggles start
// from defaults. activity holds pre-rendered recent event lines.
func NewOptionsModel(theme Theme, counts vignette.Counts, defaults session.Options, activity []string) OptionsModel {
	m := OptionsModel{
		theme:      theme,
		counts:     counts,
		cursor:     -1,
		reflection: defaults.IncludeReflection,
		auto:       defaults.Auto,
		activity:   components.NewActivityLog(76, activityHeight, activityLimit),
		width:      80,
	}
	for _, line := range activity {
		m.activity = m.activity.Append(line)
	}
	for i, c := range vignette.Categories {
		if counts[c] > 0 {
			m.cursor = i
			break
		}
	}
	return m
}

// Init implements tea.Model.
func (m OptionsModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.activity = m.activity.SetSize(max(msg.Width-4, 20), activityHeight)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if !handles(optionsKeys, key) {
			var cmd tea.Cmd
			m.activity, cmd = m.activity.Update(msg)
			return m, cmd
		}
		return m.handleKey(key)
	}
	return m, nil
}

func (m OptionsModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.cursor = m.step(-1)
	case "down", "j":
		m.cursor = m.step(1)
	case "1", "2", "3":
		i := int(key[0] - '1')
		if m.selectable(i) {
			m.cursor = i
		}
	case "r":
		m.reflection = !m.reflection
	case "a":
		m.auto = !m.auto
	case "enter":
		if m.cursor < 0 {
			return m, nil
		}
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// step returns the next selectable index in direction dir, or the current
// cursor when there is none.
func (m OptionsModel) step(dir int) int {
	for i := m.cursor + dir; i >= 0 && i < len(vignette.Categories); i += dir {
		if m.selectable(i) {
			return i
		}
	}
	return m.cursor
}

func (m OptionsModel) selectable(i int) bool {
	return i >= 0 && i < len(vignette.Categories) && m.counts[vignette.Categories[i]] > 0
}

// Selected returns the highlighted category and whether one is selectable.
func (m OptionsModel) Selected() (vignette.Category, bool) {
	if m.cursor < 0 {
		return 0, false
	}
	return vignette.Categories[m.cursor], true
}

// Result returns the operator's options; ok is false when the operator
// ended the session instead of confirming.
func (m OptionsModel) Result() (opts session.Options, ok bool) {
	c, selected := m.Selected()
	if !m.confirmed || !selected {
		return session.Options{}, false
	}
	return session.Options{Category: c, IncludeReflection: m.reflection, Auto: m.auto}, true
}

// View implements tea.Model.
func (m OptionsModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title("Vignette Options"))
	b.WriteString("\n\nSelect vignette length:\n")
	for i, c := range vignette.Categories {
		radio := "( )"
		if i == m.cursor {
			radio = "(•)"
		}
		line := fmt.Sprintf("%s %s (%d remaining)", radio, c.Label(), m.counts[c])
		switch {
		case !m.selectable(i):
			line = "  " + disabledStyle.Render(line)
		case i == m.cursor:
			line = m.theme.cursorStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(checkbox(m.reflection, "Include a reflection question") + "\n")
	b.WriteString(checkbox(m.auto, "Skip screen display and print directly") + "\n")

	if m.activity.Len() > 0 {
		b.WriteString("\n" + m.activity.View() + "\n")
	}

	ok := "enter:OK"
	if m.cursor < 0 {
		ok = disabledStyle.Render(ok)
	}
	status := fmt.Sprintf("%d remaining", m.counts.Total())
	hints := "↑/↓:length  r:reflection  a:auto-print  " + ok + "  q:exit"
	b.WriteString("\n" + renderFooter(status, hints, m.width-4))

	return m.theme.Dialog(b.String())
}
