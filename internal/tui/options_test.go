package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/session"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

var defaultOpts = session.Options{IncludeReflection: true, Auto: true}

func TestOptionsModel_PreselectsFirstAvailable(t *testing.T) {
	tests := []struct {
		name   string
		counts vignette.Counts
		want   vignette.Category
		ok     bool
	}{
		{"all available", vignette.Counts{vignette.Short: 2, vignette.Medium: 1, vignette.Long: 1}, vignette.Short, true},
		{"short used up", vignette.Counts{vignette.Short: 0, vignette.Medium: 0, vignette.Long: 3}, vignette.Long, true},
		{"nothing left", vignette.Counts{vignette.Short: 0, vignette.Medium: 0, vignette.Long: 0}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewOptionsModel(NewTheme(""), tt.counts, defaultOpts, nil)
			got, ok := m.Selected()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Selected() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestOptionsModel_CursorSkipsEmptyCategories(t *testing.T) {
	counts := vignette.Counts{vignette.Short: 2, vignette.Medium: 0, vignette.Long: 1}
	m := NewOptionsModel(NewTheme(""), counts, defaultOpts, nil)

	updated, _ := press(m, tea.KeyMsg{Type: tea.KeyDown})
	if got, _ := updated.(OptionsModel).Selected(); got != vignette.Long {
		t.Errorf("down from Short should skip Medium, got %v", got)
	}

	updated, _ = press(updated, tea.KeyMsg{Type: tea.KeyDown})
	if got, _ := updated.(OptionsModel).Selected(); got != vignette.Long {
		t.Errorf("down at the last selectable row should stay, got %v", got)
	}

	updated, _ = press(updated, runes("k"))
	if got, _ := updated.(OptionsModel).Selected(); got != vignette.Short {
		t.Errorf("k from Long should skip Medium, got %v", got)
	}

	updated, _ = press(updated, runes("2"))
	if got, _ := updated.(OptionsModel).Selected(); got != vignette.Short {
		t.Errorf("2 should not select an empty category, got %v", got)
	}

	updated, _ = press(updated, runes("3"))
	if got, _ := updated.(OptionsModel).Selected(); got != vignette.Long {
		t.Errorf("3 should jump to Long, got %v", got)
	}
}

func TestOptionsModel_ConfirmReturnsOptions(t *testing.T) {
	counts := vignette.Counts{vignette.Short: 1, vignette.Medium: 1, vignette.Long: 0}
	m := NewOptionsModel(NewTheme(""), counts, defaultOpts, nil)

	updated, cmd := press(m, runes("j"), runes("r"), runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should quit the dialog")
	}

	opts, ok := updated.(OptionsModel).Result()
	if !ok {
		t.Fatal("expected confirmed result")
	}
	want := session.Options{Category: vignette.Medium, IncludeReflection: false, Auto: false}
	if opts != want {
		t.Errorf("Result() = %+v, want %+v", opts, want)
	}
	if v := updated.View(); v != "" {
		t.Errorf("finished dialog should render nothing, got %q", v)
	}
}

func TestOptionsModel_EnterDisabledWhenNothingSelectable(t *testing.T) {
	counts := vignette.Counts{vignette.Short: 0, vignette.Medium: 0, vignette.Long: 0}
	m := NewOptionsModel(NewTheme(""), counts, defaultOpts, nil)

	updated, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter should do nothing without a selectable category")
	}
	if _, ok := updated.(OptionsModel).Result(); ok {
		t.Error("expected no result")
	}
}

func TestOptionsModel_Exit(t *testing.T) {
	counts := vignette.Counts{vignette.Short: 1, vignette.Medium: 0, vignette.Long: 0}
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(key.String(), func(t *testing.T) {
			m := NewOptionsModel(NewTheme(""), counts, defaultOpts, nil)
			updated, cmd := press(m, key)
			if cmd == nil {
				t.Error("exit should quit the dialog")
			}
			if _, ok := updated.(OptionsModel).Result(); ok {
				t.Error("exit should not confirm")
			}
		})
	}
}

func TestOptionsModel_View(t *testing.T) {
	counts := vignette.Counts{vignette.Short: 2, vignette.Medium: 0, vignette.Long: 1}
	m := NewOptionsModel(NewTheme(""), counts, defaultOpts, []string{"[09:00:00]  Printed vignette 4"})

	view := m.View()
	for _, want := range []string{
		"Vignette Options",
		"Select vignette length:",
		"Short [fewer than 200 words] (2 remaining)",
		"Medium [between 200 & 300 words] (0 remaining)",
		"Long [more than 300 words] (1 remaining)",
		"[x] Include a reflection question",
		"[x] Skip screen display and print directly",
		"Printed vignette 4",
		"3 remaining",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestOptionsModel_WindowSize(t *testing.T) {
	m := NewOptionsModel(NewTheme(""), vignette.Counts{vignette.Short: 1}, defaultOpts, nil)
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if cmd != nil {
		t.Error("window size should not produce a command")
	}
	if w := updated.(OptionsModel).width; w != 120 {
		t.Errorf("width = %d, want 120", w)
	}
}
