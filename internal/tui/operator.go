package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/session"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// Operator implements session.Operator with one short-lived bubbletea
// program per dialog. Notices are printed between dialogs.
type Operator struct {
	theme    Theme
	defaults session.Options
	in       io.Reader
	out      io.Writer
	activity []string

	// run executes a dialog to completion and returns its final model.
	run func(ctx context.Context, m tea.Model) (tea.Model, error)
}

// NewOperator returns an Operator reading keys from in and drawing to out.
// Nil in and out default to the process's stdin and stdout. defaults sets
// the initial state of the reflection and auto-print toggles.
func NewOperator(accentColor string, defaults session.Options, in io.Reader, out io.Writer) *Operator {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	o := &Operator{
		theme:    NewTheme(accentColor),
		defaults: defaults,
		in:       in,
		out:      out,
	}
	o.run = o.program
	return o
}

func (o *Operator) program(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(o.in), tea.WithOutput(o.out))
	return p.Run()
}

// Choose implements session.Chooser.
func (o *Operator) Choose(ctx context.Context, counts vignette.Counts) (session.Options, error) {
	final, err := o.run(ctx, NewOptionsModel(o.theme, counts, o.defaults, o.activity))
	if ctx.Err() != nil {
		return session.Options{}, ctx.Err()
	}
	if err != nil {
		return session.Options{}, fmt.Errorf("tui: options dialog: %w", err)
	}
	m, ok := final.(OptionsModel)
	if !ok {
		return session.Options{}, fmt.Errorf("tui: options dialog returned %T", final)
	}
	opts, confirmed := m.Result()
	if !confirmed {
		return session.Options{}, session.ErrQuit
	}
	return opts, nil
}

// Preview implements session.Previewer.
func (o *Operator) Preview(ctx context.Context, c vignette.Composition) (bool, error) {
	final, err := o.run(ctx, NewPreviewModel(o.theme, c))
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, fmt.Errorf("tui: preview: %w", err)
	}
	m, ok := final.(PreviewModel)
	if !ok {
		return false, fmt.Errorf("tui: preview returned %T", final)
	}
	return m.Result(), nil
}

// Announce implements session.Announcer.
func (o *Operator) Announce(_ context.Context, n session.Notice) {
	fmt.Fprintln(o.out, o.theme.RenderNotice(n))
}

// Record keeps e for the activity pane of the next options dialog. It is
// meant to be installed as a session hook.
func (o *Operator) Record(e session.Event) {
	o.activity = append(o.activity, o.theme.RenderEvent(e, 76))
	if len(o.activity) > activityLimit {
		o.activity = o.activity[len(o.activity)-activityLimit:]
	}
}
