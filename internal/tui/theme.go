package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/config"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/session"
)

// Theme holds accent-color-derived styles.
type Theme struct {
	titleStyle  lipgloss.Style // dialog title bar
	cursorStyle lipgloss.Style // selected row
	dialogStyle lipgloss.Style // dialog frame
	noticeStyle lipgloss.Style // notice frame
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#2A9D8F").
// If accentColor is empty, config.DefaultAccentColor is used.
func NewTheme(accentColor string) Theme {
	color := config.DefaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		titleStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1),
		cursorStyle: lipgloss.NewStyle().
			Foreground(c).
			Bold(true),
		dialogStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Padding(0, 1),
		noticeStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1),
	}
}

// Title renders a dialog title bar.
func (t Theme) Title(s string) string {
	return t.titleStyle.Render(s)
}

// Dialog frames body with the accent border.
func (t Theme) Dialog(body string) string {
	return t.dialogStyle.Render(body)
}

// RenderEvent renders a session event as a single terminal line of at most
// width columns.
func (t Theme) RenderEvent(e session.Event, width int) string {
	ts := timestampStyle.Render(fmt.Sprintf("[%s]", e.Timestamp.Format("15:04:05")))

	msg := singleLine(e.Message)
	if e.Err != "" {
		msg += ": " + singleLine(e.Err)
	}
	maxText := width - 13
	if maxText < 20 {
		maxText = 20
	}
	if runes := []rune(msg); len(runes) > maxText {
		msg = string(runes[:maxText-1]) + "…"
	}

	switch e.Kind {
	case session.EventDelivered, session.EventDone:
		return fmt.Sprintf("%s  %s", ts, resultStyle.Render("✓ "+msg))
	case session.EventFailed, session.EventStopped:
		return fmt.Sprintf("%s  %s", ts, errorStyle.Render("✗ "+msg))
	case session.EventSkipped, session.EventNoCandidates:
		return fmt.Sprintf("%s  %s", ts, warnStyle.Render("· "+msg))
	case session.EventReset:
		return fmt.Sprintf("%s  %s", ts, resetStyle.Render("↺ "+msg))
	case session.EventIterStart:
		return fmt.Sprintf("%s  %s", ts, msg)
	default:
		return fmt.Sprintf("%s  %s", ts, infoStyle.Render(msg))
	}
}

// RenderNotice renders an operator notice as a framed box.
func (t Theme) RenderNotice(n session.Notice) string {
	title := t.Title(n.Title)
	if n.Kind == session.NoticePrintError {
		title = errorStyle.Render(n.Title)
	}
	return t.noticeStyle.Render(title + "\n\n" + n.Message)
}

// singleLine collapses newlines so a message fits one log line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
