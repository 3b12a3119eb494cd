package printer

import (
	"context"
	"fmt"
	"io"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// Text renders receipts as plain text with the same wrapping and rules as
// the thermal printer. It backs --dry-run.
type Text struct {
	W     io.Writer
	Width int
}

// Render writes the receipt for c to t.W.
func (t *Text) Render(_ context.Context, c vignette.Composition) error {
	width := t.Width
	if width <= 0 {
		width = DefaultWidth
	}
	for _, s := range layout(c, width) {
		var err error
		switch {
		case s.rule:
			_, err = io.WriteString(t.W, rule(width))
		case s.qr != "":
			_, err = fmt.Fprintf(t.W, "[QR] %s\n", s.qr)
		default:
			_, err = io.WriteString(t.W, s.text)
		}
		if err != nil {
			return &TransportError{Op: "write", Err: err}
		}
	}
	if _, err := io.WriteString(t.W, "\n"); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}
