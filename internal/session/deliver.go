package session

import (
	"context"
	"fmt"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// Outcome is the result of one delivery transaction.
type Outcome int

const (
	OutcomeDelivered Outcome = iota // rendered and logged
	OutcomeSkipped                  // declined at preview; not logged
	OutcomeFailed                   // rendering sink failed; not logged
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Deliver runs the print-then-log transaction for c. Unless auto is set, the
// operator previews c first and may decline. Any renderer error yields
// OutcomeFailed together with that error, which callers report and move past.
// For the other outcomes a non-nil error is unrecoverable: the preview could
// not be shown, or the log could not be appended after a successful print.
// Exactly one log entry is written per OutcomeDelivered, stamped with the
// time rendering completed.
func (s *Session) Deliver(ctx context.Context, c vignette.Composition, auto bool) (Outcome, error) {
	if !auto {
		ok, err := s.Operator.Preview(ctx, c)
		if err != nil {
			return OutcomeSkipped, fmt.Errorf("preview: %w", err)
		}
		if !ok {
			return OutcomeSkipped, nil
		}
	}

	if err := s.Renderer.Render(ctx, c); err != nil {
		return OutcomeFailed, err
	}

	entry := vignette.DeliveryLogEntry{
		RecordID:           c.RecordID,
		Timestamp:          s.now(),
		ReflectionIncluded: c.ReflectionIncluded,
		ReflectionText:     c.Reflection,
	}
	if err := s.Deliveries.Append(entry); err != nil {
		return OutcomeDelivered, fmt.Errorf("append delivery log: %w", err)
	}
	return OutcomeDelivered, nil
}
