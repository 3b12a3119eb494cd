// Package session runs the operator loop: reset the pool when every vignette
// has been used, collect the operator's options, draw and compose a vignette,
// then deliver it to the printer and the delivery log.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// ErrQuit is returned by a Chooser when the operator ends the session.
var ErrQuit = errors.New("session: operator ended the session")

// Options is the operator's choice for one iteration.
type Options struct {
	Category          vignette.Category
	IncludeReflection bool
	Auto              bool // skip the preview and print directly
}

// Chooser presents the remaining counts and returns the operator's options,
// or ErrQuit. Categories with a zero count must not be selectable.
type Chooser interface {
	Choose(ctx context.Context, counts vignette.Counts) (Options, error)
}

// Previewer shows a composed vignette and returns whether the operator wants
// it printed.
type Previewer interface {
	Preview(ctx context.Context, c vignette.Composition) (bool, error)
}

// NoticeKind classifies operator notices.
type NoticeKind int

const (
	NoticeReset NoticeKind = iota
	NoticeNoCandidates
	NoticePrintError
)

// Notice is a message the operator must see, such as a pool reset.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// Announcer shows notices to the operator.
type Announcer interface {
	Announce(ctx context.Context, n Notice)
}

// Operator is the interactive side of the session.
type Operator interface {
	Chooser
	Previewer
	Announcer
}

// Renderer delivers a composition to the physical output.
type Renderer interface {
	Render(ctx context.Context, c vignette.Composition) error
}

// DeliveryLog appends one row per successful delivery.
type DeliveryLog interface {
	Append(entry vignette.DeliveryLogEntry) error
}

// Session owns the per-run state and the collaborators of the loop. It runs
// strictly sequentially and is not safe for concurrent use.
type Session struct {
	Records    []vignette.Record
	Pool       *vignette.Pool // created by Run when nil
	Rand       vignette.Rand
	Operator   Operator
	Renderer   Renderer
	Deliveries DeliveryLog

	Now    func() time.Time // delivery clock; defaults to time.Now
	Events chan<- Event     // optional structured event sink
	Log    io.Writer        // output destination when Events is nil; defaults to os.Stdout
	Hooks  []func(Event)    // called for every event, e.g. notifications
}

// Run loops until the operator ends the session, the context is cancelled, or
// an unrecoverable error occurs. Ending the session returns nil.
func (s *Session) Run(ctx context.Context) error {
	if len(s.Records) == 0 {
		return errors.New("session: dataset has no records")
	}
	if s.Pool == nil {
		s.Pool = vignette.NewPool()
	}

	s.emit(Event{Kind: EventInfo, Message: fmt.Sprintf("Session started with %d vignettes", len(s.Records)), Remaining: s.remaining()})

	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			s.emit(Event{Kind: EventStopped, Message: fmt.Sprintf("Session stopped: %v", ctx.Err())})
			return ctx.Err()
		default:
		}

		quit, err := s.iteration(ctx, i)
		if err != nil {
			return fmt.Errorf("session: iteration %d: %w", i, err)
		}
		if quit {
			s.emit(Event{Kind: EventDone, Iteration: i, Message: "Session ended by operator"})
			return nil
		}
	}
}

// iteration runs one Idle -> Selecting -> Composing -> Delivering cycle.
// quit is true when the operator ended the session.
func (s *Session) iteration(ctx context.Context, n int) (quit bool, err error) {
	if s.Pool.Exhausted(s.Records) {
		s.Pool.Reset()
		s.emit(Event{Kind: EventReset, Iteration: n, Message: "All vignettes used; pool reset", Remaining: s.remaining()})
		s.Operator.Announce(ctx, Notice{
			Kind:    NoticeReset,
			Title:   "Pool Reset",
			Message: "All vignettes have been used in this session. The pool has been reset.",
		})
	}

	counts := s.Pool.Remaining(s.Records)
	opts, err := s.Operator.Choose(ctx, counts)
	if errors.Is(err, ErrQuit) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("choose options: %w", err)
	}
	s.emit(Event{Kind: EventIterStart, Iteration: n, Category: opts.Category,
		Message: fmt.Sprintf("── vignette %d: %s ──", n, opts.Category)})

	rec, err := vignette.Select(s.Records, s.Pool, opts.Category, s.Rand)
	if errors.Is(err, vignette.ErrNoCandidates) {
		s.emit(Event{Kind: EventNoCandidates, Iteration: n, Category: opts.Category,
			Message: fmt.Sprintf("No %s vignettes remain", opts.Category), Remaining: counts.Total()})
		s.Operator.Announce(ctx, Notice{
			Kind:    NoticeNoCandidates,
			Title:   "No Results",
			Message: "No more vignettes available for the selected length.",
		})
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Used as soon as drawn: a failed print must not re-offer it ahead of others.
	s.Pool.MarkUsed(rec.ID)

	comp, err := vignette.Compose(rec, opts.IncludeReflection, s.Rand)
	if err != nil {
		return false, err
	}
	slog.Debug("composed vignette", "id", rec.ID, "blocks", len(comp.Blocks), "reflection", comp.ReflectionIncluded)

	outcome, err := s.Deliver(ctx, comp, opts.Auto)
	switch outcome {
	case OutcomeDelivered:
		if err != nil {
			return false, err
		}
		s.emit(Event{Kind: EventDelivered, Iteration: n, RecordID: rec.ID, Category: rec.Category,
			Message: fmt.Sprintf("Printed vignette %s", rec.ID), Remaining: s.remaining()})
	case OutcomeSkipped:
		if err != nil {
			return false, err
		}
		s.emit(Event{Kind: EventSkipped, Iteration: n, RecordID: rec.ID, Category: rec.Category,
			Message: fmt.Sprintf("Vignette %s not printed", rec.ID), Remaining: s.remaining()})
	case OutcomeFailed:
		s.emit(Event{Kind: EventFailed, Iteration: n, RecordID: rec.ID, Category: rec.Category,
			Message: fmt.Sprintf("Printing vignette %s failed", rec.ID), Err: err.Error(), Remaining: s.remaining()})
		s.Operator.Announce(ctx, Notice{
			Kind:    NoticePrintError,
			Title:   "Printing Error",
			Message: fmt.Sprintf("Could not print to thermal printer:\n%v", err),
		})
	}
	return false, nil
}

func (s *Session) remaining() int {
	return s.Pool.Remaining(s.Records).Total()
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// emit stamps e and sends it to the event channel, or writes it to Log.
// Hooks see every event.
func (s *Session) emit(e Event) {
	e.Timestamp = time.Now()
	for _, h := range s.Hooks {
		h(e)
	}
	if s.Events != nil {
		s.Events <- e
		return
	}
	w := s.Log
	if w == nil {
		w = os.Stdout
	}
	msg := e.Message
	if e.Err != "" {
		msg += ": " + e.Err
	}
	fmt.Fprintf(w, "[%s]  %s\n", e.Timestamp.Format("15:04:05"), msg)
}
