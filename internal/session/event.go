package session

import (
	"fmt"
	"time"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// EventKind identifies the type of a session event.
type EventKind int

const (
	EventInfo         EventKind = iota // General informational message
	EventIterStart                     // Iteration starting
	EventReset                         // Pool exhausted and cleared
	EventNoCandidates                  // Chosen category had nothing left
	EventDelivered                     // Printed and logged
	EventSkipped                       // Operator declined at preview
	EventFailed                        // Rendering sink failed
	EventDone                          // Operator ended the session
	EventStopped                       // Context cancelled
)

// String returns a short lowercase name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventInfo:
		return "info"
	case EventIterStart:
		return "iteration"
	case EventReset:
		return "reset"
	case EventNoCandidates:
		return "no-candidates"
	case EventDelivered:
		return "delivered"
	case EventSkipped:
		return "skipped"
	case EventFailed:
		return "failed"
	case EventDone:
		return "done"
	case EventStopped:
		return "stopped"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a structured record of something the session did. When
// Session.Events is set, events are sent there; otherwise they are written
// as timestamped lines to Session.Log.
type Event struct {
	Kind      EventKind
	Timestamp time.Time
	Message   string

	Iteration int
	RecordID  string
	Category  vignette.Category
	Remaining int // records left across all categories after this event
	Err       string
}
