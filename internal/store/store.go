// Package store persists delivered vignettes to an append-only log and reads
// them back for reporting. The CSV log is the system of record; an optional
// SQLite database mirrors it. One writer is opened per session in
// cmd/vignette and closed when the session ends.
package store

import (
	"errors"
	"time"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// Columns is the header row of the CSV delivery log.
var Columns = []string{"ID", "Timestamp", "Reflection_Included", "Reflection_Text"}

// Writer appends delivery records to durable storage.
type Writer interface {
	Append(entry vignette.DeliveryLogEntry) error
	Close() error
}

// Reader retrieves past deliveries in the order they were written.
type Reader interface {
	Entries() ([]vignette.DeliveryLogEntry, error)
}

// Store combines Writer and Reader into a single handle.
type Store interface {
	Writer
	Reader
}

// Summary aggregates a delivery history.
type Summary struct {
	Deliveries     int
	WithReflection int
	DistinctIDs    int
	First          time.Time
	Last           time.Time
}

// Summarize computes a Summary over entries.
func Summarize(entries []vignette.DeliveryLogEntry) Summary {
	var s Summary
	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		s.Deliveries++
		if e.ReflectionIncluded {
			s.WithReflection++
		}
		ids[e.RecordID] = struct{}{}
		if s.First.IsZero() || e.Timestamp.Before(s.First) {
			s.First = e.Timestamp
		}
		if e.Timestamp.After(s.Last) {
			s.Last = e.Timestamp
		}
	}
	s.DistinctIDs = len(ids)
	return s
}

// tee fans Append out to several writers in order.
type tee []Writer

// Tee returns a Writer that appends to every w in order, stopping at the
// first failure. Close closes all of them and joins their errors.
func Tee(w ...Writer) Writer {
	if len(w) == 1 {
		return w[0]
	}
	return tee(w)
}

func (t tee) Append(entry vignette.DeliveryLogEntry) error {
	for _, w := range t {
		if err := w.Append(entry); err != nil {
			return err
		}
	}
	return nil
}

func (t tee) Close() error {
	var errs []error
	for _, w := range t {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}
