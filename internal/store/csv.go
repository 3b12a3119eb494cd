package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// TimestampLayout is the ISO-8601 local time written to the Timestamp column.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// CSV is a Store backed by an append-only CSV file with a header row. The
// file is synced after every Append; existing rows are never rewritten.
type CSV struct {
	path string
	mu   sync.Mutex
	file *os.File
}

// OpenCSV opens the delivery log at path for appending, creating the parent
// directory and writing the header row when the file does not exist yet.
func OpenCSV(path string) (*CSV, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("store: mkdir %q: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("store: stat %q: %w", path, err)
	}
	c := &CSV{path: path, file: f}
	if info.Size() == 0 {
		if err := c.write(Columns); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return c, nil
}

// Path returns the file the log writes to.
func (c *CSV) Path() string { return c.path }

// Append writes entry as one CSV row and syncs the file.
func (c *CSV) Append(entry vignette.DeliveryLogEntry) error {
	row := []string{
		entry.RecordID,
		entry.Timestamp.Format(TimestampLayout),
		formatBool(entry.ReflectionIncluded),
		entry.ReflectionText,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(row)
}

func (c *CSV) write(row []string) error {
	w := csv.NewWriter(c.file)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := c.file.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (c *CSV) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file.Close()
}

// Entries reads every row back from disk.
func (c *CSV) Entries() ([]vignette.DeliveryLogEntry, error) {
	return ReadCSV(c.path)
}

// ReadCSV parses the delivery log at path. A missing file yields no entries.
// Malformed rows are logged and skipped.
func ReadCSV(path string) ([]vignette.DeliveryLogEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var entries []vignette.DeliveryLogEntry
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entries, fmt.Errorf("store: read %q: %w", path, err)
		}
		if line == 1 && len(row) > 0 && row[0] == Columns[0] {
			continue
		}
		e, err := parseRow(row)
		if err != nil {
			slog.Warn("store: skipping malformed log row", "path", path, "line", line, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseRow(row []string) (vignette.DeliveryLogEntry, error) {
	if len(row) < len(Columns) {
		return vignette.DeliveryLogEntry{}, fmt.Errorf("expected %d fields, got %d", len(Columns), len(row))
	}
	ts, err := parseTimestamp(row[1])
	if err != nil {
		return vignette.DeliveryLogEntry{}, err
	}
	included, err := strconv.ParseBool(strings.TrimSpace(row[2]))
	if err != nil {
		return vignette.DeliveryLogEntry{}, fmt.Errorf("reflection flag: %w", err)
	}
	return vignette.DeliveryLogEntry{
		RecordID:           row[0],
		Timestamp:          ts,
		ReflectionIncluded: included,
		ReflectionText:     row[3],
	}, nil
}

// parseTimestamp accepts local ISO-8601 with or without fractional seconds,
// and RFC 3339.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return t, nil
}

// formatBool writes booleans as True/False, as existing logs do.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
