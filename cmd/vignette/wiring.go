package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/config"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/dataset"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/printer"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/session"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/store"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// setupLogging installs a text slog handler on w as the default logger.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig loads and validates vignette.toml, returning its directory.
func loadConfig(path string) (*config.Config, string, error) {
	cfg, dir, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config: %w", err)
	}
	return cfg, dir, nil
}

// loadRecords reads the dataset named in cfg, or the single spreadsheet
// found in dir when none is named.
func loadRecords(cfg *config.Config, dir string) ([]vignette.Record, error) {
	path := cfg.Dataset.Path
	if path == "" {
		detected, err := config.DetectDataset(dir, cfg.Log.Path)
		if err != nil {
			return nil, err
		}
		path = detected
	}

	records, err := dataset.Load(path, cfg.Dataset.Sheet)
	if err != nil {
		return nil, err
	}
	slog.Info("dataset loaded", "path", path, "records", len(records))
	return records, nil
}

// newRand returns the session's random source. A zero seed draws a fresh
// one from the runtime.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// buildRenderer picks the rendering sink: plain text on out for dry runs,
// otherwise the ESC/POS printer on its network address or local device.
func buildRenderer(pc config.PrinterConfig, dryRun bool, out io.Writer) session.Renderer {
	if dryRun {
		return &printer.Text{W: out, Width: pc.LineWidth}
	}
	open := printer.DeviceOpener(pc.Device)
	if pc.Address != "" {
		open = printer.NetworkOpener(pc.Address, time.Duration(pc.DialTimeoutSeconds)*time.Second)
	}
	return &printer.Printer{Open: open, Width: pc.LineWidth, QRSize: pc.QRSize}
}

// openDeliveryLog opens the CSV log and, when configured, its SQLite mirror.
func openDeliveryLog(lc config.LogConfig) (store.Writer, error) {
	csvLog, err := store.OpenCSV(lc.Path)
	if err != nil {
		return nil, err
	}
	if lc.SQLitePath == "" {
		return csvLog, nil
	}
	db, err := store.OpenSQLite(lc.SQLitePath)
	if err != nil {
		_ = csvLog.Close()
		return nil, err
	}
	slog.Debug("delivery log mirrored", "sqlite", lc.SQLitePath, "session", db.SessionID())
	return store.Tee(csvLog, db), nil
}

// formatScaffoldResult formats the output of init.
func formatScaffoldResult(created []string) string {
	if len(created) == 0 {
		return "All files already exist; nothing to create.\n"
	}
	var b strings.Builder
	for _, path := range created {
		fmt.Fprintf(&b, "Created %s\n", path)
	}
	return b.String()
}

// formatHistory formats a delivery-log summary followed by the last entries.
func formatHistory(path string, entries []vignette.DeliveryLogEntry, last int) string {
	var b strings.Builder
	if len(entries) == 0 {
		fmt.Fprintf(&b, "No deliveries logged yet in %s\n", path)
		return b.String()
	}

	sum := store.Summarize(entries)
	b.WriteString("Delivery Log\n")
	b.WriteString("────────────\n")
	fmt.Fprintf(&b, "  %-20s %s\n", "File:", path)
	fmt.Fprintf(&b, "  %-20s %d\n", "Deliveries:", sum.Deliveries)
	fmt.Fprintf(&b, "  %-20s %d\n", "With reflection:", sum.WithReflection)
	fmt.Fprintf(&b, "  %-20s %d\n", "Distinct vignettes:", sum.DistinctIDs)
	fmt.Fprintf(&b, "  %-20s %s\n", "First:", sum.First.Format(time.DateTime))
	fmt.Fprintf(&b, "  %-20s %s\n", "Last:", sum.Last.Format(time.DateTime))

	if last <= 0 {
		return b.String()
	}
	recent := entries
	if len(recent) > last {
		recent = recent[len(recent)-last:]
	}
	fmt.Fprintf(&b, "\nLast %d\n", len(recent))
	for _, e := range recent {
		reflection := "no reflection"
		if e.ReflectionIncluded {
			reflection = "reflection: " + e.ReflectionText
		}
		fmt.Fprintf(&b, "  %s  %-6s  %s\n", e.Timestamp.Format(time.DateTime), e.RecordID, reflection)
	}
	return b.String()
}

// formatTopCounts lists the n most printed vignette IDs, ties broken by ID.
func formatTopCounts(counts map[string]int, n int) string {
	if len(counts) == 0 {
		return ""
	}
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}

	var b strings.Builder
	b.WriteString("\nMost printed\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "  %-6s  %d×\n", id, counts[id])
	}
	return b.String()
}

// formatPool formats per-category dataset counts.
func formatPool(records []vignette.Record) string {
	counts := vignette.NewPool().Remaining(records)

	var b strings.Builder
	b.WriteString("Vignettes\n")
	b.WriteString("─────────\n")
	for _, c := range vignette.Categories {
		fmt.Fprintf(&b, "  %-36s %d\n", c.Label(), counts[c])
	}
	fmt.Fprintf(&b, "  %-36s %d\n", "Total", counts.Total())
	return b.String()
}
