package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/notify"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/prompt"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/session"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/store"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/tui"
	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

// runOptions are the command-line overrides for a session.
type runOptions struct {
	configPath string
	dataset    string
	noTUI      bool
	dryRun     bool
	seed       int64
}

// executeSession loads config and dataset, wires the printer, delivery log,
// operator and notifications, and runs the session until the operator exits.
func executeSession(ctx context.Context, opts runOptions, in io.Reader, out io.Writer) error {
	cfg, dir, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dataset != "" {
		cfg.Dataset.Path = opts.dataset
	}
	if opts.seed != 0 {
		cfg.Session.Seed = opts.seed
	}

	records, err := loadRecords(cfg, dir)
	if err != nil {
		return err
	}

	deliveries, err := openDeliveryLog(cfg.Log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := deliveries.Close(); closeErr != nil {
			slog.Error("close delivery log", "err", closeErr)
		}
	}()

	s := &session.Session{
		Records:    records,
		Pool:       vignette.NewPool(),
		Rand:       newRand(cfg.Session.Seed),
		Renderer:   buildRenderer(cfg.Printer, opts.dryRun, out),
		Deliveries: deliveries,
		Log:        out,
	}

	defaults := session.Options{IncludeReflection: cfg.Session.IncludeReflection, Auto: cfg.Session.AutoPrint}
	if opts.noTUI {
		op := prompt.New(in, out, defaults)
		defer func() { _ = op.Close() }()
		s.Operator = op
	} else {
		op := tui.NewOperator(cfg.TUI.AccentColor, defaults, in, out)
		s.Operator = op
		// The options dialog shows recent events itself.
		s.Log = io.Discard
		s.Hooks = append(s.Hooks, op.Record)
	}

	if cfg.Notifications.URL != "" {
		n := notify.New(cfg.Notifications.URL, "", cfg.Notifications.OnDelivered, cfg.Notifications.OnFailed, cfg.Notifications.OnReset)
		s.Hooks = append(s.Hooks, n.Hook)
		defer n.Wait()
	}

	slog.Debug("session starting", "records", len(records), "log", cfg.Log.Path, "dry_run", opts.dryRun, "tui", !opts.noTUI)

	err = s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// showHistory prints a summary of the delivery log and its last entries.
// When a SQLite mirror exists, the most printed vignettes are listed too.
func showHistory(w io.Writer, configPath string, last int) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	entries, err := store.ReadCSV(cfg.Log.Path)
	if err != nil {
		return err
	}
	fmt.Fprint(w, formatHistory(cfg.Log.Path, entries, last))

	if cfg.Log.SQLitePath == "" {
		return nil
	}
	if _, statErr := os.Stat(cfg.Log.SQLitePath); statErr != nil {
		return nil
	}
	db, err := store.OpenSQLite(cfg.Log.SQLitePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	counts, err := db.DeliveryCounts()
	if err != nil {
		return err
	}
	fmt.Fprint(w, formatTopCounts(counts, 5))
	return nil
}

// showPool prints the dataset's per-category counts.
func showPool(w io.Writer, configPath, datasetPath string) error {
	cfg, dir, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if datasetPath != "" {
		cfg.Dataset.Path = datasetPath
	}
	records, err := loadRecords(cfg, dir)
	if err != nil {
		return err
	}
	fmt.Fprint(w, formatPool(records))
	return nil
}
