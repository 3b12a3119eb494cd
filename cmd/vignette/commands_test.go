package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.Vignette/internal/vignette"
)

func TestRootCmdStructure(t *testing.T) {
	root := rootCmd()

	if root.Use != "vignette" {
		t.Errorf("root Use = %q, want %q", root.Use, "vignette")
	}
	for _, flag := range []string{"config", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing --%s persistent flag", flag)
		}
	}

	subs := map[string]bool{}
	for _, sub := range root.Commands() {
		subs[sub.Name()] = true
	}
	for _, want := range []string{"run", "init", "history", "pool"} {
		if !subs[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestRunCmdFlags(t *testing.T) {
	cmd := runCmd()
	for _, flag := range []string{"dataset", "no-tui", "dry-run", "seed"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("run: missing --%s flag", flag)
		}
	}
}

func TestFormatScaffoldResult(t *testing.T) {
	tests := []struct {
		name     string
		created  []string
		contains []string
		excludes []string
	}{
		{
			name:     "nothing created",
			created:  nil,
			contains: []string{"All files already exist"},
			excludes: []string{"Created"},
		},
		{
			name:     "files created",
			created:  []string{"vignette.toml", "vignettes.csv"},
			contains: []string{"Created vignette.toml", "Created vignettes.csv"},
			excludes: []string{"already exist"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatScaffoldResult(tt.created)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output should contain %q\ngot:\n%s", want, got)
				}
			}
			for _, exclude := range tt.excludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should NOT contain %q\ngot:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestFormatHistory(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	entries := []vignette.DeliveryLogEntry{
		{RecordID: "1", Timestamp: base, ReflectionIncluded: true, ReflectionText: "Why here?"},
		{RecordID: "2", Timestamp: base.Add(time.Minute)},
		{RecordID: "1", Timestamp: base.Add(2 * time.Minute)},
	}

	t.Run("empty", func(t *testing.T) {
		got := formatHistory("log.csv", nil, 10)
		if !strings.Contains(got, "No deliveries logged yet in log.csv") {
			t.Errorf("got:\n%s", got)
		}
	})

	t.Run("summary and last rows", func(t *testing.T) {
		got := formatHistory("log.csv", entries, 2)
		for _, want := range []string{
			"Delivery Log",
			"Deliveries:          3",
			"With reflection:     1",
			"Distinct vignettes:  2",
			"First:               2025-03-14 09:00:00",
			"Last:                2025-03-14 09:02:00",
			"Last 2",
			"2025-03-14 09:01:00  2       no reflection",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("output should contain %q\ngot:\n%s", want, got)
			}
		}
		if strings.Contains(got, "Why here?") {
			t.Errorf("only the last 2 rows should be listed:\n%s", got)
		}
	})

	t.Run("zero last lists nothing", func(t *testing.T) {
		if got := formatHistory("log.csv", entries, 0); strings.Contains(got, "Last ") {
			t.Errorf("got:\n%s", got)
		}
	})
}

func TestFormatTopCounts(t *testing.T) {
	if got := formatTopCounts(nil, 5); got != "" {
		t.Errorf("empty counts: got %q", got)
	}

	got := formatTopCounts(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}, 3)
	want := "\nMost printed\n  c       5×\n  a       2×\n  b       2×\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatPool(t *testing.T) {
	records := []vignette.Record{
		{ID: "1", Category: vignette.Short},
		{ID: "2", Category: vignette.Short},
		{ID: "3", Category: vignette.Long},
	}
	got := formatPool(records)
	for _, want := range []string{
		"Short [fewer than 200 words]",
		"Medium [between 200 & 300 words]     0",
		"Long [more than 300 words]           1",
		"Total                                3",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output should contain %q\ngot:\n%s", want, got)
		}
	}
}

// --- End-to-end command execution tests ---

func TestInitThenPool(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cmd := initCmd()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("initCmd RunE: %v", err)
	}
	for _, name := range []string{"vignette.toml", "vignettes.csv", ".gitignore"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	var out bytes.Buffer
	if err := showPool(&out, "", ""); err != nil {
		t.Fatalf("showPool: %v", err)
	}
	if !strings.Contains(out.String(), "Total                                1") {
		t.Errorf("pool output:\n%s", out.String())
	}
}

func TestInitCmdIdempotent(t *testing.T) {
	t.Chdir(t.TempDir())

	for i := 0; i < 2; i++ {
		cmd := initCmd()
		if err := cmd.RunE(cmd, nil); err != nil {
			t.Fatalf("initCmd run %d: %v", i+1, err)
		}
	}
}

func TestShowHistory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "vignette.toml")
	writeTestFile(t, cfgPath, "[log]\npath = \"log.csv\"\n")
	writeTestFile(t, filepath.Join(dir, "log.csv"),
		"ID,Timestamp,Reflection_Included,Reflection_Text\n"+
			"4,2025-01-02T10:00:00.000000,True,What changed?\n")

	var out bytes.Buffer
	if err := showHistory(&out, cfgPath, 5); err != nil {
		t.Fatalf("showHistory: %v", err)
	}
	for _, want := range []string{"Deliveries:          1", "reflection: What changed?"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q\ngot:\n%s", want, out.String())
		}
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
