package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectDataset(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		want    string
		wantErr string
	}{
		{name: "empty directory", files: nil, wantErr: "no .xlsx or .csv"},
		{name: "single xlsx", files: []string{"vignettes.xlsx", "notes.txt"}, want: "vignettes.xlsx"},
		{name: "log file is ignored", files: []string{"vignette_print_log.csv", "data.csv"}, want: "data.csv"},
		{name: "office lock file is ignored", files: []string{"~$data.xlsx", "data.xlsx"}, want: "data.xlsx"},
		{name: "several candidates", files: []string{"a.csv", "b.xlsx"}, wantErr: "a.csv, b.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644); err != nil {
					t.Fatal(err)
				}
			}

			got, err := DetectDataset(dir, "vignette_print_log.csv")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != filepath.Join(dir, tt.want) {
				t.Errorf("got %q, want %q", got, filepath.Join(dir, tt.want))
			}
		})
	}
}
