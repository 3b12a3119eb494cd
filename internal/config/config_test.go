package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"session.include_reflection", cfg.Session.IncludeReflection, true},
		{"session.auto_print", cfg.Session.AutoPrint, true},
		{"session.seed", cfg.Session.Seed, int64(0)},
		{"printer.device", cfg.Printer.Device, "/dev/usb/lp0"},
		{"printer.address", cfg.Printer.Address, ""},
		{"printer.line_width", cfg.Printer.LineWidth, 48},
		{"printer.qr_size", cfg.Printer.QRSize, 6},
		{"log.path", cfg.Log.Path, "vignette_print_log.csv"},
		{"log.sqlite_path", cfg.Log.SQLitePath, ""},
		{"tui.accent_color", cfg.TUI.AccentColor, DefaultAccentColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		dir := t.TempDir()
		content := `
[dataset]
path = "data/vignettes.xlsx"
sheet = "Sheet2"

[session]
include_reflection = false
auto_print = false
seed = 99

[printer]
address = "10.0.0.5:9100"
line_width = 42
qr_size = 4

[log]
path = "/var/log/vignettes.csv"
sqlite_path = "log.db"
`
		path := filepath.Join(dir, FileName)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, cfgDir, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfgDir != dir {
			t.Errorf("dir: got %q, want %q", cfgDir, dir)
		}

		tests := []struct {
			name string
			got  any
			want any
		}{
			{"dataset.path", cfg.Dataset.Path, filepath.Join(dir, "data", "vignettes.xlsx")},
			{"dataset.sheet", cfg.Dataset.Sheet, "Sheet2"},
			{"session.include_reflection", cfg.Session.IncludeReflection, false},
			{"session.auto_print", cfg.Session.AutoPrint, false},
			{"session.seed", cfg.Session.Seed, int64(99)},
			{"printer.address", cfg.Printer.Address, "10.0.0.5:9100"},
			{"printer.device", cfg.Printer.Device, "/dev/usb/lp0"},
			{"printer.line_width", cfg.Printer.LineWidth, 42},
			{"printer.qr_size", cfg.Printer.QRSize, 4},
			{"log.path", cfg.Log.Path, "/var/log/vignettes.csv"},
			{"log.sqlite_path", cfg.Log.SQLitePath, filepath.Join(dir, "log.db")},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if tt.got != tt.want {
					t.Errorf("got %v, want %v", tt.got, tt.want)
				}
			})
		}
	})

	t.Run("partial config uses defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, FileName)
		if err := os.WriteFile(path, []byte("[session]\nseed = 1\n"), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, _, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if !cfg.Session.AutoPrint {
			t.Error("session.auto_print: want default true")
		}
		if cfg.Log.Path != filepath.Join(dir, "vignette_print_log.csv") {
			t.Errorf("log.path: got %q", cfg.Log.Path)
		}
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, FileName)
		if err := os.WriteFile(path, []byte("[printer]\nline_widht = 40\n"), 0644); err != nil {
			t.Fatal(err)
		}

		_, _, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "line_widht") {
			t.Errorf("expected unknown key error, got %v", err)
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		if _, _, err := Load("/nonexistent/vignette.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid toml returns error", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, FileName)
		if err := os.WriteFile(path, []byte("not valid [[[ toml"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, _, err := Load(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}

func TestLoadAutoDiscovery(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "sub", "dir")
	if err := os.MkdirAll(child, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("[session]\nseed = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	origDir, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(origDir) })
	if err := os.Chdir(child); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Session.Seed != 7 {
		t.Errorf("session.seed: got %d, want 7", cfg.Session.Seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad dataset extension", func(c *Config) { c.Dataset.Path = "data.ods" }, "dataset.path"},
		{"no printer target", func(c *Config) { c.Printer.Device = ""; c.Printer.Address = "" }, "printer.device"},
		{"narrow line", func(c *Config) { c.Printer.LineWidth = 8 }, "printer.line_width"},
		{"qr too large", func(c *Config) { c.Printer.QRSize = 20 }, "printer.qr_size"},
		{"negative timeout", func(c *Config) { c.Printer.DialTimeoutSeconds = -1 }, "printer.dial_timeout_seconds"},
		{"empty log path", func(c *Config) { c.Log.Path = "" }, "log.path"},
		{"bad accent", func(c *Config) { c.TUI.AccentColor = "teal" }, "tui.accent_color"},
		{"bad notify url", func(c *Config) { c.Notifications.URL = "ftp://x" }, "notifications.url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInitFile(t *testing.T) {
	t.Run("creates vignette.toml", func(t *testing.T) {
		dir := t.TempDir()
		path, err := InitFile(dir)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(path) != FileName {
			t.Errorf("expected %s, got %s", FileName, filepath.Base(path))
		}

		cfg, _, err := Load(path)
		if err != nil {
			t.Fatalf("generated file is not valid: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("generated file does not validate: %v", err)
		}
		if cfg.Printer.LineWidth != 48 {
			t.Errorf("printer.line_width: got %d, want 48", cfg.Printer.LineWidth)
		}
	})

	t.Run("refuses to overwrite existing", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte("existing"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := InitFile(dir); err == nil {
			t.Errorf("expected error when %s already exists", FileName)
		}
	})
}
