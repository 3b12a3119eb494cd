// Package config parses vignette.toml session configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "vignette.toml"

// DefaultAccentColor is the default TUI accent color (teal).
const DefaultAccentColor = "#2A9D8F"

// hexColorRe matches a 6-digit hex color string like "#2A9D8F".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level vignette.toml configuration.
type Config struct {
	Dataset       DatasetConfig       `toml:"dataset"`
	Session       SessionConfig       `toml:"session"`
	Printer       PrinterConfig       `toml:"printer"`
	Log           LogConfig           `toml:"log"`
	TUI           TUIConfig           `toml:"tui"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// DatasetConfig locates the vignette spreadsheet.
type DatasetConfig struct {
	Path  string `toml:"path"`  // .xlsx or .csv; empty = detect in the config directory
	Sheet string `toml:"sheet"` // xlsx sheet name; empty = first sheet
}

// SessionConfig holds the option dialog defaults.
type SessionConfig struct {
	IncludeReflection bool  `toml:"include_reflection"`
	AutoPrint         bool  `toml:"auto_print"`
	Seed              int64 `toml:"seed"` // 0 = seeded from the clock
}

// PrinterConfig controls the thermal receipt printer.
type PrinterConfig struct {
	Device             string `toml:"device"`
	Address            string `toml:"address"` // host:port of a network printer; overrides device
	LineWidth          int    `toml:"line_width"`
	QRSize             int    `toml:"qr_size"`
	DialTimeoutSeconds int    `toml:"dial_timeout_seconds"`
}

// LogConfig controls the persistent delivery log.
type LogConfig struct {
	Path       string `toml:"path"`
	SQLitePath string `toml:"sqlite_path"` // optional mirror; empty = disabled
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
}

// NotificationsConfig controls webhook/ntfy.sh notifications.
type NotificationsConfig struct {
	URL         string `toml:"url"`
	OnDelivered bool   `toml:"on_delivered"`
	OnFailed    bool   `toml:"on_failed"`
	OnReset     bool   `toml:"on_reset"`
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Dataset.Path != "" {
		switch strings.ToLower(filepath.Ext(c.Dataset.Path)) {
		case ".xlsx", ".xlsm", ".csv":
		default:
			errs = append(errs, fmt.Errorf("dataset.path must be an .xlsx or .csv file"))
		}
	}

	if c.Printer.Device == "" && c.Printer.Address == "" {
		errs = append(errs, fmt.Errorf("printer.device or printer.address must be set"))
	}
	if c.Printer.LineWidth < 16 {
		errs = append(errs, fmt.Errorf("printer.line_width must be >= 16"))
	}
	if c.Printer.QRSize < 1 || c.Printer.QRSize > 16 {
		errs = append(errs, fmt.Errorf("printer.qr_size must be between 1 and 16"))
	}
	if c.Printer.DialTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("printer.dial_timeout_seconds must be >= 0"))
	}

	if c.Log.Path == "" {
		errs = append(errs, fmt.Errorf("log.path must not be empty"))
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#2A9D8F\")"))
	}

	if c.Notifications.URL != "" {
		u, parseErr := url.ParseRequestURI(c.Notifications.URL)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("notifications.url must be a valid http or https URL"))
		}
	}

	return errors.Join(errs...)
}

// Defaults returns a Config matching the reading-room kiosk setup:
// reflection and direct printing on, 48-column USB printer, CSV log in the
// working directory.
func Defaults() Config {
	return Config{
		Session: SessionConfig{
			IncludeReflection: true,
			AutoPrint:         true,
		},
		Printer: PrinterConfig{
			Device:             "/dev/usb/lp0",
			LineWidth:          48,
			QRSize:             6,
			DialTimeoutSeconds: 5,
		},
		Log: LogConfig{
			Path: "vignette_print_log.csv",
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
		},
		Notifications: NotificationsConfig{
			OnDelivered: false,
			OnFailed:    true,
			OnReset:     true,
		},
	}
}

// Load reads vignette.toml from the given path. If path is empty, it walks up
// from the current working directory looking for vignette.toml; when none is
// found the defaults are returned with Dir set to the working directory.
// Relative dataset and log paths are resolved against the config file's
// directory. Returns an error if the file contains unknown keys (likely typos).
func Load(path string) (*Config, string, error) {
	explicit := path != ""
	if !explicit {
		found, err := findConfig()
		if err != nil {
			return nil, "", err
		}
		path = found
	}

	cfg := Defaults()
	if path == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("config: get working directory: %w", err)
		}
		return &cfg, dir, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, "", fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, "", fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, joinKeys(keys))
	}

	dir := filepath.Dir(path)
	cfg.Dataset.Path = resolve(dir, cfg.Dataset.Path)
	cfg.Log.Path = resolve(dir, cfg.Log.Path)
	cfg.Log.SQLitePath = resolve(dir, cfg.Log.SQLitePath)

	return &cfg, dir, nil
}

// resolve joins a relative path onto dir. Empty and absolute paths pass through.
func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// joinKeys formats a slice of key names for display.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

// findConfig walks up from the current directory looking for vignette.toml.
// It returns "" without error when no file exists.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// InitFile writes a default vignette.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	if err := os.WriteFile(path, []byte(initTemplate), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}

const initTemplate = `# vignette.toml: vignette printer session configuration

[dataset]
path = ""   # .xlsx or .csv; empty = the only spreadsheet in this directory
sheet = ""  # xlsx sheet name; empty = first sheet

[session]
include_reflection = true  # default for "Include a reflection question"
auto_print = true          # default for "Skip screen display and print directly"
seed = 0                   # 0 = random per run

[printer]
device = "/dev/usb/lp0"    # USB printer character device
address = ""               # host:9100 for a network printer (overrides device)
line_width = 48
qr_size = 6
dial_timeout_seconds = 5

[log]
path = "vignette_print_log.csv"
sqlite_path = ""           # optional SQLite mirror of the delivery log

[tui]
accent_color = "#2A9D8F"

[notifications]
url = ""            # ntfy.sh topic URL or any HTTP webhook (empty = disabled)
on_delivered = false
on_failed = true
on_reset = true
`
