package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration for timeclock, stored as TOML in the
// user's config directory.
type Config struct {
	Stamps    StampsConfig    `toml:"stamps"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Timesheet TimesheetConfig `toml:"timesheet"`
}

// StampsConfig locates the stamp store.
type StampsConfig struct {
	// Dir is the directory holding one file per stamp. A leading ~ expands
	// to the home directory.
	Dir string `toml:"dir"`
}

// ScheduleConfig locates the working-day and holiday schedule.
type ScheduleConfig struct {
	File string `toml:"file"`
}

// TimesheetConfig holds rendering preferences.
type TimesheetConfig struct {
	// Style is the table border style, "box" or "ascii".
	Style string `toml:"style"`
}

// defaultConfig returns a Config pre-filled with the built-in defaults.
func defaultConfig() Config {
	return Config{
		Stamps:    StampsConfig{Dir: "~/.timeclock/stamps"},
		Schedule:  ScheduleConfig{File: "~/.timeclock/schedule.toml"},
		Timesheet: TimesheetConfig{Style: "box"},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# timeclock configuration
#
# All settings are optional; the defaults shown below are used for any key
# that is absent. Edit this file to customise timeclock behaviour.

[stamps]
# Directory holding one <unix-seconds>.stamp file per recorded event.
dir = "~/.timeclock/stamps"

[schedule]
# Holiday/vacation calendar and required weekly hours.
file = "~/.timeclock/schedule.toml"

[timesheet]
# Table style: "box" (Unicode box drawing) or "ascii".
style = "box"
`

// DefaultPath returns the platform config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "timeclock", "config.toml"), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// Load reads the config file at path, creating it with annotated defaults on
// first run. An empty path selects DefaultPath.
func Load(path string) (Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return defaultConfig(), err
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	} else if err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get a
	// usable Config even if the user only partially fills in the file.
	defaults := defaultConfig()
	if cfg.Stamps.Dir == "" {
		cfg.Stamps.Dir = defaults.Stamps.Dir
	}
	if cfg.Schedule.File == "" {
		cfg.Schedule.File = defaults.Schedule.File
	}
	if cfg.Timesheet.Style == "" {
		cfg.Timesheet.Style = defaults.Timesheet.Style
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
