package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fakeyudi/tempo/internal/worldclock"
)

// Config holds all configurable tempo settings.
type Config struct {
	FocusMinutes       int      `json:"focus_minutes"`
	BreakMinutes       int      `json:"break_minutes"`
	Ringtone           string   `json:"ringtone"`
	Sound              *bool    `json:"sound,omitempty"`
	AlarmAutoClear     *bool    `json:"alarm_auto_clear,omitempty"`
	CountdownRefreshMs int      `json:"countdown_refresh_ms"`
	StopwatchRefreshMs int      `json:"stopwatch_refresh_ms"`
	TimeAPIURL         string   `json:"time_api_url"`
	Zones              []string `json:"zones"`
	HistoryPath        string   `json:"history_path"` // empty means the XDG data dir
}

// minStopwatchRefresh is the fastest stopwatch redraw allowed.
const minStopwatchRefresh = 10 * time.Millisecond

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		FocusMinutes:       25,
		BreakMinutes:       5,
		Ringtone:           "bell",
		Sound:              boolPtr(true),
		AlarmAutoClear:     boolPtr(false),
		CountdownRefreshMs: 1000,
		StopwatchRefreshMs: 50,
		TimeAPIURL:         worldclock.DefaultBaseURL,
		Zones:              append([]string(nil), worldclock.DefaultZones...),
	}
}

func boolPtr(b bool) *bool { return &b }

// GlobalPath is ~/.config/tempo/config.json.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tempo", "config.json"), nil
}

// LoadGlobal reads ~/.config/tempo/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .temporc in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".temporc", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	for _, layer := range []*Config{global, project} {
		if layer != nil {
			result.overlay(layer)
		}
	}
	return result
}

// overlay copies every set field of c onto r.
func (r *Config) overlay(c *Config) {
	if c.FocusMinutes > 0 {
		r.FocusMinutes = c.FocusMinutes
	}
	if c.BreakMinutes > 0 {
		r.BreakMinutes = c.BreakMinutes
	}
	if c.Ringtone != "" {
		r.Ringtone = c.Ringtone
	}
	if c.Sound != nil {
		r.Sound = boolPtr(*c.Sound)
	}
	if c.AlarmAutoClear != nil {
		r.AlarmAutoClear = boolPtr(*c.AlarmAutoClear)
	}
	if c.CountdownRefreshMs > 0 {
		r.CountdownRefreshMs = c.CountdownRefreshMs
	}
	if c.StopwatchRefreshMs > 0 {
		r.StopwatchRefreshMs = c.StopwatchRefreshMs
	}
	if c.TimeAPIURL != "" {
		r.TimeAPIURL = c.TimeAPIURL
	}
	if len(c.Zones) > 0 {
		r.Zones = c.Zones
	}
	if c.HistoryPath != "" {
		r.HistoryPath = c.HistoryPath
	}
}

// SoundEnabled reports whether ringtones should be played.
func (c Config) SoundEnabled() bool { return c.Sound == nil || *c.Sound }

// AutoClearAlarm reports whether an alarm is cleared after it fires.
func (c Config) AutoClearAlarm() bool { return c.AlarmAutoClear != nil && *c.AlarmAutoClear }

func (c Config) FocusDuration() time.Duration {
	return time.Duration(c.FocusMinutes) * time.Minute
}

func (c Config) BreakDuration() time.Duration {
	return time.Duration(c.BreakMinutes) * time.Minute
}

// CountdownRefresh is the countdown redraw interval.
func (c Config) CountdownRefresh() time.Duration {
	if c.CountdownRefreshMs <= 0 {
		return time.Second
	}
	return time.Duration(c.CountdownRefreshMs) * time.Millisecond
}

// StopwatchRefresh is the stopwatch redraw interval, never below 10ms.
func (c Config) StopwatchRefresh() time.Duration {
	d := time.Duration(c.StopwatchRefreshMs) * time.Millisecond
	if d < minStopwatchRefresh {
		return minStopwatchRefresh
	}
	return d
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
