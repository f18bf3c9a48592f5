package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TEMPO_"

// LoadDotEnv loads an optional .env file from the working directory.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides cfg from TEMPO_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := get("FOCUS_MINUTES"); v != "" {
		n, err := positiveInt("FOCUS_MINUTES", v)
		if err != nil {
			return err
		}
		cfg.FocusMinutes = n
	}
	if v := get("BREAK_MINUTES"); v != "" {
		n, err := positiveInt("BREAK_MINUTES", v)
		if err != nil {
			return err
		}
		cfg.BreakMinutes = n
	}
	if v := get("RINGTONE"); v != "" {
		cfg.Ringtone = v
	}
	if v := get("SOUND"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSOUND: %w", EnvPrefix, err)
		}
		cfg.Sound = boolPtr(b)
	}
	if v := get("ALARM_AUTO_CLEAR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sALARM_AUTO_CLEAR: %w", EnvPrefix, err)
		}
		cfg.AlarmAutoClear = boolPtr(b)
	}
	if v := get("COUNTDOWN_REFRESH_MS"); v != "" {
		n, err := positiveInt("COUNTDOWN_REFRESH_MS", v)
		if err != nil {
			return err
		}
		cfg.CountdownRefreshMs = n
	}
	if v := get("STOPWATCH_REFRESH_MS"); v != "" {
		n, err := positiveInt("STOPWATCH_REFRESH_MS", v)
		if err != nil {
			return err
		}
		cfg.StopwatchRefreshMs = n
	}
	if v := get("TIME_API_URL"); v != "" {
		cfg.TimeAPIURL = v
	}
	if v := get("ZONES"); v != "" {
		var zones []string
		for _, z := range strings.Split(v, ",") {
			if z = strings.TrimSpace(z); z != "" {
				zones = append(zones, z)
			}
		}
		if len(zones) > 0 {
			cfg.Zones = zones
		}
	}
	if v := get("HISTORY_PATH"); v != "" {
		cfg.HistoryPath = v
	}
	return nil
}

// Debug reports whether TEMPO_DEBUG is set to a true value.
func Debug() bool {
	b, _ := strconv.ParseBool(get("DEBUG"))
	return b
}

func get(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func positiveInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s%s: want a positive integer, got %q", EnvPrefix, key, v)
	}
	return n, nil
}
