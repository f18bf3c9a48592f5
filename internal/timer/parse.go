package timer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxInputMinutes bounds the bare-minutes form accepted by ParseDuration.
const MaxInputMinutes = 999

// ParseDuration turns user input into whole seconds. A bare integer is a
// number of minutes (1 to MaxInputMinutes); anything else must be a Go
// duration such as "90s" or "1h30m", rounded to the nearest second.
func ParseDuration(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidConfig)
	}

	if minutes, err := strconv.Atoi(input); err == nil {
		if minutes < 1 || minutes > MaxInputMinutes {
			return 0, fmt.Errorf("%w: minutes must be between 1 and %d, got %d", ErrInvalidConfig, MaxInputMinutes, minutes)
		}
		return minutes * 60, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number of minutes or a duration", ErrInvalidConfig, input)
	}
	seconds := int(d.Round(time.Second) / time.Second)
	if seconds < 1 || seconds > maxSeconds {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidConfig, d)
	}
	return seconds, nil
}
