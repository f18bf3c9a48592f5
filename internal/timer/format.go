package timer

import "fmt"

// FormatSeconds renders a countdown value as MM:SS, or H:MM:SS past an hour.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatMillis renders a stopwatch value as MM:SS.cc, or H:MM:SS.cc past an
// hour.
func FormatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	cs := (ms % 1000) / 10
	return fmt.Sprintf("%s.%02d", FormatSeconds(ms/1000), cs)
}

// Format renders the session's DisplayValue for its mode.
func (s *Session) Format() string {
	if s.mode == Stopwatch {
		return FormatMillis(s.DisplayValue())
	}
	return FormatSeconds(s.DisplayValue())
}
