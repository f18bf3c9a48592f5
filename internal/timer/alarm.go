package timer

import (
	"fmt"
	"strings"
	"time"
)

var alarmLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04 PM", "3:04pm", "3:04 pm"}

type alarm struct {
	hour, minute int
	ringtone     string
	lastFired    time.Time // minute in which the alarm last fired
}

// AlarmStatus is a read-only view of the alarm.
type AlarmStatus struct {
	Set       bool
	Target    string // "HH:MM"
	Ringtone  string
	LastFired time.Time
}

// ParseAlarmTime parses a wall-clock time of day. Seconds are accepted and
// dropped; alarms match at minute precision.
func ParseAlarmTime(target string) (hour, minute int, err error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return 0, 0, fmt.Errorf("%w: empty time", ErrInvalidTime)
	}
	for _, layout := range alarmLayouts {
		if t, perr := time.Parse(layout, target); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, fmt.Errorf("%w: %q, want HH:MM", ErrInvalidTime, target)
}

// SetAlarm arms the alarm for target (HH:MM) with the given ringtone. An
// empty ringtone selects DefaultRingtone. Setting an alarm replaces any
// previous one.
func (s *Session) SetAlarm(target, ringtone string) error {
	hour, minute, err := ParseAlarmTime(target)
	if err != nil {
		return err
	}
	if ringtone == "" {
		ringtone = DefaultRingtone
	}
	s.alarm = &alarm{hour: hour, minute: minute, ringtone: ringtone}
	return nil
}

// CheckAlarm reports whether the alarm fires at now. It fires at most once
// per matching minute; clearing it afterwards is left to the caller.
func (s *Session) CheckAlarm(now time.Time) bool {
	a := s.alarm
	if a == nil {
		return false
	}
	if now.Hour() != a.hour || now.Minute() != a.minute {
		return false
	}
	minute := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())
	if minute.Equal(a.lastFired) {
		return false
	}
	a.lastFired = minute

	ev := s.event(EventAlarm, s.clock.Now())
	ev.Ringtone = a.ringtone
	s.notify(ev)
	return true
}

// ClearAlarm disarms the alarm.
func (s *Session) ClearAlarm() {
	s.alarm = nil
}

// AlarmStatus describes the current alarm, if any.
func (s *Session) AlarmStatus() AlarmStatus {
	if s.alarm == nil {
		return AlarmStatus{}
	}
	return AlarmStatus{
		Set:       true,
		Target:    fmt.Sprintf("%02d:%02d", s.alarm.hour, s.alarm.minute),
		Ringtone:  s.alarm.ringtone,
		LastFired: s.alarm.lastFired,
	}
}
