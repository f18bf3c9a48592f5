package timer

import "time"

// EventType identifies a Session notification.
type EventType string

const (
	EventStarted  EventType = "started"
	EventResumed  EventType = "resumed"
	EventPaused   EventType = "paused"
	EventReset    EventType = "reset"
	EventLap      EventType = "lap"
	EventFinished EventType = "finished"
	EventAlarm    EventType = "alarm"
)

// Event is delivered to observers registered with Subscribe.
type Event struct {
	Type     EventType
	Status   Status
	Value    int64 // DisplayValue at the time of the event
	Lap      *Lap
	Ringtone string
	At       time.Time
}
