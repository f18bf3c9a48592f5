package timer

import "time"

// Mode selects whether a Session counts down or up.
type Mode int

const (
	Countdown Mode = iota
	Stopwatch
)

func (m Mode) String() string {
	switch m {
	case Countdown:
		return "countdown"
	case Stopwatch:
		return "stopwatch"
	}
	return "unknown"
}

// Status is the lifecycle state of a Session.
type Status int

const (
	Stopped Status = iota
	Running
	Paused
	Finished
)

func (s Status) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Lap is one stopwatch snapshot.
type Lap struct {
	Index   int           `json:"index"` // 1-based
	Elapsed time.Duration `json:"elapsed"`
	Split   time.Duration `json:"split"` // time since the previous lap
}
