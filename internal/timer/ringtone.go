package timer

// Ringtones understood by the tempo hosts.
const (
	RingtoneBeep   = "beep"
	RingtoneChime  = "chime"
	RingtoneBell   = "bell"
	RingtoneMelody = "melody"
)

// DefaultRingtone is used when none is given.
const DefaultRingtone = RingtoneBell

// Ringtones lists the known ringtone ids.
func Ringtones() []string {
	return []string{RingtoneBeep, RingtoneChime, RingtoneBell, RingtoneMelody}
}

// IsKnownRingtone reports whether id is one of Ringtones.
func IsKnownRingtone(id string) bool {
	for _, r := range Ringtones() {
		if r == id {
			return true
		}
	}
	return false
}
