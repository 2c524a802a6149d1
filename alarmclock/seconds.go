// Package alarmclock is the time/state engine of the DAC alarm clock: the
// second counters, the mode/field state machine, the button router and the
// alarm controller, plus the composition of the 16x2 screen.
package alarmclock

import (
	"fmt"
	"time"
)

const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour

	// SnoozeSeconds is how far the alarm is pushed back by a snooze.
	SnoozeSeconds = 9 * SecondsPerMinute
)

// ClockSeconds counts seconds since midnight, [0, SecondsPerDay).
type ClockSeconds int32

// HMS splits s into hours, minutes and seconds.
func (s ClockSeconds) HMS() (h, m, sec int) {
	v := int(s)
	h = v / SecondsPerHour
	m = (v % SecondsPerHour) / SecondsPerMinute
	sec = v % SecondsPerMinute
	return
}

func (s ClockSeconds) String() string {
	return SecondsToTimeString(int(s))
}

// SecondsToTimeString renders seconds since midnight as HH:MM:SS.
func SecondsToTimeString(s int) string {
	h, m, sec := ClockSeconds(s).HMS()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

// FromTime returns the seconds since midnight of t in its own location.
func FromTime(t time.Time) ClockSeconds {
	h, m, s := t.Clock()
	return ClockSeconds(h*SecondsPerHour + m*SecondsPerMinute + s)
}

// wrapDay is the modulo used by the seeding setters, which accept any value.
func wrapDay(v int) ClockSeconds {
	v %= SecondsPerDay
	if v < 0 {
		v += SecondsPerDay
	}
	return ClockSeconds(v)
}
