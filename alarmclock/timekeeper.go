package alarmclock

import (
	"sync/atomic"
)

// Target selects which counter an adjustment applies to.
type Target int

const (
	CurrentTime Target = iota
	AlarmTime
)

// TimeKeeper owns the current-time and alarm-time counters.
//
// The current time is shared with the tick goroutine. Every mutation is a
// single atomic add or compare-and-swap, so a tick landing in the middle of an
// adjustment or a wrap is never lost. The alarm time is only written by the
// control loop but is kept atomic so status readers can see it.
type TimeKeeper struct {
	current atomic.Int32
	alarm   atomic.Int32
}

func NewTimeKeeper() *TimeKeeper {
	return &TimeKeeper{}
}

// AdvanceCurrentTimeBySecond is the tick handler. It may run concurrently
// with the control loop.
func (k *TimeKeeper) AdvanceCurrentTimeBySecond() {
	k.current.Add(1)
}

// Adjust moves the target by one unit of field in the direction of delta.
// The result may leave the day; Normalize brings it back.
func (k *TimeKeeper) Adjust(target Target, field EditField, delta int) {
	switch {
	case delta > 0:
		delta = 1
	case delta < 0:
		delta = -1
	default:
		return
	}
	k.counter(target).Add(int32(delta * field.Step()))
}

// Normalize wraps both counters back into the day by a single period: one
// day is taken off a counter at or past midnight and added to a negative one,
// so 23:59:59 plus a second is 00:00:00 and 00:00:00 minus a second is
// 23:59:59. Adjustments never exceed an hour, so one period is enough.
// It reports whether either counter wrapped; the display then needs a full
// redraw.
func (k *TimeKeeper) Normalize() bool {
	a := wrapOnce(&k.current)
	b := wrapOnce(&k.alarm)
	return a || b
}

func wrapOnce(c *atomic.Int32) bool {
	for {
		v := c.Load()
		var next int32
		switch {
		case v >= SecondsPerDay:
			next = v - SecondsPerDay
		case v < 0:
			next = v + SecondsPerDay
		default:
			return false
		}
		if c.CompareAndSwap(v, next) {
			return true
		}
	}
}

// Current reads the current time. A tick may land after Normalize, so the
// raw counter can briefly sit at midnight+1 day; readers always get it
// wrapped.
func (k *TimeKeeper) Current() ClockSeconds {
	return wrapDay(int(k.current.Load()))
}

func (k *TimeKeeper) Alarm() ClockSeconds {
	return wrapDay(int(k.alarm.Load()))
}

// SetCurrent seeds the current time. Unlike Adjust the value is reduced
// modulo one day.
func (k *TimeKeeper) SetCurrent(s int) {
	k.current.Store(int32(wrapDay(s)))
}

// SetAlarm seeds the alarm time, reduced modulo one day.
func (k *TimeKeeper) SetAlarm(s int) {
	k.alarm.Store(int32(wrapDay(s)))
}

// snooze reschedules the alarm relative to the current time. A sum past
// midnight is left for Normalize like any other adjustment.
func (k *TimeKeeper) snooze() {
	k.alarm.Store(k.current.Load() + SnoozeSeconds)
}

func (k *TimeKeeper) counter(t Target) *atomic.Int32 {
	if t == AlarmTime {
		return &k.alarm
	}
	return &k.current
}
