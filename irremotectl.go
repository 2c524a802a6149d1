package main

import (
	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
	"github.com/sakaisatoru/go_dacclock_raspi/irremote"
)

var (
	irbuttons = map[uint16]alarmclock.Button{
		irremote.KEY_SELECT: alarmclock.ButtonMode,
		irremote.KEY_UP:     alarmclock.ButtonIncrement,
		irremote.KEY_RIGHT:  alarmclock.ButtonSwitch,
		irremote.KEY_STOP:   alarmclock.ButtonSwitch, // snooze
		irremote.KEY_DOWN:   alarmclock.ButtonDecrement,
	}
)

// irfunc turns remote keys into one-shot presses. Holding up/down repeats
// like holding the panel button; the other keys act once per press.
func irfunc(presses *alarmclock.PulseButtons) func(irremote.Key) {
	return func(k irremote.Key) {
		b, ok := irbuttons[k.Code]
		if !ok {
			return
		}
		switch k.Action {
		case irremote.Press:
		case irremote.Repeat:
			if b != alarmclock.ButtonIncrement && b != alarmclock.ButtonDecrement {
				return
			}
		default:
			return
		}
		presses.Press(b)
	}
}
