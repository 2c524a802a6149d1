package main

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/stianeikeland/go-rpio/v4"
	"golang.org/x/sync/errgroup"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
	"github.com/sakaisatoru/go_dacclock_raspi/rotaryencoder"
)

// encfunc turns each detent of the knob into one increment or decrement.
func encfunc(presses *alarmclock.PulseButtons) func(rotaryencoder.REvector) {
	return func(v rotaryencoder.REvector) {
		switch v {
		case rotaryencoder.Forward:
			presses.Press(alarmclock.ButtonIncrement)
		case rotaryencoder.Backward:
			presses.Press(alarmclock.ButtonDecrement)
		}
	}
}

func startEncoder(ctx context.Context, g *errgroup.Group, a, b int, presses *alarmclock.PulseButtons) {
	if a < 0 || b < 0 {
		return
	}
	re := rotaryencoder.New(rpio.Pin(a), rpio.Pin(b))
	log.WithFields(log.Fields{"a": a, "b": b}).Debug("rotary encoder")
	g.Go(func() error { return re.DetectLoop(ctx, encfunc(presses)) })
}
