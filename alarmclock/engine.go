package alarmclock

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// State is everything the clock knows. The control loop owns it; only
// Time's current counter is also touched by the tick goroutine.
type State struct {
	Time *TimeKeeper
	ModeState
	Alarm AlarmState

	// Redraw asks the renderer to clear the display before painting.
	Redraw bool
}

func NewState() *State {
	return &State{
		Time:      NewTimeKeeper(),
		ModeState: NewModeState(),
		Alarm:     AlarmOff,
		Redraw:    true,
	}
}

func (st *State) requestRedraw(changed bool) {
	if changed {
		st.Redraw = true
	}
}

// Snapshot is a copy of the state taken at the end of an iteration.
type Snapshot struct {
	Mode      Mode
	Field     EditField
	Alarm     AlarmState
	Current   ClockSeconds
	AlarmTime ClockSeconds
	Outputs   OutputLevels
	Screen    Screen
}

// String is the status line of the control socket.
func (s Snapshot) String() string {
	return fmt.Sprintf("%s %s %s %s %s", s.Mode, s.Field, s.Alarm, s.Current, s.AlarmTime)
}

// Controller runs the control loop: route buttons, normalize, evaluate the
// alarm, render.
type Controller struct {
	st     *State
	router InputRouter
	in     ButtonReader
	pulses []*PulseButtons
	out    Outputs
	disp   Display

	mu   sync.Mutex
	last Snapshot
}

// NewController wires the loop. in is the debounced panel and may be nil;
// pulses are drained one press per queue per iteration.
func NewController(st *State, in ButtonReader, out Outputs, disp Display, pulses ...*PulseButtons) *Controller {
	return &Controller{st: st, in: in, pulses: pulses, out: out, disp: disp}
}

// Tick is the 1 Hz handler. The clock advances in every mode.
func (c *Controller) Tick() {
	c.st.Time.AdvanceCurrentTimeBySecond()
}

// Step runs one iteration at now. A display error is returned after the
// outputs have been driven; the next Step clears and repaints.
func (c *Controller) Step(now time.Time) (Snapshot, error) {
	st := c.st
	if c.in != nil {
		c.router.Route(now, c.in.ReadButtons(), st)
	}
	for _, p := range c.pulses {
		if btn, ok := p.Next(); ok {
			c.router.Pulse(now, btn, st)
		}
	}
	st.requestRedraw(st.Time.Normalize())

	lv := EvaluateAlarm(st)
	lv.Drive(c.out)

	scr := Compose(st)
	err := Paint(c.disp, scr, st.Redraw)
	st.Redraw = err != nil

	snap := Snapshot{
		Mode:      st.Mode,
		Field:     st.Field,
		Alarm:     st.Alarm,
		Current:   st.Time.Current(),
		AlarmTime: st.Time.Alarm(),
		Outputs:   lv,
		Screen:    scr,
	}
	c.mu.Lock()
	c.last = snap
	c.mu.Unlock()
	return snap, err
}

// Snapshot returns the result of the latest Step. Safe from any goroutine.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Run steps the controller every period until ctx is done.
func (c *Controller) Run(ctx context.Context, period time.Duration) error {
	t := time.NewTicker(period)
	defer t.Stop()
	failing := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			_, err := c.Step(now)
			if err != nil && !failing {
				log.WithError(err).Error("display")
			} else if err == nil && failing {
				log.Info("display recovered")
			}
			failing = err != nil
		}
	}
}

// Shutdown silences the outputs and blanks the display.
func (c *Controller) Shutdown() error {
	OutputLevels{}.Drive(c.out)
	return c.disp.Clear()
}

// RunTicker calls fn every period until ctx is done. It stands in for the
// hardware timer interrupt.
func RunTicker(ctx context.Context, period time.Duration, fn func()) error {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			fn()
		}
	}
}
