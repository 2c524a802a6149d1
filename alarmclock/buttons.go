package alarmclock

import (
	"fmt"
	"strings"
)

// Button names one of the four front panel buttons.
type Button int

const (
	ButtonMode Button = iota
	ButtonIncrement
	ButtonSwitch
	ButtonDecrement
)

var buttonNames = []string{"mode", "inc", "switch", "dec"}

func (b Button) String() string {
	if b < 0 || int(b) >= len(buttonNames) {
		return "unknown"
	}
	return buttonNames[b]
}

// ParseButton accepts the names used by the control socket.
func ParseButton(s string) (Button, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range buttonNames {
		if s == n {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// Buttons is one sample of the four button lines; true means pressed.
type Buttons struct {
	Mode      bool
	Increment bool
	Switch    bool
	Decrement bool
}

// Press marks btn as pressed in the sample.
func (b *Buttons) Press(btn Button) {
	switch btn {
	case ButtonMode:
		b.Mode = true
	case ButtonIncrement:
		b.Increment = true
	case ButtonSwitch:
		b.Switch = true
	case ButtonDecrement:
		b.Decrement = true
	}
}

func (b Buttons) Any() bool {
	return b.Mode || b.Increment || b.Switch || b.Decrement
}

// ButtonReader samples the button lines. It is called once per iteration and
// must not block.
type ButtonReader interface {
	ReadButtons() Buttons
}

// PulseButtons queues one-shot presses posted from other goroutines (IR
// remote, control socket, knob, keyboard). They do not bounce, so the control
// loop applies them outside the settle window, one per iteration.
type PulseButtons struct {
	ch chan Button
}

func NewPulseButtons(depth int) *PulseButtons {
	return &PulseButtons{ch: make(chan Button, depth)}
}

// Press queues a press. It never blocks; when the queue is full the press is
// dropped and false is returned.
func (p *PulseButtons) Press(btn Button) bool {
	select {
	case p.ch <- btn:
		return true
	default:
		return false
	}
}

// Next takes the oldest queued press. The rest stay queued for later
// iterations.
func (p *PulseButtons) Next() (Button, bool) {
	select {
	case btn := <-p.ch:
		return btn, true
	default:
		return 0, false
	}
}
