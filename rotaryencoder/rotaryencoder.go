package rotaryencoder

import (
	"context"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

type REvector int

const (
	NoData REvector = iota
	Forward
	Backward
)

func (v REvector) String() string {
	switch v {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "none"
}

// rest is the A/B state between detents with the pull-ups enabled.
const rest = 0b11

// quadrature steps indexed by previous<<2 | current. Forward runs
// 11 -> 01 -> 00 -> 10 -> 11 (A falls first).
var steps = [16]int8{
	0b1101: 1, 0b0100: 1, 0b0010: 1, 0b1011: 1,
	0b0111: -1, 0b0001: -1, 0b1000: -1, 0b1110: -1,
}

// Decoder follows the gray code of the two phases and reports one step per
// detent. A half turn that comes back reports nothing.
type Decoder struct {
	last    uint8
	counter int
}

func NewDecoder() *Decoder {
	return &Decoder{last: rest}
}

func (d *Decoder) Update(a, b bool) REvector {
	cur := bit(a)<<1 | bit(b)
	d.counter += int(steps[d.last<<2|cur])
	d.last = cur
	if cur != rest {
		return NoData
	}
	n := d.counter
	d.counter = 0
	switch {
	case n > 0:
		return Forward
	case n < 0:
		return Backward
	}
	return NoData
}

func bit(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

type RotaryEncoder struct {
	pin_a        rpio.Pin
	pin_b        rpio.Pin
	samplingtime time.Duration
	dec          *Decoder
}

// New configures both phases as inputs with pull-ups. rpio.Open must have
// succeeded.
func New(a, b rpio.Pin) *RotaryEncoder {
	for _, p := range []rpio.Pin{a, b} {
		p.Input()
		p.PullUp()
	}
	return &RotaryEncoder{
		pin_a:        a,
		pin_b:        b,
		samplingtime: 2 * time.Millisecond,
		dec:          NewDecoder(),
	}
}

func (r *RotaryEncoder) SetSamplingTime(d time.Duration) {
	r.samplingtime = d
}

// DetectLoop samples the phases until ctx is done and calls fn for every
// detent.
func (r *RotaryEncoder) DetectLoop(ctx context.Context, fn func(REvector)) error {
	t := time.NewTicker(r.samplingtime)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if v := r.dec.Update(r.pin_a.Read() == rpio.High, r.pin_b.Read() == rpio.High); v != NoData {
				fn(v)
			}
		}
	}
}
