package main

import (
	"github.com/stianeikeland/go-rpio/v4"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
)

// panelPins are BCM pin numbers.
type panelPins struct {
	Mode      int
	Increment int
	Switch    int
	Decrement int
	Buzzer    int
	Indicator int
}

var defaultPins = panelPins{
	Mode:      7,
	Increment: 6,
	Switch:    5,
	Decrement: 4,
	Buzzer:    3,
	Indicator: 2,
}

// gpioPanel is the front panel: four buttons to ground with the internal
// pull-ups enabled, a piezo buzzer and an indicator LED.
type gpioPanel struct {
	btnscan   [4]rpio.Pin // mode, increment, switch, decrement
	buzzer    rpio.Pin
	indicator rpio.Pin
}

// openPanel configures the pins. rpio.Open must have succeeded.
func openPanel(p panelPins) *gpioPanel {
	g := &gpioPanel{
		btnscan: [4]rpio.Pin{
			rpio.Pin(p.Mode), rpio.Pin(p.Increment),
			rpio.Pin(p.Switch), rpio.Pin(p.Decrement),
		},
		buzzer:    rpio.Pin(p.Buzzer),
		indicator: rpio.Pin(p.Indicator),
	}
	for _, sn := range g.btnscan {
		sn.Input()
		sn.PullUp()
	}
	for _, out := range []rpio.Pin{g.buzzer, g.indicator} {
		out.Output()
		out.Low()
	}
	return g
}

func pressed(s rpio.State) bool {
	return s == rpio.Low
}

func (g *gpioPanel) ReadButtons() alarmclock.Buttons {
	return alarmclock.Buttons{
		Mode:      pressed(g.btnscan[0].Read()),
		Increment: pressed(g.btnscan[1].Read()),
		Switch:    pressed(g.btnscan[2].Read()),
		Decrement: pressed(g.btnscan[3].Read()),
	}
}

func level(on bool) rpio.State {
	if on {
		return rpio.High
	}
	return rpio.Low
}

func (g *gpioPanel) SetBuzzer(on bool) {
	g.buzzer.Write(level(on))
}

func (g *gpioPanel) SetIndicator(on bool) {
	g.indicator.Write(level(on))
}

// Close drives the outputs low and leaves them pulled down.
func (g *gpioPanel) Close() {
	for _, out := range []rpio.Pin{g.buzzer, g.indicator} {
		out.Low()
		out.PullDown()
	}
}
