package alarmclock

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Settle windows after a recognised action. While a window is open every
// button sample is ignored, so one physical press is not read several times.
const (
	ModeSettle   = 100 * time.Millisecond
	AdjustSettle = 50 * time.Millisecond
	SwitchSettle = 100 * time.Millisecond
	ToggleSettle = 100 * time.Millisecond
)

// InputRouter maps button samples onto the state.
type InputRouter struct {
	quietUntil time.Time
}

// Route applies one sample of the panel taken at now. The buttons are handled
// in panel order (mode, increment, switch, decrement), each seeing the effect
// of the previous one. It reports whether anything happened.
func (r *InputRouter) Route(now time.Time, b Buttons, st *State) bool {
	if !b.Any() || now.Before(r.quietUntil) {
		return false
	}
	return r.apply(now, b, st)
}

// Pulse applies a one-shot press even while the settle window is open. The
// window is still extended so a panel press made at the same time is not
// read twice.
func (r *InputRouter) Pulse(now time.Time, btn Button, st *State) bool {
	var b Buttons
	b.Press(btn)
	return r.apply(now, b, st)
}

func (r *InputRouter) apply(now time.Time, b Buttons, st *State) bool {
	acted := false
	if b.Mode {
		st.requestRedraw(st.PressMode())
		log.Debugf("mode button: %s", st.Mode)
		r.settle(now, ModeSettle)
		acted = true
	}
	if b.Increment {
		if st.Editing() {
			st.Time.Adjust(st.Target(), st.Field, +1)
			r.settle(now, AdjustSettle)
		} else {
			st.requestRedraw(st.EnterAlarmSetting())
			log.Debugf("increment button: %s", st.Mode)
		}
		acted = true
	}
	if b.Switch {
		if st.Editing() {
			st.requestRedraw(st.NextField())
			r.settle(now, SwitchSettle)
			acted = true
		} else if st.snooze() {
			log.Debugf("snoozed until %s", st.Time.Alarm())
			acted = true
		}
	}
	if b.Decrement {
		switch st.Mode {
		case Clock:
			st.toggleAlarm()
			log.Debugf("alarm: %s", st.Alarm)
			r.settle(now, ToggleSettle)
		case SettingTime, SettingAlarm:
			st.Time.Adjust(st.Target(), st.Field, -1)
			r.settle(now, AdjustSettle)
		}
		acted = true
	}
	return acted
}

func (r *InputRouter) settle(now time.Time, d time.Duration) {
	if until := now.Add(d); until.After(r.quietUntil) {
		r.quietUntil = until
	}
}
