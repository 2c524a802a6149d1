package alarmclock

// AlarmState is the arming state of the alarm.
type AlarmState int

const (
	AlarmOff AlarmState = iota
	AlarmArmed
	AlarmSounding
)

func (a AlarmState) String() string {
	switch a {
	case AlarmOff:
		return "off"
	case AlarmArmed:
		return "armed"
	case AlarmSounding:
		return "sounding"
	}
	return "unknown"
}

// Glyph is the one-character status shown in the bottom right corner:
// D(isarmed), E(nabled), A(ctive).
func (a AlarmState) Glyph() byte {
	switch a {
	case AlarmArmed:
		return 'E'
	case AlarmSounding:
		return 'A'
	}
	return 'D'
}

// Enabled reports whether the indicator light should be on.
func (a AlarmState) Enabled() bool {
	return a == AlarmArmed || a == AlarmSounding
}

// Outputs drives the buzzer and the indicator light.
type Outputs interface {
	SetBuzzer(on bool)
	SetIndicator(on bool)
}

// OutputLevels is the result of one alarm evaluation.
type OutputLevels struct {
	Buzzer    bool
	Indicator bool
}

// EvaluateAlarm is the level-triggered alarm check run once per iteration.
// Once the current time has reached the alarm time an enabled alarm sounds,
// and keeps sounding every iteration until the user snoozes or disarms it.
func EvaluateAlarm(st *State) OutputLevels {
	var lv OutputLevels
	if st.Alarm.Enabled() && st.Time.Current() >= st.Time.Alarm() {
		st.Alarm = AlarmSounding
		lv.Buzzer = true
	}
	lv.Indicator = st.Alarm.Enabled()
	return lv
}

// Drive writes the levels to the outputs.
func (lv OutputLevels) Drive(out Outputs) {
	out.SetBuzzer(lv.Buzzer)
	out.SetIndicator(lv.Indicator)
}

// toggleAlarm is the Decrement action in Clock mode.
func (st *State) toggleAlarm() {
	switch st.Alarm {
	case AlarmSounding, AlarmArmed:
		st.Alarm = AlarmOff
	default:
		st.Alarm = AlarmArmed
	}
}

// snooze silences a sounding alarm and re-arms it nine minutes from now.
func (st *State) snooze() bool {
	if st.Alarm != AlarmSounding {
		return false
	}
	st.Alarm = AlarmArmed
	st.Time.snooze()
	return true
}
