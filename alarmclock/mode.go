package alarmclock

// Mode is the top-level mode of the clock.
type Mode int

const (
	SettingTime Mode = iota
	SettingAlarm
	Clock
)

func (m Mode) String() string {
	switch m {
	case SettingTime:
		return "time"
	case SettingAlarm:
		return "alarm"
	case Clock:
		return "clock"
	}
	return "unknown"
}

// EditField is the time component being edited in SettingTime/SettingAlarm.
type EditField int

const (
	Hours EditField = iota
	Minutes
	Seconds
)

// Step is the number of seconds one press adds or removes.
func (f EditField) Step() int {
	switch f {
	case Hours:
		return SecondsPerHour
	case Minutes:
		return SecondsPerMinute
	}
	return 1
}

// Next returns the field after f: hours, minutes, seconds, hours...
func (f EditField) Next() EditField {
	switch f {
	case Hours:
		return Minutes
	case Minutes:
		return Seconds
	}
	return Hours
}

func (f EditField) String() string {
	switch f {
	case Hours:
		return "HOURS"
	case Minutes:
		return "MINUTES"
	case Seconds:
		return "SECONDS"
	}
	return "?"
}

// ModeState is the mode/field state machine. Every method that changes the
// mode or the field returns true so the caller can request a full redraw.
type ModeState struct {
	Mode  Mode
	Field EditField
}

func NewModeState() ModeState {
	return ModeState{Mode: Clock, Field: Hours}
}

// Editing reports whether a counter is being edited.
func (s *ModeState) Editing() bool {
	return s.Mode == SettingTime || s.Mode == SettingAlarm
}

// Target is the counter shown and edited in the current mode.
func (s *ModeState) Target() Target {
	if s.Mode == SettingAlarm {
		return AlarmTime
	}
	return CurrentTime
}

// PressMode enters SettingTime from Clock with the field back on hours, and
// returns to Clock from either editing mode.
func (s *ModeState) PressMode() bool {
	if s.Mode == Clock {
		s.Mode = SettingTime
		s.Field = Hours
	} else {
		s.Mode = Clock
	}
	return true
}

// EnterAlarmSetting switches Clock to SettingAlarm, keeping the field.
func (s *ModeState) EnterAlarmSetting() bool {
	if s.Mode != Clock {
		return false
	}
	s.Mode = SettingAlarm
	return true
}

// NextField cycles the edit field. It does nothing outside the editing modes.
func (s *ModeState) NextField() bool {
	if !s.Editing() {
		return false
	}
	s.Field = s.Field.Next()
	return true
}
