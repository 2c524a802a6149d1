package alarmclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldCycleIsThreeCycle(t *testing.T) {
	for _, start := range []EditField{Hours, Minutes, Seconds} {
		f := start
		for i := 0; i < 3; i++ {
			f = f.Next()
		}
		assert.Equal(t, start, f)
	}
	assert.Equal(t, Minutes, Hours.Next())
	assert.Equal(t, Seconds, Minutes.Next())
	assert.Equal(t, Hours, Seconds.Next())
}

func TestPressModeResetsField(t *testing.T) {
	s := NewModeState()
	assert.Equal(t, Clock, s.Mode)

	assert.True(t, s.PressMode())
	assert.Equal(t, SettingTime, s.Mode)
	assert.Equal(t, Hours, s.Field)

	s.Mode = SettingAlarm
	s.Field = Seconds
	s.PressMode()
	assert.Equal(t, Clock, s.Mode)
	s.PressMode()
	assert.Equal(t, SettingTime, s.Mode)
	assert.Equal(t, Hours, s.Field, "entering SettingTime starts on hours")
}

func TestEnterAlarmSettingKeepsField(t *testing.T) {
	s := ModeState{Mode: Clock, Field: Minutes}
	assert.True(t, s.EnterAlarmSetting())
	assert.Equal(t, SettingAlarm, s.Mode)
	assert.Equal(t, Minutes, s.Field)

	assert.False(t, s.EnterAlarmSetting(), "only from Clock")
	assert.Equal(t, SettingAlarm, s.Mode)
}

func TestNextFieldOnlyWhileEditing(t *testing.T) {
	s := NewModeState()
	assert.False(t, s.NextField())
	assert.Equal(t, Hours, s.Field)

	s.Mode = SettingTime
	assert.True(t, s.NextField())
	assert.Equal(t, Minutes, s.Field)
	assert.Equal(t, SettingTime, s.Mode)
}

func TestTarget(t *testing.T) {
	assert.Equal(t, CurrentTime, (&ModeState{Mode: SettingTime}).Target())
	assert.Equal(t, AlarmTime, (&ModeState{Mode: SettingAlarm}).Target())
	assert.Equal(t, CurrentTime, (&ModeState{Mode: Clock}).Target())
}
