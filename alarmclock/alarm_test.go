package alarmclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeOutputs struct {
	buzzer, indicator bool
	writes            int
}

func (o *fakeOutputs) SetBuzzer(on bool)    { o.buzzer = on; o.writes++ }
func (o *fakeOutputs) SetIndicator(on bool) { o.indicator = on; o.writes++ }

func TestAlarmTrigger(t *testing.T) {
	tests := []struct {
		name      string
		state     AlarmState
		current   int
		alarm     int
		wantState AlarmState
		want      OutputLevels
	}{
		{"armed at alarm time", AlarmArmed, 3600, 3600, AlarmSounding, OutputLevels{Buzzer: true, Indicator: true}},
		{"armed past alarm time", AlarmArmed, 3700, 3600, AlarmSounding, OutputLevels{Buzzer: true, Indicator: true}},
		{"armed before alarm time", AlarmArmed, 3599, 3600, AlarmArmed, OutputLevels{Indicator: true}},
		{"off at alarm time", AlarmOff, 3600, 3600, AlarmOff, OutputLevels{}},
		{"sounding keeps sounding", AlarmSounding, 4000, 3600, AlarmSounding, OutputLevels{Buzzer: true, Indicator: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			st.Alarm = tt.state
			st.Time.SetCurrent(tt.current)
			st.Time.SetAlarm(tt.alarm)

			lv := EvaluateAlarm(st)
			assert.Equal(t, tt.wantState, st.Alarm)
			assert.Equal(t, tt.want, lv)

			var out fakeOutputs
			lv.Drive(&out)
			assert.Equal(t, tt.want.Buzzer, out.buzzer)
			assert.Equal(t, tt.want.Indicator, out.indicator)
		})
	}
}

func TestAlarmStaysSoundingAcrossIterations(t *testing.T) {
	st := NewState()
	st.Alarm = AlarmArmed
	st.Time.SetAlarm(100)
	st.Time.SetCurrent(100)
	for i := 0; i < 5; i++ {
		lv := EvaluateAlarm(st)
		assert.True(t, lv.Buzzer)
		st.Time.AdvanceCurrentTimeBySecond()
	}
	assert.Equal(t, AlarmSounding, st.Alarm)
}

func TestSnooze(t *testing.T) {
	st := NewState()
	st.Alarm = AlarmSounding
	st.Time.SetCurrent(25000)
	assert.True(t, st.snooze())
	assert.Equal(t, AlarmArmed, st.Alarm)
	assert.Equal(t, ClockSeconds(25000+SnoozeSeconds), st.Time.Alarm())

	assert.False(t, st.snooze(), "nothing to snooze once armed")
}

func TestToggleAlarm(t *testing.T) {
	st := NewState()
	st.toggleAlarm()
	assert.Equal(t, AlarmArmed, st.Alarm)
	st.toggleAlarm()
	assert.Equal(t, AlarmOff, st.Alarm)
	st.Alarm = AlarmSounding
	st.toggleAlarm()
	assert.Equal(t, AlarmOff, st.Alarm)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, byte('D'), AlarmOff.Glyph())
	assert.Equal(t, byte('E'), AlarmArmed.Glyph())
	assert.Equal(t, byte('A'), AlarmSounding.Glyph())
}
