package alarmclock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondsToTimeString(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{43200, "12:00:00"},
		{86399, "23:59:59"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SecondsToTimeString(tt.in), "seconds %d", tt.in)
	}
}

func TestAdjustSteps(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		field  EditField
		delta  int
		want   ClockSeconds
	}{
		{"hours up", CurrentTime, Hours, +1, 1000 + 3600},
		{"minutes up", CurrentTime, Minutes, +1, 1000 + 60},
		{"seconds up", CurrentTime, Seconds, +1, 1000 + 1},
		{"hours down", AlarmTime, Hours, -1, 1000 - 3600 + SecondsPerDay},
		{"minutes down", AlarmTime, Minutes, -1, 1000 - 60},
		{"seconds down", AlarmTime, Seconds, -1, 1000 - 1},
		{"zero delta", CurrentTime, Hours, 0, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewTimeKeeper()
			k.SetCurrent(1000)
			k.SetAlarm(1000)
			k.Adjust(tt.target, tt.field, tt.delta)
			k.Normalize()
			if tt.target == CurrentTime {
				assert.Equal(t, tt.want, k.Current())
				assert.Equal(t, ClockSeconds(1000), k.Alarm())
			} else {
				assert.Equal(t, tt.want, k.Alarm())
				assert.Equal(t, ClockSeconds(1000), k.Current())
			}
		})
	}
}

func TestNormalizeBoundaries(t *testing.T) {
	k := NewTimeKeeper()
	k.SetCurrent(86399)
	k.Adjust(CurrentTime, Seconds, +1)
	assert.Equal(t, int32(SecondsPerDay), k.current.Load(), "adjust does not wrap by itself")
	assert.True(t, k.Normalize())
	assert.Equal(t, ClockSeconds(0), k.Current())

	k.Adjust(AlarmTime, Seconds, -1)
	assert.True(t, k.Normalize())
	assert.Equal(t, ClockSeconds(86399), k.Alarm())

	assert.False(t, k.Normalize(), "in-range values are left alone")
}

func TestWrapInvariant(t *testing.T) {
	fields := []EditField{Hours, Minutes, Seconds}
	for _, start := range []int{0, 1, 59, 3599, 3600, 43210, 82800, 86340, 86399} {
		for _, f := range fields {
			for _, d := range []int{-1, +1} {
				k := NewTimeKeeper()
				k.SetCurrent(start)
				k.SetAlarm(start)
				k.Adjust(CurrentTime, f, d)
				k.Adjust(AlarmTime, f, d)
				k.Normalize()
				for _, v := range []ClockSeconds{k.Current(), k.Alarm()} {
					require.GreaterOrEqual(t, int(v), 0)
					require.Less(t, int(v), SecondsPerDay)
					want := ((start+d*f.Step())%SecondsPerDay + SecondsPerDay) % SecondsPerDay
					require.Equal(t, ClockSeconds(want), v, "start %d field %s delta %d", start, f, d)
				}
			}
		}
	}
}

func TestTwentyFourHoursIsIdentity(t *testing.T) {
	for _, start := range []int{0, 1, 3599, 45296, 86399} {
		k := NewTimeKeeper()
		k.SetCurrent(start)
		for i := 0; i < 24; i++ {
			k.Adjust(CurrentTime, Hours, +1)
			k.Normalize()
		}
		assert.Equal(t, ClockSeconds(start), k.Current(), "start %d", start)
	}
}

func TestReadsWrapBeforeNormalize(t *testing.T) {
	k := NewTimeKeeper()
	k.SetCurrent(86399)
	k.Normalize()
	// a tick between Normalize and the readers of the iteration
	k.AdvanceCurrentTimeBySecond()
	assert.Equal(t, ClockSeconds(0), k.Current())
	assert.Equal(t, "00:00:00", k.Current().String())

	k.Adjust(AlarmTime, Seconds, -1)
	assert.Equal(t, ClockSeconds(86399), k.Alarm())

	assert.True(t, k.Normalize())
	assert.Equal(t, ClockSeconds(0), k.Current())
}

func TestSetWrapsModulo(t *testing.T) {
	k := NewTimeKeeper()
	k.SetCurrent(2*SecondsPerDay + 5)
	k.SetAlarm(-1)
	assert.Equal(t, ClockSeconds(5), k.Current())
	assert.Equal(t, ClockSeconds(86399), k.Alarm())
}

func TestTicksDuringAdjustments(t *testing.T) {
	k := NewTimeKeeper()
	const ticks = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < ticks; i++ {
			k.AdvanceCurrentTimeBySecond()
		}
	}()
	for i := 0; i < 100; i++ {
		k.Adjust(CurrentTime, Minutes, +1)
		k.Adjust(CurrentTime, Minutes, -1)
		k.Normalize()
	}
	wg.Wait()
	k.Normalize()
	assert.Equal(t, ClockSeconds(ticks), k.Current())
}

func TestFromTime(t *testing.T) {
	k := NewTimeKeeper()
	k.SetCurrent(int(FromTime(mustParseClock(t, "07:08:09"))))
	assert.Equal(t, "07:08:09", k.Current().String())
}
