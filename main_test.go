package main

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
)

// fakeLCD prints into a frame, or fails every write when err is set.
type fakeLCD struct {
	*alarmclock.Frame
	err error
}

func newFakeLCD() *fakeLCD {
	return &fakeLCD{Frame: alarmclock.NewFrame()}
}

func (l *fakeLCD) PrintWithPos(x, y int, s string) error {
	if l.err != nil {
		return l.err
	}
	if err := l.SetCursor(x, y); err != nil {
		return err
	}
	return l.WriteText(s)
}

func TestInfoupdate(t *testing.T) {
	lcd := newFakeLCD()
	infoupdate(lcd, 0, VERSIONMESSAGE)
	infoupdate(lcd, 1, errmessage[ERROR_HUP])
	assert.Equal(t, "DAC Clock v1.0  ", lcd.Line(0))
	assert.Equal(t, errmessage[ERROR_HUP], lcd.Line(1))
}

func TestInfoupdateLogsWriteErrors(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	lvl := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(lvl)

	lcd := newFakeLCD()
	lcd.err = errors.New("i2c: remote I/O error")
	infoupdate(lcd, 1, errmessage[SYNC_FAILED])

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.DebugLevel, entry.Level)
	assert.Equal(t, lcd.err, entry.Data[log.ErrorKey])
	assert.Equal(t, 1, entry.Data["row"])
}
