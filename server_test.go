package main

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
)

func newTestServer() (*controlServer, *alarmclock.PulseButtons) {
	presses := alarmclock.NewPulseButtons(4)
	snap := alarmclock.Snapshot{
		Mode:      alarmclock.Clock,
		Field:     alarmclock.Hours,
		Alarm:     alarmclock.AlarmArmed,
		Current:   3723,
		AlarmTime: 25200,
	}
	return &controlServer{
		presses: presses,
		status:  func() alarmclock.Snapshot { return snap },
	}, presses
}

func drain(p *alarmclock.PulseButtons) []alarmclock.Button {
	var out []alarmclock.Button
	for {
		b, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}

func TestHandleQueuesEveryPress(t *testing.T) {
	srv, presses := newTestServer()
	for i := 0; i < 3; i++ {
		require.Equal(t, "ok", srv.handle("inc"))
	}
	assert.Len(t, drain(presses), 3)
}

func TestHandle(t *testing.T) {
	srv, presses := newTestServer()

	assert.Equal(t, "ok", srv.handle("inc\n"))
	assert.Equal(t, "ok", srv.handle(" MODE "))
	assert.Equal(t, []alarmclock.Button{alarmclock.ButtonIncrement, alarmclock.ButtonMode}, drain(presses))

	assert.Equal(t, srv.status().String(), srv.handle("status"))
	assert.Equal(t, "", srv.handle("   "))
	assert.Contains(t, srv.handle("volume"), "error: ")
}

func TestHandleBusy(t *testing.T) {
	srv, _ := newTestServer()
	for i := 0; i < 4; i++ {
		require.Equal(t, "ok", srv.handle("dec"))
	}
	assert.Equal(t, "error: busy", srv.handle("dec"))
}

func TestServeAndPress(t *testing.T) {
	srv, presses := newTestServer()
	path := filepath.Join(t.TempDir(), "ctl.sock")
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, ln) }()

	var out bytes.Buffer
	require.NoError(t, sendCommands(path, []string{"switch", "status"}, &out))
	assert.Equal(t, "ok\n"+srv.status().String()+"\n", out.String())
	assert.Equal(t, []alarmclock.Button{alarmclock.ButtonSwitch}, drain(presses))

	err = sendCommands(path, []string{"mode", "snooze", "dec"}, &out)
	assert.ErrorContains(t, err, "snooze")
	assert.Equal(t, []alarmclock.Button{alarmclock.ButtonMode}, drain(presses))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestSendCommandsNoServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.sock")
	err := sendCommands(path, []string{"status"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "could not connect")
}
