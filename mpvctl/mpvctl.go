package mpvctl

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os/exec"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	MPVOPTION1 string = "--idle"
	MPVOPTION2 string = "--input-ipc-server="
	MPVOPTION3 string = "--no-video"
	MPVOPTION4 string = "--loop-file=inf"
)

var mpvpath = "/usr/bin/mpv"

type mpvCommand struct {
	Command []any `json:"command"`
}

type mpvReply struct {
	Err   string `json:"error"`
	Event string `json:"event"`
}

// Conn is a JSON IPC session with a running mpv.
type Conn struct {
	mu   sync.Mutex
	conn net.Conn
	dec  *json.Decoder
}

// Dial retries until mpv has created its socket or ctx is done.
func Dial(ctx context.Context, socketpath string) (*Conn, error) {
	var d net.Dialer
	for {
		c, err := d.DialContext(ctx, "unix", socketpath)
		if err == nil {
			return &Conn{conn: c, dec: json.NewDecoder(c)}, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("mpv ipc: %w", err)
		case <-time.After(200 * time.Millisecond):
		}
	}
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

// Send runs one command and waits for its reply. Events that arrive in
// between are skipped.
func (c *Conn) Send(args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetDeadline(time.Now().Add(2 * time.Second))
	b, err := json.Marshal(mpvCommand{Command: args})
	if err != nil {
		return err
	}
	if _, err := c.conn.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("mpv ipc: %w", err)
	}
	for {
		var r mpvReply
		if err := c.dec.Decode(&r); err != nil {
			return fmt.Errorf("mpv ipc: %w", err)
		}
		if r.Event != "" {
			continue
		}
		if r.Err != "success" {
			return fmt.Errorf("mpv %v: %s", args[0], r.Err)
		}
		return nil
	}
}

func (c *Conn) Load(url string) error {
	return c.Send("loadfile", url, "replace")
}

func (c *Conn) Stop() error {
	return c.Send("stop")
}

// Start launches an idle mpv listening on socketpath. It is killed when ctx
// is done.
func Start(ctx context.Context, socketpath string) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, mpvpath, MPVOPTION1,
		MPVOPTION2+socketpath, MPVOPTION3, MPVOPTION4)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("mpv: %w", err)
	}
	return cmd, nil
}

// Player is the part of Conn the alarm sound needs.
type Player interface {
	Load(url string) error
	Stop() error
}

// Outputs is the buzzer/indicator pair of the clock.
type Outputs interface {
	SetBuzzer(on bool)
	SetIndicator(on bool)
}

// AlarmSound passes the outputs through and plays url while the buzzer is
// on. Commands go to mpv from a separate goroutine so the control loop never
// waits on the player.
type AlarmSound struct {
	Outputs
	url    string
	want   chan bool
	on     bool
	player Player
}

func NewAlarmSound(out Outputs, p Player, url string) *AlarmSound {
	return &AlarmSound{
		Outputs: out,
		url:     url,
		want:    make(chan bool, 1),
		player:  p,
	}
}

func (a *AlarmSound) SetBuzzer(on bool) {
	a.Outputs.SetBuzzer(on)
	if on == a.on {
		return
	}
	a.on = on
	// only the latest level matters
	select {
	case <-a.want:
	default:
	}
	a.want <- on
}

// Run applies buzzer changes to the player until ctx is done, then stops
// playback.
func (a *AlarmSound) Run(ctx context.Context) error {
	playing := false
	for {
		select {
		case <-ctx.Done():
			if playing {
				a.player.Stop()
			}
			return nil
		case on := <-a.want:
			if on == playing {
				continue
			}
			var err error
			if on {
				err = a.player.Load(a.url)
			} else {
				err = a.player.Stop()
			}
			if err != nil {
				log.WithError(err).Warn("alarm sound")
				continue
			}
			playing = on
		}
	}
}
