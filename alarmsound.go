package main

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
	"github.com/sakaisatoru/go_dacclock_raspi/mpvctl"
)

const mpvsocket string = "/run/user/1001/go_dacclock_mpvsocket"

// startAlarmSound starts mpv and returns outputs that also play url while
// the buzzer is on. Without a url, or when mpv cannot be started, out is
// returned unchanged.
func startAlarmSound(ctx context.Context, g *errgroup.Group, url, socket string, out alarmclock.Outputs) alarmclock.Outputs {
	if url == "" {
		return out
	}
	os.Remove(socket)
	cmd, err := mpvctl.Start(ctx, socket)
	if err != nil {
		log.WithError(err).Warn("alarm sound disabled")
		return out
	}
	g.Go(func() error {
		// killed with ctx
		cmd.Wait()
		return nil
	})
	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	conn, err := mpvctl.Dial(dctx, socket)
	if err != nil {
		log.WithError(err).Warn("alarm sound disabled")
		return out
	}
	snd := mpvctl.NewAlarmSound(out, conn, url)
	g.Go(func() error {
		defer conn.Close()
		return snd.Run(ctx)
	})
	return snd
}
