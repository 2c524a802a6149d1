package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
)

const (
	serversocket string = "/run/user/1001/go_dacclocksocket"
)

// controlServer accepts one command per line on a unix socket: a button name
// presses that button once, "status" returns the latest snapshot.
type controlServer struct {
	presses *alarmclock.PulseButtons
	status  func() alarmclock.Snapshot
}

func (s *controlServer) handle(line string) string {
	cmd := strings.TrimSpace(line)
	if cmd == "" {
		return ""
	}
	if cmd == "status" {
		return s.status().String()
	}
	b, err := alarmclock.ParseButton(cmd)
	if err != nil {
		return "error: " + err.Error()
	}
	if !s.presses.Press(b) {
		return "error: busy"
	}
	return "ok"
}

// serve runs until ctx is done. The listener is closed on return.
func (s *controlServer) serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.WithError(err).Warn("server: accept")
			continue
		}
		go s.session(ctx, conn)
	}
}

func (s *controlServer) session(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		reply := s.handle(sc.Text())
		if reply == "" {
			continue
		}
		if _, err := fmt.Fprintln(conn, reply); err != nil {
			log.WithError(err).Debug("server: reply")
			return
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.WithError(err).Debug("server: read")
	}
}
