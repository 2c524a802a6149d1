package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
	"github.com/sakaisatoru/go_dacclock_raspi/simulator"
)

func newSimCmd(opts *options) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the clock in the terminal instead of on the Pi",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the terminal belongs to the simulator
			log.SetOutput(io.Discard)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				if err != nil {
					return fmt.Errorf("could not open log file: %w", err)
				}
				defer f.Close()
				log.SetOutput(f)
			}
			return runSim(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the simulator runs")
	return cmd
}

func runSim(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := alarmclock.NewState()
	st.Time.SetCurrent(int(alarmclock.FromTime(time.Now())))
	syncClock(ctx, st, opts.syncURL, nil)

	presses := alarmclock.NewPulseButtons(16)
	m := simulator.New(st, opts.period, presses)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return alarmclock.RunTicker(gctx, time.Second, m.Controller().Tick) })
	startServer(gctx, g, opts.socket, presses, m.Controller())

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}
