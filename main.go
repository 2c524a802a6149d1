package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecheney/i2c"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stianeikeland/go-rpio/v4"
	"golang.org/x/sync/errgroup"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
	"github.com/sakaisatoru/go_dacclock_raspi/charlcd"
	"github.com/sakaisatoru/go_dacclock_raspi/irremote"
)

const (
	VERSIONMESSAGE string = "DAC Clock v1.0"
)

const (
	ERROR_HUP = iota
	ERROR_RPIO_NOT_OPEN
	SYNC_FAILED
)

var errmessage = []string{
	"HUP             ",
	"rpio can't open.",
	"sync failed.    ",
}

// splash is how long start-up messages stay up before the first frame.
const splash = time.Second

type options struct {
	pins      panelPins
	i2cAddr   uint8
	i2cBus    int
	rowOffset uint8
	contrast  uint8
	period    time.Duration
	socket    string
	irDevice  string
	syncURL   string
	logLevel  string
	encA      int
	encB      int
	sound     string
	mpvSocket string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{pins: defaultPins}
	root := &cobra.Command{
		Use:           "dacclock",
		Short:         "Alarm clock on a 16x2 LCD and four buttons",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runHardware(cmd.Context(), opts)
			if err != nil {
				log.Error(err)
			}
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "logrus level (debug, info, warn, error)")
	pf.StringVar(&opts.socket, "socket", serversocket, "control socket path, empty to disable")
	pf.DurationVar(&opts.period, "period", 10*time.Millisecond, "control loop period")
	pf.StringVar(&opts.syncURL, "sync-url", "", "set the time from this server's Date header at start")

	f := root.Flags()
	f.IntVar(&opts.pins.Mode, "pin-mode", defaultPins.Mode, "BCM pin of the mode button")
	f.IntVar(&opts.pins.Increment, "pin-inc", defaultPins.Increment, "BCM pin of the increment button")
	f.IntVar(&opts.pins.Switch, "pin-switch", defaultPins.Switch, "BCM pin of the switch button")
	f.IntVar(&opts.pins.Decrement, "pin-dec", defaultPins.Decrement, "BCM pin of the decrement button")
	f.IntVar(&opts.pins.Buzzer, "pin-buzzer", defaultPins.Buzzer, "BCM pin of the buzzer")
	f.IntVar(&opts.pins.Indicator, "pin-indicator", defaultPins.Indicator, "BCM pin of the alarm LED")
	f.Uint8Var(&opts.i2cAddr, "i2c-addr", charlcd.DefaultAddress, "I2C address of the display")
	f.IntVar(&opts.i2cBus, "i2c-bus", 1, "I2C bus number")
	f.Uint8Var(&opts.rowOffset, "lcd-row-offset", 0x40, "DDRAM address of the second row (0x20 for AQM1602Y)")
	f.Uint8Var(&opts.contrast, "lcd-contrast", 0x23, "ST7032 contrast, 0 to skip")
	f.StringVar(&opts.irDevice, "ir-device", "", "evdev device of the IR receiver, e.g. "+irremote.DefaultDevice)
	f.IntVar(&opts.encA, "pin-enc-a", -1, "BCM pin of rotary encoder phase A, -1 for none")
	f.IntVar(&opts.encB, "pin-enc-b", -1, "BCM pin of rotary encoder phase B, -1 for none")
	f.StringVar(&opts.sound, "alarm-sound", "", "file or stream mpv plays while the alarm sounds")
	f.StringVar(&opts.mpvSocket, "mpv-socket", mpvsocket, "mpv IPC socket path")

	root.AddCommand(newSimCmd(opts), newPressCmd(opts))
	return root
}

func runHardware(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGQUIT,
		syscall.SIGHUP, syscall.SIGINT)
	defer stop()

	// OLED or LCD
	bus, err := i2c.New(opts.i2cAddr, opts.i2cBus)
	if err != nil {
		return fmt.Errorf("i2c: %w", err)
	}
	defer bus.Close()
	lcd := charlcd.New(bus)
	if err := lcd.ConfigureWithSettings(charlcd.Config{
		RowOffset: opts.rowOffset,
		Contrast:  opts.contrast,
	}); err != nil {
		return err
	}
	defer lcd.DisplayOff()
	infoupdate(lcd, 0, VERSIONMESSAGE)

	if err := rpio.Open(); err != nil {
		infoupdate(lcd, 0, errmessage[ERROR_RPIO_NOT_OPEN])
		infoupdate(lcd, 1, errmessage[ERROR_HUP])
		return fmt.Errorf("rpio: %w", err)
	}
	defer rpio.Close()
	panel := openPanel(opts.pins)
	defer panel.Close()

	st := alarmclock.NewState()
	syncClock(ctx, st, opts.syncURL, lcd)
	time.Sleep(splash)

	g, ctx := errgroup.WithContext(ctx)
	presses := alarmclock.NewPulseButtons(16)
	outputs := startAlarmSound(ctx, g, opts.sound, opts.mpvSocket, panel)
	ctl := alarmclock.NewController(st, panel, outputs, lcd, presses)
	defer func() {
		if err := ctl.Shutdown(); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	g.Go(func() error { return alarmclock.RunTicker(ctx, time.Second, ctl.Tick) })
	g.Go(func() error { return ctl.Run(ctx, opts.period) })
	startIR(ctx, g, opts.irDevice, presses)
	startEncoder(ctx, g, opts.encA, opts.encB, presses)
	startServer(ctx, g, opts.socket, presses, ctl)

	log.Info("clock running")
	err = g.Wait()
	log.Info("exiting")
	return err
}

type printer interface {
	PrintWithPos(x, y int, s string) error
}

// infoupdate shows a start-up message on a row. The clock runs without it,
// so a failed write is only logged.
func infoupdate(d printer, row int, s string) {
	if err := d.PrintWithPos(0, row, s); err != nil {
		log.WithError(err).WithField("row", row).Debug("lcd message not shown")
	}
}

// syncClock seeds the current time when a sync URL is configured. A failure
// leaves the clock at midnight for the user to set.
func syncClock(ctx context.Context, st *alarmclock.State, url string, d printer) {
	if url == "" {
		return
	}
	t, err := fetchServerTime(ctx, url)
	if err != nil {
		log.WithError(err).Warn("time not synced")
		if d != nil {
			infoupdate(d, 1, errmessage[SYNC_FAILED])
		}
		return
	}
	st.Time.SetCurrent(int(alarmclock.FromTime(t.Local())))
	log.WithField("time", st.Time.Current()).Info("time synced")
}

func startIR(ctx context.Context, g *errgroup.Group, dev string, presses *alarmclock.PulseButtons) {
	if dev == "" {
		return
	}
	ir, err := irremote.Open(dev)
	if err != nil {
		log.WithError(err).Warn("ir remote not open")
		return
	}
	g.Go(func() error {
		defer ir.Close()
		if err := ir.Run(ctx, irfunc(presses)); err != nil {
			// the remote is optional, keep the clock running
			log.WithError(err).Error("ir remote stopped")
		}
		return nil
	})
}

func startServer(ctx context.Context, g *errgroup.Group, path string, presses *alarmclock.PulseButtons, ctl *alarmclock.Controller) {
	if path == "" {
		return
	}
	os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		log.WithError(err).Warn("control socket not open")
		return
	}
	srv := &controlServer{presses: presses, status: ctl.Snapshot}
	g.Go(func() error {
		defer os.Remove(path)
		return srv.serve(ctx, ln)
	})
}
