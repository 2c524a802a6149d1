// Package charlcd drives a 16x2 I2C character module with the ST7032 /
// AQM1602 command set.
package charlcd

import (
	"fmt"
	"time"
)

const (
	Cols = 16
	Rows = 2

	// first byte of every transfer
	ctrlCommand = 0x00
	ctrlData    = 0x40

	cmdClear      = 0x01
	cmdHome       = 0x02
	cmdEntryInc   = 0x06
	cmdDisplayOn  = 0x0c
	cmdDisplayOff = 0x08
	cmdSetDDRAM   = 0x80

	cmdFunction    = 0x38 // 8 bit, 2 lines
	cmdFunctionExt = 0x39 // extension instruction table
	cmdBiasOsc     = 0x14
	cmdContrastLo  = 0x70
	cmdPowerIcon   = 0x54 // booster on, contrast bits 5:4 below
	cmdFollower    = 0x6c

	DefaultAddress = 0x3e
)

// Bus is the I2C connection to the module. *i2c.I2C from
// github.com/davecheney/i2c satisfies it.
type Bus interface {
	Write(buf []byte) (int, error)
}

type Config struct {
	// RowOffset is the DDRAM address of the second row: 0x40 on ST7032 LCDs,
	// 0x20 on the AQM1602Y OLED.
	RowOffset byte
	// Contrast is the 6 bit ST7032 contrast. Zero skips the extended
	// instruction set, which the OLED does not have.
	Contrast byte
}

// Device is the display. It implements alarmclock.Display.
type Device struct {
	bus    Bus
	Config Config
	sleep  func(time.Duration)
	col    int
	row    int
}

func New(bus Bus) *Device {
	return &Device{
		bus:    bus,
		Config: Config{RowOffset: 0x40},
		sleep:  time.Sleep,
	}
}

// Configure runs the power-on sequence with the current Config.
func (d *Device) Configure() error {
	return d.ConfigureWithSettings(d.Config)
}

func (d *Device) ConfigureWithSettings(config Config) error {
	d.Config = config
	if d.Config.RowOffset == 0 {
		d.Config.RowOffset = 0x40
	}
	d.sleep(100 * time.Millisecond) // power on
	if c := config.Contrast & 0x3f; c != 0 {
		for _, b := range []byte{
			cmdFunction, cmdFunctionExt, cmdBiasOsc,
			cmdContrastLo | (c & 0x0f), cmdPowerIcon | (c >> 4),
			cmdFollower,
		} {
			if err := d.command(b); err != nil {
				return fmt.Errorf("charlcd: init: %w", err)
			}
		}
		d.sleep(200 * time.Millisecond) // follower settle
		if err := d.command(cmdFunction); err != nil {
			return fmt.Errorf("charlcd: init: %w", err)
		}
	}
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.command(cmdEntryInc); err != nil {
		return fmt.Errorf("charlcd: init: %w", err)
	}
	return d.DisplayOn()
}

// Clear blanks the display and homes the cursor.
func (d *Device) Clear() error {
	if err := d.command(cmdClear); err != nil {
		return fmt.Errorf("charlcd: clear: %w", err)
	}
	d.sleep(20 * time.Millisecond)
	if err := d.command(cmdHome); err != nil {
		return fmt.Errorf("charlcd: home: %w", err)
	}
	d.sleep(2 * time.Millisecond)
	d.col, d.row = 0, 0
	return nil
}

func (d *Device) DisplayOff() error {
	return d.command(cmdDisplayOff)
}

func (d *Device) DisplayOn() error {
	return d.command(cmdDisplayOn)
}

// SetCursor moves the write position. Out of range positions are clamped
// to the panel.
func (d *Device) SetCursor(col, row int) error {
	d.col, d.row = clamp(col, Cols-1), clamp(row, Rows-1)
	addr := byte(d.col) + byte(d.row)*d.Config.RowOffset
	if err := d.command(cmdSetDDRAM | addr); err != nil {
		return fmt.Errorf("charlcd: cursor: %w", err)
	}
	return nil
}

// WriteText writes s at the cursor. Text past the right edge is dropped,
// the controller would otherwise continue into invisible DDRAM.
func (d *Device) WriteText(s string) error {
	n := Cols - d.col
	if n <= 0 {
		return nil
	}
	buf := make([]byte, 0, n+1)
	buf = append(buf, ctrlData)
	for i := 0; i < len(s) && i < n; i++ {
		buf = append(buf, printable(s[i]))
	}
	if len(buf) == 1 {
		return nil
	}
	if _, err := d.bus.Write(buf); err != nil {
		return fmt.Errorf("charlcd: write: %w", err)
	}
	d.col += len(buf) - 1
	return nil
}

// PrintWithPos writes s at x, y.
func (d *Device) PrintWithPos(x, y int, s string) error {
	if err := d.SetCursor(x, y); err != nil {
		return err
	}
	return d.WriteText(s)
}

func (d *Device) command(b byte) error {
	_, err := d.bus.Write([]byte{ctrlCommand, b})
	return err
}

func printable(c byte) byte {
	if c < 0x20 || c > 0x7e {
		return '?'
	}
	return c
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
