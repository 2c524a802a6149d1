package alarmclock

import (
	"fmt"
)

// Geometry of the character display.
const (
	Cols = 16
	Rows = 2
)

// Display is a character display with no partial clear: anything not
// overwritten stays on screen until Clear.
type Display interface {
	Clear() error
	SetCursor(col, row int) error
	WriteText(s string) error
}

// Screen is what one iteration puts on the display.
type Screen struct {
	Lines    [Rows]string
	Label    string // overlaid on the top row while editing
	LabelCol int
	Glyph    byte // alarm state, bottom right
}

const glyphCol = Cols - 1

// Compose builds the screen for the current state.
func Compose(st *State) Screen {
	scr := Screen{Glyph: st.Alarm.Glyph()}
	switch st.Mode {
	case Clock:
		scr.Lines[0] = st.Time.Current().String() + " CLOCK"
		scr.Lines[1] = st.Time.Alarm().String() + " ALARM"
	case SettingTime:
		scr.Lines[0] = st.Time.Current().String()
		scr.Lines[1] = "ADJUST " + st.Field.String()
		scr.Label, scr.LabelCol = "TIME", 12
	case SettingAlarm:
		scr.Lines[0] = st.Time.Alarm().String()
		scr.Lines[1] = "ADJUST " + st.Field.String()
		scr.Label, scr.LabelCol = "ALARM", 11
	}
	return scr
}

// Paint writes scr to d, clearing it first when clear is set. Positions are
// clamped and text is cut at the right edge, so nothing is ever written
// outside the display.
func Paint(d Display, scr Screen, clear bool) error {
	if clear {
		if err := d.Clear(); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}
	for row, s := range scr.Lines {
		if err := put(d, 0, row, s); err != nil {
			return err
		}
	}
	if err := put(d, glyphCol, 1, string(scr.Glyph)); err != nil {
		return err
	}
	if scr.Label != "" {
		return put(d, scr.LabelCol, 0, scr.Label)
	}
	return nil
}

func put(d Display, col, row int, s string) error {
	col = clamp(col, 0, Cols-1)
	row = clamp(row, 0, Rows-1)
	if n := Cols - col; len(s) > n {
		s = s[:n]
	}
	if err := d.SetCursor(col, row); err != nil {
		return fmt.Errorf("cursor %d,%d: %w", col, row, err)
	}
	if err := d.WriteText(s); err != nil {
		return fmt.Errorf("write %q: %w", s, err)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
