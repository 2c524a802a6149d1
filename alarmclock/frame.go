package alarmclock

import (
	"strings"
	"sync"
)

// Frame is an in-memory Display. The simulator draws from it.
type Frame struct {
	mu       sync.Mutex
	cells    [Rows][Cols]byte
	col, row int
	clears   int
}

func NewFrame() *Frame {
	f := &Frame{}
	f.blank()
	return f
}

func (f *Frame) blank() {
	for r := range f.cells {
		for c := range f.cells[r] {
			f.cells[r][c] = ' '
		}
	}
	f.col, f.row = 0, 0
}

func (f *Frame) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blank()
	f.clears++
	return nil
}

func (f *Frame) SetCursor(col, row int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.col, f.row = clamp(col, 0, Cols-1), clamp(row, 0, Rows-1)
	return nil
}

// WriteText writes from the cursor; characters past the last column are
// dropped, there is no wrap to the next row.
func (f *Frame) WriteText(s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < len(s) && f.col < Cols; i++ {
		f.cells[f.row][f.col] = s[i]
		f.col++
	}
	return nil
}

// Line returns the content of one row.
func (f *Frame) Line(row int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.cells[clamp(row, 0, Rows-1)][:])
}

// Clears counts the Clear calls so far.
func (f *Frame) Clears() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clears
}

func (f *Frame) String() string {
	return strings.Join([]string{f.Line(0), f.Line(1)}, "\n")
}
