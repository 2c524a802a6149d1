// Package simulator puts the alarm clock in a terminal: the LCD is drawn
// from an in-memory frame, the lamps are coloured dots and the keyboard
// stands in for the four buttons.
package simulator

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sakaisatoru/go_dacclock_raspi/alarmclock"
)

var (
	colorLCD    = lipgloss.Color("#9ECE6A")
	colorLCDBg  = lipgloss.Color("#1A1B26")
	colorMuted  = lipgloss.Color("#666666")
	colorOn     = lipgloss.Color("#FF6B6B")
	colorArmed  = lipgloss.Color("#F39C12")
	colorSubtle = lipgloss.Color("#414868")

	lcdStyle = lipgloss.NewStyle().
			Foreground(colorLCD).
			Background(colorLCDBg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errStyle  = lipgloss.NewStyle().Foreground(colorOn)
)

var keymap = map[string]alarmclock.Button{
	"m":     alarmclock.ButtonMode,
	"i":     alarmclock.ButtonIncrement,
	"+":     alarmclock.ButtonIncrement,
	"up":    alarmclock.ButtonIncrement,
	"s":     alarmclock.ButtonSwitch,
	"tab":   alarmclock.ButtonSwitch,
	"right": alarmclock.ButtonSwitch,
	"d":     alarmclock.ButtonDecrement,
	"-":     alarmclock.ButtonDecrement,
	"down":  alarmclock.ButtonDecrement,
}

// Lamps records the buzzer and indicator levels.
type Lamps struct {
	Buzzer    bool
	Indicator bool
}

func (l *Lamps) SetBuzzer(on bool)    { l.Buzzer = on }
func (l *Lamps) SetIndicator(on bool) { l.Indicator = on }

type stepMsg time.Time

// Model is the bubbletea model. Steps of the control loop run inside Update,
// so the frame and the lamps are only touched from the program goroutine.
type Model struct {
	ctl    *alarmclock.Controller
	frame  *alarmclock.Frame
	lamps  *Lamps
	keys   *alarmclock.PulseButtons
	period time.Duration

	snap alarmclock.Snapshot
	err  error
}

// New wires a controller for st. extra queues (e.g. the control socket)
// feed it alongside the keyboard.
func New(st *alarmclock.State, period time.Duration, extra ...*alarmclock.PulseButtons) *Model {
	m := &Model{
		frame:  alarmclock.NewFrame(),
		lamps:  &Lamps{},
		keys:   alarmclock.NewPulseButtons(16),
		period: period,
	}
	pulses := append([]*alarmclock.PulseButtons{m.keys}, extra...)
	m.ctl = alarmclock.NewController(st, nil, m.lamps, m.frame, pulses...)
	return m
}

func (m *Model) Controller() *alarmclock.Controller {
	return m.ctl
}

func (m *Model) Init() tea.Cmd {
	return m.next()
}

func (m *Model) next() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg {
		return stepMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			if b, ok := keymap[k]; ok {
				m.keys.Press(b)
			}
		}
	case stepMsg:
		m.snap, m.err = m.ctl.Step(time.Time(msg))
		return m, m.next()
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(lcdStyle.Render(m.frame.String()))
	b.WriteString("\n")
	b.WriteString(lamp("ALARM", m.lamps.Indicator, colorArmed))
	b.WriteString("  ")
	b.WriteString(lamp("BUZZER", m.lamps.Buzzer, colorOn))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("m mode  i/↑ inc  s/→ switch  d/↓ dec  q quit"))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	return b.String()
}

func lamp(name string, on bool, c lipgloss.Color) string {
	dot := lipgloss.NewStyle().Foreground(colorMuted).Render("○")
	if on {
		dot = lipgloss.NewStyle().Foreground(c).Render("●")
	}
	return dot + " " + name
}
