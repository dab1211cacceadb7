// Package viz renders the live network view: a QWERTY keyboard whose keys
// are fibers, pumped by keypresses and updated at 60 ticks per second.
package viz

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fibersim/internal/drive"
	"github.com/san-kum/fibersim/internal/graph"
	"github.com/san-kum/fibersim/internal/propagate"
	"github.com/san-kum/fibersim/internal/tissue"
)

const historyCapacity = 240

type TickMsg time.Time

// Options carries the tunables the live view needs from configuration.
type Options struct {
	Intensity      float64
	PumpAmount     float64
	CapPercentage  float64
	ForceThreshold float64
	Dt             float64
}

// Model holds the running network and its view state. A keypress pumps the
// matching fiber and tops its neighborhood up; terminals report no key
// release, so the realtime ceiling spread stands in for holding a key.
type Model struct {
	g       *graph.Graph
	tis     *tissue.Tissue
	prop    *propagate.Propagator
	driver  drive.Driver
	rebuild func() *tissue.Tissue
	opts    Options

	t        float64
	paused   bool
	driveOn  bool
	history  []float64
	lastPump rune
	width    int
	showHelp bool
}

func NewModel(g *graph.Graph, tis *tissue.Tissue, prop *propagate.Propagator, driver drive.Driver, rebuild func() *tissue.Tissue, opts Options) Model {
	if opts.Dt <= 0 {
		opts.Dt = 1.0 / 60.0
	}
	return Model{
		g:       g,
		tis:     tis,
		prop:    prop,
		driver:  driver,
		rebuild: rebuild,
		opts:    opts,
		driveOn: driver.Name() != "none",
		history: make([]float64, 0, historyCapacity),
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "tab":
			m.driveOn = !m.driveOn
		case "enter":
			m.tis.PumpEnergyToAll(m.opts.PumpAmount)
		case "ctrl+r":
			m.tis = m.rebuild()
			m.t = 0
			m.history = m.history[:0]
			m.lastPump = 0
		case "?":
			m.showHelp = !m.showHelp
		default:
			if key := msg.String(); len(key) == 1 {
				m.pump(unicode.ToLower(rune(key[0])))
			}
		}
	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) pump(key rune) {
	idx, ok := m.g.IndexOf(key)
	if !ok {
		return
	}
	m.tis.PumpEnergy(idx, m.opts.PumpAmount)
	// The top-up ceiling follows the source's current force, so a resting
	// fiber spreads nothing until it actually contracts.
	m.prop.ByNeighborsRealtime(m.tis, key, m.tis.Force(idx), m.opts.CapPercentage)
	m.lastPump = key
}

func (m *Model) step() {
	level := 0.0
	if m.driveOn {
		level = m.driver.Level(m.t)
	}
	m.tis.SetActivation(level)
	m.tis.Stimulate(m.opts.Intensity)
	res := m.tis.UpdateNetwork()

	m.history = append(m.history, res.AverageForce)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	m.t += m.opts.Dt
}

func (m Model) View() string {
	var s strings.Builder

	status := statusRunning.Render("● running")
	if m.paused {
		status = statusPaused.Render("◌ paused")
	}
	s.WriteString(titleStyle.Render("FIBERSIM") + "  " + subtleStyle.Render("muscle fiber network") + "  " + status + "\n")
	s.WriteString(Separator(60) + "\n\n")

	s.WriteString(m.viewKeyboard())
	s.WriteString("\n")

	driveLabel := m.driver.Name()
	if !m.driveOn {
		driveLabel = "off"
	}
	level := 0.0
	if m.driveOn {
		level = m.driver.Level(m.t)
	}
	s.WriteString(labelStyle.Render("drive ") + valueStyle.Render(fmt.Sprintf("%-10s", driveLabel)) + ProgressBar(level, 24) + "\n")

	if len(m.history) >= 2 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(56), asciigraph.Caption("mean force"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("time ") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t)))
	if m.lastPump != 0 {
		s.WriteString("  " + labelStyle.Render("last pump ") + valueStyle.Render(string(m.lastPump)))
	}
	s.WriteString("\n")

	if m.showHelp {
		s.WriteString(helpStyle.Render("letters pump fibers · enter pump all · tab toggle drive\nspace pause · ctrl+r reset · esc quit"))
	} else {
		s.WriteString(helpStyle.Render("? help · esc quit"))
	}
	s.WriteString("\n")

	return s.String()
}

func (m Model) viewKeyboard() string {
	rows := []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

	var s strings.Builder
	for i, row := range rows {
		s.WriteString(strings.Repeat(" ", 2*i+2))
		for _, key := range row {
			idx, ok := m.g.IndexOf(key)
			if !ok {
				continue
			}
			mus := m.tis.Muscle(idx)
			if mus == nil {
				continue
			}
			s.WriteString(m.keyStyle(mus.ATP(), mus.Alive()).Render(fmt.Sprintf("[%c]", key)))
			s.WriteString(" ")
		}
		s.WriteString("\n")
	}

	forces := make([]float64, m.tis.Len())
	for i := range forces {
		forces[i] = m.tis.Force(i)
	}
	s.WriteString("\n  " + labelStyle.Render("force ") + SparklineChart(forces, 52) + "\n")

	return s.String()
}

func (m Model) keyStyle(atp float64, alive bool) lipgloss.Style {
	if !alive {
		return keyDead
	}
	switch {
	case atp > 0.6:
		return keyHigh
	case atp > 0.3:
		return keyMid
	default:
		return keyLow
	}
}

func Run(g *graph.Graph, tis *tissue.Tissue, prop *propagate.Propagator, driver drive.Driver, rebuild func() *tissue.Tissue, opts Options) error {
	p := tea.NewProgram(NewModel(g, tis, prop, driver, rebuild, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
