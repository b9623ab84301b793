package telemetry

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ginevracianci/gnc-autonomous-system/internal/gnc"
	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
)

const (
	canvasCols      = 80
	canvasRows      = 24
	historyCapacity = 600
	maxSpeed        = 64
	defaultFPS      = 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives a harness one tick at a time and renders its telemetry: the
// chaser track on a braille canvas next to the current loop numbers.
type Model struct {
	h   *harness.Harness
	cfg harness.Config
	fps int

	running bool
	speed   int // harness ticks per display frame
	failed  error
	result  *harness.Result

	canvas     *Canvas
	trail      []dot
	errHistory []float64
}

type dot struct{ x, y int }

// NewModel wraps a fresh harness for cfg. fps bounds the display rate; zero
// or negative selects the default.
func NewModel(cfg harness.Config, fps int) (Model, error) {
	h, err := harness.New(cfg)
	if err != nil {
		return Model{}, err
	}
	// warnings render in the panel; logging them would tear the display
	h.SetLogger(slog.New(slog.DiscardHandler))
	if fps <= 0 {
		fps = defaultFPS
	}
	return Model{
		h:          h,
		cfg:        cfg,
		fps:        fps,
		running:    true,
		speed:      1,
		canvas:     NewCanvas(canvasCols, canvasRows),
		trail:      make([]dot, 0, historyCapacity),
		errHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.frame() }

// Update handles input events and advances the harness on each frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.result == nil && m.failed == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "up", "k":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "down", "j":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.frame()
	}
	return m, nil
}

// advance steps the harness up to speed ticks, stopping at completion or on
// a diverged state.
func (m *Model) advance() {
	for i := 0; i < m.speed && !m.h.Done(); i++ {
		rec, err := m.h.Step()
		if err != nil {
			m.failed = err
			m.running = false
			return
		}
		m.record(rec)
	}
	if m.h.Done() && m.result == nil {
		m.result = m.h.Finish()
		m.running = false
	}
}

func (m *Model) record(rec harness.LogRecord) {
	m.errHistory = append(m.errHistory, rec.PosError)
	if len(m.errHistory) > historyCapacity {
		m.errHistory = m.errHistory[1:]
	}
	x, y := m.project(rec.Position)
	m.trail = append(m.trail, dot{x, y})
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
}

// project maps an orbital-plane position to canvas dots. The window is
// fixed at -500..2700 km downtrack and -300..300 km crosstrack so the whole
// approach, overshoot included, stays on screen.
func (m *Model) project(p gnc.Vec3) (int, int) {
	w, h := m.canvas.DotWidth(), m.canvas.DotHeight()
	x := int((p.X + 500.0) / 3200.0 * float64(w))
	y := h/2 - int(p.Y/600.0*float64(h))
	return x, y
}

func (m *Model) drawTrack() {
	m.canvas.Clear()
	// crosshair on the target at the origin
	ox, oy := m.project(gnc.Vec3{})
	m.canvas.Line(ox-3, oy, ox+3, oy)
	m.canvas.Line(ox, oy-3, ox, oy+3)
	for _, pt := range m.trail {
		m.canvas.Dot(pt.x, pt.y)
	}
	if len(m.trail) > 0 {
		head := m.trail[len(m.trail)-1]
		m.canvas.Mark(head.x, head.y)
	}
}

func (m Model) status() string {
	switch {
	case m.failed != nil:
		return warnStyle.Render("DIVERGED: " + m.failed.Error())
	case m.result != nil:
		return "COMPLETE"
	case !m.running:
		return "PAUSED"
	}
	return fmt.Sprintf("RUNNING %dx", m.speed)
}

// reset rebuilds the harness from the original configuration.
func (m *Model) reset() {
	h, err := harness.New(m.cfg)
	if err != nil {
		m.failed = err
		return
	}
	h.SetLogger(slog.New(slog.DiscardHandler))
	m.h = h
	m.failed = nil
	m.result = nil
	m.running = true
	m.trail = m.trail[:0]
	m.errHistory = m.errHistory[:0]
}

// View renders the track canvas beside the telemetry panel.
func (m Model) View() string {
	m.drawTrack()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(string(m.cfg.Scenario))+" TELEMETRY") + "\n")
	s.WriteString(m.status() + "\n\n")
	if len(m.errHistory) > 1 {
		chart := asciigraph.Plot(m.errHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Position error (km)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs / %.1fs", m.h.Time(), m.cfg.Duration)) + "\n")
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d / %d", m.h.Tick(), m.h.Steps())) + "\n")
	st := m.h.State()
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("[%.2f %.2f %.2f] km", st.Position.X, st.Position.Y, st.Position.Z)) + "\n")
	s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("[%.4f %.4f %.4f] km/s", st.Velocity.X, st.Velocity.Y, st.Velocity.Z)) + "\n")
	if rec, ok := m.h.Log().Last(); ok {
		s.WriteString(labelStyle.Render("Pos error") + valueStyle.Render(fmt.Sprintf("%.3f km", rec.PosError)) + "\n")
		s.WriteString(labelStyle.Render("Vel error") + valueStyle.Render(fmt.Sprintf("%.5f km/s", rec.VelError)) + "\n")
		s.WriteString(labelStyle.Render("Thrust") + valueStyle.Render(fmt.Sprintf("%.4f km/s2", rec.Thrust)) + "\n")
	}
	if warns := m.h.Warnings(); len(warns) > 0 {
		s.WriteString(labelStyle.Render("Warnings") + warnStyle.Render(fmt.Sprintf("%d", len(warns))) + "\n")
		s.WriteString(warnStyle.Render("  "+warns[len(warns)-1].Reason) + "\n")
	}
	if m.result != nil {
		s.WriteString("\nFINAL\n")
		s.WriteString(labelStyle.Render("Mean error") + valueStyle.Render(fmt.Sprintf("%.3f km", m.result.Stats.MeanPosError)) + "\n")
		s.WriteString(labelStyle.Render("Max error") + valueStyle.Render(fmt.Sprintf("%.3f km", m.result.Stats.MaxPosError)) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n↑↓:Speed"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
