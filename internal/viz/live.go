package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/sim"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 300
	trailCapacity   = 400
	frameRate       = 30
)

type TickMsg time.Time

type point struct{ x, y int }

// Model steps a simulator on every tick and draws the ensemble projected
// onto a braille canvas with per-body trails.
type Model struct {
	name          string
	initial       []dynamo.Body
	sim           *sim.Simulator
	method        integrators.Method
	dt            float64
	stepsPerFrame int
	duration      float64
	canvas        *Canvas
	camera        *Camera
	center        dynamo.Vec3
	trails        [][]point
	errHistory    []float64
	minSep        float64
	running       bool
	showHelp      bool
	theme         Theme
	err           error
}

// NewModel builds a live view. stepsPerFrame integration steps run per tick;
// a positive duration pauses the view once the clock reaches it.
func NewModel(name string, bodies []dynamo.Body, m integrators.Method, dt float64, stepsPerFrame int, duration float64) (Model, error) {
	if _, err := integrators.For(m); err != nil {
		return Model{}, err
	}
	s, err := sim.New(bodies, dt)
	if err != nil {
		return Model{}, err
	}
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	center := dynamo.CenterOfMass(bodies)
	extent := 0.0
	for _, b := range bodies {
		extent = math.Max(extent, b.Pos.Sub(center).Norm())
	}

	model := Model{
		name:          name,
		initial:       dynamo.CloneBodies(bodies),
		sim:           s,
		method:        m,
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		duration:      duration,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(1.5 * extent),
		center:        center,
		running:       true,
		theme:         Themes[0],
	}
	model.resetBuffers()
	return model, nil
}

func (m *Model) resetBuffers() {
	m.trails = make([][]point, m.sim.Len())
	for i := range m.trails {
		m.trails[i] = make([]point, 0, trailCapacity)
	}
	m.errHistory = make([]float64, 0, historyCapacity)
	m.minSep = dynamo.MinSeparation(m.sim.Bodies())
	m.err = nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "m":
			m.cycleMethod()
		case "t":
			m.theme = m.theme.next()
		case "?":
			m.showHelp = !m.showHelp
		case "x", "X", "y", "Y", "z", "Z", "+", "=", "-", "_", "c":
			m.moveCamera(msg.String())
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances up to stepsPerFrame steps and records diagnostics.
func (m *Model) step() {
	for i := 0; i < m.stepsPerFrame; i++ {
		if m.duration > 0 && m.sim.Time() >= m.duration-0.5*m.dt {
			m.running = false
			break
		}
		if err := m.sim.Step(m.method); err != nil {
			m.err = err
			m.running = false
			return
		}
	}

	bodies := m.sim.Bodies()
	if !dynamo.StateValid(bodies) {
		m.err = &dynamo.SimulationError{Step: m.sim.Steps(), Time: m.sim.Time(), Wrapped: dynamo.ErrInvalidState}
		m.running = false
		return
	}

	m.minSep = math.Min(m.minSep, dynamo.MinSeparation(bodies))
	m.errHistory = append(m.errHistory, logError(m.sim.RelativeEnergyError()))
	if len(m.errHistory) > historyCapacity {
		m.errHistory = m.errHistory[1:]
	}

	for i, b := range bodies {
		x, y, ok := m.camera.Project(b.Pos, m.center, m.canvas.SubWidth(), m.canvas.SubHeight())
		if !ok {
			continue
		}
		m.trails[i] = append(m.trails[i], point{x, y})
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

// logError maps a relative error to log10 scale, flooring exact zeros.
func logError(rel float64) float64 {
	abs := math.Abs(rel)
	if abs < 1e-16 {
		return -16
	}
	return math.Log10(abs)
}

func (m *Model) reset() {
	s, err := sim.New(m.initial, m.dt)
	if err != nil {
		m.err = err
		return
	}
	m.sim = s
	m.resetBuffers()
	m.running = true
}

// cycleMethod switches to the next integrator and restarts from the
// initial conditions so the error history stays comparable.
func (m *Model) cycleMethod() {
	methods := integrators.Methods()
	for i, meth := range methods {
		if meth == m.method {
			m.method = methods[(i+1)%len(methods)]
			break
		}
	}
	m.reset()
}

func (m *Model) moveCamera(key string) {
	switch key {
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "y":
		m.camera.RotateY(0.1)
	case "Y":
		m.camera.RotateY(-0.1)
	case "z":
		m.camera.RotateZ(0.1)
	case "Z":
		m.camera.RotateZ(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "c":
		m.camera.Reset()
	}
	m.clearTrails()
}

// clearTrails drops trail history, which is in screen space.
func (m *Model) clearTrails() {
	for i := range m.trails {
		m.trails[i] = m.trails[i][:0]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, trail := range m.trails {
		for _, p := range trail {
			m.canvas.Set(p.x, p.y)
		}
	}
	for _, b := range m.sim.Bodies() {
		if x, y, ok := m.camera.Project(b.Pos, m.center, m.canvas.SubWidth(), m.canvas.SubHeight()); ok {
			m.canvas.Dot(x, y, 1)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.theme.styles()
	m.draw()
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)+"  "+m.method.String()) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(st.err.Render("ERROR: "+m.err.Error()) + "\n")
	case m.running:
		s.WriteString(st.status.Render("RUNNING") + "\n")
	default:
		s.WriteString(st.warn.Render("PAUSED") + "\n")
	}

	if len(m.errHistory) > 1 {
		chart := asciigraph.Plot(m.errHistory, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("log10 |dE/E0|"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.4f", m.sim.Time()))
	row("Steps", fmt.Sprintf("%d", m.sim.Steps()))
	row("dt", fmt.Sprintf("%g", m.dt))
	row("Energy", fmt.Sprintf("%.10f", m.sim.TotalEnergy()))
	row("Rel. error", fmt.Sprintf("%+.3e", m.sim.RelativeEnergyError()))
	row("Min sep.", fmt.Sprintf("%.4f", m.minSep))
	row("|P|", fmt.Sprintf("%.3e", dynamo.Momentum(m.sim.Bodies()).Norm()))
	if m.duration > 0 {
		row("Progress", progressBar(m.sim.Time()/m.duration, 20))
	}

	s.WriteString(st.help.Render("SP:Pause R:Reset M:Method T:Theme\nXYZ:Rotate +/-:Zoom C:Center ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))

	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to initial state   ║
║  M        - Cycle integrator         ║
║  T        - Cycle themes             ║
║  x/X y/Y  - Rotate view              ║
║  z/Z      - Rotate in plane          ║
║  +/-      - Zoom                     ║
║  C        - Face-on view             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Run starts the live view full screen and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
