package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/nbodysim/internal/fixtures"
	"github.com/san-kum/nbodysim/internal/integrators"
)

const (
	stateMenu = iota
	stateMethod
	stateSim
)

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// picker lets the user choose a fixture and an integrator before handing
// over to the live view.
type picker struct {
	state         int
	cursor        int
	fixtures      []fixtures.Fixture
	methods       []integrators.Method
	selected      fixtures.Fixture
	dt            float64
	stepsPerFrame int
	liveModel     Model
	err           error
}

func NewPicker(dt float64, stepsPerFrame int) tea.Model {
	return picker{
		state:         stateMenu,
		fixtures:      fixtures.List(),
		methods:       integrators.Methods(),
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
	}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.state == stateSim {
		newLive, cmd := p.liveModel.Update(msg)
		p.liveModel = newLive.(Model)
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	limit := len(p.fixtures)
	if p.state == stateMethod {
		limit = len(p.methods)
	}

	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "esc":
		p.state, p.cursor = stateMenu, 0
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < limit-1 {
			p.cursor++
		}
	case "enter", " ":
		if p.state == stateMenu {
			p.selected = p.fixtures[p.cursor]
			p.state, p.cursor = stateMethod, 0
			return p, nil
		}
		return p.start(p.methods[p.cursor])
	}
	return p, nil
}

func (p picker) start(m integrators.Method) (tea.Model, tea.Cmd) {
	live, err := NewModel(p.selected.Name, p.selected.Bodies(), m, p.dt, p.stepsPerFrame, 0)
	if err != nil {
		p.err = err
		return p, nil
	}
	p.liveModel = live
	p.state = stateSim
	return p, live.Init()
}

func (p picker) View() string {
	var b strings.Builder
	switch p.state {
	case stateSim:
		return p.liveModel.View()
	case stateMenu:
		b.WriteString("\n\n    " + menuTitle.Render("NBODYSIM") + "\n    " + menuSub.Render("choose an ensemble") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
		for i, f := range p.fixtures {
			desc := fmt.Sprintf("%d bodies, %d", f.NumBodies(), f.Year)
			p.writeItem(&b, i, f.Key, desc)
		}
	case stateMethod:
		b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(p.selected.Name)) + "\n    " + menuSub.Render("choose an integrator") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
		for i, m := range p.methods {
			p.writeItem(&b, i, m.String(), "")
		}
	}
	if p.err != nil {
		b.WriteString("\n    " + menuDesc.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" select  ") + menuKey.Render("esc") + menuIdle.Render(" back  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

func (p picker) writeItem(b *strings.Builder, i int, name, desc string) {
	if i == p.cursor {
		b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-16s", name)), menuDesc.Render(desc)))
		return
	}
	b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-16s", name)), menuIdle.Render(desc)))
}

// RunInteractive opens the fixture picker full screen.
func RunInteractive(dt float64, stepsPerFrame int) error {
	_, err := tea.NewProgram(NewPicker(dt, stepsPerFrame), tea.WithAltScreen()).Run()
	return err
}
