package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/juxley/linksim/internal/geom"
	"github.com/juxley/linksim/internal/mech"
)

const (
	liveWidth   = 72
	liveHeight  = 22
	trailLength = 200
)

// Model animates a linkage in the terminal, one solver step per tick.
type Model struct {
	linkage *mech.Linkage
	tracked []string
	trail   map[string]mech.Trajectory
	fps     int
	paused  bool
	err     error
}

func NewModel(l *mech.Linkage, tracked []string, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		linkage: l,
		tracked: tracked,
		trail:   make(map[string]mech.Trajectory, len(tracked)),
		fps:     fps,
	}
}

type tickMsg time.Time

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
		return m, nil

	case tickMsg:
		if !m.paused && m.err == nil {
			snap, err := m.linkage.Step()
			if err != nil {
				m.err = err
				return m, m.tick()
			}
			for _, name := range m.tracked {
				trail := append(m.trail[name], snap[name])
				if len(trail) > trailLength {
					trail = trail[1:]
				}
				m.trail[name] = trail
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	anchors := make([]geom.Point, 0, len(m.linkage.Drivers()))
	for _, d := range m.linkage.Drivers() {
		anchors = append(anchors, d.Anchor())
	}

	frame := Frame(liveWidth, liveHeight, m.linkage.Snapshot(), m.linkage.Segments(), anchors, m.trail)

	status := StatusRunning.Render("running")
	if m.err != nil {
		status = StatusLocked.Render("locked: ") + m.err.Error()
	} else if m.paused {
		status = StatusPaused.Render("paused")
	}

	header := TitleStyle.Render(m.linkage.Name()) +
		LabelStyle.Render(fmt.Sprintf("  step %d", m.linkage.StepCount()))
	footer := status + "  " + KeyHint.Render("space pause · q quit")

	return header + "\n" + PanelStyle.Render(frame) + "\n" + footer + "\n"
}

// RunLive animates the linkage until the user quits.
func RunLive(l *mech.Linkage, tracked []string, fps int) error {
	p := tea.NewProgram(NewModel(l, tracked, fps))
	_, err := p.Run()
	return err
}
