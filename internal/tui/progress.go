// Package tui renders live ensemble progress with bubbletea.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kadinelbak/CancerGrowthDynamics/internal/ensemble"
	"github.com/kadinelbak/CancerGrowthDynamics/internal/viz"
)

// RunFunc executes the ensemble, reporting completed members through
// progress, and returns the aggregated curve.
type RunFunc func(progress func(done, total int)) (ensemble.Curve, error)

type progressMsg struct {
	done  int
	total int
}

type doneMsg struct {
	curve ensemble.Curve
	err   error
}

// Model drives a progress bar while an ensemble runs in the background.
type Model struct {
	run    RunFunc
	events chan tea.Msg

	done     int
	total    int
	started  time.Time
	finished bool

	curve ensemble.Curve
	err   error
}

func NewModel(run RunFunc) Model {
	return Model{
		run:     run,
		events:  make(chan tea.Msg, 64),
		total:   1,
		started: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.start(), m.wait())
}

func (m Model) start() tea.Cmd {
	return func() tea.Msg {
		curve, err := m.run(func(done, total int) {
			select {
			case m.events <- progressMsg{done: done, total: total}:
			default:
			}
		})
		return doneMsg{curve: curve, err: err}
	}
}

func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.err = fmt.Errorf("interrupted")
			return m, tea.Quit
		}
	case progressMsg:
		m.done = msg.done
		m.total = msg.total
		return m, m.wait()
	case doneMsg:
		m.finished = true
		m.curve = msg.curve
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.finished {
		return ""
	}

	percent := float64(m.done) / float64(m.total)
	bar := viz.ProgressBar(percent, 40)

	elapsed := time.Since(m.started).Round(time.Millisecond)
	return viz.HeaderStyle.Render("running ensemble") + "\n" +
		fmt.Sprintf("%s %d/%d members (%s)\n", bar, m.done, m.total, elapsed) +
		viz.SubtleStyle.Render("q to abort") + "\n"
}

// Curve returns the aggregated result once the program has exited.
func (m Model) Curve() ensemble.Curve { return m.curve }

func (m Model) Err() error { return m.err }

// Run executes the ensemble behind a live progress display and returns
// the aggregated curve.
func Run(run RunFunc) (ensemble.Curve, error) {
	p := tea.NewProgram(NewModel(run))
	final, err := p.Run()
	if err != nil {
		return ensemble.Curve{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return ensemble.Curve{}, fmt.Errorf("unexpected model type")
	}
	if m.err != nil {
		return ensemble.Curve{}, m.err
	}
	return m.curve, nil
}
