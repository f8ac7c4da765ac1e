// Package tui shows a live view of a history build.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/recomb/internal/analysis"
	"github.com/san-kum/recomb/internal/atomic"
	"github.com/san-kum/recomb/internal/cosmo"
	"github.com/san-kum/recomb/internal/history"
	"github.com/san-kum/recomb/internal/recomb"
	"github.com/san-kum/recomb/internal/viz"
)

type progressMsg struct {
	stage recomb.Stage
	iz    int
	z     float64
	xe    float64
	tm    float64
}

type doneMsg struct {
	hist *recomb.History
	err  error
}

type model struct {
	params   *cosmo.Parameters
	name     string
	last     progressMsg
	trace    []float64 // xe samples seen so far, for the mini chart
	hist     *recomb.History
	err      error
	finished bool
	cancel   context.CancelFunc
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case progressMsg:
		m.last = msg
		m.trace = append(m.trace, msg.xe)
	case doneMsg:
		m.finished = true
		m.hist = msg.hist
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string {
	if m.finished {
		return ""
	}
	pct := float64(m.last.iz) / float64(m.params.NZ)
	s := viz.Title.Render("building recombination history: "+m.name) + "\n\n"
	s += viz.ProgressBar(pct, 50) + fmt.Sprintf(" %5.1f%%\n\n", pct*100)
	s += fmt.Sprintf("  %s %s\n", viz.Label.Render("stage"), viz.Value.Render(m.last.stage.String()))
	s += fmt.Sprintf("  %s %s\n", viz.Label.Render("z    "), viz.Value.Render(fmt.Sprintf("%.1f", m.last.z)))
	s += fmt.Sprintf("  %s %s\n", viz.Label.Render("xe   "), viz.Value.Render(fmt.Sprintf("%.6f", m.last.xe)))
	s += fmt.Sprintf("  %s %s\n", viz.Label.Render("Tm   "), viz.Value.Render(fmt.Sprintf("%.1f K", m.last.tm)))
	if len(m.trace) > 1 {
		s += fmt.Sprintf("\n  %s %s\n", viz.Label.Render("trace"), viz.Sparkline(m.trace, 40))
	}
	s += "\n" + viz.Subtle.Render("q to abort")
	return s
}

// Run builds the history while rendering progress, then prints the summary.
func Run(params *cosmo.Parameters, prov *atomic.Provider) (*recomb.History, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &model{params: params, name: prov.Model().String(), cancel: cancel}
	prog := tea.NewProgram(m)

	builder := history.New(params, prov)
	lastFrame := time.Time{}
	builder.AddObserver(recomb.ObserverFunc(func(stage recomb.Stage, iz int, z, xe, tm float64) {
		if time.Since(lastFrame) < time.Second/30 {
			return
		}
		lastFrame = time.Now()
		prog.Send(progressMsg{stage: stage, iz: iz, z: z, xe: xe, tm: tm})
	}))

	go func() {
		hist, err := builder.Run(ctx)
		prog.Send(doneMsg{hist: hist, err: err})
	}()

	if _, err := prog.Run(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.hist == nil {
		return nil, context.Canceled
	}

	sum := analysis.Summarize(params, m.hist)
	fmt.Println(viz.SummaryPanel(prov.Model().String(), m.hist.Len(), sum, m.hist.Warnings))
	return m.hist, nil
}
