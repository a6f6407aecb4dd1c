// Package monitor renders a terminal dashboard of every patched channel.
package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/halo-fade/fixture"
)

const refreshInterval = 100 * time.Millisecond

// Snapshotter provides the channel states to render.
type Snapshotter interface {
	Snapshot() []fixture.ChannelState
}

type model struct {
	source   Snapshotter
	spinner  spinner.Model
	bars     []progress.Model // we reuse a pool of progress bars, one per channel
	channels []fixture.ChannelState
	quitting bool
}

// New creates the dashboard model.
func New(source Snapshotter) tea.Model {
	s := spinner.New()
	s.Style = spinnerStyle

	m := model{
		source:   source,
		spinner:  s,
		channels: source.Snapshot(),
	}
	m.growBars(len(m.channels))
	return m
}

// Run shows the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, source Snapshotter) error {
	p := tea.NewProgram(New(source))
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) growBars(n int) {
	for len(m.bars) < n {
		m.bars = append(m.bars, progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		))
	}
}

