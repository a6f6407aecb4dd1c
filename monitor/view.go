package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robmorgan/halo-fade/fixture"
	"github.com/robmorgan/halo-fade/utils"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)

func (m model) View() string {
	var b strings.Builder

	active := 0
	for _, ch := range m.channels {
		if ch.Status != fixture.StatusIdle {
			active++
		}
	}
	fmt.Fprintf(&b, "%s Channels: %d  Active: %d\n\n", m.spinner.View(), len(m.channels), active)

	for i, ch := range m.channels {
		status := idleStyle.Render(fmt.Sprintf("%-11s", ch.Status))
		if ch.Status != fixture.StatusIdle {
			status = activeStyle.Render(fmt.Sprintf("%-11s", ch.Status))
		}

		bar := ""
		if i < len(m.bars) {
			bar = m.bars[i].ViewAs(float64(ch.Value) / utils.MaxValue)
		}
		fmt.Fprintf(&b, "%-32s %d.%03d %3d %s %s\n", ch.Name, ch.Universe, ch.Address, ch.Value, status, bar)
	}

	b.WriteString(helpStyle.Render("Press q to exit"))

	if m.quitting {
		b.WriteString("\n")
	}
	return appStyle.Render(b.String())
}
