package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	statsValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

func (m AppModel) View() string {
	title := "aptls"
	if m.Target != "" {
		title += " @ " + m.Target
	}
	if m.UpgradableOnly {
		title += " (upgradable only)"
	}
	header := titleStyle.Render(title)

	if m.Loading {
		return header + "\n\n  Running list command... please wait.\n"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n")
	b.WriteString(m.statsLine())
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(errorStyle.Render(m.Status))
	} else {
		b.WriteString(statusStyle.Render(m.Status))
	}
	b.WriteString("\n")
	b.WriteString(m.Help.View(m.Keys))
	return b.String()
}

// statsLine renders the four counters plus the mark count.
func (m AppModel) statsLine() string {
	stats := m.Session.Stats()
	parts := []string{
		counter("installed", stats.Installed),
		counter("upgradable", stats.Upgradable),
		counter("residual", stats.Residual),
		counter("auto", stats.AutoInstalled),
	}
	line := strings.Join(parts, "  ")
	if len(m.Marked) > 0 {
		line += "  " + statsValueStyle.Render(fmt.Sprintf("%d marked", len(m.Marked)))
	}
	return statsStyle.Render(line)
}

func counter(label string, n int) string {
	return fmt.Sprintf("%s %s", label, statsValueStyle.Render(fmt.Sprintf("%d", n)))
}
