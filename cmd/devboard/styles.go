package main

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	idStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))

	priorityStyles = map[string]lipgloss.Style{
		"P0": lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		"P1": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"P2": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"P3": lipgloss.NewStyle().Faint(true),
	}
)

func renderPriority(p string) string {
	if style, ok := priorityStyles[p]; ok {
		return style.Render(p)
	}
	return p
}

// shortID truncates an id for list output. Imported payloads may carry
// ids of any length, so this never slices past the end.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
