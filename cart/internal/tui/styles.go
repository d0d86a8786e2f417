package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7159C1")
	colorMuted   = lipgloss.Color("#999999")
	colorError   = lipgloss.Color("#E53935")
	colorSurface = lipgloss.Color("#191920")
	colorText    = lipgloss.Color("#FFFFFF")
)

type styles struct {
	brand     lipgloss.Style
	badge     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	total     lipgloss.Style
	error     lipgloss.Style
	info      lipgloss.Style
	help      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		brand: lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorSurface).Padding(0, 1),
		badge: lipgloss.NewStyle().Foreground(colorText).Background(colorPrimary).Padding(0, 1),
		tab:   lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2),
		activeTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Underline(true).
			Padding(0, 2),
		total: lipgloss.NewStyle().Bold(true).MarginTop(1),
		error: lipgloss.NewStyle().Foreground(colorError),
		info:  lipgloss.NewStyle().Foreground(colorPrimary),
		help:  lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
