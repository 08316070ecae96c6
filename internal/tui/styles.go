package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	status   lipgloss.Style
	errText  lipgloss.Style
}

func newStyles(accent string) styles {
	if accent == "" {
		accent = "205"
	}
	c := lipgloss.Color(accent)
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(c).MarginBottom(1),
		selected: lipgloss.NewStyle().Bold(true).Foreground(c),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:    lipgloss.NewStyle().Width(9),
		focused:  lipgloss.NewStyle().Width(9).Bold(true).Foreground(c),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
