package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/margin/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Amber).
			Foreground(style.Ink)

	activeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Background(style.Green).
			Foreground(style.Paper)

	idleStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(style.Muted)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Amber).
			Bold(true)

	elementStyle = lipgloss.NewStyle().
			Foreground(style.Ink)

	locatorStyle = lipgloss.NewStyle().
			Foreground(style.Muted)

	markerStyle = lipgloss.NewStyle().
			Foreground(style.Blue)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.Amber).
			Padding(0, 1)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(style.Muted).
				Faint(true)

	focusStyle = lipgloss.NewStyle().
			Foreground(style.Amber)

	noticeStyle = lipgloss.NewStyle().
			Foreground(style.Yellow).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Muted)
)
