package tui

import "github.com/charmbracelet/lipgloss"

var (
	SpinnerColor = lipgloss.Color("205")

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	SubtextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	UserMsgStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	AssistantMsgStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
