package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleCPU = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
	styleRAM = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green

	styleTitle = lipgloss.NewStyle().Bold(true)

	styleChart = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	styleFooter = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)
