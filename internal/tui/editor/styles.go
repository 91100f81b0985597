package editor

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FA0")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F55")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))

	switcherStyle = lipgloss.NewStyle().
			MarginLeft(1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#334455"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0AF")).
				Background(lipgloss.Color("#224"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC"))

	relatedPanelStyle = lipgloss.NewStyle().
				MarginLeft(1).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("#334455"))

	brokenLinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F55")).
			Strikethrough(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Underline(true)
)
