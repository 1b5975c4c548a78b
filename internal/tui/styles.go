package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	defaultWidth  = 80
	listHeight    = 14
	inputWidth    = 72
	chromeHeight  = 6 // title + input + blank + status + help lines
	itemHeight    = 2 // name + description
	previewLines  = 12
	inputCharSize = 0 // unlimited
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	promptStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	descStyle         = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("245"))
	selectedDescStyle = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("176"))
	previewStyle      = lipgloss.NewStyle().
				MarginLeft(2).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).MarginLeft(2)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).MarginLeft(2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)
