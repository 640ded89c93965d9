package render

import "github.com/charmbracelet/lipgloss"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	red  = lipgloss.Color("197")
	gray = lipgloss.Color("8")
	teal = lipgloss.Color("6")

	bannerStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(gray).Italic(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(highlight).
			Padding(0, 1)

	enabledItem  = lipgloss.NewStyle().Foreground(special).Bold(true)
	disabledItem = lipgloss.NewStyle().Foreground(gray)
	selectItem   = lipgloss.NewStyle().Foreground(teal).Bold(true)

	headerCell = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(subtle).
			PaddingRight(2)
	cell         = lipgloss.NewStyle().PaddingRight(2)
	selectedCell = cell.Copy().Foreground(teal)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(0, 1)
	oldPanel = panelStyle.Copy().BorderForeground(gray)
	newPanel = panelStyle.Copy().BorderForeground(special)

	errorStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(special)
	hintStyle    = lipgloss.NewStyle().Foreground(gray)
)
