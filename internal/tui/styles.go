package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD700")).
				Bold(true)

	PotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	EmptySlotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	ActiveSeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	FoldedSeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	SeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	LedgerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	LedgerCursorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD700")).
				Bold(true)
)
