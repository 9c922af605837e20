// Package styles provides Lip Gloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}

	barBackground = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}
)

// Base styles
var (
	// App is the base style for the entire application
	App = lipgloss.NewStyle().
		Padding(0, 1)

	// Title is the style for section titles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Subtitle is for secondary headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)
)

// Pane styles
var (
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	PaneFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)
)

// Task styles
var (
	// TaskItem is the base style for a task item
	TaskItem = lipgloss.NewStyle().
			PaddingLeft(2)

	// TaskSelected is the style for the highlighted task
	TaskSelected = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(Highlight).
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"})

	// TaskCompleted is the style for completed tasks
	TaskCompleted = lipgloss.NewStyle().
			PaddingLeft(2).
			Faint(true).
			Strikethrough(true)
)

// Task markers
const (
	MarkerPending = "•"
	MarkerDone    = "✓"
)

// StatusBar styles
var (
	// StatusBar is the base style for the status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}).
			Background(barBackground).
			Padding(0, 1)

	// StatusBarKey is for keyboard shortcut hints
	StatusBarKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Background(barBackground)

	// StatusBarText is for status bar descriptions
	StatusBarText = lipgloss.NewStyle().
			Foreground(Subtle).
			Background(barBackground)

	// StatusBarError is for error messages
	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Background(barBackground).
			Bold(true)

	// StatusBarSuccess is for success messages
	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Background(barBackground).
				Bold(true)
)

// Help styles
var (
	// HelpKey is for key bindings in help
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// HelpDesc is for key binding descriptions
	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)

	// Dialog is the base style for dialog boxes
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)
)

// Input styles
var (
	Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)
)

// Calendar styles
var (
	// CalendarWeekday is for day-of-week headers
	CalendarWeekday = lipgloss.NewStyle().
			Foreground(Subtle)

	// CalendarDay is for regular days
	CalendarDay = lipgloss.NewStyle()

	// CalendarDaySelected is for the cursor cell
	CalendarDaySelected = lipgloss.NewStyle().
				Bold(true).
				Background(Highlight).
				Foreground(lipgloss.Color("#ffffff"))

	// CalendarDayToday is for today's date
	CalendarDayToday = lipgloss.NewStyle().
				Bold(true).
				Foreground(SuccessColor)

	// CalendarDayWithTasks is for days that have open tasks
	CalendarDayWithTasks = lipgloss.NewStyle().
				Foreground(WarningColor)

	// CalendarDayWeekend is for Saturday and Sunday
	CalendarDayWeekend = lipgloss.NewStyle().
				Foreground(Subtle)
)
