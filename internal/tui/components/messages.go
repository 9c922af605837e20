package components

import "time"

// DateSelectedMsg is emitted when a day cell is activated or the calendar
// jumps to today.
type DateSelectedMsg struct {
	Date time.Time
}

// MonthChangedMsg is emitted every time the calendar grid is rebuilt.
type MonthChangedMsg struct {
	Year  int
	Month time.Month
}

// StatusMsg carries a one-line status for the status bar.
type StatusMsg struct {
	Text string
	Err  error
}

// CloseHelpMsg is emitted when the help overlay is dismissed.
type CloseHelpMsg struct{}
