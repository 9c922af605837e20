package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/caltodo/internal/calendar"
	"github.com/hy4ri/caltodo/internal/tui/styles"
)

// CalendarModel is the month grid pane.
type CalendarModel struct {
	state         *calendar.State
	keys          KeyMap
	hasTasks      func(time.Time) bool
	width, height int
	focused       bool
}

// NewCalendar creates a CalendarModel around state.
func NewCalendar(state *calendar.State, keys KeyMap) *CalendarModel {
	return &CalendarModel{
		state:    state,
		keys:     keys,
		hasTasks: func(time.Time) bool { return false },
	}
}

// Init implements Component. It announces the initial month.
func (c *CalendarModel) Init() tea.Cmd {
	return c.monthChanged()
}

// Update implements Component.
func (c *CalendarModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c, c.handleKeyMsg(msg)
	}
	return c, nil
}

// handleKeyMsg processes keyboard input for calendar navigation.
func (c *CalendarModel) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.PrevMonth):
		return c.Prev()
	case key.Matches(msg, c.keys.NextMonth):
		return c.Next()
	case key.Matches(msg, c.keys.Today):
		return c.GotoToday()
	case key.Matches(msg, c.keys.Left):
		c.state.MoveDays(-1)
	case key.Matches(msg, c.keys.Right):
		c.state.MoveDays(1)
	case key.Matches(msg, c.keys.Up):
		c.state.MoveDays(-7)
	case key.Matches(msg, c.keys.Down):
		c.state.MoveDays(7)
	case key.Matches(msg, c.keys.Select):
		row, col := c.state.Cursor()
		return c.SelectCell(row, col)
	}
	return nil
}

// Prev shows the previous month.
func (c *CalendarModel) Prev() tea.Cmd {
	c.state.Prev()
	return c.monthChanged()
}

// Next shows the next month.
func (c *CalendarModel) Next() tea.Cmd {
	c.state.Next()
	return c.monthChanged()
}

// GotoToday shows the current month and selects today. Unlike Prev and
// Next it also changes the active date.
func (c *CalendarModel) GotoToday() tea.Cmd {
	today, cmd := c.ShowToday()
	return tea.Batch(cmd, selectDate(today))
}

// ShowToday moves the grid to the current month and returns today without
// announcing it as selected. The caller is responsible for the active date.
func (c *CalendarModel) ShowToday() (time.Time, tea.Cmd) {
	today := c.state.GotoToday()
	return today, c.monthChanged()
}

// SelectCell activates a grid cell. Padding cells emit nothing.
func (c *CalendarModel) SelectCell(row, col int) tea.Cmd {
	date, ok := c.state.SelectCell(row, col)
	if !ok {
		return nil
	}
	return selectDate(date)
}

func (c *CalendarModel) monthChanged() tea.Cmd {
	year, month := c.state.Year(), c.state.Month()
	return func() tea.Msg {
		return MonthChangedMsg{Year: year, Month: month}
	}
}

func selectDate(date time.Time) tea.Cmd {
	return func() tea.Msg {
		return DateSelectedMsg{Date: date}
	}
}

// State returns the underlying calendar state.
func (c *CalendarModel) State() *calendar.State {
	return c.state
}

// SetTaskMarker sets the predicate used to flag days that have open tasks.
func (c *CalendarModel) SetTaskMarker(fn func(time.Time) bool) {
	if fn == nil {
		fn = func(time.Time) bool { return false }
	}
	c.hasTasks = fn
}

// View implements Component.
func (c *CalendarModel) View() string {
	var b strings.Builder

	for _, wd := range calendar.Weekdays() {
		b.WriteString(styles.CalendarWeekday.Render(fmt.Sprintf(" %s", wd)))
	}
	b.WriteString("\n")

	today := c.state.Today()
	curRow, curCol := c.state.Cursor()
	for r, week := range c.state.Grid() {
		for col, day := range week {
			if day == 0 {
				b.WriteString("    ")
				continue
			}
			date, _ := c.state.DateAt(r, col)

			isCursor := r == curRow && col == curCol
			isToday := calendar.SameDay(date, today)
			hasTasks := c.hasTasks(date)
			isWeekend := col >= 5

			style := styles.CalendarDay
			switch {
			case isCursor && c.focused:
				style = styles.CalendarDaySelected
			case isToday:
				style = styles.CalendarDayToday
			case hasTasks:
				style = styles.CalendarDayWithTasks
			case isWeekend:
				style = styles.CalendarDayWeekend
			}

			dayStr := fmt.Sprintf(" %2d ", day)
			if hasTasks {
				dayStr = fmt.Sprintf(" %2d*", day)
			}
			if isCursor && !c.focused {
				dayStr = fmt.Sprintf("[%2d]", day)
			}
			b.WriteString(style.Render(dayStr))
		}
		if r < len(c.state.Grid())-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// SetSize implements Component.
func (c *CalendarModel) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Focus sets focus on the calendar.
func (c *CalendarModel) Focus() {
	c.focused = true
}

// Blur removes focus.
func (c *CalendarModel) Blur() {
	c.focused = false
}

// Focused returns focus state.
func (c *CalendarModel) Focused() bool {
	return c.focused
}
