// Package calendar computes Monday-first month grids and tracks the
// displayed month and the cursor cell.
package calendar

import (
	"strconv"
	"time"
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekdays returns the column labels, Monday first.
func Weekdays() []string {
	out := make([]string, len(weekdays))
	copy(out, weekdays)
	return out
}

// MonthGrid lays out a month as weeks of seven days starting on Monday.
// Padding cells hold 0; only as many weeks as needed are returned.
func MonthGrid(year int, month time.Month) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := DaysIn(year, month)
	offset := (int(first.Weekday()) + 6) % 7

	weeks := (offset + days + 6) / 7
	grid := make([][]int, weeks)
	for r := range grid {
		grid[r] = make([]int, 7)
	}
	for d := 1; d <= days; d++ {
		pos := offset + d - 1
		grid[pos/7][pos%7] = d
	}
	return grid
}

// DaysIn returns the number of days in month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Option configures a State.
type Option func(*State)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

// State is the displayed month plus the cursor cell.
type State struct {
	year  int
	month time.Month
	grid  [][]int
	row   int
	col   int
	now   func() time.Time
}

// New returns a State showing the current month.
func New(opts ...Option) *State {
	s := &State{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	today := s.now()
	s.SetMonth(today.Year(), int(today.Month()))
	return s
}

// Today returns the clock's current date at midnight.
func (s *State) Today() time.Time {
	return Truncate(s.now())
}

// Truncate drops the time of day, keeping the location.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SetMonth shows month of year. Months outside 1-12 carry into the year.
func (s *State) SetMonth(year, month int) {
	for month < 1 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}
	s.year = year
	s.month = time.Month(month)
	s.rebuild()
}

// Prev shows the previous month.
func (s *State) Prev() {
	s.SetMonth(s.year, int(s.month)-1)
}

// Next shows the next month.
func (s *State) Next() {
	s.SetMonth(s.year, int(s.month)+1)
}

// GotoToday shows the current month and returns today's date.
func (s *State) GotoToday() time.Time {
	today := s.Today()
	s.SetMonth(today.Year(), int(today.Month()))
	return today
}

func (s *State) rebuild() {
	s.grid = MonthGrid(s.year, s.month)

	today := s.Today()
	if today.Year() == s.year && today.Month() == s.month {
		s.placeCursor(today.Day())
		return
	}
	s.placeCursor(1)
}

func (s *State) placeCursor(day int) {
	for r, week := range s.grid {
		for c, d := range week {
			if d == day {
				s.row, s.col = r, c
				return
			}
		}
	}
}

// Year returns the displayed year.
func (s *State) Year() int {
	return s.year
}

// Month returns the displayed month.
func (s *State) Month() time.Month {
	return s.month
}

// Title renders the displayed month, e.g. "March 2024".
func (s *State) Title() string {
	return s.month.String() + " " + strconv.Itoa(s.year)
}

// Grid returns the day numbers of the displayed month; 0 marks padding.
func (s *State) Grid() [][]int {
	return s.grid
}

// DateAt returns the date in the given cell, or false for padding and
// positions outside the grid.
func (s *State) DateAt(row, col int) (time.Time, bool) {
	if row < 0 || row >= len(s.grid) || col < 0 || col >= 7 {
		return time.Time{}, false
	}
	d := s.grid[row][col]
	if d == 0 {
		return time.Time{}, false
	}
	return time.Date(s.year, s.month, d, 0, 0, 0, 0, s.now().Location()), true
}

// Cursor returns the cursor cell.
func (s *State) Cursor() (row, col int) {
	return s.row, s.col
}

// Selected returns the date under the cursor.
func (s *State) Selected() (time.Time, bool) {
	return s.DateAt(s.row, s.col)
}

// SelectedDay returns the day number under the cursor.
func (s *State) SelectedDay() int {
	return s.grid[s.row][s.col]
}

// MoveDays shifts the cursor by delta days, clamped to the displayed month.
// The cursor never leaves the month, so it never lands on padding.
func (s *State) MoveDays(delta int) {
	day := s.SelectedDay() + delta
	last := DaysIn(s.year, s.month)
	if day < 1 {
		day = 1
	}
	if day > last {
		day = last
	}
	s.placeCursor(day)
}

// SelectCell moves the cursor onto the given cell and returns its date.
// Padding and out-of-grid cells leave the cursor where it was.
func (s *State) SelectCell(row, col int) (time.Time, bool) {
	date, ok := s.DateAt(row, col)
	if !ok {
		return time.Time{}, false
	}
	s.row, s.col = row, col
	return date, true
}
