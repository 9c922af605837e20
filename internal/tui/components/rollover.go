package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/caltodo/internal/calendar"
)

// RolloverTickMsg is sent every rollover interval.
type RolloverTickMsg struct {
	Time time.Time
}

// Rollover polls the clock for a change of local date.
type Rollover struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewRollover creates a Rollover whose last observed date is today.
func NewRollover(interval time.Duration, now func() time.Time) *Rollover {
	if now == nil {
		now = time.Now
	}
	return &Rollover{
		interval: interval,
		last:     calendar.Truncate(now()),
		now:      now,
	}
}

// Tick returns a command that sends a RolloverTickMsg after one interval.
func (r *Rollover) Tick() tea.Cmd {
	return tea.Tick(r.interval, func(t time.Time) tea.Msg {
		return RolloverTickMsg{Time: t}
	})
}

// Check compares the last observed date with the clock. On a change it
// records the new date and returns it with true.
func (r *Rollover) Check() (time.Time, bool) {
	today := calendar.Truncate(r.now())
	if calendar.SameDay(today, r.last) {
		return r.last, false
	}
	r.last = today
	return today, true
}

// Last returns the last observed date.
func (r *Rollover) Last() time.Time {
	return r.last
}

// SetLast overrides the last observed date.
func (r *Rollover) SetLast(t time.Time) {
	r.last = calendar.Truncate(t)
}

// Interval returns the polling interval.
func (r *Rollover) Interval() time.Duration {
	return r.interval
}
