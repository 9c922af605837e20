// Package tui provides the terminal user interface: a month calendar next to
// the task list of the selected day.
package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/hy4ri/caltodo/internal/calendar"
	"github.com/hy4ri/caltodo/internal/config"
	"github.com/hy4ri/caltodo/internal/logging"
	"github.com/hy4ri/caltodo/internal/store"
	"github.com/hy4ri/caltodo/internal/tui/components"
)

// Focus is the pane receiving key input.
type Focus int

const (
	FocusCalendar Focus = iota
	FocusTodo
)

// Option configures an App.
type Option func(*App)

// WithClock replaces time.Now for every date computation.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithNotifier replaces the desktop notification sender.
func WithNotifier(fn func(title, message string) error) Option {
	return func(a *App) {
		a.notify = fn
	}
}

// App is the main Bubble Tea model. It owns the task store and the last
// observed date, and routes messages between the calendar and the todo pane.
type App struct {
	// Dependencies
	store  *store.Store
	config *config.Config
	logger *log.Logger
	now    func() time.Time
	notify func(title, message string) error

	// Components
	keys     components.KeyMap
	calendar *components.CalendarModel
	todo     *components.TodoModel
	help     *components.HelpModel
	hints    help.Model
	rollover *components.Rollover

	// UI state
	focus     Focus
	title     string
	statusMsg string
	statusErr bool
	showHelp  bool
	width     int
	height    int
}

// NewApp creates the application model.
func NewApp(s *store.Store, cfg *config.Config, opts ...Option) *App {
	a := &App{
		store:  s,
		config: cfg,
		logger: logging.Discard(),
		now:    time.Now,
		notify: desktopNotify,
		keys:   components.DefaultKeyMap(),
		hints:  help.New(),
	}
	for _, opt := range opts {
		opt(a)
	}

	state := calendar.New(calendar.WithClock(a.now))
	a.calendar = components.NewCalendar(state, a.keys)
	a.calendar.SetTaskMarker(func(d time.Time) bool {
		return s.OpenCount(d) > 0
	})
	a.todo = components.NewTodo(s, state.Today(), a.keys)
	a.help = components.NewHelp(a.keys)
	a.rollover = components.NewRollover(cfg.UI.RolloverInterval, a.now)
	a.title = state.Title()
	a.setFocus(FocusTodo)
	a.todo.FocusInput()

	return a
}

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.calendar.Init(),
		a.todo.Init(),
		a.rollover.Tick(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case components.DateSelectedMsg:
		a.todo.SetDate(msg.Date)
		return a, nil

	case components.MonthChangedMsg:
		a.title = fmt.Sprintf("%s %d", msg.Month, msg.Year)
		return a, nil

	case components.RolloverTickMsg:
		return a, tea.Batch(a.CheckRollover(), a.rollover.Tick())

	case components.StatusMsg:
		a.setStatus(msg)
		return a, nil

	case components.CloseHelpMsg:
		a.showHelp = false
		return a, nil
	}

	// Cursor blink and other input internals.
	_, cmd := a.todo.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Global bindings work whatever has focus, the text input included.
	switch {
	case key.Matches(msg, a.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, a.keys.GlobalToday):
		return a.JumpToToday()
	case key.Matches(msg, a.keys.SwapFocus):
		return a.FocusInput()
	}

	if a.showHelp {
		_, cmd := a.help.Update(msg)
		return cmd
	}

	if key.Matches(msg, a.keys.SwitchPane) {
		return a.cycleFocus()
	}

	if !a.todo.InputFocused() {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return nil
		case key.Matches(msg, a.keys.Today):
			return a.JumpToToday()
		case key.Matches(msg, a.keys.QuickSwap):
			return a.FocusInput()
		}
	}

	if a.focus == FocusCalendar {
		_, cmd := a.calendar.Update(msg)
		return cmd
	}
	_, cmd := a.todo.Update(msg)
	return cmd
}

// JumpToToday shows the current month and today's tasks.
func (a *App) JumpToToday() tea.Cmd {
	today, cmd := a.calendar.ShowToday()
	a.todo.SetDate(today)
	a.title = a.calendar.State().Title()
	return cmd
}

// CheckRollover runs the today jump when the local date has changed since
// the last check.
func (a *App) CheckRollover() tea.Cmd {
	today, changed := a.rollover.Check()
	if !changed {
		return nil
	}
	a.logger.Printf("date rolled over to %s", store.Key(today))

	cmds := []tea.Cmd{a.JumpToToday()}
	if a.config.UI.NotifyRollover {
		cmds = append(cmds, a.notifyRollover(today))
	}
	return tea.Batch(cmds...)
}

func (a *App) notifyRollover(today time.Time) tea.Cmd {
	open := a.store.OpenCount(today)
	title := today.Format("Monday, 02 January")
	message := fmt.Sprintf("%d open task(s) today", open)
	notify := a.notify
	logger := a.logger
	return func() tea.Msg {
		if err := notify(title, message); err != nil {
			logger.Printf("notification failed: %v", err)
		}
		return nil
	}
}

// FocusInput moves focus to the task input.
func (a *App) FocusInput() tea.Cmd {
	a.setFocus(FocusTodo)
	return a.todo.FocusInput()
}

// cycleFocus walks calendar -> task list -> task input -> calendar.
func (a *App) cycleFocus() tea.Cmd {
	switch {
	case a.focus == FocusCalendar:
		a.setFocus(FocusTodo)
		a.todo.FocusList()
	case a.todo.InnerFocus() == components.TodoFocusList:
		return a.FocusInput()
	default:
		a.setFocus(FocusCalendar)
	}
	return nil
}

func (a *App) setFocus(f Focus) {
	a.focus = f
	if f == FocusCalendar {
		a.calendar.Focus()
		a.todo.Blur()
		return
	}
	a.calendar.Blur()
	a.todo.Focus()
}

func (a *App) setStatus(msg components.StatusMsg) {
	a.statusErr = msg.Err != nil
	a.statusMsg = msg.Text
	if msg.Err != nil {
		a.statusMsg = fmt.Sprintf("%s: %v", msg.Text, msg.Err)
		a.logger.Printf("%s", a.statusMsg)
	}
}

// Focus returns the focused pane.
func (a *App) Focus() Focus {
	return a.focus
}

// Todo returns the todo pane.
func (a *App) Todo() *components.TodoModel {
	return a.todo
}

// Calendar returns the calendar pane.
func (a *App) Calendar() *components.CalendarModel {
	return a.calendar
}

// Rollover returns the day-change poller.
func (a *App) Rollover() *components.Rollover {
	return a.rollover
}

// Title returns the month label above the grid.
func (a *App) Title() string {
	return a.title
}

// Status returns the status bar text and whether it reports an error.
func (a *App) Status() (string, bool) {
	return a.statusMsg, a.statusErr
}

// HelpVisible reports whether the help overlay is shown.
func (a *App) HelpVisible() bool {
	return a.showHelp
}
