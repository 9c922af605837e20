package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hy4ri/caltodo/internal/store"
	"github.com/hy4ri/caltodo/internal/tui/styles"
)

// TodoFocus is the focused element inside the todo pane.
type TodoFocus int

const (
	TodoFocusInput TodoFocus = iota
	TodoFocusList
)

const dateLabelLayout = "Monday, 02 January 2006"

// TodoModel shows and edits the tasks of one date.
type TodoModel struct {
	store         *store.Store
	keys          KeyMap
	date          time.Time
	highlight     int
	input         textinput.Model
	viewport      viewport.Model
	viewportReady bool
	inner         TodoFocus
	focused       bool
	width, height int
	copyText      func(string) error
}

// NewTodo creates a TodoModel for date backed by s.
func NewTodo(s *store.Store, date time.Time, keys KeyMap) *TodoModel {
	ti := textinput.New()
	ti.Placeholder = "Add task… (Enter to add)"
	ti.CharLimit = 256
	ti.Width = 40

	return &TodoModel{
		store:    s,
		keys:     keys,
		date:     date,
		input:    ti,
		inner:    TodoFocusInput,
		copyText: clipboard.WriteAll,
	}
}

// Init implements Component.
func (t *TodoModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements Component.
func (t *TodoModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.inner == TodoFocusInput {
			return t, t.handleInputKey(msg)
		}
		return t, t.handleListKey(msg)
	}
	if t.inner == TodoFocusInput {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}
	return t, nil
}

func (t *TodoModel) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, t.keys.Submit):
		return t.Submit()
	case key.Matches(msg, t.keys.FocusList):
		t.FocusList()
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *TodoModel) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, t.keys.ListUp):
		t.MoveHighlight(-1)
	case key.Matches(msg, t.keys.ListDown):
		t.MoveHighlight(1)
	case key.Matches(msg, t.keys.Toggle):
		return t.ToggleHighlighted()
	case key.Matches(msg, t.keys.Delete):
		return t.DeleteHighlighted()
	case key.Matches(msg, t.keys.Copy):
		return t.CopyHighlighted()
	case key.Matches(msg, t.keys.FocusInput):
		return t.FocusInput()
	}
	return nil
}

// SetDate switches the pane to date. The highlight is kept and clamped to
// the new list rather than reset.
func (t *TodoModel) SetDate(date time.Time) {
	t.date = date
	t.highlight = clampCursor(t.highlight, len(t.tasks()))
	if t.viewportReady {
		t.viewport.GotoTop()
	}
}

// Date returns the date shown.
func (t *TodoModel) Date() time.Time {
	return t.date
}

// Highlight returns the highlighted task index.
func (t *TodoModel) Highlight() int {
	return t.highlight
}

// SetHighlight moves the highlight, clamped to the list.
func (t *TodoModel) SetHighlight(i int) {
	t.highlight = clampCursor(i, len(t.tasks()))
}

// MoveHighlight moves the highlight by delta, clamped to the list.
func (t *TodoModel) MoveHighlight(delta int) {
	t.SetHighlight(t.highlight + delta)
}

// Tasks returns the tasks of the current date.
func (t *TodoModel) Tasks() []store.Task {
	return t.tasks()
}

func (t *TodoModel) tasks() []store.Task {
	return t.store.Tasks(t.date)
}

// Submit adds the input text as a task. An empty submission moves focus to
// the list instead.
func (t *TodoModel) Submit() tea.Cmd {
	text := strings.TrimSpace(t.input.Value())
	if text == "" {
		t.FocusList()
		return nil
	}
	err := t.store.Add(t.date, text)
	t.input.SetValue("")
	if err != nil {
		return status("save failed", err)
	}
	return status(fmt.Sprintf("Added %q", text), nil)
}

// ToggleHighlighted flips the highlighted task.
func (t *TodoModel) ToggleHighlighted() tea.Cmd {
	tasks := t.tasks()
	if len(tasks) == 0 {
		return nil
	}
	t.highlight = clampCursor(t.highlight, len(tasks))
	if err := t.store.Toggle(t.date, t.highlight); err != nil {
		return status("save failed", err)
	}
	if t.tasks()[t.highlight].Done {
		return status("Task done", nil)
	}
	return status("Task reopened", nil)
}

// DeleteHighlighted removes the highlighted task.
func (t *TodoModel) DeleteHighlighted() tea.Cmd {
	tasks := t.tasks()
	if len(tasks) == 0 {
		return nil
	}
	t.highlight = clampCursor(t.highlight, len(tasks))
	err := t.store.Delete(t.date, t.highlight)
	t.highlight = clampCursor(t.highlight, len(t.tasks()))
	if err != nil {
		return status("save failed", err)
	}
	return status("Task deleted", nil)
}

// CopyHighlighted copies the highlighted task text to the clipboard.
func (t *TodoModel) CopyHighlighted() tea.Cmd {
	tasks := t.tasks()
	if len(tasks) == 0 {
		return nil
	}
	text := tasks[clampCursor(t.highlight, len(tasks))].Text
	copyText := t.copyText
	return func() tea.Msg {
		if err := copyText(text); err != nil {
			return StatusMsg{Text: "copy failed", Err: err}
		}
		return StatusMsg{Text: "Copied to clipboard"}
	}
}

// SetClipboard replaces the clipboard writer.
func (t *TodoModel) SetClipboard(fn func(string) error) {
	t.copyText = fn
}

func status(text string, err error) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, Err: err}
	}
}

// FocusInput focuses the text input.
func (t *TodoModel) FocusInput() tea.Cmd {
	t.focused = true
	t.inner = TodoFocusInput
	return t.input.Focus()
}

// FocusList focuses the task list.
func (t *TodoModel) FocusList() {
	t.focused = true
	t.inner = TodoFocusList
	t.input.Blur()
}

// InnerFocus returns which element of the pane has focus.
func (t *TodoModel) InnerFocus() TodoFocus {
	return t.inner
}

// InputFocused reports whether keystrokes go to the text input.
func (t *TodoModel) InputFocused() bool {
	return t.focused && t.inner == TodoFocusInput
}

// InputValue returns the current input text.
func (t *TodoModel) InputValue() string {
	return t.input.Value()
}

// Focus focuses the pane, restoring the last inner focus.
func (t *TodoModel) Focus() {
	t.focused = true
	if t.inner == TodoFocusInput {
		t.input.Focus()
	}
}

// Blur removes focus.
func (t *TodoModel) Blur() {
	t.focused = false
	t.input.Blur()
}

// Focused returns focus state.
func (t *TodoModel) Focused() bool {
	return t.focused
}

// SetSize implements Component.
func (t *TodoModel) SetSize(width, height int) {
	t.width = width
	t.height = height
	// Box frame, prompt and the cursor cell after the text.
	inputFrame := styles.InputFocused.GetHorizontalFrameSize() + lipgloss.Width(t.input.Prompt) + 1
	t.input.Width = max(width-inputFrame, 1)

	listHeight := max(height-5, 1) // label, blank, input box
	if !t.viewportReady {
		t.viewport = viewport.New(width, listHeight)
		t.viewport.Style = lipgloss.NewStyle()
		t.viewportReady = true
	} else {
		t.viewport.Width = width
		t.viewport.Height = listHeight
	}
}

// View implements Component.
func (t *TodoModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(t.date.Format(dateLabelLayout)))
	b.WriteString("\n\n")
	b.WriteString(t.renderList())
	b.WriteString("\n")

	inputStyle := styles.Input
	if t.InputFocused() {
		inputStyle = styles.InputFocused
	}
	b.WriteString(inputStyle.Render(t.input.View()))

	return b.String()
}

func (t *TodoModel) renderList() string {
	tasks := t.tasks()
	if len(tasks) == 0 {
		return styles.HelpDesc.Render("No tasks for this day")
	}

	lines := make([]string, len(tasks))
	hl := clampCursor(t.highlight, len(tasks))
	listFocused := t.focused && t.inner == TodoFocusList
	for i, task := range tasks {
		lines[i] = renderTaskLine(task, i == hl && listFocused, t.width-4)
	}
	content := strings.Join(lines, "\n")

	if !t.viewportReady {
		return content
	}
	t.viewport.SetContent(content)
	syncViewport(&t.viewport, hl)
	return t.viewport.View()
}

// TaskLine renders one task without styling: a marker then the text.
func TaskLine(task store.Task) string {
	marker := styles.MarkerPending
	if task.Done {
		marker = styles.MarkerDone
	}
	return marker + " " + task.Text
}

func renderTaskLine(task store.Task, selected bool, width int) string {
	line := TaskLine(task)
	if width > 0 {
		line = truncateString(line, width)
	}

	style := styles.TaskItem
	if task.Done {
		style = styles.TaskCompleted
	}
	if selected {
		style = styles.TaskSelected
	}
	return style.Render(line)
}

// syncViewport ensures the viewport shows the cursor line.
func syncViewport(vp *viewport.Model, cursorLine int) {
	if vp.Height <= 0 {
		return
	}
	top := vp.YOffset
	bottom := top + vp.Height - 1
	if cursorLine < top {
		vp.SetYOffset(cursorLine)
	} else if cursorLine > bottom {
		vp.SetYOffset(cursorLine - vp.Height + 1)
	}
}

// truncateString truncates a string to the given width, appending "…" if truncated.
// It handles wide characters correctly using runewidth.
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxLen {
		return s
	}

	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxLen-1 { // -1 for ellipsis
			return s[:i] + "…"
		}
		w += rw
	}

	return s
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
