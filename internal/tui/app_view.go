package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/caltodo/internal/tui/styles"
)

// Seven cells of four columns; the weekday header is as wide.
const calendarWidth = 28

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	if a.showHelp {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.help.View())
	}

	calPane := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(a.title),
		"",
		a.calendar.View(),
	)

	calStyle, todoStyle := styles.Pane, styles.Pane
	if a.focus == FocusCalendar {
		calStyle = styles.PaneFocused
	} else {
		todoStyle = styles.PaneFocused
	}

	height := a.paneHeight()
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle(calStyle, calendarWidth, height).Render(calPane),
		" ",
		paneStyle(todoStyle, a.todoWidth(), height).Render(a.todo.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.App.Render(main),
		a.renderStatusBar(),
	)
}

// layout resizes the panes after a window size change.
func (a *App) layout() {
	a.calendar.SetSize(calendarWidth, a.paneHeight())
	a.todo.SetSize(a.todoWidth(), a.paneHeight())
	a.help.SetSize(a.width, a.height)
	a.hints.Width = a.width
}

// paneStyle sizes style so that its content area is width columns wide.
// lipgloss counts padding, but not the border, inside Width.
func paneStyle(style lipgloss.Style, width, height int) lipgloss.Style {
	return style.Width(width + style.GetHorizontalPadding()).Height(height)
}

// todoWidth is what remains of the window for the todo pane's content.
func (a *App) todoWidth() int {
	frame := styles.Pane.GetHorizontalFrameSize()
	used := styles.App.GetHorizontalFrameSize() + calendarWidth + frame + 1 + frame
	return max(a.width-used, 10)
}

func (a *App) paneHeight() int {
	bars := 1
	if a.config.UI.ShowHints {
		bars = 2
	}
	// Top and bottom border.
	return max(a.height-bars-2, 1)
}

// renderStatusBar renders the last status message over the key hints.
func (a *App) renderStatusBar() string {
	var status string
	switch {
	case a.statusMsg == "":
		status = styles.StatusBarText.Render(a.todo.Date().Format("2006-01-02"))
	case a.statusErr:
		status = styles.StatusBarError.Render(a.statusMsg)
	default:
		status = styles.StatusBarSuccess.Render(a.statusMsg)
	}

	bar := styles.StatusBar.Width(a.width).Render(status)
	if !a.config.UI.ShowHints {
		return bar
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, a.hints.View(a.keys))
}
