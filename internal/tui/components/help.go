package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/caltodo/internal/tui/styles"
)

// HelpModel renders the keyboard shortcut overlay.
type HelpModel struct {
	width, height int
	keys          KeyMap
}

// NewHelp creates a new HelpModel.
func NewHelp(keys KeyMap) *HelpModel {
	return &HelpModel{keys: keys}
}

// Init implements Component.
func (h *HelpModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (h *HelpModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg {
				return CloseHelpMsg{}
			}
		}
	}
	return h, nil
}

// View implements Component.
func (h *HelpModel) View() string {
	sections := []string{"Calendar", "Tasks", "Global"}

	var columns []string
	for i, group := range h.keys.FullHelp() {
		var b strings.Builder
		b.WriteString(styles.Subtitle.Render(sections[i]))
		b.WriteString("\n")
		for _, binding := range group {
			b.WriteString(renderHelpLine(binding))
			b.WriteString("\n")
		}
		columns = append(columns, b.String())
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, intersperse(columns, "    ")...))
	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("esc/? to close"))

	return styles.Dialog.Render(b.String())
}

func renderHelpLine(binding key.Binding) string {
	h := binding.Help()
	return styles.HelpKey.Render(padRight(h.Key, 8)) + " " + styles.HelpDesc.Render(h.Desc)
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func intersperse(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}

// SetSize implements Component.
func (h *HelpModel) SetSize(width, height int) {
	h.width = width
	h.height = height
}
