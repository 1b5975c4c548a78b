package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/curlfmt/internal/types"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m.quit()

	case "tab", "shift+tab":
		return m.toggleFocus()

	case "enter":
		if m.focus == focusInput {
			return m.submit()
		}
		return m.activate()

	case "up", "down":
		// Arrows move the selection from either widget
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == focusList {
		if msg.String() == "q" {
			return m.quit()
		}
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}
	m.focus = focusInput
	return m, m.input.Focus()
}

// submit runs the current input as a new query
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.seq++
	m.loading = true
	m.errMsg = ""
	return m, queryCmd(m.ctx, m.handler, m.seq, m.input.Value())
}

// activate performs the selected item's action
func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}

	closeUI, err := m.handler.Activate(item)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	if item.Action == types.ActionCopy {
		m.copied = item.Text
	}
	if closeUI {
		return m.quit()
	}
	return m, nil
}
