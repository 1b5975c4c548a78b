package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/curlfmt/internal/types"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("curlfmt"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(statusStyle.Render("Running request..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
		if preview := m.renderPreview(); preview != "" {
			b.WriteString(preview)
			b.WriteString("\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) helpText() string {
	if m.focus == focusInput {
		return "enter: run • tab: results • ↑/↓: select • esc/ctrl+c: quit"
	}
	return "enter: activate • tab: edit query • ↑/↓: navigate • q/esc: quit"
}

// renderPreview shows the head of the selected item's report
func (m Model) renderPreview() string {
	item, ok := m.selectedItem()
	if !ok || item.Text == "" {
		return ""
	}

	lines := strings.Split(item.Text, "\n")
	if total := len(lines); total > previewLines {
		lines = append(lines[:previewLines], fmt.Sprintf("... %d more lines", total-previewLines))
	}

	style := previewStyle
	if m.width > 0 {
		style = style.MaxWidth(m.width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// itemDelegate renders launcher items as name + description
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return itemHeight }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(types.Item)
	if !ok {
		return
	}

	title := fmt.Sprintf("%d. %s", index+1, it.Title())

	if index == m.Index() {
		fmt.Fprintf(w, "%s\n%s", selectedItemStyle.Render("> "+title), selectedDescStyle.Render(it.Description))
		return
	}
	fmt.Fprintf(w, "%s\n%s", itemStyle.Render(title), descStyle.Render(it.Description))
}
