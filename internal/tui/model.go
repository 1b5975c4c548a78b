package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/curlfmt/internal/launcher"
	"github.com/studiowebux/curlfmt/internal/types"
)

// focus is the widget receiving key presses
type focus int

const (
	focusInput focus = iota
	focusList
)

// resultsMsg carries the items produced for one query
type resultsMsg struct {
	seq   int
	query string
	items []types.Item
}

// Model represents the launcher state
type Model struct {
	ctx     context.Context
	handler *launcher.Handler

	input textinput.Model
	list  list.Model
	focus focus

	// seq identifies the latest submitted query; older results are dropped
	seq     int
	loading bool

	errMsg   string
	copied   string
	quitting bool

	width  int
	height int
}

// New creates a launcher model; the initial query runs as soon as the program starts
func New(ctx context.Context, h *launcher.Handler, query string) Model {
	ti := textinput.New()
	ti.Placeholder = "curl http://example.com"
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = inputCharSize
	ti.Width = inputWidth
	ti.SetValue(query)
	ti.Focus()

	l := list.New(nil, itemDelegate{}, defaultWidth, listHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	return Model{
		ctx:     ctx,
		handler: h,
		input:   ti,
		list:    l,
		focus:   focusInput,
		seq:     1,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, queryCmd(m.ctx, m.handler, m.seq, m.input.Value()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width)
		height := msg.Height - chromeHeight - previewLines
		if height < itemHeight {
			height = itemHeight
		}
		m.list.SetHeight(height)
		if w := msg.Width - 4; w < inputWidth {
			m.input.Width = w
		}
		return m, nil

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.errMsg = ""
		return m, m.setItems(msg.items)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Copied returns the report written to the clipboard, if any
func (m Model) Copied() string {
	return m.copied
}

func (m *Model) setItems(items []types.Item) tea.Cmd {
	listItems := make([]list.Item, 0, len(items))
	for _, it := range items {
		listItems = append(listItems, it)
	}
	cmd := m.list.SetItems(listItems)
	m.list.Select(0)
	return cmd
}

func (m Model) selectedItem() (types.Item, bool) {
	it, ok := m.list.SelectedItem().(types.Item)
	return it, ok
}

// queryCmd runs the handler off the event loop
func queryCmd(ctx context.Context, h *launcher.Handler, seq int, query string) tea.Cmd {
	if strings.TrimSpace(query) == "" {
		query = ""
	}
	return func() tea.Msg {
		return resultsMsg{
			seq:   seq,
			query: query,
			items: h.Query(ctx, query),
		}
	}
}

// Run starts the launcher and returns the copied report ("" when nothing was copied)
func Run(ctx context.Context, h *launcher.Handler, query string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, h, query))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running launcher: %w", err)
	}

	result, ok := finalModel.(Model)
	if !ok {
		return "", nil
	}
	return result.Copied(), nil
}
