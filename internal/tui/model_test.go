package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/curlfmt/internal/launcher"
	"github.com/studiowebux/curlfmt/internal/types"
)

type fakeClipboard struct {
	content  string
	writeErr error
	written  []string
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.content, nil }

func (f *fakeClipboard) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, text)
	return nil
}

type fakeFormatter struct {
	ok     bool
	result string
}

func (f fakeFormatter) Format(_ context.Context, _ string) (bool, string) {
	return f.ok, f.result
}

// createTestModel builds a model around fakes with results already loaded
func createTestModel(t *testing.T, cb *fakeClipboard, items []types.Item) Model {
	t.Helper()

	h := launcher.NewHandler(fakeFormatter{ok: true, result: "report"}, cb, nil)
	m := New(context.Background(), h, "")
	if items != nil {
		m = update(t, m, resultsMsg{seq: m.seq, items: items})
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	result, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return result
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var (
	copyItem = types.Item{Name: "Formatted cURL Request", Description: "Click to copy the formatted result", Action: types.ActionCopy, Text: "Request Method: GET"}
	hideItem = types.Item{Name: "Invalid cURL Request", Description: "Error", Action: types.ActionHide}
)

func TestNew_InitialState(t *testing.T) {
	m := createTestModel(t, &fakeClipboard{}, nil)

	if !m.loading {
		t.Error("model should be loading until the first results arrive")
	}
	if m.focus != focusInput {
		t.Errorf("focus = %v, want input", m.focus)
	}
	if m.Init() == nil {
		t.Error("Init should schedule the initial query")
	}
}

func TestNew_LongQueryKept(t *testing.T) {
	query := "curl 'https://x.io' -H 'Cookie: " + strings.Repeat("a", 10000) + "'"
	h := launcher.NewHandler(fakeFormatter{ok: true, result: "report"}, &fakeClipboard{}, nil)

	m := New(context.Background(), h, query)
	if m.input.Value() != query {
		t.Errorf("input holds %d chars, want %d", len(m.input.Value()), len(query))
	}
}

func TestQueryCmd(t *testing.T) {
	cb := &fakeClipboard{content: "not a command"}
	h := launcher.NewHandler(fakeFormatter{ok: true, result: "report"}, cb, nil)

	msg := queryCmd(context.Background(), h, 3, "   ")()
	res, ok := msg.(resultsMsg)
	if !ok {
		t.Fatalf("queryCmd produced %T", msg)
	}
	if res.seq != 3 || res.query != "" {
		t.Errorf("resultsMsg = %+v", res)
	}
	// blank query goes through the clipboard path
	if len(res.items) != 2 || res.items[0].Name != "No cURL Request Found" {
		t.Errorf("items = %+v", res.items)
	}

	res = queryCmd(context.Background(), h, 4, "curl 'https://x.io'")().(resultsMsg)
	if len(res.items) != 1 || res.items[0].Text != "report" {
		t.Errorf("typed query items = %+v", res.items)
	}
}

func TestUpdate_Results(t *testing.T) {
	m := createTestModel(t, &fakeClipboard{}, []types.Item{copyItem, hideItem})

	if m.loading {
		t.Error("loading should clear once results arrive")
	}
	if got := len(m.list.Items()); got != 2 {
		t.Errorf("list has %d items, want 2", got)
	}

	view := m.View()
	for _, want := range []string{"Formatted cURL Request", "Invalid cURL Request", "Request Method: GET"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestUpdate_StaleResultsDropped(t *testing.T) {
	m := createTestModel(t, &fakeClipboard{}, []types.Item{copyItem})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.loading || m.seq != 2 {
		t.Fatalf("enter in input should start query 2, got loading=%v seq=%d", m.loading, m.seq)
	}

	m = update(t, m, resultsMsg{seq: 1, items: []types.Item{hideItem, hideItem, hideItem}})
	if !m.loading {
		t.Error("stale results must not end loading")
	}
	if got := len(m.list.Items()); got != 1 {
		t.Errorf("stale results replaced the list: %d items", got)
	}
}

func TestActivate_CopyQuits(t *testing.T) {
	cb := &fakeClipboard{}
	m := createTestModel(t, cb, []types.Item{copyItem})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusList {
		t.Fatalf("tab should focus the list")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !isQuit(cmd) {
		t.Error("copy should close the launcher")
	}
	if m.Copied() != copyItem.Text {
		t.Errorf("Copied() = %q", m.Copied())
	}
	if len(cb.written) != 1 || cb.written[0] != copyItem.Text {
		t.Errorf("clipboard writes = %q", cb.written)
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestActivate_HideQuitsWithoutCopy(t *testing.T) {
	cb := &fakeClipboard{}
	m := createTestModel(t, cb, []types.Item{hideItem})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !isQuit(cmd) {
		t.Error("hide should close the launcher")
	}
	if m.Copied() != "" || len(cb.written) != 0 {
		t.Errorf("hide must not copy: copied=%q writes=%q", m.Copied(), cb.written)
	}
}

func TestActivate_CopyFailureStaysOpen(t *testing.T) {
	cb := &fakeClipboard{writeErr: errors.New("no display")}
	m := createTestModel(t, cb, []types.Item{copyItem})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if isQuit(cmd) {
		t.Error("launcher should stay open when the copy failed")
	}
	if !strings.Contains(m.errMsg, "no display") {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := createTestModel(t, &fakeClipboard{}, []types.Item{copyItem})
			next, cmd := m.Update(tt.key)
			if !isQuit(cmd) {
				t.Error("expected quit command")
			}
			if !next.(Model).quitting {
				t.Error("quitting flag not set")
			}
		})
	}
}

func TestToggleFocus(t *testing.T) {
	m := createTestModel(t, &fakeClipboard{}, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusList || m.input.Focused() {
		t.Error("tab should move focus to the list")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusInput || !m.input.Focused() {
		t.Error("second tab should return focus to the input")
	}
}
