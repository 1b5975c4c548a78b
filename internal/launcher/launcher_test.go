package launcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/studiowebux/curlfmt/internal/report"
	"github.com/studiowebux/curlfmt/internal/types"
)

type fakeClipboard struct {
	content  string
	readErr  error
	writeErr error
	written  []string
}

func (f *fakeClipboard) ReadAll() (string, error) {
	return f.content, f.readErr
}

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
	calls  []string
}

func (f *fakeFormatter) Format(_ context.Context, raw string) (bool, string) {
	f.calls = append(f.calls, raw)
	return f.ok, f.result
}

func names(items []types.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestQuery_TypedValid(t *testing.T) {
	f := &fakeFormatter{ok: true, result: "Request Method: GET"}
	h := NewHandler(f, &fakeClipboard{}, nil)

	items := h.Query(context.Background(), "curl 'https://x.io'")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	it := items[0]
	if it.Name != "Formatted cURL Request" || it.Action != types.ActionCopy || it.Text != "Request Method: GET" {
		t.Errorf("unexpected item: %+v", it)
	}
	if len(f.calls) != 1 || f.calls[0] != "curl 'https://x.io'" {
		t.Errorf("formatter calls = %q", f.calls)
	}
}

func TestQuery_TypedInvalid(t *testing.T) {
	f := &fakeFormatter{ok: false, result: report.NotCurlMessage}
	h := NewHandler(f, &fakeClipboard{}, nil)

	items := h.Query(context.Background(), "wget x")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	it := items[0]
	if it.Name != "Invalid cURL Request" || it.Action != types.ActionHide {
		t.Errorf("unexpected item: %+v", it)
	}
	if !strings.Contains(it.Description, report.NotCurlMessage) {
		t.Errorf("description should carry the error message: %q", it.Description)
	}
}

func TestQuery_Clipboard(t *testing.T) {
	tests := []struct {
		name          string
		clipboard     *fakeClipboard
		formatter     *fakeFormatter
		expectedNames []string
		expectCalls   int
	}{
		{
			name:          "valid curl in clipboard",
			clipboard:     &fakeClipboard{content: "  curl 'https://x.io'"},
			formatter:     &fakeFormatter{ok: true, result: "report"},
			expectedNames: []string{"Format Clipboard cURL Request"},
			expectCalls:   1,
		},
		{
			name:          "formatter rejects clipboard",
			clipboard:     &fakeClipboard{content: "curl"},
			formatter:     &fakeFormatter{ok: false, result: report.NotCurlMessage},
			expectedNames: []string{"Error Formatting Clipboard Content"},
			expectCalls:   1,
		},
		{
			name:          "clipboard holds other text",
			clipboard:     &fakeClipboard{content: "shopping list"},
			formatter:     &fakeFormatter{ok: true},
			expectedNames: []string{"No cURL Request Found", "Example Usage"},
		},
		{
			name:          "clipboard unreadable",
			clipboard:     &fakeClipboard{readErr: errors.New("no xclip")},
			formatter:     &fakeFormatter{ok: true},
			expectedNames: []string{"Start New Request"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.formatter, tt.clipboard, nil)

			// whitespace counts as no query
			for _, query := range []string{"", " \t\n"} {
				tt.formatter.calls = nil
				items := h.Query(context.Background(), query)

				got := names(items)
				if strings.Join(got, "|") != strings.Join(tt.expectedNames, "|") {
					t.Errorf("Query(%q) items = %q, want %q", query, got, tt.expectedNames)
				}
				if len(tt.formatter.calls) != tt.expectCalls {
					t.Errorf("Query(%q) called formatter %d times, want %d", query, len(tt.formatter.calls), tt.expectCalls)
				}
			}
		})
	}
}

func TestActivate(t *testing.T) {
	cb := &fakeClipboard{}
	h := NewHandler(&fakeFormatter{}, cb, nil)

	closeUI, err := h.Activate(types.Item{Action: types.ActionCopy, Text: "the report"})
	if err != nil || !closeUI {
		t.Fatalf("Activate(copy) = %v, %v", closeUI, err)
	}
	if len(cb.written) != 1 || cb.written[0] != "the report" {
		t.Errorf("clipboard writes = %q", cb.written)
	}

	closeUI, err = h.Activate(types.Item{Action: types.ActionHide})
	if err != nil || !closeUI {
		t.Errorf("Activate(hide) = %v, %v", closeUI, err)
	}
	if len(cb.written) != 1 {
		t.Errorf("hide must not touch the clipboard, writes = %q", cb.written)
	}
}

func TestActivate_CopyFailure(t *testing.T) {
	cb := &fakeClipboard{writeErr: errors.New("denied")}
	h := NewHandler(&fakeFormatter{}, cb, nil)

	closeUI, err := h.Activate(types.Item{Action: types.ActionCopy, Text: "x"})
	if err == nil {
		t.Fatal("expected error when clipboard write fails")
	}
	if closeUI {
		t.Error("front-end should stay open when the copy failed")
	}
}
