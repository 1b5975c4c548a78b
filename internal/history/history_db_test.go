package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/curlfmt/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Failed to create history manager: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func sampleReport(method string, status int) *types.Report {
	return &types.Report{
		URL:        "https://api.example.com/data",
		Method:     method,
		Status:     status,
		StatusText: "200 OK",
		Payload:    "{\n  \"key\": \"value\"\n}",
		Response:   "{\n  \"ok\": true\n}",
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := newTestManager(t)

	cmd := `curl 'https://api.example.com/data' -X POST --data-raw '{"key": "value"}'`
	id, err := m.Save(cmd, "args", sampleReport("POST", 200))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if id <= 0 {
		t.Errorf("Save returned id %d", id)
	}

	entries, err := m.Load(10)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.ID != id || e.Command != cmd || e.Source != "args" {
		t.Errorf("unexpected entry metadata: %+v", e)
	}
	if e.Report != *sampleReport("POST", 200) {
		t.Errorf("report round trip mismatch:\ngot  %+v\nwant %+v", e.Report, *sampleReport("POST", 200))
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", e.Timestamp, err)
	}
}

func TestLoad_NewestFirstAndLimit(t *testing.T) {
	m := newTestManager(t)

	methods := []string{"GET", "POST", "PUT"}
	for _, method := range methods {
		if _, err := m.Save("curl 'https://x.io'", "clipboard", sampleReport(method, 200)); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	entries, err := m.Load(2)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Report.Method != "PUT" || entries[1].Report.Method != "POST" {
		t.Errorf("entries not newest first: %s, %s", entries[0].Report.Method, entries[1].Report.Method)
	}

	all, err := m.Load(0)
	if err != nil {
		t.Fatalf("Load(0) error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Load(0) returned %d entries, want 3", len(all))
	}
}

func TestGetDeleteClear(t *testing.T) {
	m := newTestManager(t)

	id, err := m.Save("curl 'https://x.io'", "stdin", sampleReport("GET", 0))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := m.Save("curl 'https://y.io'", "stdin", sampleReport("GET", 0)); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := m.Get(id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Command != "curl 'https://x.io'" {
		t.Errorf("Get returned %q", got.Command)
	}

	if err := m.Delete(id); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := m.Get(id); err == nil {
		t.Error("expected error for deleted entry")
	}

	count, err := m.GetCount()
	if err != nil || count != 1 {
		t.Errorf("GetCount = %d, %v; want 1", count, err)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	count, _ = m.GetCount()
	if count != 0 {
		t.Errorf("count after Clear = %d", count)
	}
}

func TestPrune(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < 5; i++ {
		if _, err := m.Save("curl 'https://x.io'", "args", sampleReport("GET", 200)); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	if err := m.Prune(2); err != nil {
		t.Fatalf("Prune error: %v", err)
	}
	count, _ := m.GetCount()
	if count != 2 {
		t.Errorf("count after Prune(2) = %d", count)
	}

	if err := m.Prune(0); err != nil {
		t.Fatalf("Prune(0) error: %v", err)
	}
	count, _ = m.GetCount()
	if count != 2 {
		t.Errorf("Prune(0) should keep everything, count = %d", count)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	if got := normalizeTimestamp("garbage"); got != "garbage" {
		t.Errorf("normalizeTimestamp(garbage) = %q", got)
	}
	if got := normalizeTimestamp("2026-01-02T03:04:05Z"); got != "2026-01-02T03:04:05Z" {
		t.Errorf("normalizeTimestamp(RFC3339) = %q", got)
	}
}
