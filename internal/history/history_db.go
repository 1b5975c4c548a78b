package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/curlfmt/internal/config"
	"github.com/studiowebux/curlfmt/internal/migrations"
	"github.com/studiowebux/curlfmt/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// Manager stores produced reports in SQLite
type Manager struct {
	db *sql.DB
}

// NewManager opens (and creates if needed) the history database at dbPath
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	// _loc=auto reads DATETIME columns back in local time, matching how Save writes them
	db, err := sql.Open("sqlite3", dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Save stores one report along with the command that produced it
func (m *Manager) Save(command, source string, r *types.Report) (int64, error) {
	query := `
		INSERT INTO history (
			timestamp, command, source, url, method, status, status_text, payload, response
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// Format timestamp for SQLite in local time
	timestampStr := time.Now().Local().Format(timestampLayout)

	res, err := m.db.Exec(query,
		timestampStr,
		command,
		source,
		r.URL,
		r.Method,
		r.Status,
		r.StatusText,
		r.Payload,
		r.Response,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save history entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read history entry id: %w", err)
	}
	return id, nil
}

// Load returns the newest entries first, at most limit of them (all when limit <= 0)
func (m *Manager) Load(limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, timestamp, command, source, url, method, status, status_text, payload, response
		FROM history
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

// Get returns a single entry by id
func (m *Manager) Get(id int64) (*types.HistoryEntry, error) {
	query := `
		SELECT id, timestamp, command, source, url, method, status, status_text, payload, response
		FROM history
		WHERE id = ?
	`

	rows, err := m.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load history entry: %w", err)
	}
	defer rows.Close()

	entries, err := m.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("history entry %d not found", id)
	}
	return &entries[0], nil
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]types.HistoryEntry, error) {
	var entries []types.HistoryEntry

	for rows.Next() {
		var (
			entry      types.HistoryEntry
			timestamp  string
			url        sql.NullString
			statusText sql.NullString
			payload    sql.NullString
			response   sql.NullString
		)

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&entry.Command,
			&entry.Source,
			&url,
			&entry.Report.Method,
			&entry.Report.Status,
			&statusText,
			&payload,
			&response,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.Report.URL = url.String
		entry.Report.StatusText = statusText.String
		entry.Report.Payload = payload.String
		entry.Report.Response = response.String
		entry.Timestamp = normalizeTimestamp(timestamp)

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// normalizeTimestamp turns the stored local time into RFC3339
func normalizeTimestamp(ts string) string {
	parsedTime, err := time.ParseInLocation(timestampLayout, ts, time.Local)
	if err != nil {
		// go-sqlite3 hands DATETIME columns back as time.Time, scanned to RFC3339
		parsedTime, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return ts
		}
	}
	return parsedTime.Format(time.RFC3339)
}

// Clear removes every entry
func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM history")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Delete removes one entry
func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

// GetCount returns the number of stored entries
func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

// Prune keeps only the newest keep entries
func (m *Manager) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := m.db.Exec(`
		DELETE FROM history
		WHERE id NOT IN (
			SELECT id FROM history ORDER BY timestamp DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
