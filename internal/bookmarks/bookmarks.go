// Package bookmarks stores named response queries so they can be reused as -q @name.
package bookmarks

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/curlfmt/internal/config"
	"github.com/studiowebux/curlfmt/internal/filter"
	"github.com/studiowebux/curlfmt/internal/migrations"
)

// RefPrefix marks a query argument as a bookmark reference
const RefPrefix = "@"

// ErrNotFound is returned when no bookmark has the requested name
var ErrNotFound = errors.New("bookmark not found")

// Bookmark represents a saved query expression
type Bookmark struct {
	ID         int       `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Expression string    `json:"expression" yaml:"expression"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
}

// Manager handles bookmark persistence
type Manager struct {
	db *sql.DB
}

// NewManager opens the bookmark store, sharing the history database file
func NewManager(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create bookmark directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Save stores expression under name. It returns false when an existing
// bookmark was replaced.
func (m *Manager) Save(name, expression string) (bool, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), RefPrefix)
	expression = strings.TrimSpace(expression)
	if name == "" {
		return false, fmt.Errorf("bookmark name cannot be empty")
	}
	if expression == "" {
		return false, fmt.Errorf("expression cannot be empty")
	}
	if !filter.IsShellCommand(expression) && !filter.IsValidJMESPath(expression) {
		return false, fmt.Errorf("invalid JMESPath expression: %s", expression)
	}

	var exists bool
	err := m.db.QueryRow("SELECT EXISTS(SELECT 1 FROM query_bookmarks WHERE name = ?)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}

	if exists {
		if _, err := m.db.Exec("UPDATE query_bookmarks SET expression = ? WHERE name = ?", expression, name); err != nil {
			return false, fmt.Errorf("failed to update bookmark: %w", err)
		}
		return false, nil
	}

	_, err = m.db.Exec(`
		INSERT INTO query_bookmarks (name, expression, created_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, name, expression)
	if err != nil {
		return false, fmt.Errorf("failed to save bookmark: %w", err)
	}

	return true, nil
}

// Get returns the bookmark called name
func (m *Manager) Get(name string) (*Bookmark, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), RefPrefix)

	var b Bookmark
	err := m.db.QueryRow(`
		SELECT id, name, expression, created_at
		FROM query_bookmarks
		WHERE name = ?
	`, name).Scan(&b.ID, &b.Name, &b.Expression, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmark: %w", err)
	}
	return &b, nil
}

// Resolve expands "@name" to the saved expression; any other query is returned as is
func (m *Manager) Resolve(query string) (string, error) {
	if !IsRef(query) {
		return query, nil
	}
	b, err := m.Get(query)
	if err != nil {
		return "", err
	}
	return b.Expression, nil
}

// IsRef reports whether query names a bookmark
func IsRef(query string) bool {
	return strings.HasPrefix(strings.TrimSpace(query), RefPrefix)
}

// Delete removes a bookmark by name
func (m *Manager) Delete(name string) error {
	name = strings.TrimPrefix(strings.TrimSpace(name), RefPrefix)

	result, err := m.db.Exec("DELETE FROM query_bookmarks WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return nil
}

// List returns all bookmarks ordered by name
func (m *Manager) List() ([]Bookmark, error) {
	return m.query(`
		SELECT id, name, expression, created_at
		FROM query_bookmarks
		ORDER BY name
	`)
}

// Search filters bookmarks by name or expression substring (case-insensitive)
func (m *Manager) Search(term string) ([]Bookmark, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return m.List()
	}

	pattern := "%" + term + "%"
	return m.query(`
		SELECT id, name, expression, created_at
		FROM query_bookmarks
		WHERE name LIKE ? OR expression LIKE ?
		ORDER BY name
	`, pattern, pattern)
}

func (m *Manager) query(q string, args ...any) ([]Bookmark, error) {
	rows, err := m.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.Name, &b.Expression, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}

	return bookmarks, nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
