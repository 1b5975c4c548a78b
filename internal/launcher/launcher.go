// Package launcher turns a launcher query into result items.
//
// It is the boundary between the report builder and whatever renders the
// items: the Bubble Tea UI in this repo, or any other front-end that can
// read and write the clipboard.
package launcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/studiowebux/curlfmt/internal/curl"
	"github.com/studiowebux/curlfmt/internal/logging"
	"github.com/studiowebux/curlfmt/internal/types"
)

// Clipboard is the system clipboard as seen by a front-end
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Formatter produces (success, report-or-message) for raw command text
type Formatter interface {
	Format(ctx context.Context, raw string) (bool, string)
}

// SystemClipboard reads and writes the OS clipboard
type SystemClipboard struct{}

// ReadAll returns the clipboard text
func (SystemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Handler answers launcher queries
type Handler struct {
	Formatter Formatter
	Clipboard Clipboard
	Logger    *logging.Logger
}

// NewHandler creates a handler; a nil clipboard means the system clipboard
func NewHandler(f Formatter, cb Clipboard, logger *logging.Logger) *Handler {
	if cb == nil {
		cb = SystemClipboard{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		Formatter: f,
		Clipboard: cb,
		Logger:    logger.WithComponent("launcher"),
	}
}

// Query formats the typed query, or the clipboard when the query is empty
func (h *Handler) Query(ctx context.Context, query string) []types.Item {
	if strings.TrimSpace(query) == "" {
		return h.fromClipboard(ctx)
	}

	ok, result := h.Formatter.Format(ctx, query)
	if !ok {
		return []types.Item{{
			Name:        "Invalid cURL Request",
			Description: fmt.Sprintf(`Error: %s. Make sure your request starts with "curl"`, result),
			Action:      types.ActionHide,
		}}
	}

	return []types.Item{{
		Name:        "Formatted cURL Request",
		Description: "Click to copy the formatted result",
		Action:      types.ActionCopy,
		Text:        result,
	}}
}

func (h *Handler) fromClipboard(ctx context.Context) []types.Item {
	content, err := h.Clipboard.ReadAll()
	if err != nil {
		h.Logger.Debug("clipboard unavailable", "error", err)
		return []types.Item{{
			Name:        "Start New Request",
			Description: "Type your curl request (e.g., curl http://example.com)",
			Action:      types.ActionHide,
		}}
	}

	if !curl.IsCurlRequest(content) {
		return []types.Item{
			{
				Name:        "No cURL Request Found",
				Description: "Start typing your curl request (e.g., curl http://example.com)",
				Action:      types.ActionHide,
			},
			{
				Name:        "Example Usage",
				Description: `Type "curl -X POST http://api.example.com -H 'Content-Type: application/json'"`,
				Action:      types.ActionHide,
			},
		}
	}

	ok, result := h.Formatter.Format(ctx, content)
	if !ok {
		return []types.Item{{
			Name:        "Error Formatting Clipboard Content",
			Description: "Start typing your curl request or fix clipboard content",
			Action:      types.ActionHide,
		}}
	}

	return []types.Item{{
		Name:        "Format Clipboard cURL Request",
		Description: "Click to copy formatted result",
		Action:      types.ActionCopy,
		Text:        result,
	}}
}

// Activate performs the item's action. It reports whether the front-end should close.
func (h *Handler) Activate(item types.Item) (bool, error) {
	switch item.Action {
	case types.ActionCopy:
		if err := h.Clipboard.WriteAll(item.Text); err != nil {
			return false, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		return true, nil
	default:
		return true, nil
	}
}
