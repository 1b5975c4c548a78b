package types

import (
	"strings"

	"github.com/studiowebux/curlfmt/internal/httpstatus"
)

// ParsedRequest represents the request fields extracted from a cURL command
type ParsedRequest struct {
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Method  string `json:"method" yaml:"method"`
	Payload string `json:"payload,omitempty" yaml:"payload,omitempty"` // raw, not pretty-printed
}

// ExecutionResult contains what the external tool produced for one command.
// StatusCode 0 means the status could not be captured.
type ExecutionResult struct {
	Body       string `json:"body"`
	StatusCode int    `json:"statusCode"`
}

// Report is the formatted summary of one executed cURL command
type Report struct {
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
	Method     string `json:"method" yaml:"method"`
	Status     int    `json:"status,omitempty" yaml:"status,omitempty"`
	StatusText string `json:"statusText,omitempty" yaml:"statusText,omitempty"`
	Payload    string `json:"payload,omitempty" yaml:"payload,omitempty"`
	Response   string `json:"response,omitempty" yaml:"response,omitempty"`
}

// Text renders the multi-line human readable report.
// Optional sections are left out when empty.
func (r *Report) Text() string {
	var lines []string

	if r.URL != "" {
		lines = append(lines, "Request URL: "+r.URL)
	}
	lines = append(lines, "Request Method: "+r.Method)

	if r.Status > 0 {
		lines = append(lines, "Status: "+httpstatus.Describe(r.Status))
	}

	if r.Payload != "" {
		lines = append(lines, "", "Payload:", r.Payload)
	}

	if r.Response != "" {
		lines = append(lines, "", "Response:", r.Response)
	}

	return strings.Join(lines, "\n")
}

// HistoryEntry represents a saved command/report pair
type HistoryEntry struct {
	ID        int64  `json:"id" yaml:"id"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Command   string `json:"command" yaml:"command"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"` // args, stdin, clipboard
	Report    Report `json:"report" yaml:"report"`
}

// Action is what a front-end does when an item is selected
type Action int

const (
	// ActionHide closes the front-end without side effects
	ActionHide Action = iota
	// ActionCopy copies Item.Text to the clipboard
	ActionCopy
)

// Item is one selectable row rendered by a front-end
type Item struct {
	Name        string
	Description string
	Action      Action
	Text        string // payload for ActionCopy
}

// FilterValue implements list.Item so items can be fed to a bubbles list directly
func (i Item) FilterValue() string {
	return i.Name + " " + i.Description
}

// Title is the primary line shown for the item
func (i Item) Title() string { return i.Name }
