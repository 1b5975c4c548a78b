// Package jsonfmt pretty-prints JSON text for reports.
//
// Anything that is not valid JSON is passed through untouched: HTML error
// pages, form bodies and empty payloads are expected inputs, not failures.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Indent is the indentation unit used for pretty-printed output
const Indent = "  "

// DefaultStyle is the chroma style used for terminal highlighting
const DefaultStyle = "monokai"

// IsJSON reports whether s holds a single valid JSON value
func IsJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed != "" && json.Valid([]byte(trimmed))
}

// Format re-indents valid JSON with two spaces, keeping key order and number
// literals as written. Any other input is returned unchanged.
func Format(s string) string {
	if !IsJSON(s) {
		return s
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(s)), "", Indent); err != nil {
		return s
	}
	return buf.String()
}

// Highlight colorizes JSON for a 256-color terminal.
// Non-JSON text, or any lexer/style failure, yields s unchanged.
func Highlight(s, style string) string {
	if !IsJSON(s) {
		return s
	}
	if style == "" {
		style = DefaultStyle
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, s, "json", "terminal256", style); err != nil {
		return s
	}
	return buf.String()
}
