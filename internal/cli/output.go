package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/curlfmt/internal/httpstatus"
	"github.com/studiowebux/curlfmt/internal/jsonfmt"
	"github.com/studiowebux/curlfmt/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatBody = "body"
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	redirectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Bold(true)
)

// formatOutput formats the report based on the output format
func formatOutput(r *types.Report, format string, color bool, style string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", jsonfmt.Indent)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatBody:
		if color {
			return jsonfmt.Highlight(r.Response, style), nil
		}
		return r.Response, nil

	case FormatText, "":
		if color {
			return colorText(r, style), nil
		}
		return r.Text(), nil

	default:
		return "", fmt.Errorf("unsupported output format %q (use text, json, yaml or body)", format)
	}
}

// colorText renders the same layout as Report.Text with a colored status
// line and highlighted JSON sections
func colorText(r *types.Report, style string) string {
	var lines []string

	if r.URL != "" {
		lines = append(lines, labelStyle.Render("Request URL:")+" "+r.URL)
	}
	lines = append(lines, labelStyle.Render("Request Method:")+" "+r.Method)

	if r.Status > 0 {
		lines = append(lines, labelStyle.Render("Status:")+" "+statusStyle(r.Status).Render(httpstatus.Describe(r.Status)))
	}

	if r.Payload != "" {
		lines = append(lines, "", labelStyle.Render("Payload:"), jsonfmt.Highlight(r.Payload, style))
	}

	if r.Response != "" {
		lines = append(lines, "", labelStyle.Render("Response:"), jsonfmt.Highlight(r.Response, style))
	}

	return strings.Join(lines, "\n")
}

func statusStyle(status int) lipgloss.Style {
	switch {
	case httpstatus.IsSuccess(status):
		return successStyle
	case httpstatus.IsRedirect(status):
		return redirectStyle
	case httpstatus.IsServerError(status), httpstatus.IsClientError(status):
		return failStyle
	default:
		return warnStyle
	}
}
