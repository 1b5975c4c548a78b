package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/studiowebux/curlfmt/internal/history"
	"github.com/studiowebux/curlfmt/internal/jsonfmt"
	"github.com/studiowebux/curlfmt/internal/types"
	"gopkg.in/yaml.v3"
)

// HistoryOptions selects the history database and how entries are printed
type HistoryOptions struct {
	DBPath       string
	Limit        int
	OutputFormat string // text, json, yaml
	Stdout       io.Writer
}

// PrintHistory lists stored reports, newest first
func PrintHistory(opts HistoryOptions) error {
	mgr, err := history.NewManager(opts.DBPath)
	if err != nil {
		return err
	}
	defer mgr.Close()

	entries, err := mgr.Load(opts.Limit)
	if err != nil {
		return err
	}

	switch opts.OutputFormat {
	case FormatJSON:
		if entries == nil {
			entries = []types.HistoryEntry{}
		}
		data, err := json.MarshalIndent(entries, "", jsonfmt.Indent)
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		fmt.Fprintln(opts.Stdout, string(data))
		return nil

	case FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		fmt.Fprint(opts.Stdout, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(opts.Stdout, "No history entries")
		return nil
	}

	tw := tabwriter.NewWriter(opts.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tMETHOD\tSTATUS\tURL")
	for _, e := range entries {
		status := "-"
		if e.Report.Status > 0 {
			status = fmt.Sprintf("%d", e.Report.Status)
		}
		url := e.Report.URL
		if url == "" {
			url = firstLine(e.Command)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Timestamp, e.Report.Method, status, url)
	}
	return tw.Flush()
}

// ClearHistory deletes every stored report and returns how many were removed
func ClearHistory(dbPath string) (int, error) {
	mgr, err := history.NewManager(dbPath)
	if err != nil {
		return 0, err
	}
	defer mgr.Close()

	count, err := mgr.GetCount()
	if err != nil {
		return 0, err
	}
	if err := mgr.Clear(); err != nil {
		return 0, err
	}
	return count, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		return s[:idx]
	}
	return s
}
