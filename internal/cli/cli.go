package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/studiowebux/curlfmt/internal/bookmarks"
	"github.com/studiowebux/curlfmt/internal/config"
	"github.com/studiowebux/curlfmt/internal/executor"
	"github.com/studiowebux/curlfmt/internal/history"
	"github.com/studiowebux/curlfmt/internal/launcher"
	"github.com/studiowebux/curlfmt/internal/logging"
	"github.com/studiowebux/curlfmt/internal/report"
	"github.com/studiowebux/curlfmt/internal/types"
)

// Input sources recorded in history
const (
	SourceArgs      = "args"
	SourceStdin     = "stdin"
	SourceClipboard = "clipboard"
)

// RunOptions contains options for formatting one command in CLI mode
type RunOptions struct {
	Args          []string  // command words as the shell delivered them, re-quoted by joinArgs
	Stdin         io.Reader // set only when stdin is piped
	FromClipboard bool      // read the command from the clipboard even when args are given

	ConfigPath  string // settings file, config.ConfigFile when empty
	HistoryPath string // history database, config.DatabasePath when empty
	LogLevel    string // overrides log.level

	OutputFormat string // text, json, yaml, body; settings output when empty
	Query        string // JMESPath query or $(bash command) applied to the response body
	Copy         bool
	NoColor      bool
	NoHistory    bool

	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard launcher.Clipboard
	Executor  executor.Executor // shell executor from settings when nil
}

func (o *RunOptions) applyDefaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Clipboard == nil {
		o.Clipboard = launcher.SystemClipboard{}
	}
	if o.HistoryPath == "" {
		o.HistoryPath = config.DatabasePath
	}
}

// Run reads a cURL command, executes it and prints the report
func Run(ctx context.Context, opts RunOptions) error {
	opts.applyDefaults()

	settings, logger, err := loadSettings(opts.ConfigPath, opts.LogLevel, opts.Stderr)
	if err != nil {
		return err
	}
	log := logger.WithComponent("cli")

	command, source, err := readInput(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle Ctrl+C: cancelling the context kills the curl process
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(opts.Stderr, "\nRequest cancelled by user")
			cancel()
		case <-ctx.Done():
		}
	}()

	query, err := resolveQuery(opts.HistoryPath, opts.Query)
	if err != nil {
		return err
	}

	builder := newBuilder(settings, opts.Executor, query, logger)
	r, err := builder.Build(ctx, command)
	if err != nil {
		if errors.Is(err, report.ErrNotCurlRequest) {
			return fmt.Errorf("%s (read from %s): %w", report.NotCurlMessage, source, err)
		}
		return fmt.Errorf("failed to build report: %w", err)
	}

	outputFormat := opts.OutputFormat
	if outputFormat == "" {
		outputFormat = settings.Output
	}
	color := settings.Color && !opts.NoColor && isTerminal(opts.Stdout)

	output, err := formatOutput(r, outputFormat, color, settings.Style)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprintln(opts.Stdout, strings.TrimRight(output, "\n"))

	if opts.Copy {
		if err := opts.Clipboard.WriteAll(r.Text()); err != nil {
			fmt.Fprintf(opts.Stderr, "Warning: failed to copy to clipboard: %v\n", err)
		} else {
			fmt.Fprintln(opts.Stderr, "Report copied to clipboard")
		}
	}

	if settings.History.Enabled && !opts.NoHistory {
		if err := saveHistory(opts.HistoryPath, settings.History.Limit, command, source, r); err != nil {
			// Don't fail if history save fails, just warn
			fmt.Fprintf(opts.Stderr, "Warning: failed to save history: %v\n", err)
			log.Debug("history save failed", "path", opts.HistoryPath, "error", err)
		}
	}

	return nil
}

// readInput picks the command from the clipboard, the arguments or piped stdin, in that order
func readInput(opts RunOptions) (command, source string, err error) {
	switch {
	case opts.FromClipboard:
		return readClipboard(opts.Clipboard)

	case len(opts.Args) > 0:
		return joinArgs(opts.Args), SourceArgs, nil

	case opts.Stdin != nil:
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), SourceStdin, nil
		}
		return readClipboard(opts.Clipboard)

	default:
		return readClipboard(opts.Clipboard)
	}
}

// joinArgs rebuilds a command line from argv. The shell has already removed
// the quotes, so URLs and words with shell metacharacters are single-quoted
// again; a single argument is taken as a complete command.
func joinArgs(args []string) string {
	if len(args) == 1 {
		return args[0]
	}

	words := make([]string, len(args))
	for i, arg := range args {
		words[i] = shellQuote(arg)
	}
	return strings.Join(words, " ")
}

// shellQuote single-quotes arg unless it is a bare word such as curl, -X or POST
func shellQuote(arg string) string {
	if arg != "" && !strings.Contains(arg, "://") && isBareWord(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func isBareWord(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./:=@%+,", r):
		default:
			return false
		}
	}
	return true
}

func readClipboard(cb launcher.Clipboard) (string, string, error) {
	content, err := cb.ReadAll()
	if err != nil {
		return "", "", fmt.Errorf("no cURL command provided (pass it as arguments, pipe it, or copy it): %w", err)
	}
	return content, SourceClipboard, nil
}

// loadSettings reads the settings file and builds the stderr logger
func loadSettings(path, levelOverride string, stderr io.Writer) (config.Settings, *logging.Logger, error) {
	settings, err := config.Load(path)
	if err != nil {
		return config.Settings{}, nil, err
	}

	level := settings.Log.Level
	if levelOverride != "" {
		level = levelOverride
	}

	logger := logging.New(stderr, logging.ParseLevel(level), settings.Log.Format)
	logging.SetDefault(logger)
	return settings, logger, nil
}

func newBuilder(settings config.Settings, exec executor.Executor, query string, logger *logging.Logger) *report.Builder {
	if exec == nil {
		exec = executor.NewShellExecutor(settings.Shell, logger)
	}
	b := report.NewBuilder(exec, logger)
	b.Query = query
	return b
}

// resolveQuery expands a bookmark reference such as "@ids"
func resolveQuery(dbPath, query string) (string, error) {
	if !bookmarks.IsRef(query) {
		return query, nil
	}

	mgr, err := bookmarks.NewManager(dbPath)
	if err != nil {
		return "", err
	}
	defer mgr.Close()

	return mgr.Resolve(query)
}

func saveHistory(dbPath string, limit int, command, source string, r *types.Report) error {
	if dbPath == "" {
		return errors.New("history database path is not set")
	}

	mgr, err := history.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if _, err := mgr.Save(command, source, r); err != nil {
		return err
	}
	return mgr.Prune(limit)
}

// isTerminal reports whether w is a character device (not piped or redirected)
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
