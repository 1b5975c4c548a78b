package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/studiowebux/curlfmt/internal/launcher"
	"github.com/studiowebux/curlfmt/internal/tui"
)

// UIOptions contains options for the interactive launcher
type UIOptions struct {
	Query      string // initial query; empty means the clipboard
	ConfigPath string
	LogLevel   string
	Stderr     io.Writer
	Clipboard  launcher.Clipboard
}

// NewLauncher builds the launcher handler from settings
func NewLauncher(opts UIOptions) (*launcher.Handler, error) {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	settings, logger, err := loadSettings(opts.ConfigPath, opts.LogLevel, opts.Stderr)
	if err != nil {
		return nil, err
	}

	builder := newBuilder(settings, nil, "", logger)
	return launcher.NewHandler(builder, opts.Clipboard, logger), nil
}

// RunUI starts the launcher and reports a copy on stderr once it closes
func RunUI(ctx context.Context, opts UIOptions) error {
	handler, err := NewLauncher(opts)
	if err != nil {
		return err
	}

	copied, err := tui.Run(ctx, handler, opts.Query)
	if err != nil {
		return err
	}

	if copied != "" {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		fmt.Fprintln(stderr, "Report copied to clipboard")
	}
	return nil
}
