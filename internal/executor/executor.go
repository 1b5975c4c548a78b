package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/studiowebux/curlfmt/internal/logging"
	"github.com/studiowebux/curlfmt/internal/types"
)

// Delimiter separates the response body from the status code curl writes after it
const Delimiter = "===STATUS_CODE==="

// writeOutFlags makes curl silent and append the marker plus %{http_code} to stdout
const writeOutFlags = " -s -w '" + Delimiter + "%{http_code}'"

// DefaultShell runs the command line when none is configured
const DefaultShell = "sh"

// Executor runs a full cURL command line and reports what came back
type Executor interface {
	Execute(ctx context.Context, command string) types.ExecutionResult
}

// ShellExecutor hands the command to a shell, the same way a user's terminal would
type ShellExecutor struct {
	Shell  string
	Logger *logging.Logger
}

// NewShellExecutor creates an executor using shell (DefaultShell when empty)
func NewShellExecutor(shell string, logger *logging.Logger) *ShellExecutor {
	if shell == "" {
		shell = DefaultShell
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ShellExecutor{
		Shell:  shell,
		Logger: logger.WithComponent("executor"),
	}
}

// Execute runs the command and splits body from status.
// A process that cannot be started yields an empty body and status 0.
// No timeout is applied here, ctx is only honored if the caller cancels it.
func (e *ShellExecutor) Execute(ctx context.Context, command string) types.ExecutionResult {
	startTime := time.Now()

	cmd := exec.CommandContext(ctx, e.Shell, "-c", BuildCommand(command))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(startTime).Milliseconds()

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.Logger.Debug("failed to start command", "error", err, "shell", e.Shell)
			return types.ExecutionResult{}
		}
		// curl exits non-zero on transport errors but still prints the marker
		e.Logger.Debug("command exited with error",
			"exit_code", exitErr.ExitCode(),
			"stderr", strings.TrimSpace(stderr.String()),
		)
	}

	body, status := SplitOutput(stdout.String())
	e.Logger.Debug("command finished", "status", status, "duration_ms", duration, "bytes", stdout.Len())

	return types.ExecutionResult{
		Body:       body,
		StatusCode: status,
	}
}

// BuildCommand appends the silent and write-out flags to a cURL command line
func BuildCommand(command string) string {
	return strings.TrimRight(command, " \t\r\n") + writeOutFlags
}

// SplitOutput separates the body from the trailing status code.
// The last occurrence of Delimiter is used so a body that happens to contain
// it stays intact. Without a delimiter the whole output is the body.
// A tail that is not an integer yields status 0.
func SplitOutput(output string) (string, int) {
	idx := strings.LastIndex(output, Delimiter)
	if idx < 0 {
		return output, 0
	}

	body := output[:idx]
	status, err := strconv.Atoi(strings.TrimSpace(output[idx+len(Delimiter):]))
	if err != nil || status < 0 {
		return body, 0
	}

	return body, status
}
