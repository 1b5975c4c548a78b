// Package report turns a raw cURL command into a formatted request/response summary.
package report

import (
	"context"
	"errors"

	"github.com/studiowebux/curlfmt/internal/curl"
	"github.com/studiowebux/curlfmt/internal/executor"
	"github.com/studiowebux/curlfmt/internal/filter"
	"github.com/studiowebux/curlfmt/internal/httpstatus"
	"github.com/studiowebux/curlfmt/internal/jsonfmt"
	"github.com/studiowebux/curlfmt/internal/logging"
	"github.com/studiowebux/curlfmt/internal/types"
)

// NotCurlMessage is the user facing message for input that is not a cURL command
const NotCurlMessage = "Not a cURL request."

// ErrNotCurlRequest is returned by Build when the input does not start with curl
var ErrNotCurlRequest = errors.New("not a cURL request")

// Builder wires the parser, executor and JSON formatter together
type Builder struct {
	Executor executor.Executor
	Query    string // optional JMESPath or $(cmd) applied to the response body
	Logger   *logging.Logger
}

// NewBuilder creates a builder around exec
func NewBuilder(exec executor.Executor, logger *logging.Logger) *Builder {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Builder{
		Executor: exec,
		Logger:   logger.WithComponent("report"),
	}
}

// Build validates, parses and executes the command, then formats payload and body
func (b *Builder) Build(ctx context.Context, raw string) (*types.Report, error) {
	if !curl.IsCurlRequest(raw) {
		return nil, ErrNotCurlRequest
	}

	req := curl.Parse(raw)
	log := b.Logger.WithCommand(req.Method, req.URL)

	formattedPayload := jsonfmt.Format(req.Payload)

	result := b.Executor.Execute(ctx, raw)
	log.Debug("executed", "status", result.StatusCode, "body_bytes", len(result.Body))

	body := result.Body
	if b.Query != "" {
		filtered, err := filter.Apply(ctx, body, b.Query)
		if err != nil {
			log.Warn("query failed, keeping full response", "query", b.Query, "error", err)
		} else {
			body = filtered
		}
	}

	r := &types.Report{
		URL:      req.URL,
		Method:   req.Method,
		Payload:  formattedPayload,
		Response: jsonfmt.Format(body),
	}
	if result.StatusCode > 0 {
		r.Status = result.StatusCode
		r.StatusText = httpstatus.Describe(result.StatusCode)
	}

	return r, nil
}

// Format is the single front-end entry point: (true, report text) on success,
// (false, message) when the input is not a cURL command.
func (b *Builder) Format(ctx context.Context, raw string) (bool, string) {
	r, err := b.Build(ctx, raw)
	if err != nil {
		return false, NotCurlMessage
	}
	return true, r.Text()
}
