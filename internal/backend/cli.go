package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"execlens/internal/errors"
)

// notFoundExitCode is the backend's exit status for a missing entity,
// kept separate from general failures so lookups can render an empty
// state instead of an error.
const notFoundExitCode = 4

// CLIConfig configures the subprocess invoker.
type CLIConfig struct {
	// Command is the backend binary to run.
	Command string
	// Args are prepended before the operation name (e.g. ["api"]).
	Args []string
	// Timeout bounds a single invocation; zero means no bound beyond
	// the caller's context.
	Timeout time.Duration
}

// CLIInvoker invokes backend operations by running the backend binary
// with the operation name and a JSON parameter payload, reading the
// JSON result from stdout.
type CLIInvoker struct {
	cfg    CLIConfig
	logger *log.Logger
}

// NewCLIInvoker creates a subprocess-backed invoker.
func NewCLIInvoker(cfg CLIConfig, logger *log.Logger) *CLIInvoker {
	if logger == nil {
		logger = log.Default()
	}
	return &CLIInvoker{cfg: cfg, logger: logger}
}

// Call implements Invoker.
func (c *CLIInvoker) Call(ctx context.Context, op string, params any) (json.RawMessage, error) {
	if c.cfg.Command == "" {
		return nil, &errors.TransportError{Op: op, Err: fmt.Errorf("no backend command configured: %w", errors.ErrInvalid)}
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	argv := append([]string{}, c.cfg.Args...)
	argv = append(argv, op)

	if params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			return nil, &errors.TransportError{Op: op, Err: err}
		}
		argv = append(argv, "--params", string(payload))
	}

	requestID := uuid.NewString()
	c.logger.Debug("backend call", "op", op, "request_id", requestID)

	cmd := exec.CommandContext(ctx, c.cfg.Command, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	c.logger.Debug("backend call done", "op", op, "request_id", requestID,
		"duration", time.Since(start), "ok", err == nil)

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == notFoundExitCode {
			return nil, errors.ErrNotFound
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%v: %w", err, ctxErr)
		}
		if msg := firstLine(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, &errors.TransportError{Op: op, Err: err}
	}

	return json.RawMessage(bytes.TrimSpace(stdout.Bytes())), nil
}

// firstLine returns the first non-empty line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
