// Package backend abstracts the command-executing backend process. The
// core never owns transport details; everything goes through the
// Invoker interface as a named operation with structured parameters
// returning a JSON-shaped result or a fault.
package backend

import (
	"context"
	"encoding/json"
)

// Operation names exposed by the backend.
const (
	OpListExecutables = "list_executables"
	OpGetExecutable   = "get_executable"
	OpListWorkspaces  = "list_workspaces"
)

// Invoker issues one backend operation. Implementations must honor ctx
// cancellation and return the raw JSON result on success.
type Invoker interface {
	Call(ctx context.Context, op string, params any) (json.RawMessage, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, op string, params any) (json.RawMessage, error)

// Call implements Invoker.
func (f InvokerFunc) Call(ctx context.Context, op string, params any) (json.RawMessage, error) {
	return f(ctx, op, params)
}
