// Package testutil provides helper functions for testing.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"execlens/internal/backend"
)

// Call records one invocation seen by the fake invoker.
type Call struct {
	Op     string
	Params json.RawMessage
}

// FakeInvoker is a scripted backend.Invoker for tests. Responses are
// registered per operation; every call is recorded so tests can assert
// on dedupe behavior.
type FakeInvoker struct {
	mu       sync.Mutex
	handlers map[string]func(params json.RawMessage) (any, error)
	calls    []Call
}

// NewFakeInvoker creates an empty fake invoker. Calls to operations
// without a registered handler fail.
func NewFakeInvoker() *FakeInvoker {
	return &FakeInvoker{handlers: map[string]func(json.RawMessage) (any, error){}}
}

// Handle registers a handler for an operation. The handler's return
// value is marshaled to JSON as the call result.
func (f *FakeInvoker) Handle(op string, fn func(params json.RawMessage) (any, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[op] = fn
}

// Respond registers a fixed successful response for an operation.
func (f *FakeInvoker) Respond(op string, value any) {
	f.Handle(op, func(json.RawMessage) (any, error) { return value, nil })
}

// Fail registers a fixed error for an operation.
func (f *FakeInvoker) Fail(op string, err error) {
	f.Handle(op, func(json.RawMessage) (any, error) { return nil, err })
}

// Call implements backend.Invoker.
func (f *FakeInvoker) Call(ctx context.Context, op string, params any) (json.RawMessage, error) {
	var encoded json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		encoded = data
	}

	f.mu.Lock()
	f.calls = append(f.calls, Call{Op: op, Params: encoded})
	handler, ok := f.handlers[op]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no handler for operation %q", op)
	}

	value, err := handler(encoded)
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

// Calls returns a copy of every recorded call.
func (f *FakeInvoker) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call{}, f.calls...)
}

// CallCount returns the number of calls recorded for an operation.
func (f *FakeInvoker) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

var _ backend.Invoker = (*FakeInvoker)(nil)
