package backend

import (
	"context"
	"encoding/json"

	"execlens/internal/entity"
	"execlens/internal/errors"
)

// ListExecutablesRequest carries the server-side filter parameters for
// list_executables. Namespace is a pointer so the root-namespace filter
// can send an explicit empty string rather than omitting the field.
type ListExecutablesRequest struct {
	Workspace string   `json:"workspace,omitempty"`
	Namespace *string  `json:"namespace,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Verb      string   `json:"verb,omitempty"`
	Filter    string   `json:"filter,omitempty"`
}

// GetExecutableRequest identifies a single executable.
type GetExecutableRequest struct {
	ExecutableRef string `json:"executableRef"`
}

// ListExecutables fetches the executables matching the request. Faults
// surface as *errors.TransportError; callers never see raw transport
// failures.
func ListExecutables(ctx context.Context, inv Invoker, req ListExecutablesRequest) ([]entity.Executable, error) {
	raw, err := inv.Call(ctx, OpListExecutables, req)
	if err != nil {
		return nil, asFault(OpListExecutables, err)
	}

	var execs []entity.Executable
	if err := json.Unmarshal(raw, &execs); err != nil {
		return nil, &errors.TransportError{Op: OpListExecutables, Err: err}
	}
	return execs, nil
}

// GetExecutable fetches one executable by ref. A missing entity is
// reported as errors.ErrNotFound, distinct from a transport fault.
func GetExecutable(ctx context.Context, inv Invoker, ref string) (*entity.Executable, error) {
	if ref == "" {
		return nil, &errors.CallError{Op: OpGetExecutable, Err: errors.ErrInvalid}
	}

	raw, err := inv.Call(ctx, OpGetExecutable, GetExecutableRequest{ExecutableRef: ref})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, &errors.CallError{Op: OpGetExecutable, Ref: ref, Err: errors.ErrNotFound}
		}
		return nil, asFault(OpGetExecutable, err)
	}

	var exec entity.Executable
	if err := json.Unmarshal(raw, &exec); err != nil {
		return nil, &errors.TransportError{Op: OpGetExecutable, Err: err}
	}
	return &exec, nil
}

// ListWorkspaces fetches all known workspaces.
func ListWorkspaces(ctx context.Context, inv Invoker) ([]entity.Workspace, error) {
	raw, err := inv.Call(ctx, OpListWorkspaces, nil)
	if err != nil {
		return nil, asFault(OpListWorkspaces, err)
	}

	var workspaces []entity.Workspace
	if err := json.Unmarshal(raw, &workspaces); err != nil {
		return nil, &errors.TransportError{Op: OpListWorkspaces, Err: err}
	}
	return workspaces, nil
}

// asFault normalizes an invoker error into the typed taxonomy without
// double-wrapping errors that are already classified.
func asFault(op string, err error) error {
	if _, ok := errors.AsTransportError(err); ok {
		return err
	}
	if errors.IsNotFound(err) {
		return err
	}
	return &errors.TransportError{Op: op, Err: err}
}
