package backend_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"execlens/internal/backend"
	"execlens/internal/entity"
	"execlens/internal/errors"
	"execlens/internal/testutil"
)

func TestListExecutables(t *testing.T) {
	inv := testutil.NewFakeInvoker()
	inv.Respond(backend.OpListExecutables, []map[string]any{
		{"ref": "core/build", "workspace": "core", "verb": "build", "exec": map[string]any{"cmd": "make"}},
		{"ref": "core/db:migrate", "workspace": "core", "namespace": "db", "verb": "run", "serial": map[string]any{"execs": []string{"a"}}},
	})

	execs, err := backend.ListExecutables(context.Background(), inv, backend.ListExecutablesRequest{Workspace: "core"})
	require.NoError(t, err)
	require.Len(t, execs, 2)
	assert.Equal(t, entity.TypeExec, execs[0].Type())
	assert.Equal(t, entity.TypeSerial, execs[1].Type())

	calls := inv.Calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"workspace":"core"}`, string(calls[0].Params))
}

func TestListExecutablesRootNamespaceOnWire(t *testing.T) {
	inv := testutil.NewFakeInvoker()
	inv.Respond(backend.OpListExecutables, []map[string]any{})

	ns := ""
	_, err := backend.ListExecutables(context.Background(), inv, backend.ListExecutablesRequest{Namespace: &ns})
	require.NoError(t, err)

	// Root namespace travels as an explicit empty string, not an
	// omitted field.
	calls := inv.Calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"namespace":""}`, string(calls[0].Params))
}

func TestListExecutablesFault(t *testing.T) {
	inv := testutil.NewFakeInvoker()
	inv.Fail(backend.OpListExecutables, fmt.Errorf("connection refused"))

	_, err := backend.ListExecutables(context.Background(), inv, backend.ListExecutablesRequest{})
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))

	te, ok := errors.AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, backend.OpListExecutables, te.Op)
}

func TestGetExecutable(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		inv := testutil.NewFakeInvoker()
		inv.Respond(backend.OpGetExecutable, map[string]any{
			"ref": "core/build", "verb": "build", "exec": map[string]any{"cmd": "make"},
		})

		exec, err := backend.GetExecutable(context.Background(), inv, "core/build")
		require.NoError(t, err)
		assert.Equal(t, "core/build", exec.Ref)
	})

	t.Run("empty ref is invalid", func(t *testing.T) {
		inv := testutil.NewFakeInvoker()
		_, err := backend.GetExecutable(context.Background(), inv, "")
		assert.True(t, errors.IsInvalid(err))
		assert.Zero(t, inv.CallCount(backend.OpGetExecutable))
	})

	t.Run("missing entity is not a fault", func(t *testing.T) {
		inv := testutil.NewFakeInvoker()
		inv.Fail(backend.OpGetExecutable, errors.ErrNotFound)

		_, err := backend.GetExecutable(context.Background(), inv, "gone/ref")
		assert.True(t, errors.IsNotFound(err))
		assert.False(t, errors.IsTransport(err))

		ce, ok := errors.AsCallError(err)
		require.True(t, ok)
		assert.Equal(t, "gone/ref", ce.Ref)
	})

	t.Run("backend failure is a transport fault", func(t *testing.T) {
		inv := testutil.NewFakeInvoker()
		inv.Fail(backend.OpGetExecutable, fmt.Errorf("exit status 1"))

		_, err := backend.GetExecutable(context.Background(), inv, "core/build")
		assert.True(t, errors.IsTransport(err))
	})
}

func TestListWorkspaces(t *testing.T) {
	inv := testutil.NewFakeInvoker()
	inv.Respond(backend.OpListWorkspaces, []map[string]any{
		{"name": "core", "path": "/repos/core"},
		{"name": "infra", "displayName": "Infrastructure"},
	})

	workspaces, err := backend.ListWorkspaces(context.Background(), inv)
	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	assert.Equal(t, "core", workspaces[0].Name)
	assert.Equal(t, "Infrastructure", workspaces[1].Title())
}
