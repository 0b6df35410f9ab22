package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"execlens/internal/entity"
)

func TestBuildTreeGroupsByNamespace(t *testing.T) {
	execs := []entity.Executable{
		{Ref: "db.migrate", ID: "migrate", Name: "migrate", Namespace: "db", Verb: "run"},
		{Ref: "db.seed", ID: "seed", Name: "seed", Namespace: "db", Verb: "run"},
		{Ref: "build", ID: "build", Name: "build", Verb: "build"},
	}

	tree := BuildTree(execs)
	require.Len(t, tree, 2)

	db := tree[0]
	assert.True(t, db.IsNamespace)
	assert.Equal(t, "db", db.Label)
	require.Len(t, db.Children, 2)
	assert.Equal(t, "db.migrate", db.Children[0].Value)
	assert.Equal(t, "db.seed", db.Children[1].Value)

	root := tree[1]
	assert.False(t, root.IsNamespace)
	assert.Equal(t, "build", root.Value)
	assert.Equal(t, entity.VerbTypeBuild, root.VerbType)
}

func TestBuildTreeNamespacesAlphabetical(t *testing.T) {
	execs := []entity.Executable{
		{Ref: "z/1", ID: "a", Namespace: "zeta", Verb: "run"},
		{Ref: "a/1", ID: "b", Namespace: "alpha", Verb: "run"},
		{Ref: "m/1", ID: "c", Namespace: "mid", Verb: "run"},
	}

	tree := BuildTree(execs)
	require.Len(t, tree, 3)
	assert.Equal(t, "alpha", tree[0].Label)
	assert.Equal(t, "mid", tree[1].Label)
	assert.Equal(t, "zeta", tree[2].Label)
}

func TestBuildTreeEveryRefAppearsOnce(t *testing.T) {
	execs := []entity.Executable{
		{Ref: "db.migrate", ID: "migrate", Namespace: "db", Verb: "run"},
		{Ref: "db.seed", ID: "seed", Namespace: "db", Verb: "run"},
		{Ref: "net.ping", ID: "ping", Namespace: "net", Verb: "run"},
		{Ref: "build", ID: "build", Verb: "build"},
		{Ref: "deploy", ID: "deploy", Verb: "apply"},
	}

	seen := map[string]int{}
	var walk func(nodes []TreeNode)
	walk = func(nodes []TreeNode) {
		for _, n := range nodes {
			if !n.IsNamespace {
				seen[n.Value]++
			}
			walk(n.Children)
		}
	}
	walk(BuildTree(execs))

	require.Len(t, seen, len(execs))
	for _, e := range execs {
		assert.Equal(t, 1, seen[e.Ref], "ref %s", e.Ref)
	}
}

func TestBuildTreeLeafLabels(t *testing.T) {
	execs := []entity.Executable{
		{Ref: "deploy", ID: "deploy", Name: "site", Verb: "apply"},
		{Ref: "lint", ID: "lint", Verb: "lint"},
	}

	tree := BuildTree(execs)
	require.Len(t, tree, 2)
	assert.Equal(t, "apply site", tree[0].Label)
	assert.Equal(t, entity.VerbTypeUpdate, tree[0].VerbType)
	assert.Equal(t, "lint", tree[1].Label)
	assert.Equal(t, entity.VerbTypeValidation, tree[1].VerbType)
}

func TestBuildTreeMembersSortedByID(t *testing.T) {
	execs := []entity.Executable{
		{Ref: "db.c", ID: "c", Namespace: "db", Verb: "run"},
		{Ref: "db.a", ID: "a", Namespace: "db", Verb: "run"},
		{Ref: "db.none", Namespace: "db", Verb: "run"},
	}

	tree := BuildTree(execs)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 3)
	// Missing ids sort as empty strings, ahead of everything else.
	assert.Equal(t, "db.none", tree[0].Children[0].Value)
	assert.Equal(t, "db.a", tree[0].Children[1].Value)
	assert.Equal(t, "db.c", tree[0].Children[2].Value)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}
