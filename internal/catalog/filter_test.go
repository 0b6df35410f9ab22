package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"execlens/internal/entity"
)

func strp(s string) *string { return &s }

func TestFilterStateApply(t *testing.T) {
	t.Run("merges only the provided fields", func(t *testing.T) {
		f := FilterState{Workspace: "core", Namespace: "db", Search: "mig"}
		next := f.Apply(FilterUpdate{Verb: strp("build")})

		assert.Equal(t, "core", next.Workspace)
		assert.Equal(t, "db", next.Namespace)
		assert.Equal(t, "mig", next.Search)
		assert.Equal(t, "build", next.Verb)
	})

	t.Run("changing workspace clears namespace", func(t *testing.T) {
		f := FilterState{Workspace: "core", Namespace: "db"}
		next := f.Apply(FilterUpdate{Workspace: strp("infra")})

		assert.Equal(t, "infra", next.Workspace)
		assert.Empty(t, next.Namespace)
	})

	t.Run("re-selecting the same workspace keeps namespace", func(t *testing.T) {
		f := FilterState{Workspace: "core", Namespace: "db"}
		next := f.Apply(FilterUpdate{Workspace: strp("core")})

		assert.Equal(t, "db", next.Namespace)
	})

	t.Run("explicit namespace in the same update survives", func(t *testing.T) {
		f := FilterState{Workspace: "core", Namespace: "db"}
		next := f.Apply(FilterUpdate{Workspace: strp("infra"), Namespace: strp("net")})

		assert.Equal(t, "net", next.Namespace)
	})
}

func TestFilterStateActiveCount(t *testing.T) {
	assert.Zero(t, FilterState{}.ActiveCount())

	f := FilterState{
		Search:     "mig",
		Tags:       []string{"ops", "db"},
		Workspace:  "core",
		Namespace:  "db",
		Verb:       "run",
		Visibility: entity.VisibilityPublic,
		Type:       entity.TypeExec,
	}
	// The tag list counts once however many tags it holds.
	assert.Equal(t, 7, f.ActiveCount())

	assert.Equal(t, 1, FilterState{Tags: []string{"a", "b", "c"}}.ActiveCount())
}
