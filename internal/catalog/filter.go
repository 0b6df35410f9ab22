// Package catalog assembles the browsable executable catalog: cached
// backend reads split into a server-side filter tuple and a client-side
// refinement pipeline, plus the namespace tree derived from the result.
package catalog

import (
	"execlens/internal/entity"
)

// RootNamespace is the sentinel namespace filter selecting executables
// that have no namespace at all. On the wire it becomes an explicit
// empty-string namespace; client-side it keeps only namespace-less
// records.
const RootNamespace = "Root namespace"

// FilterState holds every active filter. The zero value filters
// nothing.
type FilterState struct {
	Search     string
	Tags       []string
	Workspace  string
	Namespace  string
	Verb       string
	Visibility entity.Visibility
	Type       entity.Type
}

// FilterUpdate is a partial change to FilterState; nil fields leave the
// current value untouched.
type FilterUpdate struct {
	Search     *string
	Tags       *[]string
	Workspace  *string
	Namespace  *string
	Verb       *string
	Visibility *entity.Visibility
	Type       *entity.Type
}

// Apply merges an update into the state. Selecting a different
// workspace clears the namespace filter, since namespaces are scoped to
// a workspace.
func (f FilterState) Apply(u FilterUpdate) FilterState {
	next := f
	if u.Workspace != nil && *u.Workspace != f.Workspace {
		next.Workspace = *u.Workspace
		next.Namespace = ""
	}
	if u.Search != nil {
		next.Search = *u.Search
	}
	if u.Tags != nil {
		next.Tags = *u.Tags
	}
	if u.Namespace != nil {
		next.Namespace = *u.Namespace
	}
	if u.Verb != nil {
		next.Verb = *u.Verb
	}
	if u.Visibility != nil {
		next.Visibility = *u.Visibility
	}
	if u.Type != nil {
		next.Type = *u.Type
	}
	return next
}

// ActiveCount reports how many filters are set. The tag list counts as
// one regardless of how many tags it holds.
func (f FilterState) ActiveCount() int {
	count := 0
	if f.Search != "" {
		count++
	}
	if len(f.Tags) > 0 {
		count++
	}
	if f.Workspace != "" {
		count++
	}
	if f.Namespace != "" {
		count++
	}
	if f.Verb != "" {
		count++
	}
	if f.Visibility != "" {
		count++
	}
	if f.Type != "" {
		count++
	}
	return count
}
