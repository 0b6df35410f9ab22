// Package entity defines the records returned by the backend process:
// executables (runnable units) and workspaces (project roots). The wire
// shape is JSON with one optional object per run mode; decoding folds
// those into a tagged union so exactly one variant is populated.
package entity

import (
	"encoding/json"
	"strings"
)

// Type identifies which run-mode variant an executable carries.
type Type string

const (
	TypeExec     Type = "exec"
	TypeSerial   Type = "serial"
	TypeParallel Type = "parallel"
	TypeLaunch   Type = "launch"
	TypeRequest  Type = "request"
	TypeRender   Type = "render"
	// TypeUnknown marks records whose mode the client does not
	// recognize; they are tolerated but never match a type filter.
	TypeUnknown Type = "unknown"
)

// Types lists the selectable run-mode types in display order.
var Types = []Type{TypeExec, TypeSerial, TypeParallel, TypeLaunch, TypeRequest, TypeRender}

// Visibility controls where an executable is surfaced.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
	VisibilityHidden   Visibility = "hidden"
)

// Visibilities lists the selectable visibility values in display order.
var Visibilities = []Visibility{VisibilityPublic, VisibilityPrivate, VisibilityInternal, VisibilityHidden}

// OrDefault resolves an absent visibility to private.
func (v Visibility) OrDefault() Visibility {
	if v == "" {
		return VisibilityPrivate
	}
	return v
}

// Param is a value injected into a run, destined for an environment
// variable or a file, optionally prompted from the user.
type Param struct {
	Text       string `json:"text,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
	EnvKey     string `json:"envKey,omitempty"`
	OutputFile string `json:"outputFile,omitempty"`
}

// Arg is a positional or flag argument accepted by a run.
type Arg struct {
	Flag       string `json:"flag,omitempty"`
	Pos        int    `json:"pos,omitempty"`
	EnvKey     string `json:"envKey,omitempty"`
	OutputFile string `json:"outputFile,omitempty"`
	Default    string `json:"default,omitempty"`
	Required   bool   `json:"required,omitempty"`
}

// ExecSpec runs a shell command or script file.
type ExecSpec struct {
	Cmd    string  `json:"cmd,omitempty"`
	File   string  `json:"file,omitempty"`
	Dir    string  `json:"dir,omitempty"`
	Params []Param `json:"params,omitempty"`
	Args   []Arg   `json:"args,omitempty"`
}

// SerialSpec runs child executables one after another.
type SerialSpec struct {
	Execs    []string `json:"execs,omitempty"`
	FailFast bool     `json:"failFast,omitempty"`
	Params   []Param  `json:"params,omitempty"`
	Args     []Arg    `json:"args,omitempty"`
}

// ParallelSpec runs child executables concurrently.
type ParallelSpec struct {
	Execs      []string `json:"execs,omitempty"`
	MaxThreads int      `json:"maxThreads,omitempty"`
	FailFast   bool     `json:"failFast,omitempty"`
	Params     []Param  `json:"params,omitempty"`
	Args       []Arg    `json:"args,omitempty"`
}

// LaunchSpec opens a URI or application.
type LaunchSpec struct {
	URI    string  `json:"uri,omitempty"`
	App    string  `json:"app,omitempty"`
	Params []Param `json:"params,omitempty"`
	Args   []Arg   `json:"args,omitempty"`
}

// RequestSpec issues an HTTP request.
type RequestSpec struct {
	URL     string            `json:"url,omitempty"`
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
	Params  []Param           `json:"params,omitempty"`
	Args    []Arg             `json:"args,omitempty"`
}

// RenderSpec renders a templated document.
type RenderSpec struct {
	TemplateFile string  `json:"templateFile,omitempty"`
	TemplateData string  `json:"templateDataFile,omitempty"`
	Params       []Param `json:"params,omitempty"`
	Args         []Arg   `json:"args,omitempty"`
}

// Mode is the tagged union of run-mode variants. Kind names the
// populated variant; all other pointers are nil.
type Mode struct {
	Kind     Type
	Exec     *ExecSpec
	Serial   *SerialSpec
	Parallel *ParallelSpec
	Launch   *LaunchSpec
	Request  *RequestSpec
	Render   *RenderSpec
}

// Executable is one runnable unit in the catalog.
type Executable struct {
	Ref         string
	ID          string
	Name        string
	Namespace   string
	Workspace   string
	Verb        string
	VerbAliases []string
	Tags        []string
	Visibility  Visibility
	Description string
	Mode        Mode
}

// executableWire is the flat backend shape with one optional object per
// run mode.
type executableWire struct {
	Ref         string        `json:"ref"`
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name,omitempty"`
	Namespace   string        `json:"namespace,omitempty"`
	Workspace   string        `json:"workspace,omitempty"`
	Verb        string        `json:"verb,omitempty"`
	VerbAliases []string      `json:"verbAliases,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Visibility  Visibility    `json:"visibility,omitempty"`
	Description string        `json:"description,omitempty"`
	Exec        *ExecSpec     `json:"exec,omitempty"`
	Serial      *SerialSpec   `json:"serial,omitempty"`
	Parallel    *ParallelSpec `json:"parallel,omitempty"`
	Launch      *LaunchSpec   `json:"launch,omitempty"`
	Request     *RequestSpec  `json:"request,omitempty"`
	Render      *RenderSpec   `json:"render,omitempty"`
}

// UnmarshalJSON decodes the flat backend record and folds the mode
// fields into the tagged union. The first populated variant (in
// exec, serial, parallel, launch, request, render order) wins; records
// with none are kept with TypeUnknown.
func (e *Executable) UnmarshalJSON(data []byte) error {
	var w executableWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = Executable{
		Ref:         w.Ref,
		ID:          w.ID,
		Name:        w.Name,
		Namespace:   w.Namespace,
		Workspace:   w.Workspace,
		Verb:        w.Verb,
		VerbAliases: w.VerbAliases,
		Tags:        w.Tags,
		Visibility:  w.Visibility,
		Description: w.Description,
	}

	switch {
	case w.Exec != nil:
		e.Mode = Mode{Kind: TypeExec, Exec: w.Exec}
	case w.Serial != nil:
		e.Mode = Mode{Kind: TypeSerial, Serial: w.Serial}
	case w.Parallel != nil:
		e.Mode = Mode{Kind: TypeParallel, Parallel: w.Parallel}
	case w.Launch != nil:
		e.Mode = Mode{Kind: TypeLaunch, Launch: w.Launch}
	case w.Request != nil:
		e.Mode = Mode{Kind: TypeRequest, Request: w.Request}
	case w.Render != nil:
		e.Mode = Mode{Kind: TypeRender, Render: w.Render}
	default:
		e.Mode = Mode{Kind: TypeUnknown}
	}

	return nil
}

// MarshalJSON restores the flat backend shape.
func (e Executable) MarshalJSON() ([]byte, error) {
	w := executableWire{
		Ref:         e.Ref,
		ID:          e.ID,
		Name:        e.Name,
		Namespace:   e.Namespace,
		Workspace:   e.Workspace,
		Verb:        e.Verb,
		VerbAliases: e.VerbAliases,
		Tags:        e.Tags,
		Visibility:  e.Visibility,
		Description: e.Description,
		Exec:        e.Mode.Exec,
		Serial:      e.Mode.Serial,
		Parallel:    e.Mode.Parallel,
		Launch:      e.Mode.Launch,
		Request:     e.Mode.Request,
		Render:      e.Mode.Render,
	}
	return json.Marshal(w)
}

// Type reports the populated run-mode variant.
func (e Executable) Type() Type {
	return e.Mode.Kind
}

// Label is the tree/list display label: "verb name", or just the verb
// when the executable has no display name.
func (e Executable) Label() string {
	if e.Name != "" {
		return e.Verb + " " + e.Name
	}
	return e.Verb
}

// MatchesSearch reports whether the lowercased term appears in the ref
// or in the already-cleaned description text.
func (e Executable) MatchesSearch(term, cleanedDescription string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Ref), term) {
		return true
	}
	return strings.Contains(strings.ToLower(cleanedDescription), term)
}
