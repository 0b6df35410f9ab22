package entity

// ExecutableFilter is a workspace's path-glob include/exclude
// specification for executable discovery. It is carried for display
// only; the backend evaluates it.
type ExecutableFilter struct {
	Included []string `json:"included,omitempty"`
	Excluded []string `json:"excluded,omitempty"`
}

// Workspace is a named project root that owns a set of executables.
type Workspace struct {
	Name        string              `json:"name"`
	DisplayName string              `json:"displayName,omitempty"`
	Path        string              `json:"path,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Description string              `json:"description,omitempty"`
	EnvFiles    []string            `json:"envFiles,omitempty"`
	VerbAliases map[string][]string `json:"verbAliases,omitempty"`
	Executables *ExecutableFilter   `json:"executables,omitempty"`
}

// Title returns the display name, falling back to the workspace name.
func (w Workspace) Title() string {
	if w.DisplayName != "" {
		return w.DisplayName
	}
	return w.Name
}
