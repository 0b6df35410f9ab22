package entity

// VerbType is the closed classification of an executable's verb, used
// purely for icon selection in navigational displays.
type VerbType string

const (
	VerbTypeRun           VerbType = "run"
	VerbTypeDeactivation  VerbType = "deactivation"
	VerbTypeConfiguration VerbType = "configuration"
	VerbTypeDestruction   VerbType = "destruction"
	VerbTypeRetrieval     VerbType = "retrieval"
	VerbTypeUpdate        VerbType = "update"
	VerbTypeValidation    VerbType = "validation"
	VerbTypeLaunch        VerbType = "launch"
	VerbTypeCreation      VerbType = "creation"
	VerbTypeRestart       VerbType = "restart"
	VerbTypeBuild         VerbType = "build"
)

// verbGroups maps each classification to the verbs that imply it.
// Restart is listed before update so "reload" lands on restart.
var verbGroups = []struct {
	verbType VerbType
	verbs    []string
}{
	{VerbTypeDeactivation, []string{"deactivate", "disable", "stop", "kill", "terminate", "abort", "pause", "halt"}},
	{VerbTypeDestruction, []string{"destroy", "delete", "remove", "uninstall", "teardown", "undeploy", "purge", "clean", "clear", "erase"}},
	{VerbTypeRestart, []string{"restart", "reboot", "reload"}},
	{VerbTypeUpdate, []string{"update", "upgrade", "refresh", "patch", "apply", "sync", "push", "publish"}},
	{VerbTypeValidation, []string{"validate", "verify", "check", "test", "lint", "analyze", "scan", "audit"}},
	{VerbTypeConfiguration, []string{"configure", "manage", "setup", "set", "edit"}},
	{VerbTypeLaunch, []string{"launch", "open", "show", "view"}},
	{VerbTypeCreation, []string{"create", "generate", "add", "new", "init", "install"}},
	{VerbTypeBuild, []string{"build", "package", "bundle", "compile", "transform"}},
	{VerbTypeRetrieval, []string{"get", "fetch", "retrieve", "read", "list", "inspect", "watch"}},
}

// ClassifyVerb infers a VerbType from a verb and its aliases. The verb
// itself is checked against every group before any alias is considered;
// unmatched verbs classify as run.
func ClassifyVerb(verb string, aliases []string) VerbType {
	if vt, ok := lookupVerb(verb); ok {
		return vt
	}
	for _, alias := range aliases {
		if vt, ok := lookupVerb(alias); ok {
			return vt
		}
	}
	return VerbTypeRun
}

func lookupVerb(verb string) (VerbType, bool) {
	for _, group := range verbGroups {
		for _, v := range group.verbs {
			if v == verb {
				return group.verbType, true
			}
		}
	}
	return VerbTypeRun, false
}

// VerbType classifies this executable's verb for icon selection.
func (e Executable) VerbType() VerbType {
	return ClassifyVerb(e.Verb, e.VerbAliases)
}
