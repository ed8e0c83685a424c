package hint

import "github.com/seitarof/gen-hints/internal/typemodel"

// Context is the registration contract handed to discovery callbacks.
type Context interface {
	TypeSystem() typemodel.TypeSystem
	// Log records a diagnostic message. It never affects control flow.
	Log(msg string)

	AddReflectiveAccess(typeName string, descriptor AccessDescriptor)
	AddReflectiveAccessFlags(typeName string, flags ...Flag)
	// AddReflectiveAccessHierarchy registers typeName and every type reachable
	// through its signature, returning the names registered by this call.
	AddReflectiveAccessHierarchy(typeName string, bits AccessBits) []string
	HasReflectionConfigFor(typeName string) bool

	AddProxy(interfaces ...string) bool
	AddResourceBundle(name string)
	InitializeAtBuildTime(t typemodel.Type)
}
