package hint

// Kind identifies the bucket a Declaration belongs to.
type Kind int

const (
	KindBuildTime Kind = iota
	KindResource
	KindReflection
	KindProxy
)

func (k Kind) String() string {
	switch k {
	case KindBuildTime:
		return "initialization"
	case KindResource:
		return "resource"
	case KindReflection:
		return "reflection"
	case KindProxy:
		return "proxy"
	default:
		return "unknown"
	}
}

// ResourcesDescriptor names resources to bundle. Bundle marks a resource
// bundle base name rather than a single file path.
type ResourcesDescriptor struct {
	Patterns []string
	Bundle   bool
}

// ProxyDescriptor lists the interfaces a generated proxy implements.
type ProxyDescriptor struct {
	Interfaces []string
}

// InitializationDescriptor lists types to initialize at build time.
type InitializationDescriptor struct {
	BuildTimeClasses []string
}

// DependantType is one type registered for reflective access.
type DependantType struct {
	Name   string
	Access AccessDescriptor
}

// Declaration is one hint record. Records are never merged; the same type
// name may appear in several of them.
type Declaration struct {
	Kind           Kind
	DependantTypes []DependantType
	Resources      *ResourcesDescriptor
	Proxy          *ProxyDescriptor
	Initialization *InitializationDescriptor
}

// HasDependantType reports whether name is registered by d.
func (d Declaration) HasDependantType(name string) bool {
	for _, dt := range d.DependantTypes {
		if dt.Name == name {
			return true
		}
	}
	return false
}
