package resolver

import "github.com/seitarof/gen-hints/internal/hint"

// Plan describes how one discovered type is registered.
type Plan struct {
	Type     string
	Rule     string
	Strategy Strategy
	Access   hint.AccessBits
	// Bundle is the resource bundle base name for StrategyResourceBundle.
	Bundle string
}

// Strategy identifies registration behavior.
type Strategy int

const (
	StrategyReflect Strategy = iota
	StrategyHierarchy
	StrategyBuildTime
	StrategyProxy
	StrategyResourceBundle
	StrategySkip
)

func (s Strategy) String() string {
	switch s {
	case StrategyReflect:
		return "reflect"
	case StrategyHierarchy:
		return "hierarchy"
	case StrategyBuildTime:
		return "build-time"
	case StrategyProxy:
		return "proxy"
	case StrategyResourceBundle:
		return "resource-bundle"
	case StrategySkip:
		return "skip"
	default:
		return "unknown"
	}
}
