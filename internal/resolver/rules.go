package resolver

import (
	"strings"

	"github.com/seitarof/gen-hints/internal/hint"
	"github.com/seitarof/gen-hints/internal/matcher"
	"github.com/seitarof/gen-hints/internal/typemodel"
)

// Marker names recognized by the built-in rules, compared against the simple
// name of a type's annotations.
const (
	MarkerNoHint         = "NoHint"
	MarkerBuildTime      = "BuildTime"
	MarkerProxy          = "Proxy"
	MarkerResourceBundle = "ResourceBundle"
	MarkerHierarchy      = "Hierarchy"
)

// DefaultRules returns built-in rules in priority order, registering
// unmarked types with access.
func DefaultRules(access hint.AccessBits) []Rule {
	return []Rule{
		&MarkerRule{Marker: MarkerNoHint, Strategy: StrategySkip},
		&MarkerRule{Marker: MarkerBuildTime, Strategy: StrategyBuildTime, Access: access},
		&MarkerRule{Marker: MarkerProxy, Strategy: StrategyProxy, Access: access},
		&ResourceBundleRule{Access: access},
		&MarkerRule{Marker: MarkerHierarchy, Strategy: StrategyHierarchy, Access: access},
		&DefaultAccessRule{Access: access},
	}
}

// MarkerRule applies Strategy to types carrying Marker.
type MarkerRule struct {
	Marker   string
	Strategy Strategy
	Access   hint.AccessBits
}

func (r *MarkerRule) Name() string { return "marker-" + strings.ToLower(r.Marker) }

func (r *MarkerRule) Try(t typemodel.Type) (Plan, bool) {
	if !HasMarker(t, r.Marker) {
		return Plan{}, false
	}
	return Plan{Strategy: r.Strategy, Access: r.Access}, true
}

// ResourceBundleRule registers types marked ResourceBundle as a bundle named
// after the type's slashed name.
type ResourceBundleRule struct {
	Access hint.AccessBits
}

func (r *ResourceBundleRule) Name() string { return "resource-bundle" }

func (r *ResourceBundleRule) Try(t typemodel.Type) (Plan, bool) {
	if !HasMarker(t, MarkerResourceBundle) {
		return Plan{}, false
	}
	return Plan{
		Strategy: StrategyResourceBundle,
		Access:   r.Access,
		Bundle:   typemodel.ToSlashed(t.Name()),
	}, true
}

// PatternAccessRule registers types matched by Matcher with Access.
type PatternAccessRule struct {
	Matcher matcher.TypeMatcher
	Access  hint.AccessBits
}

func (r *PatternAccessRule) Name() string { return "pattern-access" }

func (r *PatternAccessRule) Try(t typemodel.Type) (Plan, bool) {
	if r.Matcher == nil || !r.Matcher.Match(t) {
		return Plan{}, false
	}
	return Plan{Strategy: StrategyReflect, Access: r.Access}, true
}

// DefaultAccessRule matches every type.
type DefaultAccessRule struct {
	Access hint.AccessBits
}

func (r *DefaultAccessRule) Name() string { return "default-access" }

func (r *DefaultAccessRule) Try(typemodel.Type) (Plan, bool) {
	return Plan{Strategy: StrategyReflect, Access: r.Access}, true
}

// HasMarker reports whether one of t's annotations has the simple name marker.
func HasMarker(t typemodel.Type, marker string) bool {
	for _, a := range t.Annotations() {
		if typemodel.SimpleName(a.Name()) == marker {
			return true
		}
	}
	return false
}
