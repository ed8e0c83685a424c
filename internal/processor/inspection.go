package processor

import "github.com/seitarof/gen-hints/internal/typemodel"

// InspectionFilter decides whether the members of an already registered
// type are inspected. Excluded types are registered but not expanded.
type InspectionFilter interface {
	IsExcluded(t typemodel.Type) bool
}

// InspectionFilterFunc adapts a function to InspectionFilter.
type InspectionFilterFunc func(t typemodel.Type) bool

func (f InspectionFilterFunc) IsExcluded(t typemodel.Type) bool { return f(t) }

// DefaultInspectionDomains are library domains whose types are registered
// but never expanded.
var DefaultInspectionDomains = []string{"java.", "sun.", "jdk.", "reactor."}

type domainInspectionFilter struct {
	excluded []string
}

// DefaultInspectionFilter excludes DefaultInspectionDomains.
func DefaultInspectionFilter() InspectionFilter {
	return NewInspectionFilter(DefaultInspectionDomains...)
}

// NewInspectionFilter excludes types belonging to any of domains.
func NewInspectionFilter(domains ...string) InspectionFilter {
	return &domainInspectionFilter{excluded: append([]string(nil), domains...)}
}

func (f *domainInspectionFilter) IsExcluded(t typemodel.Type) bool {
	for _, domain := range f.excluded {
		if t.IsPartOfDomain(domain) {
			return true
		}
	}
	return false
}
