// Package matcher turns user supplied name patterns into type and member
// predicates for the processor's filter chain.
package matcher

import (
	"fmt"
	"path"
	"strings"

	"github.com/seitarof/gen-hints/internal/typemodel"
)

const subtreeSuffix = "..."

// TypeMatcher matches types by name.
//
// A pattern is either an exact name ("com.example.Order"), a path.Match glob
// ("com.example.*Dto", "example.com/app/model.*") or a prefix ending in
// "..." that selects a whole subtree ("com.example...", "example.com/app/...").
type TypeMatcher interface {
	Match(t typemodel.Type) bool
	MatchName(name string) bool
}

// MemberMatcher matches fields and methods by case-insensitive name or glob.
type MemberMatcher interface {
	MatchField(f typemodel.Field) bool
	MatchMethod(m typemodel.Method) bool
}

type typeMatcherImpl struct {
	exact    map[string]bool
	globs    []string
	prefixes []string
}

type memberMatcherImpl struct {
	exact map[string]bool
	globs []string
}

// NewTypeMatcher compiles patterns. An empty list matches nothing.
func NewTypeMatcher(patterns []string) (TypeMatcher, error) {
	m := &typeMatcherImpl{exact: map[string]bool{}}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
			continue
		case strings.HasSuffix(p, subtreeSuffix):
			m.prefixes = append(m.prefixes, strings.TrimSuffix(p, subtreeSuffix))
		case hasMeta(p):
			if _, err := path.Match(p, ""); err != nil {
				return nil, fmt.Errorf("invalid type pattern %q: %w", p, err)
			}
			m.globs = append(m.globs, p)
		default:
			m.exact[p] = true
		}
	}
	return m, nil
}

// MustTypeMatcher is NewTypeMatcher for patterns known to be valid.
func MustTypeMatcher(patterns ...string) TypeMatcher {
	m, err := NewTypeMatcher(patterns)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *typeMatcherImpl) Match(t typemodel.Type) bool {
	return t != nil && m.MatchName(t.Name())
}

func (m *typeMatcherImpl) MatchName(name string) bool {
	if m.exact[name] {
		return true
	}
	for _, prefix := range m.prefixes {
		if inSubtree(name, prefix) {
			return true
		}
	}
	for _, g := range m.globs {
		if ok, _ := path.Match(g, name); ok {
			return true
		}
	}
	return false
}

// inSubtree reports whether name is prefix itself or lies below it, so
// "com.example" selects "com.example.X" but not "com.examplefoo.X".
func inSubtree(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	if len(name) == len(prefix) || strings.HasSuffix(prefix, ".") || strings.HasSuffix(prefix, "/") {
		return true
	}
	next := name[len(prefix)]
	return next == '.' || next == '/'
}

// NewMemberMatcher compiles member name patterns.
func NewMemberMatcher(names []string) (MemberMatcher, error) {
	m := &memberMatcherImpl{exact: toIgnoreSet(names)}
	for name := range m.exact {
		if !hasMeta(name) {
			continue
		}
		if _, err := path.Match(name, ""); err != nil {
			return nil, fmt.Errorf("invalid member pattern %q: %w", name, err)
		}
		delete(m.exact, name)
		m.globs = append(m.globs, name)
	}
	return m, nil
}

func (m *memberMatcherImpl) MatchField(f typemodel.Field) bool {
	return m.matchName(f.Name())
}

func (m *memberMatcherImpl) MatchMethod(mt typemodel.Method) bool {
	return m.matchName(mt.Name())
}

func (m *memberMatcherImpl) matchName(name string) bool {
	lower := strings.ToLower(name)
	if m.exact[lower] {
		return true
	}
	for _, g := range m.globs {
		if ok, _ := path.Match(g, lower); ok {
			return true
		}
	}
	return false
}

func toIgnoreSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(strings.ToLower(n))
		if n == "" {
			continue
		}
		set[n] = true
	}
	return set
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, `*?[\`)
}
