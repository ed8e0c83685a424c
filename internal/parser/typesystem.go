package parser

import (
	"go/token"
	"strings"

	"github.com/seitarof/gen-hints/internal/typemodel"
)

// TypeSystem is the typemodel view of a set of loaded Go packages. It is
// immutable once loaded and safe for concurrent use.
type TypeSystem struct {
	order []string
	types map[string]*goType
}

var _ typemodel.TypeSystem = (*TypeSystem)(nil)

func newTypeSystem() *TypeSystem {
	return &TypeSystem{types: map[string]*goType{}}
}

func (ts *TypeSystem) add(t *goType) {
	if _, exists := ts.types[t.name]; !exists {
		ts.order = append(ts.order, t.name)
	}
	ts.types[t.name] = t
}

// Resolve returns the named type "import/path.Name", or nil.
func (ts *TypeSystem) Resolve(name string) typemodel.Type {
	if t, ok := ts.types[name]; ok {
		return t
	}
	return nil
}

func (ts *TypeSystem) CanResolve(name string) bool {
	_, ok := ts.types[name]
	return ok
}

// Types lists package level types ordered by package path, then by
// declaration order.
func (ts *TypeSystem) Types() []typemodel.Type {
	out := make([]typemodel.Type, 0, len(ts.order))
	for _, name := range ts.order {
		out = append(out, ts.types[name])
	}
	return out
}

// Len returns the number of indexed types.
func (ts *TypeSystem) Len() int { return len(ts.order) }

func (ts *TypeSystem) resolveAll(names []string) []typemodel.Type {
	out := make([]typemodel.Type, 0, len(names))
	for _, name := range names {
		if t, ok := ts.types[name]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (ts *TypeSystem) markerTypes(names []string) []typemodel.Type {
	out := make([]typemodel.Type, 0, len(names))
	for _, name := range names {
		if t, ok := ts.types[name]; ok {
			out = append(out, t)
			continue
		}
		out = append(out, typemodel.Unresolved(name))
	}
	return out
}

type goType struct {
	ts        *TypeSystem
	name      string
	markers   []string
	signature []string
	fields    []*goField
	methods   []*goMethod
}

func (t *goType) Name() string                 { return t.name }
func (t *goType) Annotations() []typemodel.Type { return t.ts.markerTypes(t.markers) }
func (t *goType) TypesInSignature() []string    { return t.signature }
func (t *goType) String() string                { return t.name }

func (t *goType) IsPartOfDomain(prefix string) bool {
	return typemodel.IsPartOfDomain(t.name, prefix)
}

func (t *goType) Fields() []typemodel.Field {
	out := make([]typemodel.Field, 0, len(t.fields))
	for _, f := range t.fields {
		out = append(out, f)
	}
	return out
}

func (t *goType) Methods(filter func(typemodel.Method) bool) []typemodel.Method {
	out := make([]typemodel.Method, 0, len(t.methods))
	for _, m := range t.methods {
		if filter != nil && !filter(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

type goField struct {
	ts        *TypeSystem
	name      string
	synthetic bool
	types     []string
	markers   []string
}

func (f *goField) Name() string                     { return f.name }
func (f *goField) IsSynthetic() bool                { return f.synthetic }
func (f *goField) TypesInSignature() []string       { return f.types }
func (f *goField) AnnotationTypes() []typemodel.Type { return f.ts.markerTypes(f.markers) }

type goMethod struct {
	owner       *goType
	name        string
	constructor bool
	display     []string
	returns     []string
	params      [][]string
	markers     []string
	pos         token.Pos
}

func (m *goMethod) Name() string        { return m.name }
func (m *goMethod) IsConstructor() bool { return m.constructor }
func (m *goMethod) ParameterCount() int { return len(m.params) }

func (m *goMethod) SignatureTypes(includeOwner bool) []typemodel.Type {
	ts := m.owner.ts
	if !includeOwner || !m.constructor {
		return ts.resolveAll(m.returns)
	}
	out := []typemodel.Type{m.owner}
	for _, t := range ts.resolveAll(m.returns) {
		if t.Name() != m.owner.name {
			out = append(out, t)
		}
	}
	return out
}

func (m *goMethod) ParameterTypes() []typemodel.Type {
	var names []string
	for _, p := range m.params {
		names = append(names, p...)
	}
	return m.owner.ts.resolveAll(dedupe(names))
}

func (m *goMethod) AnnotationTypes() []typemodel.Type {
	return m.owner.ts.markerTypes(m.markers)
}

// ParameterAnnotationTypes is always empty; Go parameters carry no markers.
func (m *goMethod) ParameterAnnotationTypes(int) []typemodel.Type { return nil }

func (m *goMethod) String() string {
	return m.name + "(" + strings.Join(m.display, ",") + ")"
}
