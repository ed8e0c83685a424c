// Package processor walks the types reachable from a root type and reports
// every newly discovered type and annotation to registration callbacks.
//
// The walk inspects the type itself, its signature types, its annotations
// (and their meta-annotations), constructors, fields and methods together
// with their parameter, return and annotation types. Each node is reported
// once per session, before its own neighbours are visited.
//
//	p := processor.NamedProcessor("web").
//		SkipFieldInspection().
//		FilterAnnotations(func(a typemodel.Type) bool { return a.IsPartOfDomain("org.springframework.web") })
//	hints := p.UseTypeSystem(ts).ProcessTypes(roots...)
//
// Synthetic fields as well as fields and methods named $$_hibernate* are
// skipped by default. So are annotations from java.lang.annotation,
// java.lang.Object itself and all types from sun, jdk. and
// org.hibernate.engine.
package processor

import (
	"fmt"
	"strings"

	"github.com/seitarof/gen-hints/internal/hint"
	"github.com/seitarof/gen-hints/internal/typemodel"
)

// DefaultName is the log prefix used when none is configured.
const DefaultName = "TypeProcessor"

const (
	hibernatePrefix          = "$$_hibernate"
	annotationMetadataDomain = "java.lang.annotation"
	rootObjectType           = "java.lang.Object"
)

// Registrar is invoked once per newly discovered node.
type Registrar func(t typemodel.Type, ctx hint.Context)

// TypeFilter decides whether a type is processed. It also receives the
// active context to allow context dependent decisions.
type TypeFilter func(t typemodel.Type, ctx hint.Context) bool

// MethodFilter decides whether a method or constructor of owner is inspected.
type MethodFilter func(owner typemodel.Type, m typemodel.Method) bool

// FieldFilter decides whether a field of owner is inspected.
type FieldFilter func(owner typemodel.Type, f typemodel.Field) bool

// TypeProcessor holds the traversal configuration. Builder methods mutate
// the processor and return it for chaining; configure it completely before
// starting sessions.
type TypeProcessor struct {
	name string

	typeRegistrar       Registrar
	annotationRegistrar Registrar

	typeFilter       TypeFilter
	ctorFilter       MethodFilter
	methodFilter     MethodFilter
	fieldFilter      FieldFilter
	annotationFilter func(typemodel.Type) bool
	inspectionFilter InspectionFilter
}

// NamedProcessor returns a processor that registers discovered types with
// hint.FullReflection and annotations with hint.Annotation access.
func NamedProcessor(name string) *TypeProcessor {
	return New(
		hint.NewAccessDescriptor(hint.FullReflection),
		hint.NewAccessDescriptor(hint.Annotation),
	).Named(name)
}

// New returns a processor registering types and annotations with the given
// access descriptors.
func New(typeAccess, annotationAccess hint.AccessDescriptor) *TypeProcessor {
	return NewWithRegistrars(AccessRegistrar(typeAccess), AccessRegistrar(annotationAccess))
}

// NewWithRegistrars returns a processor using the default type filter.
func NewWithRegistrars(typeRegistrar, annotationRegistrar Registrar) *TypeProcessor {
	return NewWithTypeFilter(func(t typemodel.Type, _ hint.Context) bool {
		return !IsExcludedByDefault(t)
	}, typeRegistrar, annotationRegistrar)
}

// NewWithTypeFilter returns a processor whose top level type filter replaces
// the default exclusions.
func NewWithTypeFilter(typeFilter TypeFilter, typeRegistrar, annotationRegistrar Registrar) *TypeProcessor {
	if typeFilter == nil {
		panic("processor: nil type filter")
	}
	p := &TypeProcessor{
		name:       DefaultName,
		typeFilter: typeFilter,
		ctorFilter: func(_ typemodel.Type, m typemodel.Method) bool {
			return m.IsConstructor()
		},
		methodFilter: func(_ typemodel.Type, m typemodel.Method) bool {
			return !m.IsConstructor() && !strings.HasPrefix(m.Name(), hibernatePrefix)
		},
		fieldFilter: func(_ typemodel.Type, f typemodel.Field) bool {
			return !f.IsSynthetic() && !strings.HasPrefix(f.Name(), hibernatePrefix)
		},
		annotationFilter: func(a typemodel.Type) bool {
			return !a.IsPartOfDomain(annotationMetadataDomain)
		},
		inspectionFilter: DefaultInspectionFilter(),
	}
	return p.OnTypeDiscovered(typeRegistrar).OnAnnotationDiscovered(annotationRegistrar)
}

// AccessRegistrar logs and registers reflective access with descriptor.
func AccessRegistrar(descriptor hint.AccessDescriptor) Registrar {
	return func(t typemodel.Type, ctx hint.Context) {
		ctx.Log(fmt.Sprintf("%s - Registering %s with access %s.", DefaultName, t.Name(), descriptor))
		ctx.AddReflectiveAccess(t.Name(), descriptor)
	}
}

// IsExcludedByDefault reports whether t is java.lang.Object or belongs to
// the sun, jdk. or org.hibernate.engine domains.
func IsExcludedByDefault(t typemodel.Type) bool {
	return t.Name() == rootObjectType ||
		t.IsPartOfDomain("org.hibernate.engine") ||
		t.IsPartOfDomain("sun") ||
		t.IsPartOfDomain("jdk.")
}

// Name returns the log prefix.
func (p *TypeProcessor) Name() string {
	return p.name
}

// Named sets the log prefix.
func (p *TypeProcessor) Named(name string) *TypeProcessor {
	p.name = name
	return p
}

// OnTypeDiscovered sets the callback for newly discovered types.
func (p *TypeProcessor) OnTypeDiscovered(r Registrar) *TypeProcessor {
	if r == nil {
		panic("processor: nil type registrar")
	}
	p.typeRegistrar = r
	return p
}

// OnAnnotationDiscovered sets the callback for newly discovered annotations.
func (p *TypeProcessor) OnAnnotationDiscovered(r Registrar) *TypeProcessor {
	if r == nil {
		panic("processor: nil annotation registrar")
	}
	p.annotationRegistrar = r
	return p
}

// WithInspectionFilter replaces the filter deciding which registered types
// get their members inspected.
func (p *TypeProcessor) WithInspectionFilter(f InspectionFilter) *TypeProcessor {
	if f == nil {
		panic("processor: nil inspection filter")
	}
	p.inspectionFilter = f
	return p
}

// FilterTypes narrows the type filter to types also matching include.
func (p *TypeProcessor) FilterTypes(include func(typemodel.Type) bool) *TypeProcessor {
	prev := p.typeFilter
	p.typeFilter = func(t typemodel.Type, ctx hint.Context) bool {
		return prev(t, ctx) && include(t)
	}
	return p
}

// SkipTypesMatching excludes types matching exclude.
func (p *TypeProcessor) SkipTypesMatching(exclude func(typemodel.Type) bool) *TypeProcessor {
	return p.FilterTypes(not(exclude))
}

// SkipTypeInspection rejects every type, including roots.
func (p *TypeProcessor) SkipTypeInspection() *TypeProcessor {
	p.typeFilter = func(typemodel.Type, hint.Context) bool { return false }
	return p
}

// FilterMethods narrows the method filter to methods matching include.
func (p *TypeProcessor) FilterMethods(include func(typemodel.Method) bool) *TypeProcessor {
	return p.FilterMethodsOf(func(_ typemodel.Type, m typemodel.Method) bool { return include(m) })
}

// FilterMethodsOf narrows the method filter using the owning type.
func (p *TypeProcessor) FilterMethodsOf(include MethodFilter) *TypeProcessor {
	prev := p.methodFilter
	p.methodFilter = func(owner typemodel.Type, m typemodel.Method) bool {
		return prev(owner, m) && include(owner, m)
	}
	return p
}

// SkipMethodsMatching excludes methods matching exclude.
func (p *TypeProcessor) SkipMethodsMatching(exclude func(typemodel.Method) bool) *TypeProcessor {
	return p.FilterMethods(not(exclude))
}

// SkipMethodsMatchingOf excludes methods matching exclude for their owner.
func (p *TypeProcessor) SkipMethodsMatchingOf(exclude MethodFilter) *TypeProcessor {
	return p.FilterMethodsOf(func(owner typemodel.Type, m typemodel.Method) bool {
		return !exclude(owner, m)
	})
}

// SkipMethodInspection ignores methods entirely. Constructors are still
// considered.
func (p *TypeProcessor) SkipMethodInspection() *TypeProcessor {
	p.methodFilter = func(typemodel.Type, typemodel.Method) bool { return false }
	return p
}

// FilterConstructors narrows the constructor filter.
func (p *TypeProcessor) FilterConstructors(include func(typemodel.Method) bool) *TypeProcessor {
	return p.FilterConstructorsOf(func(_ typemodel.Type, m typemodel.Method) bool { return include(m) })
}

// FilterConstructorsOf narrows the constructor filter using the owning type.
func (p *TypeProcessor) FilterConstructorsOf(include MethodFilter) *TypeProcessor {
	prev := p.ctorFilter
	p.ctorFilter = func(owner typemodel.Type, m typemodel.Method) bool {
		return prev(owner, m) && include(owner, m)
	}
	return p
}

// SkipConstructorInspection ignores constructors entirely.
func (p *TypeProcessor) SkipConstructorInspection() *TypeProcessor {
	p.ctorFilter = func(typemodel.Type, typemodel.Method) bool { return false }
	return p
}

// FilterFields narrows the field filter to fields matching include.
func (p *TypeProcessor) FilterFields(include func(typemodel.Field) bool) *TypeProcessor {
	return p.FilterFieldsOf(func(_ typemodel.Type, f typemodel.Field) bool { return include(f) })
}

// FilterFieldsOf narrows the field filter using the owning type.
func (p *TypeProcessor) FilterFieldsOf(include FieldFilter) *TypeProcessor {
	prev := p.fieldFilter
	p.fieldFilter = func(owner typemodel.Type, f typemodel.Field) bool {
		return prev(owner, f) && include(owner, f)
	}
	return p
}

// SkipFieldsMatching excludes fields matching exclude.
func (p *TypeProcessor) SkipFieldsMatching(exclude func(typemodel.Field) bool) *TypeProcessor {
	return p.FilterFields(not(exclude))
}

// SkipFieldsMatchingOf excludes fields matching exclude for their owner.
func (p *TypeProcessor) SkipFieldsMatchingOf(exclude FieldFilter) *TypeProcessor {
	return p.FilterFieldsOf(func(owner typemodel.Type, f typemodel.Field) bool {
		return !exclude(owner, f)
	})
}

// SkipFieldInspection ignores fields entirely.
func (p *TypeProcessor) SkipFieldInspection() *TypeProcessor {
	p.fieldFilter = func(typemodel.Type, typemodel.Field) bool { return false }
	return p
}

// FilterAnnotations narrows the annotation filter.
func (p *TypeProcessor) FilterAnnotations(include func(typemodel.Type) bool) *TypeProcessor {
	prev := p.annotationFilter
	p.annotationFilter = func(a typemodel.Type) bool {
		return prev(a) && include(a)
	}
	return p
}

// SkipAnnotationsMatching excludes annotations matching exclude.
func (p *TypeProcessor) SkipAnnotationsMatching(exclude func(typemodel.Type) bool) *TypeProcessor {
	return p.FilterAnnotations(not(exclude))
}

// SkipAnnotationInspection ignores annotations entirely.
func (p *TypeProcessor) SkipAnnotationInspection() *TypeProcessor {
	p.annotationFilter = func(typemodel.Type) bool { return false }
	return p
}

func not[T any](pred func(T) bool) func(T) bool {
	return func(v T) bool { return !pred(v) }
}
