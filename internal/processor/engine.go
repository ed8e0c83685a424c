package processor

import (
	"fmt"

	"github.com/seitarof/gen-hints/internal/hint"
	"github.com/seitarof/gen-hints/internal/typemodel"
)

// Skip reasons reported through hint.Context.Log.
const (
	ReasonAlreadyProcessed      = "because it was already processed"
	ReasonFilteredOut           = "because it was filtered out by the typeFilter"
	ReasonAnnotationMetadata    = "because it is a java.lang.annotation"
	ReasonAnnotationProcessed   = "because it has already been processed"
	ReasonAnnotationUnreachable = "because it cannot be reached via TypeSystem"
)

// Process walks everything reachable from root, registering into ctx. Each
// call uses a fresh visited set; use a session to share one across calls.
// A nil root is a no-op.
func (p *TypeProcessor) Process(root typemodel.Type, ctx hint.Context) {
	p.process(root, ctx, NewVisitedSet())
}

func (p *TypeProcessor) logf(ctx hint.Context, format string, args ...any) {
	ctx.Log(p.name + ": " + fmt.Sprintf(format, args...))
}

func (p *TypeProcessor) process(t typemodel.Type, ctx hint.Context, seen *VisitedSet) {
	if t == nil {
		return
	}

	if !p.typeFilter(t, ctx) || seen.Contains(t) {
		reason := ReasonFilteredOut
		if seen.Contains(t) {
			reason = ReasonAlreadyProcessed
		}
		p.logf(ctx, "skipping type %s %s.", t.Name(), reason)
		return
	}

	p.logf(ctx, "processing type %s.", t.Name())

	// cycle guard
	seen.Add(t)

	p.typeRegistrar(t, ctx)

	if p.inspectionFilter.IsExcluded(t) {
		p.logf(ctx, "skip field and method inspection for type %s.", t.Name())
		return
	}

	p.processSignatureTypes(t, ctx, seen)
	p.processAnnotationsOf(t, ctx, seen)
	p.processConstructors(t, ctx, seen)
	p.processFields(t, ctx, seen)
	p.processMethods(t, ctx, seen)
}

func (p *TypeProcessor) processSignatureTypes(t typemodel.Type, ctx hint.Context, seen *VisitedSet) {
	ts := ctx.TypeSystem()
	for _, name := range t.TypesInSignature() {
		if st := ts.Resolve(name); st != nil {
			p.process(st, ctx, seen)
		}
	}
}

func (p *TypeProcessor) processConstructors(t typemodel.Type, ctx hint.Context, seen *VisitedSet) {
	ctors := t.Methods(func(m typemodel.Method) bool { return p.ctorFilter(t, m) })
	for _, ctor := range ctors {
		p.processMethod(t, ctor, "constructor", ctx, seen)
	}
}

func (p *TypeProcessor) processMethods(t typemodel.Type, ctx hint.Context, seen *VisitedSet) {
	methods := t.Methods(func(m typemodel.Method) bool { return p.methodFilter(t, m) })
	for _, m := range methods {
		p.processMethod(t, m, "method", ctx, seen)
	}
}

func (p *TypeProcessor) processMethod(owner typemodel.Type, m typemodel.Method, kind string, ctx hint.Context, seen *VisitedSet) {
	p.logf(ctx, "inspecting %s %s of %s", kind, m, owner.Name())

	for _, rt := range m.SignatureTypes(true) {
		p.process(rt, ctx, seen)
	}
	for _, pt := range m.ParameterTypes() {
		p.process(pt, ctx, seen)
	}
	for _, a := range m.AnnotationTypes() {
		p.processAnnotation(a, ctx, seen)
	}
	for i := 0; i < m.ParameterCount(); i++ {
		for _, a := range m.ParameterAnnotationTypes(i) {
			p.processAnnotation(a, ctx, seen)
		}
	}
}

func (p *TypeProcessor) processFields(t typemodel.Type, ctx hint.Context, seen *VisitedSet) {
	ts := ctx.TypeSystem()
	for _, f := range t.Fields() {
		if !p.fieldFilter(t, f) {
			p.logf(ctx, "skipping field %s of %s", f.Name(), t.Name())
			continue
		}
		p.logf(ctx, "inspecting field %s of %s", f.Name(), t.Name())

		for _, name := range f.TypesInSignature() {
			if st := ts.Resolve(name); st != nil {
				p.process(st, ctx, seen)
			}
		}
		for _, a := range f.AnnotationTypes() {
			p.processAnnotation(a, ctx, seen)
		}
	}
}

func (p *TypeProcessor) processAnnotationsOf(t typemodel.Type, ctx hint.Context, seen *VisitedSet) {
	for _, a := range t.Annotations() {
		p.processAnnotation(a, ctx, seen)
	}
}

func (p *TypeProcessor) processAnnotation(a typemodel.Type, ctx hint.Context, seen *VisitedSet) {
	if a == nil {
		return
	}

	if seen.Contains(a) || !ctx.TypeSystem().CanResolve(a.Name()) || !p.annotationFilter(a) {
		reason := ReasonAnnotationUnreachable
		if a.IsPartOfDomain(annotationMetadataDomain) {
			reason = ReasonAnnotationMetadata
		} else if seen.Contains(a) {
			reason = ReasonAnnotationProcessed
		}
		p.logf(ctx, "skipping annotation inspection for %s %s", a.Name(), reason)
		return
	}

	p.logf(ctx, "inspecting annotation %s", a.Name())

	// cycle guard
	seen.Add(a)

	p.annotationRegistrar(a, ctx)

	// meta annotations
	p.processAnnotationsOf(a, ctx, seen)
}
