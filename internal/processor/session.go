package processor

import (
	"iter"

	"github.com/seitarof/gen-hints/internal/hint"
	"github.com/seitarof/gen-hints/internal/typemodel"
)

// VisitedSet records the nodes seen during one session, in insertion order.
// Nodes are identified by name.
type VisitedSet struct {
	order []string
	index map[string]struct{}
}

// NewVisitedSet returns an empty set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{index: map[string]struct{}{}}
}

// Add inserts t and reports whether it was not present yet.
func (s *VisitedSet) Add(t typemodel.Type) bool {
	name := t.Name()
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.order = append(s.order, name)
	return true
}

func (s *VisitedSet) Contains(t typemodel.Type) bool {
	_, ok := s.index[t.Name()]
	return ok
}

func (s *VisitedSet) Len() int { return len(s.order) }

// Names returns the visited names in insertion order.
func (s *VisitedSet) Names() []string {
	return append([]string(nil), s.order...)
}

// Lookup produces the types to process from a type system.
type Lookup func(ts typemodel.TypeSystem) iter.Seq[typemodel.Type]

// ForwardingSession processes types directly into a caller supplied
// context, remembering what it has already inspected.
type ForwardingSession struct {
	p    *TypeProcessor
	ctx  hint.Context
	seen *VisitedSet
}

// Use starts a session writing into ctx.
func (p *TypeProcessor) Use(ctx hint.Context) *ForwardingSession {
	if ctx == nil {
		panic("processor: nil context")
	}
	return &ForwardingSession{p: p, ctx: ctx, seen: NewVisitedSet()}
}

// ProcessType processes a single type.
func (s *ForwardingSession) ProcessType(t typemodel.Type) {
	s.p.process(t, s.ctx, s.seen)
}

// ProcessTypes processes types in order.
func (s *ForwardingSession) ProcessTypes(types ...typemodel.Type) {
	for _, t := range types {
		s.ProcessType(t)
	}
}

// ProcessLookup processes the types produced by lookup, one by one.
func (s *ForwardingSession) ProcessLookup(lookup Lookup) {
	for t := range lookup(s.ctx.TypeSystem()) {
		s.ProcessType(t)
	}
}

// ProcessTypesMatching processes every known type matching filter.
func (s *ForwardingSession) ProcessTypesMatching(filter func(typemodel.Type) bool) {
	s.ProcessLookup(Matching(filter))
}

// Visited returns the session's visited set.
func (s *ForwardingSession) Visited() *VisitedSet { return s.seen }

// CapturingSession owns its own hint.Collector and returns the accumulated
// hints after each call.
type CapturingSession struct {
	forward   *ForwardingSession
	collector *hint.Collector
}

// UseTypeSystem starts a session that collects hints resolved against ts.
func (p *TypeProcessor) UseTypeSystem(ts typemodel.TypeSystem, opts ...hint.CollectorOption) *CapturingSession {
	if ts == nil {
		panic("processor: nil type system")
	}
	c := hint.NewCollector(ts, opts...)
	return &CapturingSession{forward: p.Use(c), collector: c}
}

// ProcessType processes t and returns all hints collected so far.
func (s *CapturingSession) ProcessType(t typemodel.Type) []hint.Declaration {
	s.forward.ProcessType(t)
	return s.collector.Hints()
}

// ProcessTypes processes types in order and returns all hints collected so far.
func (s *CapturingSession) ProcessTypes(types ...typemodel.Type) []hint.Declaration {
	s.forward.ProcessTypes(types...)
	return s.collector.Hints()
}

// ProcessLookup processes the types produced by lookup and returns all hints
// collected so far.
func (s *CapturingSession) ProcessLookup(lookup Lookup) []hint.Declaration {
	s.forward.ProcessLookup(lookup)
	return s.collector.Hints()
}

// ProcessTypesMatching processes every known type matching filter.
func (s *CapturingSession) ProcessTypesMatching(filter func(typemodel.Type) bool) []hint.Declaration {
	s.forward.ProcessTypesMatching(filter)
	return s.collector.Hints()
}

// Collector exposes the session's sink, e.g. for HasReflectionConfigFor.
func (s *CapturingSession) Collector() *hint.Collector { return s.collector }

// Visited returns the session's visited set.
func (s *CapturingSession) Visited() *VisitedSet { return s.forward.seen }

// Types yields the given types, for use as a Lookup.
func Types(types ...typemodel.Type) Lookup {
	return func(typemodel.TypeSystem) iter.Seq[typemodel.Type] {
		return func(yield func(typemodel.Type) bool) {
			for _, t := range types {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// ByName resolves names lazily; unknown names yield nil, which is a no-op.
func ByName(names ...string) Lookup {
	return func(ts typemodel.TypeSystem) iter.Seq[typemodel.Type] {
		return func(yield func(typemodel.Type) bool) {
			for _, name := range names {
				if !yield(ts.Resolve(name)) {
					return
				}
			}
		}
	}
}

// Matching scans every known type and yields those matching filter.
func Matching(filter func(typemodel.Type) bool) Lookup {
	return func(ts typemodel.TypeSystem) iter.Seq[typemodel.Type] {
		return func(yield func(typemodel.Type) bool) {
			for _, t := range ts.Types() {
				if filter(t) && !yield(t) {
					return
				}
			}
		}
	}
}
