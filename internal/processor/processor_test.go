package processor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seitarof/gen-hints/internal/hint"
	"github.com/seitarof/gen-hints/internal/typemodel"
)

type recorder struct {
	types       []string
	annotations []string
}

func (r *recorder) processor() *TypeProcessor {
	return NewWithRegistrars(
		func(t typemodel.Type, ctx hint.Context) {
			r.types = append(r.types, t.Name())
			ctx.AddReflectiveAccess(t.Name(), hint.NewAccessDescriptor(hint.FullReflection))
		},
		func(a typemodel.Type, ctx hint.Context) {
			r.annotations = append(r.annotations, a.Name())
			ctx.AddReflectiveAccess(a.Name(), hint.NewAccessDescriptor(hint.Annotation))
		},
	)
}

func newObservedCollector(ts typemodel.TypeSystem) (*hint.Collector, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return hint.NewCollector(ts, hint.WithLogger(zap.New(core))), logs
}

func messages(logs *observer.ObservedLogs) []string {
	out := make([]string, 0, logs.Len())
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}

func containsMessage(logs *observer.ObservedLogs, parts ...string) bool {
	for _, msg := range messages(logs) {
		all := true
		for _, p := range parts {
			if !strings.Contains(msg, p) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func orderModel() *typemodel.Model {
	return typemodel.NewModel().Add(
		typemodel.TypeDecl{
			Name:        "com.example.Order",
			Annotations: []string{"com.example.Audited"},
			Fields: []typemodel.FieldDecl{
				{Name: "items", Types: []string{"java.util.List", "com.example.LineItem"}},
			},
		},
		typemodel.TypeDecl{Name: "com.example.LineItem"},
		typemodel.TypeDecl{Name: "com.example.Audited", Annotations: []string{"com.example.Retained"}},
		typemodel.TypeDecl{Name: "com.example.Retained", Annotations: []string{"com.example.Audited"}},
	)
}

func TestProcess_OrderScenario(t *testing.T) {
	m := orderModel()
	r := &recorder{}
	c, _ := newObservedCollector(m)

	r.processor().Process(m.Resolve("com.example.Order"), c)

	assert.Equal(t, []string{"com.example.Order", "com.example.LineItem"}, r.types)
	assert.Equal(t, []string{"com.example.Audited", "com.example.Retained"}, r.annotations)
}

func TestProcess_TerminatesOnMutualReferences(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{Name: "a.A", Fields: []typemodel.FieldDecl{{Name: "b", Types: []string{"a.B"}}}},
		typemodel.TypeDecl{Name: "a.B", Signature: []string{"a.A"}},
	)
	r := &recorder{}

	r.processor().Process(m.Resolve("a.A"), hint.NewCollector(m))

	assert.Equal(t, []string{"a.A", "a.B"}, r.types)
}

func TestProcess_NilRootIsNoop(t *testing.T) {
	m := orderModel()
	r := &recorder{}
	c := hint.NewCollector(m)

	r.processor().Process(nil, c)

	assert.Empty(t, r.types)
	assert.Empty(t, c.Hints())
}

func TestProcess_DefaultExclusions(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{Name: "java.lang.Object"},
		typemodel.TypeDecl{Name: "sun.misc.Unsafe"},
		typemodel.TypeDecl{Name: "jdk.internal.Foo"},
		typemodel.TypeDecl{Name: "org.hibernate.engine.spi.Thing"},
	)

	for _, name := range []string{"java.lang.Object", "sun.misc.Unsafe", "jdk.internal.Foo", "org.hibernate.engine.spi.Thing"} {
		t.Run(name, func(t *testing.T) {
			r := &recorder{}
			c, logs := newObservedCollector(m)

			r.processor().Process(m.Resolve(name), c)

			assert.Empty(t, r.types)
			assert.True(t, containsMessage(logs, "skipping type "+name, ReasonFilteredOut))
		})
	}
}

func TestProcess_CustomTypeFilterReplacesDefaults(t *testing.T) {
	m := typemodel.NewModel().Add(typemodel.TypeDecl{Name: "java.lang.Object"})
	var got []string
	p := NewWithTypeFilter(
		func(typemodel.Type, hint.Context) bool { return true },
		func(t typemodel.Type, _ hint.Context) { got = append(got, t.Name()) },
		func(typemodel.Type, hint.Context) {},
	)

	p.Process(m.Resolve("java.lang.Object"), hint.NewCollector(m))

	assert.Equal(t, []string{"java.lang.Object"}, got)
}

func TestSession_IdempotentDiscovery(t *testing.T) {
	m := orderModel()
	r := &recorder{}
	c, logs := newObservedCollector(m)
	session := r.processor().Use(c)

	order := m.Resolve("com.example.Order")
	session.ProcessType(order)
	before := len(c.Hints())
	session.ProcessType(order)

	assert.Equal(t, 1, countOf(r.types, "com.example.Order"))
	assert.Len(t, c.Hints(), before)
	assert.True(t, containsMessage(logs, "skipping type com.example.Order", ReasonAlreadyProcessed))
}

func TestProcess_FreshSessionPerCall(t *testing.T) {
	m := orderModel()
	r := &recorder{}
	p := r.processor()
	c := hint.NewCollector(m)

	p.Process(m.Resolve("com.example.Order"), c)
	p.Process(m.Resolve("com.example.Order"), c)

	assert.Equal(t, 2, countOf(r.types, "com.example.Order"))
}

func TestFilterFields_Intersection(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{Name: "p.Root", Fields: []typemodel.FieldDecl{
			{Name: "x", Types: []string{"p.X"}},
			{Name: "y", Types: []string{"p.Y"}},
		}},
		typemodel.TypeDecl{Name: "p.X"},
		typemodel.TypeDecl{Name: "p.Y"},
	)
	r := &recorder{}
	c, logs := newObservedCollector(m)

	r.processor().
		FilterFields(func(f typemodel.Field) bool { return f.Name() == "x" }).
		FilterFields(func(f typemodel.Field) bool { return f.Name() == "y" }).
		Process(m.Resolve("p.Root"), c)

	assert.Equal(t, []string{"p.Root"}, r.types)
	assert.True(t, containsMessage(logs, "skipping field x of p.Root"))
	assert.True(t, containsMessage(logs, "skipping field y of p.Root"))
}

func TestSkipFieldInspection_OverridesEarlierFilters(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{Name: "p.Root", Fields: []typemodel.FieldDecl{{Name: "x", Types: []string{"p.X"}}}},
		typemodel.TypeDecl{Name: "p.X"},
	)
	r := &recorder{}

	r.processor().
		FilterFields(func(typemodel.Field) bool { return true }).
		SkipFieldInspection().
		FilterFields(func(typemodel.Field) bool { return true }).
		Process(m.Resolve("p.Root"), hint.NewCollector(m))

	assert.Equal(t, []string{"p.Root"}, r.types)
}

func TestDefaultFieldFilter_SkipsSyntheticAndHibernate(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{Name: "p.Root", Fields: []typemodel.FieldDecl{
			{Name: "this$0", Synthetic: true, Types: []string{"p.A"}},
			{Name: "$$_hibernate_tracker", Types: []string{"p.B"}},
			{Name: "name", Types: []string{"p.C"}},
		}},
		typemodel.TypeDecl{Name: "p.A"},
		typemodel.TypeDecl{Name: "p.B"},
		typemodel.TypeDecl{Name: "p.C"},
	)
	r := &recorder{}

	r.processor().Process(m.Resolve("p.Root"), hint.NewCollector(m))

	assert.Equal(t, []string{"p.Root", "p.C"}, r.types)
}

func TestSkipFieldsMatching(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{Name: "p.Root", Fields: []typemodel.FieldDecl{
			{Name: "audit", Types: []string{"p.Audit"}},
			{Name: "body", Types: []string{"p.Body"}},
		}},
		typemodel.TypeDecl{Name: "p.Audit"},
		typemodel.TypeDecl{Name: "p.Body"},
	)
	r := &recorder{}

	r.processor().
		SkipFieldsMatchingOf(func(owner typemodel.Type, f typemodel.Field) bool {
			return owner.Name() == "p.Root" && f.Name() == "audit"
		}).
		Process(m.Resolve("p.Root"), hint.NewCollector(m))

	assert.Equal(t, []string{"p.Root", "p.Body"}, r.types)
}

func methodModel() *typemodel.Model {
	return typemodel.NewModel().Add(
		typemodel.TypeDecl{
			Name: "svc.Service",
			Methods: []typemodel.MethodDecl{
				{
					Name:        "<init>",
					Constructor: true,
					Params:      []typemodel.ParamDecl{{Type: "svc.Repo", Annotations: []string{"svc.Inject"}}},
				},
				{
					Name:        "find",
					Returns:     []string{"svc.Result"},
					Params:      []typemodel.ParamDecl{{Type: "svc.Query"}},
					Annotations: []string{"svc.Cached"},
				},
				{Name: "$$_hibernate_read", Returns: []string{"svc.Hidden"}},
			},
		},
		typemodel.TypeDecl{Name: "svc.Repo"},
		typemodel.TypeDecl{Name: "svc.Result"},
		typemodel.TypeDecl{Name: "svc.Query"},
		typemodel.TypeDecl{Name: "svc.Hidden"},
		typemodel.TypeDecl{Name: "svc.Inject"},
		typemodel.TypeDecl{Name: "svc.Cached"},
	)
}

func TestProcess_ConstructorsThenMethods(t *testing.T) {
	m := methodModel()
	r := &recorder{}

	r.processor().Process(m.Resolve("svc.Service"), hint.NewCollector(m))

	assert.Equal(t, []string{"svc.Service", "svc.Repo", "svc.Result", "svc.Query"}, r.types)
	assert.Equal(t, []string{"svc.Inject", "svc.Cached"}, r.annotations)
}

func TestSkipMethodInspection_KeepsConstructors(t *testing.T) {
	m := methodModel()
	r := &recorder{}

	r.processor().
		SkipMethodInspection().
		Process(m.Resolve("svc.Service"), hint.NewCollector(m))

	assert.Equal(t, []string{"svc.Service", "svc.Repo"}, r.types)
	assert.Equal(t, []string{"svc.Inject"}, r.annotations)
}

func TestSkipConstructorInspection(t *testing.T) {
	m := methodModel()
	r := &recorder{}

	r.processor().
		SkipConstructorInspection().
		Process(m.Resolve("svc.Service"), hint.NewCollector(m))

	assert.Equal(t, []string{"svc.Service", "svc.Result", "svc.Query"}, r.types)
	assert.Equal(t, []string{"svc.Cached"}, r.annotations)
}

func TestFilterMethods(t *testing.T) {
	m := methodModel()
	r := &recorder{}

	r.processor().
		SkipMethodsMatching(func(m typemodel.Method) bool { return m.Name() == "find" }).
		FilterConstructors(func(typemodel.Method) bool { return false }).
		Process(m.Resolve("svc.Service"), hint.NewCollector(m))

	assert.Equal(t, []string{"svc.Service"}, r.types)
	assert.Empty(t, r.annotations)
}

func TestSkipAnnotationInspection(t *testing.T) {
	m := orderModel()
	r := &recorder{}

	r.processor().
		SkipAnnotationInspection().
		Process(m.Resolve("com.example.Order"), hint.NewCollector(m))

	assert.Empty(t, r.annotations)
	assert.Equal(t, []string{"com.example.Order", "com.example.LineItem"}, r.types)
}

func TestSkipTypesMatching(t *testing.T) {
	m := orderModel()
	r := &recorder{}

	r.processor().
		SkipTypesMatching(func(t typemodel.Type) bool { return t.Name() == "com.example.LineItem" }).
		Process(m.Resolve("com.example.Order"), hint.NewCollector(m))

	assert.Equal(t, []string{"com.example.Order"}, r.types)
}

func TestSkipTypeInspection(t *testing.T) {
	m := orderModel()
	r := &recorder{}

	r.processor().SkipTypeInspection().Process(m.Resolve("com.example.Order"), hint.NewCollector(m))

	assert.Empty(t, r.types)
	assert.Empty(t, r.annotations)
}

func TestAnnotationSkipReasons(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{
			Name: "p.Root",
			Annotations: []string{
				"java.lang.annotation.Documented",
				"p.Missing",
				"p.Marker",
			},
			Fields: []typemodel.FieldDecl{{Name: "f", Annotations: []string{"p.Marker"}}},
		},
		typemodel.TypeDecl{Name: "p.Marker"},
		typemodel.TypeDecl{Name: "java.lang.annotation.Documented"},
	)
	r := &recorder{}
	c, logs := newObservedCollector(m)

	r.processor().Process(m.Resolve("p.Root"), c)

	assert.Equal(t, []string{"p.Marker"}, r.annotations)
	assert.True(t, containsMessage(logs, "java.lang.annotation.Documented", ReasonAnnotationMetadata))
	assert.True(t, containsMessage(logs, "p.Missing", ReasonAnnotationUnreachable))
	assert.True(t, containsMessage(logs, "p.Marker", ReasonAnnotationProcessed))
}

func TestAnnotationSkipReasons_MetadataDomainWins(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{
			Name: "p.Root",
			Fields: []typemodel.FieldDecl{
				{Name: "retention", Types: []string{"java.lang.annotation.Retention"}},
				{Name: "target", Annotations: []string{"java.lang.annotation.Retention"}},
			},
			Annotations: []string{"java.lang.annotation.Inherited"},
		},
		typemodel.TypeDecl{Name: "java.lang.annotation.Retention"},
	)
	r := &recorder{}
	c, logs := newObservedCollector(m)

	r.processor().Process(m.Resolve("p.Root"), c)

	// Inherited is unknown to the model, Retention was already visited as a
	// field type; both report the metadata domain.
	assert.Equal(t, []string{"p.Root", "java.lang.annotation.Retention"}, r.types)
	assert.Empty(t, r.annotations)
	assert.True(t, containsMessage(logs, "java.lang.annotation.Inherited", ReasonAnnotationMetadata))
	assert.False(t, containsMessage(logs, "java.lang.annotation.Inherited", ReasonAnnotationUnreachable))
	assert.True(t, containsMessage(logs, "annotation inspection for java.lang.annotation.Retention", ReasonAnnotationMetadata))
	assert.False(t, containsMessage(logs, "java.lang.annotation.Retention", ReasonAnnotationProcessed))
}

func TestAnnotationSharesVisitedSetWithTypes(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{
			Name:        "p.Root",
			Fields:      []typemodel.FieldDecl{{Name: "m", Types: []string{"p.Marker"}}},
			Annotations: nil,
			Methods: []typemodel.MethodDecl{
				{Name: "run", Annotations: []string{"p.Marker"}},
			},
		},
		typemodel.TypeDecl{Name: "p.Marker"},
	)
	r := &recorder{}
	c, logs := newObservedCollector(m)

	r.processor().Process(m.Resolve("p.Root"), c)

	assert.Equal(t, []string{"p.Root", "p.Marker"}, r.types)
	assert.Empty(t, r.annotations)
	assert.True(t, containsMessage(logs, "p.Marker", ReasonAnnotationProcessed))
}

func TestFilterAnnotations(t *testing.T) {
	m := orderModel()
	r := &recorder{}

	r.processor().
		FilterAnnotations(func(a typemodel.Type) bool { return a.Name() != "com.example.Retained" }).
		Process(m.Resolve("com.example.Order"), hint.NewCollector(m))

	assert.Equal(t, []string{"com.example.Audited"}, r.annotations)
}

func TestInspectionFilter_RegistersWithoutExpanding(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{Name: "app.Root", Fields: []typemodel.FieldDecl{{Name: "flux", Types: []string{"reactor.core.Flux"}}}},
		typemodel.TypeDecl{Name: "reactor.core.Flux", Fields: []typemodel.FieldDecl{{Name: "inner", Types: []string{"reactor.core.Inner"}}}},
		typemodel.TypeDecl{Name: "reactor.core.Inner"},
	)
	r := &recorder{}
	c, logs := newObservedCollector(m)

	r.processor().Process(m.Resolve("app.Root"), c)

	assert.Equal(t, []string{"app.Root", "reactor.core.Flux"}, r.types)
	assert.True(t, containsMessage(logs, "skip field and method inspection for type reactor.core.Flux"))
}

func TestWithInspectionFilter(t *testing.T) {
	m := orderModel()
	r := &recorder{}

	r.processor().
		WithInspectionFilter(NewInspectionFilter("com.example.Order")).
		Process(m.Resolve("com.example.Order"), hint.NewCollector(m))

	assert.Equal(t, []string{"com.example.Order"}, r.types)
	assert.Empty(t, r.annotations)
}

func TestTraversalOrder(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{
			Name:        "o.Root",
			Signature:   []string{"o.Super"},
			Annotations: []string{"o.Ann"},
			Methods: []typemodel.MethodDecl{
				{Name: "get", Returns: []string{"o.MethodType"}},
				{Name: "<init>", Constructor: true, Params: []typemodel.ParamDecl{{Type: "o.CtorType"}}},
			},
			Fields: []typemodel.FieldDecl{{Name: "f", Types: []string{"o.FieldType"}}},
		},
		typemodel.TypeDecl{Name: "o.Super"},
		typemodel.TypeDecl{Name: "o.Ann"},
		typemodel.TypeDecl{Name: "o.CtorType"},
		typemodel.TypeDecl{Name: "o.FieldType"},
		typemodel.TypeDecl{Name: "o.MethodType"},
	)
	var order []string
	p := NewWithRegistrars(
		func(t typemodel.Type, _ hint.Context) { order = append(order, t.Name()) },
		func(a typemodel.Type, _ hint.Context) { order = append(order, "@"+a.Name()) },
	)

	p.Process(m.Resolve("o.Root"), hint.NewCollector(m))

	assert.Equal(t, []string{"o.Root", "o.Super", "@o.Ann", "o.CtorType", "o.FieldType", "o.MethodType"}, order)
}

func TestNamedProcessor_DefaultRegistrars(t *testing.T) {
	m := orderModel()
	c, logs := newObservedCollector(m)

	NamedProcessor("jpa").Process(m.Resolve("com.example.Order"), c)

	require.True(t, c.HasReflectionConfigFor("com.example.Order"))
	require.True(t, c.HasReflectionConfigFor("com.example.Audited"))
	assert.True(t, containsMessage(logs, "jpa: processing type com.example.Order."))
	assert.True(t, containsMessage(logs, "Registering com.example.Order with access"))

	for _, d := range c.Hints() {
		for _, dt := range d.DependantTypes {
			switch dt.Name {
			case "com.example.Audited", "com.example.Retained":
				assert.Equal(t, hint.Annotation, dt.Access.Bits)
			default:
				assert.Equal(t, hint.FullReflection, dt.Access.Bits)
			}
		}
	}
}

func TestNilCallbacksFailFast(t *testing.T) {
	assert.Panics(t, func() { NamedProcessor("x").OnTypeDiscovered(nil) })
	assert.Panics(t, func() { NamedProcessor("x").OnAnnotationDiscovered(nil) })
	assert.Panics(t, func() { NamedProcessor("x").WithInspectionFilter(nil) })
	assert.Panics(t, func() { NamedProcessor("x").Use(nil) })
}

func countOf(names []string, name string) int {
	n := 0
	for _, v := range names {
		if v == name {
			n++
		}
	}
	return n
}
