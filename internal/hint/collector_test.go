package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seitarof/gen-hints/internal/typemodel"
)

func TestCollector_BucketOrder(t *testing.T) {
	m := typemodel.NewModel().Add(typemodel.TypeDecl{Name: "p.Boot"})
	c := NewCollector(m)

	c.AddProxy("p.Api")
	c.AddReflectiveAccess("p.A", NewAccessDescriptor(Class))
	c.AddResourceBundle("messages")
	c.InitializeAtBuildTime(m.Resolve("p.Boot"))

	hints := c.Hints()
	require.Len(t, hints, 4)
	kinds := []Kind{hints[0].Kind, hints[1].Kind, hints[2].Kind, hints[3].Kind}
	assert.Equal(t, []Kind{KindBuildTime, KindResource, KindReflection, KindProxy}, kinds)
	assert.Equal(t, []string{"p.Boot"}, hints[0].Initialization.BuildTimeClasses)
	assert.True(t, hints[1].Resources.Bundle)
	assert.Equal(t, []string{"p.Api"}, hints[3].Proxy.Interfaces)
}

func TestCollector_ResourceAccessAddsResourceRecord(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		want     string
	}{
		{name: "plain", typeName: "com.example.Foo", want: "com/example/Foo.class"},
		{name: "array", typeName: "com.example.Foo[]", want: "com/example/Foo.class"},
		{name: "go import path", typeName: "example.com/app/model.Order", want: "example.com/app/model/Order.class"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCollector(typemodel.NewModel())

			c.AddReflectiveAccess(tc.typeName, NewAccessDescriptor(Class|Resource))

			hints := c.Hints()
			require.Len(t, hints, 2)
			assert.Equal(t, KindResource, hints[0].Kind)
			assert.Equal(t, []string{tc.want}, hints[0].Resources.Patterns)
			assert.False(t, hints[0].Resources.Bundle)
			assert.Equal(t, KindReflection, hints[1].Kind)
		})
	}
}

func TestCollector_RecordsAreNotMerged(t *testing.T) {
	c := NewCollector(typemodel.NewModel())

	c.AddReflectiveAccess("p.A", NewAccessDescriptor(Class))
	c.AddReflectiveAccess("p.A", NewAccessDescriptor(DeclaredFields))

	assert.Len(t, c.Hints(), 2)
	assert.True(t, c.HasReflectionConfigFor("p.A"))
	assert.False(t, c.HasReflectionConfigFor("p.B"))
}

func TestCollector_AddReflectiveAccessFlags(t *testing.T) {
	c := NewCollector(typemodel.NewModel())

	c.AddReflectiveAccessFlags("p.A", FlagAllDeclaredFields, FlagAllPublicMethods)

	hints := c.Hints()
	require.Len(t, hints, 1)
	assert.Equal(t, Class|DeclaredFields|PublicMethods, hints[0].DependantTypes[0].Access.Bits)
}

func TestCollector_AddReflectiveAccessHierarchy(t *testing.T) {
	m := typemodel.NewModel().Add(
		typemodel.TypeDecl{Name: "p.Child", Signature: []string{"p.Parent", "p.Iface", "p.Unknown"}},
		typemodel.TypeDecl{Name: "p.Parent", Signature: []string{"p.Child"}},
		typemodel.TypeDecl{Name: "p.Iface"},
	)
	c := NewCollector(m)

	added := c.AddReflectiveAccessHierarchy("p.Child", LoadAndConstruct)

	assert.Equal(t, []string{"p.Child", "p.Iface", "p.Parent"}, added)
	assert.Len(t, c.Hints(), 3)
	assert.Empty(t, c.AddReflectiveAccessHierarchy("p.Nope", Class))
}

func TestCollector_LogGoesToLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := NewCollector(typemodel.NewModel(), WithLogger(zap.New(core)))

	c.Log("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].Message)
	assert.Equal(t, zap.DebugLevel, logs.All()[0].Level)
}

func TestCollector_AddProxyCopiesInterfaces(t *testing.T) {
	c := NewCollector(typemodel.NewModel())
	ifaces := []string{"p.A", "p.B"}

	assert.True(t, c.AddProxy(ifaces...))
	ifaces[0] = "changed"

	assert.Equal(t, []string{"p.A", "p.B"}, c.Hints()[0].Proxy.Interfaces)
}
