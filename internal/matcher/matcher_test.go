package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/gen-hints/internal/typemodel"
)

func TestTypeMatcher(t *testing.T) {
	m, err := NewTypeMatcher([]string{
		"com.example.Order",
		"com.example.*Dto",
		"example.com/app/...",
		" ",
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		want bool
	}{
		{name: "com.example.Order", want: true},
		{name: "com.example.OrderDto", want: true},
		{name: "com.example.Orders", want: false},
		{name: "example.com/app/model.Order", want: true},
		{name: "example.com/other.Order", want: false},
		{name: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.MatchName(tc.name))
		})
	}
	assert.True(t, m.Match(typemodel.Unresolved("com.example.Order")))
	assert.False(t, m.Match(nil))
}

func TestTypeMatcher_SubtreeStopsAtSeparators(t *testing.T) {
	m := MustTypeMatcher("com.example...", "example.com/app...")

	tests := []struct {
		name string
		want bool
	}{
		{name: "com.example", want: true},
		{name: "com.example.Order", want: true},
		{name: "com.example.api.Order", want: true},
		{name: "com.examplefoo.Order", want: false},
		{name: "example.com/app.Order", want: true},
		{name: "example.com/app/model.Order", want: true},
		{name: "example.com/apps/model.Order", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.MatchName(tc.name))
		})
	}
}

func TestTypeMatcher_EmptyMatchesNothing(t *testing.T) {
	m := MustTypeMatcher()
	assert.False(t, m.MatchName("anything"))
}

func TestTypeMatcher_InvalidPattern(t *testing.T) {
	_, err := NewTypeMatcher([]string{"com.example.[Order"})
	assert.Error(t, err)
	assert.Panics(t, func() { MustTypeMatcher("[") })
}

func TestMemberMatcher_CaseInsensitiveAndGlob(t *testing.T) {
	model := typemodel.NewModel().Add(typemodel.TypeDecl{
		Name: "p.User",
		Fields: []typemodel.FieldDecl{
			{Name: "ID"}, {Name: "Password"}, {Name: "internalCache"},
		},
		Methods: []typemodel.MethodDecl{{Name: "getPassword"}, {Name: "getName"}},
	})
	m, err := NewMemberMatcher([]string{"password", "INTERNAL*", "*password"})
	require.NoError(t, err)

	var fields []string
	for _, f := range model.Resolve("p.User").Fields() {
		if m.MatchField(f) {
			fields = append(fields, f.Name())
		}
	}
	assert.Equal(t, []string{"Password", "internalCache"}, fields)

	methods := model.Resolve("p.User").Methods(m.MatchMethod)
	require.Len(t, methods, 1)
	assert.Equal(t, "getPassword", methods[0].Name())
}

func TestMemberMatcher_InvalidPattern(t *testing.T) {
	_, err := NewMemberMatcher([]string{"[x"})
	assert.Error(t, err)
}
