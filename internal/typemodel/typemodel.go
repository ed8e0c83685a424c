// Package typemodel defines the read-only view of a type graph that the
// reachability processor walks, plus an in-memory implementation of it.
package typemodel

import "strings"

// Type is a declared type (class, interface, struct, marker/annotation).
// Two Type values denote the same node iff their names are equal.
type Type interface {
	Name() string
	Annotations() []Type
	Fields() []Field
	// Methods returns declared methods and constructors accepted by filter,
	// in declaration order. A nil filter accepts everything.
	Methods(filter func(Method) bool) []Method
	// TypesInSignature lists names referenced by the type declaration itself
	// (supertypes, embedded types, type arguments), ordered and de-duplicated.
	TypesInSignature() []string
	IsPartOfDomain(prefix string) bool
}

// Field is a declared field of a Type.
type Field interface {
	Name() string
	IsSynthetic() bool
	TypesInSignature() []string
	AnnotationTypes() []Type
}

// Method is a declared method or constructor of a Type.
type Method interface {
	Name() string
	IsConstructor() bool
	// SignatureTypes returns the resolvable return types. When includeOwner
	// is set, constructors also report their owning type first.
	SignatureTypes(includeOwner bool) []Type
	ParameterTypes() []Type
	ParameterCount() int
	AnnotationTypes() []Type
	ParameterAnnotationTypes(index int) []Type
	String() string
}

// TypeSystem resolves names to types.
type TypeSystem interface {
	// Resolve returns nil when name does not denote a known type.
	Resolve(name string) Type
	CanResolve(name string) bool
	// Types lists every type the system knows about in a stable order.
	Types() []Type
}

// IsPartOfDomain reports whether name starts with prefix.
func IsPartOfDomain(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}

// SimpleName returns the part of name after its last package separator.
func SimpleName(name string) string {
	name = strings.TrimSuffix(name, "[]")
	if i := strings.LastIndexAny(name, "./$"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ResourcePath derives the compiled resource path of a type name:
// "com.example.Foo[]" becomes "com/example/Foo.class". Go style names keep
// their import path, so "example.com/app/model.Order" becomes
// "example.com/app/model/Order.class".
func ResourcePath(typeName string) string {
	name := strings.TrimSuffix(typeName, "[]")
	if strings.HasSuffix(name, ".class") {
		return ToSlashed(strings.TrimSuffix(name, ".class")) + ".class"
	}
	return ToSlashed(name) + ".class"
}

// ToSlashed converts package separators to path separators.
func ToSlashed(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		head, tail := name[:i+1], name[i+1:]
		return head + strings.ReplaceAll(tail, ".", "/")
	}
	return strings.ReplaceAll(name, ".", "/")
}

// ToDotted converts a slashed Java style name ("com/example/Foo") to its
// dotted form. Names that already contain a dot are returned unchanged.
func ToDotted(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return strings.ReplaceAll(name, "/", ".")
}
