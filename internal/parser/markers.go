package parser

import (
	"go/ast"
	"go/types"
	"reflect"
	"strings"
)

const (
	markerPrefix = "+hint:"
	markerTag    = "hint"
)

// commentMarkers extracts "// +hint:A,B" markers from comment groups and
// qualifies them relative to pkg.
func commentMarkers(pkg *types.Package, groups ...*ast.CommentGroup) []string {
	var out []string
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
			if !strings.HasPrefix(text, markerPrefix) {
				continue
			}
			fields := strings.Fields(strings.TrimPrefix(text, markerPrefix))
			if len(fields) == 0 {
				continue
			}
			out = append(out, splitMarkers(pkg, fields[0])...)
		}
	}
	return out
}

// tagMarkers extracts markers from a `hint:"A,B"` struct tag.
func tagMarkers(pkg *types.Package, tag string) []string {
	value, ok := reflect.StructTag(tag).Lookup(markerTag)
	if !ok {
		return nil
	}
	return splitMarkers(pkg, value)
}

func splitMarkers(pkg *types.Package, list string) []string {
	var out []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, qualifyMarker(pkg, name))
	}
	return out
}

// qualifyMarker turns a marker into a full type name. "Audited" refers to
// the declaring package, "audit.Trail" to an imported package named audit
// and anything else is taken verbatim.
func qualifyMarker(pkg *types.Package, name string) string {
	if pkg == nil {
		return name
	}
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return pkg.Path() + "." + name
	}
	qualifier := name[:dot]
	if strings.ContainsAny(qualifier, "./") {
		return name
	}
	for _, imp := range pkg.Imports() {
		if imp.Name() == qualifier {
			return imp.Path() + name[dot:]
		}
	}
	return name
}

// embeddedIdent returns the identifier naming an embedded field:
// Base, *Base, pkg.Base and Base[T] all yield Base.
func embeddedIdent(expr ast.Expr) *ast.Ident {
	switch v := expr.(type) {
	case *ast.Ident:
		return v
	case *ast.StarExpr:
		return embeddedIdent(v.X)
	case *ast.SelectorExpr:
		return v.Sel
	case *ast.IndexExpr:
		return embeddedIdent(v.X)
	case *ast.IndexListExpr:
		return embeddedIdent(v.X)
	case *ast.ParenExpr:
		return embeddedIdent(v.X)
	}
	return nil
}
