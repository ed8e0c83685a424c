package parser

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

type typeDecl struct {
	pkg  *packages.Package
	obj  *types.TypeName
	docs []*ast.CommentGroup
	rhs  ast.Expr
}

// indexer collects declarations and their comments across packages before
// the TypeSystem is assembled.
type indexer struct {
	decls     []typeDecl
	fieldDocs map[*types.Var][]*ast.CommentGroup
	funcDocs  map[*types.Func][]*ast.CommentGroup
	funcs     map[*types.Package][]*types.Func
}

func newIndexer() *indexer {
	return &indexer{
		fieldDocs: map[*types.Var][]*ast.CommentGroup{},
		funcDocs:  map[*types.Func][]*ast.CommentGroup{},
		funcs:     map[*types.Package][]*types.Func{},
	}
}

func (ix *indexer) index(pkg *packages.Package) {
	info := pkg.TypesInfo
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					obj, ok := info.Defs[ts.Name].(*types.TypeName)
					if !ok || obj.IsAlias() {
						continue
					}
					docs := []*ast.CommentGroup{ts.Doc}
					if ts.Doc == nil && len(d.Specs) == 1 {
						docs = []*ast.CommentGroup{d.Doc}
					}
					ix.decls = append(ix.decls, typeDecl{pkg: pkg, obj: obj, docs: docs, rhs: ts.Type})
					ix.indexMembers(info, ts.Type)
				}
			case *ast.FuncDecl:
				fn, ok := info.Defs[d.Name].(*types.Func)
				if !ok {
					continue
				}
				ix.funcDocs[fn] = []*ast.CommentGroup{d.Doc}
				if d.Recv == nil {
					ix.funcs[pkg.Types] = append(ix.funcs[pkg.Types], fn)
				}
			}
		}
	}
}

func (ix *indexer) indexMembers(info *types.Info, expr ast.Expr) {
	ast.Inspect(expr, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.StructType:
			for _, f := range v.Fields.List {
				for _, id := range fieldIdents(f) {
					if fv, ok := info.Defs[id].(*types.Var); ok {
						ix.fieldDocs[fv] = []*ast.CommentGroup{f.Doc, f.Comment}
					}
				}
			}
		case *ast.InterfaceType:
			for _, f := range v.Methods.List {
				for _, id := range f.Names {
					if fn, ok := info.Defs[id].(*types.Func); ok {
						ix.funcDocs[fn] = []*ast.CommentGroup{f.Doc, f.Comment}
					}
				}
			}
		}
		return true
	})
}

func fieldIdents(f *ast.Field) []*ast.Ident {
	if len(f.Names) > 0 {
		return f.Names
	}
	if id := embeddedIdent(f.Type); id != nil {
		return []*ast.Ident{id}
	}
	return nil
}

func (ix *indexer) build() *TypeSystem {
	ts := newTypeSystem()
	for _, d := range ix.decls {
		ts.add(ix.buildType(ts, d))
	}
	return ts
}

func (ix *indexer) buildType(ts *TypeSystem, d typeDecl) *goType {
	pkg := d.obj.Pkg()
	t := &goType{
		ts:      ts,
		name:    qualifiedName(d.obj),
		markers: commentMarkers(pkg, d.docs...),
	}

	named, _ := d.obj.Type().(*types.Named)
	t.signature = ix.signatureOf(d, named)

	if named == nil {
		return t
	}
	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			t.fields = append(t.fields, &goField{
				ts:        ts,
				name:      f.Name(),
				synthetic: strings.HasPrefix(f.Name(), "_"),
				types:     namedRefs(f.Type()),
				markers:   append(commentMarkers(pkg, ix.fieldDocs[f]...), tagMarkers(pkg, st.Tag(i))...),
			})
		}
	}

	var fns []*types.Func
	if iface, ok := named.Underlying().(*types.Interface); ok {
		for i := 0; i < iface.NumExplicitMethods(); i++ {
			fns = append(fns, iface.ExplicitMethod(i))
		}
	} else {
		for i := 0; i < named.NumMethods(); i++ {
			fns = append(fns, named.Method(i))
		}
	}
	for _, fn := range fns {
		t.methods = append(t.methods, ix.buildMethod(t, fn, false))
	}
	for _, fn := range ix.funcs[pkg] {
		if isConstructorOf(fn, d.obj) {
			t.methods = append(t.methods, ix.buildMethod(t, fn, true))
		}
	}
	sort.SliceStable(t.methods, func(i, j int) bool {
		return t.methods[i].pos < t.methods[j].pos
	})
	return t
}

// signatureOf lists the types a declaration builds on: embedded fields of a
// struct, embedded interfaces, the right hand side of any other definition
// and type parameter constraints.
func (ix *indexer) signatureOf(d typeDecl, named *types.Named) []string {
	var out []string
	switch rhs := types.Unalias(d.pkg.TypesInfo.TypeOf(d.rhs)).(type) {
	case *types.Struct:
		for i := 0; i < rhs.NumFields(); i++ {
			if rhs.Field(i).Embedded() {
				out = append(out, namedRefs(rhs.Field(i).Type())...)
			}
		}
	case *types.Interface:
		for i := 0; i < rhs.NumEmbeddeds(); i++ {
			out = append(out, namedRefs(rhs.EmbeddedType(i))...)
		}
	case nil:
	default:
		out = append(out, namedRefs(rhs)...)
	}
	if named != nil {
		params := named.TypeParams()
		for i := 0; i < params.Len(); i++ {
			out = append(out, namedRefs(params.At(i).Constraint())...)
		}
	}
	return dedupe(out)
}

func (ix *indexer) buildMethod(owner *goType, fn *types.Func, constructor bool) *goMethod {
	sig := fn.Signature()
	qualifier := types.RelativeTo(fn.Pkg())
	m := &goMethod{
		owner:       owner,
		name:        fn.Name(),
		constructor: constructor,
		returns:     tupleRefs(sig.Results()),
		markers:     commentMarkers(fn.Pkg(), ix.funcDocs[fn]...),
		pos:         fn.Pos(),
	}
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		m.params = append(m.params, namedRefs(p.Type()))
		m.display = append(m.display, types.TypeString(p.Type(), qualifier))
	}
	return m
}

// isConstructorOf reports whether fn is a package func named New<Type>...
// returning the type.
func isConstructorOf(fn *types.Func, obj *types.TypeName) bool {
	if !strings.HasPrefix(fn.Name(), "New"+obj.Name()) {
		return false
	}
	want := qualifiedName(obj)
	for _, name := range tupleRefs(fn.Signature().Results()) {
		if name == want {
			return true
		}
	}
	return false
}
