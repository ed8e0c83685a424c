package parser

import "go/types"

// namedRefs lists the package level named types referenced by t, unwrapping
// pointers, containers, function signatures, anonymous structs and type
// arguments. Predeclared types such as error are skipped.
func namedRefs(t types.Type) []string {
	var out []string
	collectRefs(t, map[types.Type]bool{}, &out)
	return dedupe(out)
}

func collectRefs(t types.Type, seen map[types.Type]bool, out *[]string) {
	if t == nil || seen[t] {
		return
	}
	seen[t] = true

	switch v := t.(type) {
	case *types.Alias:
		collectRefs(v.Rhs(), seen, out)
	case *types.Pointer:
		collectRefs(v.Elem(), seen, out)
	case *types.Slice:
		collectRefs(v.Elem(), seen, out)
	case *types.Array:
		collectRefs(v.Elem(), seen, out)
	case *types.Map:
		collectRefs(v.Key(), seen, out)
		collectRefs(v.Elem(), seen, out)
	case *types.Chan:
		collectRefs(v.Elem(), seen, out)
	case *types.Signature:
		collectTuple(v.Params(), seen, out)
		collectTuple(v.Results(), seen, out)
	case *types.Struct:
		for i := 0; i < v.NumFields(); i++ {
			collectRefs(v.Field(i).Type(), seen, out)
		}
	case *types.Named:
		if name := qualifiedName(v.Obj()); name != "" {
			*out = append(*out, name)
		}
		args := v.TypeArgs()
		for i := 0; i < args.Len(); i++ {
			collectRefs(args.At(i), seen, out)
		}
	}
}

func collectTuple(tuple *types.Tuple, seen map[types.Type]bool, out *[]string) {
	for i := 0; i < tuple.Len(); i++ {
		collectRefs(tuple.At(i).Type(), seen, out)
	}
}

func tupleRefs(tuple *types.Tuple) []string {
	var out []string
	collectTuple(tuple, map[types.Type]bool{}, &out)
	return dedupe(out)
}

// qualifiedName returns "import/path.Name", or "" for predeclared types.
func qualifiedName(obj *types.TypeName) string {
	if obj == nil || obj.Pkg() == nil {
		return ""
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
