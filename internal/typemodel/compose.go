package typemodel

// Unresolved returns a name-only Type for a reference that no TypeSystem can
// resolve. It has no annotations, fields or methods.
func Unresolved(name string) Type {
	return unresolvedType(name)
}

type unresolvedType string

func (t unresolvedType) Name() string                       { return string(t) }
func (t unresolvedType) Annotations() []Type                { return nil }
func (t unresolvedType) Fields() []Field                    { return nil }
func (t unresolvedType) Methods(func(Method) bool) []Method { return nil }
func (t unresolvedType) TypesInSignature() []string         { return nil }
func (t unresolvedType) String() string                     { return string(t) }

func (t unresolvedType) IsPartOfDomain(prefix string) bool {
	return IsPartOfDomain(string(t), prefix)
}

// Compose chains type systems. Resolution asks each system in order and
// returns the first hit; Types concatenates them, skipping names already
// listed by an earlier system.
func Compose(systems ...TypeSystem) TypeSystem {
	if len(systems) == 1 {
		return systems[0]
	}
	return composite(systems)
}

type composite []TypeSystem

func (c composite) Resolve(name string) Type {
	for _, ts := range c {
		if t := ts.Resolve(name); t != nil {
			return t
		}
	}
	return nil
}

func (c composite) CanResolve(name string) bool {
	for _, ts := range c {
		if ts.CanResolve(name) {
			return true
		}
	}
	return false
}

func (c composite) Types() []Type {
	seen := map[string]bool{}
	var out []Type
	for _, ts := range c {
		for _, t := range ts.Types() {
			if seen[t.Name()] {
				continue
			}
			seen[t.Name()] = true
			out = append(out, t)
		}
	}
	return out
}
