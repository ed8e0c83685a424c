package hint

import (
	"fmt"
	"strings"
)

// AccessBits is a capability bitmask describing which reflective operations
// must be enabled for a type.
type AccessBits int

const (
	None                 AccessBits = 0
	Class                AccessBits = 0x0001
	DeclaredConstructors AccessBits = 0x0002
	PublicConstructors   AccessBits = 0x0004
	DeclaredMethods      AccessBits = 0x0008
	PublicMethods        AccessBits = 0x0010
	DeclaredFields       AccessBits = 0x0020
	PublicFields         AccessBits = 0x0040
	Resource             AccessBits = 0x0080
	DeclaredClasses      AccessBits = 0x0100
	PublicClasses        AccessBits = 0x0200

	LoadAndConstruct = Class | DeclaredConstructors
	Annotation       = Class | DeclaredMethods
	FullReflection   = Class | DeclaredConstructors | PublicConstructors | DeclaredMethods |
		PublicMethods | DeclaredFields | PublicFields | DeclaredClasses | PublicClasses
)

var bitNames = []struct {
	bit  AccessBits
	name string
}{
	{Class, "CLASS"},
	{DeclaredConstructors, "DECLARED_CONSTRUCTORS"},
	{PublicConstructors, "PUBLIC_CONSTRUCTORS"},
	{DeclaredMethods, "DECLARED_METHODS"},
	{PublicMethods, "PUBLIC_METHODS"},
	{DeclaredFields, "DECLARED_FIELDS"},
	{PublicFields, "PUBLIC_FIELDS"},
	{Resource, "RESOURCE"},
	{DeclaredClasses, "DECLARED_CLASSES"},
	{PublicClasses, "PUBLIC_CLASSES"},
}

var compoundNames = map[string]AccessBits{
	"NONE":               None,
	"LOAD_AND_CONSTRUCT": LoadAndConstruct,
	"ANNOTATION":         Annotation,
	"FULL_REFLECTION":    FullReflection,
}

// IsSet reports whether every bit of mask is set in b.
func (b AccessBits) IsSet(mask AccessBits) bool {
	return mask != None && b&mask == mask
}

func (b AccessBits) String() string {
	if b == None {
		return "NONE"
	}
	parts := make([]string, 0, len(bitNames))
	for _, bn := range bitNames {
		if b&bn.bit != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseAccessBits parses a "|" or "," separated list of bit names, e.g.
// "CLASS|DECLARED_METHODS" or "full_reflection,resource".
func ParseAccessBits(s string) (AccessBits, error) {
	var bits AccessBits
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		name := strings.ToUpper(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if v, ok := compoundNames[name]; ok {
			bits |= v
			continue
		}
		found := false
		for _, bn := range bitNames {
			if bn.name == name {
				bits |= bn.bit
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("unknown access bit %q", part)
		}
	}
	return bits, nil
}

// Flag is the native-image configuration flag vocabulary.
type Flag string

const (
	FlagAllDeclaredConstructors Flag = "allDeclaredConstructors"
	FlagAllPublicConstructors   Flag = "allPublicConstructors"
	FlagAllDeclaredMethods      Flag = "allDeclaredMethods"
	FlagAllPublicMethods        Flag = "allPublicMethods"
	FlagAllDeclaredFields       Flag = "allDeclaredFields"
	FlagAllPublicFields         Flag = "allPublicFields"
	FlagAllDeclaredClasses      Flag = "allDeclaredClasses"
	FlagAllPublicClasses        Flag = "allPublicClasses"
)

var flagBits = map[Flag]AccessBits{
	FlagAllDeclaredConstructors: DeclaredConstructors,
	FlagAllPublicConstructors:   PublicConstructors,
	FlagAllDeclaredMethods:      DeclaredMethods,
	FlagAllPublicMethods:        PublicMethods,
	FlagAllDeclaredFields:       DeclaredFields,
	FlagAllPublicFields:         PublicFields,
	FlagAllDeclaredClasses:      DeclaredClasses,
	FlagAllPublicClasses:        PublicClasses,
}

// FromFlags converts flags into access bits. Class access is always implied.
func FromFlags(flags ...Flag) AccessBits {
	bits := Class
	for _, f := range flags {
		bits |= flagBits[f]
	}
	return bits
}

// Flags lists the flags covered by b, in a stable order.
func (b AccessBits) Flags() []Flag {
	var out []Flag
	for _, f := range []Flag{
		FlagAllDeclaredConstructors, FlagAllPublicConstructors,
		FlagAllDeclaredMethods, FlagAllPublicMethods,
		FlagAllDeclaredFields, FlagAllPublicFields,
		FlagAllDeclaredClasses, FlagAllPublicClasses,
	} {
		if b.IsSet(flagBits[f]) {
			out = append(out, f)
		}
	}
	return out
}

// AccessDescriptor binds access bits to a registered type.
type AccessDescriptor struct {
	Bits AccessBits
}

// NewAccessDescriptor returns a descriptor for bits.
func NewAccessDescriptor(bits AccessBits) AccessDescriptor {
	return AccessDescriptor{Bits: bits}
}

// RequiresResourceAccess reports whether the type file itself must be bundled.
func (d AccessDescriptor) RequiresResourceAccess() bool {
	return d.Bits.IsSet(Resource)
}

func (d AccessDescriptor) String() string {
	return "AccessDescriptor{" + d.Bits.String() + "}"
}
