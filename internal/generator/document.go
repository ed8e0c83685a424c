package generator

import (
	"github.com/seitarof/gen-hints/internal/hint"
)

// Document is the rendered form of a hint list. Reflection entries are
// merged per type, OR-ing their access bits, in first registration order.
type Document struct {
	Initialization []string          `json:"initialization,omitempty" yaml:"initialization,omitempty"`
	Resources      ResourcesEntry    `json:"resources" yaml:"resources"`
	Reflection     []ReflectionEntry `json:"reflection" yaml:"reflection"`
	Proxies        []ProxyEntry      `json:"proxies,omitempty" yaml:"proxies,omitempty"`
}

// ResourcesEntry lists resource patterns and bundles.
type ResourcesEntry struct {
	Includes []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	Bundles  []string `json:"bundles,omitempty" yaml:"bundles,omitempty"`
}

// ReflectionEntry is the reflective access granted to one type.
type ReflectionEntry struct {
	Name   string   `json:"name" yaml:"name"`
	Access string   `json:"access" yaml:"access"`
	Flags  []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	bits   hint.AccessBits
}

// ProxyEntry is one proxy interface list.
type ProxyEntry struct {
	Interfaces []string `json:"interfaces" yaml:"interfaces"`
}

// BuildDocument folds hints into a Document.
func BuildDocument(hints []hint.Declaration) Document {
	doc := Document{Reflection: []ReflectionEntry{}}
	reflectIndex := map[string]int{}
	seenResource := map[string]bool{}
	seenBundle := map[string]bool{}
	seenInit := map[string]bool{}

	for _, h := range hints {
		switch h.Kind {
		case hint.KindBuildTime:
			if h.Initialization == nil {
				continue
			}
			for _, name := range h.Initialization.BuildTimeClasses {
				if !seenInit[name] {
					seenInit[name] = true
					doc.Initialization = append(doc.Initialization, name)
				}
			}
		case hint.KindResource:
			if h.Resources == nil {
				continue
			}
			for _, p := range h.Resources.Patterns {
				if h.Resources.Bundle {
					if !seenBundle[p] {
						seenBundle[p] = true
						doc.Resources.Bundles = append(doc.Resources.Bundles, p)
					}
					continue
				}
				if !seenResource[p] {
					seenResource[p] = true
					doc.Resources.Includes = append(doc.Resources.Includes, p)
				}
			}
		case hint.KindReflection:
			for _, dt := range h.DependantTypes {
				i, ok := reflectIndex[dt.Name]
				if !ok {
					reflectIndex[dt.Name] = len(doc.Reflection)
					doc.Reflection = append(doc.Reflection, ReflectionEntry{Name: dt.Name})
					i = len(doc.Reflection) - 1
				}
				doc.Reflection[i].bits |= dt.Access.Bits
			}
		case hint.KindProxy:
			if h.Proxy != nil {
				doc.Proxies = append(doc.Proxies, ProxyEntry{Interfaces: h.Proxy.Interfaces})
			}
		}
	}

	for i := range doc.Reflection {
		e := &doc.Reflection[i]
		e.Access = e.bits.String()
		for _, f := range e.bits.Flags() {
			e.Flags = append(e.Flags, string(f))
		}
	}
	return doc
}

// Counts returns the number of hint records per kind.
func Counts(hints []hint.Declaration) map[hint.Kind]int {
	out := map[hint.Kind]int{}
	for _, h := range hints {
		out[h.Kind]++
	}
	return out
}
