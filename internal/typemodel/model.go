package typemodel

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeDecl describes one type of an in-memory Model.
type TypeDecl struct {
	Name        string       `yaml:"name"`
	Annotations []string     `yaml:"annotations,omitempty"`
	Signature   []string     `yaml:"signature,omitempty"`
	Fields      []FieldDecl  `yaml:"fields,omitempty"`
	Methods     []MethodDecl `yaml:"methods,omitempty"`
}

// FieldDecl describes one field of a TypeDecl.
type FieldDecl struct {
	Name        string   `yaml:"name"`
	Synthetic   bool     `yaml:"synthetic,omitempty"`
	Types       []string `yaml:"types,omitempty"`
	Annotations []string `yaml:"annotations,omitempty"`
}

// MethodDecl describes one method or constructor of a TypeDecl.
type MethodDecl struct {
	Name        string      `yaml:"name"`
	Constructor bool        `yaml:"constructor,omitempty"`
	Returns     []string    `yaml:"returns,omitempty"`
	Params      []ParamDecl `yaml:"params,omitempty"`
	Annotations []string    `yaml:"annotations,omitempty"`
}

// ParamDecl describes one parameter of a MethodDecl.
type ParamDecl struct {
	Type        string   `yaml:"type"`
	Annotations []string `yaml:"annotations,omitempty"`
}

type modelFile struct {
	Types []TypeDecl `yaml:"types"`
}

// Model is an in-memory TypeSystem. It is safe for concurrent reads once
// fully built.
type Model struct {
	order []string
	types map[string]*modelType
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{types: map[string]*modelType{}}
}

// Add registers declarations. A declaration replaces an earlier one with the
// same name but keeps its original position.
func (m *Model) Add(decls ...TypeDecl) *Model {
	for i := range decls {
		decl := decls[i]
		if _, exists := m.types[decl.Name]; !exists {
			m.order = append(m.order, decl.Name)
		}
		m.types[decl.Name] = &modelType{model: m, decl: &decl}
	}
	return m
}

// LoadModel decodes a YAML (or JSON) model descriptor.
func LoadModel(r io.Reader) (*Model, error) {
	var file modelFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	m := NewModel()
	for _, decl := range file.Types {
		if strings.TrimSpace(decl.Name) == "" {
			return nil, fmt.Errorf("decode model: type without name")
		}
		if _, exists := m.types[decl.Name]; exists {
			return nil, fmt.Errorf("decode model: duplicate type %q", decl.Name)
		}
		m.Add(decl)
	}
	return m, nil
}

// LoadModelFile decodes the model descriptor stored at path.
func LoadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	m, err := LoadModel(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Model) lookup(name string) *modelType {
	if t, ok := m.types[name]; ok {
		return t
	}
	if t, ok := m.types[ToDotted(name)]; ok {
		return t
	}
	return nil
}

// Resolve implements TypeSystem. Slashed names are accepted as well.
func (m *Model) Resolve(name string) Type {
	if t := m.lookup(name); t != nil {
		return t
	}
	return nil
}

func (m *Model) CanResolve(name string) bool {
	return m.lookup(name) != nil
}

func (m *Model) Types() []Type {
	out := make([]Type, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.types[name])
	}
	return out
}

// resolveAll resolves names, dropping those that are unknown.
func (m *Model) resolveAll(names []string) []Type {
	out := make([]Type, 0, len(names))
	for _, name := range names {
		if t := m.lookup(name); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// annotationsOf resolves annotation names. Unknown annotations are kept as
// name-only placeholders so callers can still report them.
func (m *Model) annotationsOf(names []string) []Type {
	out := make([]Type, 0, len(names))
	for _, name := range names {
		if t := m.lookup(name); t != nil {
			out = append(out, t)
			continue
		}
		out = append(out, Unresolved(name))
	}
	return out
}

type modelType struct {
	model *Model
	decl  *TypeDecl
}

func (t *modelType) Name() string { return t.decl.Name }

func (t *modelType) Annotations() []Type {
	return t.model.annotationsOf(t.decl.Annotations)
}

func (t *modelType) Fields() []Field {
	out := make([]Field, 0, len(t.decl.Fields))
	for i := range t.decl.Fields {
		out = append(out, &modelField{model: t.model, decl: &t.decl.Fields[i]})
	}
	return out
}

func (t *modelType) Methods(filter func(Method) bool) []Method {
	out := make([]Method, 0, len(t.decl.Methods))
	for i := range t.decl.Methods {
		method := &modelMethod{owner: t, decl: &t.decl.Methods[i]}
		if filter != nil && !filter(method) {
			continue
		}
		out = append(out, method)
	}
	return out
}

func (t *modelType) TypesInSignature() []string {
	return dedupe(t.decl.Signature)
}

func (t *modelType) IsPartOfDomain(prefix string) bool {
	return IsPartOfDomain(t.decl.Name, prefix)
}

func (t *modelType) String() string { return t.decl.Name }

type modelField struct {
	model *Model
	decl  *FieldDecl
}

func (f *modelField) Name() string               { return f.decl.Name }
func (f *modelField) IsSynthetic() bool          { return f.decl.Synthetic }
func (f *modelField) TypesInSignature() []string { return dedupe(f.decl.Types) }

func (f *modelField) AnnotationTypes() []Type {
	return f.model.annotationsOf(f.decl.Annotations)
}

type modelMethod struct {
	owner *modelType
	decl  *MethodDecl
}

func (m *modelMethod) Name() string        { return m.decl.Name }
func (m *modelMethod) IsConstructor() bool { return m.decl.Constructor }
func (m *modelMethod) ParameterCount() int { return len(m.decl.Params) }

func (m *modelMethod) SignatureTypes(includeOwner bool) []Type {
	out := make([]Type, 0, len(m.decl.Returns)+1)
	if includeOwner && m.decl.Constructor {
		out = append(out, m.owner)
	}
	return append(out, m.owner.model.resolveAll(m.decl.Returns)...)
}

func (m *modelMethod) ParameterTypes() []Type {
	names := make([]string, 0, len(m.decl.Params))
	for _, p := range m.decl.Params {
		names = append(names, p.Type)
	}
	return m.owner.model.resolveAll(names)
}

func (m *modelMethod) AnnotationTypes() []Type {
	return m.owner.model.annotationsOf(m.decl.Annotations)
}

func (m *modelMethod) ParameterAnnotationTypes(index int) []Type {
	if index < 0 || index >= len(m.decl.Params) {
		return nil
	}
	return m.owner.model.annotationsOf(m.decl.Params[index].Annotations)
}

func (m *modelMethod) String() string {
	params := make([]string, 0, len(m.decl.Params))
	for _, p := range m.decl.Params {
		params = append(params, p.Type)
	}
	return m.decl.Name + "(" + strings.Join(params, ",") + ")"
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
