// Package parser exposes Go packages as a typemodel.TypeSystem.
//
// Every package level named type becomes a type named "import/path.Name".
// Marker comments of the form "// +hint:Audited,Retained" on types, fields
// and methods, as well as `hint:"Audited"` struct tags, play the role of
// annotations. Package funcs named New<Type>... that return the type are
// reported as its constructors.
package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule

// Parser loads Go packages.
type Parser interface {
	Load(patterns ...string) (*TypeSystem, error)
}

// Option configures a Parser.
type Option func(*parserImpl)

// WithDir sets the directory packages are resolved from.
func WithDir(dir string) Option {
	return func(p *parserImpl) { p.dir = dir }
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(p *parserImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithAllowErrors keeps going when packages have errors, logging them as
// warnings. Types of broken packages may be incomplete.
func WithAllowErrors() Option {
	return func(p *parserImpl) { p.allowErrors = true }
}

type parserImpl struct {
	dir         string
	allowErrors bool
	logger      *zap.Logger

	mu    sync.Mutex
	cache map[string]*TypeSystem
}

// New returns default parser.
func New(opts ...Option) Parser {
	p := &parserImpl{logger: zap.NewNop(), cache: map[string]*TypeSystem{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load type checks the packages matching patterns. Results are cached per
// pattern list.
func (p *parserImpl) Load(patterns ...string) (*TypeSystem, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no package patterns given")
	}

	key := strings.Join(patterns, " ")
	p.mu.Lock()
	defer p.mu.Unlock()
	if cached, ok := p.cache[key]; ok {
		return cached, nil
	}

	cfg := &packages.Config{Mode: loadMode, Dir: p.dir}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages %q: %w", key, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("packages %q not found", key)
	}

	if err := packageErrors(pkgs); err != nil {
		if !p.allowErrors {
			return nil, err
		}
		for _, e := range err.(*multierror.Error).Errors {
			p.logger.Warn("gen-hints: package error ignored", zap.Error(e))
		}
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	ix := newIndexer()
	for _, pkg := range pkgs {
		if pkg.Types == nil || pkg.TypesInfo == nil {
			p.logger.Warn("gen-hints: type info unavailable, skipped", zap.String("package", pkg.PkgPath))
			continue
		}
		ix.index(pkg)
	}

	ts := ix.build()
	p.logger.Debug("packages loaded",
		zap.Strings("patterns", patterns),
		zap.Int("packages", len(pkgs)),
		zap.Int("types", ts.Len()))
	p.cache[key] = ts
	return ts, nil
}

// packageErrors collects the errors of all packages into one
// *multierror.Error, or returns nil.
func packageErrors(pkgs []*packages.Package) error {
	var result *multierror.Error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			result = multierror.Append(result, fmt.Errorf("package %q: %w", pkg.PkgPath, e))
		}
	}
	if result == nil {
		return nil
	}
	return result
}
