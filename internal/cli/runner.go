package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seitarof/gen-hints/internal/generator"
	"github.com/seitarof/gen-hints/internal/hint"
	"github.com/seitarof/gen-hints/internal/matcher"
	"github.com/seitarof/gen-hints/internal/parser"
	"github.com/seitarof/gen-hints/internal/processor"
	"github.com/seitarof/gen-hints/internal/resolver"
	"github.com/seitarof/gen-hints/internal/typemodel"
)

// Runner orchestrates loading, traversal and generation.
type Runner interface {
	Run(ctx context.Context, cfg *Config) error
}

type runnerImpl struct {
	parser    parser.Parser
	generator generator.Generator
	logger    *zap.Logger
	stderr    io.Writer
}

// NewRunner creates a default runner implementation. The summary is written
// to stderr.
func NewRunner(p parser.Parser, g generator.Generator, logger *zap.Logger, stderr io.Writer) Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &runnerImpl{parser: p, generator: g, logger: logger, stderr: stderr}
}

// rootGroup is one independent capturing session.
type rootGroup struct {
	label   string
	matcher matcher.TypeMatcher
}

type groupResult struct {
	roots   int
	visited int
	hints   []hint.Declaration
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) error {
	ts, err := r.loadTypeSystem(cfg)
	if err != nil {
		return err
	}

	p, err := buildProcessor(cfg)
	if err != nil {
		return err
	}

	groups, err := rootGroups(cfg)
	if err != nil {
		return err
	}

	results := make([]groupResult, len(groups))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, g := range groups {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.processGroup(p, ts, g)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("process roots: %w", err)
	}

	var (
		all     []hint.Declaration
		roots   int
		visited int
	)
	for i, res := range results {
		if res.roots == 0 {
			r.logger.Warn("gen-hints: warning: root pattern matched no types, skipped",
				zap.String("roots", groups[i].label))
		}
		roots += res.roots
		visited += res.visited
		all = append(all, res.hints...)
	}

	if err := r.generator.Generate(cfg, all); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if cfg.Summary && r.stderr != nil {
		printSummary(r.stderr, summary{
			roots:   roots,
			visited: visited,
			counts:  generator.Counts(all),
			output:  cfg.Output,
			format:  cfg.Format,
		}, cfg.NoColor)
	}
	return nil
}

func (r *runnerImpl) processGroup(p *processor.TypeProcessor, ts typemodel.TypeSystem, g rootGroup) groupResult {
	logger := r.logger.With(zap.String("roots", g.label))
	session := p.UseTypeSystem(ts, hint.WithLogger(logger))

	var roots []typemodel.Type
	for t := range processor.Matching(g.matcher.Match)(ts) {
		roots = append(roots, t)
	}
	hints := session.ProcessTypes(roots...)

	logger.Debug("roots processed",
		zap.Int("roots", len(roots)),
		zap.Int("visited", session.Visited().Len()),
		zap.Int("hints", len(hints)))
	return groupResult{roots: len(roots), visited: session.Visited().Len(), hints: hints}
}

func (r *runnerImpl) loadTypeSystem(cfg *Config) (typemodel.TypeSystem, error) {
	var systems []typemodel.TypeSystem
	if cfg.ModelPath != "" {
		m, err := typemodel.LoadModelFile(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		systems = append(systems, m)
	}
	if len(cfg.Packages) > 0 {
		ts, err := r.parser.Load(cfg.Packages...)
		if err != nil {
			return nil, fmt.Errorf("load packages: %w", err)
		}
		systems = append(systems, ts)
	}
	if len(systems) == 0 {
		return nil, fmt.Errorf("nothing to load: set a model or packages")
	}
	return typemodel.Compose(systems...), nil
}

func rootGroups(cfg *Config) ([]rootGroup, error) {
	if !cfg.Parallel {
		m, err := matcher.NewTypeMatcher(cfg.Roots)
		if err != nil {
			return nil, fmt.Errorf("roots: %w", err)
		}
		return []rootGroup{{label: fmt.Sprintf("%q", cfg.Roots), matcher: m}}, nil
	}

	groups := make([]rootGroup, 0, len(cfg.Roots))
	for _, pattern := range cfg.Roots {
		m, err := matcher.NewTypeMatcher([]string{pattern})
		if err != nil {
			return nil, fmt.Errorf("roots: %w", err)
		}
		groups = append(groups, rootGroup{label: fmt.Sprintf("%q", pattern), matcher: m})
	}
	return groups, nil
}

// buildProcessor translates cfg into a configured processor. The processor
// is read-only afterwards and shared by all sessions.
func buildProcessor(cfg *Config) (*processor.TypeProcessor, error) {
	rules := resolver.DefaultRules(cfg.TypeAccess)
	if len(cfg.Resources) > 0 {
		m, err := matcher.NewTypeMatcher(cfg.Resources)
		if err != nil {
			return nil, fmt.Errorf("resources: %w", err)
		}
		rules = append([]resolver.Rule{&resolver.PatternAccessRule{
			Matcher: m,
			Access:  cfg.TypeAccess | hint.Resource,
		}}, rules...)
	}

	p := processor.New(
		hint.NewAccessDescriptor(cfg.TypeAccess),
		hint.NewAccessDescriptor(cfg.AnnotationAccess),
	).OnTypeDiscovered(resolver.New(rules...).Registrar()).
		WithInspectionFilter(processor.NewInspectionFilter(cfg.InspectionExclude...))
	if cfg.Name != "" {
		p.Named(cfg.Name)
	}

	if len(cfg.SkipTypes) > 0 {
		m, err := matcher.NewTypeMatcher(cfg.SkipTypes)
		if err != nil {
			return nil, fmt.Errorf("skip-types: %w", err)
		}
		p.SkipTypesMatching(m.Match)
	}
	if len(cfg.SkipFields) > 0 {
		m, err := matcher.NewMemberMatcher(cfg.SkipFields)
		if err != nil {
			return nil, fmt.Errorf("skip-fields: %w", err)
		}
		p.SkipFieldsMatching(m.MatchField)
	}
	if len(cfg.SkipMethods) > 0 {
		m, err := matcher.NewMemberMatcher(cfg.SkipMethods)
		if err != nil {
			return nil, fmt.Errorf("skip-methods: %w", err)
		}
		p.SkipMethodsMatching(m.MatchMethod)
	}
	if len(cfg.SkipAnnotations) > 0 {
		m, err := matcher.NewTypeMatcher(cfg.SkipAnnotations)
		if err != nil {
			return nil, fmt.Errorf("skip-annotations: %w", err)
		}
		p.SkipAnnotationsMatching(m.Match)
	}

	if cfg.SkipFieldInspection {
		p.SkipFieldInspection()
	}
	if cfg.SkipMethodInspection {
		p.SkipMethodInspection()
	}
	if cfg.SkipConstructorInspection {
		p.SkipConstructorInspection()
	}
	if cfg.SkipAnnotationInspection {
		p.SkipAnnotationInspection()
	}
	return p, nil
}
