// Package resolver decides how each discovered type is registered, using a
// chain of rules where the first matching rule wins.
package resolver

import (
	"fmt"

	"github.com/seitarof/gen-hints/internal/hint"
	"github.com/seitarof/gen-hints/internal/processor"
	"github.com/seitarof/gen-hints/internal/typemodel"
)

// Resolver resolves registration plans for discovered types.
type Resolver interface {
	Resolve(t typemodel.Type) Plan
	// Registrar returns a processor callback applying the resolved plan.
	Registrar() processor.Registrar
}

// Rule tries to produce a plan for one type.
type Rule interface {
	Name() string
	Try(t typemodel.Type) (Plan, bool)
}

type resolverImpl struct {
	rules []Rule
}

// New builds resolver with rule chain.
func New(rules ...Rule) Resolver {
	return &resolverImpl{rules: rules}
}

func (r *resolverImpl) Resolve(t typemodel.Type) Plan {
	for _, rule := range r.rules {
		if plan, ok := rule.Try(t); ok {
			plan.Type = t.Name()
			plan.Rule = rule.Name()
			return plan
		}
	}
	return Plan{Type: t.Name(), Strategy: StrategySkip}
}

func (r *resolverImpl) Registrar() processor.Registrar {
	return func(t typemodel.Type, ctx hint.Context) {
		plan := r.Resolve(t)
		ctx.Log(fmt.Sprintf("resolver: %s -> %s (rule %q, access %s)", plan.Type, plan.Strategy, plan.Rule, plan.Access))
		Apply(plan, t, ctx)
	}
}

// Apply registers plan for t into ctx.
func Apply(plan Plan, t typemodel.Type, ctx hint.Context) {
	switch plan.Strategy {
	case StrategySkip:
		return
	case StrategyHierarchy:
		ctx.AddReflectiveAccessHierarchy(t.Name(), plan.Access)
		return
	}

	if plan.Access != hint.None {
		ctx.AddReflectiveAccess(t.Name(), hint.NewAccessDescriptor(plan.Access))
	}

	switch plan.Strategy {
	case StrategyBuildTime:
		ctx.InitializeAtBuildTime(t)
	case StrategyProxy:
		ctx.AddProxy(proxyInterfaces(t, ctx)...)
	case StrategyResourceBundle:
		ctx.AddResourceBundle(plan.Bundle)
	}
}

// proxyInterfaces lists t followed by the resolvable types it builds on.
func proxyInterfaces(t typemodel.Type, ctx hint.Context) []string {
	out := []string{t.Name()}
	for _, name := range t.TypesInSignature() {
		if ctx.TypeSystem().CanResolve(name) {
			out = append(out, name)
		}
	}
	return out
}
