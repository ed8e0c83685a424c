package hint

import (
	"sort"

	"go.uber.org/zap"

	"github.com/seitarof/gen-hints/internal/typemodel"
)

// Collector is a Context that accumulates hint records in four buckets and
// returns them in a fixed order. A Collector belongs to one session and is
// not safe for concurrent use.
type Collector struct {
	typeSystem typemodel.TypeSystem
	logger     *zap.Logger

	buildTime  []Declaration
	resources  []Declaration
	reflection []Declaration
	proxies    []Declaration
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithLogger routes Log messages to logger at debug level.
func WithLogger(logger *zap.Logger) CollectorOption {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCollector creates an empty collector resolving names through ts.
func NewCollector(ts typemodel.TypeSystem, opts ...CollectorOption) *Collector {
	c := &Collector{typeSystem: ts, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Context = (*Collector)(nil)

func (c *Collector) TypeSystem() typemodel.TypeSystem {
	return c.typeSystem
}

func (c *Collector) Log(msg string) {
	c.logger.Debug(msg)
}

func (c *Collector) AddReflectiveAccess(typeName string, descriptor AccessDescriptor) {
	c.reflection = append(c.reflection, Declaration{
		Kind:           KindReflection,
		DependantTypes: []DependantType{{Name: typeName, Access: descriptor}},
	})
	if descriptor.RequiresResourceAccess() {
		c.resources = append(c.resources, Declaration{
			Kind: KindResource,
			Resources: &ResourcesDescriptor{
				Patterns: []string{typemodel.ResourcePath(typeName)},
			},
		})
	}
}

func (c *Collector) AddReflectiveAccessFlags(typeName string, flags ...Flag) {
	c.AddReflectiveAccess(typeName, NewAccessDescriptor(FromFlags(flags...)))
}

// AddReflectiveAccessHierarchy uses its own visited set, independent of any
// processing session. Unknown type names register nothing.
func (c *Collector) AddReflectiveAccessHierarchy(typeName string, bits AccessBits) []string {
	added := map[string]bool{}
	if t := c.typeSystem.Resolve(typeName); t != nil {
		c.registerHierarchy(t, added, bits)
	}

	out := make([]string, 0, len(added))
	for name := range added {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c *Collector) registerHierarchy(t typemodel.Type, visited map[string]bool, bits AccessBits) {
	name := t.Name()
	if visited[name] {
		return
	}
	visited[name] = true
	c.AddReflectiveAccess(name, NewAccessDescriptor(bits))

	for _, related := range t.TypesInSignature() {
		if rt := c.typeSystem.Resolve(related); rt != nil {
			c.registerHierarchy(rt, visited, bits)
		}
	}
}

func (c *Collector) HasReflectionConfigFor(typeName string) bool {
	for _, d := range c.reflection {
		if d.HasDependantType(typeName) {
			return true
		}
	}
	return false
}

func (c *Collector) AddProxy(interfaces ...string) bool {
	c.proxies = append(c.proxies, Declaration{
		Kind:  KindProxy,
		Proxy: &ProxyDescriptor{Interfaces: append([]string(nil), interfaces...)},
	})
	return true
}

func (c *Collector) AddResourceBundle(name string) {
	c.resources = append(c.resources, Declaration{
		Kind:      KindResource,
		Resources: &ResourcesDescriptor{Patterns: []string{name}, Bundle: true},
	})
}

func (c *Collector) InitializeAtBuildTime(t typemodel.Type) {
	c.buildTime = append(c.buildTime, Declaration{
		Kind:           KindBuildTime,
		Initialization: &InitializationDescriptor{BuildTimeClasses: []string{t.Name()}},
	})
}

// Hints returns build-time, resource, reflection and proxy records, in that
// order, each bucket in insertion order.
func (c *Collector) Hints() []Declaration {
	out := make([]Declaration, 0, len(c.buildTime)+len(c.resources)+len(c.reflection)+len(c.proxies))
	out = append(out, c.buildTime...)
	out = append(out, c.resources...)
	out = append(out, c.reflection...)
	out = append(out, c.proxies...)
	return out
}
