package container

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

var (
	ErrNotBound           = errors.New("container: no binding registered")
	ErrCircularDependency = errors.New("container: circular dependency")
	ErrTypeMismatch       = errors.New("container: resolved value has the wrong type")
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a concrete value from the container.
type Factory func(c *Container) (any, error)

type binding struct {
	factory   Factory
	singleton bool
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container — mirrors Laravel's Illuminate\Container\Container.
//
// Bindings are registered and resolved while the application starts; resolved
// singletons are shared freely afterwards.
type Container struct {
	mu sync.RWMutex

	bindings  map[string]*binding
	instances map[string]any
	aliases   map[string]string

	// abstracts currently being built, outermost first
	buildStack []string

	// loads a deferred provider for an unbound abstract
	loader func(abstract string) (bool, error)

	terminating []func(ctx context.Context) error
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
	}
	// Bind the container to itself — like Laravel's $app->instance()
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory, run on every Make.
//
//	// Laravel: $app->bind(Request::class, fn($app) => ...)
func (c *Container) Bind(abstract string, factory Factory) {
	c.bind(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	// Laravel: $app->singleton('forms', fn($app) => Registry::load(...))
//	c.Singleton("forms", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return forms.LoadFile(cfg.Validation.FormsFile)
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.bind(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton.
//
//	// Laravel: $app->instance(Config::class, $config)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

func (c *Container) bind(abstract string, factory Factory, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	// A rebound singleton is rebuilt with the new factory.
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// Alias registers an alternative name for an abstract.
//
//	// Laravel: $app->alias('unique', UniqueChecker::class)
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container.
//
//	// Laravel: $app->make('forms')
//	v, err := c.Make("forms")
func (c *Container) Make(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	inst, ok := c.instances[key]
	c.mu.RUnlock()
	if ok {
		return inst, nil
	}

	b, err := c.lookup(key)
	if err != nil {
		return nil, err
	}

	if slices.Contains(c.buildStack, key) {
		chain := append(slices.Clone(c.buildStack), key)
		return nil, fmt.Errorf("%w: %v", ErrCircularDependency, chain)
	}
	c.buildStack = append(c.buildStack, key)
	instance, err := b.factory(c)
	c.buildStack = c.buildStack[:len(c.buildStack)-1]
	if err != nil {
		return nil, fmt.Errorf("container: resolving [%s]: %w", abstract, err)
	}

	if b.singleton {
		c.mu.Lock()
		c.instances[key] = instance
		c.mu.Unlock()
	}
	return instance, nil
}

// lookup finds the binding for key, loading a deferred provider if needed.
func (c *Container) lookup(key string) (*binding, error) {
	c.mu.RLock()
	b, ok := c.bindings[key]
	loader := c.loader
	c.mu.RUnlock()
	if ok {
		return b, nil
	}

	if loader != nil {
		loaded, err := loader(key)
		if err != nil {
			return nil, err
		}
		if loaded {
			c.mu.RLock()
			b, ok = c.bindings[key]
			c.mu.RUnlock()
			if ok {
				return b, nil
			}
		}
	}
	return nil, fmt.Errorf("%w for [%s]", ErrNotBound, key)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
//
//	// Laravel: $app->bound('db')
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the abstract has been resolved at least once.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// canonical resolves an alias to its canonical key.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

func (c *Container) setLoader(fn func(abstract string) (bool, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loader = fn
}

// ── Termination ───────────────────────────────────────────────────────────────

// Terminating registers a callback run by Terminate, in reverse order of
// registration.
//
//	// Laravel: $app->terminating(fn() => ...)
func (c *Container) Terminating(fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.terminating = append(c.terminating, fn)
}

// Terminate runs every terminating callback and joins their errors.
func (c *Container) Terminate(ctx context.Context) error {
	c.mu.Lock()
	cbs := c.terminating
	c.terminating = nil
	c.mu.Unlock()

	var errs []error
	for _, fn := range slices.Backward(cbs) {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	// Instead of: v, err := c.Make("db"); pool := v.(*pgxpool.Pool)
//	// Write:      pool, err := container.Resolve[*pgxpool.Pool](c, "db")
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Make(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] is %T, want %v", ErrTypeMismatch, abstract, instance, reflect.TypeFor[T]())
	}
	return typed, nil
}

// MustResolve is Resolve for bindings that must exist; it panics on error.
func MustResolve[T any](c *Container, abstract string) T {
	v, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return v
}
