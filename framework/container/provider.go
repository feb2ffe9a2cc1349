package container

import (
	"context"
	"fmt"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Register binds factories and must not resolve anything. Boot runs after
// every eager provider is registered and may resolve freely; an error from
// Boot stops the application from starting.
//
//	type FormsServiceProvider struct{ container.BaseProvider }
//
//	func (p *FormsServiceProvider) Register(app *container.Container) {
//	    app.Singleton("forms", loadForms)
//	}
//
//	func (p *FormsServiceProvider) Boot(ctx context.Context, app *container.Container) error {
//	    _, err := app.Make("forms") // fail fast on a broken forms file
//	    return err
//	}
type ServiceProvider interface {
	Register(app *Container)
	Boot(ctx context.Context, app *Container) error

	// Provides lists the abstracts a deferred provider registers.
	//
	//	// Laravel: public function provides(): array { return ['db']; }
	Provides() []string

	// IsDeferred returns true if the provider is registered on first
	// resolution of one of its Provides() abstracts.
	//
	//	// Laravel: implements DeferrableProvider
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(context.Context, *Container) error { return nil }
func (p *BaseProvider) Provides() []string                     { return nil }
func (p *BaseProvider) IsDeferred() bool                       { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders, loading deferred
// ones on demand.
//
// It mirrors Laravel's Application::registerConfiguredProviders and
// Application::bootProviders.
type ProviderRegistry struct {
	app        *Container
	ctx        context.Context
	loaded     []ServiceProvider
	deferred   map[string]ServiceProvider // abstract → provider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	r := &ProviderRegistry{
		app:        app,
		ctx:        context.Background(),
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
	app.setLoader(r.load)
	return r
}

// Register adds a provider and calls its Register method unless it is
// deferred. A provider registered after Boot is booted immediately.
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
		}
		return nil
	}

	r.registered[provider] = true
	provider.Register(r.app)
	r.loaded = append(r.loaded, provider)

	if r.booted {
		return provider.Boot(r.ctx, r.app)
	}
	return nil
}

// load registers the deferred provider for abstract and reports whether one
// was found. It is booted now if the registry has booted, or with the eager
// providers otherwise.
func (r *ProviderRegistry) load(abstract string) (bool, error) {
	provider, ok := r.deferred[abstract]
	if !ok {
		return false, nil
	}
	for _, a := range provider.Provides() {
		delete(r.deferred, a)
	}

	r.registered[provider] = true
	provider.Register(r.app)
	r.loaded = append(r.loaded, provider)
	if r.booted {
		if err := provider.Boot(r.ctx, r.app); err != nil {
			return true, fmt.Errorf("container: booting provider for [%s]: %w", abstract, err)
		}
	}
	return true, nil
}

// Boot calls Boot on every loaded provider in registration order, stopping at
// the first error. ctx is also handed to deferred providers booted later.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot(ctx context.Context) error {
	if r.booted {
		return nil
	}
	r.booted = true
	r.ctx = ctx
	for _, provider := range r.loaded {
		if err := provider.Boot(ctx, r.app); err != nil {
			return fmt.Errorf("container: booting %T: %w", provider, err)
		}
	}
	return nil
}

// Booted returns true if Boot has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns every provider whose Register has run.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.loaded }
