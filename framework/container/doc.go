// Package container provides a Laravel-style IoC container and service
// provider registry.
//
// Go has no constructor reflection, so every binding is an explicit factory.
// Factories return an error instead of throwing, and the error surfaces from
// Make, Resolve and ProviderRegistry.Boot.
//
// # Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot(ctx), after which anything may be resolved
//  4. Serve requests
//  5. Shut down: c.Terminate(ctx) runs the Terminating callbacks
//
// # Bindings
//
//	// Transient: new instance every Make()
//	c.Bind("request-id", func(c *container.Container) (any, error) { return uuid(), nil })
//
//	// Singleton: created once, reused
//	c.Singleton("forms", func(c *container.Container) (any, error) {
//	    return forms.LoadFile("forms.yaml")
//	})
//
//	// Pre-built value and alias
//	c.Instance("config", cfg)
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw, err := c.Make("forms")
//	reg, err := container.Resolve[*forms.Registry](c, "forms")
//	reg := container.MustResolve[*forms.Registry](c, "forms")
//
// # Deferred Providers
//
// A deferred provider is registered the first time one of its abstracts is
// resolved. The service it builds is never touched if nothing asks for it.
//
//	type DatabaseServiceProvider struct{ container.BaseProvider }
//
//	func (p *DatabaseServiceProvider) IsDeferred() bool   { return true }
//	func (p *DatabaseServiceProvider) Provides() []string { return []string{"db"} }
//	func (p *DatabaseServiceProvider) Register(app *container.Container) {
//	    app.Singleton("db", connect) // only called on first app.Make("db")
//	}
package container
