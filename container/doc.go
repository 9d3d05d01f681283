// Package container provides a token-keyed dependency-injection container
// with eager, located failure.
//
// # Overview
//
// The container maps opaque Tokens to providers (pre-built values or factory
// functions) and resolves them on demand, caching according to each
// binding's Lifetime. Its central contract is the failure mode: resolving a
// token with no registered provider fails immediately with
// *MissingProviderError naming the token and the factory that required it.
// The container never substitutes an empty placeholder and lets the fault
// surface later at an unrelated call site.
//
// # Container lifecycle
//
//  1. Create: c := container.New()  — once per application or test case
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()         — safe to resolve everything after this
//  4. Verify: c.Verify("request")   — check declared edges before serving
//  5. Per request: scope := c.Scope()
//
// # Bindings
//
//	// Transient — new instance every Resolve
//	c.Bind("clock", func(r *container.Resolver) (any, error) { return newClock(), nil })
//
//	// Singleton — created once, reference-stable
//	c.Singleton("logger", func(r *container.Resolver) (any, error) {
//	    cfg, err := container.Use[*config.Config](r, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return newLogger(cfg), nil
//	}, container.Needs("config"))
//
//	// Scoped — cached in the container Resolve was called on
//	c.Scoped("pipe.currentUser", factory, container.Needs("request"))
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw, err := c.Resolve("logger")                       // untyped
//	log, err := container.Resolve[*zap.Logger](c, "logger") // typed
//	log := container.MustResolve[*zap.Logger](c, "logger")  // boot-time wiring
//
// Inside a factory, resolve through the *Resolver so failures carry the
// requesting token and cycles are detected:
//
//	req, err := container.Use[*gohttp.Request](r, "request")
//
// # Overrides
//
// Registration is last-write-wins, and New accepts an explicit override set
// applied after the ordered registrations — the test-harness path for
// swapping a real binding for a stub:
//
//	c := container.New(
//	    container.WithProvider("audit", container.Provider{Factory: auditFactory, Lifetime: container.Singleton}),
//	    container.WithOverride("audit", container.Value(memoryRecorder)),
//	)
//
// # Service providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    app.Singleton("mailer", mailerFactory, container.Needs("config"))
//	    return nil
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// Deferred providers declare Provides() and IsDeferred() and are registered
// lazily, on the first resolution of one of their tokens.
package container
