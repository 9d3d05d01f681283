package container

// ── ServiceProvider ───────────────────────────────────────────────────────────

// ServiceProvider groups related registrations into a bootable unit.
//
// Register binds services into the container and must not resolve other
// bindings; Boot runs after all providers are registered, so resolving is
// safe there.
type ServiceProvider interface {
	Register(app *Container) error

	// Boot is called after all providers are registered.
	Boot(app *Container) error

	// Provides returns the tokens this provider registers. Only consulted
	// for deferred providers.
	Provides() []Token

	// IsDeferred reports whether registration should be delayed until one
	// of the Provides() tokens is first resolved.
	IsDeferred() bool
}

// BaseProvider is an embeddable no-op implementation of everything except
// Register. Embed it and override what you need.
type BaseProvider struct{}

func (BaseProvider) Boot(*Container) error { return nil }
func (BaseProvider) Provides() []Token     { return nil }
func (BaseProvider) IsDeferred() bool      { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) ones.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[Token]ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[Token]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers register immediately; deferred
// ones install lazy bindings for their Provides() tokens and register for
// real on first resolution.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, token := range provider.Provides() {
			r.deferred[token] = provider
		}
		r.interceptDeferred(provider)
		return nil
	}

	if err := provider.Register(r.app); err != nil {
		return err
	}
	r.eager = append(r.eager, provider)

	if r.booted {
		return provider.Boot(r.app)
	}
	return nil
}

// interceptDeferred installs a lazy binding per deferred token: the first
// resolution registers (and, if needed, boots) the real provider, then
// resolves the token against its fresh binding.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, token := range provider.Provides() {
		tok := token // capture
		r.app.Bind(tok, func(res *Resolver) (any, error) {
			if _, pending := r.deferred[tok]; pending {
				if err := provider.Register(r.app); err != nil {
					return nil, err
				}
				for _, t := range provider.Provides() {
					delete(r.deferred, t)
				}
				if r.booted {
					if err := provider.Boot(r.app); err != nil {
						return nil, err
					}
				}
			}
			// The provider re-bound tok; resolve with a fresh chain.
			return res.Scope().Resolve(tok)
		})
	}
}

// Boot calls Boot on all eager providers. Call after all providers have been
// registered; repeated calls are no-ops.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
