package container

// ── Declarative construction ──────────────────────────────────────────────────

// Provider declares what a token resolves to: a pre-built value, or a
// factory with a lifetime and optional declared dependencies.
type Provider struct {
	// Value is used when Factory is nil.
	Value any

	Factory  Factory
	Lifetime Lifetime

	// Needs lists the tokens the factory resolves; Verify checks them.
	Needs []Token
}

// Value is shorthand for a pre-built instance Provider.
func Value(v any) Provider {
	return Provider{Value: v}
}

type registration struct {
	token    Token
	provider Provider
}

type options struct {
	providers []registration
	overrides []registration
}

// Option configures New.
type Option func(*options)

// WithProvider appends an ordered (token, provider) registration.
func WithProvider(token Token, p Provider) Option {
	return func(o *options) {
		o.providers = append(o.providers, registration{token, p})
	}
}

// WithOverride replaces an existing binding by token after all WithProvider
// registrations have been applied. Used to swap a real binding for a stub in
// test harnesses.
func WithOverride(token Token, p Provider) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, registration{token, p})
	}
}
