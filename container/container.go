package container

import (
	"fmt"
	"sync"
)

// ── Tokens & bindings ─────────────────────────────────────────────────────────

// Token is an opaque identifier naming a dependency. Every logical dependency
// gets exactly one token; the container uses it as its mapping key.
type Token string

// TokenContainer resolves to the container itself.
const TokenContainer Token = "container"

// Lifetime controls how a resolved instance is cached.
type Lifetime int8

const (
	// Transient builds a fresh instance on every resolution.
	Transient Lifetime = iota

	// Scoped caches the instance in the container Resolve was called on,
	// typically a request scope derived via Scope().
	Scoped

	// Singleton caches the instance in the container that owns the binding.
	Singleton
)

func (l Lifetime) String() string {
	switch l {
	case Scoped:
		return "scoped"
	case Singleton:
		return "singleton"
	default:
		return "transient"
	}
}

// Factory builds a concrete value. Dependencies must be resolved through r so
// failures are attributed to the requesting token and cycles are detected.
type Factory func(r *Resolver) (any, error)

// binding holds a registered factory, its lifetime and its declared
// dependency edges (used by Verify).
type binding struct {
	factory  Factory
	lifetime Lifetime
	needs    []Token
}

// BindOption customises a single registration.
type BindOption func(*binding)

// Needs declares the tokens a factory resolves, so Verify can check the
// configuration before any factory runs.
func Needs(tokens ...Token) BindOption {
	return func(b *binding) {
		b.needs = append(b.needs, tokens...)
	}
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a registry, resolver and cache for tokens and their instances.
//
// Registration is last-write-wins: re-registering a token replaces the
// previous binding and drops any cached instance. Resolution of an
// unregistered token fails immediately with *MissingProviderError naming the
// token and the factory that required it — the container never substitutes a
// placeholder value.
type Container struct {
	mu     sync.RWMutex
	parent *Container

	// token → binding
	bindings map[Token]*binding

	// token → pre-built value or cached singleton
	instances map[Token]any

	// token → cached value for Scoped bindings, per this container
	scoped map[Token]any

	// alias → canonical token
	aliases map[Token]Token
}

// New creates a container and applies the given ordered registrations,
// followed by any overrides.
func New(opts ...Option) *Container {
	c := newContainer(nil)
	c.Instance(TokenContainer, c)

	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, reg := range cfg.providers {
		c.Register(reg.token, reg.provider)
	}
	for _, reg := range cfg.overrides {
		c.Override(reg.token, reg.provider)
	}
	return c
}

func newContainer(parent *Container) *Container {
	return &Container{
		parent:    parent,
		bindings:  make(map[Token]*binding),
		instances: make(map[Token]any),
		scoped:    make(map[Token]any),
		aliases:   make(map[Token]Token),
	}
}

// Scope derives a child container for request-scoped registrations.
// Lookups fall back to the parent chain; Scoped factories cache their result
// in the child. The child is discarded with the request.
func (c *Container) Scope() *Container {
	return newContainer(c)
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory: a new instance per resolution.
func (c *Container) Bind(token Token, factory Factory, opts ...BindOption) {
	c.bind(token, factory, Transient, opts)
}

// Scoped registers a factory whose result is cached per resolution scope.
func (c *Container) Scoped(token Token, factory Factory, opts ...BindOption) {
	c.bind(token, factory, Scoped, opts)
}

// Singleton registers a factory whose result is cached after first resolution
// in the container owning the binding.
func (c *Container) Singleton(token Token, factory Factory, opts ...BindOption) {
	c.bind(token, factory, Singleton, opts)
}

// Instance registers a pre-built value.
func (c *Container) Instance(token Token, value any) {
	key := c.canonical(token)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, key)
	delete(c.scoped, key)
	c.instances[key] = value
}

// Register applies a Provider declaration: a value or a factory with a
// lifetime and declared dependencies.
func (c *Container) Register(token Token, p Provider) {
	if p.Factory == nil {
		c.Instance(token, p.Value)
		return
	}
	c.bind(token, p.Factory, p.Lifetime, []BindOption{Needs(p.Needs...)})
}

// Override replaces the binding for token, dropping any cached instance.
// Overriding a token that was never registered simply registers it.
func (c *Container) Override(token Token, p Provider) {
	c.Register(token, p)
}

// Alias registers an alternative name for a token.
func (c *Container) Alias(token, alias Token) {
	if token == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", token))
	}
	canonical := c.canonical(token)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = canonical
}

func (c *Container) bind(token Token, factory Factory, lifetime Lifetime, opts []BindOption) {
	key := c.canonical(token)
	b := &binding{factory: factory, lifetime: lifetime}
	for _, opt := range opts {
		opt(b)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.instances, key)
	delete(c.scoped, key)
	c.bindings[key] = b
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the value bound to token, building it via its factory if
// not yet cached. An unregistered token yields *MissingProviderError; a
// dependency cycle yields *CycleError.
func (c *Container) Resolve(token Token) (any, error) {
	r := &Resolver{scope: c}
	return r.Resolve(token)
}

// Resolver carries the chain of tokens currently being built, so nested
// resolutions inside factories report which token required the missing one
// and so cycles are rejected instead of recursing forever.
type Resolver struct {
	scope *Container
	chain []Token
}

// Scope returns the container this resolution started from.
func (r *Resolver) Scope() *Container { return r.scope }

// Resolve resolves token as a dependency of the factory currently running.
func (r *Resolver) Resolve(token Token) (any, error) {
	key := r.scope.canonical(token)

	// Walk the scope chain: at each level a pre-built or cached instance
	// wins, otherwise the nearest binding shadows outer ones.
	var b *binding
	var owner *Container
	for c := r.scope; c != nil; c = c.parent {
		c.mu.RLock()
		v, haveInstance := c.instances[key]
		bb, haveBinding := c.bindings[key]
		c.mu.RUnlock()
		if haveInstance {
			return v, nil
		}
		if haveBinding {
			b, owner = bb, c
			break
		}
	}
	if b == nil {
		return nil, &MissingProviderError{Token: key, RequiredBy: r.requiredBy()}
	}

	for _, seen := range r.chain {
		if seen == key {
			chain := append(append([]Token{}, r.chain...), key)
			return nil, &CycleError{Chain: chain}
		}
	}

	switch b.lifetime {
	case Singleton:
		return r.buildSingleton(key, b, owner)
	case Scoped:
		return r.buildScoped(key, b)
	default:
		return r.build(key, b)
	}
}

func (r *Resolver) buildSingleton(key Token, b *binding, owner *Container) (any, error) {
	v, err := r.build(key, b)
	if err != nil {
		return nil, err
	}
	owner.mu.Lock()
	defer owner.mu.Unlock()
	// A concurrent resolution may have won; keep the first instance so
	// repeated resolution stays reference-stable.
	if cached, ok := owner.instances[key]; ok {
		return cached, nil
	}
	owner.instances[key] = v
	return v, nil
}

func (r *Resolver) buildScoped(key Token, b *binding) (any, error) {
	r.scope.mu.RLock()
	cached, ok := r.scope.scoped[key]
	r.scope.mu.RUnlock()
	if ok {
		return cached, nil
	}
	v, err := r.build(key, b)
	if err != nil {
		return nil, err
	}
	r.scope.mu.Lock()
	defer r.scope.mu.Unlock()
	if cached, ok := r.scope.scoped[key]; ok {
		return cached, nil
	}
	r.scope.scoped[key] = v
	return v, nil
}

func (r *Resolver) build(key Token, b *binding) (any, error) {
	next := &Resolver{
		scope: r.scope,
		chain: append(append([]Token{}, r.chain...), key),
	}
	v, err := b.factory(next)
	if err != nil {
		switch err.(type) {
		case *MissingProviderError, *CycleError:
			// Already carries token context; do not re-wrap.
			return nil, err
		}
		return nil, fmt.Errorf("container: building [%s]: %w", key, err)
	}
	return v, nil
}

func (r *Resolver) requiredBy() Token {
	if len(r.chain) == 0 {
		return ""
	}
	return r.chain[len(r.chain)-1]
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Bound reports whether token has a registration in this container or any
// parent scope.
func (c *Container) Bound(token Token) bool {
	key := c.canonical(token)
	for cc := c; cc != nil; cc = cc.parent {
		cc.mu.RLock()
		_, hasBinding := cc.bindings[key]
		_, hasInstance := cc.instances[key]
		cc.mu.RUnlock()
		if hasBinding || hasInstance {
			return true
		}
	}
	return false
}

// Resolved reports whether token has a cached instance in this container.
func (c *Container) Resolved(token Token) bool {
	key := c.canonical(token)
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, inInstances := c.instances[key]
	_, inScoped := c.scoped[key]
	return inInstances || inScoped
}

// Forget removes the registration and cached instance for token.
func (c *Container) Forget(token Token) {
	key := c.canonical(token)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, key)
	delete(c.instances, key)
	delete(c.scoped, key)
}

// Flush resets the container to empty.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[Token]*binding)
	c.instances = make(map[Token]any)
	c.scoped = make(map[Token]any)
	c.aliases = make(map[Token]Token)
}

// Bindings returns the tokens registered in this container (not parents).
func (c *Container) Bindings() []Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Token, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	return out
}

// canonical resolves an alias to its canonical token, checking parent scopes.
func (c *Container) canonical(token Token) Token {
	for cc := c; cc != nil; cc = cc.parent {
		cc.mu.RLock()
		target, ok := cc.aliases[token]
		cc.mu.RUnlock()
		if ok {
			return target
		}
	}
	return token
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve is the typed counterpart of Container.Resolve.
//
//	req, err := container.Resolve[*gohttp.Request](scope, "request")
func Resolve[T any](c *Container, token Token) (T, error) {
	var zero T
	v, err := c.Resolve(token)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T, want %T", token, v, zero)
	}
	return typed, nil
}

// MustResolve is Resolve for boot-time wiring, where a failure means the
// application cannot start at all.
func MustResolve[T any](c *Container, token Token) T {
	v, err := Resolve[T](c, token)
	if err != nil {
		panic(err)
	}
	return v
}

// Use resolves a typed dependency inside a factory, preserving the build
// chain for error attribution.
func Use[T any](r *Resolver, token Token) (T, error) {
	var zero T
	v, err := r.Resolve(token)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T, want %T", token, v, zero)
	}
	return typed, nil
}
