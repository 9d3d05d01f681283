package binding

import (
	"context"
	"sync"

	"github.com/knoxlab/bindery/container"
	"github.com/knoxlab/bindery/pipe"
)

// HandlerFunc receives the bound parameter values in declaration order.
type HandlerFunc func(ctx context.Context, args []any) (any, error)

// Endpoint describes one dispatchable operation: its name, its parameter
// specs and the handler they feed.
type Endpoint struct {
	Name    string
	Params  []Param
	Handler HandlerFunc
}

// Dispatcher binds every parameter of an endpoint and invokes its handler.
// If any parameter fails to bind, the handler is never invoked and the
// failure propagates with its binder context intact.
//
// Pipe overrides installed via When survive across dispatches; the container
// scope is supplied per invocation. Overriding a handler's pipe here and
// overriding a provider in the container are deliberately independent
// mechanisms: the first stubs one handler's transform, the second swaps the
// dependency for everyone.
type Dispatcher struct {
	mu    sync.RWMutex
	stubs map[string]map[container.Token]pipe.Pipe
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{stubs: make(map[string]map[container.Token]pipe.Pipe)}
}

// Dispatch binds ep's parameters from inv against scope, then invokes the
// handler with the bound values.
func (d *Dispatcher) Dispatch(ctx context.Context, scope *container.Container, ep Endpoint, inv *Invocation) (any, error) {
	if inv.Handler == "" {
		inv.Handler = ep.Name
	}

	binder := NewBinder(scope)
	d.mu.RLock()
	for token, p := range d.stubs[ep.Name] {
		binder.Stub(token, p)
	}
	d.mu.RUnlock()

	args := make([]any, 0, len(ep.Params))
	for _, param := range ep.Params {
		v, err := binder.Bind(ctx, param, inv)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return ep.Handler(ctx, args)
}

// ── Pipe overrides ───────────────────────────────────────────────────────────

// When starts an override chain for a handler:
//
//	d.When("ProfileController.Show").
//	    Needs(pipe.TokenCurrentUser).
//	    GiveValue(pipe.User{ID: 42, Name: "Stubbed"})
func (d *Dispatcher) When(handler string) *OverrideBuilder {
	return &OverrideBuilder{dispatcher: d, handler: handler}
}

// OverrideBuilder implements the fluent pipe override API.
type OverrideBuilder struct {
	dispatcher *Dispatcher
	handler    string
	needs      container.Token
}

// Needs specifies which pipe token the handler's parameter would resolve.
func (b *OverrideBuilder) Needs(token container.Token) *OverrideBuilder {
	b.needs = token
	return b
}

// Give installs the stub pipe used instead of resolving the token.
func (b *OverrideBuilder) Give(p pipe.Pipe) {
	d := b.dispatcher
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.stubs[b.handler]; !ok {
		d.stubs[b.handler] = make(map[container.Token]pipe.Pipe)
	}
	d.stubs[b.handler][b.needs] = p
}

// GiveValue is shorthand for a stub that always binds a fixed value.
func (b *OverrideBuilder) GiveValue(value any) {
	b.Give(pipe.Func(func(context.Context, any) (any, error) {
		return value, nil
	}))
}
