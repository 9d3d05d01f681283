// Package binding connects handler parameters to pipes: each parameter names
// a pipe token, the binder resolves the pipe from a request scope and applies
// its transform, and the dispatcher invokes the handler only once every
// parameter is bound.
package binding

import (
	"context"
	"fmt"

	"github.com/knoxlab/bindery/container"
	"github.com/knoxlab/bindery/pipe"
)

// Param binds one handler parameter position to a pipe.
type Param struct {
	// Name identifies the parameter in error context.
	Name string

	// Pipe is the container token of the pipe producing the bound value.
	Pipe container.Token

	// Source extracts the raw input handed to the pipe; nil means the
	// pipe takes no raw input.
	Source Source
}

// Binder resolves pipes from a container scope and applies them to raw
// invocation input. One binder serves one invocation.
type Binder struct {
	scope *container.Container
	stubs map[container.Token]pipe.Pipe
}

// NewBinder creates a binder over the given (request) scope.
func NewBinder(scope *container.Container) *Binder {
	return &Binder{scope: scope}
}

// Stub replaces the pipe for token on this binder only. A stubbed token is
// never resolved from the container, so no providers are needed for it.
func (b *Binder) Stub(token container.Token, p pipe.Pipe) {
	if b.stubs == nil {
		b.stubs = make(map[container.Token]pipe.Pipe)
	}
	b.stubs[token] = p
}

// Bind produces the bound value for one parameter: resolve the pipe, then
// transform the raw input extracted from the invocation.
//
// A resolution or construction failure is wrapped in *BindingError with the
// handler, parameter and pipe token — never swallowed, never replaced by a
// default value. Transform failures propagate unwrapped.
func (b *Binder) Bind(ctx context.Context, p Param, inv *Invocation) (any, error) {
	pp := b.stubs[p.Pipe]
	if pp == nil {
		v, err := b.scope.Resolve(p.Pipe)
		if err != nil {
			return nil, &BindingError{Handler: inv.Handler, Param: p.Name, Pipe: p.Pipe, Err: err}
		}
		typed, ok := v.(pipe.Pipe)
		if !ok {
			return nil, &BindingError{
				Handler: inv.Handler,
				Param:   p.Name,
				Pipe:    p.Pipe,
				Err:     fmt.Errorf("token resolved to %T, which is not a pipe", v),
			}
		}
		pp = typed
	}

	var raw any
	if p.Source != nil {
		raw = p.Source(inv)
	}
	return pp.Transform(ctx, raw)
}
