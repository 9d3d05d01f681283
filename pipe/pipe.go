// Package pipe defines the parameter transformation contract and the
// built-in pipes.
//
// A pipe turns the raw input of one handler parameter into its bound value.
// Pipes are constructed through the container with their dependencies
// already resolved; Transform consumes only what was injected at
// construction and never reaches back into the container. Resolution
// failures therefore surface during construction — before any Transform
// runs — where they carry the missing token and the requesting pipe.
package pipe

import "context"

// Pipe transforms a raw invocation value into a bound parameter value.
type Pipe interface {
	Transform(ctx context.Context, raw any) (any, error)
}

// Func adapts a plain function to the Pipe interface. Handy for stubs:
//
//	stub := pipe.Func(func(ctx context.Context, raw any) (any, error) {
//	    return pipe.User{ID: 42, Name: "Stubbed"}, nil
//	})
type Func func(ctx context.Context, raw any) (any, error)

func (f Func) Transform(ctx context.Context, raw any) (any, error) {
	return f(ctx, raw)
}
