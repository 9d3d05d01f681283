package binding_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knoxlab/bindery/binding"
	"github.com/knoxlab/bindery/container"
	"github.com/knoxlab/bindery/pipe"
)

func valuePipe(v any) container.Factory {
	return func(r *container.Resolver) (any, error) {
		return pipe.Func(func(context.Context, any) (any, error) { return v, nil }), nil
	}
}

func TestDispatch_BindsAllParamsInOrder(t *testing.T) {
	root := container.New()
	root.Bind("pipe.first", valuePipe("one"))
	root.Bind("pipe.second", valuePipe("two"))

	d := binding.NewDispatcher()
	ep := binding.Endpoint{
		Name: "PairController.Show",
		Params: []binding.Param{
			{Name: "a", Pipe: "pipe.first"},
			{Name: "b", Pipe: "pipe.second"},
		},
		Handler: func(_ context.Context, args []any) (any, error) {
			return []any{args[0], args[1]}, nil
		},
	}

	out, err := d.Dispatch(context.Background(), root, ep, binding.NewInvocation(ep.Name))
	require.NoError(t, err)
	assert.Equal(t, []any{"one", "two"}, out)
}

func TestDispatch_HandlerNeverInvokedOnBindFailure(t *testing.T) {
	root := container.New()
	registerCurrentUser(root)

	invoked := false
	ep := binding.Endpoint{
		Name:   "ProfileController.Show",
		Params: []binding.Param{userParam},
		Handler: func(_ context.Context, args []any) (any, error) {
			invoked = true
			return nil, nil
		},
	}

	d := binding.NewDispatcher()
	// Root has no request provider: binding must fail before the handler.
	_, err := d.Dispatch(context.Background(), root, ep, binding.NewInvocation(ep.Name))

	require.Error(t, err)
	assert.False(t, invoked, "handler must not run when a parameter fails to bind")

	var be *binding.BindingError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, err.Error(), "request")
	assert.Contains(t, err.Error(), "pipe.currentUser")
}

func TestDispatch_FirstFailingParamAborts(t *testing.T) {
	root := container.New()
	// Only the second pipe exists; the first is unregistered.
	root.Bind("pipe.second", valuePipe("two"))

	secondBound := false
	d := binding.NewDispatcher()
	ep := binding.Endpoint{
		Name: "PairController.Show",
		Params: []binding.Param{
			{Name: "a", Pipe: "pipe.missing"},
			{Name: "b", Pipe: "pipe.second", Source: func(inv *binding.Invocation) any {
				secondBound = true
				return nil
			}},
		},
		Handler: func(_ context.Context, args []any) (any, error) { return nil, nil },
	}

	_, err := d.Dispatch(context.Background(), root, ep, binding.NewInvocation(ep.Name))
	require.Error(t, err)
	assert.False(t, secondBound, "later params must not be bound after a failure")
}

func TestDispatch_PipeOverride_NoProvidersNeeded(t *testing.T) {
	// Entirely empty container: the override replaces resolution outright.
	root := container.New()

	d := binding.NewDispatcher()
	d.When("ProfileController.Show").
		Needs(pipe.TokenCurrentUser).
		GiveValue(pipe.User{ID: 42, Name: "Stubbed"})

	ep := binding.Endpoint{
		Name:   "ProfileController.Show",
		Params: []binding.Param{userParam},
		Handler: func(_ context.Context, args []any) (any, error) {
			return args[0], nil
		},
	}

	out, err := d.Dispatch(context.Background(), root, ep, binding.NewInvocation(ep.Name))
	require.NoError(t, err)
	assert.Equal(t, pipe.User{ID: 42, Name: "Stubbed"}, out)
}

func TestDispatch_OverrideScopedToHandler(t *testing.T) {
	root := container.New()
	registerCurrentUser(root)

	d := binding.NewDispatcher()
	d.When("OtherController.Show").
		Needs(pipe.TokenCurrentUser).
		GiveValue(pipe.User{ID: 42, Name: "Stubbed"})

	ep := binding.Endpoint{
		Name:    "ProfileController.Show",
		Params:  []binding.Param{userParam},
		Handler: func(_ context.Context, args []any) (any, error) { return args[0], nil },
	}

	// The override targets a different handler; this one still resolves
	// from the container and fails on the missing request provider.
	_, err := d.Dispatch(context.Background(), root, ep, binding.NewInvocation(ep.Name))
	require.Error(t, err)
}

func TestDispatch_SetsHandlerOnInvocation(t *testing.T) {
	root := container.New()
	d := binding.NewDispatcher()
	ep := binding.Endpoint{
		Name:    "BareController.Ping",
		Handler: func(_ context.Context, args []any) (any, error) { return "pong", nil },
	}

	inv := &binding.Invocation{ID: "fixed"}
	out, err := d.Dispatch(context.Background(), root, ep, inv)
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
	assert.Equal(t, "BareController.Ping", inv.Handler)
}
