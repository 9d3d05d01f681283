package routing

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/knoxlab/bindery/binding"
	"github.com/knoxlab/bindery/container"
	gohttp "github.com/knoxlab/bindery/http"
	"github.com/knoxlab/bindery/pipe"
)

// Mount registers a parameter-binding endpoint on the router.
//
// Each request derives a child scope of app, installs the wrapped request
// under binding.TokenRequest, captures the raw inputs into an Invocation and
// dispatches. A binding failure short-circuits the handler and is rendered
// with its full context — the missing token stays visible in the response.
func (r *Router) Mount(method, pattern string, app *container.Container, d *binding.Dispatcher, ep binding.Endpoint) {
	r.mux.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		wrapped := gohttp.NewRequest(req)

		scope := app.Scope()
		scope.Instance(binding.TokenRequest, wrapped)

		inv := binding.FromRequest(ep.Name, req, routeParams(req))
		inv.Body = wrapped.All()

		res := gohttp.NewResponse(w)
		out, err := d.Dispatch(req.Context(), scope, ep, inv)
		if err != nil {
			renderError(res, err)
			return
		}
		res.Success(out)
	}))
}

func renderError(res *gohttp.Response, err error) {
	var ve *pipe.ValidationError
	if errors.As(err, &ve) {
		res.ValidationError(ve.Errors)
		return
	}
	var be *binding.BindingError
	if errors.As(err, &be) {
		res.BindingFailure(be)
		return
	}
	res.ServerError(err.Error())
}

func routeParams(req *http.Request) map[string]string {
	out := make(map[string]string)
	if rc := chi.RouteContext(req.Context()); rc != nil {
		for i, key := range rc.URLParams.Keys {
			if key != "*" {
				out[key] = rc.URLParams.Values[i]
			}
		}
	}
	return out
}
