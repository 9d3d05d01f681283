package binding

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/knoxlab/bindery/container"
)

// TokenRequest is the request-scoped token pipes with request dependencies
// resolve. The router adapter installs the wrapped request under it on every
// scope it derives; a harness that forgets to is exactly the
// missing-provider case the binder reports eagerly.
const TokenRequest container.Token = "request"

// Invocation carries the raw inputs of a single handler call. It is built
// once per dispatch and discarded with it.
type Invocation struct {
	// ID tags binder failures and audit entries from this call.
	ID string

	// Handler names the target operation, e.g. "ProfileController.Show".
	Handler string

	Headers http.Header
	Route   map[string]string
	Query   url.Values

	// Body is the decoded request body, as produced by the transport
	// adapter (a flat map for form input).
	Body any
}

// NewInvocation creates an empty invocation for handler.
func NewInvocation(handler string) *Invocation {
	return &Invocation{
		ID:      uuid.NewString(),
		Handler: handler,
		Headers: make(http.Header),
		Route:   make(map[string]string),
		Query:   url.Values{},
	}
}

// FromRequest captures the raw inputs of an HTTP request. Route parameters
// are supplied by the router adapter, which owns their extraction.
func FromRequest(handler string, r *http.Request, route map[string]string) *Invocation {
	if route == nil {
		route = make(map[string]string)
	}
	return &Invocation{
		ID:      uuid.NewString(),
		Handler: handler,
		Headers: r.Header,
		Route:   route,
		Query:   r.URL.Query(),
	}
}

// ── Sources ──────────────────────────────────────────────────────────────────

// Source extracts one parameter's raw input from the invocation. A nil
// Source feeds the pipe a nil raw value — for pipes that read the injected
// request directly.
type Source func(inv *Invocation) any

// FromHeader extracts a header value.
func FromHeader(name string) Source {
	return func(inv *Invocation) any { return inv.Headers.Get(name) }
}

// FromRoute extracts a URL route parameter.
func FromRoute(name string) Source {
	return func(inv *Invocation) any { return inv.Route[name] }
}

// FromQuery extracts a query-string value.
func FromQuery(name string) Source {
	return func(inv *Invocation) any { return inv.Query.Get(name) }
}

// FromBody passes the decoded request body through.
func FromBody() Source {
	return func(inv *Invocation) any { return inv.Body }
}
