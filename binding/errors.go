package binding

import (
	"fmt"

	"github.com/knoxlab/bindery/container"
)

// BindingError wraps a pipe resolution or construction failure with the
// handler, parameter and pipe that required it. The underlying cause —
// usually a *container.MissingProviderError — stays reachable through
// errors.As, so callers see both where the binding failed and which token
// was missing.
//
// Transform faults are not wrapped here; a pipe bug propagates as itself.
type BindingError struct {
	Handler string
	Param   string
	Pipe    container.Token
	Err     error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding: handler %s, param %q, pipe [%s]: %v", e.Handler, e.Param, e.Pipe, e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }
