package container

import (
	"fmt"
	"strings"
)

// MissingProviderError reports a token with no registered provider. It is
// raised at the first resolution attempt (or by Verify, before any factory
// runs) and names both the token and the factory that required it, so the
// caller can fix the configuration without guessing from an unrelated stack
// frame.
type MissingProviderError struct {
	// Token is the unresolvable dependency.
	Token Token

	// RequiredBy is the token whose factory asked for it; empty when the
	// token was resolved directly.
	RequiredBy Token
}

func (e *MissingProviderError) Error() string {
	if e.RequiredBy != "" {
		return fmt.Sprintf("container: no provider registered for [%s] (required by [%s])", e.Token, e.RequiredBy)
	}
	return fmt.Sprintf("container: no provider registered for [%s]", e.Token)
}

// CycleError reports a dependency cycle in the token graph. Cycles are
// rejected explicitly rather than left to overflow the stack.
type CycleError struct {
	// Chain is the resolution path, ending with the token that closed
	// the cycle.
	Chain []Token
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, t := range e.Chain {
		parts[i] = string(t)
	}
	return fmt.Sprintf("container: dependency cycle: %s", strings.Join(parts, " -> "))
}
