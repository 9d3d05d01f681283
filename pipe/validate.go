package pipe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/knoxlab/bindery/http/validation"
)

// Validate runs the rule-string validator over map input before passing it
// through unchanged. It has no injected dependencies; the rules are fixed at
// construction.
type Validate struct {
	rules validation.Rules
}

// NewValidate builds a validation pipe with the given rules.
func NewValidate(rules validation.Rules) *Validate {
	return &Validate{rules: rules}
}

// Transform validates raw, which must be a map[string]string of field
// values. Invalid input yields a *ValidationError carrying the full bag.
func (p *Validate) Transform(_ context.Context, raw any) (any, error) {
	data, ok := raw.(map[string]string)
	if !ok {
		return nil, fmt.Errorf("pipe: validate expects map[string]string input, got %T", raw)
	}
	v := validation.Make(data, p.rules)
	if v.Fails() {
		return nil, &ValidationError{Errors: v.Errors()}
	}
	return data, nil
}

// ValidationError reports failed input validation. The dispatch layer renders
// it as 422 with the error bag.
type ValidationError struct {
	Errors *validation.Errors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors.Bag))
	for field := range e.Errors.Bag {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e.Errors.First(field))
	}
	return "pipe: validation failed: " + strings.Join(parts, "; ")
}
