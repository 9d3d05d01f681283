package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ── Errors ───────────────────────────────────────────────────────────────────

// Errors holds validation failures per field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has reports whether any field failed.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first message for a field, or "".
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules maps field names to pipe-separated rule strings.
// e.g. Rules{"email": "required|email", "age": "required|numeric|gte:18"}
type Rules map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
}

// Make creates a Validator over data with the given rules.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{data: data, rules: rules, errors: &Errors{}}
}

// Fails runs validation and reports whether any rule failed.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and reports whether every rule passed.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core loop ────────────────────────────────────────────────────────────────

func (v *Validator) validate() {
	for field, ruleStr := range v.rules {
		value := v.data[field]
		for _, rule := range strings.Split(ruleStr, "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			name, param, _ := strings.Cut(rule, ":")
			// Stop at the first failing rule per field.
			if !v.applyRule(field, value, name, param) {
				break
			}
		}
	}
}

// applyRule returns true if the rule passes.
func (v *Validator) applyRule(field, value, rule, param string) bool {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			v.errors.add(field, fmt.Sprintf("The %s field is required.", field))
			return false
		}

	case "string":
		// Form input is already a string; nothing to check.

	case "numeric":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be a number.", field))
			return false
		}

	case "integer":
		if _, err := strconv.Atoi(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be an integer.", field))
			return false
		}

	case "boolean":
		switch strings.ToLower(value) {
		case "true", "false", "1", "0", "yes", "no":
		default:
			v.errors.add(field, fmt.Sprintf("The %s field must be true or false.", field))
			return false
		}

	case "email":
		if _, err := mail.ParseAddress(value); err != nil {
			v.errors.add(field, fmt.Sprintf("The %s must be a valid email address.", field))
			return false
		}

	case "url":
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			v.errors.add(field, fmt.Sprintf("The %s must be a valid URL.", field))
			return false
		}

	case "min":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			v.errors.add(field, fmt.Sprintf("The %s must be at least %d characters.", field, n))
			return false
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			v.errors.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, n))
			return false
		}

	case "size":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) != n {
			v.errors.add(field, fmt.Sprintf("The %s must be %d characters.", field, n))
			return false
		}

	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return true
		}
		min, _ := strconv.Atoi(strings.TrimSpace(lo))
		max, _ := strconv.Atoi(strings.TrimSpace(hi))
		n := utf8.RuneCountInString(value)
		if n < min || n > max {
			v.errors.add(field, fmt.Sprintf("The %s must be between %d and %d characters.", field, min, max))
			return false
		}

	case "gte":
		limit, _ := strconv.ParseFloat(param, 64)
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n < limit {
			v.errors.add(field, fmt.Sprintf("The %s must be greater than or equal to %s.", field, param))
			return false
		}

	case "lte":
		limit, _ := strconv.ParseFloat(param, 64)
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n > limit {
			v.errors.add(field, fmt.Sprintf("The %s must be less than or equal to %s.", field, param))
			return false
		}

	case "in":
		for _, allowed := range strings.Split(param, ",") {
			if value == strings.TrimSpace(allowed) {
				return true
			}
		}
		v.errors.add(field, fmt.Sprintf("The selected %s is invalid.", field))
		return false

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			v.errors.add(field, fmt.Sprintf("The %s format is invalid.", field))
			return false
		}
	}
	return true
}
