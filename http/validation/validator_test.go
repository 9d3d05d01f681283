package validation_test

import (
	"testing"

	"github.com/knoxlab/bindery/http/validation"
)

func assertPasses(t *testing.T, data map[string]string, rules validation.Rules) {
	t.Helper()
	v := validation.Make(data, rules)
	if v.Fails() {
		t.Errorf("expected pass, got errors: %v", v.Errors().Bag)
	}
}

func assertFails(t *testing.T, data map[string]string, rules validation.Rules) *validation.Errors {
	t.Helper()
	v := validation.Make(data, rules)
	if v.Passes() {
		t.Errorf("expected failure for data %v with rules %v", data, rules)
	}
	return v.Errors()
}

func TestRequired(t *testing.T) {
	assertPasses(t, map[string]string{"name": "Alice"}, validation.Rules{"name": "required"})

	errs := assertFails(t, map[string]string{"name": ""}, validation.Rules{"name": "required"})
	if got := errs.First("name"); got != "The name field is required." {
		t.Errorf("message: got %q", got)
	}

	// Whitespace-only counts as missing.
	assertFails(t, map[string]string{"name": "   "}, validation.Rules{"name": "required"})
	// Absent key counts as missing.
	assertFails(t, map[string]string{}, validation.Rules{"name": "required"})
}

func TestNumericIntegerBoolean(t *testing.T) {
	assertPasses(t, map[string]string{"price": "19.99"}, validation.Rules{"price": "numeric"})
	assertFails(t, map[string]string{"price": "abc"}, validation.Rules{"price": "numeric"})

	assertPasses(t, map[string]string{"age": "30"}, validation.Rules{"age": "integer"})
	assertFails(t, map[string]string{"age": "30.5"}, validation.Rules{"age": "integer"})

	assertPasses(t, map[string]string{"active": "true"}, validation.Rules{"active": "boolean"})
	assertPasses(t, map[string]string{"active": "0"}, validation.Rules{"active": "boolean"})
	assertFails(t, map[string]string{"active": "maybe"}, validation.Rules{"active": "boolean"})
}

func TestEmail(t *testing.T) {
	assertPasses(t, map[string]string{"email": "alice@example.com"}, validation.Rules{"email": "email"})

	errs := assertFails(t, map[string]string{"email": "not-an-email"}, validation.Rules{"email": "email"})
	if got := errs.First("email"); got != "The email must be a valid email address." {
		t.Errorf("message: got %q", got)
	}
}

func TestURL(t *testing.T) {
	assertPasses(t, map[string]string{"site": "https://example.com"}, validation.Rules{"site": "url"})
	assertPasses(t, map[string]string{"site": "http://example.com"}, validation.Rules{"site": "url"})
	assertFails(t, map[string]string{"site": "example.com"}, validation.Rules{"site": "url"})
}

func TestLengthRules(t *testing.T) {
	assertPasses(t, map[string]string{"name": "Alice"}, validation.Rules{"name": "min:3"})
	assertFails(t, map[string]string{"name": "Al"}, validation.Rules{"name": "min:3"})

	assertPasses(t, map[string]string{"name": "Al"}, validation.Rules{"name": "max:5"})
	assertFails(t, map[string]string{"name": "Alexander"}, validation.Rules{"name": "max:5"})

	assertPasses(t, map[string]string{"code": "ABCD"}, validation.Rules{"code": "size:4"})
	assertFails(t, map[string]string{"code": "ABCDE"}, validation.Rules{"code": "size:4"})

	assertPasses(t, map[string]string{"bio": "hello"}, validation.Rules{"bio": "between:3,10"})
	assertFails(t, map[string]string{"bio": "hi"}, validation.Rules{"bio": "between:3,10"})
	assertFails(t, map[string]string{"bio": "a very long bio"}, validation.Rules{"bio": "between:3,10"})
}

func TestMin_CountsRunesNotBytes(t *testing.T) {
	assertPasses(t, map[string]string{"name": "héllo"}, validation.Rules{"name": "min:5|max:5"})
}

func TestGteLte(t *testing.T) {
	assertPasses(t, map[string]string{"age": "18"}, validation.Rules{"age": "gte:18"})
	assertFails(t, map[string]string{"age": "17"}, validation.Rules{"age": "gte:18"})
	assertFails(t, map[string]string{"age": "abc"}, validation.Rules{"age": "gte:18"})

	assertPasses(t, map[string]string{"age": "65"}, validation.Rules{"age": "lte:65"})
	assertFails(t, map[string]string{"age": "66"}, validation.Rules{"age": "lte:65"})
}

func TestIn(t *testing.T) {
	rules := validation.Rules{"role": "in:admin,editor,viewer"}
	assertPasses(t, map[string]string{"role": "editor"}, rules)

	errs := assertFails(t, map[string]string{"role": "owner"}, rules)
	if got := errs.First("role"); got != "The selected role is invalid." {
		t.Errorf("message: got %q", got)
	}
}

func TestRegex(t *testing.T) {
	rules := validation.Rules{"slug": `regex:^[a-z0-9-]+$`}
	assertPasses(t, map[string]string{"slug": "my-post-1"}, rules)
	assertFails(t, map[string]string{"slug": "My Post!"}, rules)
}

func TestBailsOnFirstFailurePerField(t *testing.T) {
	errs := assertFails(t, map[string]string{"age": ""}, validation.Rules{"age": "required|integer|gte:18"})
	if got := len(errs.Bag["age"]); got != 1 {
		t.Errorf("expected 1 message after bail, got %d: %v", got, errs.Bag["age"])
	}
	if got := errs.First("age"); got != "The age field is required." {
		t.Errorf("message: got %q", got)
	}
}

func TestMultipleFieldsCollectIndependently(t *testing.T) {
	errs := assertFails(t, map[string]string{"email": "bad"}, validation.Rules{
		"name":  "required",
		"email": "required|email",
	})
	if errs.First("name") == "" {
		t.Error("expected error for name")
	}
	if errs.First("email") == "" {
		t.Error("expected error for email")
	}
}

func TestErrorsHelpers(t *testing.T) {
	v := validation.Make(map[string]string{"name": "Alice"}, validation.Rules{"name": "required"})
	if v.Fails() {
		t.Fatal("should pass")
	}
	if v.Errors().Has() {
		t.Error("Has should be false on pass")
	}
	if v.Errors().First("name") != "" {
		t.Error("First should be empty on pass")
	}
}
