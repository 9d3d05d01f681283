// Package validation provides rule-string input validation over flat maps.
//
// Rules are pipe-separated strings keyed by field name:
//
//	v := validation.Make(map[string]string{
//	    "name":  "Alice",
//	    "email": "alice@example.com",
//	}, validation.Rules{
//	    "name":  "required|min:2|max:100",
//	    "email": "required|email",
//	})
//
//	if v.Fails() {
//	    bag := v.Errors() // {"errors": {"field": ["message"]}}
//	}
//
// Available rules: required, string, numeric, integer, boolean, email, url,
// min:n, max:n, size:n, between:lo,hi, gte:n, lte:n, in:a,b,c, regex:pattern.
// Validation stops at the first failing rule per field.
package validation
