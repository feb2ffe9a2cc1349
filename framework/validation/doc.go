// Package validation provides declarative, Laravel-style input validation.
//
// # Overview
//
// Rules are expressed as pipe-separated strings on a map of field names.
// A Validator evaluates them once against a flat record and produces two
// maps: the first error message of every failing field, and the original
// values of every field that passed.
//
// # Basic Usage
//
//	v := validation.Make(validation.Data{
//	    "name":  "Alice",
//	    "email": "alice@example.com",
//	}, validation.Rules{
//	    "name":  "required|min:2|max:100",
//	    "email": "required|email",
//	})
//
//	if !v.Validate() {
//	    // v.Errors() → map[string]string{"email": "The email must be a valid email address."}
//	}
//	clean := v.Validated()
//
// # Available Rules
//
//   - required: field must be present and non-empty after trimming
//   - email: valid address; empty or absent passes
//   - min:n: at least n UTF-8 characters
//   - max:n: at most n UTF-8 characters
//   - between:lo,hi: length between lo and hi (inclusive)
//   - same:other: equal to data[other]; both absent passes
//   - alphanumeric: ASCII letters and digits only
//   - secure: 8–64 characters with lower, upper, digit and symbol;
//     fails when the field is absent
//   - unique:table,column: no existing record; needs a UniqueChecker
//
// Every rule except required and secure passes when the field is absent.
// Unknown rule names are skipped. A malformed rule (min without a number,
// between with one bound) is a configuration error: Compile returns it and
// Make panics.
//
// # Messages
//
// Templates are positional, field first and then the rule parameters. The
// built-in catalog can be overridden for every field with WithCatalog and per
// field with Messages / WithMessages. Overrides can be decoded from YAML.
package validation
