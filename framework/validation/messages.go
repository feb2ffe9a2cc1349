package validation

import (
	"fmt"
	"maps"
)

// Catalog maps a rule name to its message template. Templates are positional:
// the field name comes first, followed by the rule's parameters.
type Catalog map[string]string

// Messages overrides templates per field: field → rule name → template.
type Messages map[string]map[string]string

var defaultCatalog = Catalog{
	"required":     "The %s field is required.",
	"email":        "The %s must be a valid email address.",
	"min":          "The %s must be at least %s characters.",
	"max":          "The %s may not be greater than %s characters.",
	"between":      "The %s must be between %d and %d characters.",
	"same":         "The %s and %s must match.",
	"alphanumeric": "The %s may only contain letters and numbers.",
	"secure":       "The %s must be between 8 and 64 characters and contain a lowercase letter, an uppercase letter, a digit and a special character.",
	"unique":       "The %s has already been taken.",
}

// DefaultCatalog returns a copy of the built-in templates.
func DefaultCatalog() Catalog {
	return maps.Clone(defaultCatalog)
}

// Merge returns a new catalog with overrides applied on top of c.
func (c Catalog) Merge(overrides Catalog) Catalog {
	out := make(Catalog, len(c)+len(overrides))
	maps.Copy(out, c)
	maps.Copy(out, overrides)
	return out
}

// merge returns a new Messages with other applied on top of m, rule by rule.
func (m Messages) merge(other Messages) Messages {
	out := make(Messages, len(m)+len(other))
	for field, rules := range m {
		out[field] = maps.Clone(rules)
	}
	for field, rules := range other {
		if out[field] == nil {
			out[field] = make(map[string]string, len(rules))
		}
		maps.Copy(out[field], rules)
	}
	return out
}

// template picks the field override, then the catalog entry.
func (m Messages) template(catalog Catalog, field, rule string) string {
	if tpl, ok := m[field][rule]; ok {
		return tpl
	}
	return catalog[rule]
}

// param lets string parameters satisfy %d as well as %s.
type param string

func (p param) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(p))
}

// formatMessage renders tpl with field followed by params. Arguments the
// template does not consume are dropped.
func formatMessage(tpl, field string, params []string) string {
	args := make([]any, 0, len(params)+1)
	args = append(args, param(field))
	for _, p := range params {
		args = append(args, param(p))
	}
	if n := countVerbs(tpl); n < len(args) {
		args = args[:n]
	}
	return fmt.Sprintf(tpl, args...)
}

// countVerbs counts the formatting verbs in tpl, ignoring %%.
func countVerbs(tpl string) int {
	n := 0
	for i := 0; i < len(tpl); i++ {
		if tpl[i] != '%' {
			continue
		}
		if i+1 < len(tpl) && tpl[i+1] == '%' {
			i++
			continue
		}
		n++
	}
	return n
}
