package validation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ── Kinds ────────────────────────────────────────────────────────────────────

// Kind identifies a built-in rule.
type Kind int

const (
	KindUnknown Kind = iota
	KindRequired
	KindEmail
	KindMin
	KindMax
	KindBetween
	KindSame
	KindAlphanumeric
	KindSecure
	KindUnique
)

var kindNames = map[Kind]string{
	KindRequired:     "required",
	KindEmail:        "email",
	KindMin:          "min",
	KindMax:          "max",
	KindBetween:      "between",
	KindSame:         "same",
	KindAlphanumeric: "alphanumeric",
	KindSecure:       "secure",
	KindUnique:       "unique",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf returns the Kind registered under name, or KindUnknown.
func KindOf(name string) Kind {
	return kindsByName[name]
}

// signature describes the parameters a kind accepts.
type signature struct {
	params int
	ints   bool // every parameter must parse as an integer
}

var signatures = map[Kind]signature{
	KindRequired:     {0, false},
	KindEmail:        {0, false},
	KindMin:          {1, true},
	KindMax:          {1, true},
	KindBetween:      {2, true},
	KindSame:         {1, false},
	KindAlphanumeric: {0, false},
	KindSecure:       {0, false},
	KindUnique:       {2, false},
}

// ── Rule ─────────────────────────────────────────────────────────────────────

// Rule is one parsed rule token: min:3 → Name "min", Params ["3"].
type Rule struct {
	Name   string
	Kind   Kind
	Params []string

	ints []int
}

// Int returns the i-th parameter as an integer. Only valid for min, max and
// between rules that passed verification.
func (r Rule) Int(i int) int {
	if i < len(r.ints) {
		return r.ints[i]
	}
	n, _ := strconv.Atoi(r.Params[i])
	return n
}

// String renders the rule back into token form.
func (r Rule) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	return r.Name + ":" + strings.Join(r.Params, ",")
}

// ParseRule parses a single token such as "required" or "between:2,4".
// Unknown rule names parse successfully with KindUnknown.
func ParseRule(token string) (Rule, error) {
	token = strings.TrimSpace(token)

	var r Rule
	name, raw, hasParams := strings.Cut(token, ":")
	r.Name = strings.TrimSpace(name)
	if hasParams {
		for p := range strings.SplitSeq(raw, ",") {
			r.Params = append(r.Params, strings.TrimSpace(p))
		}
	}

	r.Kind = KindOf(r.Name)
	ints, err := r.verify()
	if err != nil {
		return r, err
	}
	r.ints = ints
	return r, nil
}

// verify checks r against the signature of its kind and returns its integer
// parameters. Kinds without a signature are not checked.
func (r Rule) verify() ([]int, error) {
	sig, ok := signatures[r.Kind]
	if !ok {
		return nil, nil
	}

	switch {
	case len(r.Params) < sig.params:
		return nil, fmt.Errorf("%w: %q wants %d, got %d", ErrMissingParameter, r.String(), sig.params, len(r.Params))
	case len(r.Params) > sig.params:
		return nil, fmt.Errorf("%w: %q wants %d, got %d", ErrTooManyParameters, r.String(), sig.params, len(r.Params))
	}
	if !sig.ints {
		return nil, nil
	}

	ints := make([]int, len(r.Params))
	for i, p := range r.Params {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q in %q", ErrInvalidInteger, p, r.String())
		}
		ints[i] = n
	}
	return ints, nil
}

// ── Field rules ──────────────────────────────────────────────────────────────

// FieldRules is the ordered rule list of one field.
type FieldRules struct {
	Field string
	Rules []Rule
}

// ParseDescriptor splits a pipe-separated descriptor and parses every token.
// Empty tokens ("required||email") are ignored.
func ParseDescriptor(field, descriptor string) (FieldRules, error) {
	fr := FieldRules{Field: field}
	for token := range strings.SplitSeq(descriptor, "|") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		r, err := ParseRule(token)
		if err != nil {
			return fr, fmt.Errorf("field %q: %w", field, err)
		}
		fr.Rules = append(fr.Rules, r)
	}
	return fr, nil
}

// Descriptor renders the rules back into pipe-separated form.
func (fr FieldRules) Descriptor() string {
	tokens := make([]string, len(fr.Rules))
	for i, r := range fr.Rules {
		tokens[i] = r.String()
	}
	return strings.Join(tokens, "|")
}

// ── Rule sets ────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"email": "required|email", "name": "required|min:2"}
type Rules map[string]string

// RuleSet is a compiled, ordered rule specification.
type RuleSet []FieldRules

// Compile parses every descriptor of rules. Fields are ordered by name so
// evaluation is deterministic.
func Compile(rules Rules) (RuleSet, error) {
	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	rs := make(RuleSet, 0, len(fields))
	for _, field := range fields {
		fr, err := ParseDescriptor(field, rules[field])
		if err != nil {
			return nil, err
		}
		rs = append(rs, fr)
	}
	return rs, nil
}

// MustCompile is like Compile but panics on a malformed descriptor.
func MustCompile(rules Rules) RuleSet {
	rs, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return rs
}

// Fields returns the field names in evaluation order.
func (rs RuleSet) Fields() []string {
	out := make([]string, len(rs))
	for i, fr := range rs {
		out[i] = fr.Field
	}
	return out
}

// Rules converts the set back into its map form.
func (rs RuleSet) Rules() Rules {
	out := make(Rules, len(rs))
	for _, fr := range rs {
		out[fr.Field] = fr.Descriptor()
	}
	return out
}

// Uses reports whether any field declares a rule of kind k.
func (rs RuleSet) Uses(k Kind) bool {
	for _, fr := range rs {
		for _, r := range fr.Rules {
			if r.Kind == k {
				return true
			}
		}
	}
	return false
}

// verify checks every rule of the set. Sets built by hand rather than parsed
// are caught here before evaluation can trip over missing parameters.
func (rs RuleSet) verify() error {
	for _, fr := range rs {
		for _, r := range fr.Rules {
			if _, err := r.verify(); err != nil {
				return fmt.Errorf("field %q: %w", fr.Field, err)
			}
		}
	}
	return nil
}

// unknown lists rule names that will be skipped during evaluation.
func (rs RuleSet) unknown() []string {
	var names []string
	for _, fr := range rs {
		for _, r := range fr.Rules {
			if r.Kind == KindUnknown && !slices.Contains(names, r.Name) {
				names = append(names, r.Name)
			}
		}
	}
	return names
}
