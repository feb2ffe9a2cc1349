package validation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ── Options ──────────────────────────────────────────────────────────────────

// Option configures a Validator built with New.
type Option func(*Validator)

// WithMessages adds per-field template overrides. Later overrides win for
// the same field and rule.
func WithMessages(m Messages) Option {
	return func(v *Validator) { v.messages = v.messages.merge(m) }
}

// WithCatalog overrides default templates for every field.
func WithCatalog(c Catalog) Option {
	return func(v *Validator) { v.catalog = v.catalog.Merge(c) }
}

// WithUniqueChecker supplies the record lookup behind the unique rule.
func WithUniqueChecker(u UniqueChecker) Option {
	return func(v *Validator) { v.unique = u }
}

// WithLogger sets the logger used for rule failures and lookup faults.
func WithLogger(l *zerolog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = *l
		}
	}
}

// ── Validator ────────────────────────────────────────────────────────────────

// Validator evaluates a RuleSet against one input record. Evaluation runs at
// most once; a Validator is not safe for concurrent use.
type Validator struct {
	data     Data
	rules    RuleSet
	messages Messages
	catalog  Catalog
	unique   UniqueChecker
	log      zerolog.Logger

	ran       bool
	err       error
	errors    map[string]string
	validated map[string]string
}

// Make creates a new Validator — mirrors Validator::make($data, $rules, $messages).
// It panics if a descriptor is malformed.
func Make(data Data, rules Rules, messages ...Messages) *Validator {
	rs := MustCompile(rules)

	opts := make([]Option, 0, len(messages))
	for _, m := range messages {
		opts = append(opts, WithMessages(m))
	}

	v := New(data, rs, opts...)
	if v.err != nil {
		panic(v.err)
	}
	return v
}

// New creates a Validator for a compiled rule set. A malformed rule, or a set
// that uses unique without a UniqueChecker, yields a Validator whose Err is
// set and which never passes.
func New(data Data, rules RuleSet, opts ...Option) *Validator {
	v := &Validator{
		data:    data,
		rules:   rules,
		catalog: DefaultCatalog(),
		log:     zerolog.Nop(),
		errors:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(v)
	}

	switch err := rules.verify(); {
	case err != nil:
		v.err = err
	case v.unique == nil && rules.Uses(KindUnique):
		v.err = ErrUniqueCheckerMissing
	}
	if names := rules.unknown(); len(names) > 0 {
		v.log.Debug().Strs("rules", names).Msg("unknown rules will be skipped")
	}
	return v
}

// Validate runs validation and returns true if every rule passed.
func (v *Validator) Validate() bool {
	ok, _ := v.ValidateContext(context.Background())
	return ok
}

// ValidateContext is Validate with a context for the unique lookup. A lookup
// failure stops evaluation and is returned on this and every later call.
func (v *Validator) ValidateContext(ctx context.Context) (bool, error) {
	if v.ran {
		return v.err == nil && len(v.errors) == 0, v.err
	}
	v.ran = true

	if v.err != nil {
		return false, v.err
	}

	if err := v.evaluate(ctx); err != nil {
		v.err = err
		v.validated = nil
		v.log.Error().Err(err).Msg("validation aborted")
		return false, err
	}
	return len(v.errors) == 0, nil
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool { return !v.Validate() }

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return v.Validate() }

// Validated returns the fields that passed every rule with their original
// values, running validation first if needed. It is nil when no field passed.
func (v *Validator) Validated() map[string]string {
	if !v.ran {
		v.Validate()
	}
	return v.validated
}

// Errors returns the first error message of every failing field.
func (v *Validator) Errors() map[string]string { return v.errors }

// Err returns the configuration or lookup fault that stopped validation.
func (v *Validator) Err() error { return v.err }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) evaluate(ctx context.Context) error {
	for _, fr := range v.rules {
		field := fr.Field

		for _, r := range fr.Rules {
			pass, err := v.check(ctx, field, r)
			if err != nil {
				return fmt.Errorf("field %q rule %q: %w", field, r.Name, err)
			}
			if pass {
				continue
			}

			// Only the first failure of a field is reported; later rules
			// still run.
			if _, seen := v.errors[field]; !seen {
				tpl := v.messages.template(v.catalog, field, r.Name)
				v.errors[field] = formatMessage(tpl, field, r.Params)
			}
			v.log.Debug().Str("field", field).Str("rule", r.Name).Msg("rule failed")
		}

		if _, failed := v.errors[field]; failed {
			continue
		}
		if value, ok := v.data[field]; ok {
			if v.validated == nil {
				v.validated = make(map[string]string)
			}
			v.validated[field] = value
		}
	}
	return nil
}

// check returns true if the rule passes. Unknown kinds always pass.
func (v *Validator) check(ctx context.Context, field string, r Rule) (bool, error) {
	if r.Kind == KindUnique {
		return v.checkUnique(ctx, field, r)
	}
	fn, ok := predicates[r.Kind]
	if !ok {
		return true, nil
	}
	return fn(v.data, field, r), nil
}

func (v *Validator) checkUnique(ctx context.Context, field string, r Rule) (bool, error) {
	value, ok := v.data[field]
	if !ok {
		return true, nil
	}
	unique, err := v.unique.Unique(ctx, r.Params[0], r.Params[1], value)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUniqueLookup, err)
	}
	return unique, nil
}
