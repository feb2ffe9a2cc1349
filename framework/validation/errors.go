package validation

import "errors"

// Configuration faults. These indicate a mistake in a rule descriptor, not bad
// user input, and are reported when rules are compiled.
var (
	// ErrMissingParameter is returned when a rule has fewer parameters than it needs.
	ErrMissingParameter = errors.New("validation: missing rule parameter")

	// ErrTooManyParameters is returned when a rule has more parameters than it accepts.
	ErrTooManyParameters = errors.New("validation: too many rule parameters")

	// ErrInvalidInteger is returned when a length parameter is not an integer.
	ErrInvalidInteger = errors.New("validation: rule parameter is not an integer")

	// ErrUniqueCheckerMissing is returned when a rule set uses unique but no
	// UniqueChecker was supplied.
	ErrUniqueCheckerMissing = errors.New("validation: unique rule requires a UniqueChecker")
)

// ErrUniqueLookup wraps failures of the record store behind a UniqueChecker.
var ErrUniqueLookup = errors.New("validation: unique lookup failed")
