package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Data is the flat input record. A missing key is an absent field.
type Data map[string]string

// predicate reports whether field passes rule r against data.
type predicate func(data Data, field string, r Rule) bool

// predicates is the dispatch table for every kind except unique, which needs
// an external lookup and is evaluated by the Validator itself.
var predicates = map[Kind]predicate{
	KindRequired:     isRequired,
	KindEmail:        isEmail,
	KindMin:          isMin,
	KindMax:          isMax,
	KindBetween:      isBetween,
	KindSame:         isSame,
	KindAlphanumeric: isAlphanumeric,
	KindSecure:       isSecure,
}

var (
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	lowercaseRegex    = regexp.MustCompile(`[a-z]`)
	uppercaseRegex    = regexp.MustCompile(`[A-Z]`)
	digitRegex        = regexp.MustCompile(`[0-9]`)
	nonWordRegex      = regexp.MustCompile(`\W`)
)

func isRequired(data Data, field string, _ Rule) bool {
	value, ok := data[field]
	return ok && strings.TrimSpace(value) != ""
}

func isEmail(data Data, field string, _ Rule) bool {
	value := data[field]
	if value == "" {
		return true
	}

	// Display names and angle brackets are accepted by net/mail but are not
	// addresses a user should type into a field.
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, _ := strings.Cut(addr.Address, "@")
	if local == "" || !strings.Contains(domain, ".") {
		return false
	}
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

func isMin(data Data, field string, r Rule) bool {
	value, ok := data[field]
	if !ok {
		return true
	}
	return utf8.RuneCountInString(value) >= r.Int(0)
}

func isMax(data Data, field string, r Rule) bool {
	value, ok := data[field]
	if !ok {
		return true
	}
	return utf8.RuneCountInString(value) <= r.Int(0)
}

func isBetween(data Data, field string, r Rule) bool {
	value, ok := data[field]
	if !ok {
		return true
	}
	l := utf8.RuneCountInString(value)
	return l >= r.Int(0) && l <= r.Int(1)
}

func isSame(data Data, field string, r Rule) bool {
	value, ok := data[field]
	other, otherOK := data[r.Params[0]]
	switch {
	case ok && otherOK:
		return value == other
	case !ok && !otherOK:
		return true
	default:
		return false
	}
}

func isAlphanumeric(data Data, field string, _ Rule) bool {
	value, ok := data[field]
	if !ok {
		return true
	}
	return alphanumericRegex.MatchString(value)
}

// isSecure is the one predicate that fails on an absent field: a password
// rule must not be satisfied by leaving the password out.
func isSecure(data Data, field string, _ Rule) bool {
	value, ok := data[field]
	if !ok {
		return false
	}
	if n := utf8.RuneCountInString(value); n < 8 || n > 64 {
		return false
	}
	return lowercaseRegex.MatchString(value) &&
		uppercaseRegex.MatchString(value) &&
		digitRegex.MatchString(value) &&
		nonWordRegex.MatchString(value)
}
