package validator

import (
	"strings"
	"unicode"
)

// IsEmail reports whether s has the local@domain.tld shape: exactly one "@",
// no whitespace anywhere, and a domain containing at least one dot with
// non-empty labels on both sides of every dot.
func IsEmail(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}

	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return false
	}

	if !strings.Contains(domain, ".") {
		return false
	}
	for label := range strings.SplitSeq(domain, ".") {
		if label == "" {
			return false
		}
	}

	return true
}

// ValidEmail validates the email address shape. See IsEmail.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "invalid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
