package validator

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the hard floor enforced before a password is scored.
const MinPasswordLength = 8

// MaxPasswordScore is the score of a password using every character class.
const MaxPasswordScore = 4

// PasswordStrength is the advisory result of ScorePassword.
// Err is set only for blocking problems (see ErrPasswordTooShort).
type PasswordStrength struct {
	Score int
	Err   error
}

// Blocked reports whether the password must be rejected regardless of score.
func (p PasswordStrength) Blocked() bool {
	return p.Err != nil
}

// ScorePassword rates a password for a strength meter.
//
// An empty password scores 0 without error. Anything shorter than
// MinPasswordLength scores 0 with ErrPasswordTooShort. Otherwise the score is the
// number of character classes present: digits, lowercase, uppercase, symbols.
func ScorePassword(password string) PasswordStrength {
	if password == "" {
		return PasswordStrength{}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return PasswordStrength{Err: ErrPasswordTooShort}
	}

	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsSpace(r) && !unicode.IsLetter(r):
			hasSymbol = true
		}
	}

	score := 0
	for _, ok := range []bool{hasDigit, hasLower, hasUpper, hasSymbol} {
		if ok {
			score++
		}
	}

	return PasswordStrength{Score: min(score, MaxPasswordScore)}
}

// PasswordFloor validates the minimum password length. This is the only hard
// gate; the score itself is advisory.
func PasswordFloor(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !ScorePassword(value).Blocked() && value != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("password must be at least %d characters long", MinPasswordLength),
			TranslationKey: "validation.password_too_short",
			TranslationValues: map[string]any{
				"field":      field,
				"min_length": MinPasswordLength,
			},
		},
	}
}
