package validator

import "strings"

const nationalIDLength = 11

// digitsOnly strips every non-ASCII-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// MaskNationalID formats a CPF as ###.###.###-## while it is being typed.
// Non-digits are dropped and input is truncated to 11 digits, so the result is
// stable under repeated application.
func MaskNationalID(raw string) string {
	d := digitsOnly(raw)
	if len(d) > nationalIDLength {
		d = d[:nationalIDLength]
	}

	var b strings.Builder
	b.Grow(len(d) + 3)
	for i := 0; i < len(d); i++ {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// IsNationalID reports whether raw is a valid CPF: 11 digits (separators are
// ignored), not a repetition of one digit, and both modulo-11 check digits correct.
func IsNationalID(raw string) bool {
	d := digitsOnly(raw)
	if len(d) != nationalIDLength {
		return false
	}
	if strings.Count(d, d[:1]) == nationalIDLength {
		return false
	}

	digits := make([]int, nationalIDLength)
	for i := range d {
		digits[i] = int(d[i] - '0')
	}

	return checkDigit(digits[:9]) == digits[9] && checkDigit(digits[:10]) == digits[10]
}

// checkDigit computes a CPF verifier digit over prefix. Weights start at
// len(prefix)+1 and decrease to 2.
func checkDigit(prefix []int) int {
	sum := 0
	weight := len(prefix) + 1
	for _, v := range prefix {
		sum += v * weight
		weight--
	}
	d := (sum * 10) % 11
	if d == 10 {
		d = 0
	}
	return d
}

// ValidNationalID validates a Brazilian CPF. See IsNationalID.
func ValidNationalID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsNationalID(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "invalid national id",
			TranslationKey: "validation.national_id",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
