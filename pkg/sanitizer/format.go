package sanitizer

import (
	"regexp"
	"strings"
)

var dotRegex = regexp.MustCompile(`\.+`)

// NormalizeEmail prevents common email input errors but preserves original for invalid formats.
// Consolidates consecutive dots which can cause delivery issues with some email providers.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// MaskEmail keeps the domain and the first character of the local part so log
// lines stay recognisable without carrying the full address.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return email
	}

	r := []rune(local)
	if len(r) == 1 {
		return "*@" + domain
	}
	return string(r[0]) + strings.Repeat("*", len(r)-1) + "@" + domain
}

// DisplayName collapses runs of whitespace and trims the result.
func DisplayName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
