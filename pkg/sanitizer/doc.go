// Package sanitizer normalises user-supplied identity data before it is
// validated, stored or logged: email canonicalisation, PII masking for logs and
// display-name cleanup. All helpers are pure functions.
package sanitizer
