// Package normalize provides input normalization for user-supplied fields.
//
// Normalization happens once, at the store boundary, so every collection
// holds canonical values and lookups never depend on caller formatting.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string. Validity is checked by authz.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Field trims a free-form classroom field (semester, batch, subject, heading).
func Field(s string) string {
	return strings.TrimSpace(s)
}
