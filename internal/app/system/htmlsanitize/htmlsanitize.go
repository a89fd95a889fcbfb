// Package htmlsanitize strips unsafe markup from user-supplied content.
//
// Announcement text is the only rich-text field in the system; everything
// else is stored and rendered as plain strings.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows basic formatting (bold, italics, links, lists) and nothing
// executable. Built once; bluemonday policies are safe for concurrent use.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with all disallowed elements and attributes removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// strict drops every tag, leaving text content only.
var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from s, for fields that must never contain HTML
// (headings, subjects, names).
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strict.Sanitize(s)
}
