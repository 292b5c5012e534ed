// Package normalize canonicalizes raw organization names for comparison.
// The normalized form is for matching only and must never be displayed:
// it is lowercased, stripped of jurisdiction prefixes ("California ",
// "State of California "), has organization-type infixes ("Department of",
// "Office of", ...) collapsed, and has punctuation and whitespace
// collapsed.
package normalize

import (
	"strings"
	"unicode"
)

// jurisdictionPrefixes are leading qualifiers that carry no identity. The
// longest prefix is tried first.
var jurisdictionPrefixes = []string{
	"state of california ",
	"california state ",
	"california ",
	"state ",
}

// organizationInfixes are organization-type phrases collapsed wherever
// they appear, so "Department of Motor Vehicles", "Motor Vehicles
// Department" and "Motor Vehicles, Department of" all reduce to the same
// comparison key.
var organizationInfixes = []string{
	"department of ",
	"dept of ",
	"dept. of ",
	"office of ",
	"bureau of ",
	"board of ",
	"commission on ",
	"commission for ",
	"agency of ",
	"division of ",
}

// trailingTypes are organization-type words dropped from the end of a
// name ("Motor Vehicles Department" → "motor vehicles").
var trailingTypes = []string{
	" department",
	" dept",
	" office",
	" bureau",
	" board",
	" commission",
	" agency",
	" division",
	" authority",
}

// Name normalizes a raw organization name for comparison. It is a pure,
// total function: any input produces a (possibly empty) output and the
// empty string maps to itself.
func Name(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	// Strip punctuation so "Transportation, Department of" and
	// "Transportation Department" compare equal after phrase collapsing.
	s = stripPunctuation(s)
	s = collapseWhitespace(s)

	for _, prefix := range jurisdictionPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}

	// Inverted index-style names ("Transportation, Department of") leave
	// the phrase at the end once punctuation is gone.
	for _, infix := range organizationInfixes {
		if tail := " " + strings.TrimSuffix(infix, " "); strings.HasSuffix(s, tail) {
			s = s[:len(s)-len(tail)]
			break
		}
	}

	for _, infix := range organizationInfixes {
		s = strings.ReplaceAll(s, infix, "")
	}

	for _, suffix := range trailingTypes {
		if strings.HasSuffix(s, suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}

	return collapseWhitespace(s)
}

// stripPunctuation removes characters that are neither letters, digits,
// nor spaces, replacing separators with a space so words stay split.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '/' || r == '&':
			b.WriteRune(' ')
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// collapseWhitespace folds runs of whitespace into single spaces and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
