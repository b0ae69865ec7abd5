package transform

import "strings"

// synonyms maps whole canonicalized values onto matching tokens so that raw
// text and persisted binary indicators compare equal. The pairs mirror the
// categorical maps plus the plain boolean literals. Whole-value replacement
// only: "city park" is not rewritten.
var synonyms = map[string]string{
	"true":          "1",
	"false":         "0",
	"yes":           "1",
	"no":            "0",
	"minimal flood": "1",
	"flood zone":    "0",
	"near":          "1",
	"far":           "0",
	"city":          "1",
	"well":          "0",
	"septic":        "0",
}

// Canonicalize reduces one cell to its comparison token: trim, lower-case,
// then whole-value synonym substitution. Both the raw extract and the
// persisted snapshots pass through this same function during validation, so
// a correctly loaded value always canonicalizes identically on both sides.
func Canonicalize(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	if mapped, ok := synonyms[s]; ok {
		return mapped
	}
	return s
}

// CanonicalizeCell is Canonicalize for optional cells; a missing cell
// canonicalizes to the empty token.
func CanonicalizeCell(value *string) string {
	if value == nil {
		return ""
	}
	return Canonicalize(*value)
}
