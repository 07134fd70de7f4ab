// Package normalize holds the token-level canonicalization used by the
// address and extraction engines. Every function is total and idempotent.
package normalize

import "strings"

// Whitespace collapses runs of whitespace to a single space and trims.
func Whitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PostalCode uppercases and strips non-alphanumerics; a six-character result
// is reformatted as "AAA NNN". Anything else is returned whitespace-normalized
// and uppercased without guessing at a format.
func PostalCode(s string) string {
	upper := strings.ToUpper(s)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	compact := b.String()
	if len(compact) == 6 {
		return compact[:3] + " " + compact[3:]
	}
	return Whitespace(upper)
}

var countrySynonyms = map[string]string{
	"CA":                       "Canada",
	"CAN":                      "Canada",
	"CANADA":                   "Canada",
	"US":                       "USA",
	"USA":                      "USA",
	"UNITED STATES":            "USA",
	"UNITED STATES OF AMERICA": "USA",
}

// Country maps known synonyms to "Canada" or "USA". Unrecognized values pass
// through trimmed but otherwise verbatim.
func Country(s string) string {
	trimmed := Whitespace(s)
	if canonical, ok := countrySynonyms[strings.ToUpper(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// LooksLikeStreet reports whether s contains at least one digit. This is the
// sole discriminator between street addresses and business/contact names.
func LooksLikeStreet(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// Key lowercases and strips everything but letters and digits, so that
// "Vehicle_VIN", "vehicle vin" and "VehicleVin" all compare equal.
func Key(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
