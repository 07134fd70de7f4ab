// Package address converts free-text postal addresses to the structured
// breakdown and back. The heuristics assume Canada/USA conventions; anything
// unrecognized passes through rather than failing.
package address

import (
	"regexp"
	"strings"

	"github.com/clearhaul/dispatch-cli/internal/model"
	"github.com/clearhaul/dispatch-cli/internal/normalize"
)

// provinceCodes is the fixed set of two-letter Canadian province and
// territory codes used for positional tie-breaks.
var provinceCodes = map[string]bool{
	"AB": true, "BC": true, "MB": true, "NB": true, "NL": true,
	"NS": true, "NT": true, "NU": true, "ON": true, "PE": true,
	"QC": true, "SK": true, "YT": true,
}

var postalCodeRe = regexp.MustCompile(`(?i)[A-Z]\d[A-Z]\s*\d[A-Z]\d`)

// regionLine is the parsed form of one "city/province/postal" fragment.
type regionLine struct {
	province   string
	postalCode string
	remainder  string
	// matched is true when the province came from the known-code set or a
	// postal code was found, false when the whole remainder was stored as
	// province verbatim.
	matched bool
}

// parseRegionLine extracts a postal code and a province from a single
// fragment such as "Montreal QC H1Z 3B8". Tie-break order is fixed: known
// code at the right end, then at the left end, then the entire remainder is
// taken verbatim as a province/state name. That last fall-through is a
// deliberate simplification; changing it would break parity with saved data.
func parseRegionLine(fragment string) regionLine {
	var out regionLine
	rest := fragment
	if loc := postalCodeRe.FindStringIndex(rest); loc != nil {
		out.postalCode = normalize.PostalCode(rest[loc[0]:loc[1]])
		out.matched = true
		rest = rest[:loc[0]] + rest[loc[1]:]
	}
	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return out
	}
	if last := strings.ToUpper(tokens[len(tokens)-1]); provinceCodes[last] {
		out.province = tokens[len(tokens)-1]
		out.remainder = strings.Join(tokens[:len(tokens)-1], " ")
		out.matched = true
		return out
	}
	if first := strings.ToUpper(tokens[0]); provinceCodes[first] {
		out.province = tokens[0]
		out.remainder = strings.Join(tokens[1:], " ")
		out.matched = true
		return out
	}
	out.province = strings.Join(tokens, " ")
	return out
}

// Parse splits one free-text address into a breakdown. It never fails: empty
// or unrecognizable input yields empty fields with the default country.
func Parse(text string) model.AddressBreakdown {
	out := model.EmptyBreakdown()
	text = normalize.Whitespace(text)
	if text == "" {
		return out
	}

	var segments []string
	for _, seg := range strings.Split(text, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return out
	}

	country := ""
	if last := normalize.Country(segments[len(segments)-1]); last == model.CountryCanada || last == model.CountryUSA {
		country = last
		segments = segments[:len(segments)-1]
	}

	var line1 string
	var region regionLine
	switch {
	case len(segments) >= 3:
		region = parseRegionLine(segments[len(segments)-1])
		out.City = segments[len(segments)-2]
		line1 = strings.Join(segments[:len(segments)-2], ", ")
	case len(segments) == 2:
		line1 = segments[0]
		region = parseRegionLine(segments[1])
		if region.matched {
			out.City = region.remainder
		} else {
			out.City = segments[1]
			region = regionLine{}
		}
	case len(segments) == 1:
		line1 = segments[0]
	}

	out.Province = region.province
	out.PostalCode = region.postalCode
	if len(out.Province) == 2 {
		out.Province = strings.ToUpper(out.Province)
	}
	if out.City == "" {
		out.City = region.remainder
	}

	out.Number, out.Street = splitStreetNumber(line1)
	out.Province, out.Country = normalizeProvinceCountry(out.Province, country)
	return out
}

// splitStreetNumber divides a street line into civic number and street name.
// A token counts as numeric-prefixed when its first character is a digit;
// the leading position wins over the trailing one.
func splitStreetNumber(line1 string) (number, street string) {
	tokens := strings.Fields(line1)
	if len(tokens) < 2 {
		return "", line1
	}
	if numericPrefixed(tokens[0]) {
		return tokens[0], strings.Join(tokens[1:], " ")
	}
	if numericPrefixed(tokens[len(tokens)-1]) {
		return tokens[len(tokens)-1], strings.Join(tokens[:len(tokens)-1], " ")
	}
	return "", line1
}

func numericPrefixed(token string) bool {
	return token != "" && token[0] >= '0' && token[0] <= '9'
}

// normalizeProvinceCountry resolves the province/country pair jointly so the
// literal "CA" is never stored as both a country hint and a province value.
func normalizeProvinceCountry(province, country string) (string, string) {
	country = normalize.Country(country)
	if strings.EqualFold(province, "CA") {
		switch country {
		case "":
			country = model.CountryCanada
			province = ""
		case model.CountryCanada:
			province = ""
		}
	}
	if len(province) == 2 && !provinceCodes[strings.ToUpper(province)] && country == model.CountryCanada {
		province = ""
	}
	if country == "" {
		country = model.CountryCanada
	}
	return province, country
}

// Build assembles the free-text form of a breakdown: street line, city,
// province + postal, country, comma-joined with empty parts omitted. Not the
// exact inverse of Parse, but a fully-populated breakdown with a well-formed
// postal code round-trips field for field.
func Build(b model.AddressBreakdown) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{
		strings.TrimSpace(b.Number + " " + b.Street),
		strings.TrimSpace(b.City),
		strings.TrimSpace(strings.TrimSpace(b.Province) + " " + b.PostalCode),
		strings.TrimSpace(b.Country),
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
