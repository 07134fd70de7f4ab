// Package payload reads values out of the raw, variably-shaped documents the
// extraction webhook returns. Nothing here assumes a fixed shape: every access
// is by candidate-key list under a loose comparison, and every function is
// total over arbitrary input.
package payload

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/clearhaul/dispatch-cli/internal/normalize"
)

// Document is one decoded extraction payload.
type Document map[string]any

// Wrap coerces an arbitrary decoded value into a Document. A single-element
// list is unwrapped first; if the result carries an "output" sub-object its
// keys are merged over the wrapper's keys (wrapper as base, output wins).
// Returns false when the value is not object-like at all.
func Wrap(raw any) (Document, bool) {
	if list, ok := raw.([]any); ok && len(list) == 1 {
		raw = list[0]
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	doc := make(Document, len(obj))
	for k, v := range obj {
		doc[k] = v
	}
	if out, ok := doc["output"].(map[string]any); ok {
		for k, v := range out {
			doc[k] = v
		}
	}
	return doc, true
}

// Loose returns the value of the first document key whose normalized form
// matches any of the given aliases, or nil. Matching lowercases and strips
// non-alphanumerics on both sides, so "vin" finds "Vehicle_VIN".
//
// When two document keys normalize identically the winner follows map
// iteration order and is therefore unspecified. Kept that way on purpose:
// changing it would silently change extraction results for payloads that
// happen to rely on it.
func (d Document) Loose(aliases ...string) any {
	if d == nil {
		return nil
	}
	wanted := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if key := normalize.Key(a); key != "" {
			wanted = append(wanted, key)
		}
	}
	// Exact normalized equality first.
	for k, v := range d {
		norm := normalize.Key(k)
		for _, want := range wanted {
			if norm == want {
				return v
			}
		}
	}
	// Then a suffix pass, so "Vehicle_VIN" still answers for "vin". Aliases
	// shorter than three characters are excluded to keep "id" and "to" from
	// matching unrelated keys, and a party-qualified key never answers for an
	// alias that lacks the qualifier.
	for k, v := range d {
		norm := normalize.Key(k)
		for _, want := range wanted {
			if len(want) >= 3 && len(norm) > len(want) && strings.HasSuffix(norm, want) && !suffixConflict(norm, want) {
				return v
			}
		}
	}
	return nil
}

// partyQualifiers are prefixes that bind a key to one side of the job.
// "dealership" must never answer for "buying_dealership": the two sides carry
// different parties, and crossing them corrupts the extracted form.
var partyQualifiers = []string{
	"buying", "buyer", "purchaser",
	"selling", "seller",
	"pickup", "origin",
	"dropoff", "delivery", "destination",
}

// suffixConflict reports whether the prefix left over from a suffix match
// names a party the alias itself does not.
func suffixConflict(norm, want string) bool {
	prefix := strings.TrimSuffix(norm, want)
	for _, q := range partyQualifiers {
		if strings.Contains(prefix, q) && !strings.Contains(want, q) {
			return true
		}
	}
	return false
}

// Status tags the outcome of a Lookup.
type Status int

const (
	Absent Status = iota
	WrongType
	Present
)

// Lookup descends the document one step per alias group, matching each step
// loosely. It distinguishes a missing key (Absent) from a key whose value is
// not an object where one more step remains (WrongType). The alias table
// resolves every nested group through this single helper.
func (d Document) Lookup(steps ...[]string) (any, Status) {
	if d == nil || len(steps) == 0 {
		return nil, Absent
	}
	cur := d
	for i, aliases := range steps {
		v := cur.Loose(aliases...)
		if v == nil {
			return nil, Absent
		}
		if i == len(steps)-1 {
			return v, Present
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, WrongType
		}
		cur = Document(next)
	}
	return nil, Absent
}

// wrapperKeys are the common single-value envelope keys extraction services
// nest scalars under, in unwrap priority order.
var wrapperKeys = []string{"value", "text", "raw", "result", "km", "year"}

const maxUnwrapDepth = 4

// Stringify coerces an arbitrary value to a trimmed string. Numbers convert
// via their decimal form, enveloped objects are unwrapped recursively, and
// anything else collapses to the empty string.
func Stringify(v any) string {
	return stringify(v, 0)
}

func stringify(v any, depth int) string {
	if depth > maxUnwrapDepth {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return strings.TrimSpace(t.String())
	case map[string]any:
		for _, key := range wrapperKeys {
			if inner, ok := t[key]; ok {
				if s := stringify(inner, depth+1); s != "" {
					return s
				}
			}
		}
		return ""
	default:
		return ""
	}
}

// FirstString returns the first candidate that stringifies to a non-empty
// value, else "".
func FirstString(values ...any) string {
	for _, v := range values {
		if s := Stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// BestAddress prefers the first non-empty candidate that looks like a street
// address (contains a digit), falling back to the first non-empty candidate.
// Many payload shapes supply both a bare address line and a dealership or
// contact name in overlapping slots; the structurally address-like one wins.
func BestAddress(values ...any) string {
	first := ""
	for _, v := range values {
		s := Stringify(v)
		if s == "" {
			continue
		}
		if normalize.LooksLikeStreet(s) {
			return s
		}
		if first == "" {
			first = s
		}
	}
	return first
}
