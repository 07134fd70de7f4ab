// Package pricing holds the static service-area table the orchestrator keys
// into. It stands in for the official city pricing lookup, which is an
// external system; only the key matching lives here.
package pricing

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Area maps one service area to the cities and free-text keywords that
// resolve into it.
type Area struct {
	Name     string   `yaml:"name"`
	Cities   []string `yaml:"cities"`
	Keywords []string `yaml:"keywords"`
}

// Table is a loaded service-area table.
type Table struct {
	Areas []Area `yaml:"areas"`
}

// Load reads a service-area table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "pricing: read table")
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrap(err, "pricing: parse table")
	}
	return &t, nil
}

// ServiceAreaFor returns the first area whose city list matches the resolved
// city exactly (case-insensitive), then the first whose city or keyword
// appears inside the address/name text. Empty string when nothing matches.
func (t *Table) ServiceAreaFor(addressOrName, city string) string {
	if t == nil {
		return ""
	}
	city = strings.TrimSpace(city)
	if city != "" {
		for _, area := range t.Areas {
			for _, c := range area.Cities {
				if strings.EqualFold(c, city) {
					return area.Name
				}
			}
		}
	}
	haystack := strings.ToLower(addressOrName)
	if haystack == "" {
		return ""
	}
	for _, area := range t.Areas {
		for _, c := range area.Cities {
			if c != "" && strings.Contains(haystack, strings.ToLower(c)) {
				return area.Name
			}
		}
		for _, kw := range area.Keywords {
			if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
				return area.Name
			}
		}
	}
	return ""
}
