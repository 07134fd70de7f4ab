package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("plain object", func(t *testing.T) {
		t.Parallel()
		doc, ok := Wrap(map[string]any{"vin": "X"})
		require.True(t, ok)
		assert.Equal(t, "X", doc["vin"])
	})

	t.Run("single-element list unwrapped", func(t *testing.T) {
		t.Parallel()
		doc, ok := Wrap([]any{map[string]any{"vin": "X"}})
		require.True(t, ok)
		assert.Equal(t, "X", doc["vin"])
	})

	t.Run("output keys win over wrapper keys", func(t *testing.T) {
		t.Parallel()
		doc, ok := Wrap(map[string]any{
			"vin":    "wrapper",
			"output": map[string]any{"vin": "inner"},
		})
		require.True(t, ok)
		assert.Equal(t, "inner", doc["vin"])
	})

	t.Run("wrapper keys survive when output lacks them", func(t *testing.T) {
		t.Parallel()
		doc, ok := Wrap(map[string]any{
			"make":   "Honda",
			"output": map[string]any{"vin": "inner"},
		})
		require.True(t, ok)
		assert.Equal(t, "Honda", doc["make"])
		assert.Equal(t, "inner", doc["vin"])
	})

	t.Run("non-object values rejected", func(t *testing.T) {
		t.Parallel()
		for _, v := range []any{nil, 42, "hello", []any{}, []any{1, 2}} {
			_, ok := Wrap(v)
			assert.False(t, ok)
		}
	})
}

func TestLoose(t *testing.T) {
	t.Parallel()

	t.Run("case and punctuation insensitive", func(t *testing.T) {
		t.Parallel()
		doc := Document{"Release-Form Number": "RF-100"}
		assert.Equal(t, "RF-100", doc.Loose("release_form_number"))
	})

	t.Run("suffix match finds prefixed keys", func(t *testing.T) {
		t.Parallel()
		doc := Document{"Vehicle_VIN": "1HG..."}
		assert.Equal(t, "1HG...", doc.Loose("vin"))
	})

	t.Run("exact match wins over suffix match", func(t *testing.T) {
		t.Parallel()
		doc := Document{"Vehicle_VIN": "prefixed", "VIN": "exact"}
		assert.Equal(t, "exact", doc.Loose("vin"))
	})

	t.Run("short aliases never suffix-match", func(t *testing.T) {
		t.Parallel()
		doc := Document{"void": "x"}
		assert.Nil(t, doc.Loose("id"))
	})

	t.Run("party-qualified keys never answer unqualified aliases", func(t *testing.T) {
		t.Parallel()
		doc := Document{"buying_dealership": map[string]any{"name": "Buyer Inc"}}
		assert.Nil(t, doc.Loose("dealership"))

		doc = Document{"buying_dealership_name": "Buyer Inc"}
		assert.Nil(t, doc.Loose("dealership_name"))

		doc = Document{"dropoff_contact_name": "D. River"}
		assert.Nil(t, doc.Loose("contact_name"))
	})

	t.Run("qualified alias still suffix-matches its own party", func(t *testing.T) {
		t.Parallel()
		doc := Document{"the_buying_dealership_name": "Buyer Inc"}
		assert.Equal(t, "Buyer Inc", doc.Loose("buying_dealership_name"))
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		doc := Document{"make": "Honda"}
		assert.Nil(t, doc.Loose("vin", "serial_number"))
	})

	t.Run("nil document", func(t *testing.T) {
		t.Parallel()
		var doc Document
		assert.Nil(t, doc.Loose("vin"))
	})
}

func TestLookup(t *testing.T) {
	t.Parallel()

	doc := Document{
		"Vehicle_Info": map[string]any{"vin": "X"},
		"notes":        "scalar",
	}

	v, st := doc.Lookup([]string{"vehicle_info", "vehicle"}, []string{"vin"})
	assert.Equal(t, Present, st)
	assert.Equal(t, "X", v)

	_, st = doc.Lookup([]string{"vehicle_info"}, []string{"year"})
	assert.Equal(t, Absent, st)

	_, st = doc.Lookup([]string{"missing"}, []string{"vin"})
	assert.Equal(t, Absent, st)

	_, st = doc.Lookup([]string{"notes"}, []string{"anything"})
	assert.Equal(t, WrongType, st)

	v, st = doc.Lookup([]string{"notes"})
	assert.Equal(t, Present, st)
	assert.Equal(t, "scalar", v)

	_, st = doc.Lookup()
	assert.Equal(t, Absent, st)
}

func TestStringify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string trimmed", "  hi  ", "hi"},
		{"float", float64(2021), "2021"},
		{"float with fraction", 123456.5, "123456.5"},
		{"int", 42, "42"},
		{"value wrapper", map[string]any{"value": "inner"}, "inner"},
		{"text wrapper", map[string]any{"text": "inner"}, "inner"},
		{"km wrapper", map[string]any{"km": float64(85000)}, "85000"},
		{"nested wrappers", map[string]any{"result": map[string]any{"value": "deep"}}, "deep"},
		{"priority order", map[string]any{"raw": "raw", "value": "value"}, "value"},
		{"unknown shape", map[string]any{"other": "x"}, ""},
		{"bool", true, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Stringify(tt.in))
		})
	}
}

func TestFirstString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a", FirstString("", nil, "a", "b"))
	assert.Equal(t, "7", FirstString(nil, float64(7)))
	assert.Equal(t, "", FirstString(nil, "", map[string]any{}))
	assert.Equal(t, "", FirstString())
}

func TestBestAddress(t *testing.T) {
	t.Parallel()

	t.Run("digit-bearing candidate preferred regardless of order", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "123 King St", BestAddress("Acme Motors", "123 King St"))
		assert.Equal(t, "123 King St", BestAddress("123 King St", "Acme Motors"))
	})

	t.Run("falls back to first non-empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Acme Motors", BestAddress("", "Acme Motors", "Beta Autos"))
	})

	t.Run("all empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", BestAddress("", nil))
	})
}
