package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "123 Main St", Whitespace("  123   Main \t St  "))
	assert.Equal(t, "", Whitespace("   \t\n "))
	assert.Equal(t, "", Whitespace(""))

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		once := Whitespace("  a  b\tc ")
		assert.Equal(t, once, Whitespace(once))
	})
}

func TestPostalCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"compact lowercase", "h1z3b8", "H1Z 3B8"},
		{"already formatted", "H1Z 3B8", "H1Z 3B8"},
		{"hyphenated", "h1z-3b8", "H1Z 3B8"},
		{"extra spacing", "  h1z   3b8 ", "H1Z 3B8"},
		{"us zip left alone", "90210", "90210"},
		{"nine digit zip left alone", "90210-1234", "90210-1234"},
		{"too long left alone", "H1Z 3B8X", "H1Z 3B8X"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PostalCode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, PostalCode(got), "must be idempotent")
		})
	}
}

func TestCountry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"CA", "Canada"},
		{"can", "Canada"},
		{"Canada", "Canada"},
		{"CANADA", "Canada"},
		{"US", "USA"},
		{"usa", "USA"},
		{"United States", "USA"},
		{"united states of america", "USA"},
		{"Mexique", "Mexique"},
		{"  France  ", "France"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got := Country(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Country(got), "must be idempotent")
		})
	}
}

func TestLooksLikeStreet(t *testing.T) {
	t.Parallel()

	assert.True(t, LooksLikeStreet("123 King St"))
	assert.True(t, LooksLikeStreet("10e Avenue"))
	assert.False(t, LooksLikeStreet("Acme Motors"))
	assert.False(t, LooksLikeStreet(""))
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vehiclevin", Key("Vehicle_VIN"))
	assert.Equal(t, "vehiclevin", Key("vehicle vin"))
	assert.Equal(t, "vehiclevin", Key("VehicleVin"))
	assert.Equal(t, "releaseformnumber", Key("Release-Form #Number"))
	assert.Equal(t, "", Key("---"))
}
