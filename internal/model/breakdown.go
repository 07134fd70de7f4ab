package model

// CountryCanada and CountryUSA are the two recognized country values; anything
// else found in source data is passed through verbatim.
const (
	CountryCanada = "Canada"
	CountryUSA    = "USA"
)

// AddressBreakdown is the structured form of a postal address. Every field is
// independently optional; PostalCode, when six alphanumerics, is stored as
// "AAA NNN".
type AddressBreakdown struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// EmptyBreakdown returns a breakdown with only the default country set.
func EmptyBreakdown() AddressBreakdown {
	return AddressBreakdown{Country: CountryCanada}
}

// IsEmpty reports whether no field besides the defaulted country carries data.
func (b AddressBreakdown) IsEmpty() bool {
	return b.Street == "" && b.Number == "" && b.City == "" &&
		b.Province == "" && b.PostalCode == "" &&
		(b.Country == "" || b.Country == CountryCanada)
}
