// Package extract turns one raw extraction-webhook payload into the canonical
// order form. It is the single point where upstream shape ambiguity gets
// resolved; the orchestrator never panics and never returns a partial form.
package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/clearhaul/dispatch-cli/internal/address"
	"github.com/clearhaul/dispatch-cli/internal/model"
	"github.com/clearhaul/dispatch-cli/internal/normalize"
	"github.com/clearhaul/dispatch-cli/internal/payload"
)

// AreaResolver supplies the pricing-table lookup for a dropoff service area.
// The engine only provides the lookup keys; the table itself is an external
// collaborator.
type AreaResolver interface {
	ServiceAreaFor(addressOrName, city string) string
}

var (
	deliverRe  = regexp.MustCompile(`(?i)deliver`)
	yearRe     = regexp.MustCompile(`(19|20)\d\d`)
	textYearRe = regexp.MustCompile(`(?i)year\s*:\s*((19|20)\d\d)`)
	textOdoRe  = regexp.MustCompile(`(?i)odometer\s*:\s*([0-9][0-9,.\s]*?)\s*km`)
	kmSuffixRe = regexp.MustCompile(`(?i)\s*km\.?\s*$`)
)

// InitForm resolves a raw payload into the canonical order form. Non-object
// input (nil, numbers, multi-element lists) yields nil; an empty object
// yields a fully-shaped form with empty leaves. areas may be nil, in which
// case service_area is left for downstream lookup.
func InitForm(raw any, areas AreaResolver) *model.OrderForm {
	doc, ok := payload.Wrap(raw)
	if !ok {
		return nil
	}

	f := model.NewOrderForm()
	rawText := resolve(doc, "raw_text")

	if deliverRe.MatchString(resolve(doc, "service.service_type")) {
		f.Service.ServiceType = model.ServiceTypeDelivery
	}

	f.Vehicle.VIN = resolve(doc, "vehicle.vin")
	f.Vehicle.Year = resolveYear(doc, rawText)
	f.Vehicle.Make = resolve(doc, "vehicle.make")
	f.Vehicle.Model = resolve(doc, "vehicle.model")
	f.Vehicle.Transmission = resolve(doc, "vehicle.transmission")
	f.Vehicle.OdometerKM = resolveOdometer(doc, rawText)
	f.Vehicle.ExteriorColor = resolve(doc, "vehicle.exterior_color")

	f.SellingDealership = model.Dealership{
		Name:        resolve(doc, "selling_dealership.name"),
		Phone:       resolve(doc, "selling_dealership.phone"),
		Address:     resolveAddress(doc, "selling_dealership.address"),
		ContactName: resolve(doc, "selling_dealership.contact_name"),
	}
	f.BuyingDealership = model.Dealership{
		Name:        resolve(doc, "buying_dealership.name"),
		Phone:       resolve(doc, "buying_dealership.phone"),
		Address:     resolveAddress(doc, "buying_dealership.address"),
		ContactName: resolve(doc, "buying_dealership.contact_name"),
	}

	f.PickupLocation.Name = resolve(doc, "pickup_location.name")
	f.PickupLocation.Phone = resolve(doc, "pickup_location.phone")
	f.PickupLocation.Address, f.PickupLocation.Breakdown = resolveLocationAddress(doc, "pickup_location")

	f.DropoffLocation.Name = resolve(doc, "dropoff_location.name")
	f.DropoffLocation.Phone = resolve(doc, "dropoff_location.phone")
	f.DropoffLocation.Address, f.DropoffLocation.Breakdown = resolveLocationAddress(doc, "dropoff_location")
	f.DropoffLocation.Lat = resolve(doc, "dropoff_location.lat")
	f.DropoffLocation.Lng = resolve(doc, "dropoff_location.lng")
	if areas != nil {
		key := f.DropoffLocation.Address
		if key == "" {
			key = f.DropoffLocation.Name
		}
		f.DropoffLocation.ServiceArea = areas.ServiceAreaFor(key, f.DropoffLocation.Breakdown.City)
	}

	f.Transaction = model.Transaction{
		TransactionID:     resolve(doc, "transaction.transaction_id"),
		ReleaseFormNumber: resolve(doc, "transaction.release_form_number"),
		ReleaseDate:       resolve(doc, "transaction.release_date"),
		ArrivalDate:       resolve(doc, "transaction.arrival_date"),
	}
	f.Authorization = model.Authorization{
		ReleasedByName: resolve(doc, "authorization.released_by_name"),
		ReleasedToName: resolve(doc, "authorization.released_to_name"),
	}
	f.DealerNotes = resolve(doc, "dealer_notes")

	zap.L().Debug("payload resolved",
		zap.String("vin", f.Vehicle.VIN),
		zap.String("service_type", string(f.Service.ServiceType)),
		zap.String("dropoff_city", f.DropoffLocation.Breakdown.City),
	)
	return f
}

// resolveLocationAddress seeds the structured parser with the best available
// full-address candidate: an explicit full_address field first, then the
// digit-biased general candidate. The stored free-text address is the
// original candidate when it structurally looks like a street address, else
// a rebuild from the parsed breakdown.
func resolveLocationAddress(doc payload.Document, prefix string) (string, model.AddressBreakdown) {
	cand := payload.FirstString(
		resolve(doc, prefix+".full_address"),
		resolveAddress(doc, prefix+".address"),
	)
	if cand == "" {
		return "", model.EmptyBreakdown()
	}
	breakdown := address.Parse(cand)
	if normalize.LooksLikeStreet(cand) {
		return cand, breakdown
	}
	return address.Build(breakdown), breakdown
}

// resolveYear prefers an explicit year-like field, reduced to its 4-digit
// token, then falls back to scanning the unstructured extracted text for a
// "Year: NNNN" line.
func resolveYear(doc payload.Document, rawText string) string {
	if field := resolve(doc, "vehicle.year"); field != "" {
		if y := yearRe.FindString(field); y != "" {
			return y
		}
	}
	if m := textYearRe.FindStringSubmatch(rawText); m != nil {
		return m[1]
	}
	return ""
}

// resolveOdometer prefers an explicit odometer field (trailing km unit
// stripped, everything but digits and one decimal point dropped), then
// scans the raw text for an "Odometer: N km" line.
func resolveOdometer(doc payload.Document, rawText string) string {
	if field := resolve(doc, "vehicle.odometer_km"); field != "" {
		if v := digitsAndPoint(kmSuffixRe.ReplaceAllString(field, "")); v != "" {
			return v
		}
	}
	if m := textOdoRe.FindStringSubmatch(rawText); m != nil {
		return digitsAndPoint(m[1])
	}
	return ""
}

func digitsAndPoint(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	seenPoint := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			b.WriteRune(r)
			seenPoint = true
		}
	}
	return strings.Trim(b.String(), ".")
}
