package extract

import "github.com/clearhaul/dispatch-cli/internal/payload"

// nestedRef addresses a key inside a nested payload group: any of the group
// aliases, then any of the key aliases inside it.
type nestedRef struct {
	group []string
	keys  []string
}

// aliasSet lists every place a canonical field may come from, in priority
// order: nested group lookups first, then flattened keys on the root
// document. Keeping this declarative makes the resolution order auditable
// per field instead of buried in control flow.
type aliasSet struct {
	nested []nestedRef
	flat   []string
}

// candidates materializes the lookups against one document, preserving order.
// Nested descent goes through the tagged Lookup so a scalar sitting where a
// group was expected is skipped, not misread.
func (a aliasSet) candidates(doc payload.Document) []any {
	vals := make([]any, 0, len(a.nested)+1)
	for _, n := range a.nested {
		if v, status := doc.Lookup(n.group, n.keys); status == payload.Present {
			vals = append(vals, v)
		}
	}
	if len(a.flat) > 0 {
		vals = append(vals, doc.Loose(a.flat...))
	}
	return vals
}

// Group alias lists shared across fields. Source documents disagree on
// whether the seller and the pickup point are the same party, so the
// dealership sets deliberately overlap the location sets below.
var (
	vehicleGroups = []string{"vehicle", "vehicle_info", "vehicleInfo", "vehicle_details", "vehicleDetails", "unit"}
	sellingGroups = []string{"selling_dealership", "sellingDealership", "selling_dealer", "sellingDealer", "seller", "dealership"}
	buyingGroups  = []string{"buying_dealership", "buyingDealership", "buying_dealer", "buyingDealer", "buyer", "purchaser"}
	pickupGroups  = []string{"pickup_location", "pickupLocation", "pick_up_location", "pickUpLocation", "pickup", "origin"}
	dropoffGroups = []string{
		"dropoff_location", "dropoffLocation", "drop_off_location", "dropOffLocation",
		"dropoff", "drop_off", "delivery_location", "deliveryLocation", "destination",
	}
	transactionGroups = []string{"transaction", "transaction_info", "transactionInfo", "release_form", "releaseForm"}
	authGroups        = []string{"authorization", "authorisation", "release_info", "releaseInfo"}
)

var (
	nameKeys    = []string{"name", "business_name", "businessName", "company", "company_name", "companyName"}
	phoneKeys   = []string{"phone", "phone_number", "phoneNumber", "telephone", "tel", "contact_phone", "contactPhone"}
	addressKeys = []string{"address", "full_address", "fullAddress", "street_address", "streetAddress", "address_line", "addressLine", "location"}
	contactKeys = []string{"contact_name", "contactName", "contact", "contact_person", "contactPerson", "attention", "attn"}
)

// fieldAliases is the master table: canonical field → ordered sources.
var fieldAliases = map[string]aliasSet{
	"service.service_type": {
		flat: []string{"service_type", "serviceType", "service", "transport_type", "transportType", "job_type", "jobType"},
	},

	"vehicle.vin": {
		nested: []nestedRef{{vehicleGroups, []string{"vin", "vin_number", "vinNumber", "serial_number", "serialNumber"}}},
		flat:   []string{"vin", "vehicle_vin", "vehicleVin", "vin_number", "vinNumber", "serial_number"},
	},
	"vehicle.year": {
		nested: []nestedRef{{vehicleGroups, []string{"year", "model_year", "modelYear"}}},
		flat:   []string{"year", "vehicle_year", "vehicleYear", "model_year", "modelYear"},
	},
	"vehicle.make": {
		nested: []nestedRef{{vehicleGroups, []string{"make", "manufacturer", "brand"}}},
		flat:   []string{"make", "vehicle_make", "vehicleMake", "manufacturer", "brand"},
	},
	"vehicle.model": {
		nested: []nestedRef{{vehicleGroups, []string{"model", "model_name", "modelName"}}},
		flat:   []string{"model", "vehicle_model", "vehicleModel", "model_name", "modelName"},
	},
	"vehicle.transmission": {
		nested: []nestedRef{{vehicleGroups, []string{"transmission", "transmission_type", "transmissionType", "gearbox"}}},
		flat:   []string{"transmission", "vehicle_transmission", "vehicleTransmission", "transmission_type", "transmissionType"},
	},
	"vehicle.odometer_km": {
		nested: []nestedRef{{vehicleGroups, []string{"odometer_km", "odometerKm", "odometer", "mileage", "km", "kilometers", "kilometres"}}},
		flat:   []string{"odometer_km", "odometerKm", "odometer", "vehicle_odometer", "vehicleOdometer", "mileage", "kilometers", "kilometres"},
	},
	"vehicle.exterior_color": {
		nested: []nestedRef{{vehicleGroups, []string{"exterior_color", "exteriorColor", "exterior_colour", "color", "colour"}}},
		flat:   []string{"exterior_color", "exteriorColor", "exterior_colour", "vehicle_color", "vehicleColor", "color", "colour"},
	},

	"selling_dealership.name": {
		nested: []nestedRef{
			{sellingGroups, nameKeys},
			{pickupGroups, nameKeys},
		},
		flat: []string{
			"selling_dealership_name", "sellingDealershipName", "dealership_name", "dealershipName",
			"seller_name", "sellerName", "dealer_name", "dealerName",
			"pickup_location_name", "pickupLocationName", "pickup_name", "pickupName",
		},
	},
	"selling_dealership.phone": {
		nested: []nestedRef{
			{sellingGroups, phoneKeys},
			{pickupGroups, phoneKeys},
		},
		flat: []string{"selling_dealership_phone", "sellingDealershipPhone", "dealership_phone", "dealershipPhone", "seller_phone", "sellerPhone", "pickup_phone", "pickupPhone"},
	},
	"selling_dealership.address": {
		nested: []nestedRef{
			{sellingGroups, addressKeys},
			{pickupGroups, addressKeys},
		},
		flat: []string{"selling_dealership_address", "sellingDealershipAddress", "dealership_address", "dealershipAddress", "seller_address", "sellerAddress"},
	},
	"selling_dealership.contact_name": {
		nested: []nestedRef{
			{sellingGroups, contactKeys},
			{pickupGroups, contactKeys},
		},
		flat: []string{"selling_contact_name", "sellingContactName", "dealer_contact", "dealerContact", "contact_name", "contactName"},
	},

	"buying_dealership.name": {
		nested: []nestedRef{
			{buyingGroups, nameKeys},
			{dropoffGroups, nameKeys},
		},
		flat: []string{
			"buying_dealership_name", "buyingDealershipName", "buyer_name", "buyerName",
			"purchaser_name", "purchaserName", "dropoff_location_name", "dropoffLocationName",
		},
	},
	"buying_dealership.phone": {
		nested: []nestedRef{
			{buyingGroups, phoneKeys},
			{dropoffGroups, phoneKeys},
		},
		flat: []string{"buying_dealership_phone", "buyingDealershipPhone", "buyer_phone", "buyerPhone", "purchaser_phone", "purchaserPhone"},
	},
	"buying_dealership.address": {
		nested: []nestedRef{
			{buyingGroups, addressKeys},
			{dropoffGroups, addressKeys},
		},
		flat: []string{"buying_dealership_address", "buyingDealershipAddress", "buyer_address", "buyerAddress", "purchaser_address", "purchaserAddress"},
	},
	"buying_dealership.contact_name": {
		nested: []nestedRef{
			{buyingGroups, contactKeys},
			{dropoffGroups, contactKeys},
		},
		flat: []string{"buying_contact_name", "buyingContactName", "buyer_contact", "buyerContact"},
	},

	"pickup_location.name": {
		nested: []nestedRef{
			{pickupGroups, nameKeys},
			{sellingGroups, nameKeys},
		},
		flat: []string{"pickup_location_name", "pickupLocationName", "pickup_name", "pickupName", "origin_name", "originName"},
	},
	"pickup_location.phone": {
		nested: []nestedRef{
			{pickupGroups, phoneKeys},
			{sellingGroups, phoneKeys},
		},
		flat: []string{"pickup_location_phone", "pickupLocationPhone", "pickup_phone", "pickupPhone", "origin_phone", "originPhone"},
	},
	"pickup_location.full_address": {
		nested: []nestedRef{{pickupGroups, []string{"full_address", "fullAddress"}}},
		flat:   []string{"pickup_full_address", "pickupFullAddress"},
	},
	"pickup_location.address": {
		nested: []nestedRef{
			{pickupGroups, addressKeys},
			{sellingGroups, addressKeys},
		},
		flat: []string{"pickup_location_address", "pickupLocationAddress", "pickup_address", "pickupAddress", "origin_address", "originAddress"},
	},

	"dropoff_location.name": {
		nested: []nestedRef{
			{dropoffGroups, nameKeys},
			{buyingGroups, nameKeys},
		},
		flat: []string{"dropoff_location_name", "dropoffLocationName", "dropoff_name", "dropoffName", "destination_name", "destinationName", "delivery_name", "deliveryName"},
	},
	"dropoff_location.phone": {
		nested: []nestedRef{
			{dropoffGroups, phoneKeys},
			{buyingGroups, phoneKeys},
		},
		flat: []string{"dropoff_location_phone", "dropoffLocationPhone", "dropoff_phone", "dropoffPhone", "destination_phone", "destinationPhone"},
	},
	"dropoff_location.full_address": {
		nested: []nestedRef{{dropoffGroups, []string{"full_address", "fullAddress"}}},
		flat:   []string{"dropoff_full_address", "dropoffFullAddress", "delivery_full_address", "deliveryFullAddress"},
	},
	"dropoff_location.address": {
		nested: []nestedRef{
			{dropoffGroups, addressKeys},
			{buyingGroups, addressKeys},
		},
		flat: []string{"dropoff_location_address", "dropoffLocationAddress", "dropoff_address", "dropoffAddress", "destination_address", "destinationAddress", "delivery_address", "deliveryAddress"},
	},
	"dropoff_location.lat": {
		nested: []nestedRef{{dropoffGroups, []string{"lat", "latitude"}}},
		flat:   []string{"dropoff_lat", "dropoffLat", "lat", "latitude"},
	},
	"dropoff_location.lng": {
		nested: []nestedRef{{dropoffGroups, []string{"lng", "lon", "long", "longitude"}}},
		flat:   []string{"dropoff_lng", "dropoffLng", "lng", "lon", "longitude"},
	},

	"transaction.transaction_id": {
		nested: []nestedRef{{transactionGroups, []string{"transaction_id", "transactionId", "id", "reference", "reference_number", "referenceNumber"}}},
		flat:   []string{"transaction_id", "transactionId", "transaction_number", "transactionNumber", "order_id", "orderId", "reference_number", "referenceNumber"},
	},
	"transaction.release_form_number": {
		nested: []nestedRef{{transactionGroups, []string{"release_form_number", "releaseFormNumber", "form_number", "formNumber", "number"}}},
		flat:   []string{"release_form_number", "releaseFormNumber", "release_number", "releaseNumber", "form_number", "formNumber"},
	},
	"transaction.release_date": {
		nested: []nestedRef{{transactionGroups, []string{"release_date", "releaseDate", "date_released", "dateReleased", "date"}}},
		flat:   []string{"release_date", "releaseDate", "date_released", "dateReleased", "date_of_release", "dateOfRelease"},
	},
	"transaction.arrival_date": {
		nested: []nestedRef{{transactionGroups, []string{"arrival_date", "arrivalDate", "eta", "estimated_arrival", "estimatedArrival"}}},
		flat:   []string{"arrival_date", "arrivalDate", "eta", "estimated_arrival", "estimatedArrival", "delivery_date", "deliveryDate"},
	},

	"authorization.released_by_name": {
		nested: []nestedRef{{authGroups, []string{"released_by", "releasedBy", "released_by_name", "releasedByName", "by"}}},
		flat:   []string{"released_by", "releasedBy", "released_by_name", "releasedByName"},
	},
	"authorization.released_to_name": {
		nested: []nestedRef{{authGroups, []string{"released_to", "releasedTo", "released_to_name", "releasedToName", "to"}}},
		flat:   []string{"released_to", "releasedTo", "released_to_name", "releasedToName", "release_to", "authorized_to", "authorizedTo"},
	},

	"dealer_notes": {
		flat: []string{"dealer_notes", "dealerNotes", "notes", "comments", "remarks", "special_instructions", "specialInstructions"},
	},

	"raw_text": {
		flat: []string{"raw_text", "rawText", "extracted_text", "extractedText", "ocr_text", "ocrText", "text", "content"},
	},
}

// resolve returns the first non-empty candidate for a canonical field.
func resolve(doc payload.Document, field string) string {
	return payload.FirstString(fieldAliases[field].candidates(doc)...)
}

// resolveAddress is resolve with the address-vs-name bias: among non-empty
// candidates the first digit-bearing one wins.
func resolveAddress(doc payload.Document, field string) string {
	return payload.BestAddress(fieldAliases[field].candidates(doc)...)
}
