package model

import "time"

// ServiceType distinguishes the two bookable job directions.
type ServiceType string

const (
	ServiceTypePickup   ServiceType = "pickup_one_way"
	ServiceTypeDelivery ServiceType = "delivery_one_way"
)

// VehicleTypeStandard is the only vehicle class currently bookable.
const VehicleTypeStandard = "standard"

// Service holds the job direction and vehicle class.
type Service struct {
	ServiceType ServiceType `json:"service_type"`
	VehicleType string      `json:"vehicle_type"`
}

// Vehicle describes the unit being moved. All fields are strings, including
// numeric-looking ones, because they feed editable form inputs downstream.
type Vehicle struct {
	VIN           string `json:"vin"`
	Year          string `json:"year"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	Transmission  string `json:"transmission"`
	OdometerKM    string `json:"odometer_km"`
	ExteriorColor string `json:"exterior_color"`
}

// Dealership is a party to the transaction (selling or buying side).
type Dealership struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ContactName string `json:"contact_name"`
}

// Location is a physical pickup or dropoff point. Address is the free-text
// form; Breakdown is the structured form kept alongside it.
type Location struct {
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Address   string           `json:"address"`
	Breakdown AddressBreakdown `json:"breakdown"`
}

// DropoffLocation extends Location with routing hints. Lat and Lng are
// numeric-string-encoded coordinates supplied by an external geocoder;
// ServiceArea comes from the pricing-table lookup.
type DropoffLocation struct {
	Location
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
	ServiceArea string `json:"service_area"`
}

// Transaction holds the paperwork identifiers from the release form.
type Transaction struct {
	TransactionID     string `json:"transaction_id"`
	ReleaseFormNumber string `json:"release_form_number"`
	ReleaseDate       string `json:"release_date"`
	ArrivalDate       string `json:"arrival_date"`
}

// Authorization records who released the vehicle and to whom.
type Authorization struct {
	ReleasedByName string `json:"released_by_name"`
	ReleasedToName string `json:"released_to_name"`
}

// OrderForm is the canonical order record every ingestion path converges to.
// Every leaf is present (possibly empty) whenever the form itself is non-nil.
type OrderForm struct {
	Service           Service         `json:"service"`
	Vehicle           Vehicle         `json:"vehicle"`
	SellingDealership Dealership      `json:"selling_dealership"`
	BuyingDealership  Dealership      `json:"buying_dealership"`
	PickupLocation    Location        `json:"pickup_location"`
	DropoffLocation   DropoffLocation `json:"dropoff_location"`
	Transaction       Transaction     `json:"transaction"`
	Authorization     Authorization   `json:"authorization"`
	DealerNotes       string          `json:"dealer_notes"`
}

// NewOrderForm returns a form with the fixed defaults applied: pickup service,
// standard vehicle class, Canadian addresses.
func NewOrderForm() *OrderForm {
	f := &OrderForm{}
	f.Service.ServiceType = ServiceTypePickup
	f.Service.VehicleType = VehicleTypeStandard
	f.PickupLocation.Breakdown = EmptyBreakdown()
	f.DropoffLocation.Breakdown = EmptyBreakdown()
	return f
}

// OrderSource describes which ingestion path produced an order.
type OrderSource string

const (
	OrderSourceWebhook OrderSource = "webhook"
	OrderSourceManual  OrderSource = "manual"
	OrderSourceImport  OrderSource = "import"
)

// OrderStatus represents the booking state of a stored order.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Order is a persisted canonical form plus bookkeeping.
type Order struct {
	ID        string      `json:"id"`
	Source    OrderSource `json:"source"`
	Status    OrderStatus `json:"status"`
	Form      *OrderForm  `json:"form"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
