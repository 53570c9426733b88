package entity

import (
	"github.com/beaverpumice/scalehouse-api/internal/domain/enum"
)

// Ticket represents one weighing event at the scale house. Net tons and net
// yards are derived by the upstream store from gross-tare via the product's
// weight-per-cubic-yard factor; billing consumes them as-is. The write path
// pre-computes the same values so a freshly created ticket reads back
// complete before the store's own formulas have run.
type Ticket struct {
	ID           string            `json:"id"`
	Number       int               `json:"number"`
	CustomerID   string            `json:"customer_id,omitempty"`
	CustomerName string            `json:"customer_name,omitempty"`
	ProductID    string            `json:"product_id,omitempty"`
	ProductName  string            `json:"product_name,omitempty"`
	CarrierID    string            `json:"carrier_id,omitempty"`
	CarrierName  string            `json:"carrier_name,omitempty"`
	TruckText    string            `json:"truck_text,omitempty"`
	GrossLbs     int               `json:"gross_lbs"`
	TareLbs      int               `json:"tare_lbs"`
	NetLbs       int               `json:"net_lbs"`
	NetTons      float64           `json:"net_tons"`
	NetYards     float64           `json:"net_yards"`
	PONumber     string            `json:"po_number,omitempty"`
	Note         string            `json:"note,omitempty"`
	Status       enum.TicketStatus `json:"status"`
	Date         string            `json:"date,omitempty"`

	// Freight as recorded on the ticket. FreightRate is a lookup from the
	// customer at ticket-close time; FreightCharge is the store's own
	// pre-computed value, kept for validation only.
	FreightCharge float64  `json:"freight_charge,omitempty"`
	FreightRate   *float64 `json:"freight_rate,omitempty"`

	// Pricing snapshot recorded when the ticket closed. When present these
	// outrank the customer's current pricing profile.
	PricingMethod string   `json:"pricing_method,omitempty"`
	Rate          *float64 `json:"rate,omitempty"`

	// ItemCode is the accounting item code looked up from the product at
	// close time. May be absent or malformed; resolution validates it.
	ItemCode string `json:"item_code,omitempty"`

	Exported   bool   `json:"exported"`
	ExportDate string `json:"export_date,omitempty"`
}
