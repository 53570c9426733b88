package entity

// Default conversion and pricing constants applied when a product record is
// missing or incomplete. These match the values the scale house has always
// used for unclassified pumice.
const (
	DefaultLbsPerYard  = 1350.0
	DefaultPricePerTon = 13.0
)

// Product is read-only reference data: name, accounting item code, default
// per-ton price and the weight factor the store uses to derive net yards.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ItemCode    string  `json:"item_code,omitempty"`
	PricePerTon float64 `json:"price_per_ton"`
	LbsPerYard  float64 `json:"lbs_per_yard"`
}
