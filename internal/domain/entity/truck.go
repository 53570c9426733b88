package entity

// Truck represents a known truck with a stored tare weight, used to pre-fill
// the tare at weigh-in.
type Truck struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CarrierID string  `json:"carrier_id,omitempty"`
	Plate     string  `json:"plate,omitempty"`
	TareLbs   float64 `json:"tare_lbs,omitempty"`
	Active    bool    `json:"active"`
}
