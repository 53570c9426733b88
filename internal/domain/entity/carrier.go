package entity

// Carrier represents a hauling company tickets can be weighed for.
type Carrier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Active  bool   `json:"active"`
}
