package entity

// Customer represents a billing customer and its pricing profile. At most one
// of PriceTon/PriceYard is authoritative for a given ticket; when both are set,
// ton billing wins unless PricingMethod explicitly says yard.
type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	QBName string `json:"qb_name,omitempty"`

	// Billing address
	Address1 string `json:"address1,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Zip      string `json:"zip,omitempty"`

	// Pricing profile. Nil means "not set"; a rate that parses to zero is
	// also treated as not set (see pkg/money.ParseCurrency).
	PricingMethod string   `json:"pricing_method,omitempty"`
	PriceTon      *float64 `json:"price_ton,omitempty"`
	PriceYard     *float64 `json:"price_yard,omitempty"`
	UniversalRate *float64 `json:"universal_rate,omitempty"`
	FreightMethod string   `json:"freight_method,omitempty"`
	FreightRate   *float64 `json:"freight_rate,omitempty"`

	Email           string   `json:"email,omitempty"`
	AutoEmail       bool     `json:"auto_email"`
	AllowedProducts []string `json:"allowed_products,omitempty"`
}

// BillingName returns the name used on invoices, preferring the QuickBooks
// customer name when one is configured.
func (c *Customer) BillingName() string {
	if c.QBName != "" {
		return c.QBName
	}
	return c.Name
}
