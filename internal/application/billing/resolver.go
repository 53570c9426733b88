package billing

import (
	"strings"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
)

// Profile is the pricing picture for a single ticket after the resolution
// priority has been applied: a method snapshot frozen on the ticket at
// weigh-out beats the customer's live profile, which beats inference from
// whichever rates happen to be set.
type Profile struct {
	// PricingMethod is the billing method string ("per_ton", "per_yard",
	// or a free-form variant containing "ton" or "yard"). Empty means no
	// explicit method anywhere and the unit must be inferred from rates.
	PricingMethod string

	// SnapshotRate is set only when the method came from the ticket
	// itself; it is the rate captured alongside the method and overrides
	// every customer rate.
	SnapshotRate *float64

	PriceTon      *float64
	PriceYard     *float64
	UniversalRate *float64

	FreightMethod string
	FreightRate   *float64
}

// ResolveProfile merges the ticket's pricing snapshot with the customer's
// profile. A snapshot is honored only when both the method and its rate are
// present; a method without a rate would bill at zero, so a half-snapshot
// falls back to the customer profile. Freight always comes from the customer
// first, then from the ticket's own freight rate.
func ResolveProfile(t *entity.Ticket, c *entity.Customer) Profile {
	var p Profile

	if t.PricingMethod != "" && t.Rate != nil {
		p.PricingMethod = t.PricingMethod
		p.SnapshotRate = t.Rate
	} else if c != nil {
		p.PricingMethod = c.PricingMethod
		p.PriceTon = c.PriceTon
		p.PriceYard = c.PriceYard
		p.UniversalRate = c.UniversalRate
	}

	if c != nil && c.FreightRate != nil {
		p.FreightMethod = c.FreightMethod
		p.FreightRate = c.FreightRate
	} else if t.FreightRate != nil {
		p.FreightRate = t.FreightRate
		if c != nil {
			p.FreightMethod = c.FreightMethod
		}
	}

	return p
}

// BillByYard decides the billing unit for the product line.
//
// An explicit method wins: anything containing "yard" bills by yard,
// anything else with a method bills by ton. Without a method, a customer
// carrying only a per-yard rate bills by yard; every other rate shape
// (only per-ton, both, universal-only, none) bills by ton.
func (p Profile) BillByYard() bool {
	if p.PricingMethod != "" {
		return strings.Contains(strings.ToLower(p.PricingMethod), "yard")
	}
	return p.PriceYard != nil && p.PriceTon == nil
}

// UnitRate returns the resolved rate for the chosen unit, or nil when the
// profile carries nothing usable and the caller must fall back to the
// product's own price.
func (p Profile) UnitRate(billByYard bool) *float64 {
	if p.SnapshotRate != nil {
		return p.SnapshotRate
	}
	if billByYard {
		if p.PriceYard != nil {
			return p.PriceYard
		}
	} else {
		if p.PriceTon != nil {
			return p.PriceTon
		}
		if p.UniversalRate != nil {
			return p.UniversalRate
		}
	}
	return nil
}
