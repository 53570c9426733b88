package billing

import (
	"strings"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/pkg/money"
)

// PricedLine is the numeric core of a line item before it is attached to an
// invoice. All three values are rounded to two decimals, and Amount is the
// product of the two rounded factors.
type PricedLine struct {
	BillByYard bool
	Quantity   float64
	UnitPrice  float64
	Amount     float64
}

// PriceProduct prices the material charge of one ticket. Quantity is the
// ticket's net tons or net yards depending on the resolved unit; the unit
// price walks the chain resolved rate, product per-ton price, flat default.
func PriceProduct(t *entity.Ticket, p Profile, product *entity.Product) PricedLine {
	billByYard := p.BillByYard()

	qty := t.NetTons
	if billByYard {
		qty = t.NetYards
	}

	price := entity.DefaultPricePerTon
	if rate := p.UnitRate(billByYard); rate != nil {
		price = *rate
	} else if product != nil && product.PricePerTon > 0 {
		price = product.PricePerTon
	}

	line := PricedLine{
		BillByYard: billByYard,
		Quantity:   money.Round2(qty),
		UnitPrice:  money.Round2(price),
	}
	line.Amount = money.Round2(line.Quantity * line.UnitPrice)
	return line
}

// PriceFreight prices the hauling charge of one ticket, or returns nil when
// the ticket carries no usable freight rate. The freight quantity cascades:
// an explicit freight unit wins when the ticket has weight in that unit,
// otherwise the freight line mirrors the unit the product line billed in.
// With no weight at all the rate is charged flat as a single unit.
func PriceFreight(t *entity.Ticket, p Profile, productLine PricedLine) *PricedLine {
	if p.FreightRate == nil || *p.FreightRate <= 0 {
		return nil
	}

	method := strings.ToLower(p.FreightMethod)
	price := money.Round2(*p.FreightRate)

	var qty float64
	var byYard bool
	switch {
	case strings.Contains(method, "yard") && t.NetYards > 0:
		qty, byYard = t.NetYards, true
	case strings.Contains(method, "ton") && t.NetTons > 0:
		qty = t.NetTons
	case productLine.BillByYard && t.NetYards > 0:
		qty, byYard = t.NetYards, true
	case t.NetTons > 0:
		qty = t.NetTons
	default:
		// No weight on the ticket: charge the rate once.
		return &PricedLine{Quantity: 1, UnitPrice: price, Amount: price}
	}

	line := PricedLine{
		BillByYard: byYard,
		Quantity:   money.Round2(qty),
		UnitPrice:  price,
	}
	line.Amount = money.Round2(line.Quantity * line.UnitPrice)
	return &line
}
