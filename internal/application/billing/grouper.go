package billing

import (
	"fmt"
	"strings"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/enum"
)

// unknownCustomerKey buckets tickets with no customer link so they still
// appear on the export instead of silently disappearing.
const unknownCustomerKey = "UNKNOWN"

// BuildOptions control how tickets are assembled into invoices.
type BuildOptions struct {
	// InvoiceDate is the transaction date stamped on every invoice,
	// already formatted for the accounting import (MM/DD/YYYY).
	InvoiceDate string

	// GroupByCustomer collects all of a customer's tickets onto one
	// invoice. When false every ticket becomes its own invoice.
	GroupByCustomer bool

	// StartingNumber is the first invoice number assigned; subsequent
	// invoices count up in the order they are built.
	StartingNumber int

	// UseTicketNumber numbers each invoice with its ticket's own number
	// instead of the sequential counter. Only meaningful per-ticket;
	// a grouped invoice spans several tickets and has no single number
	// to borrow.
	UseTicketNumber bool
}

// BuildInvoices turns priced-ready tickets into invoice documents. Grouping
// preserves first-seen ticket order, both across customers and within one
// customer's invoice, so the export reads in the same order the tickets were
// selected.
func BuildInvoices(tickets []*entity.Ticket, customers map[string]*entity.Customer, products *entity.ProductIndex, opts BuildOptions) []*Invoice {
	if opts.GroupByCustomer {
		return buildGrouped(tickets, customers, products, opts)
	}
	return buildPerTicket(tickets, customers, products, opts)
}

func buildGrouped(tickets []*entity.Ticket, customers map[string]*entity.Customer, products *entity.ProductIndex, opts BuildOptions) []*Invoice {
	groups := make(map[string][]*entity.Ticket)
	var order []string
	for _, t := range tickets {
		key := t.CustomerID
		if key == "" {
			key = unknownCustomerKey
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	invoices := make([]*Invoice, 0, len(order))
	number := opts.StartingNumber
	for _, key := range order {
		inv := buildInvoice(number, groups[key], customers[key], products, opts)
		invoices = append(invoices, inv)
		number++
	}
	return invoices
}

func buildPerTicket(tickets []*entity.Ticket, customers map[string]*entity.Customer, products *entity.ProductIndex, opts BuildOptions) []*Invoice {
	invoices := make([]*Invoice, 0, len(tickets))
	number := opts.StartingNumber
	for _, t := range tickets {
		n := number
		if opts.UseTicketNumber && t.Number > 0 {
			n = t.Number
		}
		inv := buildInvoice(n, []*entity.Ticket{t}, customers[t.CustomerID], products, opts)
		invoices = append(invoices, inv)
		number++
	}
	return invoices
}

// buildInvoice assembles one invoice from its tickets: a product line per
// ticket, a freight line when the ticket carries a freight rate, and a total
// summed from the already-rounded line amounts.
func buildInvoice(number int, tickets []*entity.Ticket, customer *entity.Customer, products *entity.ProductIndex, opts BuildOptions) *Invoice {
	inv := &Invoice{
		Number: number,
		Date:   opts.InvoiceDate,
		Payee:  payeeName(tickets, customer),
	}
	inv.AddressLines = addressLines(inv.Payee, customer)

	for _, t := range tickets {
		if inv.PONumber == "" {
			inv.PONumber = t.PONumber
		}
		inv.TicketIDs = append(inv.TicketIDs, t.ID)

		product := lookupProduct(t, products)
		profile := ResolveProfile(t, customer)

		line := PriceProduct(t, profile, product)
		name := displayProductName(t, product)
		inv.Lines = append(inv.Lines, LineItem{
			TicketNumber: t.Number,
			Account:      salesAccount,
			ItemCode:     ResolveItemCode(t.ItemCode, t.ProductID, name, products),
			Memo:         productMemo(t, name),
			Unit:         unitOf(line.BillByYard),
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			Amount:       line.Amount,
		})
		inv.Total += line.Amount

		if freight := PriceFreight(t, profile, line); freight != nil {
			inv.Lines = append(inv.Lines, LineItem{
				TicketNumber: t.Number,
				Account:      freightAccount,
				ItemCode:     freightItemCode,
				Memo:         fmt.Sprintf("Freight - Ticket %d", t.Number),
				Unit:         unitOf(freight.BillByYard),
				Quantity:     freight.Quantity,
				UnitPrice:    freight.UnitPrice,
				Amount:       freight.Amount,
			})
			inv.Total += freight.Amount
		}
	}

	return inv
}

// lookupProduct finds the ticket's product by ID then by name. A ticket
// referencing a product that no longer exists still prices at the flat
// default, so the lookup may return nil.
func lookupProduct(t *entity.Ticket, products *entity.ProductIndex) *entity.Product {
	if p := products.ByID(t.ProductID); p != nil {
		return p
	}
	return products.ByName(t.ProductName)
}

func displayProductName(t *entity.Ticket, product *entity.Product) string {
	if t.ProductName != "" {
		return t.ProductName
	}
	if product != nil {
		return product.Name
	}
	return ""
}

// productMemo builds the split memo the bookkeepers read when reconciling:
// ticket number and product, then the truck and PO when known.
func productMemo(t *entity.Ticket, productName string) string {
	memo := fmt.Sprintf("Ticket - %d / %s", t.Number, productName)
	if t.TruckText != "" {
		memo += " / " + t.TruckText
	}
	if t.PONumber != "" {
		memo += " " + t.PONumber
	}
	return memo
}

func unitOf(billByYard bool) enum.BillingUnit {
	if billByYard {
		return enum.BillingUnitYard
	}
	return enum.BillingUnitTon
}

func payeeName(tickets []*entity.Ticket, customer *entity.Customer) string {
	if customer != nil {
		return customer.BillingName()
	}
	for _, t := range tickets {
		if t.CustomerName != "" {
			return t.CustomerName
		}
	}
	return "Unknown Customer"
}

// addressLines fills the four address slots of the transaction row. Line
// three stays blank; the accounting import tolerates gaps but not
// reordering.
func addressLines(payee string, customer *entity.Customer) [4]string {
	lines := [4]string{payee, "", "", ""}
	if customer == nil {
		return lines
	}
	lines[1] = customer.Address1

	var parts []string
	for _, s := range []string{customer.City, customer.State, customer.Zip} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	lines[3] = strings.Join(parts, ", ")
	return lines
}
