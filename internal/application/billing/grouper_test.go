package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/enum"
)

func testProducts() *entity.ProductIndex {
	return entity.NewProductIndex([]*entity.Product{
		{ID: "recP1", Name: "3/8 x 1/8", ItemCode: "P001", PricePerTon: 17.5},
		{ID: "recP3", Name: "3/8 Minus", ItemCode: "P003", PricePerTon: 14},
	})
}

func testCustomers() map[string]*entity.Customer {
	return map[string]*entity.Customer{
		"recCustA": {
			ID: "recCustA", Name: "Acme Aggregates", QBName: "Acme Aggregates Inc",
			PricingMethod: "per_ton", PriceTon: fptr(20),
			Address1: "100 Quarry Rd", City: "Bend", State: "OR", Zip: "97701",
		},
		"recCustB": {
			ID: "recCustB", Name: "Basalt Landscaping",
			PricingMethod: "per_yard", PriceYard: fptr(15),
			FreightMethod: "per_ton", FreightRate: fptr(5),
		},
	}
}

func TestBuildInvoices_GroupsByCustomerInFirstSeenOrder(t *testing.T) {
	tickets := []*entity.Ticket{
		{ID: "t1", Number: 501, CustomerID: "recCustB", ProductID: "recP1", ProductName: "3/8 x 1/8", NetTons: 15, NetYards: 22.22},
		{ID: "t2", Number: 502, CustomerID: "recCustA", ProductID: "recP1", ProductName: "3/8 x 1/8", NetTons: 15},
		{ID: "t3", Number: 503, CustomerID: "recCustB", ProductID: "recP3", ProductName: "3/8 Minus", NetTons: 8, NetYards: 11.85},
	}

	invoices := BuildInvoices(tickets, testCustomers(), testProducts(), BuildOptions{
		InvoiceDate:     "01/15/2026",
		GroupByCustomer: true,
		StartingNumber:  10001,
	})

	require.Len(t, invoices, 2)

	b := invoices[0]
	assert.Equal(t, 10001, b.Number)
	assert.Equal(t, "Basalt Landscaping", b.Payee)
	assert.Equal(t, []string{"t1", "t3"}, b.TicketIDs)
	// Two tickets, each with a product and a freight line.
	require.Len(t, b.Lines, 4)
	assert.Equal(t, salesAccount, b.Lines[0].Account)
	assert.Equal(t, freightAccount, b.Lines[1].Account)

	// Ticket 501: 22.22 yd x 15.00 = 333.30, freight 15.00 t x 5.00 = 75.00.
	assert.Equal(t, enum.BillingUnitYard, b.Lines[0].Unit)
	assert.Equal(t, enum.BillingUnitTon, b.Lines[1].Unit)
	assert.Equal(t, 22.22, b.Lines[0].Quantity)
	assert.Equal(t, 15.0, b.Lines[0].UnitPrice)
	assert.Equal(t, 333.3, b.Lines[0].Amount)
	assert.Equal(t, "TRK", b.Lines[1].ItemCode)
	assert.Equal(t, "Freight - Ticket 501", b.Lines[1].Memo)
	assert.Equal(t, 75.0, b.Lines[1].Amount)

	// Ticket 503: 11.85 yd x 15.00 = 177.75, freight 8 t x 5.00 = 40.00.
	assert.Equal(t, 177.75, b.Lines[2].Amount)
	assert.Equal(t, 40.0, b.Lines[3].Amount)

	// Total is the sum of the already-rounded line amounts.
	assert.InDelta(t, 626.05, b.Total, 1e-9)

	a := invoices[1]
	assert.Equal(t, 10002, a.Number)
	assert.Equal(t, "Acme Aggregates Inc", a.Payee, "billing name prefers the accounting alias")
	require.Len(t, a.Lines, 1)
	assert.Equal(t, 300.0, a.Lines[0].Amount)
	assert.Equal(t, [4]string{"Acme Aggregates Inc", "100 Quarry Rd", "", "Bend, OR, 97701"}, a.AddressLines)
}

func TestBuildInvoices_PerTicket(t *testing.T) {
	tickets := []*entity.Ticket{
		{ID: "t1", Number: 701, CustomerID: "recCustA", ProductID: "recP1", NetTons: 2},
		{ID: "t2", Number: 702, CustomerID: "recCustA", ProductID: "recP1", NetTons: 3},
	}

	invoices := BuildInvoices(tickets, testCustomers(), testProducts(), BuildOptions{
		InvoiceDate:    "01/15/2026",
		StartingNumber: 5000,
	})
	require.Len(t, invoices, 2)
	assert.Equal(t, 5000, invoices[0].Number)
	assert.Equal(t, 5001, invoices[1].Number)

	invoices = BuildInvoices(tickets, testCustomers(), testProducts(), BuildOptions{
		InvoiceDate:     "01/15/2026",
		StartingNumber:  5000,
		UseTicketNumber: true,
	})
	require.Len(t, invoices, 2)
	assert.Equal(t, 701, invoices[0].Number)
	assert.Equal(t, 702, invoices[1].Number)
}

func TestBuildInvoices_UnlinkedTicketsShareTheUnknownBucket(t *testing.T) {
	tickets := []*entity.Ticket{
		{ID: "t1", Number: 801, CustomerName: "Walk-in Hauler", ProductName: "3/8 Minus", NetTons: 1},
		{ID: "t2", Number: 802, ProductName: "3/8 Minus", NetTons: 2},
	}

	invoices := BuildInvoices(tickets, testCustomers(), testProducts(), BuildOptions{
		InvoiceDate:     "01/15/2026",
		GroupByCustomer: true,
		StartingNumber:  1,
	})

	require.Len(t, invoices, 1)
	assert.Equal(t, "Walk-in Hauler", invoices[0].Payee)
	assert.Len(t, invoices[0].Lines, 2)
	// No customer rates: the product's own per-ton price applies.
	assert.Equal(t, 14.0, invoices[0].Lines[0].UnitPrice)
}

func TestBuildInvoices_Memo(t *testing.T) {
	tickets := []*entity.Ticket{
		{ID: "t1", Number: 900, CustomerID: "recCustA", ProductID: "recP1", ProductName: "3/8 x 1/8",
			TruckText: "KW-12", PONumber: "PO-7781", NetTons: 1},
	}

	invoices := BuildInvoices(tickets, testCustomers(), testProducts(), BuildOptions{
		InvoiceDate:    "01/15/2026",
		StartingNumber: 1,
	})
	require.Len(t, invoices, 1)
	assert.Equal(t, "Ticket - 900 / 3/8 x 1/8 / KW-12 PO-7781", invoices[0].Lines[0].Memo)
	assert.Equal(t, "PO-7781", invoices[0].PONumber)
}
