package billing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIIF_Structure(t *testing.T) {
	inv := &Invoice{
		Number: 10001,
		Date:   "01/15/2026",
		Payee:  "Acme Aggregates Inc",
		AddressLines: [4]string{
			"Acme Aggregates Inc", "100 Quarry Rd", "", "Bend, OR, 97701",
		},
		PONumber: "PO-7781",
		Lines: []LineItem{
			{TicketNumber: 501, Account: "Sales", ItemCode: "P001",
				Memo: "Ticket - 501 / 3/8 x 1/8", Quantity: 15, UnitPrice: 20, Amount: 300},
			{TicketNumber: 501, Account: "Truck Freight", ItemCode: "TRK",
				Memo: "Freight - Ticket 501", Quantity: 15, UnitPrice: 5, Amount: 75},
		},
		Total: 375,
	}

	out := RenderIIF([]*Invoice{inv})

	require.True(t, strings.HasSuffix(out, "\n"), "file must end with a newline")
	assert.NotContains(t, out, "\r", "lines are LF-terminated")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.True(t, strings.HasPrefix(lines[0], "!TRNS\tTRNSID\tTRNSTYPE\tDATE\tACCNT"))
	assert.True(t, strings.HasPrefix(lines[1], "!SPL\tSPLID\tTRNSTYPE\tDATE\tACCNT"))
	assert.Equal(t, "!ENDTRNS", lines[2])
	assert.Equal(t, "ENDTRNS", lines[6])

	trns := strings.Split(lines[3], "\t")
	require.Len(t, trns, 21, "transaction row column count")
	assert.Equal(t, "TRNS", trns[0])
	assert.Equal(t, "10001", trns[1])
	assert.Equal(t, "INVOICE", trns[2])
	assert.Equal(t, "01/15/2026", trns[3])
	assert.Equal(t, "Accounts Receivable", trns[4])
	assert.Equal(t, "Acme Aggregates Inc", trns[5])
	assert.Equal(t, "375.00", trns[7])
	assert.Equal(t, "10001", trns[8], "DOCNUM repeats the invoice number")
	assert.Equal(t, "Acme Aggregates Inc", trns[13])
	assert.Equal(t, "100 Quarry Rd", trns[14])
	assert.Equal(t, "Bend, OR, 97701", trns[16])
	assert.Equal(t, "PO-7781", trns[20])

	spl := strings.Split(lines[4], "\t")
	require.Len(t, spl, 19, "split row column count")
	assert.Equal(t, "SPL", spl[0])
	assert.Equal(t, "Sales", spl[4])
	assert.Equal(t, "-300.00", spl[7], "income split carries the opposite sign")
	assert.Equal(t, "Ticket - 501 / 3/8 x 1/8", spl[9])
	assert.Equal(t, "-15.00", spl[11])
	assert.Equal(t, "20.00", spl[12])
	assert.Equal(t, "P001", spl[13])
	assert.Equal(t, "N", spl[14])

	freight := strings.Split(lines[5], "\t")
	require.Len(t, freight, 19)
	assert.Equal(t, "Truck Freight", freight[4])
	assert.Equal(t, "-75.00", freight[7])
	assert.Equal(t, "TRK", freight[13])
}

func TestRenderIIF_MultipleInvoicesShareOneHeader(t *testing.T) {
	invoices := []*Invoice{
		{Number: 1, Date: "01/15/2026", Payee: "A", Lines: []LineItem{{Account: "Sales", Amount: 10, Quantity: 1, UnitPrice: 10}}, Total: 10},
		{Number: 2, Date: "01/15/2026", Payee: "B", Lines: []LineItem{{Account: "Sales", Amount: 20, Quantity: 2, UnitPrice: 10}}, Total: 20},
	}

	out := RenderIIF(invoices)

	assert.Equal(t, 1, strings.Count(out, "!TRNS\t"))
	assert.Equal(t, 1, strings.Count(out, "!SPL\t"))
	assert.Equal(t, 1, strings.Count(out, "!ENDTRNS"))
	assert.Equal(t, 2, strings.Count(out, "\nTRNS\t"))
	assert.Equal(t, 2, strings.Count(out, "\nENDTRNS"))
}

func TestRenderIIF_Empty(t *testing.T) {
	out := RenderIIF(nil)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3, "headers only")
}

func TestRenderIIF_ZeroAmountsKeepPositiveZero(t *testing.T) {
	inv := &Invoice{
		Number: 3, Date: "01/15/2026", Payee: "C",
		Lines: []LineItem{{Account: "Sales", Quantity: 0, UnitPrice: 13, Amount: 0}},
	}
	out := RenderIIF([]*Invoice{inv})
	assert.NotContains(t, out, "-0.00")
}
