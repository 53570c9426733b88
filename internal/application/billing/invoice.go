// Package billing turns closed weigh tickets into invoice documents and
// serializes them into the interchange format the accounting desktop
// application imports. Everything in this package is pure: inputs are domain
// entities already fetched from the store, output is text.
package billing

import "github.com/beaverpumice/scalehouse-api/internal/domain/enum"

// Line accounts used on invoice splits.
const (
	salesAccount      = "Sales"
	receivableAccount = "Accounts Receivable"
	freightAccount    = "Truck Freight"

	// freightItemCode is the accounting item the freight account maps to.
	freightItemCode = "TRK"
)

// LineItem is one billed split: the product charge for a ticket, or its
// freight charge. Quantity, UnitPrice and Amount are already rounded to two
// decimals; Amount is Quantity x UnitPrice of the rounded values.
type LineItem struct {
	TicketNumber int              `json:"ticket_number"`
	Account      string           `json:"account"`
	ItemCode     string           `json:"item_code"`
	Memo         string           `json:"memo"`
	Unit         enum.BillingUnit `json:"unit"`
	Quantity     float64          `json:"quantity"`
	UnitPrice    float64          `json:"unit_price"`
	Amount       float64          `json:"amount"`
}

// Invoice is one invoice document: header data plus ordered line items. It is
// built per export run, serialized, and discarded; nothing here persists.
type Invoice struct {
	Number int    `json:"number"`
	Date   string `json:"date"`
	Payee  string `json:"payee"`
	// AddressLines are the four billing address lines of the transaction
	// row: payee name, street, blank, city/state/zip.
	AddressLines [4]string  `json:"address_lines"`
	PONumber     string     `json:"po_number,omitempty"`
	Lines        []LineItem `json:"lines"`
	// Total is the sum of the already-rounded line amounts. Summing rounded
	// values keeps the invoice total equal to what the accounting system
	// recomputes from the splits; re-rounding a higher-precision sum would
	// drift by pennies.
	Total float64 `json:"total"`

	// TicketIDs are the store record IDs billed on this invoice, kept so
	// the export run can flag them afterwards.
	TicketIDs []string `json:"-"`
}
