package billing

import (
	"strconv"
	"strings"

	"github.com/beaverpumice/scalehouse-api/pkg/money"
)

// Column headers for the tab-delimited interchange file. The desktop
// accounting import matches these literally, so the order and spelling are
// frozen.
const (
	trnsHeader = "!TRNS\tTRNSID\tTRNSTYPE\tDATE\tACCNT\tNAME\tCLASS\tAMOUNT\tDOCNUM\tMEMO\tCLEAR\tTOPRINT\tNAMEISTAXABLE\tADDR1\tADDR2\tADDR3\tADDR4\tTERMS\tSHIPVIA\tSHIPDATE\tPONUM"
	splHeader  = "!SPL\tSPLID\tTRNSTYPE\tDATE\tACCNT\tNAME\tCLASS\tAMOUNT\tDOCNUM\tMEMO\tCLEAR\tQNTY\tPRICE\tINVITEM\tTAXABLE\tOTHER2\tYEARTODATE\tWAGEBASE\tEXTRA"
	endHeader  = "!ENDTRNS"

	trnsType = "INVOICE"
)

// RenderIIF serializes invoices into the interchange text the accounting
// application imports: the three header rows once, then one
// TRNS/SPL.../ENDTRNS block per invoice. Lines are LF-terminated and the
// file ends with a trailing newline.
func RenderIIF(invoices []*Invoice) string {
	rows := []string{trnsHeader, splHeader, endHeader}

	for _, inv := range invoices {
		rows = append(rows, transactionRow(inv))
		for _, line := range inv.Lines {
			rows = append(rows, splitRow(inv, line))
		}
		rows = append(rows, "ENDTRNS")
	}

	rows = append(rows, "")
	return strings.Join(rows, "\n")
}

// transactionRow is the invoice header: the full receivable posted against
// the customer, with the billing address spread over the four ADDR columns.
func transactionRow(inv *Invoice) string {
	num := strconv.Itoa(inv.Number)
	return strings.Join([]string{
		"TRNS",
		num,
		trnsType,
		inv.Date,
		receivableAccount,
		inv.Payee,
		"", // CLASS
		money.Format(money.Round2(inv.Total)),
		num,
		"", // MEMO
		"", // CLEAR
		"", // TOPRINT
		"", // NAMEISTAXABLE
		inv.AddressLines[0],
		inv.AddressLines[1],
		inv.AddressLines[2],
		inv.AddressLines[3],
		"", // TERMS
		"", // SHIPVIA
		"", // SHIPDATE
		inv.PONumber,
	}, "\t")
}

// splitRow is one line item. Amount and quantity are negated: the import
// balances splits against the transaction row, so income splits carry the
// opposite sign of the receivable.
func splitRow(inv *Invoice, line LineItem) string {
	return strings.Join([]string{
		"SPL",
		strconv.Itoa(inv.Number),
		trnsType,
		inv.Date,
		line.Account,
		inv.Payee,
		"", // CLASS
		money.Format(negate(line.Amount)),
		"", // DOCNUM
		line.Memo,
		"", // CLEAR
		money.Format(negate(line.Quantity)),
		money.Format(line.UnitPrice),
		line.ItemCode,
		"N", // TAXABLE
		"",  // OTHER2
		"",  // YEARTODATE
		"",  // WAGEBASE
		"",  // EXTRA
	}, "\t")
}

// negate flips the sign without producing a signed zero, which would render
// as "-0.00".
func negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}
