package billing

import (
	"regexp"
	"strings"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
)

// itemCodePattern matches the accounting item codes the import accepts for
// pumice products: a P followed by exactly three digits. Freight is the one
// non-pattern code allowed.
var itemCodePattern = regexp.MustCompile(`^P\d{3}$`)

// ValidItemCode reports whether code is a well-formed accounting item code.
func ValidItemCode(code string) bool {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false
	}
	return itemCodePattern.MatchString(trimmed) || strings.EqualFold(trimmed, "freight")
}

// fallbackItemCodes maps legacy product spellings to item codes, in priority
// order. The scale operators have renamed products over the years; tickets
// referencing the old names still have to land on the right accounting item.
// First match wins at every tier, so more specific spellings sit above the
// generic ones.
var fallbackItemCodes = []struct {
	Name string
	Code string
}{
	{"3/8 x 1/8", "P001"},
	{"3/8x1/8", "P001"},
	{"3/4 x 3/8", "P002"},
	{"3/4x3/8", "P002"},
	{"3/8 x minus", "P003"},
	{"3/8 x MINUS", "P003"},
	{"3/8 minus", "P003"},
	{"3/8xminus", "P003"},
	{"3/8 MINUS", "P003"},
	{"3/8MINUS", "P003"},
	{"3/8 X MINUS", "P003"},
	{"3/8X MINUS", "P003"},
	{"3/8x MINUS", "P003"},
	{"birds eye", "P004"},
	{"1/8 #8", "P004"},
	{"1 x 3/8", "P005"},
	{"1x3/8", "P005"},
	{"1 x3/8", "P005"},
	{"pumice-", "P008"},
	{"3/8 x 1/4", "P009"},
	{"3/8x1/4", "P009"},
	{"3/8 x MIN", "P010"},
	{"3/8 MIN", "P010"},
	{"3/8xMIN", "P010"},
	{"3/4 x 1/2", "P011"},
	{"3/4x1/2", "P011"},
	{"3/8 x 1/16", "P013"},
	{"3/8x1/16", "P013"},
	{"3/8 X 1/16", "P013"},
	{"3/8X1/16", "P013"},
	{"1/4 minus", "P014"},
	{"1/4minus", "P014"},
	{"1/4 MINUS", "P014"},
	{"1/4 x minus", "P014"},
	{"1/4 x MINUS", "P014"},
	{"1/4xminus", "P014"},
	{"freight", "Freight"},
	{"Freight", "Freight"},
}

// ResolveItemCode picks the accounting item code for a ticket's product line.
//
// Resolution order:
//  1. a valid code stamped on the ticket itself
//  2. the product record's own code, looked up by ID
//  3. the product record's own code, looked up by name
//  4. the legacy spelling table, matched progressively looser
//  5. the raw product name, which the import will reject loudly rather
//     than booking the line to a wrong item
func ResolveItemCode(ticketCode, productID, productName string, products *entity.ProductIndex) string {
	if ValidItemCode(ticketCode) {
		return strings.TrimSpace(ticketCode)
	}

	if p := products.ByID(productID); p != nil && p.ItemCode != "" {
		return p.ItemCode
	}
	if p := products.ByName(productName); p != nil && p.ItemCode != "" {
		return p.ItemCode
	}

	if code := fallbackCode(productName); code != "" {
		return code
	}

	return productName
}

// fallbackCode runs the legacy table through four tiers of increasingly
// forgiving matching. Each tier scans the whole table before the next one
// starts, so an exact hit anywhere beats a fuzzy hit everywhere.
func fallbackCode(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}

	for _, e := range fallbackItemCodes {
		if e.Name == trimmed {
			return e.Code
		}
	}

	lower := strings.ToLower(trimmed)
	for _, e := range fallbackItemCodes {
		if strings.ToLower(e.Name) == lower {
			return e.Code
		}
	}

	for _, e := range fallbackItemCodes {
		if strings.Contains(lower, strings.ToLower(e.Name)) {
			return e.Code
		}
	}

	squeezed := stripSpaces(lower)
	for _, e := range fallbackItemCodes {
		if stripSpaces(strings.ToLower(e.Name)) == squeezed {
			return e.Code
		}
	}

	return ""
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}
