package airtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverpumice/scalehouse-api/internal/domain/enum"
)

func rec(id string, fields map[string]interface{}) *Record {
	return &Record{ID: id, Fields: fields}
}

func TestRecordAccessors(t *testing.T) {
	r := rec("rec1", map[string]interface{}{
		"Plain":      "hello",
		"Lookup":     []interface{}{"first", "second"},
		"Empty":      []interface{}{},
		"Number":     42.5,
		"NumberText": "17.25",
		"Flag":       true,
	})

	assert.Equal(t, "hello", r.Str("Plain"))
	assert.Equal(t, "first", r.Str("Lookup"), "lookup arrays unwrap to their first element")
	assert.Equal(t, "hello", r.Str("Missing", "Empty", "Plain"), "candidates are tried in order")
	assert.Equal(t, 42.5, r.Float("Number"))
	assert.Equal(t, 17.25, r.Float("NumberText"))
	assert.Equal(t, 42, r.Int("Number"))
	assert.True(t, r.Bool("Flag"))
	assert.False(t, r.Bool("Missing"))
}

func TestRecordCurrency(t *testing.T) {
	r := rec("rec1", map[string]interface{}{
		"Numeric":   22.5,
		"Formatted": "$1,350.75",
		"Zero":      0.0,
		"ZeroText":  "$0.00",
		"Junk":      "n/a",
	})

	require.NotNil(t, r.Currency("Numeric"))
	assert.Equal(t, 22.5, *r.Currency("Numeric"))
	require.NotNil(t, r.Currency("Formatted"))
	assert.Equal(t, 1350.75, *r.Currency("Formatted"))

	// Zero reads as absent, so the chain keeps walking.
	assert.Nil(t, r.Currency("Zero"))
	assert.Nil(t, r.Currency("ZeroText"))
	assert.Nil(t, r.Currency("Junk"))
	got := r.Currency("Zero", "Formatted")
	require.NotNil(t, got)
	assert.Equal(t, 1350.75, *got)
}

func TestCustomerFromRecord(t *testing.T) {
	c := customerFromRecord(rec("recC1", map[string]interface{}{
		"Customer Name":    "Acme Aggregates",
		"QB Customer Name": "Acme Aggregates Inc",
		"Billing Method":   "per_yard",
		"Price Per Ton":    "$20.00",
		"Price Yard":       15.0,
		"Freight Rate":     5.0,
		"Freight Method":   "per_ton",
		"Bill To Address":  "100 Quarry Rd",
		"Bill To City":     "Bend",
		"Bill To State":    "OR",
		"Bill To Zip":      "97701",
		"Auto Email":       true,
	}))

	assert.Equal(t, "Acme Aggregates", c.Name)
	assert.Equal(t, "Acme Aggregates Inc", c.QBName)
	assert.Equal(t, "Acme Aggregates Inc", c.BillingName())
	assert.Equal(t, "per_yard", c.PricingMethod, "second candidate key serves the method")
	require.NotNil(t, c.PriceTon)
	assert.Equal(t, 20.0, *c.PriceTon)
	require.NotNil(t, c.PriceYard)
	assert.Equal(t, 15.0, *c.PriceYard)
	require.NotNil(t, c.FreightRate)
	assert.Equal(t, 5.0, *c.FreightRate)
	assert.Equal(t, "Bend", c.City)
	assert.True(t, c.AutoEmail)
}

func TestCustomerFromRecord_LegacyBillingType(t *testing.T) {
	tests := []struct {
		billingType string
		want        string
	}{
		{"1", "per_yard"},
		{"3", "per_yard"},
		{"6", "per_yard"},
		{"2", "per_ton"},
		{"7", "per_ton"},
		{"9", ""},
	}
	for _, tt := range tests {
		c := customerFromRecord(rec("recC1", map[string]interface{}{
			"Billing Type": tt.billingType,
		}))
		assert.Equal(t, tt.want, c.PricingMethod, "billing type %s", tt.billingType)
	}

	// An explicit method beats the legacy numeric type.
	c := customerFromRecord(rec("recC1", map[string]interface{}{
		"Pricing Method": "per_ton",
		"Billing Type":   "1",
	}))
	assert.Equal(t, "per_ton", c.PricingMethod)
}

func TestTicketFromRecord(t *testing.T) {
	tk := ticketFromRecord(rec("recT1", map[string]interface{}{
		"Ticket Number":                 501.0,
		"Customer":                      []interface{}{"recC1"},
		"Customer Name":                 []interface{}{"Acme Aggregates"},
		"Product":                       []interface{}{"recP1"},
		"Product Name":                  []interface{}{"3/8 x 1/8"},
		"Gross Weight lbs":              60000.0,
		"Tare Weight lbs":               30000.0,
		"Net Weight lbs":                30000.0,
		"Net Tons":                      15.0,
		"Net Yards":                     22.22,
		"Status":                        "Closed",
		"QB Item Code (from Product)":   []interface{}{"P001"},
		"Customer Pricing Method":       []interface{}{"per_ton"},
		"Customer Rate":                 []interface{}{20.0},
		"Freight Rate":                  "$5.00",
		"QB Exported":                   true,
	}))

	assert.Equal(t, 501, tk.Number)
	assert.Equal(t, "recC1", tk.CustomerID)
	assert.Equal(t, "3/8 x 1/8", tk.ProductName)
	assert.Equal(t, 15.0, tk.NetTons)
	assert.Equal(t, enum.TicketStatusClosed, tk.Status)
	assert.Equal(t, "P001", tk.ItemCode)
	assert.Equal(t, "per_ton", tk.PricingMethod)
	require.NotNil(t, tk.Rate)
	assert.Equal(t, 20.0, *tk.Rate)
	require.NotNil(t, tk.FreightRate)
	assert.Equal(t, 5.0, *tk.FreightRate)
	assert.True(t, tk.Exported)
}

func TestTicketFromRecord_UnknownStatusDefaultsToOpen(t *testing.T) {
	tk := ticketFromRecord(rec("recT1", map[string]interface{}{
		"Status": "Archived",
	}))
	assert.Equal(t, enum.TicketStatusOpen, tk.Status)
}

func TestProductFromRecord_Defaults(t *testing.T) {
	p := productFromRecord(rec("recP1", map[string]interface{}{
		"Product Name": "3/8 x 1/8",
		"QB Item Code": "P001",
	}))
	assert.Equal(t, 13.0, p.PricePerTon)
	assert.Equal(t, 1350.0, p.LbsPerYard)

	p = productFromRecord(rec("recP2", map[string]interface{}{
		"Product Name":              "3/4 x 3/8",
		"Item Code":                 "P002",
		"Price Per Ton":             17.5,
		"Weight Per Cubic Yard":     1400.0,
	}))
	assert.Equal(t, "P002", p.ItemCode, "last candidate key still serves the code")
	assert.Equal(t, 17.5, p.PricePerTon)
	assert.Equal(t, 1400.0, p.LbsPerYard)
}

func TestRecordIDFormula(t *testing.T) {
	assert.Equal(t, "RECORD_ID()='rec1'", recordIDFormula([]string{"rec1"}))
	assert.Equal(t,
		"OR(RECORD_ID()='rec1',RECORD_ID()='rec2')",
		recordIDFormula([]string{"rec1", "rec2"}))
}
