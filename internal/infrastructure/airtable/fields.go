package airtable

import (
	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/enum"
)

// Candidate-key priority tables. The store's schema has drifted over the
// years, so every billing-relevant field is read through an ordered list of
// known name variants; the first key holding a usable value wins. Changing
// the order changes billing results, so the chains live here as data rather
// than inline conditionals.
var (
	customerPriceTonKeys      = []string{"Price Ton", "Price Per Ton", "PriceTon"}
	customerPriceYardKeys     = []string{"Price Yard", "Price Per Yard", "PriceYard"}
	customerUniversalRateKeys = []string{"Customer Rate", "Rate"}
	customerPricingMethodKeys = []string{"Pricing Method", "Billing Method", "Pumice Unit", "Product Unit"}
	customerFreightRateKeys   = []string{"Freight Rate", "FreightRate", "Freight Per Ton", "FreightPerTon"}
	customerFreightMethodKeys = []string{"Freight Method", "Freight Cost Method", "Freight Unit"}
	customerAddressKeys       = []string{"Bill To Address", "Address1"}
	customerCityKeys          = []string{"Bill To City", "City"}
	customerStateKeys         = []string{"Bill To State", "State"}
	customerZipKeys           = []string{"Bill To Zip", "Zip"}

	ticketItemCodeKeys = []string{
		"QB Item Code (from Product)",
		"QB Item Code (from Products)",
		"QB Item Code (from QB Item Code)",
		"QB Item Code",
	}
	ticketPricingMethodKeys = []string{"Customer Pricing Method", "Pricing Method"}
	ticketTruckKeys         = []string{"Truck Text", "Truck Name"}

	productItemCodeKeys = []string{"QB Item Code", "QB_Item_Code", "qb_item_code", "QBItemCode", "Item Code"}
)

// legacyBillingUnits maps the retired numeric "Billing Type" scheme (1-7) to
// a billing unit. Types 1,3,4,5,6 billed by the yard; 2 and 7 by the ton. A
// few long-standing customers still carry only this field.
var legacyBillingUnits = map[string]string{
	"1": "per_yard",
	"3": "per_yard",
	"4": "per_yard",
	"5": "per_yard",
	"6": "per_yard",
	"2": "per_ton",
	"7": "per_ton",
}

// customerFromRecord maps a raw customer record into the domain entity,
// applying the pricing-field fallback chains. Pure; exercised directly by
// tests without network access.
func customerFromRecord(rec *Record) *entity.Customer {
	method := rec.Str(customerPricingMethodKeys...)
	if method == "" {
		method = legacyBillingUnits[rec.Str("Billing Type")]
	}

	return &entity.Customer{
		ID:              rec.ID,
		Name:            rec.Str("Customer Name", "Name"),
		QBName:          rec.Str("QB Customer Name"),
		Address1:        rec.Str(customerAddressKeys...),
		City:            rec.Str(customerCityKeys...),
		State:           rec.Str(customerStateKeys...),
		Zip:             rec.Str(customerZipKeys...),
		PricingMethod:   method,
		PriceTon:        rec.Currency(customerPriceTonKeys...),
		PriceYard:       rec.Currency(customerPriceYardKeys...),
		UniversalRate:   rec.Currency(customerUniversalRateKeys...),
		FreightMethod:   rec.Str(customerFreightMethodKeys...),
		FreightRate:     rec.Currency(customerFreightRateKeys...),
		Email:           rec.Str("Email"),
		AutoEmail:       rec.Bool("Auto Email"),
		AllowedProducts: rec.StrList("Allowed Products"),
	}
}

// ticketFromRecord maps a raw ticket record into the domain entity. The
// pricing-method/rate pair and the item code are lookup fields snapshotted
// from the customer and product at ticket-close time.
func ticketFromRecord(rec *Record) *entity.Ticket {
	return &entity.Ticket{
		ID:            rec.ID,
		Number:        rec.Int("Ticket Number"),
		CustomerID:    rec.Str("Customer"),
		CustomerName:  rec.Str("Customer Name"),
		ProductID:     rec.Str("Product"),
		ProductName:   rec.Str("Product Name"),
		CarrierID:     rec.Str("Hauling For"),
		CarrierName:   rec.Str("Hauling For Name"),
		TruckText:     rec.Str(ticketTruckKeys...),
		GrossLbs:      rec.Int("Gross Weight lbs"),
		TareLbs:       rec.Int("Tare Weight lbs"),
		NetLbs:        rec.Int("Net Weight lbs"),
		NetTons:       rec.Float("Net Tons"),
		NetYards:      rec.Float("Net Yards"),
		PONumber:      rec.Str("PO Number"),
		Note:          rec.Str("Ticket Note"),
		Status:        ticketStatus(rec.Str("Status")),
		Date:          rec.Str("Created", "Date"),
		FreightCharge: currencyOrZero(rec.Currency("Freight Charge")),
		FreightRate:   rec.Currency("Freight Rate"),
		PricingMethod: rec.Str(ticketPricingMethodKeys...),
		Rate:          rec.Currency("Customer Rate"),
		ItemCode:      rec.Str(ticketItemCodeKeys...),
		Exported:      rec.Bool("QB Exported"),
		ExportDate:    rec.Str("QB Export Date"),
	}
}

// productFromRecord maps a raw product record into the domain entity,
// substituting the default weight factor and per-ton price when absent.
func productFromRecord(rec *Record) *entity.Product {
	lbsPerYard := rec.Float("Weight Per Cubic Yard")
	if lbsPerYard == 0 {
		lbsPerYard = entity.DefaultLbsPerYard
	}
	pricePerTon := rec.Float("Price Per Ton")
	if pricePerTon == 0 {
		pricePerTon = entity.DefaultPricePerTon
	}
	return &entity.Product{
		ID:          rec.ID,
		Name:        rec.Str("Product Name"),
		ItemCode:    rec.Str(productItemCodeKeys...),
		PricePerTon: pricePerTon,
		LbsPerYard:  lbsPerYard,
	}
}

// carrierFromRecord maps a raw carrier record.
func carrierFromRecord(rec *Record) *entity.Carrier {
	return &entity.Carrier{
		ID:      rec.ID,
		Name:    rec.Str("Carrier Name", "Name"),
		Contact: rec.Str("Contact"),
		Phone:   rec.Str("Phone"),
		Active:  rec.Bool("Active"),
	}
}

// truckFromRecord maps a raw truck record.
func truckFromRecord(rec *Record) *entity.Truck {
	return &entity.Truck{
		ID:        rec.ID,
		Name:      rec.Str("Truck Name", "Name"),
		CarrierID: rec.Str("Carrier"),
		Plate:     rec.Str("Plate"),
		TareLbs:   rec.Float("Tare Weight lbs"),
		Active:    rec.Bool("Active"),
	}
}

func currencyOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func ticketStatus(raw string) enum.TicketStatus {
	status := enum.TicketStatus(raw)
	if !status.Valid() {
		return enum.TicketStatusOpen
	}
	return status
}
