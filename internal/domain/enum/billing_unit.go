package enum

// BillingUnit is the unit a line item is billed in. Tickets carry both net tons
// and net yards; pricing resolution picks exactly one per line.
type BillingUnit string

const (
	BillingUnitTon  BillingUnit = "ton"
	BillingUnitYard BillingUnit = "yard"
)

func (u BillingUnit) String() string {
	return string(u)
}
