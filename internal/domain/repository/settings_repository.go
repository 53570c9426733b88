package repository

import "context"

// SettingsRepository accesses the single-row settings table, most importantly
// the persisted "Last Invoice Number" counter.
//
// The counter is read at the start of an export run and written back after
// delivery. There is no compare-and-swap: two simultaneous export runs can
// both read the same value and emit duplicate invoice numbers. Correctness
// relies on the scheduled job being the only regular writer.
type SettingsRepository interface {
	// LastInvoiceNumber returns the persisted counter value.
	LastInvoiceNumber(ctx context.Context) (int, error)
	// SetLastInvoiceNumber persists a new counter value.
	SetLastInvoiceNumber(ctx context.Context, n int) error
}
