package airtable

import (
	"context"
	"fmt"
	"strconv"
)

const (
	settingsTable      = "Settings"
	lastInvoiceSetting = "Last Invoice Number"

	// defaultLastInvoiceNumber seeds a base that has no counter row yet,
	// high enough to stay clear of historical hand-written invoices.
	defaultLastInvoiceNumber = 10000
)

// SettingsRepository implements repository.SettingsRepository against the
// single-row settings table.
type SettingsRepository struct {
	client *Client
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(client *Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

// LastInvoiceNumber reads the persisted counter. A missing row yields the
// default seed rather than an error.
func (r *SettingsRepository) LastInvoiceNumber(ctx context.Context) (int, error) {
	rec, err := r.counterRecord(ctx)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return defaultLastInvoiceNumber, nil
	}

	n, err := strconv.Atoi(rec.Str("Setting Value"))
	if err != nil {
		return defaultLastInvoiceNumber, nil
	}
	return n, nil
}

// SetLastInvoiceNumber writes the counter back. The read and the write are
// separate requests; two concurrent export runs can interleave here and
// reuse invoice numbers, since the store offers no conditional update to
// prevent it.
func (r *SettingsRepository) SetLastInvoiceNumber(ctx context.Context, n int) error {
	rec, err := r.counterRecord(ctx)
	if err != nil {
		return err
	}

	value := map[string]interface{}{"Setting Value": strconv.Itoa(n)}
	if rec == nil {
		value["Setting Name"] = lastInvoiceSetting
		if _, err := r.client.CreateRecord(ctx, settingsTable, value); err != nil {
			return fmt.Errorf("create invoice counter: %w", err)
		}
		return nil
	}

	if err := r.client.UpdateRecord(ctx, settingsTable, rec.ID, value); err != nil {
		return fmt.Errorf("update invoice counter: %w", err)
	}
	return nil
}

func (r *SettingsRepository) counterRecord(ctx context.Context) (*Record, error) {
	records, err := r.client.ListRecords(ctx, settingsTable, ListOptions{
		FilterByFormula: fmt.Sprintf(`{Setting Name}=%q`, lastInvoiceSetting),
		MaxRecords:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch invoice counter: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
