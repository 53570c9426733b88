package airtable

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
)

const ticketsTable = "Tickets"

// pendingExportFormula selects closed tickets whose export flag is unset.
// BLANK() is needed alongside FALSE() because the flag column did not exist
// on older rows.
const pendingExportFormula = `AND({Status}="Closed", OR({QB Exported}=FALSE(), {QB Exported}=BLANK()))`

// TicketRepository implements repository.TicketRepository against the
// tabular store.
type TicketRepository struct {
	client *Client
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(client *Client) *TicketRepository {
	return &TicketRepository{client: client}
}

// GetByID fetches one ticket. Returns (nil, nil) when the record does not
// exist.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	rec, err := r.client.GetRecord(ctx, ticketsTable, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch ticket %s: %w", id, err)
	}
	return ticketFromRecord(rec), nil
}

// GetByIDs fetches tickets by explicit ID list in store-limit batches.
func (r *TicketRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for _, batch := range Chunk(ids) {
		records, err := r.client.ListRecords(ctx, ticketsTable, ListOptions{
			FilterByFormula: recordIDFormula(batch),
		})
		if err != nil {
			return nil, fmt.Errorf("fetch tickets: %w", err)
		}
		for i := range records {
			tickets = append(tickets, ticketFromRecord(&records[i]))
		}
	}
	return tickets, nil
}

// List returns tickets matching the filter, sorted by ticket number.
func (r *TicketRepository) List(ctx context.Context, filter repository.TicketFilter) ([]*entity.Ticket, error) {
	var clauses []string
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf(`{Status}=%q`, filter.Status))
	}
	if filter.Exported != nil {
		if *filter.Exported {
			clauses = append(clauses, `{QB Exported}=TRUE()`)
		} else {
			clauses = append(clauses, `OR({QB Exported}=FALSE(), {QB Exported}=BLANK())`)
		}
	}

	formula := ""
	switch len(clauses) {
	case 0:
	case 1:
		formula = clauses[0]
	default:
		formula = "AND(" + clauses[0] + ", " + clauses[1] + ")"
	}

	records, err := r.client.ListRecords(ctx, ticketsTable, ListOptions{
		FilterByFormula: formula,
		Sort:            []SortField{{Field: "Ticket Number", Direction: "asc"}},
		MaxRecords:      filter.MaxRecords,
	})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	tickets := make([]*entity.Ticket, 0, len(records))
	for i := range records {
		tickets = append(tickets, ticketFromRecord(&records[i]))
	}
	return tickets, nil
}

// ListPendingExport returns closed, not-yet-exported tickets sorted by ticket
// number ascending.
func (r *TicketRepository) ListPendingExport(ctx context.Context) ([]*entity.Ticket, error) {
	records, err := r.client.ListRecords(ctx, ticketsTable, ListOptions{
		FilterByFormula: pendingExportFormula,
		Sort:            []SortField{{Field: "Ticket Number", Direction: "asc"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list pending tickets: %w", err)
	}

	tickets := make([]*entity.Ticket, 0, len(records))
	for i := range records {
		tickets = append(tickets, ticketFromRecord(&records[i]))
	}
	return tickets, nil
}

// Create inserts a new ticket. Only raw weigh-in fields are written; the
// store derives net weight, tons and yards itself.
func (r *TicketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	fields := map[string]interface{}{
		"Gross Weight lbs": ticket.GrossLbs,
		"Tare Weight lbs":  ticket.TareLbs,
	}
	if ticket.CustomerID != "" {
		fields["Customer"] = []string{ticket.CustomerID}
	}
	if ticket.ProductID != "" {
		fields["Product"] = []string{ticket.ProductID}
	}
	if ticket.CarrierID != "" {
		fields["Hauling For"] = []string{ticket.CarrierID}
	}
	if ticket.TruckText != "" {
		fields["Truck Text"] = ticket.TruckText
	}
	if ticket.PONumber != "" {
		fields["PO Number"] = ticket.PONumber
	}
	if ticket.Note != "" {
		fields["Ticket Note"] = ticket.Note
	}
	if ticket.FreightCharge > 0 {
		fields["Freight Charge"] = ticket.FreightCharge
	}

	rec, err := r.client.CreateRecord(ctx, ticketsTable, fields)
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	ticket.ID = rec.ID
	ticket.Number = rec.Int("Ticket Number")
	return nil
}

// Update patches the mutable ticket fields.
func (r *TicketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	fields := map[string]interface{}{
		"Gross Weight lbs": ticket.GrossLbs,
		"Tare Weight lbs":  ticket.TareLbs,
		"Status":           ticket.Status.String(),
	}
	if ticket.PONumber != "" {
		fields["PO Number"] = ticket.PONumber
	}
	if ticket.Note != "" {
		fields["Ticket Note"] = ticket.Note
	}
	if ticket.TruckText != "" {
		fields["Truck Text"] = ticket.TruckText
	}
	if ticket.FreightCharge > 0 {
		fields["Freight Charge"] = ticket.FreightCharge
	}

	if err := r.client.UpdateRecord(ctx, ticketsTable, ticket.ID, fields); err != nil {
		return fmt.Errorf("update ticket %s: %w", ticket.ID, err)
	}
	return nil
}

// Delete removes a ticket record.
func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteRecord(ctx, ticketsTable, id); err != nil {
		return fmt.Errorf("delete ticket %s: %w", id, err)
	}
	return nil
}

// MarkExported flags tickets exported in chunks of the store's batch limit,
// with a short delay between chunks. A failed chunk is recorded and the
// remaining chunks still run; there is no rollback, so the caller must
// surface the accumulated errors.
func (r *TicketRepository) MarkExported(ctx context.Context, ids []string, flags repository.ExportFlags) (*repository.MarkExportedResult, error) {
	result := &repository.MarkExportedResult{}
	chunks := Chunk(ids)

	for i, chunk := range chunks {
		updates := make([]RecordUpdate, 0, len(chunk))
		for _, id := range chunk {
			fields := map[string]interface{}{
				"QB Exported":    true,
				"QB Export Date": flags.ExportDate,
			}
			if n, ok := flags.InvoiceNumbers[id]; ok {
				fields["QB Invoice Number"] = n
			}
			updates = append(updates, RecordUpdate{ID: id, Fields: fields})
		}

		updated, err := r.client.UpdateRecords(ctx, ticketsTable, updates)
		if err != nil {
			result.Failed += len(chunk)
			result.Errors = append(result.Errors, fmt.Sprintf("batch %d: %v", i+1, err))
			log.Printf("mark exported: batch %d/%d failed: %v", i+1, len(chunks), err)
		} else {
			result.Updated += updated
		}

		if i < len(chunks)-1 {
			if err := waitBetweenBatches(ctx); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

func isNotFound(err error) bool {
	var storeErr *Error
	return errors.As(err, &storeErr) && storeErr.StatusCode == http.StatusNotFound
}
