package repository

import (
	"context"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/enum"
)

// TicketFilter narrows ticket listings.
type TicketFilter struct {
	Status   enum.TicketStatus
	Exported *bool
	// MaxRecords caps the listing; zero means no cap.
	MaxRecords int
}

// ExportFlags carries the fields written when tickets are marked exported.
type ExportFlags struct {
	ExportDate string
	// InvoiceNumbers maps ticket ID to the invoice number it was billed on.
	// Tickets without an entry get only the flag and date.
	InvoiceNumbers map[string]int
}

// MarkExportedResult accumulates the outcome of a chunked flag update. A chunk
// failure does not roll back earlier chunks, so Updated and Failed can both be
// non-zero; callers must surface Errors rather than treating the run as clean.
type MarkExportedResult struct {
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// TicketRepository defines the interface for weigh ticket data operations
type TicketRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	// GetByIDs fetches tickets by explicit ID list, batching requests to the
	// store's filter-size limit. Unknown IDs are skipped, not errors.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*entity.Ticket, error)
	// ListPendingExport returns Closed tickets whose export flag is unset,
	// sorted by ticket number ascending.
	ListPendingExport(ctx context.Context) ([]*entity.Ticket, error)
	Create(ctx context.Context, ticket *entity.Ticket) error
	Update(ctx context.Context, ticket *entity.Ticket) error
	Delete(ctx context.Context, id string) error
	// MarkExported flags tickets exported in chunks, accumulating per-chunk
	// failures instead of aborting.
	MarkExported(ctx context.Context, ids []string, flags ExportFlags) (*MarkExportedResult, error)
}
