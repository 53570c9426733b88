package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
	"github.com/beaverpumice/scalehouse-api/pkg/apperror"
)

// lbsPerTon converts net scale weight to billed tons.
const lbsPerTon = 2000.0

// TicketMailer sends a rendered ticket copy to a customer contact.
type TicketMailer interface {
	SendTicketCopy(to, subject, htmlBody string) error
}

// TicketService handles weigh ticket business logic.
type TicketService struct {
	repo      repository.TicketRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	mailer    TicketMailer
}

// NewTicketService creates a new ticket service instance.
func NewTicketService(
	repo repository.TicketRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	mailer TicketMailer,
) *TicketService {
	return &TicketService{repo: repo, products: products, customers: customers, mailer: mailer}
}

// GetTicket retrieves a ticket by record ID.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*entity.Ticket, error) {
	if id == "" {
		return nil, apperror.NewBadRequestError("ticket ID is required")
	}
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return ticket, nil
}

// ListTickets lists tickets matching the filter.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]*entity.Ticket, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.NewBadRequestError("invalid ticket status")
	}
	return s.repo.List(ctx, filter)
}

// ListPendingExport lists closed tickets not yet exported, in ticket number
// order.
func (s *TicketService) ListPendingExport(ctx context.Context) ([]*entity.Ticket, error) {
	return s.repo.ListPendingExport(ctx)
}

// CreateTicket stores a new weigh ticket. Net weight figures are derived
// from the gross and tare reads; the store's own computed columns produce
// the same values for records entered by hand.
func (s *TicketService) CreateTicket(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, error) {
	if err := s.validate(ctx, ticket); err != nil {
		return nil, err
	}
	s.derive(ctx, ticket)
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateTicket stores changed ticket fields.
func (s *TicketService) UpdateTicket(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, error) {
	if ticket.ID == "" {
		return nil, apperror.NewBadRequestError("ticket ID is required")
	}
	if err := s.validate(ctx, ticket); err != nil {
		return nil, err
	}
	s.derive(ctx, ticket)
	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// DeleteTicket removes a ticket.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewBadRequestError("ticket ID is required")
	}
	return s.repo.Delete(ctx, id)
}

// MarkExported flags the given tickets as exported.
func (s *TicketService) MarkExported(ctx context.Context, ids []string, flags repository.ExportFlags) (*repository.MarkExportedResult, error) {
	if len(ids) == 0 {
		return nil, apperror.ErrNoTickets
	}
	return s.repo.MarkExported(ctx, ids, flags)
}

// EmailTicket mails a ticket summary to the customer's billing contact, or
// to an explicit override address.
func (s *TicketService) EmailTicket(ctx context.Context, id, to string) error {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}

	if to == "" && ticket.CustomerID != "" {
		customer, err := s.customers.GetByID(ctx, ticket.CustomerID)
		if err != nil {
			return err
		}
		if customer != nil {
			to = customer.Email
		}
	}
	if to == "" {
		return apperror.NewBadRequestError("ticket has no email recipient")
	}

	var body bytes.Buffer
	if err := ticketCopyTemplate.Execute(&body, ticket); err != nil {
		return fmt.Errorf("failed to render ticket email: %w", err)
	}
	subject := fmt.Sprintf("Weigh Ticket %d", ticket.Number)
	return s.mailer.SendTicketCopy(to, subject, body.String())
}

var ticketCopyTemplate = template.Must(template.New("ticket").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
<h2>Weigh Ticket {{.Number}}</h2>
<table cellpadding="4" cellspacing="0">
<tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
<tr><td><strong>Customer</strong></td><td>{{.CustomerName}}</td></tr>
<tr><td><strong>Product</strong></td><td>{{.ProductName}}</td></tr>
{{- if .TruckText}}
<tr><td><strong>Truck</strong></td><td>{{.TruckText}}</td></tr>
{{- end}}
<tr><td><strong>Net Weight</strong></td><td>{{.NetLbs}} lbs</td></tr>
<tr><td><strong>Net Tons</strong></td><td>{{printf "%.2f" .NetTons}}</td></tr>
<tr><td><strong>Net Yards</strong></td><td>{{printf "%.2f" .NetYards}}</td></tr>
{{- if .PONumber}}
<tr><td><strong>PO Number</strong></td><td>{{.PONumber}}</td></tr>
{{- end}}
</table>
{{- if .Note}}
<p>{{.Note}}</p>
{{- end}}
</body>
</html>`))

func (s *TicketService) validate(ctx context.Context, ticket *entity.Ticket) error {
	var fields []apperror.FieldError
	if ticket.GrossLbs < 0 || ticket.TareLbs < 0 {
		fields = append(fields, apperror.FieldError{Field: "weight", Message: "scale reads cannot be negative"})
	}
	if ticket.GrossLbs > 0 && ticket.TareLbs > ticket.GrossLbs {
		fields = append(fields, apperror.FieldError{Field: "tare_lbs", Message: "tare exceeds gross"})
	}
	if ticket.Status != "" && !ticket.Status.Valid() {
		fields = append(fields, apperror.FieldError{Field: "status", Message: "unknown status"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// derive fills the computed weight fields. Yards come from the product's
// density when the product is known, otherwise the default density.
func (s *TicketService) derive(ctx context.Context, ticket *entity.Ticket) {
	if ticket.GrossLbs > 0 && ticket.TareLbs > 0 {
		ticket.NetLbs = ticket.GrossLbs - ticket.TareLbs
	}
	if ticket.NetLbs > 0 {
		ticket.NetTons = float64(ticket.NetLbs) / lbsPerTon

		lbsPerYard := entity.DefaultLbsPerYard
		if s.products != nil && ticket.ProductID != "" {
			if idx, err := s.products.ListAll(ctx); err == nil {
				if p := idx.ByID(ticket.ProductID); p != nil && p.LbsPerYard > 0 {
					lbsPerYard = p.LbsPerYard
				}
			}
		}
		ticket.NetYards = float64(ticket.NetLbs) / lbsPerYard
	}
}
