package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/beaverpumice/scalehouse-api/internal/application/billing"
	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
	"github.com/beaverpumice/scalehouse-api/pkg/apperror"
	"github.com/beaverpumice/scalehouse-api/pkg/email"
	"github.com/beaverpumice/scalehouse-api/pkg/money"
)

// Mailer is the slice of the email service the export flow needs.
type Mailer interface {
	SendExportReport(r *email.ExportReport) error
	SendFailureNotice(ranAt time.Time, cause error) error
}

// ExportOptions shape one interactive export request.
type ExportOptions struct {
	// TicketIDs selects the tickets to bill. Required.
	TicketIDs []string
	// GroupByCustomer collects each customer's tickets onto one invoice.
	GroupByCustomer bool
	// UseTicketNumber numbers per-ticket invoices with the ticket number.
	UseTicketNumber bool
	// StartingNumber overrides the persisted counter; zero reads the
	// counter instead.
	StartingNumber int
	// InvoiceDate overrides today's date (MM/DD/YYYY).
	InvoiceDate string
}

// ExportResult is a finished export: the file plus per-invoice figures.
type ExportResult struct {
	Filename string             `json:"filename"`
	Content  string             `json:"-"`
	Invoices []*billing.Invoice `json:"invoices"`
	// NextInvoiceNumber is the counter value to persist after delivery:
	// the highest sequential number assigned.
	NextInvoiceNumber int `json:"next_invoice_number"`
}

// ExportService generates accounting interchange files from weigh tickets,
// both on demand and on the nightly schedule.
type ExportService struct {
	tickets   repository.TicketRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	settings  repository.SettingsRepository
	mailer    Mailer

	filePrefix string
	now        func() time.Time
}

// NewExportService creates a new export service instance.
func NewExportService(
	tickets repository.TicketRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	mailer Mailer,
	filePrefix string,
) *ExportService {
	if filePrefix == "" {
		filePrefix = "qb_export"
	}
	return &ExportService{
		tickets:    tickets,
		customers:  customers,
		products:   products,
		settings:   settings,
		mailer:     mailer,
		filePrefix: filePrefix,
		now:        time.Now,
	}
}

// GenerateIIF builds the interchange file for an explicit ticket selection.
// It does not flag the tickets; the caller marks them exported once the file
// has actually been imported.
func (s *ExportService) GenerateIIF(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	if len(opts.TicketIDs) == 0 {
		return nil, apperror.ErrNoTickets
	}

	tickets, err := s.tickets.GetByIDs(ctx, opts.TicketIDs)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return nil, apperror.ErrNoTickets
	}

	return s.build(ctx, tickets, opts)
}

// RunScheduledExport performs the nightly run: bill every pending ticket,
// mail the file, flag the tickets, advance the counter. Failures before the
// mail goes out notify the operators and leave everything untouched; a run
// with nothing to bill is a quiet no-op.
func (s *ExportService) RunScheduledExport(ctx context.Context) error {
	ranAt := s.now()

	err := s.runScheduled(ctx, ranAt)
	if err != nil {
		log.Printf("scheduled export failed: %v", err)
		if s.mailer != nil {
			if notifyErr := s.mailer.SendFailureNotice(ranAt, err); notifyErr != nil {
				log.Printf("failed to send export failure notice: %v", notifyErr)
			}
		}
	}
	return err
}

func (s *ExportService) runScheduled(ctx context.Context, ranAt time.Time) error {
	tickets, err := s.tickets.ListPendingExport(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending tickets: %w", err)
	}
	if len(tickets) == 0 {
		log.Printf("scheduled export: no pending tickets")
		return nil
	}

	result, err := s.build(ctx, tickets, ExportOptions{GroupByCustomer: true})
	if err != nil {
		return err
	}

	report := &email.ExportReport{
		Date:        ranAt,
		Filename:    result.Filename,
		File:        []byte(result.Content),
		TicketCount: len(tickets),
	}
	for _, inv := range result.Invoices {
		report.Customers = append(report.Customers, email.CustomerSummary{
			Name:          inv.Payee,
			InvoiceNumber: inv.Number,
			TicketCount:   len(inv.TicketIDs),
			Total:         money.Round2(inv.Total),
		})
		report.GrandTotal += money.Round2(inv.Total)
	}
	report.GrandTotal = money.Round2(report.GrandTotal)

	if err := s.mailer.SendExportReport(report); err != nil {
		return fmt.Errorf("failed to deliver export: %w", err)
	}

	// Past this point the file is in the bookkeepers' inboxes; flag and
	// counter updates are best-effort and surfaced in the log rather than
	// failing the run.
	flags := repository.ExportFlags{
		ExportDate:     ranAt.Format("2006-01-02"),
		InvoiceNumbers: make(map[string]int),
	}
	var ticketIDs []string
	for _, inv := range result.Invoices {
		for _, id := range inv.TicketIDs {
			ticketIDs = append(ticketIDs, id)
			flags.InvoiceNumbers[id] = inv.Number
		}
	}
	marked, err := s.tickets.MarkExported(ctx, ticketIDs, flags)
	if err != nil {
		return fmt.Errorf("exported file delivered but flag update failed: %w", err)
	}
	if marked.Failed > 0 {
		log.Printf("scheduled export: %d ticket(s) not flagged: %s",
			marked.Failed, strings.Join(marked.Errors, "; "))
	}

	if err := s.settings.SetLastInvoiceNumber(ctx, result.NextInvoiceNumber); err != nil {
		return fmt.Errorf("exported file delivered but counter update failed: %w", err)
	}

	log.Printf("scheduled export: %d ticket(s) on %d invoice(s), counter now %d",
		len(tickets), len(result.Invoices), result.NextInvoiceNumber)
	return nil
}

// build assembles invoices and serializes them. Shared by the interactive
// and scheduled paths.
func (s *ExportService) build(ctx context.Context, tickets []*entity.Ticket, opts ExportOptions) (*ExportResult, error) {
	customers, err := s.customers.GetByIDs(ctx, customerIDs(tickets))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	// A failed product scan degrades rather than aborts: tickets still carry
	// their own names and snapshot rates, and the flat default covers the
	// rest of the pricing chain.
	products, err := s.products.ListAll(ctx)
	if err != nil {
		log.Printf("failed to fetch products, pricing from ticket data alone: %v", err)
		products = entity.NewProductIndex(nil)
	}

	start := opts.StartingNumber
	if start == 0 {
		last, err := s.settings.LastInvoiceNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read invoice counter: %w", err)
		}
		start = last + 1
	}

	date := opts.InvoiceDate
	if date == "" {
		date = s.now().Format("01/02/2006")
	}

	invoices := billing.BuildInvoices(tickets, customers, products, billing.BuildOptions{
		InvoiceDate:     date,
		GroupByCustomer: opts.GroupByCustomer,
		StartingNumber:  start,
		UseTicketNumber: opts.UseTicketNumber,
	})

	next := start - 1
	for _, inv := range invoices {
		if !opts.UseTicketNumber && inv.Number > next {
			next = inv.Number
		}
	}
	if next < start-1 {
		next = start - 1
	}

	return &ExportResult{
		Filename: fmt.Sprintf("%s_%s.iif", s.filePrefix, s.now().Format("2006-01-02")),
		Content:  billing.RenderIIF(invoices),
		Invoices: invoices,
		// With ticket-number invoices the counter does not move.
		NextInvoiceNumber: next,
	}, nil
}

func customerIDs(tickets []*entity.Ticket) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, t := range tickets {
		if t.CustomerID == "" || seen[t.CustomerID] {
			continue
		}
		seen[t.CustomerID] = true
		ids = append(ids, t.CustomerID)
	}
	return ids
}
