package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
	"github.com/beaverpumice/scalehouse-api/pkg/apperror"
	"github.com/beaverpumice/scalehouse-api/pkg/email"
)

func fptr(v float64) *float64 { return &v }

type fakeTicketRepo struct {
	repository.TicketRepository

	tickets []*entity.Ticket
	listErr error

	markedIDs   []string
	markedFlags repository.ExportFlags
	markErr     error
}

func (f *fakeTicketRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Ticket, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	byID := make(map[string]*entity.Ticket)
	for _, t := range f.tickets {
		byID[t.ID] = t
	}
	var out []*entity.Ticket
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) ListPendingExport(ctx context.Context) ([]*entity.Ticket, error) {
	return f.tickets, f.listErr
}

func (f *fakeTicketRepo) MarkExported(ctx context.Context, ids []string, flags repository.ExportFlags) (*repository.MarkExportedResult, error) {
	if f.markErr != nil {
		return nil, f.markErr
	}
	f.markedIDs = ids
	f.markedFlags = flags
	return &repository.MarkExportedResult{Updated: len(ids)}, nil
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Customer, error) {
	return f.customers, nil
}

type fakeProductRepo struct {
	repository.ProductRepository
	index   *entity.ProductIndex
	listErr error
}

func (f *fakeProductRepo) ListAll(ctx context.Context) (*entity.ProductIndex, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.index, nil
}

type fakeSettingsRepo struct {
	last    int
	written *int
	readErr error
}

func (f *fakeSettingsRepo) LastInvoiceNumber(ctx context.Context) (int, error) {
	return f.last, f.readErr
}

func (f *fakeSettingsRepo) SetLastInvoiceNumber(ctx context.Context, n int) error {
	f.written = &n
	return nil
}

type fakeMailer struct {
	report     *email.ExportReport
	reportErr  error
	failedAt   *time.Time
	failureErr error
}

func (f *fakeMailer) SendExportReport(r *email.ExportReport) error {
	if f.reportErr != nil {
		return f.reportErr
	}
	f.report = r
	return nil
}

func (f *fakeMailer) SendFailureNotice(ranAt time.Time, cause error) error {
	f.failedAt = &ranAt
	f.failureErr = cause
	return nil
}

func testService(tickets *fakeTicketRepo, settings *fakeSettingsRepo, mailer *fakeMailer) *ExportService {
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"recCustA": {ID: "recCustA", Name: "Acme Aggregates", PricingMethod: "per_ton", PriceTon: fptr(20)},
	}}
	products := &fakeProductRepo{index: entity.NewProductIndex([]*entity.Product{
		{ID: "recP1", Name: "3/8 x 1/8", ItemCode: "P001", PricePerTon: 17.5},
	})}
	svc := NewExportService(tickets, customers, products, settings, mailer, "qb_export")
	svc.now = func() time.Time { return time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC) }
	return svc
}

func pendingTickets() []*entity.Ticket {
	return []*entity.Ticket{
		{ID: "t1", Number: 501, CustomerID: "recCustA", ProductID: "recP1", ProductName: "3/8 x 1/8", NetTons: 15},
		{ID: "t2", Number: 502, CustomerID: "recCustA", ProductID: "recP1", ProductName: "3/8 x 1/8", NetTons: 10},
	}
}

func TestGenerateIIF(t *testing.T) {
	tickets := &fakeTicketRepo{tickets: pendingTickets()}
	settings := &fakeSettingsRepo{last: 10000}
	svc := testService(tickets, settings, &fakeMailer{})

	result, err := svc.GenerateIIF(context.Background(), ExportOptions{
		TicketIDs:       []string{"t1", "t2"},
		GroupByCustomer: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "qb_export_2026-01-15.iif", result.Filename)
	require.Len(t, result.Invoices, 1)
	assert.Equal(t, 10001, result.Invoices[0].Number, "numbering starts above the persisted counter")
	assert.Equal(t, 10001, result.NextInvoiceNumber)
	assert.InDelta(t, 500.0, result.Invoices[0].Total, 1e-9)
	assert.True(t, strings.HasPrefix(result.Content, "!TRNS\t"))

	// Interactive generation never flags tickets.
	assert.Nil(t, tickets.markedIDs)
	assert.Nil(t, settings.written)
}

func TestGenerateIIF_NoTickets(t *testing.T) {
	svc := testService(&fakeTicketRepo{}, &fakeSettingsRepo{last: 10000}, &fakeMailer{})

	_, err := svc.GenerateIIF(context.Background(), ExportOptions{})
	assert.ErrorIs(t, err, apperror.ErrNoTickets)

	_, err = svc.GenerateIIF(context.Background(), ExportOptions{TicketIDs: []string{"missing"}})
	assert.ErrorIs(t, err, apperror.ErrNoTickets)
}

func TestGenerateIIF_ProductFetchFailureFallsBackToDefaults(t *testing.T) {
	tickets := &fakeTicketRepo{tickets: []*entity.Ticket{
		{ID: "t1", Number: 501, CustomerName: "Walk-in Hauler", ProductName: "3/8 x 1/8", NetTons: 10},
	}}
	svc := testService(tickets, &fakeSettingsRepo{last: 10000}, &fakeMailer{})
	svc.products = &fakeProductRepo{listErr: errors.New("store unreachable")}

	result, err := svc.GenerateIIF(context.Background(), ExportOptions{TicketIDs: []string{"t1"}})
	require.NoError(t, err, "a failed product scan degrades instead of aborting")

	require.Len(t, result.Invoices, 1)
	require.Len(t, result.Invoices[0].Lines, 1)
	line := result.Invoices[0].Lines[0]
	assert.Equal(t, entity.DefaultPricePerTon, line.UnitPrice, "flat default covers the missing catalog")
	assert.InDelta(t, 130.0, line.Amount, 1e-9)
	assert.Equal(t, "P001", line.ItemCode, "legacy name table still resolves the code")
}

func TestRunScheduledExport(t *testing.T) {
	tickets := &fakeTicketRepo{tickets: pendingTickets()}
	settings := &fakeSettingsRepo{last: 10000}
	mailer := &fakeMailer{}
	svc := testService(tickets, settings, mailer)

	err := svc.RunScheduledExport(context.Background())
	require.NoError(t, err)

	require.NotNil(t, mailer.report)
	assert.Equal(t, "qb_export_2026-01-15.iif", mailer.report.Filename)
	assert.Equal(t, 2, mailer.report.TicketCount)
	require.Len(t, mailer.report.Customers, 1)
	assert.Equal(t, 10001, mailer.report.Customers[0].InvoiceNumber)
	assert.InDelta(t, 500.0, mailer.report.GrandTotal, 1e-9)

	assert.ElementsMatch(t, []string{"t1", "t2"}, tickets.markedIDs)
	assert.Equal(t, "2026-01-15", tickets.markedFlags.ExportDate)
	assert.Equal(t, 10001, tickets.markedFlags.InvoiceNumbers["t1"])

	require.NotNil(t, settings.written)
	assert.Equal(t, 10001, *settings.written)
}

func TestRunScheduledExport_NothingPending(t *testing.T) {
	tickets := &fakeTicketRepo{}
	mailer := &fakeMailer{}
	svc := testService(tickets, &fakeSettingsRepo{last: 10000}, mailer)

	err := svc.RunScheduledExport(context.Background())
	require.NoError(t, err)
	assert.Nil(t, mailer.report, "empty runs send no mail")
	assert.Nil(t, mailer.failedAt)
}

func TestRunScheduledExport_FailureNotifiesOperators(t *testing.T) {
	tickets := &fakeTicketRepo{listErr: errors.New("store unreachable")}
	settings := &fakeSettingsRepo{last: 10000}
	mailer := &fakeMailer{}
	svc := testService(tickets, settings, mailer)

	err := svc.RunScheduledExport(context.Background())
	require.Error(t, err)

	require.NotNil(t, mailer.failedAt)
	assert.ErrorContains(t, mailer.failureErr, "store unreachable")
	assert.Nil(t, tickets.markedIDs, "no tickets flagged on failure")
	assert.Nil(t, settings.written, "counter untouched on failure")
}

func TestRunScheduledExport_DeliveryFailureLeavesFlagsAlone(t *testing.T) {
	tickets := &fakeTicketRepo{tickets: pendingTickets()}
	settings := &fakeSettingsRepo{last: 10000}
	mailer := &fakeMailer{reportErr: errors.New("smtp refused")}
	svc := testService(tickets, settings, mailer)

	err := svc.RunScheduledExport(context.Background())
	require.Error(t, err)
	assert.Nil(t, tickets.markedIDs)
	assert.Nil(t, settings.written)
}
