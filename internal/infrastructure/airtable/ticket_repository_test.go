package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
)

func ticketRepo(t *testing.T, handler http.HandlerFunc) *TicketRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTicketRepository(NewClient(Config{
		BaseURL: srv.URL,
		Token:   "test-token",
		BaseID:  "appTest",
		Timeout: 5 * time.Second,
	}))
}

func TestGetByID_MissingRecordIsNotAnError(t *testing.T) {
	repo := ticketRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	ticket, err := repo.GetByID(context.Background(), "recMissing")
	require.NoError(t, err)
	assert.Nil(t, ticket)
}

func TestListPendingExport_Formula(t *testing.T) {
	repo := ticketRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pendingExportFormula, r.URL.Query().Get("filterByFormula"))
		assert.Equal(t, "Ticket Number", r.URL.Query().Get("sort[0][field]"))
		assert.Equal(t, "asc", r.URL.Query().Get("sort[0][direction]"))

		_ = json.NewEncoder(w).Encode(listResponse{Records: []Record{
			{ID: "recT1", Fields: map[string]interface{}{"Ticket Number": 501.0, "Status": "Closed"}},
		}})
	})

	tickets, err := repo.ListPendingExport(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, 501, tickets[0].Number)
}

func TestMarkExported_ChunksAndAccumulatesFailures(t *testing.T) {
	var batches [][]RecordUpdate
	repo := ticketRepo(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Records []RecordUpdate `json:"records"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		batches = append(batches, body.Records)

		// Fail the second chunk only.
		if len(batches) == 2 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		_ = json.NewEncoder(w).Encode(recordsEnvelope{Records: updatesToRecords(body.Records)})
	})

	ids := make([]string, 25)
	for i := range ids {
		ids[i] = "rec" + string(rune('a'+i))
	}
	result, err := repo.MarkExported(context.Background(), ids, repository.ExportFlags{
		ExportDate:     "2026-01-15",
		InvoiceNumbers: map[string]int{ids[0]: 10001},
	})
	require.NoError(t, err)

	require.Len(t, batches, 3, "25 ids split into store-limit chunks")
	assert.Len(t, batches[0], BatchSize)
	assert.Len(t, batches[2], 5)
	assert.Equal(t, true, batches[0][0].Fields["QB Exported"])
	assert.Equal(t, "2026-01-15", batches[0][0].Fields["QB Export Date"])
	assert.EqualValues(t, 10001, batches[0][0].Fields["QB Invoice Number"])
	_, hasInvoice := batches[0][1].Fields["QB Invoice Number"]
	assert.False(t, hasInvoice, "tickets without an invoice number get only the flag")

	assert.Equal(t, 15, result.Updated)
	assert.Equal(t, 10, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "batch 2")
}

func updatesToRecords(updates []RecordUpdate) []Record {
	records := make([]Record, 0, len(updates))
	for _, u := range updates {
		records = append(records, Record{ID: u.ID, Fields: u.Fields})
	}
	return records
}
