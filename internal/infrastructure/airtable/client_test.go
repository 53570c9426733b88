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
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL: srv.URL,
		Token:   "test-token",
		BaseID:  "appTest",
		Timeout: 5 * time.Second,
	})
}

func TestListRecords_FollowsOffsetPagination(t *testing.T) {
	var requests []string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/appTest/Tickets", r.URL.Path)

		if r.URL.Query().Get("offset") == "" {
			_ = json.NewEncoder(w).Encode(listResponse{
				Records: []Record{{ID: "rec1"}, {ID: "rec2"}},
				Offset:  "page2",
			})
			return
		}
		assert.Equal(t, "page2", r.URL.Query().Get("offset"))
		_ = json.NewEncoder(w).Encode(listResponse{
			Records: []Record{{ID: "rec3"}},
		})
	})

	records, err := client.ListRecords(context.Background(), "Tickets", ListOptions{
		FilterByFormula: `{Status}="Closed"`,
		Sort:            []SortField{{Field: "Ticket Number", Direction: "asc"}},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rec3", records[2].ID)
	require.Len(t, requests, 2)
	assert.Contains(t, requests[0], "filterByFormula=")
	assert.Contains(t, requests[0], "sort%5B0%5D%5Bfield%5D=Ticket+Number")
}

func TestCreateRecord(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body recordsEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Records, 1)
		assert.Equal(t, "Acme", body.Records[0].Fields["Customer Name"])

		_ = json.NewEncoder(w).Encode(recordsEnvelope{
			Records: []Record{{ID: "recNew", Fields: body.Records[0].Fields}},
		})
	})

	created, err := client.CreateRecord(context.Background(), "Customers", map[string]interface{}{
		"Customer Name": "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "recNew", created.ID)
}

func TestUpdateRecords_EnforcesBatchLimit(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("oversized batch must not reach the store")
	})

	updates := make([]RecordUpdate, BatchSize+1)
	for i := range updates {
		updates[i] = RecordUpdate{ID: "rec", Fields: map[string]interface{}{}}
	}
	_, err := client.UpdateRecords(context.Background(), "Tickets", updates)
	assert.ErrorContains(t, err, "exceeds store limit")
}

func TestDo_SurfacesStoreErrors(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"type":"INVALID_REQUEST"}}`))
	})

	_, err := client.GetRecord(context.Background(), "Tickets", "recX")
	require.Error(t, err)
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusUnprocessableEntity, storeErr.StatusCode)
	assert.Contains(t, storeErr.Body, "INVALID_REQUEST")
}

func TestChunk(t *testing.T) {
	ids := make([]string, 23)
	for i := range ids {
		ids[i] = "rec"
	}
	chunks := Chunk(ids)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], BatchSize)
	assert.Len(t, chunks[2], 3)

	assert.Nil(t, Chunk(nil))
}
