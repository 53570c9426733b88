package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BatchSize is the store's hard limit on records per mutation request.
	BatchSize = 10
	// batchDelay spaces consecutive batch mutations to stay under the
	// store's rate limit.
	batchDelay = 200 * time.Millisecond
	// requestsPerSecond is the store's documented per-base rate limit.
	requestsPerSecond = 5
)

// Config holds connection settings for the tabular store.
type Config struct {
	BaseURL string
	Token   string
	BaseID  string
	Timeout time.Duration
}

// Client is a thin REST client for the tabular store. All repository
// implementations in this package go through it; it owns pagination,
// batching and outbound throttling.
type Client struct {
	baseURL string
	token   string
	baseID  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new store client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.airtable.com/v0"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		baseID:  cfg.BaseID,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Record is one row of a table: the opaque record ID plus a free-form field
// map. Field access goes through the accessors in record.go because the
// store's field names drift and lookup fields arrive as arrays.
type Record struct {
	ID          string                 `json:"id"`
	CreatedTime string                 `json:"createdTime,omitempty"`
	Fields      map[string]interface{} `json:"fields"`
}

// SortField orders a listing.
type SortField struct {
	Field     string
	Direction string // "asc" or "desc"
}

// ListOptions narrows a table listing.
type ListOptions struct {
	FilterByFormula string
	Fields          []string
	Sort            []SortField
	MaxRecords      int
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type recordsEnvelope struct {
	Records []Record `json:"records"`
}

// Error is a non-2xx reply from the store.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("store returned status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListRecords fetches all pages of a table listing, following the store's
// opaque offset cursor until it runs out.
func (c *Client) ListRecords(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	var all []Record
	offset := ""

	for {
		values := url.Values{}
		if opts.FilterByFormula != "" {
			values.Set("filterByFormula", opts.FilterByFormula)
		}
		for _, f := range opts.Fields {
			values.Add("fields[]", f)
		}
		for i, s := range opts.Sort {
			values.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
			values.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
		}
		if opts.MaxRecords > 0 {
			values.Set("maxRecords", strconv.Itoa(opts.MaxRecords))
		}
		if offset != "" {
			values.Set("offset", offset)
		}

		var page listResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"?"+values.Encode(), nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// GetRecord fetches a single record by ID.
func (c *Client) GetRecord(ctx context.Context, table, id string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateRecord inserts a record and returns it with its assigned ID.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]interface{}) (*Record, error) {
	var env recordsEnvelope
	body := recordsEnvelope{Records: []Record{{Fields: fields}}}
	if err := c.do(ctx, http.MethodPost, c.tableURL(table), body, &env); err != nil {
		return nil, err
	}
	if len(env.Records) == 0 {
		return nil, fmt.Errorf("store returned no record on create")
	}
	return &env.Records[0], nil
}

// UpdateRecord patches the given fields of a record.
func (c *Client) UpdateRecord(ctx context.Context, table, id string, fields map[string]interface{}) error {
	body := map[string]interface{}{"fields": fields}
	return c.do(ctx, http.MethodPatch, c.tableURL(table)+"/"+url.PathEscape(id), body, nil)
}

// DeleteRecord removes a record.
func (c *Client) DeleteRecord(ctx context.Context, table, id string) error {
	return c.do(ctx, http.MethodDelete, c.tableURL(table)+"/"+url.PathEscape(id), nil, nil)
}

// RecordUpdate is one record in a batch mutation.
type RecordUpdate struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// UpdateRecords patches up to BatchSize records in one request.
func (c *Client) UpdateRecords(ctx context.Context, table string, updates []RecordUpdate) (int, error) {
	if len(updates) > BatchSize {
		return 0, fmt.Errorf("batch of %d exceeds store limit of %d", len(updates), BatchSize)
	}
	body := map[string]interface{}{"records": updates}
	var env recordsEnvelope
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table), body, &env); err != nil {
		return 0, err
	}
	return len(env.Records), nil
}

// Chunk splits ids into BatchSize groups for batched fetches and mutations.
func Chunk(ids []string) [][]string {
	var chunks [][]string
	for i := 0; i < len(ids); i += BatchSize {
		end := i + BatchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}

// waitBetweenBatches sleeps the inter-batch delay unless the context ends
// first.
func waitBetweenBatches(ctx context.Context) error {
	select {
	case <-time.After(batchDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
