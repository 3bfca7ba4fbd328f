package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries = 3
	backoffBase       = 1000 * time.Millisecond
	backoffCap        = 8000 * time.Millisecond
	jitterMax         = 250 * time.Millisecond
)

// Record is a single row in a table of the record store.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type recordsEnvelope struct {
	Records []recordEnvelope `json:"records"`
}

type recordEnvelope struct {
	ID     string         `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

// ListOptions controls a paginated listing.
type ListOptions struct {
	FilterByFormula string
	PageSize        int
	SortField       string
	SortDesc        bool
	Offset          string
}

// Client talks to the record store over HTTPS. It is the only place that
// implements retry/backoff; all repositories route paginated reads through
// it.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	httpClient *http.Client

	// Injectable for tests.
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() time.Duration
}

// New creates a record store client for the given base URL (already
// including the base id path segment) and bearer token.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxRetries: defaultMaxRetries,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sleep:      sleepCtx,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(jitterMax)))
		},
	}
}

// SetMaxRetries overrides the 429 retry budget per page request.
func (c *Client) SetMaxRetries(n int) {
	c.maxRetries = n
}

// ListPage fetches a single page of a table, retrying rate-limited
// responses with exponential backoff. It returns the records and the opaque
// continuation token for the next page ("" when exhausted).
func (c *Client) ListPage(ctx context.Context, table string, opts ListOptions) ([]Record, string, error) {
	query := url.Values{}
	if opts.FilterByFormula != "" {
		query.Set("filterByFormula", opts.FilterByFormula)
	}
	if opts.PageSize > 0 {
		query.Set("pageSize", fmt.Sprintf("%d", opts.PageSize))
	}
	if opts.SortField != "" {
		query.Set("sort[0][field]", opts.SortField)
		direction := "asc"
		if opts.SortDesc {
			direction = "desc"
		}
		query.Set("sort[0][direction]", direction)
	}
	if opts.Offset != "" {
		query.Set("offset", opts.Offset)
	}

	attempt := 0
	for {
		var page listResponse
		err := c.do(ctx, http.MethodGet, "/"+table, query, nil, &page)
		if err == nil {
			return page.Records, page.Offset, nil
		}
		if !IsRateLimited(err) || attempt >= c.maxRetries {
			return nil, "", err
		}

		wait := backoffDelay(attempt) + c.jitter()
		if hint := retryAfterHint(err); hint > wait {
			wait = hint
		}
		log.WithFields(log.Fields{
			"table":   table,
			"attempt": attempt,
			"wait":    wait,
		}).Warn("rate limited by record store, backing off")
		if err := c.sleep(ctx, wait); err != nil {
			return nil, "", err
		}
		attempt++
	}
}

// ListAll fetches up to maxPages pages of a table (maxPages <= 0 means all
// pages) and concatenates the records.
func (c *Client) ListAll(ctx context.Context, table string, opts ListOptions, maxPages int) ([]Record, error) {
	var results []Record
	pageCount := 0
	for {
		records, offset, err := c.ListPage(ctx, table, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, records...)
		pageCount++
		if offset == "" || (maxPages > 0 && pageCount >= maxPages) {
			return results, nil
		}
		opts.Offset = offset
	}
}

// GetRecord fetches a single record by id.
func (c *Client) GetRecord(ctx context.Context, table, id string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, "/"+table+"/"+id, nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateRecord creates a single record and returns the stored copy.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	body := recordsEnvelope{Records: []recordEnvelope{{Fields: fields}}}
	var resp listResponse
	if err := c.do(ctx, http.MethodPost, "/"+table, nil, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Records) == 0 {
		return nil, fmt.Errorf("record store returned no records for create on %s", table)
	}
	return &resp.Records[0], nil
}

// UpdateRecord patches a single record's fields and returns the stored copy.
func (c *Client) UpdateRecord(ctx context.Context, table, id string, fields map[string]any) (*Record, error) {
	body := recordsEnvelope{Records: []recordEnvelope{{ID: id, Fields: fields}}}
	var resp listResponse
	if err := c.do(ctx, http.MethodPatch, "/"+table, nil, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Records) == 0 {
		return nil, fmt.Errorf("record store returned no records for update on %s", table)
	}
	return &resp.Records[0], nil
}

// DeleteRecord deletes a single record by id.
func (c *Client) DeleteRecord(ctx context.Context, table, id string) error {
	return c.do(ctx, http.MethodDelete, "/"+table+"/"+id, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to record store failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
			RetryAfter: parseRetryAfter(resp.Header),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode record store response: %w", err)
	}
	return nil
}

// backoffDelay implements min(1000ms * 2^attempt, 8000ms).
func backoffDelay(attempt int) time.Duration {
	d := backoffBase << attempt
	if d > backoffCap || d <= 0 {
		d = backoffCap
	}
	return d
}

func retryAfterHint(err error) time.Duration {
	var se *StatusError
	if errors.As(err, &se) {
		return se.RetryAfter
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
