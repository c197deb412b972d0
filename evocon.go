package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bodyExcerptLen = 1500

// APIError is a failed call to the Evocon API, with enough context to show
// an operator what went wrong.
type APIError struct {
	URL    string
	Params url.Values
	Status int
	Body   string // excerpt
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evocon API %s?%s: %v", e.URL, e.Params.Encode(), e.Err)
	}
	return fmt.Sprintf("evocon API %s?%s: status %d\n%s", e.URL, e.Params.Encode(), e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

// ChecklistSource yields the raw checklist records for a date range.
// Satisfied by *EvoconClient and by the demo source.
type ChecklistSource interface {
	Fetch(ctx context.Context, startDate, endDate string) ([]Record, error)
}

// EvoconClient fetches checklist records from the Evocon reports API
// using Basic auth. One best-effort call per fetch, no retries.
type EvoconClient struct {
	base   string
	tenant string
	secret string
	http   *http.Client
	log    *zap.Logger
}

func NewEvoconClient(cfg EvoconConfig, log *zap.Logger) *EvoconClient {
	return &EvoconClient{
		base:   cfg.BaseURL,
		tenant: cfg.Tenant,
		secret: cfg.Secret,
		http:   &http.Client{Timeout: 45 * time.Second},
		log:    log,
	}
}

// Fetch calls GET /api/reports/checklists_json for [startDate, endDate]
// (both "YYYY-MM-DD", date-only — the API rejects timestamps here).
func (c *EvoconClient) Fetch(ctx context.Context, startDate, endDate string) ([]Record, error) {
	if c.tenant == "" || c.secret == "" {
		return nil, errors.New("missing EVOCON_TENANT / EVOCON_SECRET")
	}

	reqURL := c.base + "/api/reports/checklists_json"
	params := url.Values{}
	params.Set("startTime", startDate)
	params.Set("endTime", endDate)

	reqID := uuid.NewString()
	c.log.Debug("fetching checklists",
		zap.String("req", reqID),
		zap.String("start", startDate),
		zap.String("end", endDate))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.tenant, c.secret)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{URL: reqURL, Params: params, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{URL: reqURL, Params: params, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{URL: reqURL, Params: params, Status: resp.StatusCode, Body: excerpt(body)}
	}

	// The API must return a JSON list. Anything else (an error object,
	// null, a login page) is a failed call, not an empty batch.
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &APIError{
			URL:    reqURL,
			Params: params,
			Status: resp.StatusCode,
			Body:   excerpt(body),
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &APIError{
			URL:    reqURL,
			Params: params,
			Status: resp.StatusCode,
			Body:   excerpt(body),
			Err:    fmt.Errorf("unexpected response type %T, want list", raw),
		}
	}
	rows := make([]Record, 0, len(list))
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			rows = append(rows, Record(m))
		}
	}

	c.log.Debug("fetched checklists",
		zap.String("req", reqID),
		zap.Int("records", len(rows)),
		zap.Duration("took", time.Since(start)))
	return rows, nil
}

func excerpt(b []byte) string {
	if len(b) > bodyExcerptLen {
		return string(b[:bodyExcerptLen]) + "…"
	}
	return string(b)
}
