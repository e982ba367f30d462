// Package ledger implements the HTTP client for the remote transaction
// ledger API: paginated retrieval of raw transaction groups and their
// normalization into core.TransactionRecord values.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ledgerview/internal/core"
)

const (
	// DefaultPageSize is the page limit sent when the caller passes zero.
	DefaultPageSize = 100

	requestTimeout = 30 * time.Second
	dateLayout     = "2006-01-02"
)

// APIError reports a failed ledger API call, either a non-2xx status or a
// transport-level failure. Callers classify it as "upstream unavailable".
type APIError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger API request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("ledger API request %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// Client talks to the ledger's REST API with bearer-token auth. It does not
// retry; retry policy belongs to the caller.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// New creates a Client for the given base URL and API token. The per-request
// timeout bounds each page fetch, not the whole pagination walk.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// FetchTransactions walks the page sequence for one category type and range
// and returns all normalized records. It stops when the response's
// pagination metadata reports no further pages; absent metadata is treated
// as a single page.
func (c *Client) FetchTransactions(ctx context.Context, txType core.TransactionType, rng core.TimeRange, pageSize int) ([]core.TransactionRecord, error) {
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var records []core.TransactionRecord
	for page := 1; ; page++ {
		payload, err := c.fetchPage(ctx, txType, rng, pageSize, page)
		if err != nil {
			return nil, err
		}

		for _, group := range payload.Data {
			for _, split := range group.Attributes.Transactions {
				rec, err := normalizeSplit(split, txType, group.Attributes.Description)
				if err != nil {
					return nil, fmt.Errorf("page %d: %w", page, err)
				}
				records = append(records, rec)
			}
		}

		totalPages := payload.Meta.Pagination.TotalPages
		if totalPages == 0 {
			totalPages = page
		}
		if page >= totalPages {
			break
		}
	}

	slog.DebugContext(ctx, "Fetched ledger transactions",
		"type", string(txType),
		"count", len(records),
		"start", rng.Start.Format(dateLayout),
		"end", rng.End.Format(dateLayout))
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, txType core.TransactionType, rng core.TimeRange, pageSize, page int) (*transactionsResponse, error) {
	endpoint := c.baseURL + "/api/v1/transactions"

	params := url.Values{}
	params.Set("type", string(txType))
	params.Set("start", rng.Start.Format(dateLayout))
	params.Set("end", rng.End.Format(dateLayout))
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))
	fullURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &APIError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: fullURL}
	}

	var payload transactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: fullURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &payload, nil
}
