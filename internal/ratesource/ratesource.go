// Package ratesource resolves the USD->JPY exchange rate from a public API.
// Failure to fetch is the caller's concern; the simulation engine only ever
// consumes an already-resolved numeric rate.
package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the exchange-rate endpoint queried by default.
const DefaultBaseURL = "https://api.frankfurter.dev/v1/latest?base=USD&symbols=JPY"

const defaultTimeout = 10 * time.Second

// Result is one resolved exchange rate and its quote date.
type Result struct {
	Rate float64 `json:"rate"`
	Date string  `json:"date"`
}

// Client fetches exchange rates over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a rate source client. A nil httpClient gets a client
// with a default timeout, an empty baseURL gets DefaultBaseURL, and a nil
// logger gets a no-op logger.
func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, logger: logger}
}

// FetchUSDJPY retrieves the current USD->JPY rate.
func (c *Client) FetchUSDJPY(ctx context.Context) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build exchange rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("exchange rate fetch failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("exchange rate fetch failed: status %d", resp.StatusCode)
	}

	var payload struct {
		Date  string             `json:"date"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("failed to decode exchange rate response: %w", err)
	}

	rate, ok := payload.Rates["JPY"]
	if !ok {
		return Result{}, fmt.Errorf("exchange rate response missing JPY rate")
	}

	c.logger.Debug("exchange rate fetched",
		zap.String("op", "ratesource.FetchUSDJPY"),
		zap.Float64("rate", rate),
		zap.String("date", payload.Date),
	)

	return Result{Rate: rate, Date: payload.Date}, nil
}
