// Package client provides the HTTP client for the Stripe API. Only the
// read endpoints the dashboard needs are implemented.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"opsboard_backend/platform/logger"

	"golang.org/x/time/rate"
)

const apiVersion = "2024-06-20"

// Client is the HTTP client for the Stripe API. All requests pass through a
// shared rate limiter so the dashboard's fan-out never trips the processor's
// request limits.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a Stripe API client.
func New(baseURL, apiKey string, requestsPerSecond float64, log *logger.Logger) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), int(requestsPerSecond)),
		log:        log,
	}
}

// Balance fetches the current account balance.
func (c *Client) Balance(ctx context.Context) (*Balance, error) {
	var out Balance
	if err := c.get(ctx, "/v1/balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Charges fetches the most recent charges, newest first.
func (c *Client) Charges(ctx context.Context, limit int) ([]Charge, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))

	var out chargeList
	if err := c.get(ctx, "/v1/charges", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Payouts fetches the most recent payouts, newest first.
func (c *Client) Payouts(ctx context.Context, limit int) ([]Payout, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))

	var out payoutList
	if err := c.get(ctx, "/v1/payouts", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Stripe-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		c.log.Error("stripe unauthorized", "status", resp.StatusCode)
		return fmt.Errorf("unauthorized: invalid API key")
	case http.StatusTooManyRequests:
		c.log.Warn("stripe rate limited", "path", path)
		return fmt.Errorf("rate limited: status %d", resp.StatusCode)
	default:
		c.log.Error("stripe upstream error", "status", resp.StatusCode, "path", path)
		return fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Balance is the raw /v1/balance response. Amounts are integer cents.
type Balance struct {
	Available []BalanceAmount `json:"available"`
	Pending   []BalanceAmount `json:"pending"`
}

// BalanceAmount is a per-currency balance figure.
type BalanceAmount struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Charge is the raw charge shape. Amounts are integer cents, timestamps
// are unix seconds.
type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
	Refunded bool   `json:"refunded"`
	Created  int64  `json:"created"`
}

// Payout is the raw payout shape.
type Payout struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	ArrivalDate int64  `json:"arrival_date"`
}

type chargeList struct {
	Data []Charge `json:"data"`
}

type payoutList struct {
	Data []Payout `json:"data"`
}
