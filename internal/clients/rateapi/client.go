// Package rateapi talks to the external exchange-rate provider. The provider
// exposes latest-rates tables per base currency, e.g.
// GET <base-url>/ZAR -> {"base":"ZAR","rates":{"USD":0.054,...}}.
package rateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

const userAgent = "aboi-backend/1.0 (+https://github.com/ODInternational04/aboi-backend)"

// keyPlaceholder marks where a path-embedded API key goes in the configured
// base URL (v6-style providers use /v6/<key>/latest/<FROM>).
const keyPlaceholder = "{key}"

// Client fetches rate tables from the configured provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a provider client. A zero timeout defaults to 10 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// tableResponse covers the two response shapes seen across providers.
type tableResponse struct {
	Rates           map[string]decimal.Decimal `json:"rates"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// FetchRateTable retrieves the full currency->rate mapping for the given base
// currency. A missing or empty table is reported as ErrRateUnavailable, not a
// decode failure.
func (c *Client) FetchRateTable(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return nil, fmt.Errorf("%w: base currency is required", apperrors.ErrValidation)
	}

	endpoint, err := c.buildURL(base)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: provider request failed: %v", apperrors.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: provider returned status %d", apperrors.ErrRateUnavailable, resp.StatusCode)
	}

	var body tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode provider response: %v", apperrors.ErrRateUnavailable, err)
	}

	table := body.Rates
	if len(table) == 0 {
		table = body.ConversionRates
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: provider response has no rate table for %s", apperrors.ErrRateUnavailable, base)
	}

	normalized := make(map[string]decimal.Decimal, len(table))
	for code, rate := range table {
		if rate.IsPositive() {
			normalized[strings.ToUpper(code)] = rate
		}
	}
	if len(normalized) == 0 {
		return nil, fmt.Errorf("%w: provider rate table for %s has no positive rates", apperrors.ErrRateUnavailable, base)
	}
	return normalized, nil
}

// buildURL injects the API key per the vendor's URL shape: path-embedded when
// the configured URL carries a {key} placeholder, query parameter otherwise.
func (c *Client) buildURL(base string) (string, error) {
	raw := c.baseURL
	if strings.Contains(raw, keyPlaceholder) {
		raw = strings.ReplaceAll(raw, keyPlaceholder, url.PathEscape(c.apiKey))
	}
	raw = raw + "/" + url.PathEscape(base)

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid rate provider URL: %w", err)
	}
	if c.apiKey != "" && !strings.Contains(c.baseURL, keyPlaceholder) {
		q := u.Query()
		q.Set("apikey", c.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
