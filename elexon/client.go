// Package elexon talks to the Elexon Insights API, or a local stand-in,
// and turns its system-prices payload into typed raw records. Untyped data
// never leaves this package.
package elexon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"settlementwatch/config"
	"settlementwatch/core/model"
	"settlementwatch/infra/logger"
)

// ErrStatus marks a non-200 response from the API.
var ErrStatus = errors.New("unexpected response status")

const systemPricesPath = "/balancing/settlement/system-prices"

type systemPricesResponse struct {
	Data []json.RawMessage `json:"data"`
}

// Client fetches settlement system prices over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	log     logger.Logger
}

// NewClient creates a Client for the configured API root.
func NewClient(cfg config.ElexonConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		log:     logger.New("elexon-client"),
	}
}

// Fetch retrieves the raw records for one settlement date. Network
// failures, timeouts and bad statuses are returned to the caller; a
// well-formed response with unusable entries yields however many records
// survived, each dropped entry logged. Timeouts surface as context
// deadline errors and are distinguishable with errors.Is.
func (c *Client) Fetch(ctx context.Context, date model.SettlementDate) ([]model.RawRecord, error) {
	url := fmt.Sprintf("%s%s/%s", c.baseURL, systemPricesPath, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", date, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Errorf("close response body: %v", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrStatus, resp.StatusCode, url)
	}

	var payload systemPricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode system prices: %w", err)
	}

	records := make([]model.RawRecord, 0, len(payload.Data))
	dropped := 0
	for _, raw := range payload.Data {
		var entry PeriodEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			dropped++
			c.log.Warnf("skip non-conforming entry: %v", err)
			continue
		}
		if err := entry.Validate(); err != nil {
			dropped++
			c.log.Warnf("skip invalid entry: %v", err)
			continue
		}
		rec, err := entry.ToRecord()
		if err != nil {
			dropped++
			c.log.Warnf("skip unconvertible entry: %v", err)
			continue
		}
		records = append(records, rec)
	}
	c.log.Infof("fetched %d records for %s (%d dropped)", len(records), date, dropped)
	return records, nil
}
