package elexon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settlementwatch/config"
	"settlementwatch/core/model"
)

func startMock(t *testing.T) (*ServerMock, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	mock := NewServerMockWithRegistry("127.0.0.1:0", prometheus.NewRegistry())
	require.NoError(t, mock.Start(ctx))
	return mock, cancel
}

func TestServerMockSyntheticDay(t *testing.T) {
	mock, cancel := startMock(t)
	defer cancel()

	date, _ := model.ParseSettlementDate("2024-03-15")
	client := NewClient(config.ElexonConfig{BaseURL: "http://" + mock.Addr(), TimeoutSeconds: 2})

	records, err := client.Fetch(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, records, model.PeriodsPerDay)
	for _, rec := range records {
		assert.True(t, rec.Date.Equal(date))
		assert.True(t, rec.Volume.Valid)
		assert.True(t, rec.Price.Valid)
	}

	// Deterministic per date.
	again, err := client.Fetch(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

func TestServerMockInjectedDay(t *testing.T) {
	mock, cancel := startMock(t)
	defer cancel()

	date, _ := model.ParseSettlementDate("2024-03-15")
	entries := []PeriodEntry{{
		SettlementDate:     "2024-03-15",
		SettlementPeriod:   7,
		SystemSellPrice:    json.RawMessage("80"),
		SystemBuyPrice:     json.RawMessage("80"),
		NetImbalanceVolume: json.RawMessage("-42"),
	}}
	body, err := json.Marshal(entries)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("http://%s/mock/day/%s", mock.Addr(), date), bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	client := NewClient(config.ElexonConfig{BaseURL: "http://" + mock.Addr(), TimeoutSeconds: 2})
	records, err := client.Fetch(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.SettlementPeriod(7), records[0].Period)
}

func TestServerMockRejectsBadDate(t *testing.T) {
	mock, cancel := startMock(t)
	defer cancel()

	resp, err := http.Get("http://" + mock.Addr() + systemPricesPath + "/yesterday")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
