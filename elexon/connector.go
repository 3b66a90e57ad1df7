package elexon

import (
	"context"
	"strings"

	"settlementwatch/config"
)

// NewFetcher builds the record fetcher for cfg.Mode. In mock mode a local
// stand-in server is started on ctx and the client points at it; in api
// mode the client talks to the configured Insights root.
func NewFetcher(ctx context.Context, cfg config.ElexonConfig) (*Client, error) {
	if strings.ToLower(cfg.Mode) == "mock" {
		mock := NewServerMock(cfg.MockAddress)
		if err := mock.Start(ctx); err != nil {
			return nil, err
		}
		mockCfg := cfg
		mockCfg.BaseURL = "http://" + mock.Addr()
		return NewClient(mockCfg), nil
	}
	return NewClient(cfg), nil
}
