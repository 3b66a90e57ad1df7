// Package app wires the serve mode together: fetcher, pipeline runner,
// metric sinks, summary publisher and the report HTTP server.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"settlementwatch/api/report"
	"settlementwatch/config"
	coremetrics "settlementwatch/core/metrics"
	"settlementwatch/core/model"
	"settlementwatch/core/pipeline"
	"settlementwatch/elexon"
	"settlementwatch/infra/logger"
	"settlementwatch/infra/metrics"
	"settlementwatch/infra/publish"
)

// Service runs the report API backed by per-request pipeline runs.
type Service struct {
	cfg *config.Config
	log logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) *Service {
	return &Service{cfg: cfg, log: logger.New("service")}
}

// BuildSink assembles the configured metric sinks.
func BuildSink(cfg config.MetricsConfig) (coremetrics.MetricsSink, error) {
	var sinks []coremetrics.MetricsSink
	if cfg.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return metrics.NewMultiSink(sinks...), nil
	}
}

// publishingRunner publishes each summary after a successful run. Publish
// failures are logged, never surfaced to the presenter.
type publishingRunner struct {
	inner *pipeline.Runner
	pub   *publish.MQTTPublisher
	log   logger.Logger
}

func (r *publishingRunner) Run(ctx context.Context, date model.SettlementDate) (*pipeline.Result, error) {
	res, err := r.inner.Run(ctx, date)
	if err == nil && r.pub != nil {
		if perr := r.pub.PublishSummary(res.Summary); perr != nil {
			r.log.Errorf("publish summary %s: %v", date, perr)
		}
	}
	return res, err
}

// Run starts the service and blocks until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	fetcher, err := elexon.NewFetcher(ctx, s.cfg.Elexon)
	if err != nil {
		return fmt.Errorf("fetcher: %w", err)
	}
	sink, err := BuildSink(s.cfg.Metrics)
	if err != nil {
		return err
	}
	fetchTimeout := time.Duration(s.cfg.Elexon.TimeoutSeconds) * time.Second
	runner := pipeline.NewRunner(fetcher, s.cfg.Pipeline.Normalize, sink, logger.New("pipeline"), fetchTimeout)

	var pub *publish.MQTTPublisher
	if s.cfg.Publish.Enabled {
		pub, err = publish.NewMQTTPublisher(s.cfg.Publish)
		if err != nil {
			return fmt.Errorf("summary publisher: %w", err)
		}
		defer pub.Close()
	}

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle(report.Path, report.NewHandler(&publishingRunner{inner: runner, pub: pub, log: s.log}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("shutdown server: %v", err)
		}
		cancel()
	}()

	s.log.Infof("report API listening on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
