package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "settlementwatch/core/metrics"
	"settlementwatch/core/model"
	"settlementwatch/infra/logger"
)

// InfluxSink writes pipeline events and the half-hourly series to an
// InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordFetch writes the fetch attempt as a point.
func (s *InfluxSink) RecordFetch(ev coremetrics.FetchEvent) error {
	outcome := "ok"
	if ev.Err != "" {
		outcome = "error"
	}
	p := influxdb2.NewPoint("settlement_fetch",
		map[string]string{"date": ev.Date.String(), "outcome": outcome},
		map[string]interface{}{
			"records":     ev.Records,
			"duration_ms": ev.Duration.Milliseconds(),
		},
		time.Now())
	return s.write(p)
}

// RecordRun writes the pipeline run as a point.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	p := influxdb2.NewPoint("settlement_run",
		map[string]string{"date": ev.Date.String(), "run_id": ev.RunID},
		map[string]interface{}{
			"complete_periods": ev.CompletePeriods,
			"warnings":         ev.Warnings,
			"duration_ms":      ev.Duration.Milliseconds(),
		},
		time.Now())
	return s.write(p)
}

// RecordDay writes one point per settlement period with data, timestamped
// at the period start, plus a summary point for the day. Sentinel slots are
// skipped rather than written as zeros.
func (s *InfluxSink) RecordDay(series *model.NormalizedSeries, summary model.DailySummary) error {
	tags := map[string]string{"date": series.Date.String()}
	for per := model.SettlementPeriod(1); per <= model.PeriodsPerDay; per++ {
		vol := series.Volume(per)
		price := series.Price(per)
		if !vol.Valid && !price.Valid {
			continue
		}
		fields := map[string]interface{}{"period": int(per)}
		if vol.Valid {
			fields["volume_mwh"] = vol.Decimal.InexactFloat64()
		}
		if price.Valid {
			fields["price"] = price.Decimal.InexactFloat64()
		}
		p := influxdb2.NewPoint("imbalance_period", tags, fields, series.Date.PeriodStart(per))
		if err := s.write(p); err != nil {
			return err
		}
	}

	fields := map[string]interface{}{
		"total_cost":       summary.TotalCost.InexactFloat64(),
		"traded_mwh":       summary.TradedEnergy.InexactFloat64(),
		"included_periods": summary.IncludedPeriods,
	}
	if summary.HasUnitRate() {
		fields["unit_rate"] = summary.UnitRate.Decimal.InexactFloat64()
	}
	if summary.HasPeak() {
		fields["peak_period"] = int(summary.PeakPeriod)
		fields["peak_volume_mwh"] = summary.PeakVolume.Decimal.InexactFloat64()
	}
	p := influxdb2.NewPoint("imbalance_day", tags, fields, series.Date.Time())
	return s.write(p)
}

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
