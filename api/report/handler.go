// Package report exposes the pipeline outputs over HTTP. The handler is a
// thin presenter: every request runs an independent pipeline invocation
// and renders the returned value objects, holding no state of its own.
package report

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"settlementwatch/core/model"
	"settlementwatch/core/pipeline"
	"settlementwatch/pkg/export"
)

// Runner is the subset of the pipeline runner used by the handler.
type Runner interface {
	Run(ctx context.Context, date model.SettlementDate) (*pipeline.Result, error)
}

// Doc is the JSON document served for one settlement date.
type Doc struct {
	Date       string             `json:"date"`
	Summary    export.SummaryDoc  `json:"summary"`
	PriceStats *export.PriceStats `json:"price_stats,omitempty"`
	Series     []export.SeriesRow `json:"series"`
	Warnings   []string           `json:"warnings"`
	FetchError string             `json:"fetch_error,omitempty"`
}

// Path is the route prefix the handler expects to be mounted on.
const Path = "/api/settlement/"

// NewHandler returns an HTTP handler serving GET /api/settlement/{date}.
func NewHandler(runner Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		raw := strings.TrimPrefix(r.URL.Path, Path)
		date, err := model.ParseSettlementDate(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := runner.Run(r.Context(), date)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		doc := Doc{
			Date:    res.Date.String(),
			Summary: export.NewSummaryDoc(res.Summary),
			Series:  export.NewSeriesRows(&res.Series),
		}
		if stats, ok := export.PriceStatistics(&res.Series); ok {
			doc.PriceStats = &stats
		}
		doc.Warnings = make([]string, 0, len(res.Diagnostics.Warnings))
		for _, warn := range res.Diagnostics.Warnings {
			doc.Warnings = append(doc.Warnings, warn.String())
		}
		if res.FetchErr != nil {
			doc.FetchError = res.FetchErr.Error()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
