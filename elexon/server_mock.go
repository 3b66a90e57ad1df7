package elexon

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"settlementwatch/core/model"
	"settlementwatch/infra/logger"
)

// ServerMock is a local stand-in for the Insights API. It serves a
// deterministic synthetic day for any date and lets tests and local
// development inject exact payloads per date.
type ServerMock struct {
	addr   string
	log    logger.Logger
	srv    *http.Server
	served *prometheus.CounterVec
	failed prometheus.Counter

	mu   sync.Mutex
	days map[string][]PeriodEntry
}

// NewServerMock creates a mock server using the default Prometheus
// registerer.
func NewServerMock(addr string) *ServerMock {
	return NewServerMockWithRegistry(addr, prometheus.DefaultRegisterer)
}

// NewServerMockWithRegistry creates a mock server and registers its metrics
// on the provided registerer. If reg is nil the default registerer is used.
func NewServerMockWithRegistry(addr string, reg prometheus.Registerer) *ServerMock {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	log := logger.New("elexon-server-mock")

	served := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "elexon_mock_requests_total",
		Help: "Total system-prices requests served by the mock",
	}, []string{"date"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "elexon_mock_requests_failed",
		Help: "Rejected mock requests",
	})

	if err := reg.Register(served); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if exist, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				served = exist
			} else {
				log.Errorf("existing collector for elexon_mock_requests_total has wrong type %T", are.ExistingCollector)
			}
		}
	}
	if err := reg.Register(failed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if exist, ok := are.ExistingCollector.(prometheus.Counter); ok {
				failed = exist
			} else {
				log.Errorf("existing collector for elexon_mock_requests_failed has wrong type %T", are.ExistingCollector)
			}
		}
	}

	return &ServerMock{
		addr:   addr,
		log:    log,
		served: served,
		failed: failed,
		days:   make(map[string][]PeriodEntry),
	}
}

func (s *ServerMock) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mock/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("pong")); err != nil {
			s.log.Errorf("write pong: %v", err)
		}
	})
	mux.HandleFunc(systemPricesPath+"/", s.handleSystemPrices)
	mux.HandleFunc("/mock/day/", s.handleSetDay)
	return mux
}

func (s *ServerMock) handleSystemPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, systemPricesPath+"/")
	date, err := model.ParseSettlementDate(raw)
	if err != nil {
		s.failed.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	entries, injected := s.days[date.String()]
	s.mu.Unlock()
	if !injected {
		entries = syntheticDay(date)
	}

	s.served.WithLabelValues(date.String()).Inc()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"data": entries}); err != nil {
		s.log.Errorf("encode day %s: %v", date, err)
	}
}

// handleSetDay stores an exact payload for a date via PUT /mock/day/{date}.
func (s *ServerMock) handleSetDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/mock/day/")
	date, err := model.ParseSettlementDate(raw)
	if err != nil {
		s.failed.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var entries []PeriodEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		s.failed.Inc()
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.days[date.String()] = entries
	s.mu.Unlock()
	s.log.Infof("stored %d entries for %s", len(entries), date)
	w.WriteHeader(http.StatusNoContent)
}

// syntheticDay builds a complete plausible day, deterministic per date.
func syntheticDay(date model.SettlementDate) []PeriodEntry {
	h := fnv.New64a()
	_, _ = h.Write([]byte(date.String()))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	entries := make([]PeriodEntry, 0, model.PeriodsPerDay)
	for p := model.SettlementPeriod(1); p <= model.PeriodsPerDay; p++ {
		volume := rng.Float64()*400 - 200 // MWh, either direction
		price := 30 + rng.Float64()*80
		entries = append(entries, PeriodEntry{
			SettlementDate:     date.String(),
			SettlementPeriod:   int(p),
			StartTime:          date.PeriodStart(p).Format(time.RFC3339),
			SystemSellPrice:    numberRaw(price),
			SystemBuyPrice:     numberRaw(price),
			NetImbalanceVolume: numberRaw(volume),
		})
	}
	return entries
}

func numberRaw(f float64) json.RawMessage {
	return json.RawMessage(strconv.FormatFloat(f, 'f', 3, 64))
}

// Addr returns the listening address once Start has been called.
func (s *ServerMock) Addr() string { return s.addr }

// Start binds the listener and serves in the background until the context
// is canceled. It returns once the server is accepting connections.
func (s *ServerMock) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = ln.Addr().String()
	s.srv = &http.Server{Handler: s.routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("shutdown server: %v", err)
		}
		cancel()
	}()
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("mock server: %v", err)
		}
	}()
	s.log.Infof("elexon mock server listening on %s", s.addr)
	return nil
}
