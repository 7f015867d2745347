// Package server exposes the valuation engine over HTTP, with a ring buffer
// of recent computations and a server-sent event stream of new ones.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/pipeline"
	"github.com/theirongolddev/valuate/internal/simulate"
)

// Config controls the service runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	Defaults     model.Inputs
	Simulation   simulate.Options
	Bins         int
}

// Range is the headline valuation range, multiple first.
type Range struct {
	Multiple float64 `json:"multiple"`
	DCF      float64 `json:"dcf"`
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Headline string  `json:"headline"`
}

// Valuation is the response body of /v1/valuation.
type Valuation struct {
	ID            string           `json:"id"`
	ComputedAt    time.Time        `json:"computed_at"`
	Result        model.Result     `json:"result"`
	Range         Range            `json:"range"`
	Seed          uint64           `json:"seed"`
	Simulation    simulate.Summary `json:"simulation"`
	RevenueShares []float64        `json:"revenue_shares"`
}

// Event is emitted for every successful valuation.
type Event struct {
	Seq       int64        `json:"seq"`
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Inputs    model.Inputs `json:"inputs"`
	Range     Range        `json:"range"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Computations    int64     `json:"computations"`
	Rejected        int64     `json:"rejected"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the HTTP API.
type Service struct {
	cfg Config

	mu           sync.RWMutex
	startedAt    time.Time
	computations int64
	rejected     int64
	lastError    string
	nextSeq      int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Simulation.Samples < 1 {
		cfg.Simulation.Samples = simulate.DefaultSamples
	}
	if cfg.Simulation.SpreadPercent <= 0 {
		cfg.Simulation.SpreadPercent = simulate.DefaultSpreadPercent
	}
	if cfg.Bins < 1 {
		cfg.Bins = simulate.DefaultBins
	}
	if cfg.Defaults == (model.Inputs{}) {
		cfg.Defaults = model.DefaultInputs()
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the service routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/valuation", s.handleValuation)
	mux.HandleFunc("POST /v1/valuation", s.handleValuation)
	mux.HandleFunc("GET /v1/sensitivity", s.handleSensitivity)
	mux.HandleFunc("GET /v1/export/projection.csv", s.handleProjectionCSV)
	mux.HandleFunc("GET /v1/export/simulation.csv", s.handleSimulationCSV)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	return mux
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("valuate serve: listening on %s", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("valuate http server: %w", err)
	}
}

// compute runs the pipeline for a parsed request and records the outcome.
func (s *Service) compute(req request) (pipeline.Analysis, error) {
	an, err := pipeline.Run(req.inputs, req.opts, s.cfg.Bins)

	s.mu.Lock()
	if err != nil {
		s.rejected++
		s.lastError = err.Error()
	} else {
		s.computations++
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("valuate serve: rejected request: %v", err)
	}
	return an, err
}

func newRange(res model.Result) Range {
	return Range{
		Multiple: res.MultipleValuation,
		DCF:      res.DCFValuation,
		Low:      res.ValuationLow(),
		High:     res.ValuationHigh(),
		Headline: cli.FormatRange(res.MultipleValuation, res.DCFValuation),
	}
}

func (s *Service) record(v Valuation) {
	s.publishEvent(Event{
		ID:        v.ID,
		Type:      "valuation",
		Timestamp: v.ComputedAt,
		Inputs:    v.Result.Inputs,
		Range:     v.Range,
	})
}

// publishEvent numbers ev, appends it to the ring and fans it out, all under
// one lock so the ring and every stream see events in sequence order.
func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	ev.Seq = s.nextSeq
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Computations:    s.computations,
		Rejected:        s.rejected,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleValuation(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	an, err := s.compute(req)
	if err != nil {
		writeError(w, err)
		return
	}

	v := Valuation{
		ID:            uuid.NewString(),
		ComputedAt:    time.Now().UTC(),
		Result:        an.Result,
		Range:         newRange(an.Result),
		Seed:          an.Sample.Seed,
		Simulation:    an.Summary,
		RevenueShares: an.Shares,
	}
	s.record(v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "id: %d\n", ev.Seq)
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
