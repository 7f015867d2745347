package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/theirongolddev/valuate/internal/export"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/pipeline"
	"github.com/theirongolddev/valuate/internal/simulate"
)

// errBadRequest marks malformed parameters or bodies.
var errBadRequest = errors.New("bad request")

const (
	maxBodyBytes = 1 << 16
	maxSamples   = 1_000_000
)

type request struct {
	inputs model.Inputs
	opts   simulate.Options
}

// body is the POST /v1/valuation payload. Absent fields keep the defaults.
type body struct {
	AnnualRevenue       *float64 `json:"annual_revenue"`
	GrowthRatePercent   *float64 `json:"growth_rate_percent"`
	ProfitMarginPercent *float64 `json:"profit_margin_percent"`
	IndustryMultiple    *float64 `json:"industry_multiple"`
	DiscountRatePercent *float64 `json:"discount_rate_percent"`
	HorizonYears        *int     `json:"horizon_years"`
	Seed                *uint64  `json:"seed"`
	Samples             *int     `json:"samples"`
}

func (s *Service) parseRequest(r *http.Request) (request, error) {
	req := request{inputs: s.cfg.Defaults, opts: s.cfg.Simulation}

	if r.Method == http.MethodPost {
		var b body
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&b); err != nil {
			return request{}, fmt.Errorf("%w: decode body: %v", errBadRequest, err)
		}
		b.apply(&req)
	} else if err := applyQuery(r.URL.Query(), &req); err != nil {
		return request{}, err
	}

	if req.opts.Samples < 1 || req.opts.Samples > maxSamples {
		return request{}, fmt.Errorf("%w: samples must be in [1, %d], got %d", errBadRequest, maxSamples, req.opts.Samples)
	}
	return req, nil
}

func (b body) apply(req *request) {
	setIf(&req.inputs.AnnualRevenue, b.AnnualRevenue)
	setIf(&req.inputs.GrowthRatePercent, b.GrowthRatePercent)
	setIf(&req.inputs.ProfitMarginPercent, b.ProfitMarginPercent)
	setIf(&req.inputs.IndustryMultiple, b.IndustryMultiple)
	setIf(&req.inputs.DiscountRatePercent, b.DiscountRatePercent)
	setIf(&req.inputs.HorizonYears, b.HorizonYears)
	setIf(&req.opts.Seed, b.Seed)
	setIf(&req.opts.Samples, b.Samples)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func applyQuery(q url.Values, req *request) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"revenue", &req.inputs.AnnualRevenue},
		{"growth", &req.inputs.GrowthRatePercent},
		{"margin", &req.inputs.ProfitMarginPercent},
		{"multiple", &req.inputs.IndustryMultiple},
		{"discount", &req.inputs.DiscountRatePercent},
	}
	for _, f := range floats {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", errBadRequest, f.key, raw)
		}
		*f.dst = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"years", &req.inputs.HorizonYears},
		{"samples", &req.opts.Samples},
	}
	for _, f := range ints {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", errBadRequest, f.key, raw)
		}
		*f.dst = v
	}

	if raw := q.Get("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: seed=%q is not an unsigned integer", errBadRequest, raw)
		}
		req.opts.Seed = v
	}
	return nil
}

func (s *Service) handleProjectionCSV(w http.ResponseWriter, r *http.Request) {
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
	writeCSVHeaders(w, export.ProjectionFile)
	if err := export.WriteProjectionCSV(w, an.Result); err != nil {
		log.Printf("valuate serve: write projection csv: %v", err)
	}
}

func (s *Service) handleSimulationCSV(w http.ResponseWriter, r *http.Request) {
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
	writeCSVHeaders(w, export.SimulationFile)
	if err := export.WriteSimulationCSV(w, an.Sample); err != nil {
		log.Printf("valuate serve: write simulation csv: %v", err)
	}
}

func (s *Service) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	n := 5
	if raw := r.URL.Query().Get("steps"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n < 1 || n > pipeline.MaxAxisPoints {
			writeError(w, fmt.Errorf("%w: steps must be an integer in [1, %d]", errBadRequest, pipeline.MaxAxisPoints))
			return
		}
	}

	in := req.inputs
	growths := pipeline.Axis(in.GrowthRatePercent, 5, model.MinGrowthRatePercent, model.MaxGrowthRatePercent, n)
	discounts := pipeline.Axis(in.DiscountRatePercent, 1, model.MinDiscountRatePercent, model.MaxDiscountRatePercent, n)
	grid, err := pipeline.Sweep(in, growths, discounts, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func writeCSVHeaders(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("valuate serve: encode response: %v", err)
	}
}

// writeError maps validation and parse failures to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrInvalidInput) || errors.Is(err, errBadRequest) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
