package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ChicagoDave/housingdash/pkg/analytics"
	"github.com/ChicagoDave/housingdash/pkg/pipeline"
	"github.com/ChicagoDave/housingdash/pkg/provider"
	"github.com/ChicagoDave/housingdash/pkg/synth"
	"github.com/ChicagoDave/housingdash/pkg/validation"
)

const defaultTopN = 5

var errBadRequest = errors.New("bad request")

type summaryResponse struct {
	GeneratedAt       time.Time                   `json:"generated_at"`
	Territory         string                      `json:"territory"`
	Metrics           analytics.KeyMetrics        `json:"metrics"`
	Rollups           analytics.Rollups           `json:"rollups"`
	Rankings          analytics.Rankings          `json:"rankings"`
	InvestmentPerUnit []analytics.UnitRatio       `json:"investment_per_unit"`
	Indicators        []analytics.IndicatorStatus `json:"indicators"`
	Validation        string                      `json:"validation"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	r := s.Report()
	writeJSON(w, http.StatusOK, summaryResponse{
		GeneratedAt:       r.GeneratedAt,
		Territory:         r.Territory,
		Metrics:           r.Summary.Metrics,
		Rollups:           r.Summary.Rollups,
		Rankings:          r.Summary.Rankings,
		InvestmentPerUnit: r.Summary.InvestmentPerUnit,
		Indicators:        r.Summary.Indicators,
		Validation:        r.Validation.Summary,
	})
}

func (s *Server) handleIndicators(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Report().Summary.Indicators)
}

func (s *Server) handleValidation(w http.ResponseWriter, req *http.Request) {
	report := s.Report().Validation
	name := req.URL.Query().Get("level")
	if name == "" {
		writeJSON(w, http.StatusOK, report)
		return
	}
	level, err := validation.ParseLevel(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	results := report.ByLevel(level)
	if results == nil {
		results = []validation.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleProviders(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	filter, err := pipeline.ProviderFilter(q.Get("type"), q.Get("tier"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	order, err := pipeline.ParseProviderOrder(q.Get("sort"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Apply(s.Report().Providers, filter, order))
}

func (s *Server) handleProvider(w http.ResponseWriter, req *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(req, "name"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: provider name: %w", errBadRequest, err))
		return
	}
	sheet, err := s.Report().ProviderSheet(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (s *Server) handleSegments(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	filter := pipeline.Filter[synth.Segment]{
		pipeline.ProvidersOf(func(seg synth.Segment) string { return seg.Provider }, listParam(q, "provider")...),
		pipeline.HousingTypes(listParam(q, "housing_type")...),
	}
	writeJSON(w, http.StatusOK, pipeline.Apply(s.Report().Derived.Segments, filter, nil))
}

func (s *Server) handleHistory(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	from, err := intParam(q, "from", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	to, err := intParam(q, "to", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if from != 0 && to != 0 && from > to {
		s.writeError(w, fmt.Errorf("%w: from %d after to %d", errBadRequest, from, to))
		return
	}
	filter := pipeline.Filter[synth.Snapshot]{
		pipeline.ProvidersOf(func(snap synth.Snapshot) string { return snap.Provider }, listParam(q, "provider")...),
		pipeline.YearRange(from, to),
	}
	writeJSON(w, http.StatusOK, pipeline.Apply(s.Report().Derived.History, filter, nil))
}

func (s *Server) handleProjects(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	filter := pipeline.Filter[synth.Project]{
		pipeline.Region(q.Get("region")),
		pipeline.Status(q.Get("status")),
		pipeline.ProvidersOf(func(p synth.Project) string { return p.Provider }, listParam(q, "provider")...),
	}
	writeJSON(w, http.StatusOK, pipeline.Apply(s.Report().Derived.Projects, filter, nil))
}

func (s *Server) handleDemand(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Report().Derived.Demand)
}

func (s *Server) handleFunding(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Report().Derived.Funding)
}

func (s *Server) handleTop(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	name := q.Get("field")
	if name == "" {
		name = string(provider.FieldTotalStock)
	}
	field, err := provider.ParseField(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	n, err := intParam(q, "n", defaultTopN)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.TopN(s.Report().Providers, field, n))
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	r, err := s.Refresh()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"generated_at": r.GeneratedAt,
		"metrics":      r.Summary.Metrics,
		"validation":   r.Validation.Summary,
	})
}

// listParam collects a repeated or comma-separated query parameter.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(q url.Values, key string, def int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, key)
	}
	return n, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, provider.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, provider.ErrInvalidInput),
		errors.Is(err, provider.ErrUnknownTier),
		errors.Is(err, synth.ErrInvalidInput),
		errors.Is(err, validation.ErrUnknownLevel):
		return http.StatusBadRequest
	case errors.Is(err, analytics.ErrDivisionUndefined):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
