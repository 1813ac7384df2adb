// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

// Dependencies required by HTTP handlers. The interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Compare runs one comparison; raw may be nil to fetch analyses from
	// the upstream producer.
	Compare(ctx context.Context, req model.ComparisonRequest, raw *model.RawAnalysisMap) (*model.ComparisonReport, error)

	// GetStats exposes service counters.
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the comparison API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	compareHandler *CompareHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		compareHandler: NewCompareHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/compare", MetricsMiddleware(s.compareHandler.HandleCompare, "compare"))
}

// compareRequest mirrors the POST /compare body.
type compareRequest struct {
	SelectedRunnerIDs []string              `json:"selected_runner_ids"`
	CourseLengthMiles float64               `json:"course_length_miles"`
	Analyses          *model.RawAnalysisMap `json:"analyses,omitempty"`
}

func (r compareRequest) validate() error {
	if len(r.SelectedRunnerIDs) == 0 {
		return errors.New("missing selected_runner_ids")
	}
	for _, id := range r.SelectedRunnerIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("selected_runner_ids must not contain empty ids")
		}
	}
	if r.CourseLengthMiles < 0 {
		return errors.New("course_length_miles must not be negative")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
