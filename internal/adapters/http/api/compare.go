package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jasonjgarcia24/ultra-smart/internal/adapters/analytics"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/ingest"
	"github.com/jasonjgarcia24/ultra-smart/internal/domain/model"
)

// CompareHandler handles comparison requests.
type CompareHandler struct {
	deps Dependencies
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps Dependencies) *CompareHandler {
	return &CompareHandler{deps: deps}
}

// HandleCompare handles POST /compare requests. Validation failures map to
// 400, an unreachable analytics producer to 502; per-runner degradation
// never fails the request and is visible only inside the report.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	report, err := h.deps.Compare(r.Context(), model.ComparisonRequest{
		SelectedRunnerIDs: req.SelectedRunnerIDs,
		CourseLengthMiles: req.CourseLengthMiles,
	}, req.Analyses)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrValidation):
			writeError(w, http.StatusBadRequest, "validation_failed", err)
		case errors.Is(err, analytics.ErrUnreachable), errors.Is(err, analytics.ErrNoBaseURL):
			writeError(w, http.StatusBadGateway, "analytics_unavailable", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}
