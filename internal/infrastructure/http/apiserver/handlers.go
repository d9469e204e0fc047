package apiserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// handleExecutePrep handles POST /api/v1/prep/{slot}
func (s *APIServer) handleExecutePrep(w http.ResponseWriter, r *http.Request) {
	slot, err := prep.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		s.writeError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}

	start := time.Now()
	result, runErr := s.prepService.Run(r.Context(), slot)
	s.metrics.ObserveRun(slot, result, time.Since(start).Seconds())
	if runErr != nil {
		s.writeError(w, r, runErr)
		return
	}

	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
		Message: "Prep run completed",
	})
}

// handleListExecutions handles GET /api/v1/prep/executions
func (s *APIServer) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	var slot *prep.Slot
	if raw := r.URL.Query().Get("slot"); raw != "" {
		parsed, err := prep.ParseSlot(raw)
		if err != nil {
			s.writeError(w, r, errors.NewBadRequestError(err.Error()))
			return
		}
		slot = &parsed
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, errors.NewBadRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	executions, err := s.prepService.ListExecutions(r.Context(), slot, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    executions,
	})
}

// writeJSON writes a JSON response
func (s *APIServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps an error to the structured API error envelope
func (s *APIServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.Wrap(err, "request failed")
	requestID := chimiddleware.GetReqID(r.Context())

	if appErr.StatusCode() >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if encodeErr := json.NewEncoder(w).Encode(errors.ToErrorResponse(appErr, requestID)); encodeErr != nil {
		s.logger.Error("Failed to encode error response", zap.Error(encodeErr))
	}
}
