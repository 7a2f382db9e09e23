package handler

import (
	"encoding/json"
	"net/http"

	"bistro-kart/internal/model"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	writeErrorResponse(w, r, status, model.ErrorResponse{Error: code, Message: message}, logger)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, resp model.ErrorResponse, logger zerolog.Logger) {
	resp.CorrelationID = chimw.GetReqID(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("error", resp.Error).
		Str("message", resp.Message).
		Str("correlation_id", resp.CorrelationID).
		Int("status", status).
		Msg("handler error")

	writeJSON(w, status, resp)
}

// MethodNotAllowed answers requests whose path exists with another method.
func MethodNotAllowed(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", logger)
	}
}
