package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bistro-kart/internal/model"
	"bistro-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxOrderBody bounds the size of an order creation request.
const maxOrderBody = 1 << 20

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBody))
	if err := dec.Decode(&req); err != nil || dec.Decode(&struct{}{}) != io.EOF {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "request body must be a single JSON object", h.logger)
		return
	}

	created, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeErrorResponse(w, r, http.StatusUnprocessableEntity, model.ErrorResponse{
				Error:   model.ErrCodeValidationFailed,
				Message: "order validation failed",
				Fields:  verr.Fields,
			}, h.logger)
			return
		}

		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to create order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found", h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
