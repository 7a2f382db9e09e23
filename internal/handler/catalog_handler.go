package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bistro-kart/internal/model"
	"bistro-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CatalogHandler handles menu and product HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Menu handles GET /api/menu requests.
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Menu(r.Context()))
}

// List handles GET /api/products requests with pagination.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 10 // default
	if s := query.Get("limit"); s != "" {
		var err error
		limit, err = strconv.Atoi(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0 // default
	if s := query.Get("offset"); s != "" {
		var err error
		offset, err = strconv.Atoi(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid offset parameter", h.logger)
			return
		}
	}

	products, err := h.service.List(r.Context(), query.Get("category"), limit, offset)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid product ID format", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found", h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
