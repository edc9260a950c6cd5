package handler

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"catalog-service/internal/model"
	"catalog-service/internal/service"

	"github.com/rs/zerolog"
)

// ItemHandler handles catalog item HTTP requests.
type ItemHandler struct {
	service service.ItemService
	logger  zerolog.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(service service.ItemService, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With().Str("handler", "item").Logger(),
	}
}

// Search handles GET /catalog/search requests.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := parseSearchFilter(r.URL.Query())

	result, err := h.service.Search(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /catalog/items requests.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeItemRequest(r)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// GetByID handles GET /catalog/items/{id} requests.
func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Update handles PUT /catalog/items/{id} requests.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := decodeItemRequest(r)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /catalog/items/{id} requests.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseSearchFilter reads the search criteria from the query string.
// Empty, unparseable or non-finite values are treated as absent; pagination
// left at zero is defaulted by the service.
func parseSearchFilter(values url.Values) model.SearchFilter {
	var filter model.SearchFilter

	if q := values.Get("query"); q != "" {
		filter.Query = &q
	}
	if category := values.Get("category"); category != "" {
		filter.Category = &category
	}
	filter.MinPrice = parsePriceBound(values.Get("minPrice"))
	filter.MaxPrice = parsePriceBound(values.Get("maxPrice"))
	if raw := values.Get("inStock"); raw != "" {
		inStock := raw == "true"
		filter.InStock = &inStock
	}

	filter.Page, _ = strconv.Atoi(values.Get("page"))
	filter.PageSize, _ = strconv.Atoi(values.Get("pageSize"))

	return filter
}

// parsePriceBound returns nil unless raw is a finite number.
func parsePriceBound(raw string) *float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
