package router

import (
	"net/http"

	"catalog-service/internal/handler"
	"catalog-service/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(itemHandler *handler.ItemHandler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("GET /catalog/search", itemHandler.Search)
	mux.HandleFunc("POST /catalog/items", itemHandler.Create)
	mux.HandleFunc("GET /catalog/items/{id}", itemHandler.GetByID)
	mux.HandleFunc("PUT /catalog/items/{id}", itemHandler.Update)
	mux.HandleFunc("DELETE /catalog/items/{id}", itemHandler.Delete)

	// Method-less patterns only match when no method above does.
	for _, path := range []string{"/health", "/catalog/search", "/catalog/items", "/catalog/items/{id}"} {
		mux.HandleFunc(path, handler.WriteMethodNotAllowed)
	}
	mux.HandleFunc("/", handler.WriteNotFound)

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.CorrelationID(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
