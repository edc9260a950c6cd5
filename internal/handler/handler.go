package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"catalog-service/internal/model"

	"github.com/rs/zerolog"
)

// Messages for errors that are not domain errors.
const (
	MessageInternalError    = "Internal server error"
	MessageNotFound         = "Not found"
	MessageMethodNotAllowed = "Method not allowed"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to tell the client
		return
	}
}

// writeError writes the uniform {code, message} error body.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Debug().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Code: status, Message: message})
}

// WriteNotFound answers requests for unknown routes.
func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, model.ErrorResponse{Code: http.StatusNotFound, Message: MessageNotFound})
}

// WriteMethodNotAllowed answers requests with an unsupported method on a known path.
func WriteMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, model.ErrorResponse{
		Code:    http.StatusMethodNotAllowed,
		Message: MessageMethodNotAllowed,
	})
}

// WriteInternalError answers with the generic 500 body.
func WriteInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: MessageInternalError,
	})
}

// handleServiceError maps a service error to its HTTP status. Anything that is
// not a domain error is logged and hidden behind a generic 500.
func handleServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("request failed")
		WriteInternalError(w)
		return
	}

	status := http.StatusBadRequest
	if domainErr.Code == model.ErrCodeItemNotFound {
		status = http.StatusNotFound
	}
	writeError(w, status, domainErr.Message, logger)
}

// decodeItemRequest reads an item payload. A non-numeric price is reported as
// an invalid price and an empty body decodes as an empty object.
func decodeItemRequest(r *http.Request) (*model.ItemRequest, error) {
	var req model.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return &req, nil
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "price" {
			return nil, model.ErrInvalidPrice
		}
		return nil, model.ErrInvalidJSON
	}
	return &req, nil
}
