package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Jiyath5516F/edenai-apis/pkg/canonical"
	"github.com/Jiyath5516F/edenai-apis/pkg/storage"
)

// APIError is the JSON error body of the unified API.
type APIError struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Param    string `json:"param,omitempty"`
	Provider string `json:"provider,omitempty"`
	Code     int    `json:"code,omitempty"`
}

// ErrorResponse wraps an APIError in the response envelope.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// Error types of the unified API.
const (
	ErrorTypeInvalidRequest = "invalid_request_error"
	ErrorTypeProvider       = "provider_error"
	ErrorTypeNotFound       = "not_found_error"
	ErrorTypeServer         = "server_error"
)

// WriteErrorResponse writes a JSON error response with the given status.
func WriteErrorResponse(w http.ResponseWriter, apiErr *APIError, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: apiErr})
}

// WriteError maps a handler error onto the API error body and HTTP
// status. Invalid input maps to 400, missing resources to 404, vendor
// failures to 502 with the vendor's own message and status attached,
// everything else to 500.
func WriteError(w http.ResponseWriter, err error) {
	var invalid *canonical.InvalidInputError
	if errors.As(err, &invalid) {
		WriteErrorResponse(w, &APIError{
			Type:    ErrorTypeInvalidRequest,
			Message: invalid.Message,
			Param:   invalid.Param,
		}, http.StatusBadRequest)
		return
	}

	var pe *canonical.ProviderError
	if errors.As(err, &pe) {
		WriteErrorResponse(w, &APIError{
			Type:     ErrorTypeProvider,
			Message:  pe.Message,
			Provider: pe.Provider,
			Code:     pe.Code,
		}, http.StatusBadGateway)
		return
	}

	if errors.Is(err, storage.ErrNotFound) {
		WriteErrorResponse(w, &APIError{
			Type:    ErrorTypeNotFound,
			Message: "job not found",
		}, http.StatusNotFound)
		return
	}

	WriteErrorResponse(w, &APIError{
		Type:    ErrorTypeServer,
		Message: err.Error(),
	}, http.StatusInternalServerError)
}
