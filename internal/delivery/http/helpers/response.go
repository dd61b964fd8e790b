package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInternalError = "internal_error"
)

// ErrorResponse is the error body for every endpoint.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// IDMessageResponse is the success body for mutations: the id of the
// affected record plus a human-readable message.
// swagger:model IDMessageResponse
type IDMessageResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes data as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError sets Content-Type to application/json, writes statusCode,
// and encodes an ErrorResponse with the given code and description.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, description string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}
