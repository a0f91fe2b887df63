// Package api provides the REST API and WebSocket server for remedy.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
)

// APIError is the standard error response format.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// JSONResponse writes a successful JSON response.
func JSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// JSONError writes a simple error response.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIError{Error: message})
}

// HandleError inspects error type and writes appropriate response.
func HandleError(w http.ResponseWriter, err error) {
	var rerr *remedyerrors.RemedyError
	if errors.As(err, &rerr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rerr.HTTPStatus())
		_ = json.NewEncoder(w).Encode(APIError{
			Error: rerr.What,
			Code:  string(rerr.Code),
		})
		return
	}
	// Fallback for unknown errors
	JSONError(w, err.Error(), http.StatusInternalServerError)
}

// JSONResponseStatus writes a JSON response with a specific status code.
func JSONResponseStatus(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// NoContent writes a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
