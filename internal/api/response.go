package api

import (
	"encoding/json"
	"net/http"

	"github.com/lzjever/mbos-tuid/internal/core"
)

// ErrorResponse represents a tuid error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a tuid error response.
func WriteError(w http.ResponseWriter, err *core.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code.HTTPStatus())
	json.NewEncoder(w).Encode(ErrorResponse{
		Code:    string(err.Code),
		Message: err.Message,
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
