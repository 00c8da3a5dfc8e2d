package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/geotk/marketplace/pkg/apperror"
)

// Response is the JSON envelope returned by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps the error taxonomy to HTTP status codes
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperror.IsValidation(err):
		status = http.StatusBadRequest
	case apperror.IsNotFound(err):
		status = http.StatusNotFound
	case apperror.IsConflict(err):
		status = http.StatusConflict
	}

	respondJSON(w, status, Response{
		Success: false,
		Error:   err.Error(),
	})
}

// pathID parses a numeric id path variable
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, apperror.Invalidf("invalid %s", name)
	}
	return uint(id), nil
}
