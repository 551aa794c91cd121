package views

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("JSON encode failed", zap.Error(err))
	}
}

func renderJSONError(w http.ResponseWriter, status int, message string) {
	renderJSON(w, status, errorResponse{Error: message})
}

func isBodyTooLarge(err error) bool {
	return strings.Contains(err.Error(), "http: request body too large")
}
