package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"optica-store/internal/httpapi"
	"optica-store/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L().Error("response encode failed", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondUpstreamError maps a backend failure onto this surface:
// backend 4xx pass through with their message, everything else is a
// 502 against us.
func respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *httpapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
		respondError(w, apiErr.StatusCode, apiErr.Message)
		return
	}
	respondError(w, http.StatusBadGateway, "servicio remoto no disponible")
}
