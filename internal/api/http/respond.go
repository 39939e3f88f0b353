package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"porchlight-backend/internal/logger"
	"porchlight-backend/internal/service"
	"porchlight-backend/internal/video"
)

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps service-layer errors to HTTP status codes.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var creditsErr *service.InsufficientCreditsError
	var upstreamErr *video.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &creditsErr):
		respondWithJSON(w, http.StatusPaymentRequired, map[string]any{
			"error":    creditsErr.Error(),
			"required": creditsErr.Required,
			"current":  creditsErr.Current,
		})
	case errors.As(err, &upstreamErr):
		respondWithError(w, http.StatusBadGateway, "video generation failed")
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrSessionOwnership):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, sql.ErrNoRows):
		respondWithError(w, http.StatusNotFound, "not found")
	default:
		logger.Error("Unhandled service error", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID extracts an int32 path variable from the request.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

// pagination reads page and page_size query parameters with defaults.
func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}

// pagedResponse is the wire shape of every list endpoint.
type pagedResponse struct {
	Items    any   `json:"items"`
	Total    int32 `json:"total"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

func respondWithPage(w http.ResponseWriter, items any, total, page, pageSize int32) {
	respondWithJSON(w, http.StatusOK, pagedResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
