package http

import (
	"encoding/json"
	"net/http"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/service"
)

type InsightHandler struct {
	insightService service.InsightService
}

func NewInsightHandler(insightService service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

func (h *InsightHandler) Create(w http.ResponseWriter, r *http.Request) {
	var insight domain.Insight
	if err := json.NewDecoder(r.Body).Decode(&insight); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	insight.AuthorID = callerID(r)
	if err := h.insightService.CreateInsight(r.Context(), &insight); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, insight)
}

func (h *InsightHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid insight id")
		return
	}

	insight, err := h.insightService.GetInsight(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, insight)
}

func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	insights, total, err := h.insightService.ListInsights(r.Context(), page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, insights, total, page, pageSize)
}
