package http

import (
	"net/http"

	"porchlight-backend/internal/service"
)

type VideoHandler struct {
	videoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// GenerateDealVideo charges one credit once the upstream call succeeds.
func (h *VideoHandler) GenerateDealVideo(w http.ResponseWriter, r *http.Request) {
	dealID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	deal, newBalance, err := h.videoService.GenerateDealVideo(r.Context(), callerID(r), dealID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"deal":    deal,
		"credits": newBalance,
	})
}

func (h *VideoHandler) GenerateInsightVideo(w http.ResponseWriter, r *http.Request) {
	insightID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid insight id")
		return
	}

	insight, err := h.videoService.GenerateInsightVideo(r.Context(), callerID(r), insightID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, insight)
}
