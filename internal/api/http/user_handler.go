package http

import (
	"encoding/json"
	"net/http"

	"porchlight-backend/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetProfile(r.Context(), callerID(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	AvatarURL   string `json:"avatar_url"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	if err := h.userService.UpdateProfile(r.Context(), callerID(r), req.Name, req.Email, req.PhoneNumber, req.AvatarURL); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) GetCreditBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.userService.GetCreditBalance(r.Context(), callerID(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int32{"credits": balance})
}

func (h *UserHandler) ListCreditTransactions(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	txns, total, err := h.userService.ListCreditTransactions(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, txns, total, page, pageSize)
}
