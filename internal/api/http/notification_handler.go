package http

import (
	"net/http"

	"porchlight-backend/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	notes, total, err := h.notificationService.GetNotifications(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, notes, total, page, pageSize)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), callerID(r), id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
