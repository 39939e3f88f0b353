package http

import (
	"encoding/json"
	"net/http"
	"time"

	"porchlight-backend/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
	reviewService  service.ReviewService
}

func NewBookingHandler(bookingService service.BookingService, reviewService service.ReviewService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, reviewService: reviewService}
}

type requestBookingRequest struct {
	DealID    int32  `json:"deal_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
	Note      string `json:"note"`
}

func (h *BookingHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req requestBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		return
	}

	booking, err := h.bookingService.RequestBooking(r.Context(), callerID(r), req.DealID, start, end, req.Note)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.bookingService.ConfirmBooking(r.Context(), callerID(r), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.bookingService.CompleteBooking(r.Context(), callerID(r), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req cancelBookingRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	booking, err := h.bookingService.CancelBooking(r.Context(), callerID(r), id, req.Reason)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	bookings, total, err := h.bookingService.ListMyBookings(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, bookings, total, page, pageSize)
}

func (h *BookingHandler) ListHostings(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	bookings, total, err := h.bookingService.ListMyHostings(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, bookings, total, page, pageSize)
}

type createReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *BookingHandler) Review(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	review, err := h.reviewService.CreateReview(r.Context(), callerID(r), bookingID, req.Rating, req.Comment)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

func (h *BookingHandler) ListDealReviews(w http.ResponseWriter, r *http.Request) {
	dealID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	page, pageSize := pagination(r)
	reviews, total, err := h.reviewService.ListDealReviews(r.Context(), dealID, page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, reviews, total, page, pageSize)
}
