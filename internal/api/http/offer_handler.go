package http

import (
	"context"
	"encoding/json"
	"net/http"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/service"
)

type OfferHandler struct {
	offerService service.OfferService
}

func NewOfferHandler(offerService service.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

type createOfferRequest struct {
	DealID          int32  `json:"deal_id"`
	OfferPriceCents int64  `json:"offer_price_cents"`
	Message         string `json:"message"`

	WithFinancing       bool    `json:"with_financing"`
	DownPaymentCents    int64   `json:"down_payment_cents"`
	InterestRatePercent float64 `json:"interest_rate_percent"`
	TermYears           int32   `json:"term_years"`
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	offer := &domain.Offer{
		DealID:              req.DealID,
		BuyerID:             callerID(r),
		OfferPriceCents:     req.OfferPriceCents,
		Message:             req.Message,
		WithFinancing:       req.WithFinancing,
		DownPaymentCents:    req.DownPaymentCents,
		InterestRatePercent: req.InterestRatePercent,
		TermYears:           req.TermYears,
	}
	if err := h.offerService.CreateOffer(r.Context(), offer); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, offer)
}

func (h *OfferHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.offerService.AcceptOffer)
}

func (h *OfferHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.offerService.RejectOffer)
}

func (h *OfferHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.offerService.WithdrawOffer)
}

func (h *OfferHandler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, offerID int32) (*domain.Offer, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid offer id")
		return
	}

	offer, err := op(r.Context(), callerID(r), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, offer)
}

func (h *OfferHandler) ListForDeal(w http.ResponseWriter, r *http.Request) {
	dealID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	page, pageSize := pagination(r)
	offers, total, err := h.offerService.ListDealOffers(r.Context(), callerID(r), dealID, page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, offers, total, page, pageSize)
}

func (h *OfferHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	offers, total, err := h.offerService.ListMyOffers(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, offers, total, page, pageSize)
}
