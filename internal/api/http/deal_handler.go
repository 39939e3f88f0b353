package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/service"
)

type DealHandler struct {
	dealService service.DealService
}

func NewDealHandler(dealService service.DealService) *DealHandler {
	return &DealHandler{dealService: dealService}
}

func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var deal domain.Deal
	if err := json.NewDecoder(r.Body).Decode(&deal); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	deal.OwnerID = callerID(r)
	deal.Status = domain.DealStatusActive
	if err := h.dealService.CreateDeal(r.Context(), &deal); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, deal)
}

func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	deal, err := h.dealService.GetDeal(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, deal)
}

func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	var deal domain.Deal
	if err := json.NewDecoder(r.Body).Decode(&deal); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	deal.ID = id
	if err := h.dealService.UpdateDeal(r.Context(), callerID(r), &deal); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, deal)
}

func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	if err := h.dealService.DeleteDeal(r.Context(), callerID(r), id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DealHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	deals, total, err := h.dealService.ListMyDeals(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, deals, total, page, pageSize)
}

func (h *DealHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := service.DealSearch{
		Query:         q.Get("q"),
		DealType:      q.Get("deal_type"),
		City:          q.Get("city"),
		FinancingOnly: q.Get("financing_only") == "true",
	}
	if raw := q.Get("min_price_cents"); raw != "" {
		search.MinPriceCents, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := q.Get("max_price_cents"); raw != "" {
		search.MaxPriceCents, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := q.Get("min_bedrooms"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			search.MinBedrooms = int32(v)
		}
	}

	page, pageSize := pagination(r)
	deals, total, err := h.dealService.SearchDeals(r.Context(), search, page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, deals, total, page, pageSize)
}

// FinancingBreakdown returns the monthly cost of buying the deal with
// owner financing. An optional down_payment query parameter, in dollars,
// overrides the listing's minimum.
func (h *DealHandler) FinancingBreakdown(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	var downPayment *float64
	if raw := r.URL.Query().Get("down_payment"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid down_payment")
			return
		}
		downPayment = &v
	}

	breakdown, err := h.dealService.FinancingBreakdown(r.Context(), id, downPayment)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, breakdown)
}
