package http

import (
	"encoding/json"
	"net/http"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/service"
)

type BillingHandler struct {
	billingService service.BillingService
}

func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

type creditCheckoutRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

func (h *BillingHandler) CreateCreditCheckout(w http.ResponseWriter, r *http.Request) {
	var req creditCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	session, err := h.billingService.CreateCreditCheckout(r.Context(), callerID(r), req.AmountCents)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{
		"session_id":   session.ID,
		"checkout_url": session.URL,
	})
}

type invoiceCheckoutRequest struct {
	InvoiceIDs []int32 `json:"invoice_ids"`
}

func (h *BillingHandler) CreateInvoiceCheckout(w http.ResponseWriter, r *http.Request) {
	var req invoiceCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	session, err := h.billingService.CreateInvoiceCheckout(r.Context(), callerID(r), req.InvoiceIDs)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{
		"session_id":   session.ID,
		"checkout_url": session.URL,
	})
}

func (h *BillingHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req creditCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	intent, err := h.billingService.CreatePaymentIntent(r.Context(), callerID(r), req.AmountCents)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{
		"intent_id":     intent.ID,
		"client_secret": intent.ClientSecret,
	})
}

type verifySessionRequest struct {
	SessionID string `json:"session_id"`
}

// VerifySession reconciles a checkout session after the client returns
// from the hosted payment page. Safe to call repeatedly.
func (h *BillingHandler) VerifySession(w http.ResponseWriter, r *http.Request) {
	var req verifySessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	result, err := h.billingService.VerifySession(r.Context(), callerID(r), req.SessionID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

type createLeadChargeRequest struct {
	ProviderID      int32  `json:"provider_id"`
	DealID          *int32 `json:"deal_id,omitempty"`
	LeadAmountCents int64  `json:"lead_amount_cents"`
	Description     string `json:"description"`
}

func (h *BillingHandler) CreateLeadCharge(w http.ResponseWriter, r *http.Request) {
	var req createLeadChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	charge := &domain.LeadCharge{
		ProviderID:      req.ProviderID,
		DealID:          req.DealID,
		LeadAmountCents: req.LeadAmountCents,
		Description:     req.Description,
	}
	if err := h.billingService.CreateLeadCharge(r.Context(), callerID(r), charge); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, charge)
}

func (h *BillingHandler) ListLeadCharges(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	charges, total, err := h.billingService.ListLeadCharges(r.Context(), callerID(r), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithPage(w, charges, total, page, pageSize)
}
