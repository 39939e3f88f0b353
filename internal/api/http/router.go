// Package http exposes the REST API over gorilla/mux.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Deal         *DealHandler
	Offer        *OfferHandler
	Booking      *BookingHandler
	Billing      *BillingHandler
	Video        *VideoHandler
	Insight      *InsightHandler
	Notification *NotificationHandler
}

// NewRouter wires all routes. Everything under /api/v1 except auth and
// public listing reads requires a bearer token.
func NewRouter(h *Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	v1.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	v1.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	v1.HandleFunc("/deals/search", h.Deal.Search).Methods(http.MethodGet)
	v1.HandleFunc("/deals/{id:[0-9]+}", h.Deal.Get).Methods(http.MethodGet)
	v1.HandleFunc("/deals/{id:[0-9]+}/financing", h.Deal.FinancingBreakdown).Methods(http.MethodGet)
	v1.HandleFunc("/deals/{id:[0-9]+}/reviews", h.Booking.ListDealReviews).Methods(http.MethodGet)
	v1.HandleFunc("/insights", h.Insight.List).Methods(http.MethodGet)
	v1.HandleFunc("/insights/{id:[0-9]+}", h.Insight.Get).Methods(http.MethodGet)

	// Authenticated routes
	authed := v1.NewRoute().Subrouter()
	authed.Use(auth.Handler)

	authed.HandleFunc("/me", h.User.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/me", h.User.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/me/credits", h.User.GetCreditBalance).Methods(http.MethodGet)
	authed.HandleFunc("/me/credits/transactions", h.User.ListCreditTransactions).Methods(http.MethodGet)

	authed.HandleFunc("/deals", h.Deal.Create).Methods(http.MethodPost)
	authed.HandleFunc("/deals/mine", h.Deal.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/deals/{id:[0-9]+}", h.Deal.Update).Methods(http.MethodPut)
	authed.HandleFunc("/deals/{id:[0-9]+}", h.Deal.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/deals/{id:[0-9]+}/offers", h.Offer.ListForDeal).Methods(http.MethodGet)
	authed.HandleFunc("/deals/{id:[0-9]+}/video", h.Video.GenerateDealVideo).Methods(http.MethodPost)

	authed.HandleFunc("/offers", h.Offer.Create).Methods(http.MethodPost)
	authed.HandleFunc("/offers/mine", h.Offer.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/offers/{id:[0-9]+}/accept", h.Offer.Accept).Methods(http.MethodPost)
	authed.HandleFunc("/offers/{id:[0-9]+}/reject", h.Offer.Reject).Methods(http.MethodPost)
	authed.HandleFunc("/offers/{id:[0-9]+}/withdraw", h.Offer.Withdraw).Methods(http.MethodPost)

	authed.HandleFunc("/bookings", h.Booking.Request).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/mine", h.Booking.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/hostings", h.Booking.ListHostings).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/confirm", h.Booking.Confirm).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/complete", h.Booking.Complete).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.Booking.Cancel).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/review", h.Booking.Review).Methods(http.MethodPost)

	authed.HandleFunc("/billing/checkout/credits", h.Billing.CreateCreditCheckout).Methods(http.MethodPost)
	authed.HandleFunc("/billing/checkout/invoices", h.Billing.CreateInvoiceCheckout).Methods(http.MethodPost)
	authed.HandleFunc("/billing/payment-intent", h.Billing.CreatePaymentIntent).Methods(http.MethodPost)
	authed.HandleFunc("/billing/verify", h.Billing.VerifySession).Methods(http.MethodPost)
	authed.HandleFunc("/billing/lead-charges", h.Billing.CreateLeadCharge).Methods(http.MethodPost)
	authed.HandleFunc("/billing/lead-charges", h.Billing.ListLeadCharges).Methods(http.MethodGet)

	authed.HandleFunc("/insights", h.Insight.Create).Methods(http.MethodPost)
	authed.HandleFunc("/insights/{id:[0-9]+}/video", h.Video.GenerateInsightVideo).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	return r
}
