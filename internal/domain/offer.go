package domain

import "time"

type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "PENDING"
	OfferStatusAccepted  OfferStatus = "ACCEPTED"
	OfferStatusRejected  OfferStatus = "REJECTED"
	OfferStatusWithdrawn OfferStatus = "WITHDRAWN"
)

type Offer struct {
	ID              int32       `json:"id"`
	DealID          int32       `json:"deal_id"`
	BuyerID         int32       `json:"buyer_id"`
	OwnerID         int32       `json:"owner_id"`
	OfferPriceCents int64       `json:"offer_price_cents"`
	Status          OfferStatus `json:"status"`
	Message         string      `json:"message,omitempty"`

	// Proposed owner-financing terms, if the buyer wants seller financing
	WithFinancing       bool    `json:"with_financing"`
	DownPaymentCents    int64   `json:"down_payment_cents"`
	InterestRatePercent float64 `json:"interest_rate_percent"`
	TermYears           int32   `json:"term_years"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
