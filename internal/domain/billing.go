package domain

import "time"

// PaymentType identifies what a checkout session purchases
type PaymentType string

const (
	PaymentTypeCredits PaymentType = "credits"
	PaymentTypeInvoice PaymentType = "invoice"
)

type LeadChargeStatus string

const (
	LeadChargeStatusPending  LeadChargeStatus = "PENDING"
	LeadChargeStatusPaid     LeadChargeStatus = "PAID"
	LeadChargeStatusDisputed LeadChargeStatus = "DISPUTED"
	LeadChargeStatusRefunded LeadChargeStatus = "REFUNDED"
)

// LeadCharge is a fee owed by a service provider for a qualified lead
type LeadCharge struct {
	ID              int32            `json:"id"`
	ProviderID      int32            `json:"provider_id"`
	DealID          *int32           `json:"deal_id,omitempty"`
	LeadAmountCents int64            `json:"lead_amount_cents"`
	Status          LeadChargeStatus `json:"status"`
	PaymentDate     *time.Time       `json:"payment_date,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	PaymentSession  string           `json:"payment_session,omitempty"`
	Description     string           `json:"description"`
	CreatedOn       time.Time        `json:"created_on"`
}

type CreditTransactionType string

const (
	CreditTransactionPurchase   CreditTransactionType = "PURCHASE"
	CreditTransactionUsage      CreditTransactionType = "USAGE"
	CreditTransactionRefund     CreditTransactionType = "REFUND"
	CreditTransactionAdjustment CreditTransactionType = "ADJUSTMENT"
)

// CreditTransaction is an append-only record of every credit balance change
type CreditTransaction struct {
	ID              int32                 `json:"id"`
	UserID          int32                 `json:"user_id"`
	Amount          int32                 `json:"amount"` // positive for credit, negative for debit
	BalanceAfter    int32                 `json:"balance_after"`
	Type            CreditTransactionType `json:"type"`
	Description     string                `json:"description"`
	StripeSessionID string                `json:"stripe_session_id,omitempty"`
	CreatedOn       time.Time             `json:"created_on"`
}

// ProcessedSession records a settled checkout session so verification
// applies its effect at most once.
type ProcessedSession struct {
	SessionID    string      `json:"session_id"`
	UserID       int32       `json:"user_id"`
	PaymentType  PaymentType `json:"payment_type"`
	CreditsAdded int32       `json:"credits_added"`
	AmountCents  int64       `json:"amount_cents"`
	ProcessedOn  time.Time   `json:"processed_on"`
}
