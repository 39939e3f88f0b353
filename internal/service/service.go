package service

import (
	"context"
	"time"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/finance"
	"porchlight-backend/internal/payments"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, email, phone, avatarURL string) error
	GetCreditBalance(ctx context.Context, userID int32) (int32, error)
	ListCreditTransactions(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditTransaction, int32, error)
}

type DealService interface {
	CreateDeal(ctx context.Context, deal *domain.Deal) error
	GetDeal(ctx context.Context, id int32) (*domain.Deal, error)
	UpdateDeal(ctx context.Context, userID int32, deal *domain.Deal) error
	DeleteDeal(ctx context.Context, userID, dealID int32) error
	ListMyDeals(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Deal, int32, error)
	SearchDeals(ctx context.Context, filter DealSearch, page, pageSize int32) ([]domain.Deal, int32, error)
	// FinancingBreakdown computes the monthly cost of buying the deal with
	// owner financing. A non-nil downPaymentDollars overrides the listing's
	// minimum down payment.
	FinancingBreakdown(ctx context.Context, dealID int32, downPaymentDollars *float64) (*finance.MonthlyBreakdown, error)
}

// DealSearch mirrors repository.DealFilter at the API boundary
type DealSearch struct {
	Query         string
	DealType      string
	City          string
	MinPriceCents int64
	MaxPriceCents int64
	MinBedrooms   int32
	FinancingOnly bool
}

type OfferService interface {
	CreateOffer(ctx context.Context, offer *domain.Offer) error
	AcceptOffer(ctx context.Context, ownerID, offerID int32) (*domain.Offer, error)
	RejectOffer(ctx context.Context, ownerID, offerID int32) (*domain.Offer, error)
	WithdrawOffer(ctx context.Context, buyerID, offerID int32) (*domain.Offer, error)
	ListDealOffers(ctx context.Context, ownerID, dealID int32, page, pageSize int32) ([]domain.Offer, int32, error)
	ListMyOffers(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Offer, int32, error)
}

type BookingService interface {
	RequestBooking(ctx context.Context, guestID, dealID int32, start, end time.Time, note string) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, guestID int32, page, pageSize int32) ([]domain.Booking, int32, error)
	ListMyHostings(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Booking, int32, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, reviewerID, bookingID int32, rating int32, comment string) (*domain.Review, error)
	ListDealReviews(ctx context.Context, dealID int32, page, pageSize int32) ([]domain.Review, int32, error)
}

// SettlementResult is the outcome of verifying a payment session.
type SettlementResult struct {
	SessionID      string             `json:"session_id"`
	Settled        bool               `json:"settled"`
	AlreadySettled bool               `json:"already_settled"`
	ProviderStatus string             `json:"provider_status"`
	PaymentType    domain.PaymentType `json:"payment_type,omitempty"`
	CreditsAdded   int32              `json:"credits_added"`
	NewBalance     int32              `json:"new_balance"`
	InvoicesPaid   []int32            `json:"invoices_paid,omitempty"`
	AmountCents    int64              `json:"amount_cents"`
}

type BillingService interface {
	CreateCreditCheckout(ctx context.Context, userID int32, amountCents int64) (*payments.CheckoutSession, error)
	CreateInvoiceCheckout(ctx context.Context, userID int32, invoiceIDs []int32) (*payments.CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, userID int32, amountCents int64) (*payments.PaymentIntent, error)
	VerifySession(ctx context.Context, userID int32, sessionID string) (*SettlementResult, error)
	CreateLeadCharge(ctx context.Context, callerID int32, charge *domain.LeadCharge) error
	ListLeadCharges(ctx context.Context, providerID int32, status string, page, pageSize int32) ([]domain.LeadCharge, int32, error)
}

type VideoService interface {
	// GenerateDealVideo is metered: it debits one credit, but only after
	// the external generation call has succeeded.
	GenerateDealVideo(ctx context.Context, userID, dealID int32) (*domain.Deal, int32, error) // deal, new balance
	// GenerateInsightVideo is unmetered.
	GenerateInsightVideo(ctx context.Context, userID, insightID int32) (*domain.Insight, error)
}

type InsightService interface {
	CreateInsight(ctx context.Context, insight *domain.Insight) error
	GetInsight(ctx context.Context, id int32) (*domain.Insight, error)
	ListInsights(ctx context.Context, page, pageSize int32) ([]domain.Insight, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendOfferReceivedNotification(ctx context.Context, ownerEmail, buyerName, dealTitle string) error
	SendOfferDecisionNotification(ctx context.Context, buyerEmail, dealTitle, decision string) error
	SendBookingRequestNotification(ctx context.Context, ownerEmail, guestName, dealTitle string, start, end time.Time) error
	SendBookingDecisionNotification(ctx context.Context, guestEmail, dealTitle, decision string) error
	SendPaymentReceipt(ctx context.Context, email string, amountCents int64, description string) error
	SendLeadChargeReminder(ctx context.Context, providerEmail string, amountCents int64, daysOutstanding int) error
}
