package repository

import (
	"context"
	"time"

	"porchlight-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// Credit ledger. Both mutations are single conditional statements at
	// the storage layer so concurrent operations cannot lose updates or
	// drive the balance negative.
	GetCredits(ctx context.Context, userID int32) (int32, error)
	AddCredits(ctx context.Context, userID, amount int32, txnType domain.CreditTransactionType, description, sessionID string) (int32, error)
	SpendCredits(ctx context.Context, userID, amount int32, description string) (int32, error)
	ListCreditTransactions(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditTransaction, int32, error)
}

type DealRepository interface {
	Create(ctx context.Context, deal *domain.Deal) error
	GetByID(ctx context.Context, id int32) (*domain.Deal, error)
	Update(ctx context.Context, deal *domain.Deal) error
	Delete(ctx context.Context, id int32) error
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Deal, int32, error)
	Search(ctx context.Context, filter DealFilter, page, pageSize int32) ([]domain.Deal, int32, error)
	SetVideo(ctx context.Context, dealID int32, videoURL, videoKey string) error
}

// DealFilter narrows a deal search; zero values mean "any"
type DealFilter struct {
	Query         string
	DealType      domain.DealType
	City          string
	MinPriceCents int64
	MaxPriceCents int64
	MinBedrooms   int32
	FinancingOnly bool
}

type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	GetByID(ctx context.Context, id int32) (*domain.Offer, error)
	Update(ctx context.Context, offer *domain.Offer) error
	ListByDeal(ctx context.Context, dealID int32, page, pageSize int32) ([]domain.Offer, int32, error)
	ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Offer, int32, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByGuest(ctx context.Context, guestID int32, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Booking, int32, error)
	CountOverlapping(ctx context.Context, dealID int32, start, end time.Time) (int32, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Review, error)
	ListByDeal(ctx context.Context, dealID int32, page, pageSize int32) ([]domain.Review, int32, error)
}

type LeadChargeRepository interface {
	Create(ctx context.Context, charge *domain.LeadCharge) error
	GetByID(ctx context.Context, id int32) (*domain.LeadCharge, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.LeadCharge, error)
	ListByProvider(ctx context.Context, providerID int32, status domain.LeadChargeStatus, page, pageSize int32) ([]domain.LeadCharge, int32, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.LeadCharge, error)
	MarkDisputedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SettlementRepository applies verified payment sessions exactly once.
type SettlementRepository interface {
	GetProcessedSession(ctx context.Context, sessionID string) (*domain.ProcessedSession, error)
	// RecordSettlement runs in one database transaction: it claims the
	// session id, then either credits the user or marks the listed lead
	// charges paid. applied is false when the session was already settled.
	RecordSettlement(ctx context.Context, session *domain.ProcessedSession, invoiceIDs []int32, paymentMethod string) (applied bool, newBalance int32, err error)
	PurgeProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type InsightRepository interface {
	Create(ctx context.Context, insight *domain.Insight) error
	GetByID(ctx context.Context, id int32) (*domain.Insight, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Insight, int32, error)
	SetVideo(ctx context.Context, insightID int32, videoURL, videoKey string) error
}
