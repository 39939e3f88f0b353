package postgres

import (
	"database/sql"

	"porchlight-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.DealRepository
	repository.OfferRepository
	repository.BookingRepository
	repository.ReviewRepository
	repository.LeadChargeRepository
	repository.SettlementRepository
	repository.NotificationRepository
	repository.InsightRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		DealRepository:         NewDealRepository(db),
		OfferRepository:        NewOfferRepository(db),
		BookingRepository:      NewBookingRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		LeadChargeRepository:   NewLeadChargeRepository(db),
		SettlementRepository:   NewSettlementRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		InsightRepository:      NewInsightRepository(db),
	}
}
