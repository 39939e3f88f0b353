package service

import (
	"context"
	"database/sql"
	"errors"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo}
}

func (s *reviewService) CreateReview(ctx context.Context, reviewerID, bookingID int32, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, NewValidationError("rating must be between 1 and 5")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != reviewerID {
		return nil, ErrUnauthorized
	}
	if booking.Status != domain.BookingStatusCompleted {
		return nil, NewValidationError("only completed stays can be reviewed")
	}

	// One review per booking.
	if _, err := s.reviewRepo.GetByBookingID(ctx, bookingID); err == nil {
		return nil, NewValidationError("booking %d has already been reviewed", bookingID)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	review := &domain.Review{
		DealID:     booking.DealID,
		BookingID:  bookingID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListDealReviews(ctx context.Context, dealID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	return s.reviewRepo.ListByDeal(ctx, dealID, page, pageSize)
}
