package postgres

import (
	"context"
	"database/sql"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (deal_id, booking_id, reviewer_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, rv.DealID, rv.BookingID, rv.ReviewerID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedOn)
}

func (r *reviewRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Review, error) {
	rv := &domain.Review{}
	query := `SELECT id, deal_id, booking_id, reviewer_id, rating, COALESCE(comment, ''), created_on
	          FROM reviews WHERE booking_id = $1`
	err := r.db.QueryRowContext(ctx, query, bookingID).
		Scan(&rv.ID, &rv.DealID, &rv.BookingID, &rv.ReviewerID, &rv.Rating, &rv.Comment, &rv.CreatedOn)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) ListByDeal(ctx context.Context, dealID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, deal_id, booking_id, reviewer_id, rating, COALESCE(comment, ''), created_on
	          FROM reviews WHERE deal_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, dealID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.DealID, &rv.BookingID, &rv.ReviewerID, &rv.Rating, &rv.Comment, &rv.CreatedOn); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reviews WHERE deal_id = $1`, dealID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return reviews, count, nil
}
