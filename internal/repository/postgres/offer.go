package postgres

import (
	"context"
	"database/sql"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) repository.OfferRepository {
	return &offerRepository{db: db}
}

const offerColumns = `id, deal_id, buyer_id, owner_id, offer_price_cents, status, COALESCE(message, ''),
	with_financing, down_payment_cents, interest_rate_percent, term_years, created_on, updated_on`

func (r *offerRepository) Create(ctx context.Context, o *domain.Offer) error {
	if o.Status == "" {
		o.Status = domain.OfferStatusPending
	}
	query := `INSERT INTO offers (deal_id, buyer_id, owner_id, offer_price_cents, status, message,
	            with_financing, down_payment_cents, interest_rate_percent, term_years, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query,
		o.DealID, o.BuyerID, o.OwnerID, o.OfferPriceCents, o.Status, o.Message,
		o.WithFinancing, o.DownPaymentCents, o.InterestRatePercent, o.TermYears,
	).Scan(&o.ID, &o.CreatedOn, &o.UpdatedOn)
}

func (r *offerRepository) GetByID(ctx context.Context, id int32) (*domain.Offer, error) {
	o := &domain.Offer{}
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.DealID, &o.BuyerID, &o.OwnerID, &o.OfferPriceCents, &o.Status, &o.Message,
		&o.WithFinancing, &o.DownPaymentCents, &o.InterestRatePercent, &o.TermYears, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *offerRepository) Update(ctx context.Context, o *domain.Offer) error {
	query := `UPDATE offers SET status=$1, message=$2, updated_on=NOW() WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, o.Status, o.Message, o.ID)
	return err
}

func (r *offerRepository) ListByDeal(ctx context.Context, dealID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	return r.list(ctx, `deal_id`, dealID, page, pageSize)
}

func (r *offerRepository) ListByBuyer(ctx context.Context, buyerID int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	return r.list(ctx, `buyer_id`, buyerID, page, pageSize)
}

func (r *offerRepository) list(ctx context.Context, column string, id int32, page, pageSize int32) ([]domain.Offer, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + offerColumns + ` FROM offers WHERE ` + column + ` = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, id, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var o domain.Offer
		if err := rows.Scan(&o.ID, &o.DealID, &o.BuyerID, &o.OwnerID, &o.OfferPriceCents, &o.Status, &o.Message,
			&o.WithFinancing, &o.DownPaymentCents, &o.InterestRatePercent, &o.TermYears, &o.CreatedOn, &o.UpdatedOn); err != nil {
			return nil, 0, err
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM offers WHERE `+column+` = $1`, id).Scan(&count); err != nil {
		return nil, 0, err
	}
	return offers, count, nil
}
