package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type leadChargeRepository struct {
	db *sql.DB
}

func NewLeadChargeRepository(db *sql.DB) repository.LeadChargeRepository {
	return &leadChargeRepository{db: db}
}

const leadChargeColumns = `id, provider_id, deal_id, lead_amount_cents, status, payment_date,
	COALESCE(payment_method, ''), COALESCE(payment_session, ''), COALESCE(description, ''), created_on`

func (r *leadChargeRepository) Create(ctx context.Context, c *domain.LeadCharge) error {
	if c.Status == "" {
		c.Status = domain.LeadChargeStatusPending
	}
	query := `INSERT INTO lead_charges (provider_id, deal_id, lead_amount_cents, status, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, c.ProviderID, c.DealID, c.LeadAmountCents, c.Status, c.Description).
		Scan(&c.ID, &c.CreatedOn)
}

func (r *leadChargeRepository) scan(row interface{ Scan(...any) error }) (*domain.LeadCharge, error) {
	c := &domain.LeadCharge{}
	err := row.Scan(&c.ID, &c.ProviderID, &c.DealID, &c.LeadAmountCents, &c.Status, &c.PaymentDate,
		&c.PaymentMethod, &c.PaymentSession, &c.Description, &c.CreatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *leadChargeRepository) GetByID(ctx context.Context, id int32) (*domain.LeadCharge, error) {
	query := `SELECT ` + leadChargeColumns + ` FROM lead_charges WHERE id = $1`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

func (r *leadChargeRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.LeadCharge, error) {
	query := `SELECT ` + leadChargeColumns + ` FROM lead_charges WHERE id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []domain.LeadCharge
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, *c)
	}
	return charges, rows.Err()
}

func (r *leadChargeRepository) ListByProvider(ctx context.Context, providerID int32, status domain.LeadChargeStatus, page, pageSize int32) ([]domain.LeadCharge, int32, error) {
	offset := (page - 1) * pageSize
	where := `WHERE provider_id = $1`
	args := []any{providerID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, status)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM lead_charges `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + leadChargeColumns + ` FROM lead_charges ` + where + ` ORDER BY created_on DESC`
	if status != "" {
		query += ` LIMIT $3 OFFSET $4`
	} else {
		query += ` LIMIT $2 OFFSET $3`
	}
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var charges []domain.LeadCharge
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		charges = append(charges, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return charges, count, nil
}

func (r *leadChargeRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.LeadCharge, error) {
	query := `SELECT ` + leadChargeColumns + ` FROM lead_charges WHERE status = 'PENDING' AND created_on < $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []domain.LeadCharge
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, *c)
	}
	return charges, rows.Err()
}

func (r *leadChargeRepository) MarkDisputedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE lead_charges SET status = 'DISPUTED' WHERE status = 'PENDING' AND created_on < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
