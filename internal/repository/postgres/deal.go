package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type dealRepository struct {
	db *sql.DB
}

func NewDealRepository(db *sql.DB) repository.DealRepository {
	return &dealRepository{db: db}
}

const dealColumns = `id, owner_id, title, description, deal_type, status, price_cents,
	bedrooms, bathrooms, square_footage, COALESCE(address, ''), COALESCE(city, ''), COALESCE(state, ''), latitude, longitude,
	owner_financing_available, min_down_payment_percent, min_down_payment_cents, interest_rate_percent, term_years,
	property_tax_annual_cents, insurance_annual_cents, hoa_monthly_cents, other_monthly_expenses,
	photos, COALESCE(video_url, ''), COALESCE(video_key, ''), created_on, updated_on`

func (r *dealRepository) Create(ctx context.Context, d *domain.Deal) error {
	expenses, err := json.Marshal(d.OtherMonthlyExpenses)
	if err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}
	photos, err := json.Marshal(d.Photos)
	if err != nil {
		return fmt.Errorf("failed to encode photos: %w", err)
	}

	if d.Status == "" {
		d.Status = domain.DealStatusActive
	}
	query := `INSERT INTO deals (owner_id, title, description, deal_type, status, price_cents,
	            bedrooms, bathrooms, square_footage, address, city, state, latitude, longitude,
	            owner_financing_available, min_down_payment_percent, min_down_payment_cents, interest_rate_percent, term_years,
	            property_tax_annual_cents, insurance_annual_cents, hoa_monthly_cents, other_monthly_expenses,
	            photos, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, NOW(), NOW())
	          RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query,
		d.OwnerID, d.Title, d.Description, d.DealType, d.Status, d.PriceCents,
		d.Bedrooms, d.Bathrooms, d.SquareFootage, d.Address, d.City, d.State, d.Latitude, d.Longitude,
		d.OwnerFinancingAvailable, d.MinDownPaymentPercent, d.MinDownPaymentCents, d.InterestRatePercent, d.TermYears,
		d.PropertyTaxAnnualCents, d.InsuranceAnnualCents, d.HOAMonthlyCents, expenses, photos,
	).Scan(&d.ID, &d.CreatedOn, &d.UpdatedOn)
}

func (r *dealRepository) scanDeal(row interface{ Scan(...any) error }) (*domain.Deal, error) {
	d := &domain.Deal{}
	var expenses, photos []byte
	err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &d.Description, &d.DealType, &d.Status, &d.PriceCents,
		&d.Bedrooms, &d.Bathrooms, &d.SquareFootage, &d.Address, &d.City, &d.State, &d.Latitude, &d.Longitude,
		&d.OwnerFinancingAvailable, &d.MinDownPaymentPercent, &d.MinDownPaymentCents, &d.InterestRatePercent, &d.TermYears,
		&d.PropertyTaxAnnualCents, &d.InsuranceAnnualCents, &d.HOAMonthlyCents, &expenses,
		&photos, &d.VideoURL, &d.VideoKey, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(expenses) > 0 {
		if err := json.Unmarshal(expenses, &d.OtherMonthlyExpenses); err != nil {
			return nil, fmt.Errorf("failed to decode expenses: %w", err)
		}
	}
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &d.Photos); err != nil {
			return nil, fmt.Errorf("failed to decode photos: %w", err)
		}
	}
	return d, nil
}

func (r *dealRepository) GetByID(ctx context.Context, id int32) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	return r.scanDeal(r.db.QueryRowContext(ctx, query, id))
}

func (r *dealRepository) Update(ctx context.Context, d *domain.Deal) error {
	expenses, err := json.Marshal(d.OtherMonthlyExpenses)
	if err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}
	photos, err := json.Marshal(d.Photos)
	if err != nil {
		return fmt.Errorf("failed to encode photos: %w", err)
	}

	query := `UPDATE deals SET title=$1, description=$2, deal_type=$3, status=$4, price_cents=$5,
	            bedrooms=$6, bathrooms=$7, square_footage=$8, address=$9, city=$10, state=$11, latitude=$12, longitude=$13,
	            owner_financing_available=$14, min_down_payment_percent=$15, min_down_payment_cents=$16, interest_rate_percent=$17, term_years=$18,
	            property_tax_annual_cents=$19, insurance_annual_cents=$20, hoa_monthly_cents=$21, other_monthly_expenses=$22,
	            photos=$23, updated_on=NOW()
	          WHERE id=$24`
	_, err = r.db.ExecContext(ctx, query,
		d.Title, d.Description, d.DealType, d.Status, d.PriceCents,
		d.Bedrooms, d.Bathrooms, d.SquareFootage, d.Address, d.City, d.State, d.Latitude, d.Longitude,
		d.OwnerFinancingAvailable, d.MinDownPaymentPercent, d.MinDownPaymentCents, d.InterestRatePercent, d.TermYears,
		d.PropertyTaxAnnualCents, d.InsuranceAnnualCents, d.HOAMonthlyCents, expenses, photos, d.ID)
	return err
}

func (r *dealRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM deals WHERE id = $1`, id)
	return err
}

func (r *dealRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Deal, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + dealColumns + ` FROM deals WHERE owner_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		d, err := r.scanDeal(rows)
		if err != nil {
			return nil, 0, err
		}
		deals = append(deals, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM deals WHERE owner_id = $1`, ownerID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return deals, count, nil
}

func (r *dealRepository) Search(ctx context.Context, filter repository.DealFilter, page, pageSize int32) ([]domain.Deal, int32, error) {
	where := `WHERE status = 'ACTIVE'`
	args := []any{}
	idx := 1

	if filter.Query != "" {
		where += fmt.Sprintf(" AND (title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", idx, idx)
		args = append(args, filter.Query)
		idx++
	}
	if filter.DealType != "" {
		where += fmt.Sprintf(" AND deal_type = $%d", idx)
		args = append(args, filter.DealType)
		idx++
	}
	if filter.City != "" {
		where += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", idx)
		args = append(args, filter.City)
		idx++
	}
	if filter.MinPriceCents > 0 {
		where += fmt.Sprintf(" AND price_cents >= $%d", idx)
		args = append(args, filter.MinPriceCents)
		idx++
	}
	if filter.MaxPriceCents > 0 {
		where += fmt.Sprintf(" AND price_cents <= $%d", idx)
		args = append(args, filter.MaxPriceCents)
		idx++
	}
	if filter.MinBedrooms > 0 {
		where += fmt.Sprintf(" AND bedrooms >= $%d", idx)
		args = append(args, filter.MinBedrooms)
		idx++
	}
	if filter.FinancingOnly {
		where += " AND owner_financing_available"
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM deals `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + dealColumns + ` FROM deals ` + where +
		fmt.Sprintf(` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		d, err := r.scanDeal(rows)
		if err != nil {
			return nil, 0, err
		}
		deals = append(deals, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return deals, count, nil
}

func (r *dealRepository) SetVideo(ctx context.Context, dealID int32, videoURL, videoKey string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE deals SET video_url = $1, video_key = $2, updated_on = NOW() WHERE id = $3`,
		videoURL, videoKey, dealID)
	return err
}
