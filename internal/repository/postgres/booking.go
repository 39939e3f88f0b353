package postgres

import (
	"context"
	"database/sql"
	"time"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, deal_id, guest_id, owner_id, start_date, end_date, total_cents, status, COALESCE(note, ''), created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.Status == "" {
		b.Status = domain.BookingStatusPending
	}
	query := `INSERT INTO bookings (deal_id, guest_id, owner_id, start_date, end_date, total_cents, status, note, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()) RETURNING id, created_on, updated_on`
	return r.db.QueryRowContext(ctx, query,
		b.DealID, b.GuestID, b.OwnerID, b.StartDate, b.EndDate, b.TotalCents, b.Status, b.Note,
	).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.DealID, &b.GuestID, &b.OwnerID, &b.StartDate, &b.EndDate, &b.TotalCents, &b.Status, &b.Note, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, note=$2, updated_on=NOW() WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, b.Status, b.Note, b.ID)
	return err
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, `guest_id`, guestID, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, `owner_id`, ownerID, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, column string, id int32, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1 ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, id, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.DealID, &b.GuestID, &b.OwnerID, &b.StartDate, &b.EndDate, &b.TotalCents, &b.Status, &b.Note, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings WHERE `+column+` = $1`, id).Scan(&count); err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

// CountOverlapping counts confirmed or pending bookings whose date range
// intersects [start, end) for a deal.
func (r *bookingRepository) CountOverlapping(ctx context.Context, dealID int32, start, end time.Time) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM bookings
	          WHERE deal_id = $1 AND status IN ('PENDING', 'CONFIRMED')
	            AND start_date < $3 AND end_date > $2`
	err := r.db.QueryRowContext(ctx, query, dealID, start, end).Scan(&count)
	return count, err
}
