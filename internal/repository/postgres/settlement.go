package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) GetProcessedSession(ctx context.Context, sessionID string) (*domain.ProcessedSession, error) {
	s := &domain.ProcessedSession{}
	query := `SELECT session_id, user_id, payment_type, credits_added, amount_cents, processed_on
	          FROM processed_sessions WHERE session_id = $1`
	err := r.db.QueryRowContext(ctx, query, sessionID).
		Scan(&s.SessionID, &s.UserID, &s.PaymentType, &s.CreditsAdded, &s.AmountCents, &s.ProcessedOn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RecordSettlement claims the session id and applies its effect inside a
// single transaction. Claiming and applying share the transaction, so a
// concurrent verification of the same session either wins the insert and
// settles, or observes the conflict and leaves everything untouched.
func (r *settlementRepository) RecordSettlement(ctx context.Context, s *domain.ProcessedSession, invoiceIDs []int32, paymentMethod string) (bool, int32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO processed_sessions (session_id, user_id, payment_type, credits_added, amount_cents, processed_on)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (session_id) DO NOTHING`,
		s.SessionID, s.UserID, s.PaymentType, s.CreditsAdded, s.AmountCents,
	)
	if err != nil {
		return false, 0, err
	}
	claimed, err := result.RowsAffected()
	if err != nil {
		return false, 0, err
	}
	if claimed == 0 {
		// Already settled by an earlier verification.
		var balance int32
		if err := tx.QueryRowContext(ctx, `SELECT credits FROM users WHERE id = $1`, s.UserID).Scan(&balance); err != nil {
			return false, 0, err
		}
		return false, balance, tx.Commit()
	}

	// Claim rows are retention-purged; the settlement records themselves
	// are the durable guard when an old session id is replayed.
	var settled bool
	switch s.PaymentType {
	case domain.PaymentTypeCredits:
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM credit_transactions WHERE stripe_session_id = $1)`,
			s.SessionID).Scan(&settled)
	case domain.PaymentTypeInvoice:
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM lead_charges WHERE payment_session = $1)`,
			s.SessionID).Scan(&settled)
	}
	if err != nil {
		return false, 0, err
	}
	if settled {
		var balance int32
		if err := tx.QueryRowContext(ctx, `SELECT credits FROM users WHERE id = $1`, s.UserID).Scan(&balance); err != nil {
			return false, 0, err
		}
		return false, balance, tx.Commit()
	}

	var newBalance int32
	switch s.PaymentType {
	case domain.PaymentTypeCredits:
		err = tx.QueryRowContext(ctx,
			`UPDATE users SET credits = credits + $1, updated_on = NOW() WHERE id = $2 RETURNING credits`,
			s.CreditsAdded, s.UserID,
		).Scan(&newBalance)
		if err != nil {
			return false, 0, err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO credit_transactions (user_id, amount, balance_after, type, description, stripe_session_id, created_on)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
			s.UserID, s.CreditsAdded, newBalance, domain.CreditTransactionPurchase, "Credit purchase", s.SessionID,
		)
		if err != nil {
			return false, 0, err
		}

	case domain.PaymentTypeInvoice:
		// Invoice payments never touch the credit balance.
		_, err = tx.ExecContext(ctx,
			`UPDATE lead_charges SET status = 'PAID', payment_date = NOW(), payment_method = $2, payment_session = $3
			 WHERE id = ANY($1) AND status = 'PENDING'`,
			pq.Array(invoiceIDs), paymentMethod, s.SessionID,
		)
		if err != nil {
			return false, 0, err
		}
		if err := tx.QueryRowContext(ctx, `SELECT credits FROM users WHERE id = $1`, s.UserID).Scan(&newBalance); err != nil {
			return false, 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return true, newBalance, nil
}

func (r *settlementRepository) PurgeProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM processed_sessions WHERE processed_on < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
