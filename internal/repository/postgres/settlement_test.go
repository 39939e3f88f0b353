package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"porchlight-backend/internal/domain"
)

func TestSettlementRepository_RecordSettlement(t *testing.T) {
	ctx := context.Background()
	session := &domain.ProcessedSession{
		SessionID:    "cs_123",
		UserID:       7,
		PaymentType:  domain.PaymentTypeCredits,
		CreditsAdded: 5,
		AmountCents:  500,
	}

	t.Run("FirstClaimAppliesCredits", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewSettlementRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO processed_sessions`).
			WithArgs("cs_123", int32(7), string(domain.PaymentTypeCredits), int32(5), int64(500)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM credit_transactions WHERE stripe_session_id = \$1\)`).
			WithArgs("cs_123").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`UPDATE users SET credits = credits \+ \$1`).
			WithArgs(int32(5), int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(5))
		mock.ExpectExec(`INSERT INTO credit_transactions`).
			WithArgs(int32(7), int32(5), int32(5), string(domain.CreditTransactionPurchase), "Credit purchase", "cs_123").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		applied, balance, err := repo.RecordSettlement(ctx, session, nil, "stripe_checkout")
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, int32(5), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SecondClaimIsNoop", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewSettlementRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO processed_sessions`).
			WithArgs("cs_123", int32(7), string(domain.PaymentTypeCredits), int32(5), int64(500)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT credits FROM users WHERE id = \$1`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(5))
		mock.ExpectCommit()

		applied, balance, err := repo.RecordSettlement(ctx, session, nil, "stripe_checkout")
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, int32(5), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReplayAfterClaimPurgeIsNoop", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewSettlementRepository(db)

		// The retention job has deleted the claim row, so the insert
		// succeeds again; the audit record still blocks a second credit.
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO processed_sessions`).
			WithArgs("cs_123", int32(7), string(domain.PaymentTypeCredits), int32(5), int64(500)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM credit_transactions WHERE stripe_session_id = \$1\)`).
			WithArgs("cs_123").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectQuery(`SELECT credits FROM users WHERE id = \$1`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(5))
		mock.ExpectCommit()

		applied, balance, err := repo.RecordSettlement(ctx, session, nil, "stripe_checkout")
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, int32(5), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InvoicePaymentLeavesCreditsAlone", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewSettlementRepository(db)

		invoiceSession := &domain.ProcessedSession{
			SessionID:   "cs_inv",
			UserID:      7,
			PaymentType: domain.PaymentTypeInvoice,
			AmountCents: 750,
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO processed_sessions`).
			WithArgs("cs_inv", int32(7), string(domain.PaymentTypeInvoice), int32(0), int64(750)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM lead_charges WHERE payment_session = \$1\)`).
			WithArgs("cs_inv").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`UPDATE lead_charges SET status = 'PAID'`).
			WithArgs(pq.Array([]int32{3, 4}), "stripe_checkout", "cs_inv").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery(`SELECT credits FROM users WHERE id = \$1`).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(2))
		mock.ExpectCommit()

		applied, balance, err := repo.RecordSettlement(ctx, invoiceSession, []int32{3, 4}, "stripe_checkout")
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, int32(2), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
