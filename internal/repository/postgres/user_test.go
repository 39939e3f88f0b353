package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"porchlight-backend/internal/domain"
)

func TestUserRepository_SpendCredits(t *testing.T) {
	ctx := context.Background()

	t.Run("DebitsAndAudits", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE users SET credits = credits - \$1, updated_on = NOW\(\) WHERE id = \$2 AND credits >= \$1 RETURNING credits`).
			WithArgs(int32(1), int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(4))
		mock.ExpectExec(`INSERT INTO credit_transactions`).
			WithArgs(int32(7), int32(-1), int32(4), string(domain.CreditTransactionUsage), "Listing video").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		balance, err := repo.SpendCredits(ctx, 7, 1, "Listing video")
		assert.NoError(t, err)
		assert.Equal(t, int32(4), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientBalanceRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE users SET credits = credits - \$1`).
			WithArgs(int32(5), int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"credits"}))
		mock.ExpectRollback()

		_, err = repo.SpendCredits(ctx, 7, 5, "Listing video")
		assert.ErrorIs(t, err, ErrInsufficientCredits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		_, err = repo.SpendCredits(ctx, 7, 0, "noop")
		assert.Error(t, err)
	})
}

func TestUserRepository_AddCredits(t *testing.T) {
	ctx := context.Background()

	t.Run("CreditsAndAudits", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE users SET credits = credits \+ \$1, updated_on = NOW\(\) WHERE id = \$2 RETURNING credits`).
			WithArgs(int32(5), int32(7)).
			WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(8))
		mock.ExpectExec(`INSERT INTO credit_transactions`).
			WithArgs(int32(7), int32(5), int32(8), string(domain.CreditTransactionPurchase), "Credit purchase", "cs_123").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		balance, err := repo.AddCredits(ctx, 7, 5, domain.CreditTransactionPurchase, "Credit purchase", "cs_123")
		assert.NoError(t, err)
		assert.Equal(t, int32(8), balance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewUserRepository(db)

		_, err = repo.AddCredits(ctx, 7, -5, domain.CreditTransactionPurchase, "bad", "")
		assert.Error(t, err)
	})
}
