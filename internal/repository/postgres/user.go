package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"porchlight-backend/internal/domain"
	"porchlight-backend/internal/repository"
)

// ErrInsufficientCredits is returned when a debit would drive the
// balance below zero. The balance is left unchanged.
var ErrInsufficientCredits = errors.New("insufficient credits")

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, phone_number, password_hash, name, avatar_url, role, credits, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, 0, NOW(), NOW()) RETURNING id, created_on, updated_on`
	if u.Role == "" {
		u.Role = domain.UserRoleMember
	}
	return r.db.QueryRowContext(ctx, query, u.Email, u.PhoneNumber, u.PasswordHash, u.Name, u.AvatarURL, u.Role).
		Scan(&u.ID, &u.CreatedOn, &u.UpdatedOn)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, phone_number, password_hash, name, COALESCE(avatar_url, ''), role, credits, created_on, updated_on
	          FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.Role, &u.Credits, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, phone_number, password_hash, name, COALESCE(avatar_url, ''), role, credits, created_on, updated_on
	          FROM users WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.Role, &u.Credits, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, phone_number=$2, name=$3, avatar_url=$4, updated_on=NOW() WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.PhoneNumber, u.Name, u.AvatarURL, u.ID)
	return err
}

func (r *userRepository) GetCredits(ctx context.Context, userID int32) (int32, error) {
	var credits int32
	query := `SELECT credits FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&credits)
	return credits, err
}

// AddCredits atomically increments the balance and appends an audit row.
func (r *userRepository) AddCredits(ctx context.Context, userID, amount int32, txnType domain.CreditTransactionType, description, sessionID string) (int32, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var newBalance int32
	err = tx.QueryRowContext(ctx,
		`UPDATE users SET credits = credits + $1, updated_on = NOW() WHERE id = $2 RETURNING credits`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO credit_transactions (user_id, amount, balance_after, type, description, stripe_session_id, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		userID, amount, newBalance, txnType, description, sessionID,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// SpendCredits debits the balance with a conditional update so the
// balance can never go negative, even under concurrent spends.
func (r *userRepository) SpendCredits(ctx context.Context, userID, amount int32, description string) (int32, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var newBalance int32
	err = tx.QueryRowContext(ctx,
		`UPDATE users SET credits = credits - $1, updated_on = NOW() WHERE id = $2 AND credits >= $1 RETURNING credits`,
		amount, userID,
	).Scan(&newBalance)
	if err == sql.ErrNoRows {
		// Either the user does not exist or the balance is too low.
		return 0, ErrInsufficientCredits
	}
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO credit_transactions (user_id, amount, balance_after, type, description, stripe_session_id, created_on)
		 VALUES ($1, $2, $3, $4, $5, '', NOW())`,
		userID, -amount, newBalance, domain.CreditTransactionUsage, description,
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *userRepository) ListCreditTransactions(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, amount, balance_after, type, COALESCE(description, ''), COALESCE(stripe_session_id, ''), created_on
	          FROM credit_transactions WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.CreditTransaction
	for rows.Next() {
		var t domain.CreditTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.BalanceAfter, &t.Type, &t.Description, &t.StripeSessionID, &t.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM credit_transactions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}
