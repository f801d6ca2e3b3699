package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecotreat/portal-api/internal/domain"
	"github.com/ecotreat/portal-api/internal/domain/entity"
	"github.com/ecotreat/portal-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, email, password_hash, name, company, industry, phone, role, subscription_status, subscription_end, created_at, updated_at`

// AccountRepo implements the AccountRepository port on PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
}

// NewAccountRepository builds the persistence adapter for accounts.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Create persists a new account.
func (r *AccountRepo) Create(ctx context.Context, acc *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		acc.ID, acc.Email, acc.PasswordHash, acc.Name, acc.Company, acc.Industry, acc.Phone,
		acc.Role, acc.SubscriptionStatus, acc.SubscriptionEnd, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by id; (nil, nil) when absent.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByEmail fetches an account by email; (nil, nil) when absent.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 LIMIT 1`
	return r.scanOne(ctx, query, email)
}

// Update writes the whole account row. Last write wins on concurrent edits.
func (r *AccountRepo) Update(ctx context.Context, acc *entity.Account) error {
	query := `
		UPDATE accounts
		SET email = $2, password_hash = $3, name = $4, company = $5, industry = $6, phone = $7,
		    role = $8, subscription_status = $9, subscription_end = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		acc.ID, acc.Email, acc.PasswordHash, acc.Name, acc.Company, acc.Industry, acc.Phone,
		acc.Role, acc.SubscriptionStatus, acc.SubscriptionEnd, acc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// List returns accounts ordered by creation date, newest first.
func (r *AccountRepo) List(ctx context.Context, limit, offset int) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	return scanAccounts(rows)
}

// CountByStatus returns the number of accounts per subscription status.
func (r *AccountRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT subscription_status, COUNT(*) FROM accounts GROUP BY subscription_status`)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListExpiringBetween returns active accounts whose subscription end falls
// within [from, to].
func (r *AccountRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE subscription_status = $1 AND subscription_end BETWEEN $2 AND $3
		ORDER BY subscription_end`
	rows, err := r.pool.Query(ctx, query, entity.StatusActive, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expiring accounts: %w", err)
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *AccountRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var a entity.Account
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Company, &a.Industry, &a.Phone,
		&a.Role, &a.SubscriptionStatus, &a.SubscriptionEnd, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

func scanAccounts(rows pgx.Rows) ([]*entity.Account, error) {
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(
			&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Company, &a.Industry, &a.Phone,
			&a.Role, &a.SubscriptionStatus, &a.SubscriptionEnd, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
