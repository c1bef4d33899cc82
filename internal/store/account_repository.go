/**
 * @description
 * PostgreSQL implementation of the account repository. Accounts never store a
 * balance column: balances are derived by the ledger from the transactions
 * table at read time.
 *
 * @notes
 * - DeleteAccount removes the account and its transactions atomically inside
 *   one database transaction, so no orphaned ledger entries survive a hard
 *   delete.
 */
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
)

// PostgresAccountRepository is the PostgreSQL implementation of AccountRepository.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new instance of PostgresAccountRepository.
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// CreateAccount inserts a new account row.
func (r *PostgresAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
        INSERT INTO accounts (id, client_id, account_number, holder, account_type, currency, created_date, status, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.ClientID,
		account.AccountNumber,
		account.Holder,
		account.Type,
		account.Currency,
		account.CreatedDate,
		account.Status,
		account.Metadata,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAccountNumber
		}
		return err
	}
	return nil
}

// FindAccountByID looks up an account by its UUID.
func (r *PostgresAccountRepository) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, accountSelect+` WHERE id = $1`, id)
	return scanAccountRow(row)
}

// FindAccountByClientID looks up the account owned by a client. There is at
// most one: the service layer enforces one account per client at creation
// time.
func (r *PostgresAccountRepository) FindAccountByClientID(ctx context.Context, clientID string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, accountSelect+` WHERE client_id = $1 LIMIT 1`, clientID)
	return scanAccountRow(row)
}

// ListAccounts returns every account, newest first.
func (r *PostgresAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, accountSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// AccountNumberExists reports whether an account number is already taken.
func (r *PostgresAccountRepository) AccountNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, number,
	).Scan(&exists)
	return exists, err
}

// UpdateAccount replaces the mutable fields of an account row.
func (r *PostgresAccountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	query := `
        UPDATE accounts
        SET holder = $2, account_type = $3, currency = $4, status = $5,
            metadata = $6, updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		account.ID,
		account.Holder,
		account.Type,
		account.Currency,
		account.Status,
		account.Metadata,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// DeleteAccount removes an account and its transactions atomically.
func (r *PostgresAccountRepository) DeleteAccount(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE account_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return tx.Commit(ctx)
}

const accountSelect = `
        SELECT id, client_id, account_number, holder, account_type, currency,
               created_date, status, metadata, created_at, updated_at
        FROM accounts`

func scanAccountRow(row pgx.Row) (*domain.Account, error) {
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.AccountNumber,
		&a.Holder,
		&a.Type,
		&a.Currency,
		&a.CreatedDate,
		&a.Status,
		&a.Metadata,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
