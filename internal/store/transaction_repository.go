package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
)

// PostgresTransactionRepository is the PostgreSQL implementation of
// TransactionRepository.
type PostgresTransactionRepository struct {
	db *pgxpool.Pool
}

// NewPostgresTransactionRepository creates a new instance of
// PostgresTransactionRepository.
func NewPostgresTransactionRepository(db *pgxpool.Pool) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

// CreateTransaction inserts a new ledger entry. The owning account row is
// never touched: balances are derived, not maintained.
func (r *PostgresTransactionRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	query := `
        INSERT INTO transactions (id, account_id, type, amount, currency, description, transaction_date, status, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, query,
		tx.ID,
		tx.AccountID,
		tx.Type,
		tx.Amount,
		tx.Currency,
		tx.Description,
		tx.TransactionDate,
		tx.Status,
		tx.Metadata,
	)
	if err != nil {
		// 23503: the referenced account disappeared between the existence
		// check and the insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// FindTransactionByID looks up a single transaction by its UUID.
func (r *PostgresTransactionRepository) FindTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, transactionSelect+` WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

// FindTransactionsByAccountID returns the complete transaction set for an
// account. No ordering is guaranteed; the ledger's balance computation is
// order-independent.
func (r *PostgresTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, transactionSelect+` WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

const transactionSelect = `
        SELECT id, account_id, type, amount, currency, COALESCE(description, ''),
               transaction_date, status, metadata, created_at, updated_at
        FROM transactions`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Type,
		&t.Amount,
		&t.Currency,
		&t.Description,
		&t.TransactionDate,
		&t.Status,
		&t.Metadata,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
