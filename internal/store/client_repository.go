/**
 * @description
 * PostgreSQL implementation of the client repository. Client listings support
 * a free-text search over last name, first name, and phone number, with
 * limit/offset pagination.
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

const defaultClientPageSize = 10

// PostgresClientRepository is the PostgreSQL implementation of ClientRepository.
type PostgresClientRepository struct {
	db *pgxpool.Pool
}

// NewPostgresClientRepository creates a new instance of PostgresClientRepository.
func NewPostgresClientRepository(db *pgxpool.Pool) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

// CreateClient inserts a new client record and returns its UUID.
func (r *PostgresClientRepository) CreateClient(ctx context.Context, client *domain.Client) (string, error) {
	query := `
        INSERT INTO clients (id, user_id, last_name, first_name, gender, phone, national_id, address, status, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	var id string
	err := r.db.QueryRow(ctx, query,
		client.ID,
		client.UserID,
		client.LastName,
		client.FirstName,
		client.Gender,
		client.Phone,
		client.NationalID,
		client.Address,
		client.Status,
		client.Metadata,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateClient
		}
		return "", err
	}
	return id, nil
}

// FindClientByID looks up a client by its UUID.
func (r *PostgresClientRepository) FindClientByID(ctx context.Context, id string) (*domain.Client, error) {
	query := clientSelect + ` WHERE id = $1`
	row := r.db.QueryRow(ctx, query, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListClients returns clients matching the given options, newest first.
func (r *PostgresClientRepository) ListClients(ctx context.Context, opts ClientListOptions) ([]domain.Client, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultClientPageSize
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	query := clientSelect
	args := []any{}
	if opts.Search != "" {
		query += ` WHERE last_name ILIKE $1 OR first_name ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+opts.Search+"%")
	}
	query += ` ORDER BY created_at DESC`
	args = append(args, limit, offset)
	if opts.Search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// UpdateClient replaces the mutable fields of a client record.
func (r *PostgresClientRepository) UpdateClient(ctx context.Context, client *domain.Client) error {
	query := `
        UPDATE clients
        SET last_name = $2, first_name = $3, gender = $4, phone = $5,
            national_id = $6, address = $7, status = $8, metadata = $9,
            updated_at = NOW()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		client.ID,
		client.LastName,
		client.FirstName,
		client.Gender,
		client.Phone,
		client.NationalID,
		client.Address,
		client.Status,
		client.Metadata,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateClient
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

// DeleteClient hard-deletes a client record.
func (r *PostgresClientRepository) DeleteClient(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

const clientSelect = `
        SELECT id, user_id, last_name, first_name, gender, phone, national_id,
               COALESCE(address, ''), status, metadata, created_at, updated_at
        FROM clients`

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.LastName,
		&c.FirstName,
		&c.Gender,
		&c.Phone,
		&c.NationalID,
		&c.Address,
		&c.Status,
		&c.Metadata,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
