/**
 * @description
 * This file defines the repository interfaces that specify the contract for
 * all data access operations the service needs. Defining interfaces here
 * decouples the business logic from the PostgreSQL implementation and lets
 * tests substitute in-memory stubs.
 *
 * @notes
 * - Sentinel errors are declared here so callers can match them with
 *   errors.Is regardless of the backing implementation.
 */
package store

import (
	"context"
	"errors"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrDuplicateEmail         = errors.New("email already registered")
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrDuplicateClient        = errors.New("client with this phone or national id already exists")
)

// UserRepository defines storage operations for authentication identities.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (string, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}

// ClientListOptions controls search and pagination for client listings.
type ClientListOptions struct {
	Search string
	Limit  int
	Offset int
}

// ClientRepository defines storage operations for client records.
type ClientRepository interface {
	CreateClient(ctx context.Context, client *domain.Client) (string, error)
	FindClientByID(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context, opts ClientListOptions) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client *domain.Client) error
	DeleteClient(ctx context.Context, id string) error
}

// AccountRepository defines storage operations for bank accounts.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	FindAccountByID(ctx context.Context, id string) (*domain.Account, error)
	FindAccountByClientID(ctx context.Context, clientID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	AccountNumberExists(ctx context.Context, number string) (bool, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error
	// DeleteAccount hard-deletes the account and its transactions in one
	// database transaction.
	DeleteAccount(ctx context.Context, id string) error
}

// TransactionRepository defines storage operations for ledger entries.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	FindTransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	// FindTransactionsByAccountID returns the complete, unordered transaction
	// set for an account. The ledger recomputes balances from this set on
	// every read.
	FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}
