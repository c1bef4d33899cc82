/**
 * @description
 * Business logic for posting ledger entries. Creating a transaction never
 * mutates the owning account row and never caches a balance anywhere; the
 * ledger recomputes balances from the full set on demand.
 */
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
)

// TransactionService provides methods for posting and listing transactions.
type TransactionService struct {
	accounts     store.AccountRepository
	transactions store.TransactionRepository
	publisher    EventPublisher
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(accounts store.AccountRepository, transactions store.TransactionRepository, publisher EventPublisher) *TransactionService {
	return &TransactionService{
		accounts:     accounts,
		transactions: transactions,
		publisher:    publisher,
	}
}

// CreateTransactionInput defines the input for posting a transaction. Status
// defaults to pending and the transaction date to now when absent.
type CreateTransactionInput struct {
	Type            domain.TransactionType
	Amount          int64
	Currency        string
	Description     string
	Status          domain.TransactionStatus
	TransactionDate *time.Time
}

// CreateTransaction posts a new ledger entry against an existing account.
// All validation happens before any persistence call.
func (s *TransactionService) CreateTransaction(ctx context.Context, accountID string, input CreateTransactionInput) (*domain.Transaction, error) {
	if err := validateCreateTransaction(input); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.TransactionPending
	}
	date := time.Now().UTC()
	if input.TransactionDate != nil {
		date = *input.TransactionDate
	}
	currency := input.Currency
	if currency == "" {
		currency = account.Currency
	}

	now := time.Now().UTC()
	tx := &domain.Transaction{
		ID:              uuid.New().String(),
		AccountID:       account.ID,
		Type:            input.Type,
		Amount:          input.Amount,
		Currency:        currency,
		Description:     input.Description,
		TransactionDate: date,
		Status:          status,
		Metadata:        domain.Metadata{}.WithVersion(1),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.transactions.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.publishCreated(ctx, tx)
	return tx, nil
}

// ListTransactions returns the complete transaction set for an account.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if _, err := s.accounts.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.transactions.FindTransactionsByAccountID(ctx, accountID)
}

func (s *TransactionService) publishCreated(ctx context.Context, tx *domain.Transaction) {
	if s.publisher == nil {
		return
	}
	event := domain.TransactionCreatedEvent{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Type:          tx.Type,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		CreatedAt:     tx.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, eventsExchange, "transaction.created", event); err != nil {
		logPublishFailure("transaction.created", err)
	}
}

func validateCreateTransaction(input CreateTransactionInput) error {
	fields := map[string]string{}
	if !domain.ValidTransactionType(input.Type) {
		fields["type"] = fmt.Sprintf("unknown transaction type %q", input.Type)
	}
	if input.Amount < 0 {
		fields["montant"] = "amount must not be negative"
	}
	if input.Status != "" && !domain.ValidTransactionStatus(input.Status) {
		fields["statut"] = fmt.Sprintf("unknown transaction status %q", input.Status)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
