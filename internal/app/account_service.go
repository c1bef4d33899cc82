/**
 * @description
 * This file contains the core business logic for account management. It
 * orchestrates the account repository, the ledger, and the event publisher,
 * keeping the API handlers thin and focused on HTTP concerns.
 *
 * @notes
 * - The one-account-per-client rule is enforced here at creation time, not by
 *   a storage constraint.
 * - Account number generation retries a bounded number of times before
 *   signaling a conflict, rather than looping until a unique candidate turns
 *   up.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
)

const (
	// accountNumberPrefix marks synthesized account numbers; the remainder is
	// a fixed-width numeric string.
	accountNumberPrefix = "C"
	accountNumberWidth  = 8

	maxAccountNumberAttempts = 10

	eventsExchange = "banking_events"
)

// EventPublisher defines the interface for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// AccountService provides methods for managing bank accounts.
type AccountService struct {
	accounts  store.AccountRepository
	clients   store.ClientRepository
	ledger    *Ledger
	publisher EventPublisher
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(accounts store.AccountRepository, clients store.ClientRepository, ledger *Ledger, publisher EventPublisher) *AccountService {
	return &AccountService{
		accounts:  accounts,
		clients:   clients,
		ledger:    ledger,
		publisher: publisher,
	}
}

// CreateAccountInput defines the input for creating an account. AccountNumber
// and CreatedDate are optional; when absent, a number is synthesized and the
// date is stamped with the current day.
type CreateAccountInput struct {
	ClientID      string
	Type          domain.AccountType
	Currency      string
	Holder        string
	AccountNumber string
	CreatedDate   *time.Time
}

// CreateAccount creates a bank account for a client. The client must exist
// and must not already own an account.
func (s *AccountService) CreateAccount(ctx context.Context, input CreateAccountInput) (domain.AccountView, error) {
	if err := validateCreateAccount(input); err != nil {
		return domain.AccountView{}, err
	}

	client, err := s.clients.FindClientByID(ctx, input.ClientID)
	if err != nil {
		return domain.AccountView{}, err
	}

	// One account per client, checked at the service layer.
	if _, err := s.accounts.FindAccountByClientID(ctx, client.ID); err == nil {
		return domain.AccountView{}, ErrClientAlreadyHasAccount
	} else if !errors.Is(err, store.ErrAccountNotFound) {
		return domain.AccountView{}, err
	}

	number := input.AccountNumber
	if number == "" {
		number, err = s.generateAccountNumber(ctx)
		if err != nil {
			return domain.AccountView{}, err
		}
	}

	holder := input.Holder
	if holder == "" {
		holder = client.FirstName + " " + client.LastName
	}

	createdDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.CreatedDate != nil {
		createdDate = *input.CreatedDate
	}

	account := &domain.Account{
		ID:            uuid.New().String(),
		ClientID:      client.ID,
		AccountNumber: number,
		Holder:        holder,
		Type:          input.Type,
		Currency:      input.Currency,
		CreatedDate:   createdDate,
		Status:        domain.AccountActive,
		Metadata:      domain.Metadata{}.WithVersion(1),
	}
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return domain.AccountView{}, err
	}

	s.publish(ctx, "account.created", domain.AccountCreatedEvent{
		AccountID:     account.ID,
		ClientID:      account.ClientID,
		AccountNumber: account.AccountNumber,
		Currency:      account.Currency,
		CreatedAt:     account.CreatedAt,
	})

	// A fresh account has no transactions, so its balance is zero by
	// construction.
	return FormatAccountView(account, 0), nil
}

// GetAccount returns the read model for one account.
func (s *AccountService) GetAccount(ctx context.Context, id string) (domain.AccountView, error) {
	account, err := s.accounts.FindAccountByID(ctx, id)
	if err != nil {
		return domain.AccountView{}, err
	}
	return s.ledger.AccountView(ctx, account)
}

// ListAccounts returns the read models for every account.
func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.AccountView, error) {
	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.AccountView, 0, len(accounts))
	for i := range accounts {
		view, err := s.ledger.AccountView(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateAccountInput defines a partial update: nil fields are left untouched.
type UpdateAccountInput struct {
	Holder      *string
	Type        *domain.AccountType
	Currency    *string
	Status      *domain.AccountStatus
	BlockReason *string
}

// UpdateAccount applies a partial field replacement to an account. Status
// transitions are unconstrained: any status may be set from any other. The
// metadata version counter is incremented on every update.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (domain.AccountView, error) {
	if input.Type != nil && !domain.ValidAccountType(*input.Type) {
		return domain.AccountView{}, newValidationError("type", fmt.Sprintf("unknown account type %q", *input.Type))
	}
	if input.Status != nil && !domain.ValidAccountStatus(*input.Status) {
		return domain.AccountView{}, newValidationError("statut", fmt.Sprintf("unknown account status %q", *input.Status))
	}

	account, err := s.accounts.FindAccountByID(ctx, id)
	if err != nil {
		return domain.AccountView{}, err
	}

	if input.Holder != nil {
		account.Holder = *input.Holder
	}
	if input.Type != nil {
		account.Type = *input.Type
	}
	if input.Currency != nil {
		account.Currency = *input.Currency
	}
	if input.Status != nil {
		account.Status = *input.Status
		if *input.Status != domain.AccountBlocked {
			account.Metadata = account.Metadata.WithBlockReason("")
		}
	}
	if input.BlockReason != nil {
		account.Metadata = account.Metadata.WithBlockReason(*input.BlockReason)
	}
	account.Metadata = account.Metadata.WithVersion(account.Metadata.Version() + 1)
	account.UpdatedAt = time.Now().UTC()

	if err := s.accounts.UpdateAccount(ctx, account); err != nil {
		return domain.AccountView{}, err
	}
	return s.ledger.AccountView(ctx, account)
}

// DeleteAccount hard-deletes an account together with its transactions.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	return s.accounts.DeleteAccount(ctx, id)
}

// generateAccountNumber synthesizes a candidate number and retries on
// collision, up to maxAccountNumberAttempts before giving up with a conflict.
func (s *AccountService) generateAccountNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%s%0*d", accountNumberPrefix, accountNumberWidth, rand.IntN(99999999)+1)
		exists, err := s.accounts.AccountNumberExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrAccountNumberExhausted
}

func (s *AccountService) publish(ctx context.Context, routingKey string, body interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventsExchange, routingKey, body); err != nil {
		logPublishFailure(routingKey, err)
	}
}

// logPublishFailure records a failed event publish. Publishing is best
// effort; the database write already committed, so the request still
// succeeds.
func logPublishFailure(routingKey string, err error) {
	log.Printf("failed to publish %s event: %v", routingKey, err)
}

func validateCreateAccount(input CreateAccountInput) error {
	fields := map[string]string{}
	if input.ClientID == "" {
		fields["client_id"] = "client id is required"
	}
	if !domain.ValidAccountType(input.Type) {
		fields["type"] = fmt.Sprintf("unknown account type %q", input.Type)
	}
	if input.Currency == "" {
		fields["devise"] = "currency is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
