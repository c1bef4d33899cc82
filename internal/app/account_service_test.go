package app

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
)

var accountNumberPattern = regexp.MustCompile(`^C\d{8}$`)

type accountRepoStub struct {
	store.AccountRepository

	byID              map[string]*domain.Account
	byClientID        map[string]*domain.Account
	existingNumber    map[string]bool
	numberAlwaysTaken bool
	numberTakenFirst  int
	numberProbes      int

	created []*domain.Account
	updated *domain.Account
}

func newAccountRepoStub() *accountRepoStub {
	return &accountRepoStub{
		byID:           map[string]*domain.Account{},
		byClientID:     map[string]*domain.Account{},
		existingNumber: map[string]bool{},
	}
}

func (s *accountRepoStub) CreateAccount(ctx context.Context, account *domain.Account) error {
	s.created = append(s.created, account)
	s.byID[account.ID] = account
	s.byClientID[account.ClientID] = account
	return nil
}

func (s *accountRepoStub) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	if a, ok := s.byID[id]; ok {
		return a, nil
	}
	return nil, store.ErrAccountNotFound
}

func (s *accountRepoStub) FindAccountByClientID(ctx context.Context, clientID string) (*domain.Account, error) {
	if a, ok := s.byClientID[clientID]; ok {
		return a, nil
	}
	return nil, store.ErrAccountNotFound
}

func (s *accountRepoStub) AccountNumberExists(ctx context.Context, number string) (bool, error) {
	s.numberProbes++
	if s.numberAlwaysTaken {
		return true, nil
	}
	if s.numberProbes <= s.numberTakenFirst {
		return true, nil
	}
	return s.existingNumber[number], nil
}

func (s *accountRepoStub) UpdateAccount(ctx context.Context, account *domain.Account) error {
	if _, ok := s.byID[account.ID]; !ok {
		return store.ErrAccountNotFound
	}
	s.updated = account
	s.byID[account.ID] = account
	return nil
}

type clientRepoStub struct {
	store.ClientRepository

	clients map[string]*domain.Client
}

func (s *clientRepoStub) FindClientByID(ctx context.Context, id string) (*domain.Client, error) {
	if c, ok := s.clients[id]; ok {
		return c, nil
	}
	return nil, store.ErrClientNotFound
}

type publisherStub struct {
	exchanges   []string
	routingKeys []string
}

func (p *publisherStub) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	p.exchanges = append(p.exchanges, exchange)
	p.routingKeys = append(p.routingKeys, routingKey)
	return nil
}

func newTestAccountService(accounts *accountRepoStub, clients *clientRepoStub) (*AccountService, *publisherStub) {
	publisher := &publisherStub{}
	ledger := NewLedger(accounts, &ledgerTransactionRepoStub{}, false)
	return NewAccountService(accounts, clients, ledger, publisher), publisher
}

func TestCreateAccount_SynthesizesUniqueNumber(t *testing.T) {
	accounts := newAccountRepoStub()
	clients := &clientRepoStub{clients: map[string]*domain.Client{
		"client-1": {ID: "client-1", FirstName: "Mamadou", LastName: "Ndiaye"},
	}}
	svc, publisher := newTestAccountService(accounts, clients)

	view, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		ClientID: "client-1",
		Type:     domain.CheckingAccount,
		Currency: "FCFA",
	})
	if err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}

	if !accountNumberPattern.MatchString(view.AccountNumber) {
		t.Fatalf("account number %q does not match the expected pattern", view.AccountNumber)
	}
	if view.Balance != 0 {
		t.Fatalf("expected initial balance 0, got %d", view.Balance)
	}
	if view.Holder != "Mamadou Ndiaye" {
		t.Fatalf("expected holder defaulted from client name, got %q", view.Holder)
	}
	if view.Metadata.Version != 1 {
		t.Fatalf("expected initial metadata version 1, got %d", view.Metadata.Version)
	}
	if len(accounts.created) != 1 {
		t.Fatalf("expected exactly one account row created, got %d", len(accounts.created))
	}
	if len(publisher.routingKeys) != 1 || publisher.routingKeys[0] != "account.created" {
		t.Fatalf("expected account.created event, got %v", publisher.routingKeys)
	}
}

func TestCreateAccount_ClientAlreadyHasAccount(t *testing.T) {
	accounts := newAccountRepoStub()
	accounts.byClientID["client-1"] = &domain.Account{ID: "acc-existing", ClientID: "client-1"}
	clients := &clientRepoStub{clients: map[string]*domain.Client{
		"client-1": {ID: "client-1"},
	}}
	svc, _ := newTestAccountService(accounts, clients)

	_, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		ClientID: "client-1",
		Type:     domain.SavingsAccount,
		Currency: "FCFA",
	})
	if !errors.Is(err, ErrClientAlreadyHasAccount) {
		t.Fatalf("expected ErrClientAlreadyHasAccount, got %v", err)
	}
	if len(accounts.created) != 0 {
		t.Fatal("expected no account row to be created on conflict")
	}
}

func TestCreateAccount_UnknownClient(t *testing.T) {
	svc, _ := newTestAccountService(newAccountRepoStub(), &clientRepoStub{clients: map[string]*domain.Client{}})

	_, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		ClientID: "nope",
		Type:     domain.CheckingAccount,
		Currency: "FCFA",
	})
	if !errors.Is(err, store.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestCreateAccount_NumberGenerationBounded(t *testing.T) {
	accounts := newAccountRepoStub()
	accounts.numberAlwaysTaken = true
	clients := &clientRepoStub{clients: map[string]*domain.Client{
		"client-1": {ID: "client-1"},
	}}
	svc, _ := newTestAccountService(accounts, clients)

	_, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		ClientID: "client-1",
		Type:     domain.CheckingAccount,
		Currency: "FCFA",
	})
	if !errors.Is(err, ErrAccountNumberExhausted) {
		t.Fatalf("expected ErrAccountNumberExhausted, got %v", err)
	}
	if len(accounts.created) != 0 {
		t.Fatal("expected no account row created after exhausting retries")
	}
}

func TestCreateAccount_NumberCollisionRetriesThenSucceeds(t *testing.T) {
	// The first few candidates collide; a later attempt within the retry
	// bound still yields a usable unique number.
	accounts := newAccountRepoStub()
	accounts.numberTakenFirst = 3
	clients := &clientRepoStub{clients: map[string]*domain.Client{
		"client-1": {ID: "client-1", FirstName: "Awa", LastName: "Sow"},
	}}
	svc, _ := newTestAccountService(accounts, clients)

	view, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		ClientID: "client-1",
		Type:     domain.CheckingAccount,
		Currency: "FCFA",
	})
	if err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	if !accountNumberPattern.MatchString(view.AccountNumber) {
		t.Fatalf("account number %q does not match the expected pattern", view.AccountNumber)
	}
	if accounts.numberProbes != 4 {
		t.Fatalf("expected 4 existence probes (3 collisions then success), got %d", accounts.numberProbes)
	}
	if len(accounts.created) != 1 {
		t.Fatalf("expected exactly one account row created, got %d", len(accounts.created))
	}
}

func TestCreateAccount_ValidatesInput(t *testing.T) {
	svc, _ := newTestAccountService(newAccountRepoStub(), &clientRepoStub{clients: map[string]*domain.Client{}})

	_, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		ClientID: "client-1",
		Type:     domain.AccountType("offshore"),
		Currency: "FCFA",
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for unknown account type, got %v", err)
	}
}

func TestUpdateAccount_BumpsVersionAndTracksBlockReason(t *testing.T) {
	accounts := newAccountRepoStub()
	accounts.byID["acc-1"] = &domain.Account{
		ID:       "acc-1",
		Status:   domain.AccountActive,
		Metadata: domain.Metadata{}.WithVersion(1),
	}
	svc, _ := newTestAccountService(accounts, &clientRepoStub{})

	blocked := domain.AccountBlocked
	reason := "unpaid fees"
	view, err := svc.UpdateAccount(context.Background(), "acc-1", UpdateAccountInput{
		Status:      &blocked,
		BlockReason: &reason,
	})
	if err != nil {
		t.Fatalf("UpdateAccount returned error: %v", err)
	}
	if view.Metadata.Version != 2 {
		t.Fatalf("expected version bumped to 2, got %d", view.Metadata.Version)
	}
	if view.BlockReason == nil || *view.BlockReason != "unpaid fees" {
		t.Fatalf("expected block reason recorded, got %v", view.BlockReason)
	}

	// Re-activating clears the block reason and bumps the version again.
	active := domain.AccountActive
	view, err = svc.UpdateAccount(context.Background(), "acc-1", UpdateAccountInput{Status: &active})
	if err != nil {
		t.Fatalf("UpdateAccount returned error: %v", err)
	}
	if view.Metadata.Version != 3 {
		t.Fatalf("expected version bumped to 3, got %d", view.Metadata.Version)
	}
	if view.BlockReason != nil {
		t.Fatalf("expected block reason cleared, got %q", *view.BlockReason)
	}
}

func TestUpdateAccount_AnyStatusTransitionAllowed(t *testing.T) {
	// There is no transition graph: closed back to active is accepted.
	accounts := newAccountRepoStub()
	accounts.byID["acc-1"] = &domain.Account{
		ID:       "acc-1",
		Status:   domain.AccountClosed,
		Metadata: domain.Metadata{},
	}
	svc, _ := newTestAccountService(accounts, &clientRepoStub{})

	active := domain.AccountActive
	view, err := svc.UpdateAccount(context.Background(), "acc-1", UpdateAccountInput{Status: &active})
	if err != nil {
		t.Fatalf("UpdateAccount returned error: %v", err)
	}
	if view.Status != domain.AccountActive {
		t.Fatalf("expected status active, got %q", view.Status)
	}
}
