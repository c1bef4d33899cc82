package app

import (
	"context"
	"errors"
	"testing"

	"github.com/DaisaLuiseMonteiro/banking-api/internal/domain"
	"github.com/DaisaLuiseMonteiro/banking-api/internal/store"
)

type ledgerAccountRepoStub struct {
	store.AccountRepository

	account *domain.Account
}

func (s *ledgerAccountRepoStub) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	if s.account == nil || s.account.ID != id {
		return nil, store.ErrAccountNotFound
	}
	return s.account, nil
}

type ledgerTransactionRepoStub struct {
	store.TransactionRepository

	transactions []domain.Transaction
}

func (s *ledgerTransactionRepoStub) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return s.transactions, nil
}

func newTestLedger(account *domain.Account, transactions []domain.Transaction, validatedOnly bool) *Ledger {
	return NewLedger(
		&ledgerAccountRepoStub{account: account},
		&ledgerTransactionRepoStub{transactions: transactions},
		validatedOnly,
	)
}

func tx(kind domain.TransactionType, amount int64, status domain.TransactionStatus) domain.Transaction {
	return domain.Transaction{Type: kind, Amount: amount, Status: status}
}

func TestComputeBalance_NoTransactionsIsZero(t *testing.T) {
	account := &domain.Account{ID: "acc-1"}
	ledger := newTestLedger(account, nil, false)

	balance, err := ledger.ComputeBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("ComputeBalance returned error: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected balance 0 for empty account, got %d", balance)
	}
}

func TestComputeBalance_UnknownAccount(t *testing.T) {
	ledger := newTestLedger(&domain.Account{ID: "acc-1"}, nil, false)

	_, err := ledger.ComputeBalance(context.Background(), "missing")
	if !errors.Is(err, store.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestComputeBalance_DepositsMinusWithdrawals(t *testing.T) {
	// Deposits and withdrawals of every status count equally; transfers and
	// fees are excluded from the sum entirely.
	transactions := []domain.Transaction{
		tx(domain.TransactionDeposit, 5000, domain.TransactionValidated),
		tx(domain.TransactionWithdrawal, 1200, domain.TransactionPending),
		tx(domain.TransactionDeposit, 300, domain.TransactionCancelled),
		tx(domain.TransactionTransfer, 99999, domain.TransactionValidated),
		tx(domain.TransactionFee, 450, domain.TransactionValidated),
		tx(domain.TransactionWithdrawal, 800, domain.TransactionCancelled),
	}
	ledger := newTestLedger(&domain.Account{ID: "acc-1"}, transactions, false)

	balance, err := ledger.ComputeBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("ComputeBalance returned error: %v", err)
	}
	want := int64(5000 + 300 - 1200 - 800)
	if balance != want {
		t.Fatalf("expected balance %d, got %d", want, balance)
	}
}

func TestComputeBalance_DocumentedScenario(t *testing.T) {
	// deposit 10000, withdrawal 3000, transfer 5000, deposit 200 -> 7200.
	transactions := []domain.Transaction{
		tx(domain.TransactionDeposit, 10000, domain.TransactionValidated),
		tx(domain.TransactionWithdrawal, 3000, domain.TransactionValidated),
		tx(domain.TransactionTransfer, 5000, domain.TransactionValidated),
		tx(domain.TransactionDeposit, 200, domain.TransactionValidated),
	}
	ledger := newTestLedger(&domain.Account{ID: "acc-1"}, transactions, false)

	balance, err := ledger.ComputeBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("ComputeBalance returned error: %v", err)
	}
	if balance != 7200 {
		t.Fatalf("expected balance 7200, got %d", balance)
	}
}

func TestComputeBalance_OrderIndependent(t *testing.T) {
	transactions := []domain.Transaction{
		tx(domain.TransactionDeposit, 100, domain.TransactionValidated),
		tx(domain.TransactionWithdrawal, 40, domain.TransactionPending),
		tx(domain.TransactionDeposit, 7, domain.TransactionCancelled),
		tx(domain.TransactionFee, 3, domain.TransactionValidated),
	}
	account := &domain.Account{ID: "acc-1"}

	reference, err := newTestLedger(account, transactions, false).ComputeBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("ComputeBalance returned error: %v", err)
	}

	// Rotate through every cyclic permutation of the set.
	for i := 1; i < len(transactions); i++ {
		permuted := append(append([]domain.Transaction{}, transactions[i:]...), transactions[:i]...)
		balance, err := newTestLedger(account, permuted, false).ComputeBalance(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("ComputeBalance returned error for permutation %d: %v", i, err)
		}
		if balance != reference {
			t.Fatalf("permutation %d changed balance: got %d, want %d", i, balance, reference)
		}
	}
}

func TestComputeBalance_MayBeNegative(t *testing.T) {
	transactions := []domain.Transaction{
		tx(domain.TransactionDeposit, 100, domain.TransactionValidated),
		tx(domain.TransactionWithdrawal, 250, domain.TransactionValidated),
	}
	ledger := newTestLedger(&domain.Account{ID: "acc-1"}, transactions, false)

	balance, err := ledger.ComputeBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("ComputeBalance returned error: %v", err)
	}
	if balance != -150 {
		t.Fatalf("expected balance -150 (no floor at zero), got %d", balance)
	}
}

func TestComputeBalance_ValidatedOnlyFlag(t *testing.T) {
	transactions := []domain.Transaction{
		tx(domain.TransactionDeposit, 10000, domain.TransactionValidated),
		tx(domain.TransactionDeposit, 500, domain.TransactionPending),
		tx(domain.TransactionWithdrawal, 2000, domain.TransactionCancelled),
		tx(domain.TransactionWithdrawal, 1000, domain.TransactionValidated),
	}
	account := &domain.Account{ID: "acc-1"}

	legacy, err := newTestLedger(account, transactions, false).ComputeBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("ComputeBalance returned error: %v", err)
	}
	if legacy != 10000+500-2000-1000 {
		t.Fatalf("legacy mode: expected %d, got %d", 10000+500-2000-1000, legacy)
	}

	strict, err := newTestLedger(account, transactions, true).ComputeBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("ComputeBalance returned error: %v", err)
	}
	if strict != 10000-1000 {
		t.Fatalf("validated-only mode: expected %d, got %d", 10000-1000, strict)
	}
}
