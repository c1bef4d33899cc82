/**
 * @description
 * This file defines the domain model for a transaction, the central ledger
 * record for any money movement against an account.
 *
 * @notes
 * - Amounts are stored as `int64` in the smallest currency unit, which avoids
 *   floating-point inaccuracies with financial data.
 * - The amount is always a non-negative magnitude; direction is implied by the
 *   transaction type, never by the sign.
 */
package domain

import "time"

// TransactionType defines the kind of a ledger entry.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionTransfer   TransactionType = "transfer"
	TransactionFee        TransactionType = "fee"
)

// TransactionStatus defines the processing status of a transaction. It is
// assigned once at creation and never transitioned by this service.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionValidated TransactionStatus = "validated"
	TransactionCancelled TransactionStatus = "cancelled"
)

// Transaction represents a single posted ledger entry belonging to exactly
// one account.
type Transaction struct {
	ID              string            `json:"id"`
	AccountID       string            `json:"account_id"`
	Type            TransactionType   `json:"type"`
	Amount          int64             `json:"amount"` // in minor currency units
	Currency        string            `json:"currency"`
	Description     string            `json:"description"`
	TransactionDate time.Time         `json:"transaction_date"`
	Status          TransactionStatus `json:"status"`
	Metadata        Metadata          `json:"metadata"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ValidTransactionType reports whether t is one of the supported kinds.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionTransfer, TransactionFee:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s is one of the supported statuses.
func ValidTransactionStatus(s TransactionStatus) bool {
	switch s {
	case TransactionPending, TransactionValidated, TransactionCancelled:
		return true
	}
	return false
}
