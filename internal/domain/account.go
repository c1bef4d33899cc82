/**
 * @description
 * This file defines the core domain model for a bank account (compte). It
 * represents the structure of an account as stored in our database.
 *
 * @notes
 * - The balance is intentionally absent from this struct. It is never stored;
 *   it is derived from the account's transaction history by the ledger.
 * - The `ClientID` links the account back to its owning client record.
 */
package domain

import "time"

// AccountType defines the kind of a bank account.
type AccountType string

const (
	CheckingAccount AccountType = "checking"
	SavingsAccount  AccountType = "savings"
)

// AccountStatus defines the lifecycle status of an account.
type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountBlocked AccountStatus = "blocked"
	AccountClosed  AccountStatus = "closed"
)

// Account represents a client's bank account in our system.
type Account struct {
	ID            string        `json:"id"`
	ClientID      string        `json:"client_id"`
	AccountNumber string        `json:"account_number"`
	Holder        string        `json:"holder"`
	Type          AccountType   `json:"account_type"`
	Currency      string        `json:"currency"`
	CreatedDate   time.Time     `json:"created_date"`
	Status        AccountStatus `json:"status"`
	Metadata      Metadata      `json:"metadata"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ValidAccountType reports whether t is one of the supported account kinds.
func ValidAccountType(t AccountType) bool {
	return t == CheckingAccount || t == SavingsAccount
}

// ValidAccountStatus reports whether s is one of the supported account statuses.
// Note that there is no enforced transition graph: any status may be set from
// any other via an explicit update.
func ValidAccountStatus(s AccountStatus) bool {
	return s == AccountActive || s == AccountBlocked || s == AccountClosed
}
