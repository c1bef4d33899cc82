/**
 * @description
 * This file defines the event payloads published to the message broker when
 * accounts and transactions are created. Downstream consumers (reporting,
 * notifications) subscribe to these on the `banking_events` topic exchange.
 */
package domain

import "time"

// AccountCreatedEvent is published after a new account row is persisted.
type AccountCreatedEvent struct {
	AccountID     string    `json:"account_id"`
	ClientID      string    `json:"client_id"`
	AccountNumber string    `json:"account_number"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionCreatedEvent is published after a new transaction row is
// persisted. The balance is not included: consumers needing it must read it
// from the API, where it is recomputed from the full transaction set.
type TransactionCreatedEvent struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Type          TransactionType `json:"type"`
	Amount        int64           `json:"amount"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"created_at"`
}
