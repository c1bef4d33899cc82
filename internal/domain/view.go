/**
 * @description
 * This file defines the read models returned by the API. The account view is
 * the wire contract inherited from the previous system: field names (including
 * the French ones) and the timestamp rendering are load-bearing for existing
 * API consumers and must not change.
 */
package domain

import "time"

// ViewTimeLayout is the fixed timestamp format used by account views. It
// matches the ISO 8601 rendering with microsecond precision that existing
// consumers parse.
const ViewTimeLayout = "2006-01-02T15:04:05.000000Z"

// AccountViewMetadata is the nested metadata block of an account view.
type AccountViewMetadata struct {
	LastModified string `json:"derniereModification"`
	Version      int    `json:"version"`
}

// AccountView is the presentation record for an account. The balance is a
// derived value computed from the account's transaction history at read time.
type AccountView struct {
	ID            string              `json:"id"`
	AccountNumber string              `json:"numeroCompte"`
	Holder        string              `json:"titulaire"`
	Type          AccountType         `json:"type"`
	Balance       int64               `json:"solde"`
	Currency      string              `json:"devise"`
	CreatedDate   string              `json:"dateCreation"`
	Status        AccountStatus       `json:"statut"`
	BlockReason   *string             `json:"motifBlocage"`
	Metadata      AccountViewMetadata `json:"metadata"`
}

// FormatViewTime renders a timestamp in the fixed view layout, normalized to
// UTC.
func FormatViewTime(t time.Time) string {
	return t.UTC().Format(ViewTimeLayout)
}
