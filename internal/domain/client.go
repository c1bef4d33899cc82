package domain

import "time"

// ClientStatus defines the lifecycle status of a client record.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// Client represents an account-holder entity. It is distinct from the User
// identity that administers it; `UserID` records which user created the
// client record.
type Client struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	LastName   string       `json:"last_name"`
	FirstName  string       `json:"first_name"`
	Gender     string       `json:"gender"` // "M" or "F"
	Phone      string       `json:"phone"`
	NationalID string       `json:"national_id"`
	Address    string       `json:"address,omitempty"`
	Status     ClientStatus `json:"status"`
	Metadata   Metadata     `json:"metadata,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
