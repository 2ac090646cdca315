package models

import "time"

// Pet is an adoption listing. OwnerID is set at creation and never
// reassigned; Owner is populated on joined reads only.
type Pet struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Breed       string      `json:"breed"`
	Age         int         `json:"age"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Image       *string     `json:"image"`
	OwnerID     string      `json:"owner_id"`
	Owner       *PublicUser `json:"owner,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
