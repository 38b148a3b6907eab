package models

import "time"

// Account holds the current balance for one account. Balances are integer
// minor units (cents). The processor never creates or deletes accounts; it
// only rewrites Balance under the account's lock.
type Account struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Balance   int64     `gorm:"not null" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
