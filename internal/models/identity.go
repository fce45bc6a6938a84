package models

import "time"

// Identity is a stable opaque user id minted by anonymous sign-in.
// There is nothing else to a "user account" by design.
type Identity struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
