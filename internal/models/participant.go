package models

import "time"

// Participant lives at participants/{lobbyId}/{userId}. Exactly one
// participant per lobby has IsCreator set, and its UserID equals the
// lobby's CreatorID.
type Participant struct {
	LobbyID             string    `gorm:"primaryKey;size:36" json:"-"`
	UserID              string    `gorm:"primaryKey;size:36" json:"-"`
	Name                string    `gorm:"size:100;not null" json:"name"`
	IsCreator           bool      `gorm:"not null;default:false" json:"isCreator"`
	NameChangeRequested bool      `gorm:"not null;default:false" json:"nameChangeRequested,omitempty"`
	JoinedAt            time.Time `json:"joinedAt"`
}
