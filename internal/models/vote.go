package models

import "time"

// Vote lives at votes/{lobbyId}/{userId}: one MVP/loser pick per
// participant, immutable once written.
type Vote struct {
	LobbyID      string    `gorm:"primaryKey;size:36" json:"-"`
	UserID       string    `gorm:"primaryKey;size:36" json:"-"`
	MVPName      string    `gorm:"size:100;not null" json:"mvpName"`
	MVPComment   string    `gorm:"size:500" json:"mvpComment"`
	LoserName    string    `gorm:"size:100;not null" json:"loserName"`
	LoserComment string    `gorm:"size:500" json:"loserComment"`
	SubmittedAt  time.Time `json:"submittedAt"`
}
