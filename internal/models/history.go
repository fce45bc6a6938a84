package models

import "time"

// HistoryEntry lives at userHistory/{userId}/{lobbyId} and points back
// at a lobby the user created or joined.
type HistoryEntry struct {
	UserID   string    `gorm:"primaryKey;size:36" json:"-"`
	LobbyID  string    `gorm:"primaryKey;size:36" json:"lobbyId"`
	JoinedAt time.Time `json:"joinedAt"`
}
