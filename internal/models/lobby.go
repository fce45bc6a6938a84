package models

import "time"

// Lobby is the authoritative session record. The lobby id is the storage
// key, so it is excluded from the wire value at lobbies/{id}.
type Lobby struct {
	ID          string    `gorm:"primaryKey;size:36" json:"-"`
	CreatorID   string    `gorm:"size:36;not null;index" json:"creatorId"`
	CreatorName string    `gorm:"size:100;not null" json:"creatorName"`
	Code        string    `gorm:"size:6;uniqueIndex" json:"code"`
	Status      string    `gorm:"size:20;not null;default:'waiting'" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	LobbyStatusWaiting   = "waiting"
	LobbyStatusVoting    = "voting"
	LobbyStatusResults   = "results"
	LobbyStatusRanking   = "ranking"
	LobbyStatusCompleted = "completed"
)

var statusRank = map[string]int{
	LobbyStatusWaiting:   0,
	LobbyStatusVoting:    1,
	LobbyStatusResults:   2,
	LobbyStatusRanking:   3,
	LobbyStatusCompleted: 4,
}

// StatusRank returns the position of a status in the one-way lifecycle,
// or -1 for an unknown status.
func StatusRank(status string) int {
	if r, ok := statusRank[status]; ok {
		return r
	}
	return -1
}

// LobbyCode maps a 6-digit join code to a lobby id. The wire value at
// lobbyCodes/{code} is the bare lobby id string.
type LobbyCode struct {
	Code    string `gorm:"primaryKey;size:6"`
	LobbyID string `gorm:"size:36;not null"`
}
