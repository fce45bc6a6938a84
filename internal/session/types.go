package session

import "time"

// Lobby is the session document at lobbies/{sessionId}.
type Lobby struct {
	CreatorID   string    `json:"creatorId"`
	CreatorName string    `json:"creatorName"`
	Code        string    `json:"code"`
	Status      Phase     `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Participant is one entry under participants/{sessionId}/{userId}.
// Presence of the entry is what membership means; deleting it removes
// the participant.
type Participant struct {
	Name                string    `json:"name"`
	IsCreator           bool      `json:"isCreator"`
	NameChangeRequested bool      `json:"nameChangeRequested,omitempty"`
	JoinedAt            time.Time `json:"joinedAt"`
}

// Vote is one ballot under votes/{sessionId}/{userId}: one positive and
// one negative pick, each with a free-text comment.
type Vote struct {
	MVPName      string    `json:"mvpName"`
	MVPComment   string    `json:"mvpComment"`
	LoserName    string    `json:"loserName"`
	LoserComment string    `json:"loserComment"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// HistoryEntry is the per-user pointer at
// userHistory/{userId}/{sessionId}.
type HistoryEntry struct {
	LobbyID  string    `json:"lobbyId"`
	JoinedAt time.Time `json:"joinedAt"`
}
