package session

// Store path layout. Every piece of shared state lives under one of
// these keys; there are no server-side aggregates, so counts are always
// recomputed from subtree reads.

func LobbiesPath() string              { return "lobbies" }
func LobbyPath(lobbyID string) string  { return "lobbies/" + lobbyID }
func CodePath(code string) string      { return "lobbyCodes/" + code }
func ParticipantsPath(lobbyID string) string { return "participants/" + lobbyID }

func ParticipantPath(lobbyID, userID string) string {
	return "participants/" + lobbyID + "/" + userID
}

func VotesPath(lobbyID string) string { return "votes/" + lobbyID }

func VotePath(lobbyID, userID string) string {
	return "votes/" + lobbyID + "/" + userID
}

func HistoryPath(userID string) string { return "userHistory/" + userID }

func HistoryEntryPath(userID, lobbyID string) string {
	return "userHistory/" + userID + "/" + lobbyID
}
