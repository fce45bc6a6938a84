package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrLobbyNotFound            = errors.New("lobby not found")
	ErrNotAcceptingParticipants = errors.New("lobby is not accepting participants")
	ErrAlreadyVoted             = errors.New("vote already submitted")
	ErrPhaseRegression          = errors.New("session phase cannot move backwards")
)

// Store is the slice of the remote store the session protocol uses.
// *store.Client satisfies it; tests plug in an in-memory fake.
type Store interface {
	Read(ctx context.Context, path string, out interface{}) (bool, error)
	Write(ctx context.Context, path string, value interface{}) error
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	Delete(ctx context.Context, path string) error
	Push(ctx context.Context, path string, value interface{}) (string, error)
	UserID() string
}

const maxCodeAttempts = 10

// Coordinator implements the session protocol on top of the store's
// single-path operations. Nothing here is transactional: multi-step
// operations are ordered so that a failure partway leaves the store in
// a state the same operation can be re-invoked from.
type Coordinator struct {
	store Store
	now   func() time.Time
}

func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store, now: time.Now}
}

func randomCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// CreateSession creates a new lobby in the waiting phase and returns
// its id. The join code is drawn at random and re-drawn while the code
// index already holds it; the window between that check and the index
// write is accepted, collisions there surface as a join landing in the
// newer lobby.
func (c *Coordinator) CreateSession(ctx context.Context, creatorName string) (string, error) {
	uid := c.store.UserID()
	now := c.now()

	var code string
	for attempt := 0; ; attempt++ {
		if attempt == maxCodeAttempts {
			return "", errors.New("could not allocate a join code")
		}
		code = randomCode()
		var existing string
		taken, err := c.store.Read(ctx, CodePath(code), &existing)
		if err != nil {
			return "", err
		}
		if !taken {
			break
		}
	}

	lobby := Lobby{
		CreatorID:   uid,
		CreatorName: creatorName,
		Code:        code,
		Status:      PhaseWaiting,
		CreatedAt:   now,
	}
	lobbyID, err := c.store.Push(ctx, LobbiesPath(), lobby)
	if err != nil {
		return "", err
	}

	if err := c.store.Write(ctx, CodePath(code), lobbyID); err != nil {
		return "", err
	}
	participant := Participant{Name: creatorName, IsCreator: true, JoinedAt: now}
	if err := c.store.Write(ctx, ParticipantPath(lobbyID, uid), participant); err != nil {
		return "", err
	}
	entry := HistoryEntry{LobbyID: lobbyID, JoinedAt: now}
	if err := c.store.Write(ctx, HistoryEntryPath(uid, lobbyID), entry); err != nil {
		return "", err
	}
	return lobbyID, nil
}

// JoinSession resolves a join code and registers the caller as a
// participant. Joining is only possible while the lobby is waiting;
// afterwards the code resolves but entry is refused.
func (c *Coordinator) JoinSession(ctx context.Context, code, name string) (string, error) {
	var lobbyID string
	found, err := c.store.Read(ctx, CodePath(code), &lobbyID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrLobbyNotFound
	}

	var lobby Lobby
	found, err = c.store.Read(ctx, LobbyPath(lobbyID), &lobby)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrLobbyNotFound
	}
	if lobby.Status != PhaseWaiting {
		return "", ErrNotAcceptingParticipants
	}

	uid := c.store.UserID()
	now := c.now()
	participant := Participant{Name: name, JoinedAt: now}
	if err := c.store.Write(ctx, ParticipantPath(lobbyID, uid), participant); err != nil {
		return "", err
	}
	entry := HistoryEntry{LobbyID: lobbyID, JoinedAt: now}
	if err := c.store.Write(ctx, HistoryEntryPath(uid, lobbyID), entry); err != nil {
		return "", err
	}
	return lobbyID, nil
}

// AdvancePhase moves the session to next. Writing the current phase
// again is a no-op; moving backwards is refused locally, and the store
// enforces the same rule for anyone bypassing this client.
func (c *Coordinator) AdvancePhase(ctx context.Context, lobbyID string, next Phase) error {
	if !next.Valid() {
		return fmt.Errorf("invalid phase %q", next)
	}

	lobby, err := c.Lobby(ctx, lobbyID)
	if err != nil {
		return err
	}
	if next.Before(lobby.Status) {
		return ErrPhaseRegression
	}
	if next == lobby.Status {
		return nil
	}
	return c.store.Update(ctx, LobbyPath(lobbyID), map[string]interface{}{
		"status": string(next),
	})
}

// SubmitVote records voterID's ballot. A ballot is immutable once
// written: re-submission returns ErrAlreadyVoted. The read-then-write
// race between two devices on the same identity is accepted.
func (c *Coordinator) SubmitVote(ctx context.Context, lobbyID, voterID string, vote Vote) error {
	var existing Vote
	found, err := c.store.Read(ctx, VotePath(lobbyID, voterID), &existing)
	if err != nil {
		return err
	}
	if found {
		return ErrAlreadyVoted
	}
	if vote.SubmittedAt.IsZero() {
		vote.SubmittedAt = c.now()
	}
	return c.store.Write(ctx, VotePath(lobbyID, voterID), vote)
}

// RequestNameChange flags a participant's name as needing a change.
// The flagged participant clears it themselves by submitting a new
// name.
func (c *Coordinator) RequestNameChange(ctx context.Context, lobbyID, participantID string) error {
	return c.store.Update(ctx, ParticipantPath(lobbyID, participantID), map[string]interface{}{
		"nameChangeRequested": true,
	})
}

// ChangeName writes a participant's new name and clears the pending
// name-change flag in the same update.
func (c *Coordinator) ChangeName(ctx context.Context, lobbyID, participantID, newName string) error {
	return c.store.Update(ctx, ParticipantPath(lobbyID, participantID), map[string]interface{}{
		"name":                newName,
		"nameChangeRequested": false,
	})
}

// RemoveParticipant deletes a participant's entry. The removed client
// discovers this through its own polling, not through any direct
// signal.
func (c *Coordinator) RemoveParticipant(ctx context.Context, lobbyID, participantID string) error {
	return c.store.Delete(ctx, ParticipantPath(lobbyID, participantID))
}

// LeaveSession removes the caller's own traces from a lobby they are
// voluntarily exiting.
func (c *Coordinator) LeaveSession(ctx context.Context, lobbyID string) error {
	uid := c.store.UserID()
	if err := c.store.Delete(ctx, ParticipantPath(lobbyID, uid)); err != nil {
		return err
	}
	return c.store.Delete(ctx, HistoryEntryPath(uid, lobbyID))
}

// DeleteSessionFromHistory removes a session from the caller's history.
// For the creator this tears the whole session down: subtrees first,
// then the lobby, then the now-orphaned code, and the history pointer
// last, so a failed run leaves every remaining step re-invocable. For
// anyone else only their own entries go.
func (c *Coordinator) DeleteSessionFromHistory(ctx context.Context, lobbyID string) error {
	uid := c.store.UserID()

	lobby, err := c.Lobby(ctx, lobbyID)
	switch {
	case err == nil && lobby.CreatorID == uid:
		if err := c.store.Delete(ctx, ParticipantsPath(lobbyID)); err != nil {
			return err
		}
		if err := c.store.Delete(ctx, VotesPath(lobbyID)); err != nil {
			return err
		}
		if err := c.store.Delete(ctx, LobbyPath(lobbyID)); err != nil {
			return err
		}
		if err := c.store.Delete(ctx, CodePath(lobby.Code)); err != nil {
			return err
		}
	case err == nil:
		if err := c.store.Delete(ctx, VotePath(lobbyID, uid)); err != nil {
			return err
		}
		if err := c.store.Delete(ctx, ParticipantPath(lobbyID, uid)); err != nil {
			return err
		}
	case errors.Is(err, ErrLobbyNotFound):
		// lobby already gone, only the pointer is left
	default:
		return err
	}

	return c.store.Delete(ctx, HistoryEntryPath(uid, lobbyID))
}

// Lobby reads the session document.
func (c *Coordinator) Lobby(ctx context.Context, lobbyID string) (*Lobby, error) {
	var lobby Lobby
	found, err := c.store.Read(ctx, LobbyPath(lobbyID), &lobby)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrLobbyNotFound
	}
	return &lobby, nil
}

// Participants reads the full membership subtree. A missing subtree is
// an empty map.
func (c *Coordinator) Participants(ctx context.Context, lobbyID string) (map[string]Participant, error) {
	participants := map[string]Participant{}
	if _, err := c.store.Read(ctx, ParticipantsPath(lobbyID), &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// Votes reads the full ballot subtree. A missing subtree is an empty
// map.
func (c *Coordinator) Votes(ctx context.Context, lobbyID string) (map[string]Vote, error) {
	votes := map[string]Vote{}
	if _, err := c.store.Read(ctx, VotesPath(lobbyID), &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// History reads every session pointer for userID.
func (c *Coordinator) History(ctx context.Context, userID string) (map[string]HistoryEntry, error) {
	entries := map[string]HistoryEntry{}
	if _, err := c.store.Read(ctx, HistoryPath(userID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// VoteCounts recomputes the submitted and remaining tallies from full
// subtree reads. A voter who was removed after voting still counts as
// submitted, which can push remaining below zero; it is clamped.
func (c *Coordinator) VoteCounts(ctx context.Context, lobbyID string) (submitted, remaining int, err error) {
	participants, err := c.Participants(ctx, lobbyID)
	if err != nil {
		return 0, 0, err
	}
	votes, err := c.Votes(ctx, lobbyID)
	if err != nil {
		return 0, 0, err
	}
	submitted = len(votes)
	remaining = len(participants) - submitted
	if remaining < 0 {
		remaining = 0
	}
	return submitted, remaining, nil
}
