package screens

import (
	"context"
	"sync"
	"time"

	"github.com/Vandammecasper/voting-app/internal/poll"
	"github.com/Vandammecasper/voting-app/internal/session"
)

// WaitingRoom drives the pre-game screen: the live member list, the
// creator's join code, removal detection, and the hand-off into the
// voting phase.
type WaitingRoom struct {
	store    session.Store
	lobbyID  string
	userID   string
	interval time.Duration

	events chan Event
	cancel context.CancelFunc

	mu           sync.Mutex
	lobby        *session.Lobby
	participants map[string]session.Participant
	lastPhase    session.Phase
	wasPresent   bool
	removalSent  bool
	namePrompted bool
}

func NewWaitingRoom(st session.Store, lobbyID string, interval time.Duration) *WaitingRoom {
	return &WaitingRoom{
		store:        st,
		lobbyID:      lobbyID,
		userID:       st.UserID(),
		interval:     interval,
		events:       make(chan Event, eventBuffer),
		participants: map[string]session.Participant{},
		lastPhase:    session.PhaseWaiting,
	}
}

// Events is the controller's notification stream.
func (w *WaitingRoom) Events() <-chan Event { return w.events }

// Start spawns one poller per watched path. Each runs on its own
// unsynchronized timer.
func (w *WaitingRoom) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	poll.New(readPath(w.store, session.LobbyPath(w.lobbyID)), w.interval, w.onLobby).Start(ctx)
	poll.New(readPath(w.store, session.ParticipantsPath(w.lobbyID)), w.interval, w.onParticipants).Start(ctx)
}

// Close stops polling. Snapshots arriving after Close are discarded.
func (w *WaitingRoom) Close() {
	if w.cancel != nil {
		w.cancel()
	}
}

// Members returns the current merged member list.
func (w *WaitingRoom) Members() []session.MemberView {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lobby == nil {
		return nil
	}
	return session.MemberList(w.lobby, w.participants)
}

// Code returns the join code once the lobby has loaded.
func (w *WaitingRoom) Code() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lobby == nil {
		return ""
	}
	return w.lobby.Code
}

func (w *WaitingRoom) onLobby(snap poll.Snapshot) {
	lobby, ok := decodeLobby(snap)
	if !ok {
		return
	}

	w.mu.Lock()
	w.lobby = lobby
	phaseChanged := lobby.Status != w.lastPhase
	if phaseChanged {
		w.lastPhase = lobby.Status
	}
	members := session.MemberList(lobby, w.participants)
	w.mu.Unlock()

	if phaseChanged {
		emit(w.events, PhaseChanged{Phase: lobby.Status})
	}
	emit(w.events, MembersUpdated{Members: members})
}

func (w *WaitingRoom) onParticipants(snap poll.Snapshot) {
	participants := decodeParticipants(snap)

	w.mu.Lock()
	w.participants = participants

	var out []Event
	self, present := participants[w.userID]
	switch {
	case present:
		w.wasPresent = true
		if self.NameChangeRequested && !w.namePrompted {
			w.namePrompted = true
			out = append(out, NameChangeRequested{})
		}
		if !self.NameChangeRequested {
			w.namePrompted = false
		}
	case w.wasPresent && !w.removalSent && w.lobby != nil && w.userID != w.lobby.CreatorID:
		// present before, gone now: the creator removed us. Never
		// fires for a client that simply has not appeared yet.
		w.removalSent = true
		out = append(out, RemovedByHost{})
	}

	if w.lobby != nil {
		out = append(out, MembersUpdated{Members: session.MemberList(w.lobby, participants)})
	}
	w.mu.Unlock()

	for _, ev := range out {
		emit(w.events, ev)
	}
}
