package screens

import (
	"context"
	"sync"
	"time"

	"github.com/Vandammecasper/voting-app/internal/poll"
	"github.com/Vandammecasper/voting-app/internal/session"
)

// VotingScreen drives the ballot screen: live submitted/remaining
// tallies and the hand-off into results. Both tallies are recomputed
// from full subtree snapshots on every poll.
type VotingScreen struct {
	store    session.Store
	lobbyID  string
	interval time.Duration

	events chan Event
	cancel context.CancelFunc

	mu            sync.Mutex
	lastPhase     session.Phase
	participants  int
	votes         int
	haveBoth      [2]bool
	lastSubmitted int
	lastRemaining int
	announced     bool
}

func NewVotingScreen(st session.Store, lobbyID string, interval time.Duration) *VotingScreen {
	return &VotingScreen{
		store:     st,
		lobbyID:   lobbyID,
		interval:  interval,
		events:    make(chan Event, eventBuffer),
		lastPhase: session.PhaseVoting,
	}
}

func (v *VotingScreen) Events() <-chan Event { return v.events }

func (v *VotingScreen) Start(ctx context.Context) {
	ctx, v.cancel = context.WithCancel(ctx)
	poll.New(readPath(v.store, session.LobbyPath(v.lobbyID)), v.interval, v.onLobby).Start(ctx)
	poll.New(readPath(v.store, session.ParticipantsPath(v.lobbyID)), v.interval, v.onParticipants).Start(ctx)
	poll.New(readPath(v.store, session.VotesPath(v.lobbyID)), v.interval, v.onVotes).Start(ctx)
}

func (v *VotingScreen) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}

// Progress returns the last computed tallies.
func (v *VotingScreen) Progress() (submitted, remaining int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSubmitted, v.lastRemaining
}

func (v *VotingScreen) onLobby(snap poll.Snapshot) {
	lobby, ok := decodeLobby(snap)
	if !ok {
		return
	}

	v.mu.Lock()
	changed := lobby.Status != v.lastPhase
	if changed {
		v.lastPhase = lobby.Status
	}
	v.mu.Unlock()

	if changed {
		emit(v.events, PhaseChanged{Phase: lobby.Status})
	}
}

func (v *VotingScreen) onParticipants(snap poll.Snapshot) {
	v.mu.Lock()
	v.participants = len(decodeParticipants(snap))
	v.haveBoth[0] = true
	ev, ok := v.recompute()
	v.mu.Unlock()
	if ok {
		emit(v.events, ev)
	}
}

func (v *VotingScreen) onVotes(snap poll.Snapshot) {
	v.mu.Lock()
	v.votes = len(decodeVotes(snap))
	v.haveBoth[1] = true
	ev, ok := v.recompute()
	v.mu.Unlock()
	if ok {
		emit(v.events, ev)
	}
}

// recompute emits only when both subtrees have loaded and the tallies
// actually moved. Caller holds the mutex.
func (v *VotingScreen) recompute() (Event, bool) {
	if !v.haveBoth[0] || !v.haveBoth[1] {
		return nil, false
	}
	submitted := v.votes
	remaining := v.participants - v.votes
	if remaining < 0 {
		remaining = 0
	}
	if v.announced && submitted == v.lastSubmitted && remaining == v.lastRemaining {
		return nil, false
	}
	v.announced = true
	v.lastSubmitted = submitted
	v.lastRemaining = remaining
	return VoteProgress{Submitted: submitted, Remaining: remaining}, true
}
