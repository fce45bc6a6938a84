package screens

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Vandammecasper/voting-app/internal/poll"
	"github.com/Vandammecasper/voting-app/internal/session"
)

// VoterBallot pairs a ballot with the identity that cast it, for the
// one-by-one reveal.
type VoterBallot struct {
	VoterID string
	Vote    session.Vote
}

// ResultsScreen drives the comment reveal: every client steps through
// the submitted ballots at its own pace. The pagination index lives
// only in this instance and is never written to the store.
type ResultsScreen struct {
	store    session.Store
	lobbyID  string
	interval time.Duration

	events chan Event
	cancel context.CancelFunc

	mu        sync.Mutex
	lastPhase session.Phase
	ballots   []VoterBallot
	index     int
}

func NewResultsScreen(st session.Store, lobbyID string, interval time.Duration) *ResultsScreen {
	return &ResultsScreen{
		store:     st,
		lobbyID:   lobbyID,
		interval:  interval,
		events:    make(chan Event, eventBuffer),
		lastPhase: session.PhaseResults,
	}
}

func (r *ResultsScreen) Events() <-chan Event { return r.events }

func (r *ResultsScreen) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	poll.New(readPath(r.store, session.LobbyPath(r.lobbyID)), r.interval, r.onLobby).Start(ctx)
	poll.New(readPath(r.store, session.VotesPath(r.lobbyID)), r.interval, r.onVotes).Start(ctx)
}

func (r *ResultsScreen) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}

// Current returns the ballot at the local pagination index.
func (r *ResultsScreen) Current() (VoterBallot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index < 0 || r.index >= len(r.ballots) {
		return VoterBallot{}, false
	}
	return r.ballots[r.index], true
}

// Next advances the local index, reporting whether it moved.
func (r *ResultsScreen) Next() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index+1 >= len(r.ballots) {
		return false
	}
	r.index++
	return true
}

// Prev steps the local index back, reporting whether it moved.
func (r *ResultsScreen) Prev() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index == 0 {
		return false
	}
	r.index--
	return true
}

// Position returns the local index and the ballot count.
func (r *ResultsScreen) Position() (index, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index, len(r.ballots)
}

func (r *ResultsScreen) onLobby(snap poll.Snapshot) {
	lobby, ok := decodeLobby(snap)
	if !ok {
		return
	}

	r.mu.Lock()
	changed := lobby.Status != r.lastPhase
	if changed {
		r.lastPhase = lobby.Status
	}
	r.mu.Unlock()

	if changed {
		emit(r.events, PhaseChanged{Phase: lobby.Status})
	}
}

func (r *ResultsScreen) onVotes(snap poll.Snapshot) {
	votes := decodeVotes(snap)

	ballots := make([]VoterBallot, 0, len(votes))
	for voterID, v := range votes {
		ballots = append(ballots, VoterBallot{VoterID: voterID, Vote: v})
	}
	sort.Slice(ballots, func(i, j int) bool {
		ti, tj := ballots[i].Vote.SubmittedAt, ballots[j].Vote.SubmittedAt
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return ballots[i].VoterID < ballots[j].VoterID
	})

	r.mu.Lock()
	r.ballots = ballots
	if r.index >= len(ballots) && len(ballots) > 0 {
		r.index = len(ballots) - 1
	}
	r.mu.Unlock()
}
