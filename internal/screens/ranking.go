package screens

import (
	"context"
	"sync"
	"time"

	"github.com/Vandammecasper/voting-app/internal/poll"
	"github.com/Vandammecasper/voting-app/internal/session"
)

// RankingScreen drives the final reveal: both rankings recomputed from
// the ballot subtree on every poll. No ballots at all is a valid state
// and yields empty rankings.
type RankingScreen struct {
	store    session.Store
	lobbyID  string
	interval time.Duration

	events chan Event
	cancel context.CancelFunc

	mu        sync.Mutex
	lastPhase session.Phase
	mvp       []session.RankEntry
	losers    []session.RankEntry
}

func NewRankingScreen(st session.Store, lobbyID string, interval time.Duration) *RankingScreen {
	return &RankingScreen{
		store:     st,
		lobbyID:   lobbyID,
		interval:  interval,
		events:    make(chan Event, eventBuffer),
		lastPhase: session.PhaseRanking,
	}
}

func (r *RankingScreen) Events() <-chan Event { return r.events }

func (r *RankingScreen) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	poll.New(readPath(r.store, session.LobbyPath(r.lobbyID)), r.interval, r.onLobby).Start(ctx)
	poll.New(readPath(r.store, session.VotesPath(r.lobbyID)), r.interval, r.onVotes).Start(ctx)
}

func (r *RankingScreen) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}

// Rankings returns the latest computed rankings.
func (r *RankingScreen) Rankings() (mvp, losers []session.RankEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mvp, r.losers
}

func (r *RankingScreen) onLobby(snap poll.Snapshot) {
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

func (r *RankingScreen) onVotes(snap poll.Snapshot) {
	votes := decodeVotes(snap)
	mvp := session.RankMVP(votes)
	losers := session.RankLosers(votes)

	r.mu.Lock()
	r.mvp = mvp
	r.losers = losers
	r.mu.Unlock()

	emit(r.events, RankingsUpdated{MVP: mvp, Losers: losers})
}
