package screens

import "github.com/Vandammecasper/voting-app/internal/session"

// Event is a screen-level notification derived from polled store
// state. Controllers publish events on a buffered channel; a consumer
// that falls behind loses intermediate events, never the channel.
type Event interface {
	isScreenEvent()
}

// PhaseChanged fires when the stored session phase differs from the
// phase the screen was opened in. The consumer navigates to the
// matching screen.
type PhaseChanged struct {
	Phase session.Phase
}

// MembersUpdated carries the freshly merged member list.
type MembersUpdated struct {
	Members []session.MemberView
}

// RemovedByHost fires at most once per controller instance, and only
// after this client has seen its own membership entry at least once.
type RemovedByHost struct{}

// NameChangeRequested fires when the creator flags this client's name.
// It re-fires only after the flag has been cleared and raised again.
type NameChangeRequested struct{}

// VoteProgress carries the recomputed ballot tallies.
type VoteProgress struct {
	Submitted int
	Remaining int
}

// RankingsUpdated carries both reveal rankings.
type RankingsUpdated struct {
	MVP    []session.RankEntry
	Losers []session.RankEntry
}

func (PhaseChanged) isScreenEvent()        {}
func (MembersUpdated) isScreenEvent()      {}
func (RemovedByHost) isScreenEvent()       {}
func (NameChangeRequested) isScreenEvent() {}
func (VoteProgress) isScreenEvent()        {}
func (RankingsUpdated) isScreenEvent()     {}
