// Package screens holds the per-phase controllers that sit between the
// polled store state and the UI layer. Each controller owns its own
// pollers and its own state; opening a screen twice gives two fully
// independent instances.
package screens

import (
	"context"
	"encoding/json"

	"github.com/Vandammecasper/voting-app/internal/poll"
	"github.com/Vandammecasper/voting-app/internal/session"
)

const eventBuffer = 16

// readPath adapts a store read of one path into a poll.ReadFunc.
func readPath(st session.Store, path string) poll.ReadFunc {
	return func(ctx context.Context) (json.RawMessage, bool, error) {
		var raw json.RawMessage
		found, err := st.Read(ctx, path, &raw)
		if err != nil {
			return nil, false, err
		}
		return raw, found, nil
	}
}

// emit delivers an event without ever blocking a poller goroutine.
func emit(ch chan Event, ev Event) {
	select {
	case ch <- ev:
	default:
	}
}

func decodeLobby(snap poll.Snapshot) (*session.Lobby, bool) {
	if !snap.Exists {
		return nil, false
	}
	var lobby session.Lobby
	if err := json.Unmarshal(snap.Data, &lobby); err != nil {
		return nil, false
	}
	return &lobby, true
}

func decodeParticipants(snap poll.Snapshot) map[string]session.Participant {
	participants := map[string]session.Participant{}
	if snap.Exists {
		_ = json.Unmarshal(snap.Data, &participants)
	}
	return participants
}

func decodeVotes(snap poll.Snapshot) map[string]session.Vote {
	votes := map[string]session.Vote{}
	if snap.Exists {
		_ = json.Unmarshal(snap.Data, &votes)
	}
	return votes
}
