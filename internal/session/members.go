package session

import (
	"sort"
	"time"
)

// MemberView is one row of the waiting-room member list.
type MemberView struct {
	UserID              string
	Name                string
	IsCreator           bool
	Offline             bool
	NameChangeRequested bool
	JoinedAt            time.Time
}

// MemberList merges the participant subtree with the lobby's creator
// fields. The creator is always present and pinned first, marked
// offline until their own participant write has landed; everyone else
// is ordered newest-joined-first so late arrivals are visible at a
// glance.
func MemberList(lobby *Lobby, participants map[string]Participant) []MemberView {
	out := make([]MemberView, 0, len(participants)+1)

	creator := MemberView{
		UserID:    lobby.CreatorID,
		Name:      lobby.CreatorName,
		IsCreator: true,
		Offline:   true,
	}
	if p, ok := participants[lobby.CreatorID]; ok {
		creator.Name = p.Name
		creator.Offline = false
		creator.NameChangeRequested = p.NameChangeRequested
		creator.JoinedAt = p.JoinedAt
	}
	out = append(out, creator)

	rest := make([]MemberView, 0, len(participants))
	for uid, p := range participants {
		if uid == lobby.CreatorID {
			continue
		}
		rest = append(rest, MemberView{
			UserID:              uid,
			Name:                p.Name,
			NameChangeRequested: p.NameChangeRequested,
			JoinedAt:            p.JoinedAt,
		})
	}
	sort.Slice(rest, func(i, j int) bool {
		if !rest[i].JoinedAt.Equal(rest[j].JoinedAt) {
			return rest[i].JoinedAt.After(rest[j].JoinedAt)
		}
		return rest[i].UserID < rest[j].UserID
	})
	return append(out, rest...)
}
