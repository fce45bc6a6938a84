package session

import (
	"testing"
	"time"
)

func TestMemberListSynthesizesCreator(t *testing.T) {
	lobby := &Lobby{CreatorID: "alice", CreatorName: "Alice"}

	members := MemberList(lobby, map[string]Participant{})
	if len(members) != 1 {
		t.Fatalf("members = %d, want 1", len(members))
	}
	creator := members[0]
	if creator.UserID != "alice" || creator.Name != "Alice" {
		t.Errorf("creator = %+v", creator)
	}
	if !creator.IsCreator || !creator.Offline {
		t.Errorf("synthesized creator should be pinned and offline: %+v", creator)
	}
}

func TestMemberListOrdering(t *testing.T) {
	lobby := &Lobby{CreatorID: "alice", CreatorName: "Alice"}
	participants := map[string]Participant{
		"alice": {Name: "Alice", IsCreator: true, JoinedAt: at(1)},
		"bob":   {Name: "Bob", JoinedAt: at(2)},
		"carol": {Name: "Carol", JoinedAt: at(3)},
	}

	members := MemberList(lobby, participants)
	if len(members) != 3 {
		t.Fatalf("members = %d, want 3", len(members))
	}
	if members[0].UserID != "alice" || members[0].Offline {
		t.Errorf("creator not pinned first and online: %+v", members[0])
	}
	// newest joiners first after the creator
	if members[1].UserID != "carol" || members[2].UserID != "bob" {
		t.Errorf("order = %s, %s; want carol, bob", members[1].UserID, members[2].UserID)
	}
}

func TestMemberListTiedJoinTimes(t *testing.T) {
	lobby := &Lobby{CreatorID: "alice", CreatorName: "Alice"}
	same := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	participants := map[string]Participant{
		"bob":   {Name: "Bob", JoinedAt: same},
		"carol": {Name: "Carol", JoinedAt: same},
		"dave":  {Name: "Dave", JoinedAt: same},
	}

	first := MemberList(lobby, participants)
	for i := 0; i < 10; i++ {
		again := MemberList(lobby, participants)
		for j := range first {
			if again[j].UserID != first[j].UserID {
				t.Fatalf("unstable order at %d: %s vs %s", j, again[j].UserID, first[j].UserID)
			}
		}
	}
}
