package screens

import (
	"context"
	"testing"
	"time"

	"github.com/Vandammecasper/voting-app/internal/session"
	"github.com/Vandammecasper/voting-app/internal/storetest"
)

func TestRankingScreenComputesRankings(t *testing.T) {
	ctx := context.Background()
	st := storetest.New("alice")
	seedLobby(st, "lob1", session.PhaseRanking)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st.Seed(session.VotePath("lob1", "alice"), session.Vote{MVPName: "Bob", LoserName: "Carol", SubmittedAt: base})
	st.Seed(session.VotePath("lob1", "bob"), session.Vote{MVPName: "Bob", LoserName: "Alice", SubmittedAt: base.Add(time.Second)})
	st.Seed(session.VotePath("lob1", "carol"), session.Vote{MVPName: "Alice", LoserName: "Alice", SubmittedAt: base.Add(2 * time.Second)})

	r := NewRankingScreen(st, "lob1", testInterval)
	r.Start(ctx)
	defer r.Close()

	ev := expectEvent(t, r.Events(), "rankings", func(ev Event) bool {
		ru, ok := ev.(RankingsUpdated)
		return ok && len(ru.MVP) > 0
	})
	ru := ev.(RankingsUpdated)
	if ru.MVP[0].Name != "Bob" || ru.MVP[0].Count != 2 {
		t.Errorf("top mvp = %+v", ru.MVP[0])
	}
	if ru.Losers[0].Name != "Alice" || ru.Losers[0].Count != 2 {
		t.Errorf("top loser = %+v", ru.Losers[0])
	}

	mvp, losers := r.Rankings()
	if len(mvp) != 2 || len(losers) != 2 {
		t.Errorf("rankings = %d/%d entries, want 2/2", len(mvp), len(losers))
	}
}

func TestRankingScreenEmptyVotes(t *testing.T) {
	ctx := context.Background()
	st := storetest.New("alice")
	seedLobby(st, "lob1", session.PhaseRanking)

	r := NewRankingScreen(st, "lob1", testInterval)
	r.Start(ctx)
	defer r.Close()

	expectEvent(t, r.Events(), "empty rankings", func(ev Event) bool {
		ru, ok := ev.(RankingsUpdated)
		return ok && len(ru.MVP) == 0 && len(ru.Losers) == 0
	})
}

func TestRankingScreenPhaseChange(t *testing.T) {
	ctx := context.Background()
	st := storetest.New("bob")
	seedLobby(st, "lob1", session.PhaseRanking)

	r := NewRankingScreen(st, "lob1", testInterval)
	r.Start(ctx)
	defer r.Close()

	if err := st.As("alice").Update(ctx, session.LobbyPath("lob1"), map[string]interface{}{"status": "completed"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	ev := expectEvent(t, r.Events(), "phase change", func(ev Event) bool {
		_, ok := ev.(PhaseChanged)
		return ok
	})
	if got := ev.(PhaseChanged).Phase; got != session.PhaseCompleted {
		t.Errorf("phase = %s, want completed", got)
	}
}
