package services

import (
	"errors"
	"testing"

	"github.com/Vandammecasper/voting-app/internal/models"
)

func TestFeatureCreateAndList(t *testing.T) {
	db := setupDB(t)
	s := NewFeatureService(db)

	fr, err := s.Create("alice", models.FeatureRequest{Title: "Dark mode", UserName: "Alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fr.ID == "" || fr.UserID != "alice" {
		t.Errorf("request = %+v", fr)
	}

	if _, err := s.Create("alice", models.FeatureRequest{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("blank title err = %v, want ErrInvalid", err)
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, ok := all[fr.ID]; !ok {
		t.Errorf("request missing from list: %v", all)
	}
}

func TestFeaturePatchOwnerOnly(t *testing.T) {
	db := setupDB(t)
	s := NewFeatureService(db)
	fr, _ := s.Create("alice", models.FeatureRequest{Title: "Dark mode"})

	if _, err := s.Patch("bob", fr.ID, map[string]interface{}{"title": "Mine now"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign patch err = %v, want ErrForbidden", err)
	}
	got, err := s.Patch("alice", fr.ID, map[string]interface{}{"title": "Dark theme", "description": "everywhere"})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got.Title != "Dark theme" || got.Description != "everywhere" {
		t.Errorf("after patch: %+v", got)
	}
}

func TestFeatureLikes(t *testing.T) {
	db := setupDB(t)
	s := NewFeatureService(db)
	fr, _ := s.Create("alice", models.FeatureRequest{Title: "Dark mode"})

	if err := s.Like("bob", fr.ID, "alice"); !errors.Is(err, ErrForbidden) {
		t.Errorf("like for someone else err = %v, want ErrForbidden", err)
	}
	if err := s.Like("bob", "no-such-request", "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("like of unknown request err = %v, want ErrNotFound", err)
	}

	if err := s.Like("bob", fr.ID, "bob"); err != nil {
		t.Fatalf("Like: %v", err)
	}
	// liking twice stays a single like
	if err := s.Like("bob", fr.ID, "bob"); err != nil {
		t.Fatalf("second Like: %v", err)
	}
	got, _ := s.Get(fr.ID)
	if len(got.Likes) != 1 || !got.Likes["bob"] {
		t.Errorf("likes = %v", got.Likes)
	}

	if err := s.Unlike("bob", fr.ID, "bob"); err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	got, _ = s.Get(fr.ID)
	if len(got.Likes) != 0 {
		t.Errorf("likes after unlike = %v", got.Likes)
	}
}

func TestFeatureDeleteCascadesLikes(t *testing.T) {
	db := setupDB(t)
	s := NewFeatureService(db)
	fr, _ := s.Create("alice", models.FeatureRequest{Title: "Dark mode"})
	s.Like("bob", fr.ID, "bob")

	if err := s.Delete("bob", fr.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign delete err = %v, want ErrForbidden", err)
	}
	if err := s.Delete("alice", fr.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(fr.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted request err = %v, want ErrNotFound", err)
	}

	var likes int64
	db.Model(&models.FeatureLike{}).Where("request_id = ?", fr.ID).Count(&likes)
	if likes != 0 {
		t.Errorf("likes left behind: %d", likes)
	}
}

func TestAuthTokenRoundTrip(t *testing.T) {
	db := setupDB(t)
	s := NewAuthService(db, "test-secret")

	uid, token, err := s.SignInAnonymously()
	if err != nil {
		t.Fatalf("SignInAnonymously: %v", err)
	}
	if uid == "" || token == "" {
		t.Fatalf("uid=%q token=%q", uid, token)
	}

	got, err := s.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if got != uid {
		t.Errorf("validated uid = %s, want %s", got, uid)
	}

	if _, err := s.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}
	other := NewAuthService(db, "different-secret")
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}
