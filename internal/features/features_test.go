package features

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Vandammecasper/voting-app/internal/storetest"
)

func testClient(st *storetest.Store) *Client {
	c := NewClient(st)
	c.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	st := storetest.New("alice")
	c := testClient(st)

	id, err := c.Create(ctx, "Dark mode", "please", "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	req, ok := all[id]
	if !ok {
		t.Fatalf("request %s missing from list", id)
	}
	if req.Title != "Dark mode" || req.UserID != "alice" || req.UserName != "Alice" {
		t.Errorf("request = %+v", req)
	}
	if req.CreatedAt.IsZero() {
		t.Error("createdAt not stamped")
	}
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	c := testClient(storetest.New("alice"))

	if _, err := c.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	st := storetest.New("alice")
	c := testClient(st)
	id, err := c.Create(ctx, "Dark mode", "", "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bob := testClient(st.As("bob"))

	liked, err := bob.ToggleLike(ctx, id)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !liked {
		t.Fatal("first toggle should like")
	}
	req, _ := bob.Get(ctx, id)
	if !req.LikedBy("bob") || req.LikeCount() != 1 {
		t.Errorf("after like: likes = %v", req.Likes)
	}

	liked, err = bob.ToggleLike(ctx, id)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if liked {
		t.Fatal("second toggle should unlike")
	}
	req, _ = bob.Get(ctx, id)
	if req.LikedBy("bob") || req.LikeCount() != 0 {
		t.Errorf("after unlike: likes = %v", req.Likes)
	}
}

func TestEditAndDelete(t *testing.T) {
	ctx := context.Background()
	st := storetest.New("alice")
	c := testClient(st)
	id, err := c.Create(ctx, "Dark mode", "old", "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := c.Edit(ctx, id, "Dark theme", "new"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	req, _ := c.Get(ctx, id)
	if req.Title != "Dark theme" || req.Description != "new" {
		t.Errorf("after edit: %+v", req)
	}

	if err := c.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted request still readable: %v", err)
	}
}
