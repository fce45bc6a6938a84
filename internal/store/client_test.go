package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/v1/lobbies/abc" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "waiting"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "alice", "tok")
	var out map[string]string
	found, err := c.Read(context.Background(), "lobbies/abc", &out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !found || out["status"] != "waiting" {
		t.Errorf("found=%v out=%v", found, out)
	}
}

func TestClientReadMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "alice", "tok")
	out := map[string]string{"sentinel": "untouched"}
	found, err := c.Read(context.Background(), "lobbies/missing", &out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if found {
		t.Error("missing key reported as found")
	}
	if out["sentinel"] != "untouched" {
		t.Error("out modified for a missing key")
	}
}

func TestClientWriteAndUpdate(t *testing.T) {
	var gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		json.NewEncoder(w).Encode(map[string]string{"ok": "1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "alice", "tok")
	if err := c.Write(context.Background(), "lobbyCodes/123456", "abc"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if gotMethod != http.MethodPut || gotBody != `"abc"` {
		t.Errorf("write sent %s %s", gotMethod, gotBody)
	}

	if err := c.Update(context.Background(), "lobbies/abc", map[string]interface{}{"status": "voting"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotMethod != http.MethodPatch || gotBody != `{"status":"voting"}` {
		t.Errorf("update sent %s %s", gotMethod, gotBody)
	}
}

func TestClientPush(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"name": "generated-id"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "alice", "tok")
	key, err := c.Push(context.Background(), "lobbies", map[string]string{"creatorId": "alice"})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if key != "generated-id" {
		t.Errorf("key = %s", key)
	}
}

func TestClientDeleteIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "alice", "tok")
	if err := c.Delete(context.Background(), "lobbies/gone"); err != nil {
		t.Errorf("deleting an absent key should succeed, got %v", err)
	}
}

func TestClientErrorMapping(t *testing.T) {
	status := http.StatusForbidden
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "alice", "tok")
	if err := c.Write(context.Background(), "lobbies/abc", "x"); !errors.Is(err, ErrDenied) {
		t.Errorf("403 err = %v, want ErrDenied", err)
	}

	status = http.StatusConflict
	if err := c.Write(context.Background(), "votes/abc/alice", "x"); !errors.Is(err, ErrConflict) {
		t.Errorf("409 err = %v, want ErrConflict", err)
	}
}

func TestClientRequiresIdentity(t *testing.T) {
	c := NewClient("http://localhost:0", "", "")
	var out interface{}
	if _, err := c.Read(context.Background(), "lobbies/abc", &out); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}
