package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestSubscribeReceivesChanges(t *testing.T) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/watch" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("path"); got != "lobbies/abc" {
			t.Errorf("watch path = %q", got)
		}
		// the token must arrive in the subprotocol list, never the query
		if got := r.URL.Query().Get("token"); got != "" {
			t.Errorf("token leaked into the query: %q", got)
		}
		protocols := websocket.Subprotocols(r)
		if len(protocols) != 2 || protocols[0] != "bearer" || protocols[1] != "tok" {
			t.Errorf("subprotocols = %v", protocols)
		}

		conn, err := upgrader.Upgrade(w, r, http.Header{"Sec-WebSocket-Protocol": {"bearer"}})
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		conn.WriteJSON(Change{Type: "change", Path: "lobbies/abc", Data: []byte(`{"status":"voting"}`)})
		conn.WriteJSON(Change{Type: "change", Path: "lobbies/abc", Data: nil})

		// hold the connection until the client hangs up
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewClient(srv.URL, "alice", "tok")
	var got []Change
	err := c.Subscribe(ctx, "lobbies/abc", func(change Change) {
		got = append(got, change)
		if len(got) == 2 {
			cancel()
		}
	})
	if err != nil {
		t.Fatalf("Subscribe after cancel should return nil, got %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("changes = %d, want 2", len(got))
	}
	if got[0].Path != "lobbies/abc" || string(got[0].Data) != `{"status":"voting"}` {
		t.Errorf("first change = %+v", got[0])
	}
	if got[1].Data != nil {
		t.Errorf("deletion change carries data: %s", got[1].Data)
	}
}

func TestSubscribeServerClose(t *testing.T) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, http.Header{"Sec-WebSocket-Protocol": {"bearer"}})
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := NewClient(srv.URL, "alice", "tok")
	err := c.Subscribe(ctx, "lobbies/abc", func(Change) {})
	if err == nil {
		t.Fatal("server-side close should surface as an error")
	}
	if !strings.Contains(err.Error(), "read") {
		t.Errorf("err = %v", err)
	}
}

func TestSubscribeRequiresIdentity(t *testing.T) {
	c := NewClient("http://localhost:0", "", "")
	err := c.Subscribe(context.Background(), "lobbies/abc", func(Change) {})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}
