package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// Change is one notification from the store's change feed. Data is nil
// when the value at Path was deleted.
type Change struct {
	Type string          `json:"type"`
	Path string          `json:"path"`
	Data json.RawMessage `json:"data"`
}

// Subscribe opens the change feed for path and invokes onChange for
// every notification until ctx is cancelled. It is the push alternative
// to polling; the protocol only needs changes to be observed
// eventually, so either primitive works.
func (c *Client) Subscribe(ctx context.Context, path string, onChange func(Change)) error {
	if c.token == "" || c.userID == "" {
		return ErrUnauthenticated
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/watch"
	q := u.Query()
	q.Set("path", strings.Trim(path, "/"))
	u.RawQuery = q.Encode()

	// the token rides in the subprotocol list, not the query, so it
	// never lands in server access logs
	dialer := websocket.Dialer{Subprotocols: []string{"bearer", c.token}}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var change Change
		if err := conn.ReadJSON(&change); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		onChange(change)
	}
}
