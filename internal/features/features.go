// Package features is the client side of the feature-request board: a
// flat collection of suggestions with per-user like toggles, sharing
// the same store primitives as the session protocol.
package features

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("feature request not found")

// Store is the slice of the remote store this package needs.
type Store interface {
	Read(ctx context.Context, path string, out interface{}) (bool, error)
	Write(ctx context.Context, path string, value interface{}) error
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	Delete(ctx context.Context, path string) error
	Push(ctx context.Context, path string, value interface{}) (string, error)
	UserID() string
}

// Request is one feature request at featureRequests/{requestId}. Likes
// holds the ids of users who liked it.
type Request struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	UserID      string          `json:"userId,omitempty"`
	UserName    string          `json:"userName,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Likes       map[string]bool `json:"likes,omitempty"`
}

// LikeCount counts the likes on a request.
func (r Request) LikeCount() int { return len(r.Likes) }

// LikedBy reports whether userID has liked the request.
func (r Request) LikedBy(userID string) bool { return r.Likes[userID] }

type Client struct {
	store Store
	now   func() time.Time
}

func NewClient(store Store) *Client {
	return &Client{store: store, now: time.Now}
}

func requestPath(requestID string) string {
	return "featureRequests/" + requestID
}

func likePath(requestID, userID string) string {
	return "featureRequests/" + requestID + "/likes/" + userID
}

// List fetches every feature request, keyed by id. An empty board is
// an empty map.
func (c *Client) List(ctx context.Context) (map[string]Request, error) {
	requests := map[string]Request{}
	if _, err := c.store.Read(ctx, "featureRequests", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Get fetches one request.
func (c *Client) Get(ctx context.Context, requestID string) (*Request, error) {
	var req Request
	found, err := c.store.Read(ctx, requestPath(requestID), &req)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &req, nil
}

// Create pushes a new request under a store-generated id and returns
// that id.
func (c *Client) Create(ctx context.Context, title, description, userName string) (string, error) {
	req := Request{
		Title:       title,
		Description: description,
		UserID:      c.store.UserID(),
		UserName:    userName,
		CreatedAt:   c.now(),
	}
	return c.store.Push(ctx, "featureRequests", req)
}

// Edit updates the title and description of the caller's own request.
func (c *Client) Edit(ctx context.Context, requestID, title, description string) error {
	return c.store.Update(ctx, requestPath(requestID), map[string]interface{}{
		"title":       title,
		"description": description,
	})
}

// Delete removes a request and its likes.
func (c *Client) Delete(ctx context.Context, requestID string) error {
	return c.store.Delete(ctx, requestPath(requestID))
}

// ToggleLike flips the caller's like on a request and returns the new
// state. The current state comes from a fresh read, so two rapid
// toggles on the same device settle on the later one.
func (c *Client) ToggleLike(ctx context.Context, requestID string) (bool, error) {
	req, err := c.Get(ctx, requestID)
	if err != nil {
		return false, err
	}

	uid := c.store.UserID()
	if req.LikedBy(uid) {
		if err := c.store.Delete(ctx, likePath(requestID, uid)); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := c.store.Write(ctx, likePath(requestID, uid), true); err != nil {
		return false, err
	}
	return true, nil
}
