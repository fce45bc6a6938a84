package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Errors surfaced by the client. Anything else is a transport failure;
// callers treat those as "no data" and retry on the next poll.
var (
	ErrUnauthenticated = errors.New("store: no authenticated identity")
	ErrDenied          = errors.New("store: permission denied")
	ErrConflict        = errors.New("store: conflict")
)

// Client is the thin wrapper over the sync store's REST surface: one
// value per path, no multi-path atomicity, every call an independent
// authenticated round trip.
type Client struct {
	baseURL    string
	userID     string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, userID, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// UserID returns the opaque identity the client's token is tied to.
func (c *Client) UserID() string { return c.userID }

// SignInAnonymously mints a fresh identity on the server and returns a
// client bound to it. The caller persists the uid and token; losing
// them means becoming a new user.
func SignInAnonymously(ctx context.Context, baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/auth/anonymous", nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("store: sign-in: status %d", resp.StatusCode)
	}

	var result struct {
		UID   string `json:"uid"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode sign-in: %w", err)
	}
	if result.UID == "" || result.Token == "" {
		return nil, errors.New("store: sign-in returned no identity")
	}
	return NewClient(baseURL, result.UID, result.Token), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (json.RawMessage, int, error) {
	if c.token == "" || c.userID == "" {
		return nil, 0, ErrUnauthenticated
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal: %w", err)
		}
		body = bytes.NewReader(data)
	}

	url := c.baseURL + "/v1/" + strings.Trim(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read: %w", err)
	}
	return data, resp.StatusCode, nil
}

func statusErr(op, path string, status int) error {
	switch status {
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", op, path, ErrDenied)
	case http.StatusConflict:
		return fmt.Errorf("%s %s: %w", op, path, ErrConflict)
	default:
		return fmt.Errorf("store: %s %s: status %d", op, path, status)
	}
}

// Read fetches the value at path into out. A missing key reports
// (false, nil); out is left untouched in that case.
func (c *Client) Read(ctx context.Context, path string, out interface{}) (bool, error) {
	data, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}
	switch status {
	case http.StatusOK:
		if err := json.Unmarshal(data, out); err != nil {
			return false, fmt.Errorf("unmarshal %s: %w", path, err)
		}
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, statusErr("read", path, status)
	}
}

// Write overwrites the full value at path.
func (c *Client) Write(ctx context.Context, path string, value interface{}) error {
	_, status, err := c.do(ctx, http.MethodPut, path, value)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return statusErr("write", path, status)
	}
	return nil
}

// Update merges the given top-level fields into the value at path
// without touching siblings.
func (c *Client) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	_, status, err := c.do(ctx, http.MethodPatch, path, fields)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return statusErr("update", path, status)
	}
	return nil
}

// Delete removes the value (or subtree) at path. Deleting a key that is
// already gone succeeds, which keeps multi-step cleanups re-invocable.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, status, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNotFound {
		return statusErr("delete", path, status)
	}
	return nil
}

// Push appends value under a new store-generated key beneath path and
// returns that key.
func (c *Client) Push(ctx context.Context, path string, value interface{}) (string, error) {
	data, status, err := c.do(ctx, http.MethodPost, path, value)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", statusErr("push", path, status)
	}

	var result struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("unmarshal push key: %w", err)
	}
	if result.Name == "" {
		return "", fmt.Errorf("store: push %s: empty key", path)
	}
	return result.Name, nil
}
