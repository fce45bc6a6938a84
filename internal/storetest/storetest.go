// Package storetest provides an in-memory stand-in for the remote
// store, mirroring its semantics: one JSON value per path, subtree
// reads assembled from child keys, idempotent deletes, push keys
// generated server-side.
package storetest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

type state struct {
	mu      sync.Mutex
	data    map[string]json.RawMessage
	nextKey int
	ops     []string
	fail    map[string]error
}

// Store is one identity's handle on the shared data. As derives
// handles for other identities over the same data.
type Store struct {
	uid string
	*state
}

func New(userID string) *Store {
	return &Store{
		uid: userID,
		state: &state{
			data: map[string]json.RawMessage{},
			fail: map[string]error{},
		},
	}
}

// As returns a handle for another identity sharing the same data.
func (s *Store) As(userID string) *Store {
	return &Store{uid: userID, state: s.state}
}

func (s *Store) UserID() string { return s.uid }

// FailOn makes matching calls fail. op is one of read, write, update,
// delete, push.
func (s *Store) FailOn(op, path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op+" "+path] = err
}

// Ops returns every mutation performed, in order, for asserting
// multi-step operations run their steps in the right sequence.
func (s *Store) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

// Has reports whether any value exists at or under path.
func (s *Store) Has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[path]; ok {
		return true
	}
	prefix := path + "/"
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Seed stores a value directly, bypassing op recording.
func (s *Store) Seed(path string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[path] = raw
}

func (s *state) check(op, path string) error {
	if err, ok := s.fail[op+" "+path]; ok {
		return err
	}
	return nil
}

// subtree assembles the nested value under prefix from leaf keys.
func (s *state) subtree(prefix string) (json.RawMessage, bool) {
	tree := map[string]interface{}{}
	found := false
	for key, raw := range s.data {
		if !strings.HasPrefix(key, prefix+"/") {
			continue
		}
		found = true
		segments := strings.Split(strings.TrimPrefix(key, prefix+"/"), "/")
		node := tree
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg].(map[string]interface{})
			if !ok {
				child = map[string]interface{}{}
				// a stored leaf can also be a parent of deeper keys
				// (a feature request and its likes); fold it in
				if leaf, isLeaf := node[seg].(json.RawMessage); isLeaf {
					_ = json.Unmarshal(leaf, &child)
				}
				node[seg] = child
			}
			node = child
		}
		last := segments[len(segments)-1]
		if child, ok := node[last].(map[string]interface{}); ok {
			fields := map[string]interface{}{}
			if json.Unmarshal(raw, &fields) == nil {
				for k, v := range fields {
					if _, exists := child[k]; !exists {
						child[k] = v
					}
				}
			}
		} else {
			node[last] = raw
		}
	}
	if !found {
		return nil, false
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		panic(err)
	}
	return raw, true
}

func (s *Store) Read(ctx context.Context, path string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("read", path); err != nil {
		return false, err
	}

	raw, ok := s.data[path]
	if !ok {
		if raw, ok = s.subtree(path); !ok {
			return false, nil
		}
	} else if sub, deep := s.subtree(path); deep {
		// merge children written under a stored leaf (feature request
		// likes) into the value
		var base map[string]json.RawMessage
		if json.Unmarshal(raw, &base) == nil {
			var extra map[string]json.RawMessage
			if json.Unmarshal(sub, &extra) == nil {
				for k, v := range extra {
					base[k] = v
				}
				if merged, err := json.Marshal(base); err == nil {
					raw = merged
				}
			}
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Write(ctx context.Context, path string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("write", path); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[path] = raw
	s.ops = append(s.ops, "write "+path)
	return nil
}

func (s *Store) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("update", path); err != nil {
		return err
	}
	raw, ok := s.data[path]
	if !ok {
		return fmt.Errorf("update %s: not found", path)
	}
	value := map[string]interface{}{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}
	for k, v := range fields {
		value[k] = v
	}
	merged, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[path] = merged
	s.ops = append(s.ops, "update "+path)
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("delete", path); err != nil {
		return err
	}
	delete(s.data, path)
	prefix := path + "/"
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			delete(s.data, key)
		}
	}
	s.ops = append(s.ops, "delete "+path)
	return nil
}

func (s *Store) Push(ctx context.Context, path string, value interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("push", path); err != nil {
		return "", err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	s.nextKey++
	key := fmt.Sprintf("key%d", s.nextKey)
	s.data[path+"/"+key] = raw
	s.ops = append(s.ops, "push "+path)
	return key, nil
}
