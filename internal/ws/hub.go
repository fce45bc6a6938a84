package ws

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// ChangeMessage is sent to watchers after every successful mutation.
// Data is nil for deletions.
type ChangeMessage struct {
	Type string      `json:"type"`
	Path string      `json:"path"`
	Data interface{} `json:"data"`
}

// Hub fans change notifications out to websocket watchers. Watches are
// keyed by path; a watcher hears about changes at its path, below it,
// and at any ancestor (a subtree delete covers its children).
type Hub struct {
	mu      sync.RWMutex
	watches map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		watches: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddWatch(path string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watches[path] == nil {
		h.watches[path] = make(map[*websocket.Conn]bool)
	}
	h.watches[path][conn] = true
	log.Printf("ws: watch added on %s (total: %d)", path, len(h.watches[path]))
}

func (h *Hub) RemoveWatch(path string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.watches[path]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.watches, path)
		}
		log.Printf("ws: watch removed on %s", path)
	}
}

func covers(topic, path string) bool {
	return topic == path ||
		strings.HasPrefix(path, topic+"/") ||
		strings.HasPrefix(topic, path+"/")
}

// Publish notifies every watcher whose topic covers the changed path.
// Takes the write lock because failed connections are dropped inline.
func (h *Hub) Publish(path string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg, err := json.Marshal(ChangeMessage{Type: "change", Path: path, Data: data})
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for topic, conns := range h.watches {
		if !covers(topic, path) {
			continue
		}
		for conn := range conns {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("ws: write error: %v", err)
				conn.Close()
				delete(conns, conn)
			}
		}
	}
}
