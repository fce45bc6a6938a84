package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/Vandammecasper/voting-app/internal/services"
	"github.com/Vandammecasper/voting-app/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WatchHandler struct {
	authService *services.AuthService
	hub         *ws.Hub
}

func NewWatchHandler(authService *services.AuthService, hub *ws.Hub) *WatchHandler {
	return &WatchHandler{authService: authService, hub: hub}
}

// watchToken extracts the bearer token from a watch request. Preferred
// transport is the Sec-WebSocket-Protocol header as the pair
// "bearer, <token>"; the token query parameter stays as a fallback for
// clients that cannot set handshake headers.
func watchToken(c *gin.Context) string {
	protocols := websocket.Subprotocols(c.Request)
	for i, p := range protocols {
		if p == "bearer" && i+1 < len(protocols) {
			return protocols[i+1]
		}
	}
	return c.Query("token")
}

// canWatch applies the same path ownership rules as reads: the
// userHistory tree is private to its user, every other tree is readable
// by any signed-in user.
func canWatch(uid, path string) bool {
	segments := strings.Split(path, "/")
	if segments[0] == "userHistory" {
		return len(segments) > 1 && segments[1] == uid
	}
	return true
}

// HandleWatch handles GET /v1/watch?path=... and streams change
// notifications for that path until the client disconnects. Watches are
// authorized like reads; a path the caller could not GET cannot be
// watched either.
func (h *WatchHandler) HandleWatch(c *gin.Context) {
	uid, err := h.authService.ValidateToken(watchToken(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	}

	path := strings.Trim(c.Query("path"), "/")
	if path == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "path required"})
		return
	}
	if !canWatch(uid, path) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
		return
	}

	var responseHeader http.Header
	for _, p := range websocket.Subprotocols(c.Request) {
		if p == "bearer" {
			responseHeader = http.Header{"Sec-WebSocket-Protocol": {"bearer"}}
			break
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, responseHeader)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddWatch(path, conn)
	defer h.hub.RemoveWatch(path, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
