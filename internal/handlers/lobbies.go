package handlers

import (
	"net/http"

	"github.com/Vandammecasper/voting-app/internal/models"
	"github.com/Vandammecasper/voting-app/internal/services"
	"github.com/Vandammecasper/voting-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type LobbyHandler struct {
	lobbies *services.LobbyService
	hub     *ws.Hub
}

func NewLobbyHandler(lobbies *services.LobbyService, hub *ws.Hub) *LobbyHandler {
	return &LobbyHandler{lobbies: lobbies, hub: hub}
}

// Push handles POST /v1/lobbies: store the value under a generated key
// and return that key.
func (h *LobbyHandler) Push(c *gin.Context) {
	var lobby models.Lobby
	if err := c.ShouldBindJSON(&lobby); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.lobbies.Create(callerID(c), lobby)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("lobbies/"+created.ID, created)
	c.JSON(http.StatusCreated, gin.H{"name": created.ID})
}

// Get handles GET /v1/lobbies/:id
func (h *LobbyHandler) Get(c *gin.Context) {
	lobby, err := h.lobbies.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lobby)
}

// Patch handles PATCH /v1/lobbies/:id
func (h *LobbyHandler) Patch(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	lobby, err := h.lobbies.Patch(callerID(c), c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("lobbies/"+lobby.ID, lobby)
	c.JSON(http.StatusOK, lobby)
}

// Delete handles DELETE /v1/lobbies/:id
func (h *LobbyHandler) Delete(c *gin.Context) {
	lobbyID := c.Param("id")
	if err := h.lobbies.Delete(callerID(c), lobbyID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("lobbies/"+lobbyID, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}

// GetCode handles GET /v1/lobbyCodes/:code. The value is the bare lobby
// id string.
func (h *LobbyHandler) GetCode(c *gin.Context) {
	lobbyID, err := h.lobbies.ResolveCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lobbyID)
}

// PutCode handles PUT /v1/lobbyCodes/:code
func (h *LobbyHandler) PutCode(c *gin.Context) {
	var lobbyID string
	if err := c.ShouldBindJSON(&lobbyID); err != nil || lobbyID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lobby id required"})
		return
	}

	code := c.Param("code")
	if err := h.lobbies.PutCode(callerID(c), code, lobbyID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("lobbyCodes/"+code, lobbyID)
	c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}

// DeleteCode handles DELETE /v1/lobbyCodes/:code
func (h *LobbyHandler) DeleteCode(c *gin.Context) {
	code := c.Param("code")
	if err := h.lobbies.DeleteCode(callerID(c), code); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("lobbyCodes/"+code, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}
