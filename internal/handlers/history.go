package handlers

import (
	"net/http"

	"github.com/Vandammecasper/voting-app/internal/models"
	"github.com/Vandammecasper/voting-app/internal/services"
	"github.com/Vandammecasper/voting-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	history *services.HistoryService
	hub     *ws.Hub
}

func NewHistoryHandler(history *services.HistoryService, hub *ws.Hub) *HistoryHandler {
	return &HistoryHandler{history: history, hub: hub}
}

// List handles GET /v1/userHistory/:userId
func (h *HistoryHandler) List(c *gin.Context) {
	entries, err := h.history.List(callerID(c), c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(entries) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	out := make(map[string]models.HistoryEntry, len(entries))
	for _, e := range entries {
		out[e.LobbyID] = e
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/userHistory/:userId/:lobbyId
func (h *HistoryHandler) Get(c *gin.Context) {
	entry, err := h.history.Get(callerID(c), c.Param("userId"), c.Param("lobbyId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Put handles PUT /v1/userHistory/:userId/:lobbyId
func (h *HistoryHandler) Put(c *gin.Context) {
	var entry models.HistoryEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID, lobbyID := c.Param("userId"), c.Param("lobbyId")
	stored, err := h.history.Put(callerID(c), userID, lobbyID, entry)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("userHistory/"+userID+"/"+lobbyID, stored)
	c.JSON(http.StatusOK, stored)
}

// Delete handles DELETE /v1/userHistory/:userId/:lobbyId
func (h *HistoryHandler) Delete(c *gin.Context) {
	userID, lobbyID := c.Param("userId"), c.Param("lobbyId")
	if err := h.history.Delete(callerID(c), userID, lobbyID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("userHistory/"+userID+"/"+lobbyID, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}
