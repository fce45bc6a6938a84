package handlers

import (
	"net/http"

	"github.com/Vandammecasper/voting-app/internal/models"
	"github.com/Vandammecasper/voting-app/internal/services"
	"github.com/Vandammecasper/voting-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	membership *services.MembershipService
	hub        *ws.Hub
}

func NewParticipantHandler(membership *services.MembershipService, hub *ws.Hub) *ParticipantHandler {
	return &ParticipantHandler{membership: membership, hub: hub}
}

// List handles GET /v1/participants/:lobbyId and returns the subtree as
// a map keyed by user id. An empty subtree reads as a missing key.
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.membership.List(c.Param("lobbyId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(participants) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	out := make(map[string]models.Participant, len(participants))
	for _, p := range participants {
		out[p.UserID] = p
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/participants/:lobbyId/:userId
func (h *ParticipantHandler) Get(c *gin.Context) {
	participant, err := h.membership.Get(c.Param("lobbyId"), c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

// Put handles PUT /v1/participants/:lobbyId/:userId
func (h *ParticipantHandler) Put(c *gin.Context) {
	var participant models.Participant
	if err := c.ShouldBindJSON(&participant); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	lobbyID, userID := c.Param("lobbyId"), c.Param("userId")
	stored, err := h.membership.Put(callerID(c), lobbyID, userID, participant)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("participants/"+lobbyID+"/"+userID, stored)
	c.JSON(http.StatusOK, stored)
}

// Patch handles PATCH /v1/participants/:lobbyId/:userId
func (h *ParticipantHandler) Patch(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	lobbyID, userID := c.Param("lobbyId"), c.Param("userId")
	stored, err := h.membership.Patch(callerID(c), lobbyID, userID, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("participants/"+lobbyID+"/"+userID, stored)
	c.JSON(http.StatusOK, stored)
}

// Delete handles DELETE /v1/participants/:lobbyId/:userId
func (h *ParticipantHandler) Delete(c *gin.Context) {
	lobbyID, userID := c.Param("lobbyId"), c.Param("userId")
	if err := h.membership.Delete(callerID(c), lobbyID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("participants/"+lobbyID+"/"+userID, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}

// DeleteAll handles DELETE /v1/participants/:lobbyId
func (h *ParticipantHandler) DeleteAll(c *gin.Context) {
	lobbyID := c.Param("lobbyId")
	if err := h.membership.DeleteAll(callerID(c), lobbyID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("participants/"+lobbyID, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}
