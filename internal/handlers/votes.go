package handlers

import (
	"net/http"

	"github.com/Vandammecasper/voting-app/internal/models"
	"github.com/Vandammecasper/voting-app/internal/services"
	"github.com/Vandammecasper/voting-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *services.VoteService
	hub   *ws.Hub
}

func NewVoteHandler(votes *services.VoteService, hub *ws.Hub) *VoteHandler {
	return &VoteHandler{votes: votes, hub: hub}
}

// List handles GET /v1/votes/:lobbyId, the subtree as a map keyed by
// voter id. An empty subtree reads as a missing key.
func (h *VoteHandler) List(c *gin.Context) {
	votes, err := h.votes.List(c.Param("lobbyId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(votes) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	out := make(map[string]models.Vote, len(votes))
	for _, v := range votes {
		out[v.UserID] = v
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/votes/:lobbyId/:userId
func (h *VoteHandler) Get(c *gin.Context) {
	vote, err := h.votes.Get(c.Param("lobbyId"), c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, vote)
}

// Put handles PUT /v1/votes/:lobbyId/:userId. Votes are write-once; a
// second write for the same voter returns 409.
func (h *VoteHandler) Put(c *gin.Context) {
	var vote models.Vote
	if err := c.ShouldBindJSON(&vote); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	lobbyID, userID := c.Param("lobbyId"), c.Param("userId")
	stored, err := h.votes.Put(callerID(c), lobbyID, userID, vote)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("votes/"+lobbyID+"/"+userID, stored)
	c.JSON(http.StatusOK, stored)
}

// Delete handles DELETE /v1/votes/:lobbyId/:userId
func (h *VoteHandler) Delete(c *gin.Context) {
	lobbyID, userID := c.Param("lobbyId"), c.Param("userId")
	if err := h.votes.Delete(callerID(c), lobbyID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("votes/"+lobbyID+"/"+userID, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}

// DeleteAll handles DELETE /v1/votes/:lobbyId
func (h *VoteHandler) DeleteAll(c *gin.Context) {
	lobbyID := c.Param("lobbyId")
	if err := h.votes.DeleteAll(callerID(c), lobbyID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("votes/"+lobbyID, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}
