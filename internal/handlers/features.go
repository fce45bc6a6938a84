package handlers

import (
	"net/http"

	"github.com/Vandammecasper/voting-app/internal/models"
	"github.com/Vandammecasper/voting-app/internal/services"
	"github.com/Vandammecasper/voting-app/internal/ws"

	"github.com/gin-gonic/gin"
)

type FeatureHandler struct {
	features *services.FeatureService
	hub      *ws.Hub
}

func NewFeatureHandler(features *services.FeatureService, hub *ws.Hub) *FeatureHandler {
	return &FeatureHandler{features: features, hub: hub}
}

// List handles GET /v1/featureRequests
func (h *FeatureHandler) List(c *gin.Context) {
	requests, err := h.features.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(requests) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// Push handles POST /v1/featureRequests
func (h *FeatureHandler) Push(c *gin.Context) {
	var request models.FeatureRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.features.Create(callerID(c), request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("featureRequests/"+created.ID, created)
	c.JSON(http.StatusCreated, gin.H{"name": created.ID})
}

// Get handles GET /v1/featureRequests/:id
func (h *FeatureHandler) Get(c *gin.Context) {
	request, err := h.features.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// Patch handles PATCH /v1/featureRequests/:id
func (h *FeatureHandler) Patch(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	request, err := h.features.Patch(callerID(c), c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("featureRequests/"+request.ID, request)
	c.JSON(http.StatusOK, request)
}

// Delete handles DELETE /v1/featureRequests/:id
func (h *FeatureHandler) Delete(c *gin.Context) {
	requestID := c.Param("id")
	if err := h.features.Delete(callerID(c), requestID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("featureRequests/"+requestID, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}

// Like handles PUT /v1/featureRequests/:id/likes/:userId
func (h *FeatureHandler) Like(c *gin.Context) {
	requestID, userID := c.Param("id"), c.Param("userId")
	if err := h.features.Like(callerID(c), requestID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("featureRequests/"+requestID+"/likes/"+userID, true)
	c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}

// Unlike handles DELETE /v1/featureRequests/:id/likes/:userId
func (h *FeatureHandler) Unlike(c *gin.Context) {
	requestID, userID := c.Param("id"), c.Param("userId")
	if err := h.features.Unlike(callerID(c), requestID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	h.hub.Publish("featureRequests/"+requestID+"/likes/"+userID, nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}
