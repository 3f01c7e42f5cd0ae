package handlers

import (
	"net/http"

	"roomhive/middleware"
	"roomhive/models"
	"roomhive/services/roommate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoommateHandler exposes roommate profiles and matching over HTTP.
type RoommateHandler struct {
	svc    roommate.RoommateService
	logger *zap.Logger
}

// NewRoommateHandler creates a new RoommateHandler.
func NewRoommateHandler(svc roommate.RoommateService, logger *zap.Logger) *RoommateHandler {
	return &RoommateHandler{svc: svc, logger: logger}
}

// UpsertProfileHandler handles PUT /api/roommates/profile.
func (h *RoommateHandler) UpsertProfileHandler(c *gin.Context) {
	var profile models.RoommateProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	profile.UserID = middleware.ActorID(c)

	saved, err := h.svc.UpsertProfile(c.Request.Context(), &profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GetProfileHandler handles GET /api/roommates/profile.
func (h *RoommateHandler) GetProfileHandler(c *gin.Context) {
	profile, err := h.svc.GetProfile(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// MatchesHandler handles GET /api/roommates/matches.
func (h *RoommateHandler) MatchesHandler(c *gin.Context) {
	matches, err := h.svc.RankMatches(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
