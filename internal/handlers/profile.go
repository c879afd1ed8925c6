package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/services"
)

type ProfileHandler struct {
	log            *logger.Logger
	profileService services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profileService services.ProfileService) *ProfileHandler {
	handlerLogger := log.With("handler", "ProfileHandler")
	return &ProfileHandler{log: handlerLogger, profileService: profileService}
}

func (ph *ProfileHandler) Dashboard(c *gin.Context) {
	dashboard, err := ph.profileService.GetDashboard(c.Request.Context(), actorID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dashboard)
}

func (ph *ProfileHandler) PublicProfile(c *gin.Context) {
	profile, err := ph.profileService.GetPublicProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profile)
}

func (ph *ProfileHandler) UpdateProfile(c *gin.Context) {
	var input services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	profile, err := ph.profileService.UpdateProfile(c.Request.Context(), actorID(c), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}
