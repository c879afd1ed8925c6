package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/services"
)

type SocialHandler struct {
	log           *logger.Logger
	socialService services.SocialService
}

func NewSocialHandler(log *logger.Logger, socialService services.SocialService) *SocialHandler {
	handlerLogger := log.With("handler", "SocialHandler")
	return &SocialHandler{log: handlerLogger, socialService: socialService}
}

func (sh *SocialHandler) ToggleObjectLike(c *gin.Context) {
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid object id"))
		return
	}
	liked, count, err := sh.socialService.ToggleObjectLike(c.Request.Context(), actorID(c), objectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"liked": liked, "like_count": count})
}

func (sh *SocialHandler) ToggleCommentLike(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid comment id"))
		return
	}
	liked, count, err := sh.socialService.ToggleCommentLike(c.Request.Context(), actorID(c), commentID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"liked": liked, "like_count": count})
}

func (sh *SocialHandler) ListComments(c *gin.Context) {
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid object id"))
		return
	}
	threads, err := sh.socialService.ListComments(c.Request.Context(), objectID, actorID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"comments": threads})
}

func (sh *SocialHandler) PostComment(c *gin.Context) {
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid object id"))
		return
	}
	var input struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	comment, err := sh.socialService.PostComment(c.Request.Context(), actorID(c), objectID, input.Body)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"comment": comment})
}

func (sh *SocialHandler) PostReply(c *gin.Context) {
	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid comment id"))
		return
	}
	var input struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	reply, err := sh.socialService.PostReply(c.Request.Context(), actorID(c), parentID, input.Body)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"comment": reply})
}

func (sh *SocialHandler) DeleteComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid comment id"))
		return
	}
	if err := sh.socialService.DeleteComment(c.Request.Context(), actorID(c), commentID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "comment deleted"})
}
