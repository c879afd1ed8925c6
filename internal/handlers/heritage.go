package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/services"
)

type HeritageHandler struct {
	log             *logger.Logger
	heritageService services.HeritageService
	socialService   services.SocialService
}

func NewHeritageHandler(log *logger.Logger, heritageService services.HeritageService, socialService services.SocialService) *HeritageHandler {
	handlerLogger := log.With("handler", "HeritageHandler")
	return &HeritageHandler{
		log:             handlerLogger,
		heritageService: heritageService,
		socialService:   socialService,
	}
}

func (hh *HeritageHandler) List(c *gin.Context) {
	filter := repos.ObjectFilter{
		Region:     c.Query("region"),
		ObjectType: c.Query("type"),
		Query:      c.Query("q"),
	}
	objects, err := hh.heritageService.List(c.Request.Context(), filter, actorID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"objects": objects})
}

// Get returns the catalog entry together with its comment threads, so
// the detail page renders from one request.
func (hh *HeritageHandler) Get(c *gin.Context) {
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid object id"))
		return
	}
	viewerID := actorID(c)
	summary, err := hh.heritageService.Get(c.Request.Context(), objectID, viewerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	comments, err := hh.socialService.ListComments(c.Request.Context(), objectID, viewerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"object":     summary.Object,
		"like_count": summary.LikeCount,
		"liked":      summary.Liked,
		"comments":   comments,
	})
}

func (hh *HeritageHandler) CreateDirect(c *gin.Context) {
	var input services.CatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	object, err := hh.heritageService.CreateDirect(c.Request.Context(), actorID(c), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"object": object})
}
