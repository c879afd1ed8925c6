package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/services"
)

type SubmissionHandler struct {
	log               *logger.Logger
	submissionService services.SubmissionService
}

func NewSubmissionHandler(log *logger.Logger, submissionService services.SubmissionService) *SubmissionHandler {
	handlerLogger := log.With("handler", "SubmissionHandler")
	return &SubmissionHandler{log: handlerLogger, submissionService: submissionService}
}

func (sh *SubmissionHandler) Submit(c *gin.Context) {
	var input services.CatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := sh.submissionService.Submit(c.Request.Context(), actorID(c), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, result)
}

func (sh *SubmissionHandler) ListMine(c *gin.Context) {
	submissions, err := sh.submissionService.ListMine(c.Request.Context(), actorID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"submissions": submissions})
}

func (sh *SubmissionHandler) ListPending(c *gin.Context) {
	submissions, err := sh.submissionService.ListPending(c.Request.Context(), actorID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"submissions": submissions})
}

func (sh *SubmissionHandler) Review(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid submission id"))
		return
	}
	var input struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := sh.submissionService.Review(c.Request.Context(), actorID(c), submissionID, input.Approve)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
