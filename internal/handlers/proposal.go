package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/services"
	"github.com/turathhub/archive-backend/internal/types"
)

type ProposalHandler struct {
	log             *logger.Logger
	proposalService services.ProposalService
}

func NewProposalHandler(log *logger.Logger, proposalService services.ProposalService) *ProposalHandler {
	handlerLogger := log.With("handler", "ProposalHandler")
	return &ProposalHandler{log: handlerLogger, proposalService: proposalService}
}

// EditableFields publishes the closed set of field names a proposal
// may touch, so clients can build their edit forms from it.
func (ph *ProposalHandler) EditableFields(c *gin.Context) {
	RespondOK(c, gin.H{"fields": types.EditableFields()})
}

func (ph *ProposalHandler) Propose(c *gin.Context) {
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid object id"))
		return
	}
	var input struct {
		Note    string            `json:"note"`
		Changes map[string]string `json:"changes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := ph.proposalService.Propose(c.Request.Context(), actorID(c), objectID, input.Note, input.Changes)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, result)
}

// ProposeInline accepts the full edit form and lets the service keep
// only the fields that differ from the current entry.
func (ph *ProposalHandler) ProposeInline(c *gin.Context) {
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid object id"))
		return
	}
	var input struct {
		Note string            `json:"note"`
		Form map[string]string `json:"form"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := ph.proposalService.ProposeInline(c.Request.Context(), actorID(c), objectID, input.Note, input.Form)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, result)
}

func (ph *ProposalHandler) ListMine(c *gin.Context) {
	proposals, err := ph.proposalService.ListMine(c.Request.Context(), actorID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"proposals": proposals})
}

func (ph *ProposalHandler) ListPending(c *gin.Context) {
	proposals, err := ph.proposalService.ListPending(c.Request.Context(), actorID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"proposals": proposals})
}

func (ph *ProposalHandler) Review(c *gin.Context) {
	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondServiceError(c, apierr.Validation("Invalid proposal id"))
		return
	}
	var input struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondServiceError(c, apierr.Validation("Invalid request body: %v", err))
		return
	}
	result, err := ph.proposalService.Review(c.Request.Context(), actorID(c), proposalID, input.Approve)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
