package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/types"
)

// ProposalResult pairs a proposal with the catalog entry as it stands
// after the proposal was applied, when it was.
type ProposalResult struct {
	Proposal *types.EditProposal   `json:"proposal"`
	Object   *types.HeritageObject `json:"object,omitempty"`
}

type ProposalService interface {
	// Propose records a change-set against a catalog entry. The keys
	// must come from the editable field set. Contributors with
	// moderation authority apply immediately.
	Propose(ctx context.Context, actorID, objectID uuid.UUID, note string, changes map[string]string) (*ProposalResult, error)
	// ProposeInline takes the full editable form as the contributor
	// saw it and diffs it against the current entry, keeping only the
	// fields that actually changed.
	ProposeInline(ctx context.Context, actorID, objectID uuid.UUID, note string, form map[string]string) (*ProposalResult, error)
	ListMine(ctx context.Context, actorID uuid.UUID) ([]*types.EditProposal, error)
	ListPending(ctx context.Context, actorID uuid.UUID) ([]*types.EditProposal, error)
	// Review resolves a pending proposal. Approval applies the stored
	// change-set to the catalog entry in the same transaction.
	Review(ctx context.Context, actorID, proposalID uuid.UUID, approve bool) (*ProposalResult, error)
}

type proposalService struct {
	db           *gorm.DB
	proposalRepo repos.ProposalRepo
	heritageRepo repos.HeritageRepo
	userRepo     repos.UserRepo
	profileRepo  repos.ProfileRepo
	log          *logger.Logger
}

func NewProposalService(
	db *gorm.DB,
	proposalRepo repos.ProposalRepo,
	heritageRepo repos.HeritageRepo,
	userRepo repos.UserRepo,
	profileRepo repos.ProfileRepo,
	baseLog *logger.Logger,
) ProposalService {
	return &proposalService{
		db:           db,
		proposalRepo: proposalRepo,
		heritageRepo: heritageRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		log:          baseLog.With("service", "ProposalService"),
	}
}

func (ps *proposalService) Propose(ctx context.Context, actorID, objectID uuid.UUID, note string, changes map[string]string) (*ProposalResult, error) {
	if err := types.ValidateChangeSet(changes); err != nil {
		return nil, apierr.Validation("%v", err)
	}

	actor, err := ps.userRepo.GetByID(ctx, nil, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apierr.Unauthorized("Account no longer exists")
	}
	profile, err := ps.profileRepo.GetByUserID(ctx, nil, actorID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}
	proposal := &types.EditProposal{
		ID:       uuid.New(),
		UserID:   actorID,
		ObjectID: objectID,
		Note:     note,
		Data:     data,
		Status:   types.StatusPending,
	}
	result := &ProposalResult{Proposal: proposal}

	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		object, err := ps.heritageRepo.GetByID(ctx, tx, objectID)
		if err != nil {
			return err
		}
		if object == nil {
			return apierr.NotFound("Catalog entry %s does not exist", objectID)
		}
		if _, err := ps.proposalRepo.Create(ctx, tx, proposal); err != nil {
			return err
		}
		if !CanModerate(actor, profile) {
			return nil
		}
		updated, err := ps.apply(ctx, tx, proposal, object)
		if err != nil {
			return err
		}
		result.Object = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Object != nil {
		ps.log.Info("edit proposal auto-approved", "proposal_id", proposal.ID.String())
	} else {
		ps.log.Info("edit proposal queued for review", "proposal_id", proposal.ID.String())
	}
	return result, nil
}

func (ps *proposalService) ProposeInline(ctx context.Context, actorID, objectID uuid.UUID, note string, form map[string]string) (*ProposalResult, error) {
	object, err := ps.heritageRepo.GetByID(ctx, nil, objectID)
	if err != nil {
		return nil, err
	}
	if object == nil {
		return nil, apierr.NotFound("Catalog entry %s does not exist", objectID)
	}

	changes := map[string]string{}
	for name, value := range form {
		if !types.IsEditableField(name) {
			return nil, apierr.Validation("Unknown editable field %q", name)
		}
		if object.FieldValue(name) != value {
			changes[name] = value
		}
	}
	if len(changes) == 0 {
		return nil, apierr.Validation("No changes detected")
	}
	return ps.Propose(ctx, actorID, objectID, note, changes)
}

func (ps *proposalService) ListMine(ctx context.Context, actorID uuid.UUID) ([]*types.EditProposal, error) {
	return ps.proposalRepo.ListByUser(ctx, nil, actorID, 0)
}

func (ps *proposalService) ListPending(ctx context.Context, actorID uuid.UUID) ([]*types.EditProposal, error) {
	if err := ps.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return ps.proposalRepo.ListByStatus(ctx, nil, types.StatusPending)
}

func (ps *proposalService) Review(ctx context.Context, actorID, proposalID uuid.UUID, approve bool) (*ProposalResult, error) {
	if err := ps.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}

	result := &ProposalResult{}
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		proposal, err := ps.proposalRepo.GetByID(ctx, tx, proposalID)
		if err != nil {
			return err
		}
		if proposal == nil {
			return apierr.NotFound("Edit proposal %s does not exist", proposalID)
		}
		if proposal.Status.Terminal() {
			return apierr.Precondition("Edit proposal has already been %s", proposal.Status)
		}
		result.Proposal = proposal

		if !approve {
			proposal.Status = types.StatusRejected
			return ps.proposalRepo.Save(ctx, tx, proposal)
		}

		object, err := ps.heritageRepo.GetByID(ctx, tx, proposal.ObjectID)
		if err != nil {
			return err
		}
		if object == nil {
			return apierr.Precondition("Catalog entry for this proposal no longer exists")
		}
		updated, err := ps.apply(ctx, tx, proposal, object)
		if err != nil {
			return err
		}
		result.Object = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.log.Info("edit proposal reviewed",
		"proposal_id", proposalID.String(),
		"actor_id", actorID.String(),
		"status", string(result.Proposal.Status))
	return result, nil
}

// apply writes the stored change-set onto the catalog entry and marks
// the proposal approved. The approved row stays as the audit record of
// what changed.
func (ps *proposalService) apply(ctx context.Context, tx *gorm.DB, proposal *types.EditProposal, object *types.HeritageObject) (*types.HeritageObject, error) {
	var changes map[string]string
	if err := json.Unmarshal(proposal.Data, &changes); err != nil {
		return nil, apierr.Precondition("Stored change-set is unreadable: %v", err)
	}
	if err := object.ApplyChangeSet(changes); err != nil {
		return nil, apierr.Precondition("Stored change-set no longer applies: %v", err)
	}
	if err := ps.heritageRepo.Save(ctx, tx, object); err != nil {
		return nil, err
	}
	proposal.Status = types.StatusApproved
	if err := ps.proposalRepo.Save(ctx, tx, proposal); err != nil {
		return nil, err
	}
	return object, nil
}

func (ps *proposalService) requireStaff(ctx context.Context, actorID uuid.UUID) error {
	actor, err := ps.userRepo.GetByID(ctx, nil, actorID)
	if err != nil {
		return err
	}
	if actor == nil || !(actor.IsStaff || actor.IsSuperuser) {
		return apierr.Forbidden("Staff access required")
	}
	return nil
}
