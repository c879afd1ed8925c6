package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/types"
)

// SubmissionResult pairs a submission with the catalog entry it
// produced, when auto-approval published it immediately.
type SubmissionResult struct {
	Submission *types.Submission     `json:"submission"`
	Object     *types.HeritageObject `json:"object,omitempty"`
}

type SubmissionService interface {
	// Submit records a candidate catalog entry. Contributors with
	// moderation authority publish immediately; everyone else lands in
	// the pending queue.
	Submit(ctx context.Context, actorID uuid.UUID, input CatalogInput) (*SubmissionResult, error)
	ListMine(ctx context.Context, actorID uuid.UUID) ([]*types.Submission, error)
	// ListPending returns the review queue. Staff only.
	ListPending(ctx context.Context, actorID uuid.UUID) ([]*types.Submission, error)
	// Review resolves a pending submission. Approval converts it into
	// a catalog entry in the same transaction; decisions are final.
	Review(ctx context.Context, actorID, submissionID uuid.UUID, approve bool) (*SubmissionResult, error)
}

type submissionService struct {
	db             *gorm.DB
	submissionRepo repos.SubmissionRepo
	heritageRepo   repos.HeritageRepo
	userRepo       repos.UserRepo
	profileRepo    repos.ProfileRepo
	log            *logger.Logger
}

func NewSubmissionService(
	db *gorm.DB,
	submissionRepo repos.SubmissionRepo,
	heritageRepo repos.HeritageRepo,
	userRepo repos.UserRepo,
	profileRepo repos.ProfileRepo,
	baseLog *logger.Logger,
) SubmissionService {
	return &submissionService{
		db:             db,
		submissionRepo: submissionRepo,
		heritageRepo:   heritageRepo,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		log:            baseLog.With("service", "SubmissionService"),
	}
}

func (ss *submissionService) Submit(ctx context.Context, actorID uuid.UUID, input CatalogInput) (*SubmissionResult, error) {
	originDate, err := input.validate()
	if err != nil {
		return nil, err
	}

	actor, err := ss.userRepo.GetByID(ctx, nil, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, apierr.Unauthorized("Account no longer exists")
	}
	profile, err := ss.profileRepo.GetByUserID(ctx, nil, actorID)
	if err != nil {
		return nil, err
	}

	submission := input.toSubmission(actorID, originDate)
	result := &SubmissionResult{Submission: submission}

	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ss.submissionRepo.Create(ctx, tx, submission); err != nil {
			return err
		}
		if !CanModerate(actor, profile) {
			return nil
		}
		object, err := ss.convert(ctx, tx, submission)
		if err != nil {
			return err
		}
		result.Object = object
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Object != nil {
		ss.log.Info("submission auto-approved",
			"submission_id", submission.ID.String(),
			"object_id", result.Object.ID.String())
	} else {
		ss.log.Info("submission queued for review", "submission_id", submission.ID.String())
	}
	return result, nil
}

func (ss *submissionService) ListMine(ctx context.Context, actorID uuid.UUID) ([]*types.Submission, error) {
	return ss.submissionRepo.ListByUser(ctx, nil, actorID, 0)
}

func (ss *submissionService) ListPending(ctx context.Context, actorID uuid.UUID) ([]*types.Submission, error) {
	if err := ss.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return ss.submissionRepo.ListByStatus(ctx, nil, types.StatusPending)
}

func (ss *submissionService) Review(ctx context.Context, actorID, submissionID uuid.UUID, approve bool) (*SubmissionResult, error) {
	if err := ss.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}

	result := &SubmissionResult{}
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		submission, err := ss.submissionRepo.GetByID(ctx, tx, submissionID)
		if err != nil {
			return err
		}
		if submission == nil {
			return apierr.NotFound("Submission %s does not exist", submissionID)
		}
		if submission.Status.Terminal() {
			return apierr.Precondition("Submission has already been %s", submission.Status)
		}
		result.Submission = submission

		if !approve {
			submission.Status = types.StatusRejected
			return ss.submissionRepo.Save(ctx, tx, submission)
		}

		object, err := ss.convert(ctx, tx, submission)
		if err != nil {
			return err
		}
		result.Object = object
		return nil
	})
	if err != nil {
		return nil, err
	}

	ss.log.Info("submission reviewed",
		"submission_id", submissionID.String(),
		"actor_id", actorID.String(),
		"status", string(result.Submission.Status))
	return result, nil
}

// convert publishes an approved submission as a catalog entry. The
// ConvertedObjectID guard makes conversion at-most-once even if two
// reviewers race past the status check.
func (ss *submissionService) convert(ctx context.Context, tx *gorm.DB, submission *types.Submission) (*types.HeritageObject, error) {
	if submission.ConvertedObjectID != nil {
		return nil, apierr.Precondition("Submission has already been converted")
	}
	object := submission.ToHeritageObject()
	if _, err := ss.heritageRepo.Create(ctx, tx, object); err != nil {
		return nil, err
	}
	submission.Status = types.StatusApproved
	submission.ConvertedObjectID = &object.ID
	if err := ss.submissionRepo.Save(ctx, tx, submission); err != nil {
		return nil, err
	}
	return object, nil
}

func (ss *submissionService) requireStaff(ctx context.Context, actorID uuid.UUID) error {
	actor, err := ss.userRepo.GetByID(ctx, nil, actorID)
	if err != nil {
		return err
	}
	if actor == nil || !(actor.IsStaff || actor.IsSuperuser) {
		return apierr.Forbidden("Staff access required")
	}
	return nil
}
