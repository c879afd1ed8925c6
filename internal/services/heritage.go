package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/turathhub/archive-backend/internal/apierr"
	"github.com/turathhub/archive-backend/internal/logger"
	"github.com/turathhub/archive-backend/internal/normalization"
	"github.com/turathhub/archive-backend/internal/repos"
	"github.com/turathhub/archive-backend/internal/types"
)

// CatalogInput is the contributor-facing descriptive shape shared by
// submissions and staff-created catalog entries.
type CatalogInput struct {
	Title         string `json:"title"`
	TitleAr       string `json:"title_ar"`
	TitleFr       string `json:"title_fr"`
	Description   string `json:"description"`
	DescriptionAr string `json:"description_ar"`
	DescriptionFr string `json:"description_fr"`
	Region        string `json:"region"`
	ObjectType    string `json:"object_type"`
	ICHDomain     string `json:"ich_domain"`
	OriginDate    string `json:"origin_date"`

	ImagePath   string `json:"image_path"`
	Model3DPath string `json:"model_3d_path"`

	AlternateName string `json:"alternate_name"`
	Maker         string `json:"maker"`
	Attribution   string `json:"attribution"`
	Period        string `json:"period"`
	OriginPlace   string `json:"origin_place"`
	Materials     string `json:"materials"`
	Dimensions    string `json:"dimensions"`
	Weight        string `json:"weight"`
}

func (in *CatalogInput) validate() (time.Time, error) {
	in.Title = normalization.TrimInput(in.Title)
	in.Description = normalization.TrimInput(in.Description)
	if in.Title == "" {
		return time.Time{}, apierr.Validation("Title is required")
	}
	if in.Description == "" {
		return time.Time{}, apierr.Validation("Description is required")
	}
	if !types.Region(in.Region).Valid() {
		return time.Time{}, apierr.Validation("Unknown region %q", in.Region)
	}
	if !types.ObjectType(in.ObjectType).Valid() {
		return time.Time{}, apierr.Validation("Unknown object type %q", in.ObjectType)
	}
	if !types.ICHDomain(in.ICHDomain).Valid() {
		return time.Time{}, apierr.Validation("Unknown ICH domain %q", in.ICHDomain)
	}
	originDate, err := time.Parse(types.DateLayout, in.OriginDate)
	if err != nil {
		return time.Time{}, apierr.Validation("Invalid origin_date %q", in.OriginDate)
	}
	return originDate, nil
}

func (in *CatalogInput) toSubmission(userID uuid.UUID, originDate time.Time) *types.Submission {
	return &types.Submission{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         in.Title,
		TitleAr:       in.TitleAr,
		TitleFr:       in.TitleFr,
		Description:   in.Description,
		DescriptionAr: in.DescriptionAr,
		DescriptionFr: in.DescriptionFr,
		Region:        types.Region(in.Region),
		ObjectType:    types.ObjectType(in.ObjectType),
		ICHDomain:     types.ICHDomain(in.ICHDomain),
		OriginDate:    originDate,
		ImagePath:     in.ImagePath,
		Model3DPath:   in.Model3DPath,
		AlternateName: in.AlternateName,
		Maker:         in.Maker,
		Attribution:   in.Attribution,
		Period:        in.Period,
		OriginPlace:   in.OriginPlace,
		Materials:     in.Materials,
		Dimensions:    in.Dimensions,
		Weight:        in.Weight,
		Status:        types.StatusPending,
	}
}

// ObjectSummary is a catalog listing row with the viewer-dependent
// social state attached.
type ObjectSummary struct {
	Object    *types.HeritageObject `json:"object"`
	LikeCount int64                 `json:"like_count"`
	Liked     bool                  `json:"liked"`
}

type HeritageService interface {
	// List returns published catalog entries matching the filter.
	// viewerID may be uuid.Nil for anonymous browsing; Liked is then
	// always false.
	List(ctx context.Context, filter repos.ObjectFilter, viewerID uuid.UUID) ([]*ObjectSummary, error)
	Get(ctx context.Context, objectID, viewerID uuid.UUID) (*ObjectSummary, error)
	// CreateDirect publishes a catalog entry without the submission
	// queue. Staff only.
	CreateDirect(ctx context.Context, actorID uuid.UUID, input CatalogInput) (*types.HeritageObject, error)
}

type heritageService struct {
	db           *gorm.DB
	heritageRepo repos.HeritageRepo
	likeRepo     repos.HeritageLikeRepo
	userRepo     repos.UserRepo
	log          *logger.Logger
}

func NewHeritageService(
	db *gorm.DB,
	heritageRepo repos.HeritageRepo,
	likeRepo repos.HeritageLikeRepo,
	userRepo repos.UserRepo,
	baseLog *logger.Logger,
) HeritageService {
	return &heritageService{
		db:           db,
		heritageRepo: heritageRepo,
		likeRepo:     likeRepo,
		userRepo:     userRepo,
		log:          baseLog.With("service", "HeritageService"),
	}
}

func (hs *heritageService) List(ctx context.Context, filter repos.ObjectFilter, viewerID uuid.UUID) ([]*ObjectSummary, error) {
	objects, err := hs.heritageRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(objects))
	for _, obj := range objects {
		ids = append(ids, obj.ID)
	}
	counts, err := hs.likeRepo.CountForObjects(ctx, nil, ids)
	if err != nil {
		return nil, err
	}

	likedSet := map[uuid.UUID]bool{}
	if viewerID != uuid.Nil {
		likedIDs, err := hs.likeRepo.LikedObjectIDs(ctx, nil, viewerID)
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			likedSet[id] = true
		}
	}

	summaries := make([]*ObjectSummary, 0, len(objects))
	for _, obj := range objects {
		summaries = append(summaries, &ObjectSummary{
			Object:    obj,
			LikeCount: counts[obj.ID],
			Liked:     likedSet[obj.ID],
		})
	}
	return summaries, nil
}

func (hs *heritageService) Get(ctx context.Context, objectID, viewerID uuid.UUID) (*ObjectSummary, error) {
	object, err := hs.heritageRepo.GetByID(ctx, nil, objectID)
	if err != nil {
		return nil, err
	}
	if object == nil {
		return nil, apierr.NotFound("Catalog entry %s does not exist", objectID)
	}
	count, err := hs.likeRepo.CountForObject(ctx, nil, objectID)
	if err != nil {
		return nil, err
	}
	liked := false
	if viewerID != uuid.Nil {
		existing, err := hs.likeRepo.Get(ctx, nil, viewerID, objectID)
		if err != nil {
			return nil, err
		}
		liked = existing != nil
	}
	return &ObjectSummary{Object: object, LikeCount: count, Liked: liked}, nil
}

func (hs *heritageService) CreateDirect(ctx context.Context, actorID uuid.UUID, input CatalogInput) (*types.HeritageObject, error) {
	actor, err := hs.userRepo.GetByID(ctx, nil, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !(actor.IsStaff || actor.IsSuperuser) {
		return nil, apierr.Forbidden("Only staff can create catalog entries directly")
	}

	originDate, err := input.validate()
	if err != nil {
		return nil, err
	}
	object := input.toSubmission(actorID, originDate).ToHeritageObject()

	if _, err := hs.heritageRepo.Create(ctx, nil, object); err != nil {
		return nil, err
	}
	hs.log.Info("catalog entry created directly", "object_id", object.ID.String(), "actor_id", actorID.String())
	return object, nil
}
