package types

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a candidate catalog entry awaiting moderation. It
// mirrors the descriptive shape of HeritageObject for the fields a
// contributor fills in. ConvertedObjectID records the catalog entry an
// approved submission produced, so conversion can never run twice.
type Submission struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Title         string     `gorm:"size:200;not null;column:title" json:"title"`
	TitleAr       string     `gorm:"size:200;column:title_ar" json:"title_ar"`
	TitleFr       string     `gorm:"size:200;column:title_fr" json:"title_fr"`
	Description   string     `gorm:"not null;column:description" json:"description"`
	DescriptionAr string     `gorm:"column:description_ar" json:"description_ar"`
	DescriptionFr string     `gorm:"column:description_fr" json:"description_fr"`
	Region        Region     `gorm:"size:50;not null;column:region" json:"region"`
	ObjectType    ObjectType `gorm:"size:50;not null;column:object_type" json:"object_type"`
	ICHDomain     ICHDomain  `gorm:"size:50;not null;column:ich_domain" json:"ich_domain"`
	OriginDate    time.Time  `gorm:"not null;column:origin_date" json:"origin_date"`

	ImagePath   string `gorm:"column:image_path" json:"image_path"`
	Model3DPath string `gorm:"column:model_3d_path" json:"model_3d_path"`

	AlternateName string `gorm:"size:255;column:alternate_name" json:"alternate_name"`
	Maker         string `gorm:"size:255;column:maker" json:"maker"`
	Attribution   string `gorm:"size:255;column:attribution" json:"attribution"`
	Period        string `gorm:"size:255;column:period" json:"period"`
	OriginPlace   string `gorm:"size:255;column:origin_place" json:"origin_place"`
	Materials     string `gorm:"column:materials" json:"materials"`
	Dimensions    string `gorm:"size:255;column:dimensions" json:"dimensions"`
	Weight        string `gorm:"size:255;column:weight" json:"weight"`

	Status            ReviewStatus `gorm:"size:16;not null;default:pending;column:status" json:"status"`
	ConvertedObjectID *uuid.UUID   `gorm:"type:uuid;column:converted_object_id" json:"converted_object_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Submission) TableName() string {
	return "submission"
}

// ToHeritageObject copies every descriptive field into a fresh catalog
// entry. Media paths move with it; the submission keeps no claim on
// them once converted.
func (s *Submission) ToHeritageObject() *HeritageObject {
	return &HeritageObject{
		ID:            uuid.New(),
		Title:         s.Title,
		TitleAr:       s.TitleAr,
		TitleFr:       s.TitleFr,
		Description:   s.Description,
		DescriptionAr: s.DescriptionAr,
		DescriptionFr: s.DescriptionFr,
		Region:        s.Region,
		ObjectType:    s.ObjectType,
		ICHDomain:     s.ICHDomain,
		OriginDate:    s.OriginDate,
		ImagePath:     s.ImagePath,
		Model3DPath:   s.Model3DPath,
		AlternateName: s.AlternateName,
		Maker:         s.Maker,
		Attribution:   s.Attribution,
		Period:        s.Period,
		OriginPlace:   s.OriginPlace,
		Materials:     s.Materials,
		Dimensions:    s.Dimensions,
		Weight:        s.Weight,
	}
}
