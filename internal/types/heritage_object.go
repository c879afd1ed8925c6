package types

import (
	"time"

	"github.com/google/uuid"
)

// HeritageObject is a published catalog entry. English title and
// description are required; the Arabic and French variants and the
// whole Smithsonian-style metadata block are optional. Catalog entries
// are never soft-deleted.
type HeritageObject struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:200;not null;column:title" json:"title"`
	TitleAr       string     `gorm:"size:200;column:title_ar" json:"title_ar"`
	TitleFr       string     `gorm:"size:200;column:title_fr" json:"title_fr"`
	Description   string     `gorm:"not null;column:description" json:"description"`
	DescriptionAr string     `gorm:"column:description_ar" json:"description_ar"`
	DescriptionFr string     `gorm:"column:description_fr" json:"description_fr"`
	Region        Region     `gorm:"size:50;not null;default:riyadh;column:region" json:"region"`
	ObjectType    ObjectType `gorm:"size:50;not null;default:tool;column:object_type" json:"object_type"`
	ICHDomain     ICHDomain  `gorm:"size:50;not null;default:oral;column:ich_domain" json:"ich_domain"`
	OriginDate    time.Time  `gorm:"not null;column:origin_date" json:"origin_date"`

	ImagePath     string `gorm:"column:image_path" json:"image_path"`
	ThumbnailPath string `gorm:"column:thumbnail_path" json:"thumbnail_path"`
	Model3DPath   string `gorm:"column:model_3d_path" json:"model_3d_path"`

	// Identification
	AlternateName string `gorm:"size:255;column:alternate_name" json:"alternate_name"`
	Maker         string `gorm:"size:255;column:maker" json:"maker"`
	Attribution   string `gorm:"size:255;column:attribution" json:"attribution"`
	CopyAfter     string `gorm:"size:255;column:copy_after" json:"copy_after"`
	Sitter        string `gorm:"size:255;column:sitter" json:"sitter"`
	DateText      string `gorm:"size:255;column:date_text" json:"date_text"`
	Period        string `gorm:"size:255;column:period" json:"period"`
	OriginPlace   string `gorm:"size:255;column:origin_place" json:"origin_place"`

	// Provenance and collecting
	Provenance      string `gorm:"column:provenance" json:"provenance"`
	Collector       string `gorm:"size:255;column:collector" json:"collector"`
	SiteName        string `gorm:"size:255;column:site_name" json:"site_name"`
	FieldIdentifier string `gorm:"size:255;column:field_identifier" json:"field_identifier"`

	// Materials and measurements
	Materials  string `gorm:"column:materials" json:"materials"`
	Dimensions string `gorm:"size:255;column:dimensions" json:"dimensions"`
	Weight     string `gorm:"size:255;column:weight" json:"weight"`
	Taxon      string `gorm:"size:255;column:taxon" json:"taxon"`

	// Collection and display
	CollectionName    string `gorm:"size:255;column:collection_name" json:"collection_name"`
	OnViewLocation    string `gorm:"size:255;column:on_view_location" json:"on_view_location"`
	ExhibitionHistory string `gorm:"column:exhibition_history" json:"exhibition_history"`

	// Source, rights, identifiers
	CreditLine      string `gorm:"size:255;column:credit_line" json:"credit_line"`
	DataSource      string `gorm:"size:255;column:data_source" json:"data_source"`
	Rights          string `gorm:"size:255;column:rights" json:"rights"`
	AccessionNumber string `gorm:"size:255;column:accession_number" json:"accession_number"`
	ObjectNumber    string `gorm:"size:255;column:object_number" json:"object_number"`
	RecordID        string `gorm:"size:255;column:record_id" json:"record_id"`
	MetadataUsage   string `gorm:"size:255;column:metadata_usage" json:"metadata_usage"`
	GUID            string `gorm:"size:255;column:guid" json:"guid"`
	RelatedResource string `gorm:"size:255;column:related_resource" json:"related_resource"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (HeritageObject) TableName() string {
	return "heritage_object"
}

// TitleIn returns the localized title, falling back to English when the
// requested variant is empty.
func (o *HeritageObject) TitleIn(lang string) string {
	switch lang {
	case "ar":
		if o.TitleAr != "" {
			return o.TitleAr
		}
	case "fr":
		if o.TitleFr != "" {
			return o.TitleFr
		}
	}
	return o.Title
}

func (o *HeritageObject) DescriptionIn(lang string) string {
	switch lang {
	case "ar":
		if o.DescriptionAr != "" {
			return o.DescriptionAr
		}
	case "fr":
		if o.DescriptionFr != "" {
			return o.DescriptionFr
		}
	}
	return o.Description
}
