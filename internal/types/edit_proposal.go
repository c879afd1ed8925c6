package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EditProposal is a partial change-set against an existing catalog
// entry. Data maps editable field names to proposed new values; keys
// are validated against EditableFields both when the proposal is
// created and again before it is applied.
type EditProposal struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ObjectID uuid.UUID       `gorm:"type:uuid;not null;index;column:object_id" json:"object_id"`
	Object   *HeritageObject `gorm:"constraint:OnDelete:CASCADE;foreignKey:ObjectID;references:ID" json:"object,omitempty"`
	Note     string          `gorm:"column:note" json:"note"`
	Data     datatypes.JSON  `gorm:"not null;column:data" json:"data"`
	Status   ReviewStatus    `gorm:"size:16;not null;default:pending;column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (EditProposal) TableName() string {
	return "edit_proposal"
}
