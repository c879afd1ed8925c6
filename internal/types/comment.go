package types

import (
	"time"

	"github.com/google/uuid"
)

// Comment threads are one level deep: a reply's parent is always a
// top-level comment on the same object. Deletion is a soft flag so
// replies and likes referencing the comment survive.
type Comment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ObjectID  uuid.UUID       `gorm:"type:uuid;not null;index;column:object_id" json:"object_id"`
	Object    *HeritageObject `gorm:"constraint:OnDelete:CASCADE;foreignKey:ObjectID;references:ID" json:"object,omitempty"`
	Body      string          `gorm:"not null;column:body" json:"body"`
	ParentID  *uuid.UUID      `gorm:"type:uuid;index;column:parent_id" json:"parent_id,omitempty"`
	IsDeleted bool            `gorm:"not null;default:false;column:is_deleted" json:"is_deleted"`
	CreatedAt time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comment"
}
