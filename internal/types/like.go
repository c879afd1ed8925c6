package types

import (
	"time"

	"github.com/google/uuid"
)

// HeritageLike is a (user, object) pair. The composite unique index is
// what makes concurrent toggles converge: a duplicate insert fails and
// is treated as "already liked".
type HeritageLike struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_heritage_like_user_object" json:"user_id"`
	User      *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ObjectID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_heritage_like_user_object;column:object_id" json:"object_id"`
	Object    *HeritageObject `gorm:"constraint:OnDelete:CASCADE;foreignKey:ObjectID;references:ID" json:"object,omitempty"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}

func (HeritageLike) TableName() string {
	return "heritage_like"
}

type CommentLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comment_like_user_comment;column:comment_id" json:"comment_id"`
	Comment   *Comment  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CommentID;references:ID" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (CommentLike) TableName() string {
	return "comment_like"
}
