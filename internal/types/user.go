package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	// Empty for accounts created through Google sign-in.
	Password    string    `gorm:"column:password" json:"-"`
	IsStaff     bool      `gorm:"not null;default:false;column:is_staff" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false;column:is_superuser" json:"is_superuser"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
