package models

import (
	"time"

	"github.com/orris-inc/aticket/internal/shared/constants"
)

// UserModel is the local directory entry for a person who can open or work
// tickets. Credentials are managed by the identity provider.
type UserModel struct {
	ID          uint   `gorm:"primarykey"`
	Username    string `gorm:"uniqueIndex:idx_user_username;size:150;not null"`
	Email       string `gorm:"size:255"`
	DisplayName string `gorm:"size:150"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
