package models

import (
	"time"

	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleLogist  UserRole = "logist"
	UserRoleFinance UserRole = "finance"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleLogist, UserRoleFinance:
		return true
	}
	return false
}

// User is an operator account. Password holds a bcrypt hash, never the
// plain text; hashing goes through utils.HashPassword so the scheme can
// be swapped in one place.
type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Username  string    `gorm:"size:100;not null;uniqueIndex" json:"username" binding:"required"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('admin','logist','finance');not null;default:'logist'" json:"role"`
	FullName  string    `gorm:"size:255;default:null" json:"full_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	Role     UserRole `json:"role" binding:"required"`
	FullName string   `json:"full_name"`
}

func (input *NewUser) Validate() error {
	if input.Username == "" {
		return utils.NewValidationError("username is required")
	}
	if input.Password == "" {
		return utils.NewValidationError("password is required")
	}
	if !input.Role.IsValid() {
		return utils.NewValidationError("invalid role %q", input.Role)
	}
	return nil
}
