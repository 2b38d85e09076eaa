package models

import (
	"time"

	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

// Supplier is a counterparty an order line quantity can be allocated to.
type Supplier struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name" binding:"required"`
	Contacts  string    `gorm:"type:text;default:null" json:"contacts"`
	Phone     string    `gorm:"size:20;default:null" json:"phone"`
	Email     string    `gorm:"size:100;default:null" json:"email"`
	Notes     string    `gorm:"type:text;default:null" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSupplier struct {
	Name     string `json:"name" binding:"required"`
	Contacts string `json:"contacts"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

func (input *NewSupplier) Validate() error {
	if input.Name == "" {
		return utils.NewValidationError("supplier name is required")
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return utils.NewValidationError("invalid email %q", input.Email)
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return utils.NewValidationError("invalid phone number %q", input.Phone)
		}
	}
	return nil
}
