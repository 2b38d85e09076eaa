package models

import (
	"time"

	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

// Item is a purchasable commodity. Identity is immutable, descriptive
// fields may change through reference-data management.
type Item struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name" binding:"required"`
	Unit        Unit      `gorm:"type:enum('т','кг','конт.');not null;default:'т'" json:"unit" binding:"required"`
	Category    string    `gorm:"size:100;default:null" json:"category"`
	Description string    `gorm:"type:text;default:null" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewItem struct {
	Name        string `json:"name" binding:"required"`
	Unit        Unit   `json:"unit" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (input *NewItem) Validate() error {
	if input.Name == "" {
		return utils.NewValidationError("item name is required")
	}
	if !input.Unit.IsValid() {
		return utils.NewValidationError("invalid unit %q", input.Unit)
	}
	return nil
}
