package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

// OrderLine is one requested quantity of one item within an order.
// QuantityInTons is the canonical normalized quantity every downstream
// calculation works with; Quantity/Unit preserve what the operator typed.
// ContainerIndex groups lines back into their shipping container for
// display; lines without one belong to a legacy flat order.
type OrderLine struct {
	ID             int             `gorm:"primary_key" json:"id"`
	OrderId        int             `gorm:"index;not null" json:"order_id"`
	ItemId         int             `gorm:"index;not null" json:"item_id"`
	Item           *Item           `gorm:"foreignKey:ItemId" json:"item,omitempty"`
	Quantity       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Unit           Unit            `gorm:"type:enum('т','кг','конт.');not null" json:"unit"`
	QuantityInTons decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_in_tons"`
	ContainerSize  int             `gorm:"default:null" json:"container_size"`
	ContainerIndex *int            `gorm:"default:null" json:"container_index"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewOrderLine struct {
	ItemId         int             `json:"item_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Unit           Unit            `json:"unit" binding:"required"`
	ContainerSize  int             `json:"container_size"`
	ContainerIndex *int            `json:"container_index"`
}

func (input *NewOrderLine) Validate() error {
	if input.ItemId == 0 {
		return utils.NewValidationError("order line requires an item")
	}
	if !input.Quantity.IsPositive() {
		return utils.NewValidationError("order line quantity must be positive")
	}
	if !input.Unit.IsValid() {
		return utils.NewValidationError("invalid unit %q", input.Unit)
	}
	if input.ContainerSize != 0 && input.ContainerSize != ContainerCapacityDefault && input.ContainerSize != ContainerCapacityException {
		return utils.NewValidationError("container size must be %d or %d", ContainerCapacityDefault, ContainerCapacityException)
	}
	return nil
}

// Tons converts the entered quantity to the canonical tons value at the
// recorded container size.
func (input *NewOrderLine) Tons() decimal.Decimal {
	return ToTons(input.Quantity, input.Unit, input.ContainerSize)
}

// MergeLines folds an incoming line into a draft cart. A line for an item
// already present with the same unit and container placement sums into the
// existing entry; otherwise it is appended.
func MergeLines(cart []NewOrderLine, line NewOrderLine) []NewOrderLine {
	for i := range cart {
		if cart[i].ItemId != line.ItemId || cart[i].Unit != line.Unit || cart[i].ContainerSize != line.ContainerSize {
			continue
		}
		if !equalContainerIndex(cart[i].ContainerIndex, line.ContainerIndex) {
			continue
		}
		cart[i].Quantity = cart[i].Quantity.Add(line.Quantity)
		return cart
	}
	return append(cart, line)
}

func equalContainerIndex(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
