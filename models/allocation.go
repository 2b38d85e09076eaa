package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyUZS Currency = "UZS"
)

func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyUZS
}

// Allocation commits part of an order line's quantity to one supplier at a
// price. TotalSum is derived (QuantityInTons × PricePerTon) and stored for
// reporting.
type Allocation struct {
	ID             int             `gorm:"primary_key" json:"id"`
	OrderId        int             `gorm:"index;not null" json:"order_id"`
	OrderLineId    int             `gorm:"index;not null" json:"order_line_id"`
	SupplierId     int             `gorm:"index;not null" json:"supplier_id"`
	Supplier       *Supplier       `gorm:"foreignKey:SupplierId" json:"supplier,omitempty"`
	ItemId         int             `gorm:"index;not null" json:"item_id"`
	Quantity       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Unit           Unit            `gorm:"type:enum('т','кг','конт.');not null" json:"unit"`
	QuantityInTons decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_in_tons"`
	PricePerTon    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price_per_ton"`
	TotalSum       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_sum"`
	Currency       Currency        `gorm:"type:enum('USD','UZS');not null" json:"currency"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewAllocation struct {
	OrderLineId int             `json:"order_line_id" binding:"required"`
	SupplierId  int             `json:"supplier_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        Unit            `json:"unit" binding:"required"`
	PricePerTon decimal.Decimal `json:"price_per_ton" binding:"required"`
	Currency    Currency        `json:"currency" binding:"required"`
}

func (input *NewAllocation) Validate() error {
	if input.OrderLineId == 0 {
		return utils.NewValidationError("allocation requires an order line")
	}
	if input.SupplierId == 0 {
		return utils.NewValidationError("allocation requires a supplier")
	}
	if !input.Quantity.IsPositive() {
		return utils.NewValidationError("allocation quantity must be positive")
	}
	if !input.Unit.IsValid() {
		return utils.NewValidationError("invalid unit %q", input.Unit)
	}
	if input.PricePerTon.IsNegative() {
		return utils.NewValidationError("price per ton must not be negative")
	}
	if !input.Currency.IsValid() {
		return utils.NewValidationError("invalid currency %q", input.Currency)
	}
	return nil
}

// AllocationTotal computes the money value of a quantity at a price.
func AllocationTotal(quantityInTons, pricePerTon decimal.Decimal) decimal.Decimal {
	return quantityInTons.Mul(pricePerTon)
}
