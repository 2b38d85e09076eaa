package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

type OrderStatus string

const (
	OrderStatusDraft       OrderStatus = "draft"
	OrderStatusLocked      OrderStatus = "locked"
	OrderStatusDistributed OrderStatus = "distributed"
	OrderStatusFinancial   OrderStatus = "financial"
	OrderStatusCompleted   OrderStatus = "completed"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusLocked, OrderStatusDistributed, OrderStatusFinancial, OrderStatusCompleted:
		return true
	}
	return false
}

// rank orders statuses along the forward path. Transitions never move
// backward, and every forward hop of one or more steps is allowed except
// where the workflow layer gates it on distribution completeness.
func (s OrderStatus) rank() int {
	switch s {
	case OrderStatusDraft:
		return 0
	case OrderStatusLocked:
		return 1
	case OrderStatusDistributed:
		return 2
	case OrderStatusFinancial:
		return 3
	case OrderStatusCompleted:
		return 4
	}
	return -1
}

// CanTransitionTo reports whether target is a strictly forward move.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	from, to := s.rank(), target.rank()
	return from >= 0 && to >= 0 && to > from
}

// AllowsLineMutation reports whether lines and allocations of an order in
// this status may be added, edited, replaced or deleted.
func (s OrderStatus) AllowsLineMutation() bool {
	return s == OrderStatusLocked
}

// Order is a purchase order. It owns its lines; deleting the order
// cascades to them.
type Order struct {
	ID                     int         `gorm:"primary_key" json:"id"`
	Number                 string      `gorm:"size:20;not null;uniqueIndex" json:"number"`
	Name                   string      `gorm:"size:255;default:null" json:"name"`
	Status                 OrderStatus `gorm:"type:enum('draft','locked','distributed','financial','completed');not null;default:'locked'" json:"status"`
	IsPartiallyDistributed bool        `gorm:"not null;default:false" json:"is_partially_distributed"`
	CreatedBy              int         `gorm:"default:null" json:"created_by"`
	OrderLines             []OrderLine `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE" json:"order_lines,omitempty"`
	CreatedAt              time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewOrder struct {
	Name  string         `json:"name"`
	Lines []NewOrderLine `json:"lines" binding:"required"`
}

func (input *NewOrder) Validate() error {
	if len(input.Lines) == 0 {
		return utils.NewValidationError("order must contain at least one line")
	}
	for i := range input.Lines {
		if err := input.Lines[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

var orderNumberPattern = regexp.MustCompile(`^ORD-(\d+)$`)

// NextOrderNumber computes the next sequential order number from the set of
// existing ones. Numbers that do not match ORD-<digits> are skipped. The
// counter is not persisted separately, so the result is only stable under
// the single active session this tool targets.
func NextOrderNumber(existing []string) string {
	max := 0
	for _, number := range existing {
		match := orderNumberPattern.FindStringSubmatch(number)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("ORD-%03d", max+1)
}

// TotalOrderedTons sums quantityInTons over the order's lines.
func (order *Order) TotalOrderedTons() decimal.Decimal {
	total := decimal.Zero
	for i := range order.OrderLines {
		total = total.Add(order.OrderLines[i].QuantityInTons)
	}
	return total
}
