package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

type PaymentType string

const (
	PaymentTypePrepayment PaymentType = "PREPAYMENT"
	PaymentTypePayoff     PaymentType = "PAYOFF"
)

func (t PaymentType) IsValid() bool {
	return t == PaymentTypePrepayment || t == PaymentTypePayoff
}

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// PaymentOperation is a monetary movement against an (order, supplier,
// currency) group. Payments are append-only; corrections are new entries.
type PaymentOperation struct {
	ID            int             `gorm:"primary_key" json:"id"`
	OrderId       int             `gorm:"index;not null" json:"order_id"`
	SupplierId    int             `gorm:"index;not null" json:"supplier_id"`
	Type          PaymentType     `gorm:"type:enum('PREPAYMENT','PAYOFF');not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Currency      Currency        `gorm:"type:enum('USD','UZS');not null" json:"currency"`
	EffectiveDate time.Time       `gorm:"not null" json:"effective_date"`
	Comment       string          `gorm:"type:text;default:null" json:"comment"`
	CreatedBy     int             `gorm:"default:null" json:"created_by"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewPayment struct {
	SupplierId    int             `json:"supplier_id" binding:"required"`
	Type          PaymentType     `json:"type" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      Currency        `json:"currency" binding:"required"`
	EffectiveDate time.Time       `json:"effective_date"`
	Comment       string          `json:"comment"`
}

func (input *NewPayment) Validate() error {
	if input.SupplierId == 0 {
		return utils.NewValidationError("payment requires a supplier")
	}
	if !input.Type.IsValid() {
		return utils.NewValidationError("invalid payment type %q", input.Type)
	}
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("payment amount must be positive")
	}
	if !input.Currency.IsValid() {
		return utils.NewValidationError("invalid currency %q", input.Currency)
	}
	return nil
}

// PaymentGroup is the reconciliation unit: all allocations of one order to
// one supplier in one currency.
type PaymentGroup struct {
	SupplierId  int             `json:"supplier_id"`
	Currency    Currency        `json:"currency"`
	Allocations []Allocation    `json:"allocations"`
	TotalSum    decimal.Decimal `json:"total_sum"`
}

// GroupBySupplierAndCurrency buckets allocations into payment groups,
// preserving first-seen order.
func GroupBySupplierAndCurrency(allocations []Allocation) []PaymentGroup {
	type key struct {
		supplierId int
		currency   Currency
	}
	byKey := map[key]int{}
	groups := []PaymentGroup{}
	for i := range allocations {
		k := key{allocations[i].SupplierId, allocations[i].Currency}
		index, ok := byKey[k]
		if !ok {
			index = len(groups)
			byKey[k] = index
			groups = append(groups, PaymentGroup{
				SupplierId: k.supplierId,
				Currency:   k.currency,
				TotalSum:   decimal.Zero,
			})
		}
		groups[index].Allocations = append(groups[index].Allocations, allocations[i])
		groups[index].TotalSum = groups[index].TotalSum.Add(allocations[i].TotalSum)
	}
	return groups
}

// PaymentSummary is the netted state of one payment group.
type PaymentSummary struct {
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    PaymentStatus   `json:"status"`
}

// ReconcilePayments nets payments off against a group's total. Remaining may
// go negative when overpaid; fixed-amount entry does not block that.
func ReconcilePayments(group PaymentGroup, payments []PaymentOperation) PaymentSummary {
	paid := decimal.Zero
	for i := range payments {
		if payments[i].SupplierId == group.SupplierId && payments[i].Currency == group.Currency {
			paid = paid.Add(payments[i].Amount)
		}
	}
	summary := PaymentSummary{Paid: paid, Remaining: group.TotalSum.Sub(paid)}
	switch {
	case paid.IsZero():
		summary.Status = PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(group.TotalSum):
		summary.Status = PaymentStatusPaid
	default:
		summary.Status = PaymentStatusPartial
	}
	return summary
}

type PercentageBase string

const (
	PercentageBaseRemaining PercentageBase = "remaining"
	PercentageBaseTotal     PercentageBase = "total"
)

// PercentagePresets are the quick-select percentages the finance screen
// offers; any value in range is accepted.
var PercentagePresets = []int{10, 20, 25, 30, 50, 70, 100}

// PercentageAmount computes a payment amount as a percentage of the chosen
// base, capped at the group's remaining balance so this entry path can never
// push paid past the total.
func PercentageAmount(group PaymentGroup, summary PaymentSummary, percent decimal.Decimal, base PercentageBase) (decimal.Decimal, error) {
	min := decimal.New(1, -2)
	if percent.LessThan(min) || percent.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, utils.NewValidationError("percentage must be between 0.01 and 100")
	}
	var baseAmount decimal.Decimal
	switch base {
	case PercentageBaseRemaining:
		baseAmount = summary.Remaining
	case PercentageBaseTotal:
		baseAmount = group.TotalSum
	default:
		return decimal.Zero, utils.NewValidationError("invalid percentage base %q", base)
	}
	amount := baseAmount.Mul(percent).Div(decimal.NewFromInt(100))
	if amount.GreaterThan(summary.Remaining) {
		amount = summary.Remaining
	}
	if !amount.IsPositive() {
		return decimal.Zero, utils.NewValidationError("nothing remains to pay in this group")
	}
	return amount, nil
}
