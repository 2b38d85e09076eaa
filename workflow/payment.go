package workflow

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

// PaymentGroupView is one (supplier, currency) bucket of an order with its
// netted payment state, as the finance screen shows it.
type PaymentGroupView struct {
	Group   models.PaymentGroup   `json:"group"`
	Summary models.PaymentSummary `json:"summary"`
}

// PaymentOverview builds the finance view of an order: every payment group
// with its reconciled state, plus the distribution summary used to warn
// about undistributed quantity before money moves.
func (w *Workflow) PaymentOverview(ctx context.Context, orderId int) ([]PaymentGroupView, *models.OrderDistributionSummary, error) {
	allocations, err := w.store.Allocations().ListByOrder(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}
	payments, err := w.store.Payments().ListByOrder(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}

	views := []PaymentGroupView{}
	for _, group := range models.GroupBySupplierAndCurrency(allocations) {
		views = append(views, PaymentGroupView{
			Group:   group,
			Summary: models.ReconcilePayments(group, payments),
		})
	}

	distribution, err := w.DistributionSummary(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}
	return views, distribution, nil
}

// CreatePayment records a fixed-amount payment. This path is deliberately
// uncapped: cumulative payments may exceed the group total, the overview
// shows a negative remaining instead of blocking.
func (w *Workflow) CreatePayment(ctx context.Context, orderId int, input *models.NewPayment) (*models.PaymentOperation, *models.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}
	if _, err := w.store.Orders().Get(ctx, orderId); err != nil {
		return nil, nil, err
	}
	if _, err := w.store.Suppliers().Get(ctx, input.SupplierId); err != nil {
		return nil, nil, err
	}

	effectiveDate := input.EffectiveDate
	if effectiveDate.IsZero() {
		effectiveDate = time.Now()
	}
	userId, _ := utils.GetUserIdFromContext(ctx)
	payment := models.PaymentOperation{
		OrderId:       orderId,
		SupplierId:    input.SupplierId,
		Type:          input.Type,
		Amount:        input.Amount,
		Currency:      input.Currency,
		EffectiveDate: effectiveDate,
		Comment:       input.Comment,
		CreatedBy:     userId,
	}
	if err := w.store.Payments().Create(ctx, &payment); err != nil {
		w.logError(ctx, "CreatePayment", input, err)
		return nil, nil, err
	}

	entry, err := w.audit(ctx, models.AuditActionCreate, EntityPayment, payment.ID, map[string]interface{}{
		"order_id":    orderId,
		"supplier_id": payment.SupplierId,
		"type":        payment.Type,
		"amount":      payment.Amount,
		"currency":    payment.Currency,
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, entry, nil
}

type PercentagePaymentInput struct {
	SupplierId int                   `json:"supplier_id" binding:"required"`
	Currency   models.Currency       `json:"currency" binding:"required"`
	Type       models.PaymentType    `json:"type" binding:"required"`
	Percent    decimal.Decimal       `json:"percent" binding:"required"`
	Base       models.PercentageBase `json:"base" binding:"required"`
	Comment    string                `json:"comment"`
}

// CreatePercentagePayment resolves the (supplier, currency) group of the
// order, computes the amount from the chosen base and records the payment.
// The computed amount is capped at the group's remaining balance.
func (w *Workflow) CreatePercentagePayment(ctx context.Context, orderId int, input *PercentagePaymentInput) (*models.PaymentOperation, *models.AuditLog, error) {
	allocations, err := w.store.Allocations().ListByOrder(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}
	payments, err := w.store.Payments().ListByOrder(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}

	var group *models.PaymentGroup
	for _, g := range models.GroupBySupplierAndCurrency(allocations) {
		if g.SupplierId == input.SupplierId && g.Currency == input.Currency {
			g := g
			group = &g
			break
		}
	}
	if group == nil {
		return nil, nil, utils.NewValidationError("no %s allocations for this supplier on the order", input.Currency)
	}

	summary := models.ReconcilePayments(*group, payments)
	amount, err := models.PercentageAmount(*group, summary, input.Percent, input.Base)
	if err != nil {
		return nil, nil, err
	}

	return w.CreatePayment(ctx, orderId, &models.NewPayment{
		SupplierId: input.SupplierId,
		Type:       input.Type,
		Amount:     amount,
		Currency:   input.Currency,
		Comment:    input.Comment,
	})
}

// PaymentHistory returns an order's payments newest first.
func (w *Workflow) PaymentHistory(ctx context.Context, orderId int) ([]models.PaymentOperation, error) {
	return w.store.Payments().ListByOrder(ctx, orderId)
}
