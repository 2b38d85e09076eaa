package workflow

import (
	"context"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

// CreateOrder assigns the next sequential number, persists the order in
// status locked and creates its lines from the submitted cart.
func (w *Workflow) CreateOrder(ctx context.Context, input *models.NewOrder) (*models.Order, *models.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}

	existing, err := w.store.Orders().List(ctx)
	if err != nil {
		w.logError(ctx, "CreateOrder", input, err)
		return nil, nil, err
	}
	numbers := make([]string, 0, len(existing))
	for i := range existing {
		numbers = append(numbers, existing[i].Number)
	}

	// Duplicate cart entries for the same item collapse into one line.
	cart := []models.NewOrderLine{}
	for i := range input.Lines {
		cart = models.MergeLines(cart, input.Lines[i])
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	order := models.Order{
		Number:    models.NextOrderNumber(numbers),
		Name:      input.Name,
		Status:    models.OrderStatusLocked,
		CreatedBy: userId,
	}
	if err := w.store.Orders().Create(ctx, &order); err != nil {
		w.logError(ctx, "CreateOrder", input, err)
		return nil, nil, err
	}

	for i := range cart {
		lineInput := &cart[i]
		line := models.OrderLine{
			OrderId:        order.ID,
			ItemId:         lineInput.ItemId,
			Quantity:       lineInput.Quantity,
			Unit:           lineInput.Unit,
			QuantityInTons: lineInput.Tons(),
			ContainerSize:  lineInput.ContainerSize,
			ContainerIndex: lineInput.ContainerIndex,
		}
		if err := w.store.OrderLines().Create(ctx, &line); err != nil {
			w.logError(ctx, "CreateOrder", lineInput, err)
			return nil, nil, err
		}
		order.OrderLines = append(order.OrderLines, line)
	}

	entry, err := w.audit(ctx, models.AuditActionCreate, EntityOrder, order.ID, map[string]interface{}{
		"number": order.Number,
		"lines":  len(order.OrderLines),
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, entry, nil
}

// TransitionOrder moves an order forward along its lifecycle. The move to
// financial is gated on full distribution; an explicit override lets a
// partially distributed order through and flags it for the finance list.
func (w *Workflow) TransitionOrder(ctx context.Context, orderId int, target models.OrderStatus, override bool) (*models.Order, *models.AuditLog, error) {
	if !target.IsValid() {
		return nil, nil, utils.NewValidationError("invalid order status %q", target)
	}
	order, err := w.store.Orders().Get(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, nil, utils.NewValidationError("order %s cannot move from %s to %s", order.Number, order.Status, target)
	}

	if target == models.OrderStatusFinancial {
		allocations, err := w.store.Allocations().ListByOrder(ctx, orderId)
		if err != nil {
			w.logError(ctx, "TransitionOrder", orderId, err)
			return nil, nil, err
		}
		summary := models.SummarizeDistribution(order.OrderLines, allocations)
		if !summary.IsFullyDistributed {
			if !override {
				return nil, nil, utils.NewValidationError(
					"order %s has %s t undistributed; confirm to proceed with partial distribution",
					order.Number,
					utils.FormatTons(summary.TotalRemainingTons),
				)
			}
			order.IsPartiallyDistributed = true
		}
	}

	previous := order.Status
	order.Status = target
	if err := w.store.Orders().Update(ctx, order); err != nil {
		w.logError(ctx, "TransitionOrder", orderId, err)
		return nil, nil, err
	}

	entry, err := w.audit(ctx, models.AuditActionUpdate, EntityOrder, order.ID, map[string]interface{}{
		"status_from":              previous,
		"status_to":                target,
		"is_partially_distributed": order.IsPartiallyDistributed,
	})
	if err != nil {
		return nil, nil, err
	}
	return order, entry, nil
}

// DeleteSaga records which steps of a cascading order delete completed.
// Storage is not transactional here, so a failure leaves the earlier steps
// applied; the saga makes that state explicit to the caller.
type DeleteSaga struct {
	OrderId        int      `json:"order_id"`
	CompletedSteps []string `json:"completed_steps"`
}

// DeleteOrder removes an order and everything hanging off it: lines,
// allocations, payments, then the order itself. Only the order-level delete
// is audited; the cascade is silent.
func (w *Workflow) DeleteOrder(ctx context.Context, orderId int) (*DeleteSaga, *models.AuditLog, error) {
	if err := requireAdminMode(ctx, "deleting an order"); err != nil {
		return nil, nil, err
	}
	order, err := w.store.Orders().Get(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}

	saga := &DeleteSaga{OrderId: orderId}
	steps := []struct {
		name string
		run  func() error
	}{
		{"order_lines", func() error { return w.store.OrderLines().DeleteByOrder(ctx, orderId) }},
		{"allocations", func() error { return w.store.Allocations().DeleteByOrder(ctx, orderId) }},
		{"payments", func() error { return w.store.Payments().DeleteByOrder(ctx, orderId) }},
		{"order", func() error { return w.store.Orders().Delete(ctx, orderId) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			w.logError(ctx, "DeleteOrder", saga, err)
			return saga, nil, err
		}
		saga.CompletedSteps = append(saga.CompletedSteps, step.name)
	}

	entry, err := w.audit(ctx, models.AuditActionDelete, EntityOrder, orderId, map[string]interface{}{
		"number": order.Number,
	})
	if err != nil {
		return saga, nil, err
	}
	return saga, entry, nil
}

// OrderLayout rebuilds the display layout of an order: container-grouped
// when any line was packed, flat otherwise.
func (w *Workflow) OrderLayout(ctx context.Context, orderId int) (models.OrderLayout, error) {
	lines, err := w.store.OrderLines().ListByOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	return models.LayoutLines(lines), nil
}

// DistributionSummary reconciles every line of an order against its
// allocations.
func (w *Workflow) DistributionSummary(ctx context.Context, orderId int) (*models.OrderDistributionSummary, error) {
	lines, err := w.store.OrderLines().ListByOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	allocations, err := w.store.Allocations().ListByOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	summary := models.SummarizeDistribution(lines, allocations)
	return &summary, nil
}
