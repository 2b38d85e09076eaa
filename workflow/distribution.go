package workflow

import (
	"context"

	"github.com/xurshidboymirzaev403-a11y/logistics/models"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

// lockedOrder loads an order and rejects line/allocation mutations outside
// the locked status.
func (w *Workflow) lockedOrder(ctx context.Context, orderId int) (*models.Order, error) {
	order, err := w.store.Orders().Get(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if !order.Status.AllowsLineMutation() {
		return nil, utils.NewValidationError("order %s is %s; lines can only change while locked", order.Number, order.Status)
	}
	return order, nil
}

// AddOrderLine appends a line to a locked order.
func (w *Workflow) AddOrderLine(ctx context.Context, orderId int, input *models.NewOrderLine) (*models.OrderLine, *models.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}
	order, err := w.lockedOrder(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}

	line := models.OrderLine{
		OrderId:        order.ID,
		ItemId:         input.ItemId,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		QuantityInTons: input.Tons(),
		ContainerSize:  input.ContainerSize,
		ContainerIndex: input.ContainerIndex,
	}
	if err := w.store.OrderLines().Create(ctx, &line); err != nil {
		w.logError(ctx, "AddOrderLine", input, err)
		return nil, nil, err
	}

	entry, err := w.audit(ctx, models.AuditActionAdd, EntityOrderLine, line.ID, map[string]interface{}{
		"order_id": order.ID,
		"item_id":  line.ItemId,
		"tons":     line.QuantityInTons,
	})
	if err != nil {
		return nil, nil, err
	}
	return &line, entry, nil
}

// DeleteOrderLine removes a line and its allocations from a locked order.
func (w *Workflow) DeleteOrderLine(ctx context.Context, orderLineId int) (*models.AuditLog, error) {
	if err := requireAdminMode(ctx, "deleting an order line"); err != nil {
		return nil, err
	}
	line, err := w.store.OrderLines().Get(ctx, orderLineId)
	if err != nil {
		return nil, err
	}
	if _, err := w.lockedOrder(ctx, line.OrderId); err != nil {
		return nil, err
	}

	if err := w.store.Allocations().DeleteByOrderLine(ctx, orderLineId); err != nil {
		w.logError(ctx, "DeleteOrderLine", orderLineId, err)
		return nil, err
	}
	if err := w.store.OrderLines().Delete(ctx, orderLineId); err != nil {
		w.logError(ctx, "DeleteOrderLine", orderLineId, err)
		return nil, err
	}

	return w.audit(ctx, models.AuditActionDelete, EntityOrderLine, orderLineId, map[string]interface{}{
		"order_id": line.OrderId,
		"tons":     line.QuantityInTons,
	})
}

// CreateAllocation commits part of a line's quantity to a supplier. The
// over-allocation guard runs against the line's existing allocations before
// anything is written.
func (w *Workflow) CreateAllocation(ctx context.Context, input *models.NewAllocation) (*models.Allocation, *models.AuditLog, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}
	line, err := w.store.OrderLines().Get(ctx, input.OrderLineId)
	if err != nil {
		return nil, nil, err
	}
	if _, err := w.lockedOrder(ctx, line.OrderId); err != nil {
		return nil, nil, err
	}
	if _, err := w.store.Suppliers().Get(ctx, input.SupplierId); err != nil {
		return nil, nil, err
	}

	existing, err := w.store.Allocations().ListByOrderLine(ctx, input.OrderLineId)
	if err != nil {
		w.logError(ctx, "CreateAllocation", input, err)
		return nil, nil, err
	}
	tons := models.ToTons(input.Quantity, input.Unit, line.ContainerSize)
	if err := models.CanAccept(line, existing, tons); err != nil {
		return nil, nil, err
	}

	allocation := models.Allocation{
		OrderId:        line.OrderId,
		OrderLineId:    line.ID,
		SupplierId:     input.SupplierId,
		ItemId:         line.ItemId,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		QuantityInTons: tons,
		PricePerTon:    input.PricePerTon,
		TotalSum:       models.AllocationTotal(tons, input.PricePerTon),
		Currency:       input.Currency,
	}
	if err := w.store.Allocations().Create(ctx, &allocation); err != nil {
		w.logError(ctx, "CreateAllocation", input, err)
		return nil, nil, err
	}

	entry, err := w.audit(ctx, models.AuditActionCreate, EntityAllocation, allocation.ID, map[string]interface{}{
		"order_line_id": line.ID,
		"supplier_id":   allocation.SupplierId,
		"tons":          allocation.QuantityInTons,
		"total_sum":     allocation.TotalSum,
		"currency":      allocation.Currency,
	})
	if err != nil {
		return nil, nil, err
	}
	return &allocation, entry, nil
}

// DeleteAllocation removes an allocation. Always permitted; no reversal
// bookkeeping beyond the removal itself.
func (w *Workflow) DeleteAllocation(ctx context.Context, allocationId int) (*models.AuditLog, error) {
	allocation, err := w.store.Allocations().Get(ctx, allocationId)
	if err != nil {
		return nil, err
	}
	if err := w.store.Allocations().Delete(ctx, allocationId); err != nil {
		w.logError(ctx, "DeleteAllocation", allocationId, err)
		return nil, err
	}
	return w.audit(ctx, models.AuditActionDelete, EntityAllocation, allocationId, map[string]interface{}{
		"order_line_id": allocation.OrderLineId,
		"supplier_id":   allocation.SupplierId,
		"tons":          allocation.QuantityInTons,
	})
}

// ReplaceOrderLine restructures a line into one or more replacement lines.
// All prior allocations on the line are removed, then the plan is applied:
// a same-quantity single entry rewrites the line in place, otherwise the
// original shrinks to the unconsumed remainder (or disappears when nothing
// remains) and siblings are created for each entry.
func (w *Workflow) ReplaceOrderLine(ctx context.Context, orderLineId int, replacements []models.ReplacementLine) ([]models.OrderLine, *models.AuditLog, error) {
	line, err := w.store.OrderLines().Get(ctx, orderLineId)
	if err != nil {
		return nil, nil, err
	}
	if _, err := w.lockedOrder(ctx, line.OrderId); err != nil {
		return nil, nil, err
	}

	plan, err := models.PlanReplacement(line, replacements)
	if err != nil {
		return nil, nil, err
	}

	if err := w.store.Allocations().DeleteByOrderLine(ctx, line.ID); err != nil {
		w.logError(ctx, "ReplaceOrderLine", orderLineId, err)
		return nil, nil, err
	}

	result := []models.OrderLine{}
	switch {
	case plan.RewriteInPlace:
		entry := plan.Siblings[0]
		line.ItemId = entry.ItemId
		line.Quantity = entry.Quantity
		line.Unit = entry.Unit
		line.QuantityInTons = models.ToTons(entry.Quantity, entry.Unit, line.ContainerSize)
		if err := w.store.OrderLines().Update(ctx, line); err != nil {
			w.logError(ctx, "ReplaceOrderLine", orderLineId, err)
			return nil, nil, err
		}
		result = append(result, *line)
	case plan.DeleteOriginal:
		if err := w.store.OrderLines().Delete(ctx, line.ID); err != nil {
			w.logError(ctx, "ReplaceOrderLine", orderLineId, err)
			return nil, nil, err
		}
	default:
		line.Quantity = plan.ShrinkToTons
		line.Unit = models.UnitTon
		line.QuantityInTons = plan.ShrinkToTons
		if err := w.store.OrderLines().Update(ctx, line); err != nil {
			w.logError(ctx, "ReplaceOrderLine", orderLineId, err)
			return nil, nil, err
		}
		result = append(result, *line)
	}

	if !plan.RewriteInPlace {
		for i := range plan.Siblings {
			entry := &plan.Siblings[i]
			sibling := models.OrderLine{
				OrderId:        line.OrderId,
				ItemId:         entry.ItemId,
				Quantity:       entry.Quantity,
				Unit:           entry.Unit,
				QuantityInTons: models.ToTons(entry.Quantity, entry.Unit, line.ContainerSize),
				ContainerSize:  line.ContainerSize,
				ContainerIndex: line.ContainerIndex,
			}
			if err := w.store.OrderLines().Create(ctx, &sibling); err != nil {
				w.logError(ctx, "ReplaceOrderLine", entry, err)
				return nil, nil, err
			}
			result = append(result, sibling)
		}
	}

	entry, err := w.audit(ctx, plan.Action, EntityOrderLine, orderLineId, map[string]interface{}{
		"order_id":     line.OrderId,
		"replacements": plan.Siblings,
	})
	if err != nil {
		return nil, nil, err
	}
	return result, entry, nil
}
