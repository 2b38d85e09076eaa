package models

import (
	"github.com/shopspring/decimal"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

// DistributionSummary is the reconciled state of one order line against its
// allocations.
type DistributionSummary struct {
	AllocatedTons      decimal.Decimal `json:"allocated_tons"`
	RemainderTons      decimal.Decimal `json:"remainder_tons"`
	IsFullyDistributed bool            `json:"is_fully_distributed"`
}

// AllocatedTons sums quantityInTons over the allocations that belong to the
// given line. Allocations referencing other lines are ignored so callers may
// pass an order-wide slice.
func AllocatedTons(lineId int, allocations []Allocation) decimal.Decimal {
	total := decimal.Zero
	for i := range allocations {
		if allocations[i].OrderLineId == lineId {
			total = total.Add(allocations[i].QuantityInTons)
		}
	}
	return total
}

// Reconcile computes the distribution state of one line. The remainder may
// be negative only if the CanAccept guard was bypassed.
func Reconcile(line *OrderLine, allocations []Allocation) DistributionSummary {
	allocated := AllocatedTons(line.ID, allocations)
	remainder := line.QuantityInTons.Sub(allocated)
	return DistributionSummary{
		AllocatedTons:      allocated,
		RemainderTons:      remainder,
		IsFullyDistributed: remainder.Abs().LessThan(QtyTolerance),
	}
}

// CanAccept is the over-allocation guard invoked before creating a new
// allocation: allocated + new must not exceed ordered + tolerance.
func CanAccept(line *OrderLine, allocations []Allocation, newTons decimal.Decimal) error {
	allocated := AllocatedTons(line.ID, allocations)
	limit := line.QuantityInTons.Add(QtyTolerance)
	if allocated.Add(newTons).GreaterThan(limit) {
		return utils.NewOverAllocationError(
			"allocation of %s t exceeds the %s t remaining on the line",
			utils.FormatTons(newTons),
			utils.FormatTons(line.QuantityInTons.Sub(allocated)),
		)
	}
	return nil
}

// LineRemainder describes one under-distributed line in an order summary.
type LineRemainder struct {
	OrderLineId   int             `json:"order_line_id"`
	ItemId        int             `json:"item_id"`
	OrderedTons   decimal.Decimal `json:"ordered_tons"`
	AllocatedTons decimal.Decimal `json:"allocated_tons"`
	RemainingTons decimal.Decimal `json:"remaining_tons"`
}

// OrderDistributionSummary aggregates distribution across all lines of an
// order. Finance staff see it before accepting payment on a partially
// distributed order.
type OrderDistributionSummary struct {
	TotalOrderedTons   decimal.Decimal `json:"total_ordered_tons"`
	TotalAllocatedTons decimal.Decimal `json:"total_allocated_tons"`
	TotalRemainingTons decimal.Decimal `json:"total_remaining_tons"`
	UndistributedLines []LineRemainder `json:"undistributed_lines"`
	IsFullyDistributed bool            `json:"is_fully_distributed"`
}

// SummarizeDistribution reconciles every line of an order and collects the
// lines whose remainder exceeds the tolerance.
func SummarizeDistribution(lines []OrderLine, allocations []Allocation) OrderDistributionSummary {
	summary := OrderDistributionSummary{
		TotalOrderedTons:   decimal.Zero,
		TotalAllocatedTons: decimal.Zero,
		IsFullyDistributed: true,
	}
	for i := range lines {
		line := &lines[i]
		state := Reconcile(line, allocations)
		summary.TotalOrderedTons = summary.TotalOrderedTons.Add(line.QuantityInTons)
		summary.TotalAllocatedTons = summary.TotalAllocatedTons.Add(state.AllocatedTons)
		if !state.IsFullyDistributed {
			summary.IsFullyDistributed = false
		}
		if state.RemainderTons.GreaterThan(QtyTolerance) {
			summary.UndistributedLines = append(summary.UndistributedLines, LineRemainder{
				OrderLineId:   line.ID,
				ItemId:        line.ItemId,
				OrderedTons:   line.QuantityInTons,
				AllocatedTons: state.AllocatedTons,
				RemainingTons: state.RemainderTons,
			})
		}
	}
	summary.TotalRemainingTons = summary.TotalOrderedTons.Sub(summary.TotalAllocatedTons)
	return summary
}

// ReplacementLine is one entry of a line replacement request.
type ReplacementLine struct {
	ItemId   int             `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     Unit            `json:"unit" binding:"required"`
}

// ReplacementPlan is the computed effect of replacing a line. The workflow
// layer applies it: delete the original line's allocations, then rewrite,
// shrink or delete the original, then create the siblings.
type ReplacementPlan struct {
	Action         AuditAction
	RewriteInPlace bool
	ShrinkToTons   decimal.Decimal
	DeleteOriginal bool
	Siblings       []ReplacementLine
}

// PlanReplacement validates a replacement request against the original line
// and decides which shape it takes:
//   - one entry with the same quantity rewrites the line in place (REPLACE);
//   - one smaller entry shrinks the original and adds a sibling
//     (REPLACE_PARTIAL);
//   - multiple entries add siblings and shrink the original to the unconsumed
//     remainder, deleting it when the remainder is within tolerance of zero
//     (REPLACE_MULTI).
//
// Prior allocations on the original line no longer apply in any branch.
func PlanReplacement(line *OrderLine, replacements []ReplacementLine) (*ReplacementPlan, error) {
	if len(replacements) == 0 {
		return nil, utils.NewValidationError("replacement requires at least one line")
	}
	replacedTons := decimal.Zero
	for i := range replacements {
		entry := &replacements[i]
		if entry.ItemId == 0 {
			return nil, utils.NewValidationError("replacement line requires an item")
		}
		if !entry.Quantity.IsPositive() {
			return nil, utils.NewValidationError("replacement quantity must be positive")
		}
		if !entry.Unit.IsValid() {
			return nil, utils.NewValidationError("invalid unit %q", entry.Unit)
		}
		replacedTons = replacedTons.Add(ToTons(entry.Quantity, entry.Unit, line.ContainerSize))
	}
	if replacedTons.GreaterThan(line.QuantityInTons.Add(QtyTolerance)) {
		return nil, utils.NewValidationError(
			"replacement total %s t exceeds the original %s t",
			utils.FormatTons(replacedTons),
			utils.FormatTons(line.QuantityInTons),
		)
	}

	remainder := line.QuantityInTons.Sub(replacedTons)
	plan := &ReplacementPlan{Siblings: replacements, ShrinkToTons: remainder}

	if len(replacements) == 1 {
		if WithinTolerance(replacedTons, line.QuantityInTons) {
			plan.Action = AuditActionReplace
			plan.RewriteInPlace = true
			plan.ShrinkToTons = decimal.Zero
			return plan, nil
		}
		plan.Action = AuditActionReplacePartial
		return plan, nil
	}

	plan.Action = AuditActionReplaceMulti
	if remainder.Abs().LessThan(QtyTolerance) {
		plan.DeleteOriginal = true
		plan.ShrinkToTons = decimal.Zero
	}
	return plan, nil
}
