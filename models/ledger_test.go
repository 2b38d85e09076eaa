package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

func tons(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLine(id int, quantityInTons string) *OrderLine {
	return &OrderLine{
		ID:             id,
		OrderId:        1,
		ItemId:         1,
		Quantity:       tons(quantityInTons),
		Unit:           UnitTon,
		QuantityInTons: tons(quantityInTons),
	}
}

func testAllocation(lineId int, quantityInTons, pricePerTon string) Allocation {
	q := tons(quantityInTons)
	p := tons(pricePerTon)
	return Allocation{
		OrderId:        1,
		OrderLineId:    lineId,
		SupplierId:     1,
		ItemId:         1,
		Quantity:       q,
		Unit:           UnitTon,
		QuantityInTons: q,
		PricePerTon:    p,
		TotalSum:       AllocationTotal(q, p),
		Currency:       CurrencyUSD,
	}
}

func TestReconcileFullyDistributed(t *testing.T) {
	line := testLine(1, "100")
	allocations := []Allocation{
		testAllocation(1, "60", "50"),
		testAllocation(1, "40", "55"),
	}

	state := Reconcile(line, allocations)
	if !state.AllocatedTons.Equal(tons("100")) {
		t.Fatalf("allocated = %s, want 100", state.AllocatedTons)
	}
	if !state.RemainderTons.IsZero() {
		t.Fatalf("remainder = %s, want 0", state.RemainderTons)
	}
	if !state.IsFullyDistributed {
		t.Fatal("expected fully distributed")
	}
}

func TestReconcilePartial(t *testing.T) {
	line := testLine(1, "100")
	allocations := []Allocation{testAllocation(1, "60", "50")}

	state := Reconcile(line, allocations)
	if !state.RemainderTons.Equal(tons("40")) {
		t.Fatalf("remainder = %s, want 40", state.RemainderTons)
	}
	if state.IsFullyDistributed {
		t.Fatal("60 of 100 should not be fully distributed")
	}
}

func TestReconcileIgnoresOtherLines(t *testing.T) {
	line := testLine(1, "50")
	allocations := []Allocation{
		testAllocation(1, "30", "10"),
		testAllocation(2, "500", "10"),
	}
	state := Reconcile(line, allocations)
	if !state.AllocatedTons.Equal(tons("30")) {
		t.Fatalf("allocated = %s, want 30", state.AllocatedTons)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	line := testLine(1, "80")
	allocations := []Allocation{testAllocation(1, "25.5", "42")}

	first := Reconcile(line, allocations)
	second := Reconcile(line, allocations)
	if !first.AllocatedTons.Equal(second.AllocatedTons) ||
		!first.RemainderTons.Equal(second.RemainderTons) ||
		first.IsFullyDistributed != second.IsFullyDistributed {
		t.Fatalf("reconcile not idempotent: %+v vs %+v", first, second)
	}
}

func TestCanAcceptBoundary(t *testing.T) {
	line := testLine(1, "100")
	allocations := []Allocation{testAllocation(1, "60", "50")}

	// The exact remainder must go through and complete the line.
	if err := CanAccept(line, allocations, tons("40")); err != nil {
		t.Fatalf("exact remainder rejected: %v", err)
	}
	full := append(allocations, testAllocation(1, "40", "55"))
	if state := Reconcile(line, full); !state.IsFullyDistributed {
		t.Fatal("line should be fully distributed after exact remainder")
	}

	// Remainder + 0.002 breaches the tolerance.
	err := CanAccept(line, allocations, tons("40.002"))
	if err == nil {
		t.Fatal("expected over-allocation rejection")
	}
	if !utils.IsOverAllocationError(err) {
		t.Fatalf("expected OverAllocationError, got %T", err)
	}
}

func TestCanAcceptWithinTolerance(t *testing.T) {
	line := testLine(1, "100")
	if err := CanAccept(line, nil, tons("100.001")); err != nil {
		t.Fatalf("allocation within tolerance rejected: %v", err)
	}
}

func TestSummarizeDistribution(t *testing.T) {
	lines := []OrderLine{*testLine(1, "100"), *testLine(2, "50")}
	lines[1].ID = 2
	allocations := []Allocation{
		testAllocation(1, "100", "50"),
		testAllocation(2, "20", "30"),
	}

	summary := SummarizeDistribution(lines, allocations)
	if !summary.TotalOrderedTons.Equal(tons("150")) {
		t.Fatalf("total ordered = %s, want 150", summary.TotalOrderedTons)
	}
	if !summary.TotalAllocatedTons.Equal(tons("120")) {
		t.Fatalf("total allocated = %s, want 120", summary.TotalAllocatedTons)
	}
	if !summary.TotalRemainingTons.Equal(tons("30")) {
		t.Fatalf("total remaining = %s, want 30", summary.TotalRemainingTons)
	}
	if summary.IsFullyDistributed {
		t.Fatal("order with an open line should not be fully distributed")
	}
	if len(summary.UndistributedLines) != 1 || summary.UndistributedLines[0].OrderLineId != 2 {
		t.Fatalf("undistributed lines = %+v, want only line 2", summary.UndistributedLines)
	}
}

func TestPlanReplacementInPlace(t *testing.T) {
	line := testLine(1, "100")
	plan, err := PlanReplacement(line, []ReplacementLine{{ItemId: 9, Quantity: tons("100"), Unit: UnitTon}})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Action != AuditActionReplace {
		t.Fatalf("action = %s, want REPLACE", plan.Action)
	}
	if !plan.RewriteInPlace || plan.DeleteOriginal {
		t.Fatalf("1:1 swap should rewrite in place, got %+v", plan)
	}
}

func TestPlanReplacementPartial(t *testing.T) {
	line := testLine(1, "100")
	plan, err := PlanReplacement(line, []ReplacementLine{{ItemId: 9, Quantity: tons("70"), Unit: UnitTon}})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Action != AuditActionReplacePartial {
		t.Fatalf("action = %s, want REPLACE_PARTIAL", plan.Action)
	}
	if plan.RewriteInPlace || plan.DeleteOriginal {
		t.Fatalf("smaller single entry should shrink the original, got %+v", plan)
	}
	if !plan.ShrinkToTons.Equal(tons("30")) {
		t.Fatalf("shrink to = %s, want 30", plan.ShrinkToTons)
	}
}

func TestPlanReplacementMulti(t *testing.T) {
	line := testLine(1, "100")
	plan, err := PlanReplacement(line, []ReplacementLine{
		{ItemId: 9, Quantity: tons("30"), Unit: UnitTon},
		{ItemId: 10, Quantity: tons("50"), Unit: UnitTon},
	})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Action != AuditActionReplaceMulti {
		t.Fatalf("action = %s, want REPLACE_MULTI", plan.Action)
	}
	if !plan.ShrinkToTons.Equal(tons("20")) {
		t.Fatalf("shrink to = %s, want 20", plan.ShrinkToTons)
	}
	if plan.DeleteOriginal {
		t.Fatal("20t remainder should shrink, not delete")
	}
}

func TestPlanReplacementMultiConsumesAll(t *testing.T) {
	line := testLine(1, "100")
	plan, err := PlanReplacement(line, []ReplacementLine{
		{ItemId: 9, Quantity: tons("60"), Unit: UnitTon},
		{ItemId: 10, Quantity: tons("40"), Unit: UnitTon},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !plan.DeleteOriginal {
		t.Fatal("zero remainder should delete the original line")
	}
}

func TestPlanReplacementRejectsOversizeAndBadInput(t *testing.T) {
	line := testLine(1, "100")

	if _, err := PlanReplacement(line, []ReplacementLine{{ItemId: 9, Quantity: tons("100.002"), Unit: UnitTon}}); err == nil {
		t.Fatal("oversize replacement should be rejected")
	}
	if _, err := PlanReplacement(line, nil); err == nil {
		t.Fatal("empty replacement should be rejected")
	}
	if _, err := PlanReplacement(line, []ReplacementLine{{ItemId: 0, Quantity: tons("10"), Unit: UnitTon}}); err == nil {
		t.Fatal("missing item should be rejected")
	}
	if _, err := PlanReplacement(line, []ReplacementLine{{ItemId: 9, Quantity: tons("0"), Unit: UnitTon}}); err == nil {
		t.Fatal("zero quantity should be rejected")
	}
}

func TestPlanReplacementConvertsUnits(t *testing.T) {
	line := testLine(1, "52")
	plan, err := PlanReplacement(line, []ReplacementLine{
		{ItemId: 9, Quantity: tons("2"), Unit: UnitContainer},
	})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Action != AuditActionReplace {
		t.Fatalf("2 containers at 26t equal 52t; action = %s, want REPLACE", plan.Action)
	}
}
