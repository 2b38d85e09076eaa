package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

func packedLine(id int, quantityInTons string, containerIndex *int) OrderLine {
	q := tons(quantityInTons)
	return OrderLine{
		ID:             id,
		OrderId:        1,
		ItemId:         1,
		Quantity:       q,
		Unit:           UnitTon,
		QuantityInTons: q,
		ContainerSize:  ContainerCapacityDefault,
		ContainerIndex: containerIndex,
	}
}

func TestContainerLoadSequence(t *testing.T) {
	c := NewContainer(ContainerCapacityDefault)

	crossed, err := c.Load(packedLine(1, "20", nil))
	if err != nil {
		t.Fatal(err)
	}
	if crossed {
		t.Error("20 of 26 should not cross the warning threshold")
	}
	util := c.Utilization()
	if util.Round(1).String() != "76.9" {
		t.Errorf("utilization = %s, want 76.9", util.Round(1))
	}

	crossed, err = c.Load(packedLine(2, "5", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !crossed {
		t.Error("25 of 26 crosses 80%, expected warning")
	}
	util = c.Utilization()
	if util.Round(1).String() != "96.2" {
		t.Errorf("utilization = %s, want 96.2", util.Round(1))
	}

	if _, err := c.Load(packedLine(3, "2", nil)); err == nil {
		t.Fatal("27 of 26 should be rejected")
	} else if !utils.IsContainerOverloadError(err) {
		t.Fatalf("expected ContainerOverloadError, got %T", err)
	}
	if len(c.Lines) != 2 {
		t.Fatalf("rejected load must not change the container, have %d lines", len(c.Lines))
	}
}

func TestContainerLoadStrictBoundary(t *testing.T) {
	c := NewContainer(ContainerCapacityDefault)
	if _, err := c.Load(packedLine(1, "26", nil)); err != nil {
		t.Fatalf("exact capacity rejected: %v", err)
	}

	c = NewContainer(ContainerCapacityDefault)
	if _, err := c.Load(packedLine(1, "26.001", nil)); err == nil {
		t.Fatal("capacity + 0.001 must be rejected, the capacity check has no tolerance")
	}
}

func TestContainerWarningOnlyOnCrossing(t *testing.T) {
	c := NewContainer(ContainerCapacityDefault)
	if crossed, _ := c.Load(packedLine(1, "21", nil)); !crossed {
		t.Fatal("21 of 26 is past 80%, expected warning")
	}
	if crossed, _ := c.Load(packedLine(2, "1", nil)); crossed {
		t.Fatal("already past the threshold, no second warning")
	}
}

func TestBand(t *testing.T) {
	cases := []struct {
		utilization string
		want        UtilizationBand
	}{
		{"0", UtilizationBandGreen},
		{"79.9", UtilizationBandGreen},
		{"80", UtilizationBandYellow},
		{"100", UtilizationBandYellow},
		{"100.1", UtilizationBandRed},
	}
	for _, tc := range cases {
		if got := Band(decimal.RequireFromString(tc.utilization)); got != tc.want {
			t.Errorf("Band(%s) = %s, want %s", tc.utilization, got, tc.want)
		}
	}
}

func TestLayoutLinesFlat(t *testing.T) {
	lines := []OrderLine{packedLine(1, "10", nil), packedLine(2, "20", nil)}
	layout := LayoutLines(lines)
	flat, ok := layout.(FlatLayout)
	if !ok {
		t.Fatalf("expected FlatLayout, got %T", layout)
	}
	if len(flat.Lines) != 2 {
		t.Fatalf("flat layout has %d lines, want 2", len(flat.Lines))
	}
}

func TestLayoutLinesGrouped(t *testing.T) {
	lines := []OrderLine{
		packedLine(1, "10", utils.NewInt(0)),
		packedLine(2, "12", utils.NewInt(0)),
		packedLine(3, "20", utils.NewInt(1)),
	}
	layout := LayoutLines(lines)
	grouped, ok := layout.(ContainerLayout)
	if !ok {
		t.Fatalf("expected ContainerLayout, got %T", layout)
	}
	if len(grouped.Containers) != 2 {
		t.Fatalf("have %d containers, want 2", len(grouped.Containers))
	}
	if len(grouped.Containers[0].Lines) != 2 || len(grouped.Containers[1].Lines) != 1 {
		t.Fatalf("grouping wrong: %d and %d lines", len(grouped.Containers[0].Lines), len(grouped.Containers[1].Lines))
	}
}

func TestSummarizeContainers(t *testing.T) {
	line27 := packedLine(3, "27", utils.NewInt(1))
	line27.ContainerSize = ContainerCapacityException
	lines := []OrderLine{
		packedLine(1, "13", utils.NewInt(0)),
		line27,
	}
	layout := LayoutLines(lines).(ContainerLayout)
	totals := SummarizeContainers(layout)

	if totals.ContainerCount != 2 {
		t.Fatalf("count = %d, want 2", totals.ContainerCount)
	}
	if totals.Count26 != 1 || totals.Count27 != 1 {
		t.Fatalf("26/27 counts = %d/%d, want 1/1", totals.Count26, totals.Count27)
	}
	if !totals.TotalWeightTons.Equal(tons("40")) {
		t.Fatalf("total weight = %s, want 40", totals.TotalWeightTons)
	}
	// 40 of 53 tons of capacity.
	want := tons("40").Div(tons("53")).Mul(decimal.NewFromInt(100))
	if !totals.AverageUtilization.Equal(want) {
		t.Fatalf("average utilization = %s, want %s", totals.AverageUtilization, want)
	}
}
