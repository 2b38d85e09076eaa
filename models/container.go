package models

import (
	"github.com/shopspring/decimal"
	"github.com/xurshidboymirzaev403-a11y/logistics/utils"
)

// WarningThresholdPercent is the advisory load level. Crossing it while
// packing emits a non-blocking warning; only the capacity guard rejects.
const WarningThresholdPercent = 80

type UtilizationBand string

const (
	UtilizationBandGreen  UtilizationBand = "green"
	UtilizationBandYellow UtilizationBand = "yellow"
	UtilizationBandRed    UtilizationBand = "red"
)

// Container is a fixed-capacity packing unit lines are loaded into while an
// order is being assembled.
type Container struct {
	Size     int             `json:"size"`
	Capacity decimal.Decimal `json:"capacity"`
	Lines    []OrderLine     `json:"lines"`
}

// NewContainer returns an empty container of the given size class.
func NewContainer(size int) *Container {
	return &Container{Size: size, Capacity: ContainerCapacity(size)}
}

// CurrentLoad sums the tons already packed.
func (c *Container) CurrentLoad() decimal.Decimal {
	load := decimal.Zero
	for i := range c.Lines {
		load = load.Add(c.Lines[i].QuantityInTons)
	}
	return load
}

// Load packs a line into the container. The capacity check is strict, with
// no tolerance. The returned flag reports whether this load crossed the
// advisory threshold, so the caller can warn exactly once.
func (c *Container) Load(line OrderLine) (crossedWarning bool, err error) {
	before := c.CurrentLoad()
	after := before.Add(line.QuantityInTons)
	if after.GreaterThan(c.Capacity) {
		return false, utils.NewContainerOverloadError(
			"loading %s t would exceed the %s t container capacity",
			utils.FormatTons(line.QuantityInTons),
			c.Capacity.String(),
		)
	}
	c.Lines = append(c.Lines, line)
	threshold := c.Capacity.Mul(decimal.NewFromInt(WarningThresholdPercent)).Div(decimal.NewFromInt(100))
	crossed := before.LessThan(threshold) && !after.LessThan(threshold)
	return crossed, nil
}

// Utilization returns the load as a percentage of capacity.
func (c *Container) Utilization() decimal.Decimal {
	if c.Capacity.IsZero() {
		return decimal.Zero
	}
	return c.CurrentLoad().Div(c.Capacity).Mul(decimal.NewFromInt(100))
}

// Band maps a utilization percentage to its display band. Red should be
// unreachable given the strict guard but is handled for imported data.
func Band(utilization decimal.Decimal) UtilizationBand {
	hundred := decimal.NewFromInt(100)
	threshold := decimal.NewFromInt(WarningThresholdPercent)
	switch {
	case utilization.GreaterThan(hundred):
		return UtilizationBandRed
	case !utilization.LessThan(threshold):
		return UtilizationBandYellow
	default:
		return UtilizationBandGreen
	}
}

// OrderLayout is the display shape of an order's lines: packed into
// containers, or the flat list orders predating the container feature use.
type OrderLayout interface {
	isOrderLayout()
}

// FlatLayout lists lines without packing semantics.
type FlatLayout struct {
	Lines []OrderLine `json:"lines"`
}

// ContainerLayout groups lines back into their original containers.
type ContainerLayout struct {
	Containers []Container `json:"containers"`
}

func (FlatLayout) isOrderLayout()      {}
func (ContainerLayout) isOrderLayout() {}

// LayoutLines rebuilds the display layout of an order's lines. An order is
// container-packed as soon as any line carries a container index; lines
// without one then land in container 0 alongside explicitly indexed peers.
func LayoutLines(lines []OrderLine) OrderLayout {
	packed := false
	for i := range lines {
		if lines[i].ContainerIndex != nil {
			packed = true
			break
		}
	}
	if !packed {
		return FlatLayout{Lines: lines}
	}

	byIndex := map[int]*Container{}
	order := []int{}
	for i := range lines {
		index := utils.DereferencePtr(lines[i].ContainerIndex)
		container, ok := byIndex[index]
		if !ok {
			container = NewContainer(lines[i].ContainerSize)
			byIndex[index] = container
			order = append(order, index)
		}
		container.Lines = append(container.Lines, lines[i])
	}

	layout := ContainerLayout{Containers: make([]Container, 0, len(order))}
	for _, index := range order {
		layout.Containers = append(layout.Containers, *byIndex[index])
	}
	return layout
}

// ContainerTotals aggregates an order's containers for the order card.
type ContainerTotals struct {
	ContainerCount     int             `json:"container_count"`
	TotalWeightTons    decimal.Decimal `json:"total_weight_tons"`
	Count26            int             `json:"count_26"`
	Count27            int             `json:"count_27"`
	AverageUtilization decimal.Decimal `json:"average_utilization"`
}

// SummarizeContainers computes order-level packing aggregates. The average
// utilization is capacity-weighted: total load over total capacity.
func SummarizeContainers(layout ContainerLayout) ContainerTotals {
	totals := ContainerTotals{
		TotalWeightTons:    decimal.Zero,
		AverageUtilization: decimal.Zero,
	}
	totalCapacity := decimal.Zero
	for i := range layout.Containers {
		container := &layout.Containers[i]
		totals.ContainerCount++
		totals.TotalWeightTons = totals.TotalWeightTons.Add(container.CurrentLoad())
		totalCapacity = totalCapacity.Add(container.Capacity)
		if container.Size == ContainerCapacityException {
			totals.Count27++
		} else {
			totals.Count26++
		}
	}
	if totalCapacity.IsPositive() {
		totals.AverageUtilization = totals.TotalWeightTons.Div(totalCapacity).Mul(decimal.NewFromInt(100))
	}
	return totals
}
