package models

import "github.com/shopspring/decimal"

// Unit is the unit of measure a quantity was originally entered in.
// Values match the reference data the operators work with.
type Unit string

const (
	UnitTon       Unit = "т"
	UnitKilogram  Unit = "кг"
	UnitContainer Unit = "конт."
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitTon, UnitKilogram, UnitContainer:
		return true
	}
	return false
}

const (
	// ContainerCapacityDefault is the standard container class in tons.
	ContainerCapacityDefault = 26
	// ContainerCapacityException is the oversized container class in tons.
	ContainerCapacityException = 27

	KgPerTon = 1000
)

// QtyTolerance is the shared 0.001-ton epsilon. It absorbs floating-point
// drift from unit conversion and is the single constant used by every
// remainder / full-distribution / replacement boundary check.
var QtyTolerance = decimal.New(1, -3)

// ContainerCapacity returns the capacity in tons for a container size.
// Any size other than the 27t exception falls back to the 26t default.
func ContainerCapacity(size int) decimal.Decimal {
	if size == ContainerCapacityException {
		return decimal.NewFromInt(ContainerCapacityException)
	}
	return decimal.NewFromInt(ContainerCapacityDefault)
}

// ToTons converts a quantity in the given unit to tons. containerSize is only
// consulted for container quantities; pass 0 for the 26t default.
func ToTons(quantity decimal.Decimal, unit Unit, containerSize int) decimal.Decimal {
	switch unit {
	case UnitTon:
		return quantity
	case UnitKilogram:
		return quantity.Div(decimal.NewFromInt(KgPerTon))
	case UnitContainer:
		return quantity.Mul(ContainerCapacity(containerSize))
	}
	return decimal.Zero
}

// ToContainers converts tons to a (possibly fractional) container count.
func ToContainers(tons decimal.Decimal, containerSize int) decimal.Decimal {
	return tons.Div(ContainerCapacity(containerSize))
}

// ToKg converts tons to kilograms.
func ToKg(tons decimal.Decimal) decimal.Decimal {
	return tons.Mul(decimal.NewFromInt(KgPerTon))
}

// WithinTolerance reports whether two quantities are equal within QtyTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(QtyTolerance)
}
