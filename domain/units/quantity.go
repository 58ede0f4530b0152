package units

import (
	"fmt"

	"pyrosense/domain/core"
)

// Quantity is a numeric magnitude (scalar or ordered vector) tagged with a
// unit. Quantities are immutable; Convert returns a new value.
type Quantity struct {
	scalar bool
	value  float64
	values []float64
	unit   Unit
}

// Scalar wraps a single magnitude in a unit.
func Scalar(v float64, u Unit) Quantity {
	return Quantity{scalar: true, value: v, unit: u}
}

// Vector wraps an ordered sequence of magnitudes in a unit. The slice is
// copied so later caller mutation cannot leak in.
func Vector(vs []float64, u Unit) Quantity {
	cp := make([]float64, len(vs))
	copy(cp, vs)
	return Quantity{values: cp, unit: u}
}

// Unit returns the quantity's unit.
func (q Quantity) Unit() Unit { return q.unit }

// IsScalar reports whether the quantity holds a single magnitude.
func (q Quantity) IsScalar() bool { return q.scalar }

// Value returns the scalar magnitude. Calling it on a vector quantity is a
// programming error and panics.
func (q Quantity) Value() float64 {
	if !q.scalar {
		panic("units: Value called on vector quantity")
	}
	return q.value
}

// Values returns a copy of the vector magnitudes. For a scalar quantity it
// returns a one-element slice.
func (q Quantity) Values() []float64 {
	if q.scalar {
		return []float64{q.value}
	}
	cp := make([]float64, len(q.values))
	copy(cp, q.values)
	return cp
}

// Len returns the number of magnitudes (1 for scalars).
func (q Quantity) Len() int {
	if q.scalar {
		return 1
	}
	return len(q.values)
}

// At returns the magnitude at position i of a vector quantity.
func (q Quantity) At(i int) (float64, error) {
	if q.scalar {
		if i == 0 {
			return q.value, nil
		}
		return 0, fmt.Errorf("index %d out of range for scalar quantity", i)
	}
	if i < 0 || i >= len(q.values) {
		return 0, fmt.Errorf("index %d out of range for quantity of length %d", i, len(q.values))
	}
	return q.values[i], nil
}

// Convert returns the quantity expressed in another unit of the same physical
// dimension. Dimensional mismatch fails with ErrIncompatibleUnit.
func (q Quantity) Convert(to Unit) (Quantity, error) {
	if !SameDimension(q.unit, to) {
		return Quantity{}, core.NewIncompatibleUnitError(q.unit.Symbol(), to.Symbol())
	}
	if q.scalar {
		return Scalar(to.fromSI(q.unit.toSI(q.value)), to), nil
	}
	out := make([]float64, len(q.values))
	for i, v := range q.values {
		out[i] = to.fromSI(q.unit.toSI(v))
	}
	return Quantity{values: out, unit: to}, nil
}

// ConvertValue converts one bare magnitude between units of the same
// dimension, failing with ErrIncompatibleUnit otherwise.
func ConvertValue(v float64, from, to Unit) (float64, error) {
	if !SameDimension(from, to) {
		return 0, core.NewIncompatibleUnitError(from.Symbol(), to.Symbol())
	}
	return to.fromSI(from.toSI(v)), nil
}

func (q Quantity) String() string {
	if q.scalar {
		return fmt.Sprintf("%g %s", q.value, q.unit.Symbol())
	}
	return fmt.Sprintf("%v %s", q.values, q.unit.Symbol())
}
