package grid

import (
	"fmt"

	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/format"
)

// Axis is an immutable, strictly increasing sequence of knot coordinates for
// one kinematic dimension.
//
// A length-1 axis is degenerate: the dimension is fixed at that single value
// and never interpolated. Interpolation along an axis requires length >= 2.
type Axis struct {
	knots []float64
	kind  format.AxisKind
}

// NewAxis creates an Axis of the given kind, validating that the knots are
// non-empty and strictly increasing.
//
// The knot slice is copied; the caller keeps ownership of its argument.
func NewAxis(kind format.AxisKind, knots []float64) (Axis, error) {
	if len(knots) == 0 {
		return Axis{}, fmt.Errorf("%w: %s axis", errs.ErrEmptyAxis, kind)
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] <= knots[i-1] {
			return Axis{}, fmt.Errorf("%w: %s axis knot[%d]=%g <= knot[%d]=%g",
				errs.ErrAxisNotMonotonic, kind, i, knots[i], i-1, knots[i-1])
		}
	}

	owned := make([]float64, len(knots))
	copy(owned, knots)

	return Axis{kind: kind, knots: owned}, nil
}

// Kind returns the kinematic dimension this axis spans.
func (a Axis) Kind() format.AxisKind {
	return a.kind
}

// Len returns the number of knots.
func (a Axis) Len() int {
	return len(a.knots)
}

// At returns the knot coordinate at index i.
func (a Axis) At(i int) float64 {
	return a.knots[i]
}

// Knots returns the underlying knot slice. Callers must not modify it.
func (a Axis) Knots() []float64 {
	return a.knots
}

// Min returns the lowest knot coordinate.
func (a Axis) Min() float64 {
	return a.knots[0]
}

// Max returns the highest knot coordinate.
func (a Axis) Max() float64 {
	return a.knots[len(a.knots)-1]
}

// Contains reports whether v lies within [Min, Max] inclusive.
func (a Axis) Contains(v float64) bool {
	return v >= a.knots[0] && v <= a.knots[len(a.knots)-1]
}

// IsDegenerate reports whether the axis has a single knot, meaning the
// dimension is fixed rather than interpolated.
func (a Axis) IsDegenerate() bool {
	return len(a.knots) == 1
}

// Equal reports whether two axes have identical kinds and bit-identical knots.
func (a Axis) Equal(other Axis) bool {
	if a.kind != other.kind || len(a.knots) != len(other.knots) {
		return false
	}
	for i, v := range a.knots {
		if v != other.knots[i] {
			return false
		}
	}

	return true
}

// Range is the inclusive [Min, Max] domain covered by an axis.
type Range struct {
	Min float64
	Max float64
}

// Range returns the inclusive domain covered by the axis.
//
// A degenerate axis covers the single point [knot, knot].
func (a Axis) Range() Range {
	return Range{Min: a.knots[0], Max: a.knots[len(a.knots)-1]}
}

// Contains reports whether v lies within the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// DistanceSq returns the squared distance from v to the range, zero inside.
func (r Range) DistanceSq(v float64) float64 {
	switch {
	case v < r.Min:
		return (r.Min - v) * (r.Min - v)
	case v > r.Max:
		return (v - r.Max) * (v - r.Max)
	default:
		return 0
	}
}
