package interp

import (
	"sort"

	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/format"
)

// kernel selects the interpolation scheme along one axis.
type kernel uint8

const (
	// kernelCubic is a 4-point Lagrange stencil, degrading to 3 then 2 points
	// near the axis edges. Used for x and Q2 (on log-space coordinates).
	kernelCubic kernel = iota
	// kernelLinear is a 2-point stencil. Used for kT, A and coupling axes,
	// which typically carry few sampled knots.
	kernelLinear
)

// maxStencil is the widest per-axis stencil (cubic, interior interval).
const maxStencil = 4

// stencil holds the knot indices and Lagrange weights contributing to one
// axis of a tensor-product interpolation. It lives on the stack.
type stencil struct {
	idx [maxStencil]int
	w   [maxStencil]float64
	n   int
}

// pointStencil returns the trivial stencil selecting a single knot.
func pointStencil(i int) stencil {
	s := stencil{n: 1}
	s.idx[0] = i
	s.w[0] = 1

	return s
}

// buildStencil computes the stencil for coordinate u over the strictly
// increasing coords slice (already transformed to interpolation space).
//
// A single-knot axis is degenerate and returns its fixed knot regardless of
// u. An exact knot hit returns a single-point stencil so stored values come
// back without rounding. Out-of-range coordinates fail with ErrOutOfDomain
// under ExtrapolateError, or continue the boundary segment's slope (a linear
// stencil on the outermost interval) under ExtrapolateBoundary.
func buildStencil(coords []float64, u float64, k kernel, policy format.Extrapolation) (stencil, error) {
	n := len(coords)
	if n == 1 {
		return pointStencil(0), nil
	}

	i := sort.SearchFloat64s(coords, u)
	if i < n && coords[i] == u {
		return pointStencil(i), nil
	}

	var lo, hi int
	switch {
	case i == 0: // below the domain
		if policy != format.ExtrapolateBoundary {
			return stencil{}, errs.ErrOutOfDomain
		}
		lo, hi = 0, 1
	case i == n: // above the domain
		if policy != format.ExtrapolateBoundary {
			return stencil{}, errs.ErrOutOfDomain
		}
		lo, hi = n-2, n-1
	default: // coords[i-1] < u < coords[i]
		lo, hi = i-1, i
		if k == kernelCubic {
			// Widen to 4 points, clamped at the subgrid edges: interior
			// intervals get a cubic, edge intervals degrade to quadratic
			// or linear.
			if lo > 0 {
				lo--
			}
			if hi < n-1 {
				hi++
			}
		}
	}

	return lagrangeStencil(coords, u, lo, hi), nil
}

// lagrangeStencil fills Lagrange basis weights for the knots lo..hi at u:
// w_j = prod_{m != j} (u - x_m) / (x_j - x_m).
func lagrangeStencil(coords []float64, u float64, lo, hi int) stencil {
	var s stencil
	s.n = hi - lo + 1
	for j := range s.n {
		xj := coords[lo+j]
		w := 1.0
		for m := range s.n {
			if m == j {
				continue
			}
			xm := coords[lo+m]
			w *= (u - xm) / (xj - xm)
		}
		s.idx[j] = lo + j
		s.w[j] = w
	}

	return s
}
