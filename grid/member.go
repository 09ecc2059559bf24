package grid

import (
	"fmt"

	"github.com/arloliu/pdfgrid/errs"
)

// Member is one realization of the PDF set: the central value or one
// error/replica variation. It owns an ordered sequence of subgrids, sorted by
// increasing lower Q2 bound, non-overlapping except at shared boundary knots.
type Member struct {
	subgrids []*Subgrid
}

// NewMember builds a Member and validates the subgrid tiling: ascending Q2
// order, no overlap beyond the shared boundary knot, and adjacent subgrids
// sharing that boundary knot exactly (the continuity invariant at flavor
// thresholds depends on it).
func NewMember(subgrids []*Subgrid) (*Member, error) {
	if len(subgrids) == 0 {
		return nil, errs.ErrNoSubgrids
	}

	for i := 1; i < len(subgrids); i++ {
		prev, cur := subgrids[i-1], subgrids[i]
		if cur.Q2s().Min() < prev.Q2s().Max() {
			return nil, fmt.Errorf("%w: subgrid %d starts at Q2=%g below subgrid %d end Q2=%g",
				errs.ErrSubgridOverlap, i, cur.Q2s().Min(), i-1, prev.Q2s().Max())
		}
		if cur.Q2s().Min() != prev.Q2s().Max() {
			return nil, fmt.Errorf("%w: subgrid %d starts at Q2=%g, subgrid %d ends at Q2=%g",
				errs.ErrSubgridGap, i, cur.Q2s().Min(), i-1, prev.Q2s().Max())
		}
	}

	owned := make([]*Subgrid, len(subgrids))
	copy(owned, subgrids)

	return &Member{subgrids: owned}, nil
}

// NumSubgrids returns the number of subgrids tiling the member's domain.
func (m *Member) NumSubgrids() int {
	return len(m.subgrids)
}

// Subgrid returns the subgrid at the given index.
func (m *Member) Subgrid(i int) (*Subgrid, error) {
	if i < 0 || i >= len(m.subgrids) {
		return nil, fmt.Errorf("%w: subgrid %d of %d", errs.ErrInvalidSubgridIndex, i, len(m.subgrids))
	}

	return m.subgrids[i], nil
}

// Subgrids returns the ordered subgrid slice. Callers must not modify it.
func (m *Member) Subgrids() []*Subgrid {
	return m.subgrids
}

// Find returns the lowest-indexed subgrid containing the point, so queries
// landing exactly on a shared Q2 boundary knot resolve deterministically to
// the lower subgrid. The continuity invariant makes either side return the
// same value there.
//
// The second return is the subgrid index, or -1 when no subgrid contains the
// point.
func (m *Member) Find(p Point) (*Subgrid, int) {
	for i, sg := range m.subgrids {
		if sg.Contains(p) {
			return sg, i
		}
	}

	return nil, -1
}

// FindNearest returns the subgrid with the smallest squared distance to the
// point. Used for boundary-slope extrapolation when no subgrid contains the
// point outright.
func (m *Member) FindNearest(p Point) (*Subgrid, int) {
	best := -1
	bestDist := 0.0
	for i, sg := range m.subgrids {
		d := sg.DistanceSq(p)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best == -1 {
		return nil, -1
	}

	return m.subgrids[best], best
}
