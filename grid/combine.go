package grid

import (
	"fmt"
	"sort"

	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/format"
)

// CombineNucleons merges grid sets that differ only in nucleon number A into
// one set whose subgrids gain an interpolated A axis.
//
// Every input must carry a degenerate nucleon axis holding its single A
// value; inputs are reordered by that value. The merge is all-or-nothing:
// every precondition is checked before any output is built.
//
// Preconditions:
//   - at least two inputs, identical member counts (ErrMemberCountMismatch)
//   - identical flavor lists and identical alphas/kT/x/Q2 axes per subgrid
//     (ErrIncompatibleDomain)
//   - pairwise distinct A values (ErrDuplicateAxisValue)
//
// The combined set keeps the first input's metadata and coupling table: the
// strong coupling does not run with A.
func CombineNucleons(sets []*GridSet) (*GridSet, error) {
	return combine(sets, format.AxisNucleons)
}

// CombineAlphas merges grid sets that differ only in their strong coupling
// value into one set whose subgrids gain an interpolated coupling axis.
//
// Same preconditions as CombineNucleons, applied to the coupling axis. The
// inputs' coupling tables are stacked into a single 2-D table (one
// alphas(Q2) curve per coupling knot); their Q2 axes must match.
func CombineAlphas(sets []*GridSet) (*GridSet, error) {
	return combine(sets, format.AxisAlphas)
}

func combine(sets []*GridSet, axis format.AxisKind) (*GridSet, error) {
	if len(sets) < 2 {
		return nil, fmt.Errorf("combining along %s requires at least two grid sets, got %d", axis, len(sets))
	}

	memberCount := sets[0].NumMembers()
	for i, gs := range sets {
		if gs.NumMembers() != memberCount {
			return nil, fmt.Errorf("%w: set 0 has %d members, set %d has %d",
				errs.ErrMemberCountMismatch, memberCount, i, gs.NumMembers())
		}
		if err := samePids(sets[0], gs, i); err != nil {
			return nil, err
		}
	}

	// One combining-axis value per input, read from its degenerate axis.
	axisValues, err := combiningValues(sets, axis)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(sets))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return axisValues[order[a]] < axisValues[order[b]]
	})
	for i := 1; i < len(order); i++ {
		if axisValues[order[i]] == axisValues[order[i-1]] {
			return nil, fmt.Errorf("%w: %s=%g provided by sets %d and %d",
				errs.ErrDuplicateAxisValue, axis, axisValues[order[i]], order[i-1], order[i])
		}
	}

	if err := checkAlignedDomains(sets, axis); err != nil {
		return nil, err
	}

	sortedValues := make([]float64, len(order))
	for i, setIdx := range order {
		sortedValues[i] = axisValues[setIdx]
	}

	members := make([]*Member, memberCount)
	for mi := range memberCount {
		members[mi], err = combineMember(sets, order, sortedValues, mi, axis)
		if err != nil {
			return nil, err
		}
	}

	coupling := sets[order[0]].Coupling()
	if axis == format.AxisAlphas {
		coupling, err = combineCouplingTables(sets, order, sortedValues)
		if err != nil {
			return nil, err
		}
	}

	return NewGridSet(sets[0].Pids(), members, sets[order[0]].Metadata().Clone(), coupling)
}

func samePids(ref, gs *GridSet, idx int) error {
	a, b := ref.Pids(), gs.Pids()
	if len(a) != len(b) {
		return fmt.Errorf("%w: set 0 has %d flavors, set %d has %d", errs.ErrIncompatibleDomain, len(a), idx, len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("%w: set %d flavor[%d]=%d differs from set 0 flavor %d",
				errs.ErrIncompatibleDomain, idx, i, b[i], a[i])
		}
	}

	return nil
}

// combiningValues extracts each input's single value on the combining axis,
// requiring the axis to be degenerate and consistent across the whole set.
func combiningValues(sets []*GridSet, axis format.AxisKind) ([]float64, error) {
	values := make([]float64, len(sets))
	for i, gs := range sets {
		var val float64
		first := true
		for mi, m := range gs.Members() {
			for si, sg := range m.Subgrids() {
				ax := combiningAxis(sg, axis)
				if !ax.IsDegenerate() {
					return nil, fmt.Errorf("%w: set %d member %d subgrid %d has %d %s knots",
						errs.ErrNotDegenerate, i, mi, si, ax.Len(), axis)
				}
				if first {
					val = ax.At(0)
					first = false
				} else if ax.At(0) != val {
					return nil, fmt.Errorf("%w: set %d carries %s=%g and %s=%g",
						errs.ErrIncompatibleDomain, i, axis, val, axis, ax.At(0))
				}
			}
		}
		values[i] = val
	}

	return values, nil
}

func combiningAxis(sg *Subgrid, axis format.AxisKind) Axis {
	if axis == format.AxisNucleons {
		return sg.Nucleons()
	}

	return sg.Alphas()
}

// checkAlignedDomains verifies that every non-combining axis and the subgrid
// tiling are identical across inputs. No coercion, no resampling.
func checkAlignedDomains(sets []*GridSet, axis format.AxisKind) error {
	ref := sets[0]
	for i := 1; i < len(sets); i++ {
		gs := sets[i]
		for mi, refMember := range ref.Members() {
			member := gs.Members()[mi]
			if member.NumSubgrids() != refMember.NumSubgrids() {
				return fmt.Errorf("%w: member %d has %d subgrids in set 0, %d in set %d",
					errs.ErrIncompatibleDomain, mi, refMember.NumSubgrids(), member.NumSubgrids(), i)
			}
			for si, refSg := range refMember.Subgrids() {
				sg := member.Subgrids()[si]
				for _, pair := range [][2]Axis{
					{refSg.Kts(), sg.Kts()},
					{refSg.Xs(), sg.Xs()},
					{refSg.Q2s(), sg.Q2s()},
				} {
					if !pair[0].Equal(pair[1]) {
						return fmt.Errorf("%w: member %d subgrid %d %s axis differs between set 0 and set %d",
							errs.ErrIncompatibleDomain, mi, si, pair[0].Kind(), i)
					}
				}
				if axis == format.AxisNucleons && !refSg.Alphas().Equal(sg.Alphas()) {
					return fmt.Errorf("%w: member %d subgrid %d Alphas axis differs between set 0 and set %d",
						errs.ErrIncompatibleDomain, mi, si, i)
				}
				if axis == format.AxisAlphas && !refSg.Nucleons().Equal(sg.Nucleons()) {
					return fmt.Errorf("%w: member %d subgrid %d Nucleons axis differs between set 0 and set %d",
						errs.ErrIncompatibleDomain, mi, si, i)
				}
			}
		}
	}

	return nil
}

func combineMember(sets []*GridSet, order []int, sortedValues []float64, mi int, axis format.AxisKind) (*Member, error) {
	refMember := sets[0].Members()[mi]
	subgrids := make([]*Subgrid, refMember.NumSubgrids())

	for si, refSg := range refMember.Subgrids() {
		var values []float64
		if axis == format.AxisNucleons {
			// A is the outermost dimension: stacking is plain concatenation.
			for _, setIdx := range order {
				sg := sets[setIdx].Members()[mi].Subgrids()[si]
				values = append(values, sg.Values()...)
			}
		} else {
			// alphas sits below A: interleave one block per A index per input.
			blockLen := refSg.PidCount() * refSg.Kts().Len() * refSg.Xs().Len() * refSg.Q2s().Len()
			for aIdx := range refSg.Nucleons().Len() {
				for _, setIdx := range order {
					sg := sets[setIdx].Members()[mi].Subgrids()[si]
					start := aIdx * blockLen
					values = append(values, sg.Values()[start:start+blockLen]...)
				}
			}
		}

		nucleons := refSg.Nucleons().Knots()
		alphas := refSg.Alphas().Knots()
		if axis == format.AxisNucleons {
			nucleons = sortedValues
		} else {
			alphas = sortedValues
		}

		sg, err := NewSubgrid(nucleons, alphas, refSg.Kts().Knots(), refSg.Xs().Knots(), refSg.Q2s().Knots(),
			refSg.PidCount(), values)
		if err != nil {
			return nil, fmt.Errorf("combining member %d subgrid %d: %w", mi, si, err)
		}
		subgrids[si] = sg
	}

	member, err := NewMember(subgrids)
	if err != nil {
		return nil, fmt.Errorf("combining member %d: %w", mi, err)
	}

	return member, nil
}

func combineCouplingTables(sets []*GridSet, order []int, sortedValues []float64) (*CouplingTable, error) {
	allNil := true
	for _, gs := range sets {
		if gs.Coupling() != nil {
			allNil = false
			break
		}
	}
	if allNil {
		return nil, nil
	}

	ref := sets[order[0]].Coupling()
	if ref == nil {
		return nil, fmt.Errorf("%w: set %d has no coupling table", errs.ErrIncompatibleDomain, order[0])
	}

	var values []float64
	for _, setIdx := range order {
		ct := sets[setIdx].Coupling()
		if ct == nil {
			return nil, fmt.Errorf("%w: set %d has no coupling table", errs.ErrIncompatibleDomain, setIdx)
		}
		if !ct.Couplings().IsDegenerate() {
			return nil, fmt.Errorf("%w: set %d coupling table already has %d coupling knots",
				errs.ErrNotDegenerate, setIdx, ct.Couplings().Len())
		}
		if !ct.Q2s().Equal(ref.Q2s()) {
			return nil, fmt.Errorf("%w: set %d coupling table Q2 axis differs from set %d",
				errs.ErrIncompatibleDomain, setIdx, order[0])
		}
		values = append(values, ct.Curve(0)...)
	}

	return NewCouplingTable(ref.Q2s().Knots(), sortedValues, values)
}
