package grid

import (
	"fmt"

	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/format"
)

// CouplingTable tabulates the strong coupling as a function of Q2.
//
// A plain table has a degenerate coupling axis. When a grid set is combined
// along the coupling-value axis the table becomes 2-D: one alphas(Q2) curve
// per coupling knot, laid out [coupling][Q2] with Q2 fastest-varying.
type CouplingTable struct {
	q2s       Axis
	couplings Axis
	values    []float64
	logQ2s    []float64
}

// NewCouplingTable builds a coupling table from Q2 knots, optional
// coupling-value knots (nil or empty means a 1-D table), and the value
// tensor of length len(couplings)*len(q2Knots).
func NewCouplingTable(q2Knots, couplingKnots, values []float64) (*CouplingTable, error) {
	q2Axis, err := NewAxis(format.AxisQ2, q2Knots)
	if err != nil {
		return nil, err
	}

	if len(couplingKnots) == 0 {
		couplingKnots = []float64{0}
	}
	cAxis, err := NewAxis(format.AxisAlphas, couplingKnots)
	if err != nil {
		return nil, err
	}

	want := cAxis.Len() * q2Axis.Len()
	if len(values) != want {
		return nil, fmt.Errorf("%w: coupling table has %d values, shape [%d][%d] requires %d",
			errs.ErrShapeMismatch, len(values), cAxis.Len(), q2Axis.Len(), want)
	}

	owned := make([]float64, len(values))
	copy(owned, values)

	return &CouplingTable{
		q2s:       q2Axis,
		couplings: cAxis,
		values:    owned,
		logQ2s:    logKnots(q2Axis.Knots()),
	}, nil
}

// Q2s returns the Q2 knot axis.
func (ct *CouplingTable) Q2s() Axis { return ct.q2s }

// Couplings returns the coupling-value axis; degenerate for 1-D tables.
func (ct *CouplingTable) Couplings() Axis { return ct.couplings }

// Values returns the flattened [coupling][Q2] tensor.
// Callers must not modify it.
func (ct *CouplingTable) Values() []float64 { return ct.values }

// LogQ2s returns the precomputed natural logs of the Q2 knots.
// Callers must not modify the slice.
func (ct *CouplingTable) LogQ2s() []float64 { return ct.logQ2s }

// At returns the stored coupling value at the given knot indices.
func (ct *CouplingTable) At(cIdx, q2Idx int) float64 {
	return ct.values[cIdx*ct.q2s.Len()+q2Idx]
}

// Curve returns the alphas(Q2) row for one coupling knot.
// Callers must not modify the slice.
func (ct *CouplingTable) Curve(cIdx int) []float64 {
	n := ct.q2s.Len()
	return ct.values[cIdx*n : (cIdx+1)*n]
}
