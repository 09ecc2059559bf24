package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/format"
	"github.com/arloliu/pdfgrid/grid"
)

// logLinear is linear in (ln x, ln Q2), so every stencil width the evaluator
// can pick reproduces it exactly and tests can assert tight deltas.
func logLinear(x, q2 float64, pidIdx int) float64 {
	return 2*math.Log(x) + 3*math.Log(q2) + 1 + 100*float64(pidIdx)
}

func buildSubgrid(t *testing.T, xs, q2s []float64) *grid.Subgrid {
	t.Helper()

	values := make([]float64, 0, 2*len(xs)*len(q2s))
	for pidIdx := range 2 {
		for _, x := range xs {
			for _, q2 := range q2s {
				values = append(values, logLinear(x, q2, pidIdx))
			}
		}
	}

	sg, err := grid.NewSubgrid([]float64{1}, []float64{0.118}, []float64{0}, xs, q2s, 2, values)
	require.NoError(t, err)

	return sg
}

// newEvalSet tiles two Q2 subgrids sharing the boundary knot at Q2=4, the way
// flavor-threshold grids split their scale range.
func newEvalSet(t *testing.T) *grid.GridSet {
	t.Helper()

	xs := []float64{1e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1.0}
	lower := buildSubgrid(t, xs, []float64{1, 2, 4})
	upper := buildSubgrid(t, xs, []float64{4, 16, 64, 256})

	m, err := grid.NewMember([]*grid.Subgrid{lower, upper})
	require.NoError(t, err)
	gs, err := grid.NewGridSet([]int32{21, 1}, []*grid.Member{m}, nil, nil)
	require.NoError(t, err)

	return gs
}

func TestEvaluateOnKnots(t *testing.T) {
	gs := newEvalSet(t)
	e := NewEvaluator()

	// Queries landing on stored knots must return the stored values
	// bit-exactly, with no interpolation rounding.
	for _, x := range []float64{1e-5, 1e-3, 1.0} {
		for _, q2 := range []float64{1, 2, 4, 16, 256} {
			got, err := e.XfxQ2(gs, 0, 21, x, q2)
			require.NoError(t, err)
			require.Equal(t, logLinear(x, q2, 0), got, "x=%g Q2=%g", x, q2)
		}
	}
}

func TestEvaluateInterior(t *testing.T) {
	gs := newEvalSet(t)
	e := NewEvaluator()

	cases := []struct{ x, q2 float64 }{
		{3e-4, 2.5},  // interior of the lower subgrid
		{0.05, 30},   // interior of the upper subgrid
		{2e-5, 1.5},  // first x interval, quadratic stencil
		{0.7, 100},   // last x interval
		{1e-3, 1.01}, // just above the lower Q2 edge
	}
	for _, tc := range cases {
		got, err := e.XfxQ2(gs, 0, 21, tc.x, tc.q2)
		require.NoError(t, err)
		require.InDelta(t, logLinear(tc.x, tc.q2, 0), got, 1e-9, "x=%g Q2=%g", tc.x, tc.q2)
	}
}

func TestEvaluateFlavorSelection(t *testing.T) {
	gs := newEvalSet(t)
	e := NewEvaluator()

	gluon, err := e.XfxQ2(gs, 0, 21, 1e-3, 10)
	require.NoError(t, err)
	down, err := e.XfxQ2(gs, 0, 1, 1e-3, 10)
	require.NoError(t, err)
	require.InDelta(t, 100.0, down-gluon, 1e-9)

	_, err = e.XfxQ2(gs, 0, 5, 1e-3, 10)
	require.ErrorIs(t, err, errs.ErrUnknownPid)
}

func TestEvaluateSubgridBoundary(t *testing.T) {
	gs := newEvalSet(t)
	e := NewEvaluator()

	// Exactly on the shared knot: served bit-exactly by the lower subgrid.
	atBoundary, err := e.XfxQ2(gs, 0, 21, 1e-3, 4)
	require.NoError(t, err)
	require.Equal(t, logLinear(1e-3, 4, 0), atBoundary)

	// Values approaching from both sides agree with the boundary value.
	below, err := e.XfxQ2(gs, 0, 21, 1e-3, 4-1e-9)
	require.NoError(t, err)
	above, err := e.XfxQ2(gs, 0, 21, 1e-3, 4+1e-9)
	require.NoError(t, err)
	require.InDelta(t, atBoundary, below, 1e-6)
	require.InDelta(t, atBoundary, above, 1e-6)
}

// Two subgrids split at the charm threshold Q2=1.69 GeV2, the canonical
// flavor-scheme layout.
func TestEvaluateCharmThreshold(t *testing.T) {
	xs := []float64{1e-5, 1e-3, 1e-1, 1.0}
	below := buildSubgrid(t, xs, []float64{1, 1.3, 1.69})
	above := buildSubgrid(t, xs, []float64{1.69, 4, 16, 100})

	m, err := grid.NewMember([]*grid.Subgrid{below, above})
	require.NoError(t, err)
	gs, err := grid.NewGridSet([]int32{21, 1}, []*grid.Member{m}, nil, nil)
	require.NoError(t, err)

	e := NewEvaluator()

	t.Run("gluon at the threshold knot", func(t *testing.T) {
		got, err := e.XfxQ2(gs, 0, 21, 1e-3, 1.69)
		require.NoError(t, err)
		require.Equal(t, logLinear(1e-3, 1.69, 0), got)

		// Either side of the boundary agrees with the threshold value.
		lo, err := e.XfxQ2(gs, 0, 21, 1e-3, 1.69-1e-9)
		require.NoError(t, err)
		hi, err := e.XfxQ2(gs, 0, 21, 1e-3, 1.69+1e-9)
		require.NoError(t, err)
		require.InDelta(t, got, lo, 1e-6)
		require.InDelta(t, got, hi, 1e-6)
	})

	t.Run("stored tensor entry at the lowest x knot", func(t *testing.T) {
		got, err := e.XfxQ2(gs, 0, 21, 1e-5, 1.3)
		require.NoError(t, err)
		require.Equal(t, logLinear(1e-5, 1.3, 0), got)
	})
}

func TestEvaluateOutOfDomain(t *testing.T) {
	gs := newEvalSet(t)
	e := NewEvaluator()

	cases := []struct {
		name  string
		x, q2 float64
	}{
		{"x above 1", 2.0, 10},
		{"x below grid", 1e-7, 10},
		{"q2 below grid", 1e-3, 0.5},
		{"q2 above grid", 1e-3, 1e4},
		{"zero x", 0, 10},
		{"negative q2", 1e-3, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.XfxQ2(gs, 0, 21, tc.x, tc.q2)
			require.ErrorIs(t, err, errs.ErrOutOfDomain)
		})
	}

	_, err := e.XfxQ2(gs, 3, 21, 1e-3, 10)
	require.ErrorIs(t, err, errs.ErrInvalidMemberIndex)
}

func TestEvaluateBoundaryExtrapolation(t *testing.T) {
	gs := newEvalSet(t)
	e := NewEvaluator(WithExtrapolation(format.ExtrapolateBoundary))

	// The tabulated function is linear in log space, so continuing the
	// boundary segment's slope reproduces it outside the grid too.
	cases := []struct{ x, q2 float64 }{
		{1e-3, 1024}, // above the Q2 range
		{1e-3, 0.5},  // below the Q2 range
		{1e-7, 10},   // below the x range
	}
	for _, tc := range cases {
		got, err := e.XfxQ2(gs, 0, 21, tc.x, tc.q2)
		require.NoError(t, err)
		require.InDelta(t, logLinear(tc.x, tc.q2, 0), got, 1e-8, "x=%g Q2=%g", tc.x, tc.q2)
	}

	// Nonpositive coordinates stay errors under any policy.
	_, err := e.XfxQ2(gs, 0, 21, -1e-3, 10)
	require.ErrorIs(t, err, errs.ErrOutOfDomain)
}

func TestEvaluateTransverseMomentum(t *testing.T) {
	xs := []float64{1e-4, 1e-2, 1.0}
	q2s := []float64{1, 4, 16}
	kts := []float64{0, 1, 2, 4}

	values := make([]float64, 0, len(kts)*len(xs)*len(q2s))
	for _, kt := range kts {
		for _, x := range xs {
			for _, q2 := range q2s {
				values = append(values, logLinear(x, q2, 0)+7*kt)
			}
		}
	}
	sg, err := grid.NewSubgrid([]float64{1}, []float64{0.118}, kts, xs, q2s, 1, values)
	require.NoError(t, err)
	m, err := grid.NewMember([]*grid.Subgrid{sg})
	require.NoError(t, err)
	gs, err := grid.NewGridSet([]int32{21}, []*grid.Member{m}, nil, nil)
	require.NoError(t, err)

	e := NewEvaluator()

	t.Run("kt knot", func(t *testing.T) {
		got, err := e.XfxQ2Kt(gs, 0, 21, 2, 1e-2, 4)
		require.NoError(t, err)
		require.Equal(t, logLinear(1e-2, 4, 0)+14, got)
	})

	t.Run("kt interpolated linearly", func(t *testing.T) {
		got, err := e.XfxQ2Kt(gs, 0, 21, 1.5, 1e-2, 4)
		require.NoError(t, err)
		require.InDelta(t, logLinear(1e-2, 4, 0)+7*1.5, got, 1e-9)
	})

	t.Run("kt out of range", func(t *testing.T) {
		_, err := e.XfxQ2Kt(gs, 0, 21, 5, 1e-2, 4)
		require.ErrorIs(t, err, errs.ErrOutOfDomain)
	})
}

func alphasCurve(q2 float64) float64 {
	return 0.5 - 0.05*math.Log(q2)
}

func newCouplingSet(t *testing.T, couplingKnots []float64) *grid.GridSet {
	t.Helper()

	q2s := []float64{1, 4, 16, 64, 256}
	rows := 1
	if len(couplingKnots) > 0 {
		rows = len(couplingKnots)
	}
	values := make([]float64, 0, rows*len(q2s))
	for c := range rows {
		shift := 0.0
		if len(couplingKnots) > 0 {
			shift = couplingKnots[c] - 0.118
		}
		for _, q2 := range q2s {
			values = append(values, alphasCurve(q2)+shift)
		}
	}
	ct, err := grid.NewCouplingTable(q2s, couplingKnots, values)
	require.NoError(t, err)

	sg := buildSubgrid(t, []float64{1e-4, 1e-2, 1.0}, []float64{1, 4, 16})
	m, err := grid.NewMember([]*grid.Subgrid{sg})
	require.NoError(t, err)
	gs, err := grid.NewGridSet([]int32{21, 1}, []*grid.Member{m}, nil, ct)
	require.NoError(t, err)

	return gs
}

func TestAlphasQ2(t *testing.T) {
	gs := newCouplingSet(t, nil)
	e := NewEvaluator()

	t.Run("knot values are exact", func(t *testing.T) {
		got, err := e.AlphasQ2(gs, 16)
		require.NoError(t, err)
		require.Equal(t, alphasCurve(16), got)
	})

	t.Run("interpolates in log Q2", func(t *testing.T) {
		got, err := e.AlphasQ2(gs, 10)
		require.NoError(t, err)
		require.InDelta(t, alphasCurve(10), got, 1e-12)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := e.AlphasQ2(gs, 0.5)
		require.ErrorIs(t, err, errs.ErrOutOfDomain)
		_, err = e.AlphasQ2(gs, -1)
		require.ErrorIs(t, err, errs.ErrOutOfDomain)
	})

	t.Run("no coupling table", func(t *testing.T) {
		bare := newEvalSet(t)
		_, err := e.AlphasQ2(bare, 10)
		require.ErrorIs(t, err, errs.ErrNoCouplingTable)
	})
}

func TestAlphasQ2At(t *testing.T) {
	gs := newCouplingSet(t, []float64{0.116, 0.120})
	e := NewEvaluator()

	t.Run("coupling knot row", func(t *testing.T) {
		got, err := e.AlphasQ2At(gs, 16, 0.116)
		require.NoError(t, err)
		require.Equal(t, alphasCurve(16)+0.116-0.118, got)
	})

	t.Run("linear between coupling knots", func(t *testing.T) {
		got, err := e.AlphasQ2At(gs, 10, 0.118)
		require.NoError(t, err)
		require.InDelta(t, alphasCurve(10), got, 1e-12)
	})

	t.Run("coupling value out of range", func(t *testing.T) {
		_, err := e.AlphasQ2At(gs, 10, 0.2)
		require.ErrorIs(t, err, errs.ErrOutOfDomain)
	})
}
