package interp

import (
	"fmt"
	"math"

	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/format"
	"github.com/arloliu/pdfgrid/grid"
)

// Evaluator interpolates grid sets. It holds only configuration, never query
// state, so a single instance is safe for concurrent use.
type Evaluator struct {
	policy format.Extrapolation
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithExtrapolation selects the out-of-domain policy. The default,
// ExtrapolateError, fails with ErrOutOfDomain; ExtrapolateBoundary continues
// the boundary segment's slope.
func WithExtrapolation(policy format.Extrapolation) Option {
	return func(e *Evaluator) {
		e.policy = policy
	}
}

// NewEvaluator creates an Evaluator with the given options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{policy: format.ExtrapolateError}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// XfxQ2 returns the x·f(x,Q²)-scaled density of parton pid at (x, Q2) for
// the given member.
func (e *Evaluator) XfxQ2(gs *grid.GridSet, member int, pid int32, x, q2 float64) (float64, error) {
	return e.Evaluate(gs, member, pid, grid.Point{X: x, Q2: q2})
}

// XfxQ2Kt returns the x-scaled transverse-momentum-dependent density of
// parton pid at (kT, x, Q2) for the given member.
func (e *Evaluator) XfxQ2Kt(gs *grid.GridSet, member int, pid int32, kt, x, q2 float64) (float64, error) {
	return e.Evaluate(gs, member, pid, grid.Point{Kt: kt, X: x, Q2: q2})
}

// Evaluate interpolates the member's tabulated density for parton pid at the
// given point. Coordinates on degenerate axes are ignored; the fixed knot
// value is used directly.
func (e *Evaluator) Evaluate(gs *grid.GridSet, member int, pid int32, p grid.Point) (float64, error) {
	m, err := gs.Member(member)
	if err != nil {
		return 0, err
	}
	pidIdx, err := gs.PidIndex(pid)
	if err != nil {
		return 0, err
	}
	if p.X <= 0 || p.Q2 <= 0 {
		return 0, fmt.Errorf("%w: member %d point x=%g Q2=%g requires positive coordinates",
			errs.ErrOutOfDomain, member, p.X, p.Q2)
	}

	sg, sgIdx := m.Find(p)
	if sg == nil {
		if e.policy != format.ExtrapolateBoundary {
			return 0, fmt.Errorf("%w: member %d point x=%g Q2=%g kT=%g A=%g alphas=%g not covered by any of %d subgrids",
				errs.ErrOutOfDomain, member, p.X, p.Q2, p.Kt, p.A, p.AlphaS, m.NumSubgrids())
		}
		sg, sgIdx = m.FindNearest(p)
	}

	sA, err := buildStencil(sg.Nucleons().Knots(), p.A, kernelLinear, e.policy)
	if err != nil {
		return 0, stencilErr(err, member, sgIdx, format.AxisNucleons, p.A, sg.Nucleons().Range())
	}
	sAs, err := buildStencil(sg.Alphas().Knots(), p.AlphaS, kernelLinear, e.policy)
	if err != nil {
		return 0, stencilErr(err, member, sgIdx, format.AxisAlphas, p.AlphaS, sg.Alphas().Range())
	}
	sKt, err := buildStencil(sg.Kts().Knots(), p.Kt, kernelLinear, e.policy)
	if err != nil {
		return 0, stencilErr(err, member, sgIdx, format.AxisKt, p.Kt, sg.Kts().Range())
	}
	sX, err := buildStencil(sg.LogXs(), math.Log(p.X), kernelCubic, e.policy)
	if err != nil {
		return 0, stencilErr(err, member, sgIdx, format.AxisX, p.X, sg.Xs().Range())
	}
	sQ2, err := buildStencil(sg.LogQ2s(), math.Log(p.Q2), kernelCubic, e.policy)
	if err != nil {
		return 0, stencilErr(err, member, sgIdx, format.AxisQ2, p.Q2, sg.Q2s().Range())
	}

	return tensorProduct(sg, pidIdx, sA, sAs, sKt, sX, sQ2), nil
}

// tensorProduct accumulates the weighted sum over the cartesian product of
// the per-axis stencils: nested interpolation dimension by dimension.
func tensorProduct(sg *grid.Subgrid, pidIdx int, sA, sAs, sKt, sX, sQ2 stencil) float64 {
	values := sg.Values()
	sum := 0.0
	for ia := range sA.n {
		wa := sA.w[ia]
		for ias := range sAs.n {
			was := wa * sAs.w[ias]
			for ikt := range sKt.n {
				wkt := was * sKt.w[ikt]
				base := sg.Index(sA.idx[ia], sAs.idx[ias], pidIdx, sKt.idx[ikt], 0, 0)
				for ix := range sX.n {
					wx := wkt * sX.w[ix]
					row := base + sX.idx[ix]*sg.Q2s().Len()
					for iq := range sQ2.n {
						sum += wx * sQ2.w[iq] * values[row+sQ2.idx[iq]]
					}
				}
			}
		}
	}

	return sum
}

// AlphasQ2 returns the strong coupling at Q2, log-interpolated over the
// set's coupling table.
func (e *Evaluator) AlphasQ2(gs *grid.GridSet, q2 float64) (float64, error) {
	return e.alphas(gs, q2, 0, false)
}

// AlphasQ2At returns the strong coupling at Q2 for a specific knot value on
// a 2-D coupling table's coupling axis (as produced by CombineAlphas).
func (e *Evaluator) AlphasQ2At(gs *grid.GridSet, q2, couplingValue float64) (float64, error) {
	return e.alphas(gs, q2, couplingValue, true)
}

func (e *Evaluator) alphas(gs *grid.GridSet, q2, couplingValue float64, useCoupling bool) (float64, error) {
	ct := gs.Coupling()
	if ct == nil {
		return 0, errs.ErrNoCouplingTable
	}
	if q2 <= 0 {
		return 0, fmt.Errorf("%w: alphas requires positive Q2, got %g", errs.ErrOutOfDomain, q2)
	}

	sQ2, err := buildStencil(ct.LogQ2s(), math.Log(q2), kernelCubic, e.policy)
	if err != nil {
		return 0, fmt.Errorf("%w: coupling table Q2=%g outside [%g, %g]",
			err, q2, ct.Q2s().Min(), ct.Q2s().Max())
	}

	sC := pointStencil(0)
	if useCoupling {
		sC, err = buildStencil(ct.Couplings().Knots(), couplingValue, kernelLinear, e.policy)
		if err != nil {
			return 0, fmt.Errorf("%w: coupling value %g outside [%g, %g]",
				err, couplingValue, ct.Couplings().Min(), ct.Couplings().Max())
		}
	}

	nq2 := ct.Q2s().Len()
	values := ct.Values()
	sum := 0.0
	for ic := range sC.n {
		wc := sC.w[ic]
		row := sC.idx[ic] * nq2
		for iq := range sQ2.n {
			sum += wc * sQ2.w[iq] * values[row+sQ2.idx[iq]]
		}
	}

	return sum, nil
}

func stencilErr(err error, member, subgrid int, axis format.AxisKind, v float64, r grid.Range) error {
	return fmt.Errorf("%w: member %d subgrid %d %s=%g outside [%g, %g]",
		err, member, subgrid, axis, v, r.Min, r.Max)
}
