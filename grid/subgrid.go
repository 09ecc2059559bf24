package grid

import (
	"fmt"
	"math"

	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/format"
)

// Subgrid is one rectangular patch of a member's phase space: five knot axes
// plus a dense value tensor laid out row-major as [A][alphas][pid][kT][x][Q2].
//
// Several subgrids tile a member's full domain, split at physical
// discontinuities such as flavor thresholds in Q2. A subgrid is exclusively
// owned by its member and immutable after construction.
//
// Log-space knot arrays for x and Q2 and the tensor strides are precomputed
// at construction so the evaluation hot path performs no allocation.
type Subgrid struct {
	nucleons Axis
	alphas   Axis
	kts      Axis
	xs       Axis
	q2s      Axis

	pidCount int
	values   []float64

	logXs  []float64
	logQ2s []float64

	// Row-major strides; the Q2 stride is 1.
	strideA   int
	strideAs  int
	stridePid int
	strideKt  int
	strideX   int
}

// NewSubgrid builds a Subgrid from raw knot slices and the flattened value
// tensor.
//
// The tensor length must equal A*alphas*pids*kT*x*Q2 with the dimensions in
// that order; a mismatch fails with ErrShapeMismatch. Degenerate dimensions
// pass a single-element knot slice. All slices are copied.
func NewSubgrid(nucleons, alphas, kts, xs, q2s []float64, pidCount int, values []float64) (*Subgrid, error) {
	if pidCount <= 0 {
		return nil, fmt.Errorf("%w: pid count %d", errs.ErrShapeMismatch, pidCount)
	}

	aAxis, err := NewAxis(format.AxisNucleons, nucleons)
	if err != nil {
		return nil, err
	}
	asAxis, err := NewAxis(format.AxisAlphas, alphas)
	if err != nil {
		return nil, err
	}
	ktAxis, err := NewAxis(format.AxisKt, kts)
	if err != nil {
		return nil, err
	}
	xAxis, err := NewAxis(format.AxisX, xs)
	if err != nil {
		return nil, err
	}
	q2Axis, err := NewAxis(format.AxisQ2, q2s)
	if err != nil {
		return nil, err
	}

	want := aAxis.Len() * asAxis.Len() * pidCount * ktAxis.Len() * xAxis.Len() * q2Axis.Len()
	if len(values) != want {
		return nil, fmt.Errorf("%w: tensor has %d values, shape [%d][%d][%d][%d][%d][%d] requires %d",
			errs.ErrShapeMismatch, len(values),
			aAxis.Len(), asAxis.Len(), pidCount, ktAxis.Len(), xAxis.Len(), q2Axis.Len(), want)
	}

	owned := make([]float64, len(values))
	copy(owned, values)

	sg := &Subgrid{
		nucleons: aAxis,
		alphas:   asAxis,
		kts:      ktAxis,
		xs:       xAxis,
		q2s:      q2Axis,
		pidCount: pidCount,
		values:   owned,
	}
	sg.finish()

	return sg, nil
}

// finish precomputes strides and log-space knots.
func (sg *Subgrid) finish() {
	nq2 := sg.q2s.Len()
	nx := sg.xs.Len()
	nkt := sg.kts.Len()
	nas := sg.alphas.Len()

	sg.strideX = nq2
	sg.strideKt = nx * nq2
	sg.stridePid = nkt * sg.strideKt
	sg.strideAs = sg.pidCount * sg.stridePid
	sg.strideA = nas * sg.strideAs

	sg.logXs = logKnots(sg.xs.Knots())
	sg.logQ2s = logKnots(sg.q2s.Knots())
}

func logKnots(knots []float64) []float64 {
	out := make([]float64, len(knots))
	for i, v := range knots {
		out[i] = math.Log(v)
	}

	return out
}

// Nucleons returns the nucleon number (A) axis.
func (sg *Subgrid) Nucleons() Axis { return sg.nucleons }

// Alphas returns the coupling value axis.
func (sg *Subgrid) Alphas() Axis { return sg.alphas }

// Kts returns the transverse momentum axis.
func (sg *Subgrid) Kts() Axis { return sg.kts }

// Xs returns the momentum fraction axis.
func (sg *Subgrid) Xs() Axis { return sg.xs }

// Q2s returns the energy scale squared axis.
func (sg *Subgrid) Q2s() Axis { return sg.q2s }

// PidCount returns the number of parton flavors in the tensor.
func (sg *Subgrid) PidCount() int { return sg.pidCount }

// Values returns the flattened value tensor. Callers must not modify it.
func (sg *Subgrid) Values() []float64 { return sg.values }

// LogXs returns the precomputed natural logs of the x knots.
// Callers must not modify the slice.
func (sg *Subgrid) LogXs() []float64 { return sg.logXs }

// LogQ2s returns the precomputed natural logs of the Q2 knots.
// Callers must not modify the slice.
func (sg *Subgrid) LogQ2s() []float64 { return sg.logQ2s }

// Index returns the flat tensor index for the given per-dimension indices.
func (sg *Subgrid) Index(aIdx, asIdx, pidIdx, ktIdx, xIdx, q2Idx int) int {
	return aIdx*sg.strideA + asIdx*sg.strideAs + pidIdx*sg.stridePid +
		ktIdx*sg.strideKt + xIdx*sg.strideX + q2Idx
}

// At returns the stored value at the given per-dimension indices.
func (sg *Subgrid) At(aIdx, asIdx, pidIdx, ktIdx, xIdx, q2Idx int) float64 {
	return sg.values[sg.Index(aIdx, asIdx, pidIdx, ktIdx, xIdx, q2Idx)]
}

// Slab returns a copy of the contiguous x-Q2 plane for one flavor at fixed
// nucleon, coupling and kT indices. The result has length Xs().Len()*Q2s().Len()
// with Q2 fastest-varying.
func (sg *Subgrid) Slab(aIdx, asIdx, pidIdx, ktIdx int) ([]float64, error) {
	if aIdx < 0 || aIdx >= sg.nucleons.Len() {
		return nil, fmt.Errorf("%w: nucleon index %d of %d", errs.ErrInvalidSubgridIndex, aIdx, sg.nucleons.Len())
	}
	if asIdx < 0 || asIdx >= sg.alphas.Len() {
		return nil, fmt.Errorf("%w: coupling index %d of %d", errs.ErrInvalidSubgridIndex, asIdx, sg.alphas.Len())
	}
	if pidIdx < 0 || pidIdx >= sg.pidCount {
		return nil, fmt.Errorf("%w: pid index %d of %d", errs.ErrInvalidSubgridIndex, pidIdx, sg.pidCount)
	}
	if ktIdx < 0 || ktIdx >= sg.kts.Len() {
		return nil, fmt.Errorf("%w: kT index %d of %d", errs.ErrInvalidSubgridIndex, ktIdx, sg.kts.Len())
	}

	start := sg.Index(aIdx, asIdx, pidIdx, ktIdx, 0, 0)
	length := sg.xs.Len() * sg.q2s.Len()
	out := make([]float64, length)
	copy(out, sg.values[start:start+length])

	return out, nil
}

// Info summarizes the axis domains and shape of a subgrid.
type Info struct {
	Nucleons Range
	Alphas   Range
	Kt       Range
	X        Range
	Q2       Range

	// Shape holds the knot counts in tensor dimension order
	// [A, alphas, pids, kT, x, Q2].
	Shape [6]int
}

// Info returns the axis domains and shape of the subgrid.
func (sg *Subgrid) Info() Info {
	return Info{
		Nucleons: sg.nucleons.Range(),
		Alphas:   sg.alphas.Range(),
		Kt:       sg.kts.Range(),
		X:        sg.xs.Range(),
		Q2:       sg.q2s.Range(),
		Shape: [6]int{
			sg.nucleons.Len(), sg.alphas.Len(), sg.pidCount,
			sg.kts.Len(), sg.xs.Len(), sg.q2s.Len(),
		},
	}
}

// Contains reports whether the point lies inside the subgrid's domain on
// every axis that is active for the point.
//
// Degenerate axes always match: their single fixed value is used regardless
// of the requested coordinate.
func (sg *Subgrid) Contains(p Point) bool {
	if !sg.xs.Contains(p.X) || !sg.q2s.Contains(p.Q2) {
		return false
	}
	if !sg.kts.IsDegenerate() && !sg.kts.Contains(p.Kt) {
		return false
	}
	if !sg.nucleons.IsDegenerate() && !sg.nucleons.Contains(p.A) {
		return false
	}
	if !sg.alphas.IsDegenerate() && !sg.alphas.Contains(p.AlphaS) {
		return false
	}

	return true
}

// DistanceSq returns the squared distance from the point to the subgrid's
// bounding box over the active axes, zero if the point is inside.
func (sg *Subgrid) DistanceSq(p Point) float64 {
	d := sg.xs.Range().DistanceSq(p.X) + sg.q2s.Range().DistanceSq(p.Q2)
	if !sg.kts.IsDegenerate() {
		d += sg.kts.Range().DistanceSq(p.Kt)
	}
	if !sg.nucleons.IsDegenerate() {
		d += sg.nucleons.Range().DistanceSq(p.A)
	}
	if !sg.alphas.IsDegenerate() {
		d += sg.alphas.Range().DistanceSq(p.AlphaS)
	}

	return d
}

// Point is one query coordinate. X and Q2 are always meaningful; Kt, A and
// AlphaS are consulted only where the corresponding subgrid axis is active
// (more than one knot).
type Point struct {
	A      float64
	AlphaS float64
	Kt     float64
	X      float64
	Q2     float64
}
