package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pdfgrid/errs"
)

// fillTensor tabulates fn over the row-major [A][alphas][pid][kT][x][Q2]
// layout shared by all subgrid tests.
func fillTensor(nucleons, alphas, kts, xs, q2s []float64, pidCount int,
	fn func(a, as, kt, x, q2 float64, pid int) float64,
) []float64 {
	values := make([]float64, 0, len(nucleons)*len(alphas)*pidCount*len(kts)*len(xs)*len(q2s))
	for _, a := range nucleons {
		for _, as := range alphas {
			for pid := range pidCount {
				for _, kt := range kts {
					for _, x := range xs {
						for _, q2 := range q2s {
							values = append(values, fn(a, as, kt, x, q2, pid))
						}
					}
				}
			}
		}
	}

	return values
}

func newTestSubgrid(t *testing.T) *Subgrid {
	t.Helper()

	xs := []float64{1e-5, 1e-3, 0.1, 1.0}
	q2s := []float64{1, 4, 16}
	values := fillTensor([]float64{1}, []float64{0.118}, []float64{0}, xs, q2s, 2,
		func(_, _, _, x, q2 float64, pid int) float64 {
			return float64(pid+1) * x * q2
		})

	sg, err := NewSubgrid([]float64{1}, []float64{0.118}, []float64{0}, xs, q2s, 2, values)
	require.NoError(t, err)

	return sg
}

func TestNewSubgrid(t *testing.T) {
	t.Run("valid shape", func(t *testing.T) {
		sg := newTestSubgrid(t)
		require.Equal(t, 2, sg.PidCount())
		require.Equal(t, [6]int{1, 1, 2, 1, 4, 3}, sg.Info().Shape)
	})

	t.Run("tensor length mismatch", func(t *testing.T) {
		_, err := NewSubgrid([]float64{1}, []float64{0.118}, []float64{0},
			[]float64{0.1, 1.0}, []float64{1, 4}, 2, make([]float64, 7))
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("invalid pid count", func(t *testing.T) {
		_, err := NewSubgrid([]float64{1}, []float64{0.118}, []float64{0},
			[]float64{0.1, 1.0}, []float64{1, 4}, 0, nil)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("bad axis propagates", func(t *testing.T) {
		_, err := NewSubgrid([]float64{1}, []float64{0.118}, []float64{0},
			[]float64{1.0, 0.1}, []float64{1, 4}, 1, make([]float64, 4))
		require.ErrorIs(t, err, errs.ErrAxisNotMonotonic)
	})
}

func TestSubgridIndexing(t *testing.T) {
	sg := newTestSubgrid(t)

	// Q2 varies fastest, then x, then pid.
	require.Equal(t, 0, sg.Index(0, 0, 0, 0, 0, 0))
	require.Equal(t, 1, sg.Index(0, 0, 0, 0, 0, 1))
	require.Equal(t, 3, sg.Index(0, 0, 0, 0, 1, 0))
	require.Equal(t, 12, sg.Index(0, 0, 1, 0, 0, 0))

	require.Equal(t, 1e-5*1.0, sg.At(0, 0, 0, 0, 0, 0))
	require.Equal(t, 2*1.0*16.0, sg.At(0, 0, 1, 0, 3, 2))
}

func TestSubgridSlab(t *testing.T) {
	sg := newTestSubgrid(t)

	t.Run("copies one x-Q2 plane", func(t *testing.T) {
		slab, err := sg.Slab(0, 0, 1, 0)
		require.NoError(t, err)
		require.Len(t, slab, 12)
		require.Equal(t, 2*1e-5*1.0, slab[0])
		require.Equal(t, 2*1.0*16.0, slab[11])

		// Mutating the copy must not touch the tensor.
		slab[0] = -1
		require.Equal(t, 2*1e-5*1.0, sg.At(0, 0, 1, 0, 0, 0))
	})

	t.Run("pid index out of range", func(t *testing.T) {
		_, err := sg.Slab(0, 0, 2, 0)
		require.ErrorIs(t, err, errs.ErrInvalidSubgridIndex)
	})

	t.Run("kt index out of range", func(t *testing.T) {
		_, err := sg.Slab(0, 0, 0, 1)
		require.ErrorIs(t, err, errs.ErrInvalidSubgridIndex)
	})
}

func TestSubgridContains(t *testing.T) {
	sg := newTestSubgrid(t)

	// Degenerate A/alphas/kT axes match any requested coordinate.
	require.True(t, sg.Contains(Point{X: 0.01, Q2: 2, A: 208, AlphaS: 0.2, Kt: 99}))
	require.True(t, sg.Contains(Point{X: 1e-5, Q2: 1}))
	require.True(t, sg.Contains(Point{X: 1.0, Q2: 16}))
	require.False(t, sg.Contains(Point{X: 1e-6, Q2: 2}))
	require.False(t, sg.Contains(Point{X: 0.01, Q2: 17}))
}

func TestSubgridDistanceSq(t *testing.T) {
	sg := newTestSubgrid(t)

	require.Equal(t, 0.0, sg.DistanceSq(Point{X: 0.01, Q2: 4}))
	require.Equal(t, 1.0, sg.DistanceSq(Point{X: 0.01, Q2: 17}))
	// Degenerate axes contribute nothing.
	require.Equal(t, 1.0, sg.DistanceSq(Point{X: 0.01, Q2: 17, A: 208, Kt: 5}))
}
