package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pdfgrid/errs"
)

// newCombinableSet builds a two-flavor, single-member set with degenerate
// nucleon and coupling axes fixed at the given values. The tensor encodes all
// coordinates so stacking order is observable in the combined values.
func newCombinableSet(t *testing.T, a, alphas float64, withCoupling bool) *GridSet {
	t.Helper()

	xs := []float64{1e-4, 1e-2, 1.0}
	q2s := []float64{1, 4, 16}
	values := fillTensor([]float64{a}, []float64{alphas}, []float64{0}, xs, q2s, 2,
		func(a, as, _, x, q2 float64, pid int) float64 {
			return a*1e6 + as*1e4 + float64(pid)*1e2 + x*10 + q2
		})

	sg, err := NewSubgrid([]float64{a}, []float64{alphas}, []float64{0}, xs, q2s, 2, values)
	require.NoError(t, err)
	m, err := NewMember([]*Subgrid{sg})
	require.NoError(t, err)

	var coupling *CouplingTable
	if withCoupling {
		curve := []float64{alphas * 3, alphas * 2, alphas}
		coupling, err = NewCouplingTable([]float64{1, 4, 16}, nil, curve)
		require.NoError(t, err)
	}

	meta := NewMetadata()
	meta.Set(KeySetDesc, "combinable set")

	gs, err := NewGridSet([]int32{21, 1}, []*Member{m}, meta, coupling)
	require.NoError(t, err)

	return gs
}

func TestCombineNucleons(t *testing.T) {
	proton := newCombinableSet(t, 1, 0.118, false)
	lead := newCombinableSet(t, 208, 0.118, false)

	// Deliberately unsorted input; the combined axis must come out sorted.
	combined, err := CombineNucleons([]*GridSet{lead, proton})
	require.NoError(t, err)

	sg := combined.Members()[0].Subgrids()[0]
	require.Equal(t, []float64{1, 208}, sg.Nucleons().Knots())
	require.Equal(t, [6]int{2, 1, 2, 1, 3, 3}, sg.Info().Shape)

	// Each A slice carries the originating set's values.
	wantProton := 1*1e6 + 0.118*1e4 + 1e2 + 1e-2*10 + 4
	require.Equal(t, wantProton, sg.At(0, 0, 1, 0, 1, 1))
	wantLead := 208*1e6 + 0.118*1e4 + 1e2 + 1e-2*10 + 4
	require.Equal(t, wantLead, sg.At(1, 0, 1, 0, 1, 1))
}

func TestCombineAlphas(t *testing.T) {
	low := newCombinableSet(t, 1, 0.116, true)
	high := newCombinableSet(t, 1, 0.120, true)

	combined, err := CombineAlphas([]*GridSet{high, low})
	require.NoError(t, err)

	sg := combined.Members()[0].Subgrids()[0]
	require.Equal(t, []float64{0.116, 0.120}, sg.Alphas().Knots())
	require.Equal(t, [6]int{1, 2, 2, 1, 3, 3}, sg.Info().Shape)

	wantLow := 1*1e6 + 0.116*1e4 + 0*1e2 + 1e-4*10 + 1
	require.Equal(t, wantLow, sg.At(0, 0, 0, 0, 0, 0))
	wantHigh := 1*1e6 + 0.120*1e4 + 0*1e2 + 1e-4*10 + 1
	require.Equal(t, wantHigh, sg.At(0, 1, 0, 0, 0, 0))

	t.Run("coupling tables stack into 2-D", func(t *testing.T) {
		ct := combined.Coupling()
		require.NotNil(t, ct)
		require.Equal(t, []float64{0.116, 0.120}, ct.Couplings().Knots())
		// Products computed at runtime, matching the stored curves
		// bit-for-bit; folded constants can land one ULP off.
		for i, alphas := range []float64{0.116, 0.120} {
			require.Equal(t, []float64{alphas * 3, alphas * 2, alphas}, ct.Curve(i))
		}
	})
}

func TestCombineValidation(t *testing.T) {
	t.Run("fewer than two sets", func(t *testing.T) {
		_, err := CombineNucleons([]*GridSet{newCombinableSet(t, 1, 0.118, false)})
		require.Error(t, err)
	})

	t.Run("duplicate axis value", func(t *testing.T) {
		_, err := CombineNucleons([]*GridSet{
			newCombinableSet(t, 1, 0.118, false),
			newCombinableSet(t, 1, 0.118, false),
		})
		require.ErrorIs(t, err, errs.ErrDuplicateAxisValue)
	})

	t.Run("non-degenerate combining axis", func(t *testing.T) {
		proton := newCombinableSet(t, 1, 0.118, false)
		lead := newCombinableSet(t, 208, 0.118, false)
		already, err := CombineNucleons([]*GridSet{proton, lead})
		require.NoError(t, err)

		_, err = CombineNucleons([]*GridSet{already, newCombinableSet(t, 56, 0.118, false)})
		require.ErrorIs(t, err, errs.ErrNotDegenerate)
	})

	t.Run("member count mismatch", func(t *testing.T) {
		proton := newCombinableSet(t, 1, 0.118, false)

		sg := proton.Members()[0].Subgrids()[0]
		m, err := NewMember([]*Subgrid{sg})
		require.NoError(t, err)
		twoMembers, err := NewGridSet(proton.Pids(), []*Member{m, m}, nil, nil)
		require.NoError(t, err)

		_, err = CombineNucleons([]*GridSet{proton, twoMembers})
		require.ErrorIs(t, err, errs.ErrMemberCountMismatch)
	})

	t.Run("different flavor lists", func(t *testing.T) {
		proton := newCombinableSet(t, 1, 0.118, false)
		lead := newCombinableSet(t, 208, 0.118, false)

		relabeled, err := NewGridSet([]int32{21, 2}, lead.Members(), nil, nil)
		require.NoError(t, err)

		_, err = CombineNucleons([]*GridSet{proton, relabeled})
		require.ErrorIs(t, err, errs.ErrIncompatibleDomain)
	})

	t.Run("mixed coupling presence", func(t *testing.T) {
		withTable := newCombinableSet(t, 1, 0.116, true)
		withoutTable := newCombinableSet(t, 1, 0.120, false)

		_, err := CombineAlphas([]*GridSet{withTable, withoutTable})
		require.ErrorIs(t, err, errs.ErrIncompatibleDomain)
	})
}

func TestCombineKeepsMetadataCopy(t *testing.T) {
	proton := newCombinableSet(t, 1, 0.118, false)
	lead := newCombinableSet(t, 208, 0.118, false)

	combined, err := CombineNucleons([]*GridSet{lead, proton})
	require.NoError(t, err)

	combined.Metadata().Set(KeySetDesc, "mutated")
	v, _ := proton.Metadata().Get(KeySetDesc)
	require.Equal(t, "combinable set", v)
}
