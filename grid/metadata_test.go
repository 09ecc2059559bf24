package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataSetGet(t *testing.T) {
	meta := NewMetadata()
	meta.Set(KeySetDesc, "Test set")
	meta.Set(KeyNumMembers, "3")
	meta.Set("CustomKey", "custom value")

	t.Run("keys keep insertion order", func(t *testing.T) {
		require.Equal(t, []string{KeySetDesc, KeyNumMembers, "CustomKey"}, meta.Keys())
	})

	t.Run("replacing a value keeps its position", func(t *testing.T) {
		m := meta.Clone()
		m.Set(KeySetDesc, "Renamed")
		require.Equal(t, []string{KeySetDesc, KeyNumMembers, "CustomKey"}, m.Keys())
		v, ok := m.Get(KeySetDesc)
		require.True(t, ok)
		require.Equal(t, "Renamed", v)
	})

	t.Run("missing key", func(t *testing.T) {
		_, ok := meta.Get("Missing")
		require.False(t, ok)
		require.Equal(t, "fallback", meta.GetDefault("Missing", "fallback"))
	})
}

func TestMetadataTypedAccessors(t *testing.T) {
	meta := NewMetadata()
	meta.Set(KeyNumMembers, "59")
	meta.Set(KeyXMin, "1e-9")
	meta.SetInts(KeyFlavors, []int64{21, 1, -1})
	meta.SetFloats(KeyAlphasQs, []float64{1.3, 4.75, 100})

	n, ok := meta.Int(KeyNumMembers)
	require.True(t, ok)
	require.Equal(t, int64(59), n)

	f, ok := meta.Float(KeyXMin)
	require.True(t, ok)
	require.Equal(t, 1e-9, f)

	flavors, ok := meta.Ints(KeyFlavors)
	require.True(t, ok)
	require.Equal(t, []int64{21, 1, -1}, flavors)

	v, ok := meta.Get(KeyFlavors)
	require.True(t, ok)
	require.Equal(t, "[21, 1, -1]", v)

	qs, ok := meta.Floats(KeyAlphasQs)
	require.True(t, ok)
	require.Equal(t, []float64{1.3, 4.75, 100}, qs)

	_, ok = meta.Int(KeyXMin)
	require.False(t, ok)
	_, ok = meta.Ints("Missing")
	require.False(t, ok)
}

func TestMetadataClone(t *testing.T) {
	meta := NewMetadata()
	meta.Set(KeySetDesc, "original")

	clone := meta.Clone()
	clone.Set(KeySetDesc, "changed")
	clone.Set("Extra", "1")

	v, _ := meta.Get(KeySetDesc)
	require.Equal(t, "original", v)
	require.Equal(t, 1, meta.Len())
	require.Equal(t, 2, clone.Len())
}

func TestParseInfoYAML(t *testing.T) {
	src := []byte(`SetDesc: "CT18 NNLO central"
SetIndex: 14000
NumMembers: 59
Flavors: [-5, -4, -3, -2, -1, 21, 1, 2, 3, 4, 5]
XMin: 1e-09
AlphaS_Qs: [1.3, 4.75, 100.0]
Particle: 2212
`)

	meta, err := ParseInfoYAML(src)
	require.NoError(t, err)

	require.Equal(t, []string{
		"SetDesc", "SetIndex", "NumMembers", "Flavors", "XMin", "AlphaS_Qs", "Particle",
	}, meta.Keys())

	desc, _ := meta.Get(KeySetDesc)
	require.Equal(t, "CT18 NNLO central", desc)

	flavors, ok := meta.Ints(KeyFlavors)
	require.True(t, ok)
	require.Equal(t, []int64{-5, -4, -3, -2, -1, 21, 1, 2, 3, 4, 5}, flavors)

	qs, ok := meta.Floats(KeyAlphasQs)
	require.True(t, ok)
	require.Equal(t, []float64{1.3, 4.75, 100.0}, qs)
}

func TestParseInfoYAMLErrors(t *testing.T) {
	t.Run("not a mapping", func(t *testing.T) {
		_, err := ParseInfoYAML([]byte("- a\n- b\n"))
		require.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		meta, err := ParseInfoYAML(nil)
		require.NoError(t, err)
		require.Equal(t, 0, meta.Len())
	})
}

func TestInfoYAMLRoundTrip(t *testing.T) {
	meta := NewMetadata()
	meta.Set(KeySetDesc, "Round trip set")
	meta.Set(KeyNumMembers, "2")
	meta.SetInts(KeyFlavors, []int64{21, 1, -1})

	out, err := meta.InfoYAML()
	require.NoError(t, err)

	back, err := ParseInfoYAML(out)
	require.NoError(t, err)
	require.Equal(t, meta.Keys(), back.Keys())
	for _, key := range meta.Keys() {
		want, _ := meta.Get(key)
		got, _ := back.Get(key)
		require.Equal(t, want, got, "key %s", key)
	}
}
