// Package pdfgrid provides a compressed binary format and interpolation
// engine for parton distribution function grids.
//
// A grid set holds one or more members (error-set variations of the same
// distribution), each tabulating x·f(x,Q²) for a list of parton flavors over
// piecewise subgrids in momentum fraction x and factorization scale Q².
// Subgrids optionally extend over transverse momentum kT, nucleon number A
// and the strong coupling value, and a set can carry an alphas(Q²) table.
//
// # Core Features
//
//   - Log-cubic tensor-product interpolation, bit-exact on grid knots
//   - Per-subgrid block compression (Zstd, S2, LZ4) with xxHash64 checksums
//   - Random access: decode one subgrid without touching the rest of a file
//   - Metadata rewrites without recompressing any block
//   - Merging of single-nucleon or single-coupling sets along a new axis
//   - LHAPDF .info metadata interop
//
// # Basic Usage
//
// Loading and evaluating a grid file:
//
//	import "github.com/arloliu/pdfgrid"
//
//	gs, _ := pdfgrid.LoadFile("CT18NNLO.pdfgrid")
//
//	// Gluon density of the central member at x=0.01, Q²=100 GeV²
//	xf, _ := pdfgrid.XfxQ2(gs, 0, 21, 0.01, 100.0)
//
//	// Strong coupling at the same scale
//	alphas, _ := pdfgrid.AlphasQ2(gs, 100.0)
//
// Writing a grid set:
//
//	data, _ := pdfgrid.Encode(gs, codec.WithCompression(format.CompressionLZ4))
//	_ = pdfgrid.SaveFile("out.pdfgrid", gs)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the grid, interp
// and codec packages, simplifying the most common use cases. For advanced
// usage such as partial decoding, custom extrapolation policies or combining
// sets, use those packages directly.
package pdfgrid

import (
	"fmt"
	"os"

	"github.com/arloliu/pdfgrid/codec"
	"github.com/arloliu/pdfgrid/grid"
	"github.com/arloliu/pdfgrid/interp"
)

var defaultEvaluator = interp.NewEvaluator()

// Load decodes a complete grid set from encoded bytes.
//
// For partial access to large files, use codec.NewDecoder directly; it reads
// the metadata and table of contents only and decompresses subgrid blocks on
// demand.
func Load(data []byte) (*grid.GridSet, error) {
	return codec.Decode(data)
}

// LoadFile reads and decodes a complete grid set from a file.
func LoadFile(path string) (*grid.GridSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grid file: %w", err)
	}

	return codec.Decode(data)
}

// Encode serializes a grid set into the binary file format.
//
// Options are forwarded to codec.Encode:
//   - codec.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - codec.WithBigEndian()
func Encode(gs *grid.GridSet, opts ...codec.Option) ([]byte, error) {
	return codec.Encode(gs, opts...)
}

// SaveFile encodes a grid set and writes it to a file.
func SaveFile(path string, gs *grid.GridSet, opts ...codec.Option) error {
	data, err := codec.Encode(gs, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing grid file: %w", err)
	}

	return nil
}

// UpdateMetadataFile sets one metadata key on an encoded grid file in place.
//
// The rewrite copies every compressed block byte-identically; only the
// metadata block, header and table of contents are re-serialized.
func UpdateMetadataFile(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading grid file: %w", err)
	}

	updated, err := codec.UpdateMetadataKey(data, key, value)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return fmt.Errorf("writing grid file: %w", err)
	}

	return nil
}

// LoadInfoFile parses an LHAPDF-style .info YAML file into a metadata table,
// preserving key order.
func LoadInfoFile(path string) (*grid.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading info file: %w", err)
	}

	return grid.ParseInfoYAML(data)
}

// XfxQ2 returns the x·f(x,Q²)-scaled density of parton pid at (x, Q2) for
// the given member, using the default evaluator (no extrapolation).
//
// For boundary extrapolation or repeated configuration, create an
// interp.Evaluator directly.
func XfxQ2(gs *grid.GridSet, member int, pid int32, x, q2 float64) (float64, error) {
	return defaultEvaluator.XfxQ2(gs, member, pid, x, q2)
}

// XfxQ2Kt returns the x-scaled transverse-momentum-dependent density of
// parton pid at (kT, x, Q2) for the given member, using the default
// evaluator.
func XfxQ2Kt(gs *grid.GridSet, member int, pid int32, kt, x, q2 float64) (float64, error) {
	return defaultEvaluator.XfxQ2Kt(gs, member, pid, kt, x, q2)
}

// AlphasQ2 returns the strong coupling at Q2 from the set's coupling table,
// using the default evaluator.
func AlphasQ2(gs *grid.GridSet, q2 float64) (float64, error) {
	return defaultEvaluator.AlphasQ2(gs, q2)
}
