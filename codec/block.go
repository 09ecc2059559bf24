package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/pdfgrid/endian"
	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/grid"
)

// Subgrid block payload, before compression:
//
//	5x axis: uint32 knot count, float64 knots (A, alphas, kT, x, Q2 order)
//	uint32 flavor count
//	float64 tensor values, row-major, Q2 fastest-varying
//
// The tensor length is implied by the axis shape and validated on parse.

func appendAxis(buf []byte, engine endian.EndianEngine, knots []float64) []byte {
	buf = engine.AppendUint32(buf, uint32(len(knots))) //nolint: gosec
	for _, v := range knots {
		buf = engine.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

func readAxis(data []byte, engine endian.EndianEngine) ([]float64, []byte, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("%w: truncated axis length", errs.ErrCorruptData)
	}
	n := int(engine.Uint32(data[0:4]))
	data = data[4:]
	if len(data) < n*8 {
		return nil, nil, fmt.Errorf("%w: axis declares %d knots, %d bytes remain", errs.ErrCorruptData, n, len(data))
	}

	knots := make([]float64, n)
	for i := range knots {
		knots[i] = math.Float64frombits(engine.Uint64(data[i*8 : i*8+8]))
	}

	return knots, data[n*8:], nil
}

func encodeSubgridBlock(buf []byte, engine endian.EndianEngine, sg *grid.Subgrid) []byte {
	buf = appendAxis(buf, engine, sg.Nucleons().Knots())
	buf = appendAxis(buf, engine, sg.Alphas().Knots())
	buf = appendAxis(buf, engine, sg.Kts().Knots())
	buf = appendAxis(buf, engine, sg.Xs().Knots())
	buf = appendAxis(buf, engine, sg.Q2s().Knots())
	buf = engine.AppendUint32(buf, uint32(sg.PidCount())) //nolint: gosec
	for _, v := range sg.Values() {
		buf = engine.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

func decodeSubgridBlock(data []byte, engine endian.EndianEngine) (*grid.Subgrid, error) {
	axes := make([][]float64, 5)
	var err error
	for i := range axes {
		axes[i], data, err = readAxis(data, engine)
		if err != nil {
			return nil, err
		}
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: truncated flavor count", errs.ErrCorruptData)
	}
	pidCount := int(engine.Uint32(data[0:4]))
	data = data[4:]

	want := pidCount
	for _, knots := range axes {
		want *= len(knots)
	}
	if len(data) != want*8 {
		return nil, fmt.Errorf("%w: tensor needs %d values, block carries %d bytes",
			errs.ErrCorruptData, want, len(data))
	}

	values := make([]float64, want)
	for i := range values {
		values[i] = math.Float64frombits(engine.Uint64(data[i*8 : i*8+8]))
	}

	return grid.NewSubgrid(axes[0], axes[1], axes[2], axes[3], axes[4], pidCount, values)
}

// Coupling block payload, before compression:
//
//	uint32 Q2 knot count, float64 Q2 knots
//	uint32 coupling knot count, float64 coupling knots
//	float64 values, one alphas(Q2) curve per coupling knot

func encodeCouplingBlock(buf []byte, engine endian.EndianEngine, ct *grid.CouplingTable) []byte {
	buf = appendAxis(buf, engine, ct.Q2s().Knots())
	buf = appendAxis(buf, engine, ct.Couplings().Knots())
	for _, v := range ct.Values() {
		buf = engine.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

func decodeCouplingBlock(data []byte, engine endian.EndianEngine) (*grid.CouplingTable, error) {
	q2s, data, err := readAxis(data, engine)
	if err != nil {
		return nil, err
	}
	couplings, data, err := readAxis(data, engine)
	if err != nil {
		return nil, err
	}

	want := len(q2s) * len(couplings)
	if len(data) != want*8 {
		return nil, fmt.Errorf("%w: coupling table needs %d values, block carries %d bytes",
			errs.ErrCorruptData, want, len(data))
	}

	values := make([]float64, want)
	for i := range values {
		values[i] = math.Float64frombits(engine.Uint64(data[i*8 : i*8+8]))
	}

	return grid.NewCouplingTable(q2s, couplings, values)
}

// Flavor list section, stored uncompressed right after the metadata block:
// uint32 count followed by int32 parton ids in tensor flavor order.

func encodePidBlock(buf []byte, engine endian.EndianEngine, pids []int32) []byte {
	buf = engine.AppendUint32(buf, uint32(len(pids))) //nolint: gosec
	for _, pid := range pids {
		buf = engine.AppendUint32(buf, uint32(pid)) //nolint: gosec
	}

	return buf
}

func decodePidBlock(data []byte, engine endian.EndianEngine) ([]int32, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("%w: truncated flavor list", errs.ErrCorruptData)
	}
	n := int(engine.Uint32(data[0:4]))
	if len(data) < 4+n*4 {
		return nil, 0, fmt.Errorf("%w: flavor list declares %d ids, %d bytes remain",
			errs.ErrCorruptData, n, len(data)-4)
	}

	pids := make([]int32, n)
	for i := range pids {
		pids[i] = int32(engine.Uint32(data[4+i*4 : 8+i*4])) //nolint: gosec
	}

	return pids, 4 + n*4, nil
}
