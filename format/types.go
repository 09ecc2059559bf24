package format

type (
	CompressionType uint8
	AxisKind        uint8
	Extrapolation   uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	// Axis kinds in tensor dimension order: [A][alphas][pid][kT][x][Q2].
	AxisNucleons AxisKind = 0x1 // AxisNucleons is the nucleon number (A) axis.
	AxisAlphas   AxisKind = 0x2 // AxisAlphas is the strong coupling value axis.
	AxisKt       AxisKind = 0x3 // AxisKt is the transverse momentum axis.
	AxisX        AxisKind = 0x4 // AxisX is the momentum fraction axis.
	AxisQ2       AxisKind = 0x5 // AxisQ2 is the energy scale squared axis.

	// ExtrapolateError fails with ErrOutOfDomain for points outside the
	// covered domain. This is the default policy.
	ExtrapolateError Extrapolation = 0x1
	// ExtrapolateBoundary continues the boundary segment's slope, linearly in
	// the axis's interpolation space (log-space for x and Q2).
	ExtrapolateBoundary Extrapolation = 0x2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (k AxisKind) String() string {
	switch k {
	case AxisNucleons:
		return "Nucleons"
	case AxisAlphas:
		return "Alphas"
	case AxisKt:
		return "Kt"
	case AxisX:
		return "X"
	case AxisQ2:
		return "Q2"
	default:
		return "Unknown"
	}
}

func (e Extrapolation) String() string {
	switch e {
	case ExtrapolateError:
		return "Error"
	case ExtrapolateBoundary:
		return "Boundary"
	default:
		return "Unknown"
	}
}
