package compress

// ZstdCompressor provides Zstandard compression for grid blocks.
//
// Zstd favors compression ratio over speed, which suits PDF grid files: they
// are written once by conversion tooling and decompressed subgrid-by-subgrid
// at load time. Value tensors of smooth physical quantities compress well.
//
// Two implementations are selectable at build time: the default pure-Go
// klauspost/compress encoder, or valyala/gozstd (cgo, libzstd) behind the
// "gozstd" build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
