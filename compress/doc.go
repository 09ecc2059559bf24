// Package compress provides the per-block compression codecs used by the
// pdfgrid binary format.
//
// Compression is applied to individual subgrid blocks rather than the whole
// file so that the decoder can seek to one block's offset and decompress only
// that block. Each codec therefore operates on complete in-memory blocks, not
// streams.
//
// Supported algorithms:
//   - None: pass-through, for already-dense grids or debugging
//   - Zstd: best ratio, default for archival grid files
//   - S2: fastest decompression, for evaluation-heavy workloads
//   - LZ4: balanced speed and ratio
//
// All codecs are stateless values and safe for concurrent use; internal
// encoder/decoder state is pooled.
package compress
