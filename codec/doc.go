// Package codec reads and writes the binary grid file format.
//
// A file holds one grid.GridSet. After the fixed header come the metadata
// block, the flavor list, a table of contents, an optional coupling block and
// finally one compressed block per subgrid. Each subgrid block is compressed
// and checksummed independently, so a reader can pull a single subgrid out of
// a multi-gigabyte file with one table lookup and one block decompression.
//
// The metadata block is stored uncompressed; UpdateMetadata rewrites it and
// relocates the sections behind it without recompressing any block.
//
// Encoding and decoding are lossless: float64 tensor values round-trip
// bit-exactly through every supported compression codec.
package codec
