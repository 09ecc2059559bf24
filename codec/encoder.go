package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/pdfgrid/compress"
	"github.com/arloliu/pdfgrid/format"
	"github.com/arloliu/pdfgrid/grid"
	"github.com/arloliu/pdfgrid/internal/hash"
	"github.com/arloliu/pdfgrid/internal/pool"
	"github.com/arloliu/pdfgrid/section"
)

// Option configures the encoder.
type Option func(*encodeConfig)

type encodeConfig struct {
	compression format.CompressionType
	bigEndian   bool
}

// WithCompression selects the block compression codec. The default is zstd.
func WithCompression(compression format.CompressionType) Option {
	return func(cfg *encodeConfig) {
		cfg.compression = compression
	}
}

// WithBigEndian stores multi-byte fields in big-endian order. The default is
// little-endian.
func WithBigEndian() Option {
	return func(cfg *encodeConfig) {
		cfg.bigEndian = true
	}
}

// Encode serializes a grid set into the binary file format.
//
// Every subgrid becomes an independently compressed and checksummed block, so
// decoders can restore single subgrids without reading the rest of the
// payload.
func Encode(gs *grid.GridSet, opts ...Option) ([]byte, error) {
	cfg := encodeConfig{compression: format.CompressionZstd}
	for _, opt := range opts {
		opt(&cfg)
	}

	flag := section.NewGridFlag()
	flag.SetCompression(cfg.compression)
	if cfg.bigEndian {
		flag.WithBigEndian()
	}
	if !flag.IsValidCompression() {
		return nil, fmt.Errorf("unsupported compression type: %s", cfg.compression)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	engine := flag.GetEndianEngine()

	if gs.NumMembers() > math.MaxUint16 {
		return nil, fmt.Errorf("member count %d exceeds format limit %d", gs.NumMembers(), math.MaxUint16)
	}

	metaBytes := metadataBlock(gs.Metadata()).Bytes(engine)
	pidBytes := encodePidBlock(nil, engine, gs.Pids())

	// Compress every subgrid block up front so section offsets are known
	// before the table of contents is written.
	scratch := pool.GetFileBuffer()
	defer pool.PutFileBuffer(scratch)

	var entries []section.TocEntry
	var blocks [][]byte
	for mi, m := range gs.Members() {
		if m.NumSubgrids() > math.MaxUint16 {
			return nil, fmt.Errorf("member %d subgrid count %d exceeds format limit %d",
				mi, m.NumSubgrids(), math.MaxUint16)
		}
		for si, sg := range m.Subgrids() {
			scratch.Reset()
			scratch.B = encodeSubgridBlock(scratch.B, engine, sg)

			comp, err := codec.Compress(scratch.B)
			if err != nil {
				return nil, fmt.Errorf("compressing member %d subgrid %d: %w", mi, si, err)
			}
			if cfg.compression == format.CompressionNone {
				// The no-op codec passes the input through; detach it from
				// the scratch buffer before the next block reuses it.
				comp = append([]byte(nil), comp...)
			}

			entries = append(entries, section.TocEntry{
				Member:   uint16(mi),          //nolint: gosec
				Subgrid:  uint16(si),          //nolint: gosec
				Length:   uint64(len(comp)),   //nolint: gosec
				Checksum: hash.Checksum(comp), // Offset is filled in below
			})
			blocks = append(blocks, comp)
		}
	}

	var couplingBytes []byte
	if ct := gs.Coupling(); ct != nil {
		scratch.Reset()
		scratch.B = encodeCouplingBlock(scratch.B, engine, ct)

		comp, err := codec.Compress(scratch.B)
		if err != nil {
			return nil, fmt.Errorf("compressing coupling table: %w", err)
		}

		// Coupling block framing: checksum, compressed length, payload.
		couplingBytes = engine.AppendUint64(couplingBytes, hash.Checksum(comp))
		couplingBytes = engine.AppendUint64(couplingBytes, uint64(len(comp))) //nolint: gosec
		couplingBytes = append(couplingBytes, comp...)
	}

	header := section.NewFileHeader()
	header.Flag = flag
	header.MemberCount = uint32(gs.NumMembers()) //nolint: gosec
	header.EntryCount = uint32(len(entries))     //nolint: gosec
	header.TocOffset = uint64(section.HeaderSize + len(metaBytes) + len(pidBytes))

	blockOffset := header.TocOffset + uint64(len(entries)*section.TocEntrySize)
	if couplingBytes != nil {
		header.CouplingOffset = blockOffset
		blockOffset += uint64(len(couplingBytes))
	}

	total := blockOffset
	for i := range entries {
		entries[i].Offset = total
		total += entries[i].Length
	}

	out := make([]byte, 0, total)
	out = append(out, header.Bytes()...)
	out = append(out, metaBytes...)
	out = append(out, pidBytes...)
	tocStart := len(out)
	out = append(out, make([]byte, len(entries)*section.TocEntrySize)...)
	pos := tocStart
	for i := range entries {
		pos = entries[i].WriteToSlice(out, pos, engine)
	}
	out = append(out, couplingBytes...)
	for _, block := range blocks {
		out = append(out, block...)
	}

	return out, nil
}

// metadataBlock flattens the ordered metadata table into its wire form.
func metadataBlock(meta *grid.Metadata) section.MetadataBlock {
	block := make(section.MetadataBlock, 0, meta.Len())
	for _, key := range meta.Keys() {
		value, _ := meta.Get(key)
		block = append(block, section.MetadataPair{Key: key, Value: value})
	}

	return block
}
