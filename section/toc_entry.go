package section

import (
	"github.com/arloliu/pdfgrid/endian"
	"github.com/arloliu/pdfgrid/errs"
)

// TocEntry records the location of one compressed subgrid block in the grid
// file. It is a fixed size of 32 bytes.
//
// Entries are written in (member, subgrid) order, so a reader can locate any
// block with a single table lookup and decompress it in isolation, without
// touching the rest of the file.
type TocEntry struct {
	// Member is the member index the block belongs to.
	//
	// Offset: 0, Size: 2 bytes
	Member uint16

	// Subgrid is the subgrid index within the member.
	//
	// Offset: 2, Size: 2 bytes
	Subgrid uint16

	// Reserved must be zero.
	//
	// Offset: 4, Size: 4 bytes
	Reserved uint32

	// Offset is the absolute byte offset of the compressed block.
	//
	// Offset: 8, Size: 8 bytes
	Offset uint64

	// Length is the compressed byte length of the block.
	//
	// Offset: 16, Size: 8 bytes
	Length uint64

	// Checksum is the xxHash64 of the compressed block bytes. Verified before
	// decompression so corruption is reported as ErrCorruptData rather than a
	// codec failure.
	//
	// Offset: 24, Size: 8 bytes
	Checksum uint64
}

// Bytes returns the entry as a byte slice using the specified endian engine.
func (e *TocEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [TocEntrySize]byte // stack allocation, it's faster than heap allocation
	engine.PutUint16(b[0:2], e.Member)
	engine.PutUint16(b[2:4], e.Subgrid)
	engine.PutUint32(b[4:8], e.Reserved)
	engine.PutUint64(b[8:16], e.Offset)
	engine.PutUint64(b[16:24], e.Length)
	engine.PutUint64(b[24:32], e.Checksum)

	return b[:]
}

// WriteToSlice writes to a pre-allocated slice and returns the next position.
//
// This is the most efficient method when writing multiple entries
// sequentially.
//
// Parameters:
//   - data: Pre-allocated byte slice (must have space for 32 bytes at offset)
//   - offset: Starting position in data slice
//   - engine: Endian engine for byte order
//
// Returns:
//   - int: Next write position (offset + 32)
func (e *TocEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint16(data[offset:offset+2], e.Member)
	engine.PutUint16(data[offset+2:offset+4], e.Subgrid)
	engine.PutUint32(data[offset+4:offset+8], e.Reserved)
	engine.PutUint64(data[offset+8:offset+16], e.Offset)
	engine.PutUint64(data[offset+16:offset+24], e.Length)
	engine.PutUint64(data[offset+24:offset+32], e.Checksum)

	return offset + TocEntrySize
}

// ParseTocEntry parses a TocEntry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the entry (must be at least 32 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - TocEntry: Parsed entry
//   - error: ErrInvalidTocEntrySize if data is too short
func ParseTocEntry(data []byte, engine endian.EndianEngine) (TocEntry, error) {
	if len(data) < TocEntrySize {
		return TocEntry{}, errs.ErrInvalidTocEntrySize
	}

	return TocEntry{
		Member:   engine.Uint16(data[0:2]),
		Subgrid:  engine.Uint16(data[2:4]),
		Reserved: engine.Uint32(data[4:8]),
		Offset:   engine.Uint64(data[8:16]),
		Length:   engine.Uint64(data[16:24]),
		Checksum: engine.Uint64(data[24:32]),
	}, nil
}
