package section

import (
	"github.com/arloliu/pdfgrid/errs"
)

// FileHeader represents the fixed-size header section at the start of a grid
// file.
//
// The sections it points at appear in file order: metadata block (always
// uncompressed), flavor list, table of contents, optional coupling block,
// then the compressed subgrid blocks. Offsets are absolute byte positions so
// sections after the metadata block can be relocated by adjusting offsets
// alone.
type FileHeader struct {
	// MemberCount is the number of members stored in the file.
	MemberCount uint32 // byte offset 4-7
	// EntryCount is the number of table-of-contents entries, one per subgrid
	// block across all members.
	EntryCount uint32 // byte offset 8-11
	// MetadataOffset is the byte offset to the start of the metadata block.
	// Always HeaderSize in version 1.
	MetadataOffset uint64 // byte offset 12-19
	// TocOffset is the byte offset to the start of the table of contents.
	TocOffset uint64 // byte offset 20-27
	// CouplingOffset is the byte offset to the start of the coupling block,
	// or 0 when the file carries no coupling table.
	CouplingOffset uint64 // byte offset 28-35
	// Reserved must be zero. byte offset 36-39.
	Reserved uint32

	// Flag is a packed field for options, magic number and compression.
	Flag GridFlag // byte offset 0-3
}

// NewFileHeader creates a FileHeader with default flags. The counts and
// section offsets are filled in when the encoder finishes.
func NewFileHeader() *FileHeader {
	return &FileHeader{
		Flag:           NewGridFlag(),
		MetadataOffset: MetadataOffsetOffset,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 40 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 40 bytes, or flag validation
//     errors
func (h *FileHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Parse options first to determine endianness (always little-endian for
	// the Options field itself).
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()

	h.MemberCount = engine.Uint32(data[4:8])
	h.EntryCount = engine.Uint32(data[8:12])
	h.MetadataOffset = engine.Uint64(data[12:20])
	h.TocOffset = engine.Uint64(data[20:28])
	h.CouplingOffset = engine.Uint64(data[28:36])
	h.Reserved = engine.Uint32(data[36:40])

	return nil
}

// Bytes serializes the FileHeader into a byte slice.
func (h *FileHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	// The Options field is always little-endian; a reader must decode it
	// before it knows the file's byte order.
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	b[3] = 0
	engine.PutUint32(b[4:8], h.MemberCount)
	engine.PutUint32(b[8:12], h.EntryCount)
	engine.PutUint64(b[12:20], h.MetadataOffset)
	engine.PutUint64(b[20:28], h.TocOffset)
	engine.PutUint64(b[28:36], h.CouplingOffset)
	engine.PutUint32(b[36:40], h.Reserved)

	return b
}

// HasCoupling returns whether the file carries a coupling block.
func (h *FileHeader) HasCoupling() bool {
	return h.CouplingOffset != 0
}

// ParseFileHeader parses a FileHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 40 bytes)
//
// Returns:
//   - FileHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < HeaderSize {
		return FileHeader{}, errs.ErrInvalidHeaderSize
	}

	h := FileHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return FileHeader{}, err
	}

	return h, nil
}
