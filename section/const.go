package section

const (
	// Bit masks for the packed Options field
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicGridV1Opt = 0x9D10 // Version 1 magic number for the grid file format.
)

// Offsets and section sizes in the grid file
const (
	HeaderSize           = 40         // fixed file header size in bytes
	TocEntrySize         = 32         // fixed table-of-contents entry size in bytes
	MetadataOffsetOffset = HeaderSize // byte offset where the metadata block starts
)
