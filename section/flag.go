package section

import (
	"github.com/arloliu/pdfgrid/endian"
	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/format"
)

// GridFlag represents the packed flag fields at the start of the file header.
type GridFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved, must be set to 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are magic number to identify the grid file format:
	//   - 0x9D10 (0b1001_1101_0001_0000): Grid file format v1
	Options uint16

	// CompressionType is an enum indicating the compression applied to every
	// subgrid block and the coupling block. The metadata block is never
	// compressed so it can be rewritten in place.
	CompressionType uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewGridFlag creates a GridFlag with default settings: little-endian byte
// order and zstd block compression.
func NewGridFlag() GridFlag {
	flag := GridFlag{
		Options:         MagicGridV1Opt,
		CompressionType: uint8(format.CompressionZstd),
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the data is little-endian.
func (f GridFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f GridFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *GridFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *GridFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f GridFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Compression returns the block compression type.
func (f GridFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the block compression type.
func (f *GridFlag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// IsValidMagicNumber checks if the magic number is valid.
func (f GridFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicGridV1Opt
}

// IsValidCompression checks if the compression type is valid.
func (f GridFlag) IsValidCompression() bool {
	_, ok := validCompressions[f.CompressionType]

	return ok
}

// Validate checks if the flag fields contain valid values.
//
// Returns:
//   - error: ErrInvalidMagicNumber for an unknown magic number,
//     ErrUnsupportedVersion for a known magic prefix with an unknown version
//     nibble, ErrCorruptData for an invalid compression type
func (f GridFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		// A matching high byte with a different version nibble is a future
		// format revision, not garbage.
		if f.GetMagicNumber()&0xFF00 == MagicGridV1Opt&0xFF00 {
			return errs.ErrUnsupportedVersion
		}

		return errs.ErrInvalidMagicNumber
	}

	if !f.IsValidCompression() {
		return errs.ErrCorruptData
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f GridFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
