package section

import (
	"fmt"

	"github.com/arloliu/pdfgrid/endian"
	"github.com/arloliu/pdfgrid/errs"
)

// MetadataPair is one ordered key/value entry of the metadata block.
type MetadataPair struct {
	Key   string
	Value string
}

// MetadataBlock is the ordered key/value section stored right after the file
// header. It is never compressed, so tools can rewrite it without decoding
// any subgrid block.
//
// Wire layout: uint32 byte length of the remainder, uint32 pair count, then
// for each pair a uint32-length-prefixed key followed by a
// uint32-length-prefixed value. Pair order is preserved.
type MetadataBlock []MetadataPair

// EncodedSize returns the byte length of the serialized block, including the
// leading length field.
func (b MetadataBlock) EncodedSize() int {
	size := 8 // length + pair count
	for _, pair := range b {
		size += 8 + len(pair.Key) + len(pair.Value)
	}

	return size
}

// Bytes serializes the block using the specified endian engine.
func (b MetadataBlock) Bytes(engine endian.EndianEngine) []byte {
	buf := make([]byte, 0, b.EncodedSize())
	buf = engine.AppendUint32(buf, uint32(b.EncodedSize()-4)) //nolint: gosec
	buf = engine.AppendUint32(buf, uint32(len(b)))            //nolint: gosec
	for _, pair := range b {
		buf = engine.AppendUint32(buf, uint32(len(pair.Key))) //nolint: gosec
		buf = append(buf, pair.Key...)
		buf = engine.AppendUint32(buf, uint32(len(pair.Value))) //nolint: gosec
		buf = append(buf, pair.Value...)
	}

	return buf
}

// ParseMetadataBlock parses a MetadataBlock from a byte slice. The slice may
// extend past the block; only the declared length is consumed.
//
// Returns:
//   - MetadataBlock: Parsed ordered pairs
//   - int: Total bytes consumed, including the leading length field
//   - error: ErrInvalidMetadataBlock when the declared lengths run past the
//     available data
func ParseMetadataBlock(data []byte, engine endian.EndianEngine) (MetadataBlock, int, error) {
	if len(data) < 8 {
		return nil, 0, fmt.Errorf("%w: %d bytes, need at least 8", errs.ErrInvalidMetadataBlock, len(data))
	}

	blockLen := int(engine.Uint32(data[0:4]))
	if blockLen < 4 || blockLen > len(data)-4 {
		return nil, 0, fmt.Errorf("%w: declared length %d exceeds %d available bytes",
			errs.ErrInvalidMetadataBlock, blockLen, len(data)-4)
	}

	body := data[4 : 4+blockLen]
	count := int(engine.Uint32(body[0:4]))
	body = body[4:]

	// Each pair needs at least two length prefixes; a count beyond that bound
	// is a lie, and sizing an allocation by it would let a 12-byte input
	// demand gigabytes.
	if count > len(body)/8 {
		return nil, 0, fmt.Errorf("%w: declared %d pairs exceed %d body bytes",
			errs.ErrInvalidMetadataBlock, count, len(body))
	}

	block := make(MetadataBlock, 0, count)
	for i := range count {
		key, rest, err := readString(body, engine)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: pair %d key: %w", errs.ErrInvalidMetadataBlock, i, err)
		}
		value, rest, err := readString(rest, engine)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: pair %d value: %w", errs.ErrInvalidMetadataBlock, i, err)
		}
		block = append(block, MetadataPair{Key: key, Value: value})
		body = rest
	}

	return block, 4 + blockLen, nil
}

func readString(data []byte, engine endian.EndianEngine) (string, []byte, error) {
	if len(data) < 4 {
		return "", nil, fmt.Errorf("%d bytes, need length prefix", len(data))
	}
	n := int(engine.Uint32(data[0:4]))
	if n > len(data)-4 {
		return "", nil, fmt.Errorf("declared length %d exceeds %d available bytes", n, len(data)-4)
	}

	return string(data[4 : 4+n]), data[4+n:], nil
}
