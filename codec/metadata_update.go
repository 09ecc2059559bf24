package codec

import (
	"fmt"

	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/grid"
	"github.com/arloliu/pdfgrid/section"
)

// UpdateMetadata replaces the metadata block of an encoded grid with the
// given table and returns the rewritten file.
//
// The metadata block is stored uncompressed at a fixed position, so the
// rewrite only re-serializes the header and table of contents to account for
// the size change; every compressed block is copied byte-identically. The
// input slice is not modified.
func UpdateMetadata(data []byte, meta *grid.Metadata) ([]byte, error) {
	header, err := section.ParseFileHeader(data)
	if err != nil {
		return nil, err
	}
	engine := header.Flag.GetEndianEngine()

	if header.MetadataOffset > uint64(len(data)) {
		return nil, fmt.Errorf("%w: metadata offset %d beyond %d bytes",
			errs.ErrCorruptData, header.MetadataOffset, len(data))
	}
	_, oldLen, err := section.ParseMetadataBlock(data[header.MetadataOffset:], engine)
	if err != nil {
		return nil, err
	}

	newMeta := metadataBlock(meta).Bytes(engine)
	delta := int64(len(newMeta)) - int64(oldLen)

	n := uint64(len(data))
	metaEnd := header.MetadataOffset + uint64(oldLen)
	oldTocOffset := header.TocOffset
	tocLen := uint64(header.EntryCount) * section.TocEntrySize
	// Overflow-safe: never form offset+length before bounding the offset.
	if oldTocOffset < metaEnd || oldTocOffset > n || tocLen > n-oldTocOffset {
		return nil, fmt.Errorf("%w: table of contents at %d (+%d entries) outside [%d, %d)",
			errs.ErrCorruptData, oldTocOffset, header.EntryCount, metaEnd, n)
	}
	tocEnd := oldTocOffset + tocLen

	header.TocOffset = shift(header.TocOffset, delta)
	if header.CouplingOffset != 0 {
		header.CouplingOffset = shift(header.CouplingOffset, delta)
	}

	out := make([]byte, 0, int64(len(data))+delta)
	out = append(out, header.Bytes()...)
	out = append(out, newMeta...)
	// Flavor list sits between the old metadata block and the table of
	// contents; it moves but its bytes do not change.
	out = append(out, data[header.MetadataOffset+uint64(oldLen):oldTocOffset]...)

	tocStart := len(out)
	out = append(out, make([]byte, int(header.EntryCount)*section.TocEntrySize)...)
	pos := tocStart
	src := oldTocOffset
	for range header.EntryCount {
		entry, err := section.ParseTocEntry(data[src:tocEnd], engine)
		if err != nil {
			return nil, err
		}
		entry.Offset = shift(entry.Offset, delta)
		pos = entry.WriteToSlice(out, pos, engine)
		src += section.TocEntrySize
	}

	// Coupling and subgrid blocks, byte-identical.
	out = append(out, data[tocEnd:]...)

	return out, nil
}

// UpdateMetadataKey sets one metadata key on an encoded grid and returns the
// rewritten file.
func UpdateMetadataKey(data []byte, key, value string) ([]byte, error) {
	d, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	meta := d.Metadata().Clone()
	meta.Set(key, value)

	return UpdateMetadata(data, meta)
}

func shift(offset uint64, delta int64) uint64 {
	return uint64(int64(offset) + delta) //nolint: gosec
}
