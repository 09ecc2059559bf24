package codec

import (
	"fmt"

	"github.com/arloliu/pdfgrid/compress"
	"github.com/arloliu/pdfgrid/endian"
	"github.com/arloliu/pdfgrid/errs"
	"github.com/arloliu/pdfgrid/grid"
	"github.com/arloliu/pdfgrid/internal/hash"
	"github.com/arloliu/pdfgrid/section"
)

// Decoder provides random access into an encoded grid file.
//
// NewDecoder parses only the header, metadata, flavor list and table of
// contents; subgrid blocks stay compressed until requested. Decode restores
// the whole set, DecodeSubgrid restores a single block.
//
// The Decoder keeps a reference to the input slice, which must not be
// modified while the Decoder is in use. A Decoder is safe for concurrent
// reads.
type Decoder struct {
	data   []byte
	header section.FileHeader
	engine endian.EndianEngine
	codec  compress.Codec
	meta   *grid.Metadata
	pids   []int32
	toc    []section.TocEntry
	index  map[uint32]int
}

// NewDecoder parses the file structure of an encoded grid and returns a
// Decoder for it.
//
// Returns:
//   - error: ErrInvalidMagicNumber or ErrUnsupportedVersion for foreign or
//     future data, ErrCorruptData/ErrInvalidMetadataBlock/ErrInvalidTocEntrySize
//     for structural damage
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseFileHeader(data)
	if err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()
	codec, err := compress.GetCodec(header.Flag.Compression())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptData, err)
	}

	if header.MetadataOffset > uint64(len(data)) {
		return nil, fmt.Errorf("%w: metadata offset %d beyond %d bytes",
			errs.ErrCorruptData, header.MetadataOffset, len(data))
	}
	block, metaLen, err := section.ParseMetadataBlock(data[header.MetadataOffset:], engine)
	if err != nil {
		return nil, err
	}
	meta := grid.NewMetadata()
	for _, pair := range block {
		meta.Set(pair.Key, pair.Value)
	}

	pids, _, err := decodePidBlock(data[header.MetadataOffset+uint64(metaLen):], engine) //nolint: gosec
	if err != nil {
		return nil, err
	}

	n := uint64(len(data))
	tocLen := uint64(header.EntryCount) * section.TocEntrySize
	// Overflow-safe: never form offset+length before bounding the offset.
	if header.TocOffset > n || tocLen > n-header.TocOffset {
		return nil, fmt.Errorf("%w: table of contents at %d (+%d entries) beyond %d bytes",
			errs.ErrCorruptData, header.TocOffset, header.EntryCount, len(data))
	}
	tocEnd := header.TocOffset + tocLen

	toc := make([]section.TocEntry, header.EntryCount)
	index := make(map[uint32]int, header.EntryCount)
	pos := header.TocOffset
	for i := range toc {
		toc[i], err = section.ParseTocEntry(data[pos:tocEnd], engine)
		if err != nil {
			return nil, err
		}
		if toc[i].Offset > n || toc[i].Length > n-toc[i].Offset {
			return nil, fmt.Errorf("%w: block %d/%d extends beyond %d bytes",
				errs.ErrCorruptData, toc[i].Member, toc[i].Subgrid, len(data))
		}
		index[blockKey(int(toc[i].Member), int(toc[i].Subgrid))] = i
		pos += section.TocEntrySize
	}

	return &Decoder{
		data:   data,
		header: header,
		engine: engine,
		codec:  codec,
		meta:   meta,
		pids:   pids,
		toc:    toc,
		index:  index,
	}, nil
}

func blockKey(member, subgrid int) uint32 {
	return uint32(member)<<16 | uint32(subgrid) //nolint: gosec
}

// NumMembers returns the number of members in the file.
func (d *Decoder) NumMembers() int {
	return int(d.header.MemberCount)
}

// NumSubgrids returns the number of subgrid blocks of one member.
func (d *Decoder) NumSubgrids(member int) (int, error) {
	if member < 0 || member >= d.NumMembers() {
		return 0, fmt.Errorf("%w: member %d of %d", errs.ErrInvalidMemberIndex, member, d.NumMembers())
	}

	count := 0
	for _, entry := range d.toc {
		if int(entry.Member) == member {
			count++
		}
	}

	return count, nil
}

// Metadata returns the decoded metadata table. It is available without
// touching any compressed block.
func (d *Decoder) Metadata() *grid.Metadata {
	return d.meta
}

// Pids returns the parton id list shared by all member tensors.
func (d *Decoder) Pids() []int32 {
	return d.pids
}

// DecodeSubgrid restores a single subgrid without decompressing any other
// block. The block checksum is verified first, so damaged files fail with
// ErrCorruptData instead of a codec error.
func (d *Decoder) DecodeSubgrid(member, subgrid int) (*grid.Subgrid, error) {
	idx, ok := d.index[blockKey(member, subgrid)]
	if !ok {
		if member < 0 || member >= d.NumMembers() {
			return nil, fmt.Errorf("%w: member %d of %d", errs.ErrInvalidMemberIndex, member, d.NumMembers())
		}

		return nil, fmt.Errorf("%w: member %d has no subgrid %d", errs.ErrInvalidSubgridIndex, member, subgrid)
	}
	entry := d.toc[idx]

	comp := d.data[entry.Offset : entry.Offset+entry.Length]
	if sum := hash.Checksum(comp); sum != entry.Checksum {
		return nil, fmt.Errorf("%w: member %d subgrid %d checksum %016x, expected %016x",
			errs.ErrCorruptData, member, subgrid, sum, entry.Checksum)
	}

	raw, err := d.codec.Decompress(comp)
	if err != nil {
		return nil, fmt.Errorf("%w: member %d subgrid %d: %w", errs.ErrCorruptData, member, subgrid, err)
	}

	sg, err := decodeSubgridBlock(raw, d.engine)
	if err != nil {
		return nil, fmt.Errorf("member %d subgrid %d: %w", member, subgrid, err)
	}

	return sg, nil
}

// DecodeMember restores one member with all of its subgrids.
func (d *Decoder) DecodeMember(member int) (*grid.Member, error) {
	count, err := d.NumSubgrids(member)
	if err != nil {
		return nil, err
	}

	subgrids := make([]*grid.Subgrid, count)
	for si := range subgrids {
		subgrids[si], err = d.DecodeSubgrid(member, si)
		if err != nil {
			return nil, err
		}
	}

	return grid.NewMember(subgrids)
}

// Coupling restores the coupling table, or returns nil when the file carries
// none.
func (d *Decoder) Coupling() (*grid.CouplingTable, error) {
	if !d.header.HasCoupling() {
		return nil, nil
	}

	offset := d.header.CouplingOffset
	n := uint64(len(d.data))
	if offset > n || n-offset < 16 {
		return nil, fmt.Errorf("%w: coupling block at %d beyond %d bytes", errs.ErrCorruptData, offset, len(d.data))
	}
	checksum := d.engine.Uint64(d.data[offset : offset+8])
	length := d.engine.Uint64(d.data[offset+8 : offset+16])
	if length > n-offset-16 {
		return nil, fmt.Errorf("%w: coupling block declares %d bytes beyond end of data", errs.ErrCorruptData, length)
	}

	comp := d.data[offset+16 : offset+16+length]
	if sum := hash.Checksum(comp); sum != checksum {
		return nil, fmt.Errorf("%w: coupling block checksum %016x, expected %016x", errs.ErrCorruptData, sum, checksum)
	}

	raw, err := d.codec.Decompress(comp)
	if err != nil {
		return nil, fmt.Errorf("%w: coupling block: %w", errs.ErrCorruptData, err)
	}

	return decodeCouplingBlock(raw, d.engine)
}

// Decode restores the complete grid set.
func (d *Decoder) Decode() (*grid.GridSet, error) {
	members := make([]*grid.Member, d.NumMembers())
	var err error
	for mi := range members {
		members[mi], err = d.DecodeMember(mi)
		if err != nil {
			return nil, err
		}
	}

	coupling, err := d.Coupling()
	if err != nil {
		return nil, err
	}

	return grid.NewGridSet(d.pids, members, d.meta.Clone(), coupling)
}

// Decode parses and fully restores an encoded grid set in one call.
func Decode(data []byte) (*grid.GridSet, error) {
	d, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}
