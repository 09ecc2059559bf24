package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pdfgrid/endian"
	"github.com/arloliu/pdfgrid/errs"
)

func TestTocEntryRoundTrip(t *testing.T) {
	entry := TocEntry{
		Member:   3,
		Subgrid:  1,
		Offset:   0x1234_5678_9ABC,
		Length:   987654,
		Checksum: 0xDEAD_BEEF_CAFE_F00D,
	}

	for _, engine := range []endian.EndianEngine{
		endian.GetLittleEndianEngine(),
		endian.GetBigEndianEngine(),
	} {
		data := entry.Bytes(engine)
		require.Len(t, data, TocEntrySize)

		parsed, err := ParseTocEntry(data, engine)
		require.NoError(t, err)
		require.Equal(t, entry, parsed)
	}
}

func TestTocEntryWriteToSlice(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	entries := []TocEntry{
		{Member: 0, Subgrid: 0, Offset: 100, Length: 10, Checksum: 1},
		{Member: 0, Subgrid: 1, Offset: 110, Length: 20, Checksum: 2},
		{Member: 1, Subgrid: 0, Offset: 130, Length: 30, Checksum: 3},
	}

	data := make([]byte, len(entries)*TocEntrySize)
	pos := 0
	for i := range entries {
		pos = entries[i].WriteToSlice(data, pos, engine)
	}
	require.Equal(t, len(data), pos)

	for i, want := range entries {
		parsed, err := ParseTocEntry(data[i*TocEntrySize:], engine)
		require.NoError(t, err)
		require.Equal(t, want, parsed)
	}
}

func TestParseTocEntryTooShort(t *testing.T) {
	_, err := ParseTocEntry(make([]byte, TocEntrySize-1), endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrInvalidTocEntrySize)
}
