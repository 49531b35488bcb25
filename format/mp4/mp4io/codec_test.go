package mp4io

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/format/mp4/mp4io/mp4iotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseChunked(t *testing.T, data []byte, chunk int) []Box {
	t.Helper()
	tree := NewTree()
	ctx := context.Background()
	for len(data) > 0 {
		n := chunk
		if n > len(data) {
			n = len(data)
		}
		_, err := tree.Write(data[:n])
		require.NoError(t, err)
		data = data[n:]
		status, err := tree.Parse(ctx)
		require.NoError(t, err)
		require.Equal(t, mediaio.StatusIncomplete, status)
	}
	require.NoError(t, tree.Close())
	status, err := tree.Parse(ctx)
	require.NoError(t, err)
	require.Equal(t, mediaio.StatusDone, status)
	return tree.Roots()
}

func parseAll(data []byte) ([]Box, error) {
	tree := NewTree()
	tree.Write(data)
	tree.Close()
	if _, err := tree.Parse(context.Background()); err != nil {
		return nil, err
	}
	return tree.Roots(), nil
}

func videoTrack() mp4iotest.Track {
	return mp4iotest.Track{
		ID:        1,
		Handler:   "vide",
		Timescale: 90000,
		Width:     1920,
		Height:    1080,
		Entry:     mp4iotest.AVC1(1920, 1080),
		Sizes:     []uint32{1000, 200, 150},
		Duration:  3000,
		Sync:      []uint32{1},
	}
}

func dump(roots []Box) string {
	var sb strings.Builder
	for _, r := range roots {
		FprintBox(&sb, r)
	}
	return sb.String()
}

func TestTreeChunkedMatchesWhole(t *testing.T) {
	data := mp4iotest.Movie(videoTrack())
	whole := parseChunked(t, data, len(data))
	for _, chunk := range []int{1, 7, 100} {
		roots := parseChunked(t, data, chunk)
		assert.Equal(t, dump(whole), dump(roots), "chunk %d", chunk)
	}
}

func checkSpans(t *testing.T, b Box) {
	t.Helper()
	off, size := b.Pos()
	children := b.Children()
	if len(children) == 0 {
		return
	}
	var pos BoxPos
	switch a := b.(type) {
	case *Container:
		pos = a.BoxPos
	case *SampleDesc:
		pos = a.BoxPos
	case *VisualSampleEntry:
		pos = a.BoxPos
	case *AudioSampleEntry:
		pos = a.BoxPos
	}
	next := off + int64(pos.HeaderSize+pos.PrefixSize)
	for _, child := range children {
		coff, csize := child.Pos()
		assert.Equal(t, next, coff, "%s child %s", b.Tag(), child.Tag())
		next = coff + csize
		checkSpans(t, child)
	}
	assert.Equal(t, off+size, next, "%s", b.Tag())
}

func TestTreeChildrenFillParent(t *testing.T) {
	roots, err := parseAll(mp4iotest.Movie(videoTrack()))
	require.NoError(t, err)
	require.Len(t, roots, 3)
	for _, r := range roots {
		checkSpans(t, r)
	}
}

func TestTreeDecodesMovie(t *testing.T) {
	roots, err := parseAll(mp4iotest.Movie(videoTrack()))
	require.NoError(t, err)

	ftyp, ok := roots[0].(*FileType)
	require.True(t, ok)
	assert.Equal(t, "isom", ftyp.MajorBrand.String())
	assert.Len(t, ftyp.CompatibleBrands, 2)

	moov := roots[1]
	tkhd, ok := FindChildren(moov, TKHD).(*TrackHeader)
	require.True(t, ok)
	assert.Equal(t, uint32(1), tkhd.TrackID)
	assert.Equal(t, 1920.0, tkhd.TrackWidth)
	assert.Equal(t, 1080.0, tkhd.TrackHeight)

	mdhd := FindChildren(moov, MDHD).(*MediaHeader)
	assert.Equal(t, uint32(90000), mdhd.TimeScale)
	assert.Equal(t, "und", mdhd.Language)

	hdlr := FindChildren(moov, HDLR).(*HandlerRefer)
	assert.Equal(t, "vide", hdlr.SubType.String())
	assert.Equal(t, "handler", hdlr.Name)

	stsd := FindChildren(moov, STSD).(*SampleDesc)
	require.Len(t, stsd.Entries, 1)
	avc1 := stsd.Entries[0].(*VisualSampleEntry)
	assert.Equal(t, uint16(1920), avc1.Width)
	assert.Equal(t, uint16(1080), avc1.Height)
	assert.Equal(t, 72.0, avc1.HorizontalResolution)
	avcc := FindChildren(avc1, AVCC).(*CodecConfig)
	assert.Equal(t, byte(0x64), avcc.Data[1])

	stsz := FindChildren(moov, STSZ).(*SampleSize)
	assert.Equal(t, []uint32{1000, 200, 150}, stsz.Entries)
	assert.Equal(t, uint32(200), stsz.Size(1))
	stss := FindChildren(moov, STSS).(*SyncSample)
	assert.Equal(t, []uint32{1}, stss.Entries)
	stco := FindChildren(moov, STCO).(*ChunkOffset)
	mdat := roots[2].(*MediaData)
	assert.Equal(t, []uint64{uint64(mdat.PayloadOffset)}, stco.Entries)
	assert.True(t, mdat.SamplesIndexed)
}

func TestTreeMediaDataBeforeMovie(t *testing.T) {
	roots, err := parseAll(mp4iotest.MediaFirst(videoTrack()))
	require.NoError(t, err)
	mdat := roots[1].(*MediaData)
	assert.False(t, mdat.SamplesIndexed)
	assert.Equal(t, int64(len(mp4iotest.FileType())+8), mdat.PayloadOffset)
}

func TestTreeMediaDataNotBuffered(t *testing.T) {
	tree := NewTree()
	ctx := context.Background()
	header := mp4iotest.U32(8 + 16<<20)
	header = append(header, "mdat"...)
	tree.Write(mp4iotest.FileType())
	tree.Write(header)
	_, err := tree.Parse(ctx)
	require.NoError(t, err)
	chunk := make([]byte, 1<<20)
	for i := 0; i < 16; i++ {
		tree.Write(chunk)
		_, err = tree.Parse(ctx)
		require.NoError(t, err)
		assert.Zero(t, tree.Cursor.Buffered())
	}
	tree.Close()
	status, err := tree.Parse(ctx)
	require.NoError(t, err)
	assert.Equal(t, mediaio.StatusDone, status)
	require.Len(t, tree.Roots(), 2)
}

func TestTreeLargeSize(t *testing.T) {
	data := append(mp4iotest.FileType(), mp4iotest.LargeBox("free", mp4iotest.Zeros(10))...)
	roots, err := parseAll(data)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	off, size := roots[1].Pos()
	assert.Equal(t, int64(len(mp4iotest.FileType())), off)
	assert.Equal(t, int64(26), size)
	assert.Equal(t, 16, roots[1].(*Dummy).HeaderSize)
}

func TestTreeSizeToEnd(t *testing.T) {
	tail := append(mp4iotest.U32(0), "mdat"...)
	tail = append(tail, mp4iotest.Zeros(100)...)
	roots, err := parseAll(append(mp4iotest.FileType(), tail...))
	require.NoError(t, err)
	require.Len(t, roots, 2)
	_, size := roots[1].Pos()
	assert.Equal(t, int64(-1), size)
}

func TestTreeSizeToEndNested(t *testing.T) {
	inner := append(mp4iotest.U32(0), "free"...)
	data := mp4iotest.Box("moov", inner)
	_, err := parseAll(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSizeToEOF))
}

func TestTreeSizeTooSmall(t *testing.T) {
	data := append(mp4iotest.U32(4), "free"...)
	_, err := parseAll(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSizeTooSmall))
}

func TestTreeChildOverrunsParent(t *testing.T) {
	child := mp4iotest.Box("free", mp4iotest.Zeros(16))
	data := append(mp4iotest.U32(8+8), "moov"...)
	data = append(data, child...)
	_, err := parseAll(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mediaio.ErrOverrun))
}

func TestTreeTruncated(t *testing.T) {
	data := mp4iotest.Movie(videoTrack())
	_, err := parseAll(data[:len(data)-500])
	require.Error(t, err)
	assert.True(t, errors.Is(err, mediaio.ErrTruncated) || errors.Is(err, io.ErrUnexpectedEOF))
}

func TestTreeEntryCountTooLarge(t *testing.T) {
	stts := mp4iotest.FullBox("stts", 0, 0, mp4iotest.U32(1000))
	_, err := parseAll(mp4iotest.Box("moov", mp4iotest.Box("trak", stts)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEntryCount))
}

func TestTreeCancelled(t *testing.T) {
	tree := NewTree()
	tree.Write(mp4iotest.Movie(videoTrack()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tree.Parse(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mediaio.ErrCancelled))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestReadBoxHeaderResumes(t *testing.T) {
	c := mediaio.NewCursor()
	box := mp4iotest.LargeBox("free", mp4iotest.Zeros(4))
	c.Write(box[:12])
	mark := c.Mark()
	_, err := ReadBoxHeader(c, 0)
	require.ErrorIs(t, err, mediaio.ErrIncomplete)
	c.Reset(mark)
	assert.Equal(t, int64(0), c.Offset())

	c.Write(box[12:])
	h, err := ReadBoxHeader(c, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(StringToTag("free")), h.ID)
	assert.Equal(t, 16, h.HeaderSize)
	assert.Equal(t, int64(4), h.Size)
}

func TestTreeFragments(t *testing.T) {
	roots, err := parseAll(mp4iotest.Fragmented(videoTrack()))
	require.NoError(t, err)
	require.Len(t, roots, 4)
	moof := roots[2]
	assert.Equal(t, MOOF, moof.Tag())
	tfhd := FindChildren(moof, TFHD).(*TrackFragHeader)
	assert.Equal(t, uint32(1), tfhd.TrackID)
	assert.NotZero(t, tfhd.Flags&TrackFragDefaultBaseIsMOOF)
	assert.Equal(t, uint32(3000), tfhd.DefaultDuration)
	trun := FindChildren(moof, TRUN).(*TrackFragRun)
	require.Len(t, trun.Entries, 3)
	assert.Equal(t, uint32(1000), trun.Entries[0].Size)
	assert.True(t, trun.Entries[0].Flags.IsKeyframe())
	assert.False(t, trun.Entries[1].Flags.IsKeyframe())
	_, moofSize := moof.Pos()
	assert.Equal(t, int32(moofSize+8), trun.DataOffset)
	trex := FindChildren(roots[1], TREX).(*TrackExtend)
	assert.Equal(t, uint32(1), trex.TrackID)
}

func TestTreeAudioEntries(t *testing.T) {
	opus := mp4iotest.Track{ID: 1, Handler: "soun", Timescale: 48000, Entry: mp4iotest.Opus(2, 2, 48000), Sizes: []uint32{10}, Duration: 960}
	aac := mp4iotest.Track{ID: 2, Handler: "soun", Timescale: 44100, Entry: mp4iotest.MP4A(2, 44100), Sizes: []uint32{10}, Duration: 1024}
	roots, err := parseAll(mp4iotest.Movie(opus, aac))
	require.NoError(t, err)

	entry := FindChildren(roots[1], OPUS).(*AudioSampleEntry)
	assert.Equal(t, uint32(2), entry.ChannelCount)
	assert.Equal(t, 48000.0, entry.SampleRate)
	dops := FindChildren(entry, DOPS).(*CodecConfig)
	assert.Equal(t, byte(2), dops.Data[1])

	mp4a := FindChildren(roots[1], MP4A).(*AudioSampleEntry)
	assert.Equal(t, 44100.0, mp4a.SampleRate)
	esds := FindChildren(mp4a, ESDS).(*ElemStreamDesc)
	require.NotNil(t, esds.StreamDescriptor.DecoderConfig)
	assert.Equal(t, []byte{0x12, 0x10}, esds.StreamDescriptor.DecoderConfig.DecoderSpecific)
}

func TestAudioSampleEntryVersion2(t *testing.T) {
	entry := mp4iotest.Box("lpcm",
		mp4iotest.Zeros(6), mp4iotest.U16(1), mp4iotest.U16(2), mp4iotest.Zeros(6),
		mp4iotest.U16(3), mp4iotest.U16(16), mp4iotest.Zeros(4), mp4iotest.U32(1<<16),
		mp4iotest.U32(72), mp4iotest.Float64(96000), mp4iotest.U32(6), mp4iotest.Zeros(20))
	roots, err := parseAll(mp4iotest.Box("moov", mp4iotest.FullBox("stsd", 0, 0, mp4iotest.U32(1), entry)))
	require.NoError(t, err)
	a := FindChildren(roots[0], LPCM).(*AudioSampleEntry)
	assert.Equal(t, uint16(2), a.Version)
	assert.Equal(t, 96000.0, a.SampleRate)
	assert.Equal(t, uint32(6), a.ChannelCount)
	assert.Equal(t, 64, a.PrefixSize)
}
