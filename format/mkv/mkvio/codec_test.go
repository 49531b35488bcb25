package mkvio

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/format/mkv/mkvio/mkviotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(data []byte, chunk int) ([]*Element, error) {
	tree := NewTree()
	ctx := context.Background()
	for len(data) > 0 {
		n := chunk
		if n > len(data) {
			n = len(data)
		}
		tree.Write(data[:n])
		data = data[n:]
		if _, err := tree.Parse(ctx); err != nil {
			return nil, err
		}
	}
	tree.Close()
	if _, err := tree.Parse(ctx); err != nil {
		return nil, err
	}
	return tree.Roots(), nil
}

func videoTrack() mkviotest.Track {
	return mkviotest.Track{
		Number:  1,
		Type:    1,
		CodecID: "V_VP9",
		Width:   640,
		Height:  360,
		Frames: []mkviotest.Frame{
			{Timecode: 0, Size: 300, Keyframe: true},
			{Timecode: 33, Size: 40},
			{Timecode: 66, Size: 45},
		},
	}
}

func dump(roots []*Element) string {
	var b bytes.Buffer
	for _, r := range roots {
		FprintElement(&b, r)
	}
	return b.String()
}

func TestTreeWebM(t *testing.T) {
	roots, err := parse(mkviotest.File(1000000, videoTrack()), 1<<20)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	header := roots[0]
	assert.Equal(t, ElementEBML.ID, header.ID)
	assert.Equal(t, int64(31), header.Size)
	assert.Equal(t, "webm", header.Child(ElementDocType).String)

	segment := roots[1]
	assert.Equal(t, "Segment", segment.Name)
	info := segment.Child(ElementInfo)
	require.NotNil(t, info)
	assert.Equal(t, uint64(1000000), info.Child(ElementTimecodeScale).Uint)
	assert.Equal(t, 1000.0, info.Child(ElementDuration).Float)
	assert.Equal(t, "mkviotest", info.Child(ElementMuxingApp).String)

	entry := segment.Child(ElementTracks).Child(ElementTrackEntry)
	require.NotNil(t, entry)
	assert.Equal(t, "V_VP9", entry.Child(ElementCodecID).String)
	video := entry.Child(ElementVideo)
	assert.Equal(t, uint64(640), video.Child(ElementPixelWidth).Uint)

	cluster := segment.Child(ElementCluster)
	blocks := cluster.ChildrenOf(ElementSimpleBlock)
	require.Len(t, blocks, 3)
	assert.True(t, blocks[0].Block.Keyframe())
	assert.False(t, blocks[1].Block.Keyframe())
	assert.Equal(t, int16(33), blocks[1].Block.Timecode)
	require.Len(t, blocks[0].Block.Frames, 1)
	assert.Equal(t, int64(300), blocks[0].Block.Frames[0].Size)
	assert.Equal(t, blocks[0].End()-300, blocks[0].Block.Frames[0].Offset)
}

func TestTreeChunkedMatchesWhole(t *testing.T) {
	data := mkviotest.File(1000000, videoTrack())
	whole, err := parse(data, len(data))
	require.NoError(t, err)
	for _, chunk := range []int{1, 5, 64} {
		roots, err := parse(data, chunk)
		require.NoError(t, err)
		assert.Equal(t, dump(whole), dump(roots), "chunk %d", chunk)
	}
}

func TestTreeMatroskaHeader(t *testing.T) {
	data := append(mkviotest.Header("matroska"), mkviotest.Element(ElementSegment.ID)...)
	roots, err := parse(data, len(data))
	require.NoError(t, err)
	assert.Equal(t, int64(35), roots[0].Size)
	assert.Equal(t, "matroska", roots[0].Child(ElementDocType).String)
}

func TestTreeBadHeaderLength(t *testing.T) {
	data := append(mkviotest.HeaderWithLength(40), mkviotest.Element(ElementSegment.ID)...)
	tree := NewTree()
	tree.Write(data)
	tree.Close()
	_, err := tree.Parse(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadHeaderLength))
	assert.Nil(t, tree.Roots())
	// nothing past the header id and size was consumed
	assert.LessOrEqual(t, tree.Cursor.Offset(), int64(5))
}

func TestTreeNotEBML(t *testing.T) {
	_, err := parse(mkviotest.Element(ElementSegment.ID), 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEBML))
}

func TestTreeClusterOutsideSegment(t *testing.T) {
	void := mkviotest.Element(ElementVoid.ID, make([]byte, 4))
	cluster := mkviotest.Element(ElementCluster.ID, mkviotest.Uint(ElementTimecode.ID, 0))
	data := append(append(mkviotest.Header("webm"), void...), cluster...)
	_, err := parse(data, len(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotSegment))
	assert.Contains(t, err.Error(), "Cluster")
}

func TestTreeUnknownSizeClusters(t *testing.T) {
	roots, err := parse(mkviotest.LiveFile(1000000, videoTrack()), 7)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	segment := roots[1]
	clusters := segment.ChildrenOf(ElementCluster)
	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].ChildrenOf(ElementSimpleBlock), 3)
	assert.Len(t, clusters[1].ChildrenOf(ElementSimpleBlock), 3)
	assert.Equal(t, uint64(1000), clusters[1].Child(ElementTimecode).Uint)
	assert.Equal(t, clusters[1].Offset, clusters[0].End())
	assert.Equal(t, segment.End(), clusters[1].End())
}

func TestTreeChildOverrun(t *testing.T) {
	inner := mkviotest.Uint(ElementTimecodeScale.ID, 1000000)
	info := append([]byte{0x15, 0x49, 0xa9, 0x66, 0x82}, inner...)
	data := append(mkviotest.Header("webm"), mkviotest.Element(ElementSegment.ID, info)...)
	_, err := parse(data, len(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mediaio.ErrOverrun))
}

func TestTreeBadUintSize(t *testing.T) {
	bad := mkviotest.Element(ElementTimecodeScale.ID, make([]byte, 9))
	data := append(mkviotest.Header("webm"), mkviotest.Element(ElementSegment.ID, mkviotest.Element(ElementInfo.ID, bad))...)
	_, err := parse(data, len(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadElementSize))
}

func TestTreeSkipsUnknownElements(t *testing.T) {
	unknown := mkviotest.Element(0x4fff, []byte{1, 2, 3})
	void := mkviotest.Element(ElementVoid.ID, make([]byte, 10))
	data := append(mkviotest.Header("webm"), mkviotest.Element(ElementSegment.ID, unknown, void)...)
	roots, err := parse(data, 3)
	require.NoError(t, err)
	children := roots[1].Children
	require.Len(t, children, 2)
	assert.Equal(t, "Unknown", children[0].Name)
	assert.Equal(t, uint32(0x4fff), children[0].ID)
	assert.Equal(t, int64(3), children[0].Size)
	assert.Nil(t, children[1].Data)
}

func blockElement(lacing byte, lace []byte, frames ...[]byte) []byte {
	b := []byte{0x81, 0x00, 0x10, 0x80 | lacing<<1}
	b = append(b, lace...)
	for _, f := range frames {
		b = append(b, f...)
	}
	return mkviotest.Element(ElementSimpleBlock.ID, b)
}

func readTestBlock(t *testing.T, el []byte) *Block {
	t.Helper()
	c := mediaio.NewCursor()
	c.Write(el)
	h, err := ReadElementHeader(c, 1)
	require.NoError(t, err)
	b, err := readBlock(c, h)
	require.NoError(t, err)
	return b
}

func frameSizes(b *Block) (out []int64) {
	for _, f := range b.Frames {
		out = append(out, f.Size)
	}
	return
}

func TestBlockLacing(t *testing.T) {
	f1, f2, f3 := make([]byte, 300), make([]byte, 20), make([]byte, 7)

	xiph := blockElement(LacingXiph, []byte{2, 0xff, 45, 20}, f1, f2, f3)
	b := readTestBlock(t, xiph)
	assert.Equal(t, LacingXiph, b.Lacing)
	assert.Equal(t, []int64{300, 20, 7}, frameSizes(b))
	assert.Equal(t, int16(16), b.Timecode)
	assert.Equal(t, uint64(1), b.Track)

	// 300 as a 2-byte vint, then 20-300 = -280 as a signed 2-byte vint
	ebml := blockElement(LacingEBML, []byte{2, 0x41, 0x2c, 0x5e, 0xe7}, f1, f2, f3)
	b = readTestBlock(t, ebml)
	assert.Equal(t, []int64{300, 20, 7}, frameSizes(b))

	fixed := blockElement(LacingFixed, []byte{2}, f2, f2, f2)
	b = readTestBlock(t, fixed)
	assert.Equal(t, []int64{20, 20, 20}, frameSizes(b))
	assert.Equal(t, b.Frames[0].Offset+20, b.Frames[1].Offset)
}

func TestBlockBadLacing(t *testing.T) {
	el := blockElement(LacingXiph, []byte{1, 200}, make([]byte, 10))
	c := mediaio.NewCursor()
	c.Write(el)
	h, err := ReadElementHeader(c, 1)
	require.NoError(t, err)
	_, err = readBlock(c, h)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadLacing))
}
