package mp4

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/codec"
	"github.com/deepch/mediaparser/format/mp4/mp4io"
	"github.com/deepch/mediaparser/format/mp4/mp4io/mp4iotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, data []byte) []mp4io.Box {
	t.Helper()
	roots, err := NewDemuxer(bytes.NewReader(data)).Boxes(context.Background())
	require.NoError(t, err)
	return roots
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

func audioTrack() mp4iotest.Track {
	return mp4iotest.Track{
		ID:        2,
		Handler:   "soun",
		Timescale: 48000,
		Entry:     mp4iotest.MP4A(2, 48000),
		Sizes:     []uint32{10, 11},
		Duration:  1024,
	}
}

func TestVideoTrackSamples(t *testing.T) {
	data := mp4iotest.Movie(videoTrack())
	tracks, err := Tracks(parse(t, data), true)
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	tr := tracks[0]
	assert.Equal(t, uint64(1), tr.ID)
	assert.Equal(t, av.Video, tr.Kind)
	assert.Equal(t, codec.H264, tr.Codec)
	assert.Equal(t, "avc1", tr.CodecTag)
	assert.Equal(t, 1920, tr.Width)
	assert.Equal(t, 1080, tr.Height)
	assert.Equal(t, uint32(90000), tr.Timescale)
	assert.Equal(t, int64(9000), tr.Duration)
	assert.Equal(t, "und", tr.Language)
	assert.Equal(t, []byte{1, 0x64, 0, 0x28, 0xff, 0xe0, 0}, tr.CodecPrivate)

	require.Len(t, tr.Samples, 3)
	for i, size := range []int64{1000, 200, 150} {
		s := tr.Samples[i]
		assert.Equal(t, size, s.Size)
		assert.Equal(t, int64(i*3000), s.DTS)
		assert.Equal(t, s.DTS, s.PTS)
		assert.Equal(t, i == 0, s.KeyFrame, "sample %d", i)
		// sample i is filled with byte i+1
		assert.Equal(t, byte(i+1), data[s.Offset])
		assert.Equal(t, byte(i+1), data[s.Offset+s.Size-1])
	}
	assert.Equal(t, tr.Samples[0].Offset+1000, tr.Samples[1].Offset)
	assert.Equal(t, 0, tr.SampleIndexAt(70*time.Millisecond))
}

func TestAudioTrack(t *testing.T) {
	tracks, err := Tracks(parse(t, mp4iotest.Movie(videoTrack(), audioTrack())), true)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	tr := tracks[1]
	assert.Equal(t, av.Audio, tr.Kind)
	assert.Equal(t, codec.AAC, tr.Codec)
	assert.Equal(t, 48000, tr.SampleRate)
	assert.Equal(t, 2, tr.Channels)
	assert.Equal(t, 16, tr.BitDepth)
	assert.Equal(t, []byte{0x12, 0x10}, tr.CodecPrivate)
	require.Len(t, tr.Samples, 2)
	assert.True(t, tr.Samples[0].KeyFrame)
	assert.True(t, tr.Samples[1].KeyFrame)
	assert.Equal(t, int64(1024), tr.Samples[1].DTS)
	// audio follows the video samples in mdat
	assert.Equal(t, tracks[0].Samples[2].Offset+150, tr.Samples[0].Offset)
}

func TestOpusChannelsFromDOps(t *testing.T) {
	opus := audioTrack()
	opus.Entry = mp4iotest.Opus(2, 6, 48000)
	tracks, err := Tracks(parse(t, mp4iotest.Movie(opus)), false)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, codec.OPUS, tracks[0].Codec)
	assert.Equal(t, 6, tracks[0].Channels)
	assert.Nil(t, tracks[0].Samples)
}

func TestCompositionOffsets(t *testing.T) {
	v := videoTrack()
	v.CTS = []int32{3000, 6000, -3000}
	tracks, err := Tracks(parse(t, mp4iotest.Movie(v)), true)
	require.NoError(t, err)
	s := tracks[0].Samples
	assert.Equal(t, []int64{3000, 9000, 3000}, []int64{s[0].PTS, s[1].PTS, s[2].PTS})
}

func TestAllKeyFramesWithoutSyncTable(t *testing.T) {
	v := videoTrack()
	v.Sync = nil
	roots := parse(t, mp4iotest.Movie(v))
	trak := TrackBoxes(MovieBox(roots))[0]
	assert.Nil(t, SyncSampleBox(trak))

	samples, err := Samples(trak)
	require.NoError(t, err)
	for _, s := range samples {
		assert.True(t, s.KeyFrame)
	}
}

func TestFragmentedTracks(t *testing.T) {
	data := mp4iotest.Fragmented(videoTrack(), audioTrack())
	tracks, err := Tracks(parse(t, data), true)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	video := tracks[0]
	require.Len(t, video.Samples, 3)
	assert.True(t, video.Samples[0].KeyFrame)
	assert.False(t, video.Samples[1].KeyFrame)
	assert.Equal(t, int64(3000), video.Samples[1].DTS)
	assert.Equal(t, int64(9000), video.Duration)

	audio := tracks[1]
	require.Len(t, audio.Samples, 2)
	assert.Equal(t, int64(1000), audio.Samples[0].DTS)
	assert.Equal(t, int64(11), audio.Samples[1].Size)

	// samples land inside the mdat that follows their moof
	for _, tr := range tracks {
		off := tr.Samples[0].Offset
		assert.Equal(t, "mdat", string(data[off-4:off]), "track %d", tr.ID)
	}
}

func TestTrackExtendBox(t *testing.T) {
	roots := parse(t, mp4iotest.Fragmented(videoTrack()))
	trex := TrackExtendBox(roots, 1)
	require.NotNil(t, trex)
	assert.Equal(t, uint32(3000), trex.DefaultSampleDuration)
	assert.Nil(t, TrackExtendBox(roots, 7))
	assert.Empty(t, FragmentSamples(parse(t, mp4iotest.Movie(videoTrack())), 1))
}

func TestOptionalAccessorsReturnNil(t *testing.T) {
	roots := parse(t, mp4iotest.Movie(audioTrack()))
	trak := TrackBoxes(MovieBox(roots))[0]

	assert.NotNil(t, FileTypeBox(roots))
	assert.NotNil(t, MovieHeaderBox(MovieBox(roots)))
	assert.NotNil(t, HandlerBox(trak))
	assert.Nil(t, EditListBox(trak))
	assert.Nil(t, SyncSampleBox(trak))
	assert.Nil(t, CompositionOffsetBox(trak))
	assert.Nil(t, VideoDescriptors(trak))

	assert.Nil(t, MovieBox(nil))
	assert.Nil(t, TrackBoxes(nil))
	assert.Nil(t, SampleTableBox(nil))
	assert.Nil(t, ChunkOffsetBox(nil))
	assert.Nil(t, AudioDescriptors(nil))
}

func TestRequiredAccessorsFail(t *testing.T) {
	empty := &mp4io.Container{Tag_: mp4io.TRAK}

	_, err := TrackID(empty)
	var te *TraversalError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, mp4io.TKHD, te.Tag)

	_, err = Timescale(empty)
	require.True(t, errors.As(err, &te))
	assert.Equal(t, mp4io.MDHD, te.Tag)

	_, err = Samples(empty)
	require.True(t, errors.As(err, &te))
	assert.Equal(t, mp4io.STSZ, te.Tag)

	_, err = Tracks(nil, false)
	require.True(t, errors.As(err, &te))
	assert.Equal(t, mp4io.MOOV, te.Tag)
	assert.Equal(t, "mp4: no moov box", err.Error())
}

func TestSamplesTableMismatch(t *testing.T) {
	stbl := &mp4io.Container{Tag_: mp4io.STBL, Boxes: []mp4io.Box{
		&mp4io.SampleSize{SampleSize: 10, SampleCount: 4},
		&mp4io.ChunkOffset{Tag_: mp4io.STCO, Entries: []uint64{100}},
		&mp4io.SampleToChunk{Entries: []mp4io.SampleToChunkEntry{{FirstChunk: 1, SamplesPerChunk: 2, SampleDescId: 1}}},
		&mp4io.TimeToSample{Entries: []mp4io.TimeToSampleEntry{{Count: 4, Duration: 1}}},
	}}
	trak := &mp4io.Container{Tag_: mp4io.TRAK, Boxes: []mp4io.Box{
		&mp4io.Container{Tag_: mp4io.MDIA, Boxes: []mp4io.Box{
			&mp4io.Container{Tag_: mp4io.MINF, Boxes: []mp4io.Box{stbl}},
		}},
	}}
	_, err := Samples(trak)
	assert.ErrorIs(t, err, ErrSampleTable)
}

func TestSamplesCountWithoutEntries(t *testing.T) {
	stbl := &mp4io.Container{Tag_: mp4io.STBL, Boxes: []mp4io.Box{
		&mp4io.SampleSize{SampleSize: 1, SampleCount: 1 << 26},
		&mp4io.ChunkOffset{Tag_: mp4io.STCO, Entries: []uint64{100}},
		&mp4io.SampleToChunk{Entries: []mp4io.SampleToChunkEntry{{FirstChunk: 1, SamplesPerChunk: 1, SampleDescId: 1}}},
		&mp4io.TimeToSample{Entries: []mp4io.TimeToSampleEntry{{Count: 1, Duration: 1}}},
	}}
	trak := &mp4io.Container{Tag_: mp4io.TRAK, Boxes: []mp4io.Box{
		&mp4io.Container{Tag_: mp4io.MDIA, Boxes: []mp4io.Box{
			&mp4io.Container{Tag_: mp4io.MINF, Boxes: []mp4io.Box{stbl}},
		}},
	}}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := Samples(trak)
	runtime.ReadMemStats(&after)
	assert.ErrorIs(t, err, ErrSampleTable)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

func TestSamplesAcrossChunks(t *testing.T) {
	stbl := &mp4io.Container{Tag_: mp4io.STBL, Boxes: []mp4io.Box{
		&mp4io.SampleSize{SampleCount: 5, Entries: []uint32{1, 2, 3, 4, 5}},
		&mp4io.ChunkOffset{Tag_: mp4io.CO64, Entries: []uint64{100, 200, 300}},
		&mp4io.SampleToChunk{Entries: []mp4io.SampleToChunkEntry{
			{FirstChunk: 1, SamplesPerChunk: 2, SampleDescId: 1},
			{FirstChunk: 3, SamplesPerChunk: 1, SampleDescId: 1},
		}},
		&mp4io.TimeToSample{Entries: []mp4io.TimeToSampleEntry{{Count: 2, Duration: 10}, {Count: 3, Duration: 20}}},
		&mp4io.SyncSample{Entries: []uint32{1, 5}},
	}}
	trak := &mp4io.Container{Tag_: mp4io.TRAK, Boxes: []mp4io.Box{
		&mp4io.Container{Tag_: mp4io.MDIA, Boxes: []mp4io.Box{
			&mp4io.Container{Tag_: mp4io.MINF, Boxes: []mp4io.Box{stbl}},
		}},
	}}
	samples, err := Samples(trak)
	require.NoError(t, err)
	require.Len(t, samples, 5)

	var offsets, dts []int64
	var keys []bool
	for _, s := range samples {
		offsets = append(offsets, s.Offset)
		dts = append(dts, s.DTS)
		keys = append(keys, s.KeyFrame)
	}
	assert.Equal(t, []int64{100, 101, 200, 203, 300}, offsets)
	assert.Equal(t, []int64{0, 10, 20, 40, 60}, dts)
	assert.Equal(t, []bool{true, false, false, false, true}, keys)
}

func TestFirstDuplicateWins(t *testing.T) {
	first := &mp4io.TrackHeader{TrackID: 1}
	trak := &mp4io.Container{Tag_: mp4io.TRAK, Boxes: []mp4io.Box{first, &mp4io.TrackHeader{TrackID: 2}}}
	id, err := TrackID(trak)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id)
}

func TestSkippedMediaData(t *testing.T) {
	assert.Equal(t, MediaDataSkip{}, SkippedMediaData(nil))

	indexed := SkippedMediaData(parse(t, mp4iotest.Movie(videoTrack())))
	assert.Equal(t, MediaDataSkip{}, indexed)

	first := SkippedMediaData(parse(t, mp4iotest.MediaFirst(videoTrack())))
	assert.True(t, first.Skipped)
	assert.Equal(t, int64(len(mp4iotest.FileType())+8), first.FileOffset)
}

func TestDemuxerTracksCached(t *testing.T) {
	d := NewDemuxer(bytes.NewReader(mp4iotest.MediaFirst(videoTrack())))
	d.ChunkSize = 5
	tracks, err := d.Tracks(context.Background())
	require.NoError(t, err)
	again, err := d.Tracks(context.Background())
	require.NoError(t, err)
	assert.Same(t, tracks[0], again[0])
	assert.Len(t, tracks[0].Samples, 3)
}

func TestDemuxerTruncated(t *testing.T) {
	data := mp4iotest.Movie(videoTrack())
	_, err := NewDemuxer(bytes.NewReader(data[:len(data)/2])).Tracks(context.Background())
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	assert.True(t, Probe(mp4iotest.FileType()))
	assert.True(t, Probe(mp4iotest.Box("moof")))
	assert.True(t, Probe(mp4iotest.LargeBox("mdat", mp4iotest.Zeros(4))))
	assert.False(t, Probe(mp4iotest.Box("trak")))
	assert.False(t, Probe(append(mp4iotest.U32(4), "ftyp"...)))
	assert.False(t, Probe([]byte("ftyp")))
}
