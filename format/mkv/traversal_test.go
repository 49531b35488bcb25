package mkv

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/codec"
	"github.com/deepch/mediaparser/format/mkv/mkvio"
	"github.com/deepch/mediaparser/format/mkv/mkvio/mkviotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, data []byte) []*mkvio.Element {
	t.Helper()
	roots, err := NewDemuxer(bytes.NewReader(data)).Elements(context.Background())
	require.NoError(t, err)
	return roots
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

func opusTrack() mkviotest.Track {
	head := []byte("OpusHead")
	head = append(head, 1, 2, 0x38, 0x01, 0x80, 0xbb, 0, 0, 0, 0, 0)
	return mkviotest.Track{
		Number:       2,
		Type:         2,
		CodecID:      "A_OPUS",
		CodecPrivate: head,
		SampleRate:   48000,
		Frames: []mkviotest.Frame{
			{Timecode: 0, Size: 20, Keyframe: true},
			{Timecode: 20, Size: 21, Keyframe: true},
		},
	}
}

func TestWebMTracks(t *testing.T) {
	data := mkviotest.File(1000000, videoTrack(), opusTrack())
	roots := parse(t, data)
	assert.Equal(t, "webm", DocType(roots))

	tracks, err := Tracks(roots, true)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	video := tracks[0]
	assert.Equal(t, uint64(1), video.ID)
	assert.Equal(t, av.Video, video.Kind)
	assert.Equal(t, codec.VP9, video.Codec)
	assert.Equal(t, "V_VP9", video.CodecTag)
	assert.Equal(t, 640, video.Width)
	assert.Equal(t, 360, video.Height)
	assert.Equal(t, uint32(1000), video.Timescale)
	assert.Equal(t, int64(1000), video.Duration)
	require.Len(t, video.Samples, 3)
	for i, s := range video.Samples {
		assert.Equal(t, i == 0, s.KeyFrame, "sample %d", i)
		assert.Equal(t, byte(i+1), data[s.Offset])
		assert.Equal(t, byte(i+1), data[s.Offset+s.Size-1])
	}
	assert.Equal(t, int64(33), video.Samples[1].PTS)
	assert.Equal(t, int64(33), video.Samples[0].Duration)

	audio := tracks[1]
	assert.Equal(t, av.Audio, audio.Kind)
	assert.Equal(t, codec.OPUS, audio.Codec)
	assert.Equal(t, 48000, audio.SampleRate)
	// no Channels element, so the OpusHead count applies
	assert.Equal(t, 2, audio.Channels)
	require.Len(t, audio.Samples, 2)
	// packets of two 10ms frames
	assert.Equal(t, int64(20), audio.Samples[0].Duration)
	assert.Equal(t, int64(20), audio.Samples[1].Duration)
}

func TestLiveClusters(t *testing.T) {
	tracks, err := Tracks(parse(t, mkviotest.LiveFile(1000000, videoTrack())), true)
	require.NoError(t, err)
	samples := tracks[0].Samples
	require.Len(t, samples, 6)
	assert.Equal(t, int64(1000), samples[3].DTS)
	assert.Equal(t, int64(1066), samples[5].PTS)
	assert.True(t, samples[3].KeyFrame)
}

func TestTimestampScale(t *testing.T) {
	roots := parse(t, mkviotest.File(500000, videoTrack()))
	scale, ok := TimestampScale(Segment(roots))
	assert.True(t, ok)
	assert.Equal(t, uint64(500000), scale)
	rate, unit := Timescale(Segment(roots))
	assert.Equal(t, uint32(2000), rate)
	assert.Equal(t, int64(1), unit)

	scale, ok = TimestampScale(nil)
	assert.False(t, ok)
	assert.Equal(t, uint64(DefaultTimestampScale), scale)
}

func TestUnevenTimestampScale(t *testing.T) {
	tracks, err := Tracks(parse(t, mkviotest.File(333333, videoTrack())), true)
	require.NoError(t, err)
	video := tracks[0]
	assert.Equal(t, uint32(1e9), video.Timescale)
	assert.Equal(t, int64(1000*333333), video.Duration)
	assert.Equal(t, int64(33*333333), video.Samples[1].DTS)
	assert.Equal(t, int64(33*333333), video.Samples[0].Duration)
	assert.Equal(t, 11*time.Millisecond, video.Time(video.Samples[1].DTS).Round(time.Millisecond))

	rate, unit := Timescale(Segment(parse(t, mkviotest.File(2e9, videoTrack()))))
	assert.Equal(t, uint32(1), rate)
	assert.Equal(t, int64(2), unit)
}

func TestOpusPacketDurations(t *testing.T) {
	simple := func(timecode byte, packet ...byte) []byte {
		return mkviotest.Element(0xa3, append([]byte{0x81, 0, timecode, 0x80}, packet...))
	}
	entry := mkviotest.Element(0xae,
		mkviotest.Uint(0xd7, 1), mkviotest.Uint(0x83, 2), mkviotest.String(0x86, "A_OPUS"),
		mkviotest.Element(0xe1, mkviotest.Float(0xb5, 48000), mkviotest.Uint(0x9f, 2)))
	cluster := mkviotest.Element(0x1f43b675,
		mkviotest.Uint(0xe7, 0),
		// one 20ms frame
		simple(0, 0x08, 0xaa),
		// three 20ms frames
		simple(100, 0x0b, 0x03, 0xaa),
		mkviotest.Element(0xa0,
			mkviotest.Element(0xa1, []byte{0x81, 0, 200, 0}, []byte{0x08, 0xaa}),
			mkviotest.Uint(0x9b, 5)))
	segment := mkviotest.Element(0x18538067, mkviotest.Element(0x1654ae6b, entry), cluster)

	tracks, err := Tracks(parse(t, append(mkviotest.Header("webm"), segment...)), true)
	require.NoError(t, err)
	samples := tracks[0].Samples
	require.Len(t, samples, 3)
	assert.Equal(t, int64(20), samples[0].Duration)
	assert.Equal(t, int64(60), samples[1].Duration)
	assert.Equal(t, int64(5), samples[2].Duration)
	assert.Equal(t, int64(205), tracks[0].Duration)
}

func TestBadHeaderLength(t *testing.T) {
	data := append(mkviotest.HeaderWithLength(40), mkviotest.Element(0x18538067)...)
	_, err := NewDemuxer(bytes.NewReader(data)).Tracks(context.Background())
	assert.ErrorIs(t, err, mkvio.ErrBadHeaderLength)
}

func blockGroupFile() []byte {
	block := func(timecode byte, size int) []byte {
		return mkviotest.Element(0xa1, []byte{0x81, 0, timecode, 0}, make([]byte, size))
	}
	entry := mkviotest.Element(0xae,
		mkviotest.Uint(0xd7, 1), mkviotest.Uint(0x83, 1), mkviotest.String(0x86, "V_VP8"),
		mkviotest.Uint(0x23e383, 40000000),
		mkviotest.Element(0xe0, mkviotest.Uint(0xb0, 320), mkviotest.Uint(0xba, 240)))
	cluster := mkviotest.Element(0x1f43b675,
		mkviotest.Uint(0xe7, 0),
		mkviotest.Element(0xa0, block(0, 100), mkviotest.Uint(0x9b, 40)),
		mkviotest.Element(0xa0, block(40, 10), mkviotest.Element(0xfb, []byte{0xd8})),
		mkviotest.Element(0xa0, block(80, 10), mkviotest.Element(0xfb, []byte{0xd8})))
	segment := mkviotest.Element(0x18538067, mkviotest.Element(0x1654ae6b, entry), cluster)
	return append(mkviotest.Header("matroska"), segment...)
}

func TestBlockGroups(t *testing.T) {
	roots := parse(t, blockGroupFile())
	assert.Equal(t, "matroska", DocType(roots))
	tracks, err := Tracks(roots, true)
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	samples := tracks[0].Samples
	require.Len(t, samples, 3)
	assert.True(t, samples[0].KeyFrame)
	assert.False(t, samples[1].KeyFrame)
	assert.False(t, samples[2].KeyFrame)
	assert.Equal(t, []int64{40, 40, 40}, []int64{samples[0].Duration, samples[1].Duration, samples[2].Duration})
	assert.Equal(t, int64(100), samples[0].Size)
	// no Info, so Duration comes from the samples
	assert.Equal(t, int64(120), tracks[0].Duration)
}

func TestOptionalAccessors(t *testing.T) {
	roots := parse(t, mkviotest.File(1000000, videoTrack()))
	segment := Segment(roots)
	entry := TrackEntries(segment)[0]

	assert.NotNil(t, InfoSegment(segment))
	assert.Len(t, ClusterSegment(segment), 1)
	assert.NotNil(t, VideoSegment(entry))
	assert.Nil(t, AudioSegment(entry))
	assert.Nil(t, PrivateData(entry))
	assert.Equal(t, "V_VP9", CodecSegment(entry).String)

	typ, ok := TrackType(entry)
	assert.True(t, ok)
	assert.Equal(t, uint64(TrackTypeVideo), typ)
	_, ok = BitDepth(entry)
	assert.False(t, ok)
	_, ok = DisplayWidth(entry)
	assert.False(t, ok)
	_, ok = DisplayHeight(entry)
	assert.False(t, ok)

	assert.Nil(t, Segment(nil))
	assert.Nil(t, TracksSegment(nil))
	assert.Nil(t, ClusterSegment(nil))
	assert.Nil(t, CodecSegment(nil))
}

func TestRequiredAccessorsFail(t *testing.T) {
	var te *TraversalError
	entry := &mkvio.Element{ElementRegister: mkvio.ElementTrackEntry}

	_, err := TrackID(entry)
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "TrackNumber", te.Name)
	assert.Equal(t, "TrackEntry", te.Parent)

	_, err = SampleRate(entry)
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Audio", te.Name)

	_, err = NumberOfChannels(entry)
	require.True(t, errors.As(err, &te))

	_, err = Width(entry)
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "Video", te.Name)

	audio := &mkvio.Element{ElementRegister: mkvio.ElementAudio}
	entry.Children = []*mkvio.Element{audio}
	_, err = SampleRate(entry)
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "SamplingFrequency", te.Name)

	n, err := NumberOfChannels(entry)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	_, err = Tracks(nil, false)
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "mkv: no Segment element", err.Error())
}

func TestAudioTrackWithoutSampleRate(t *testing.T) {
	a := opusTrack()
	a.SampleRate = 0
	_, err := Tracks(parse(t, mkviotest.File(1000000, a)), false)
	var te *TraversalError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "SamplingFrequency", te.Name)
}

func TestProbe(t *testing.T) {
	assert.True(t, Probe(mkviotest.Header("webm")))
	assert.False(t, Probe([]byte{0x1a, 0x45}))
	assert.False(t, Probe([]byte("\x00\x00\x00\x18ftyp")))
}
