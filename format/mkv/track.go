package mkv

import (
	"time"

	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/codec"
	"github.com/deepch/mediaparser/codec/opusparser"
	"github.com/deepch/mediaparser/format/fmp4/timescale"
	"github.com/deepch/mediaparser/format/mkv/mkvio"
)

// Matroska TrackType values
const (
	TrackTypeVideo    = 1
	TrackTypeAudio    = 2
	TrackTypeSubtitle = 17
)

// Tracks summarizes the TrackEntry elements of the first segment. Samples
// are gathered from the clusters only when withSamples is set. Opus blocks
// without any duration element are measured from their packets.
func Tracks(roots []*mkvio.Element, withSamples bool) ([]*av.Track, error) {
	segment := Segment(roots)
	if segment == nil {
		return nil, missing(nil, mkvio.ElementSegment)
	}
	rate, unit := Timescale(segment)

	var duration int64
	if d := InfoSegment(segment).Child(mkvio.ElementDuration); d != nil {
		duration = int64(d.Float * float64(unit))
	}

	var tracks []*av.Track
	defaults := map[uint64]int64{}
	measure := map[uint64]blockDuration{}
	for _, entry := range TrackEntries(segment) {
		t, err := track(entry)
		if err != nil {
			return nil, err
		}
		t.Timescale = rate
		t.Duration = duration
		if d, ok := uintChild(entry, mkvio.ElementDefaultDuration); ok {
			defaults[t.ID] = int64(timescale.ToScale(time.Duration(d), rate))
		} else if t.Codec == codec.OPUS {
			measure[t.ID] = opusDuration(rate)
		}
		tracks = append(tracks, t)
	}
	if !withSamples {
		return tracks, nil
	}

	samples := clusterSamples(segment, unit, measure)
	for _, t := range tracks {
		t.Samples = samples[t.ID]
		fillDurations(t.Samples, defaults[t.ID])
		if t.Duration == 0 && len(t.Samples) > 0 {
			last := t.Samples[len(t.Samples)-1]
			t.Duration = last.PTS + last.Duration
		}
	}
	return tracks, nil
}

func track(entry *mkvio.Element) (*av.Track, error) {
	id, err := TrackID(entry)
	if err != nil {
		return nil, err
	}
	t := &av.Track{ID: id}
	if el := CodecSegment(entry); el != nil {
		t.CodecTag = el.String
		t.Codec = codec.FromMatroska(el.String)
	}
	t.CodecPrivate = PrivateData(entry)
	if el := entry.Child(mkvio.ElementLanguage); el != nil {
		t.Language = el.String
	}

	typ, _ := TrackType(entry)
	switch typ {
	case TrackTypeVideo:
		t.Kind = av.Video
		w, err := Width(entry)
		if err != nil {
			return nil, err
		}
		h, err := Height(entry)
		if err != nil {
			return nil, err
		}
		t.Width, t.Height = int(w), int(h)

	case TrackTypeAudio:
		t.Kind = av.Audio
		rate, err := SampleRate(entry)
		if err != nil {
			return nil, err
		}
		t.SampleRate = int(rate)
		channels, err := NumberOfChannels(entry)
		if err != nil {
			return nil, err
		}
		t.Channels = int(channels)
		if _, ok := uintChild(AudioSegment(entry), mkvio.ElementChannels); !ok && t.Codec == codec.OPUS {
			if head, err := opusparser.ParseHead(t.CodecPrivate); err == nil && head.Channels > 0 {
				t.Channels = head.Channels
			}
		}
		if depth, ok := BitDepth(entry); ok {
			t.BitDepth = int(depth)
		}
	}
	return t, nil
}
