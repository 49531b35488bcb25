// Package av contains the format-agnostic description of a parsed file:
// its tracks and the location and timing of every sample.
package av

import (
	"fmt"
	"sort"
	"time"

	"github.com/deepch/mediaparser/codec"
	"github.com/deepch/mediaparser/format/fmp4/timescale"
)

type MediaKind int

const (
	Other MediaKind = iota
	Video
	Audio
)

func (k MediaKind) String() string {
	switch k {
	case Video:
		return "video"
	case Audio:
		return "audio"
	}
	return "other"
}

// Sample locates one coded frame in the source. Times are in the track
// timescale.
type Sample struct {
	Offset   int64
	Size     int64
	DTS      int64
	PTS      int64
	Duration int64
	KeyFrame bool
}

// Track is the summary of one track. Width and Height are set for video,
// SampleRate, Channels and BitDepth for audio.
type Track struct {
	ID           uint64
	Kind         MediaKind
	Codec        codec.Type
	CodecTag     string // sample entry fourcc or Matroska CodecID
	Width        int
	Height       int
	SampleRate   int
	Channels     int
	BitDepth     int
	Timescale    uint32
	Duration     int64
	Language     string
	CodecPrivate []byte
	Samples      []Sample
}

func (t *Track) String() string {
	switch t.Kind {
	case Video:
		return fmt.Sprintf("#%d %s %s %dx%d samples=%d", t.ID, t.Kind, t.Codec, t.Width, t.Height, len(t.Samples))
	case Audio:
		return fmt.Sprintf("#%d %s %s %dHz ch=%d samples=%d", t.ID, t.Kind, t.Codec, t.SampleRate, t.Channels, len(t.Samples))
	}
	return fmt.Sprintf("#%d %s %s samples=%d", t.ID, t.Kind, t.CodecTag, len(t.Samples))
}

// Time converts a value in the track timescale to a duration.
func (t *Track) Time(v int64) time.Duration {
	return timescale.ToDuration(v, t.Timescale)
}

// SampleIndexAt returns the index of the last key frame whose decode time
// is at or before d, or -1 when there is none. Samples must be in decode
// order.
func (t *Track) SampleIndexAt(d time.Duration) int {
	if d < 0 || t.Timescale == 0 {
		return -1
	}
	target := int64(timescale.ToScale(d, t.Timescale))
	n := sort.Search(len(t.Samples), func(i int) bool {
		return t.Samples[i].DTS > target
	})
	for i := n - 1; i >= 0; i-- {
		if t.Samples[i].KeyFrame {
			return i
		}
	}
	return -1
}
