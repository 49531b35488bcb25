package mkv

import (
	"fmt"

	"github.com/deepch/mediaparser/format/mkv/mkvio"
)

// TraversalError reports an element that a well-formed file must carry.
type TraversalError struct {
	Parent string
	Name   string
}

func (e *TraversalError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("mkv: no %s element", e.Name)
	}
	return fmt.Sprintf("mkv: %s has no %s element", e.Parent, e.Name)
}

func missing(parent *mkvio.Element, r mkvio.ElementRegister) error {
	e := &TraversalError{Name: r.Name}
	if parent != nil {
		e.Parent = parent.Name
	}
	return e
}

// DefaultTimestampScale is the Info TimestampScale a file without one uses,
// in nanoseconds per tick.
const DefaultTimestampScale = 1000000

// Segment is the first top-level Segment, or nil.
func Segment(roots []*mkvio.Element) *mkvio.Element {
	for _, el := range roots {
		if el.ID == mkvio.ElementSegment.ID {
			return el
		}
	}
	return nil
}

// ClusterSegment lists the clusters of the segment in file order.
func ClusterSegment(segment *mkvio.Element) []*mkvio.Element {
	return segment.ChildrenOf(mkvio.ElementCluster)
}

func TracksSegment(segment *mkvio.Element) *mkvio.Element {
	return segment.Child(mkvio.ElementTracks)
}

func InfoSegment(segment *mkvio.Element) *mkvio.Element {
	return segment.Child(mkvio.ElementInfo)
}

// TrackEntries lists the TrackEntry elements of the segment.
func TrackEntries(segment *mkvio.Element) []*mkvio.Element {
	return TracksSegment(segment).ChildrenOf(mkvio.ElementTrackEntry)
}

// TimestampScale is the Info TimestampScale. ok is false when the element
// is absent and DefaultTimestampScale applies.
func TimestampScale(segment *mkvio.Element) (scale uint64, ok bool) {
	el := InfoSegment(segment).Child(mkvio.ElementTimecodeScale)
	if el == nil || el.Uint == 0 {
		return DefaultTimestampScale, false
	}
	return el.Uint, true
}

func VideoSegment(entry *mkvio.Element) *mkvio.Element {
	return entry.Child(mkvio.ElementVideo)
}

func AudioSegment(entry *mkvio.Element) *mkvio.Element {
	return entry.Child(mkvio.ElementAudio)
}

func uintChild(el *mkvio.Element, r mkvio.ElementRegister) (uint64, bool) {
	c := el.Child(r)
	if c == nil {
		return 0, false
	}
	return c.Uint, true
}

// TrackType is 1 for video, 2 for audio, 17 for subtitles.
func TrackType(entry *mkvio.Element) (uint64, bool) {
	return uintChild(entry, mkvio.ElementTrackType)
}

// CodecSegment is the CodecID element, or nil.
func CodecSegment(entry *mkvio.Element) *mkvio.Element {
	return entry.Child(mkvio.ElementCodecID)
}

// PrivateData is the CodecPrivate payload, or nil.
func PrivateData(entry *mkvio.Element) []byte {
	if el := entry.Child(mkvio.ElementCodecPrivate); el != nil {
		return el.Data
	}
	return nil
}

func BitDepth(entry *mkvio.Element) (uint64, bool) {
	return uintChild(AudioSegment(entry), mkvio.ElementBitDepth)
}

func DisplayWidth(entry *mkvio.Element) (uint64, bool) {
	return uintChild(VideoSegment(entry), mkvio.ElementDisplayWidth)
}

func DisplayHeight(entry *mkvio.Element) (uint64, bool) {
	return uintChild(VideoSegment(entry), mkvio.ElementDisplayHeight)
}

// TrackID is the TrackNumber blocks refer to. It is mandatory.
func TrackID(entry *mkvio.Element) (uint64, error) {
	n, ok := uintChild(entry, mkvio.ElementTrackNumber)
	if !ok {
		return 0, missing(entry, mkvio.ElementTrackNumber)
	}
	return n, nil
}

// SampleRate is mandatory for an audio track.
func SampleRate(entry *mkvio.Element) (float64, error) {
	audio := AudioSegment(entry)
	if audio == nil {
		return 0, missing(entry, mkvio.ElementAudio)
	}
	el := audio.Child(mkvio.ElementSamplingFrequency)
	if el == nil {
		return 0, missing(audio, mkvio.ElementSamplingFrequency)
	}
	return el.Float, nil
}

// NumberOfChannels defaults to 1 when Audio carries no Channels.
func NumberOfChannels(entry *mkvio.Element) (uint64, error) {
	audio := AudioSegment(entry)
	if audio == nil {
		return 0, missing(entry, mkvio.ElementAudio)
	}
	if n, ok := uintChild(audio, mkvio.ElementChannels); ok {
		return n, nil
	}
	return 1, nil
}

// Width is the PixelWidth of a video track.
func Width(entry *mkvio.Element) (uint64, error) {
	return pixels(entry, mkvio.ElementPixelWidth)
}

// Height is the PixelHeight of a video track.
func Height(entry *mkvio.Element) (uint64, error) {
	return pixels(entry, mkvio.ElementPixelHeight)
}

func pixels(entry *mkvio.Element, r mkvio.ElementRegister) (uint64, error) {
	video := VideoSegment(entry)
	if video == nil {
		return 0, missing(entry, mkvio.ElementVideo)
	}
	n, ok := uintChild(video, r)
	if !ok {
		return 0, missing(video, r)
	}
	return n, nil
}
