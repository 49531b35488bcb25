package mp4

import (
	"fmt"

	"github.com/deepch/mediaparser/format/mp4/mp4io"
)

// TraversalError reports a box that a well-formed file must carry.
type TraversalError struct {
	Parent mp4io.Tag
	Tag    mp4io.Tag
}

func (e *TraversalError) Error() string {
	if e.Parent == 0 {
		return fmt.Sprintf("mp4: no %s box", e.Tag)
	}
	return fmt.Sprintf("mp4: %s has no %s box", e.Parent, e.Tag)
}

func missing(parent, tag mp4io.Tag) error {
	return &TraversalError{Parent: parent, Tag: tag}
}

// child is the first direct child of b tagged tag, or nil.
func child(b mp4io.Box, tag mp4io.Tag) mp4io.Box {
	if b == nil {
		return nil
	}
	for _, c := range b.Children() {
		if c.Tag() == tag {
			return c
		}
	}
	return nil
}

func children(b mp4io.Box, tag mp4io.Tag) (out []mp4io.Box) {
	if b == nil {
		return
	}
	for _, c := range b.Children() {
		if c.Tag() == tag {
			out = append(out, c)
		}
	}
	return
}

func rootBox(roots []mp4io.Box, tag mp4io.Tag) mp4io.Box {
	for _, r := range roots {
		if r.Tag() == tag {
			return r
		}
	}
	return nil
}

// The accessors below return nil when the box is absent. A nil trak or
// parent box is treated as absent as well.

func FileTypeBox(roots []mp4io.Box) *mp4io.FileType {
	a, _ := rootBox(roots, mp4io.FTYP).(*mp4io.FileType)
	return a
}

func MovieBox(roots []mp4io.Box) *mp4io.Container {
	a, _ := rootBox(roots, mp4io.MOOV).(*mp4io.Container)
	return a
}

func MovieHeaderBox(moov mp4io.Box) *mp4io.MovieHeader {
	a, _ := child(moov, mp4io.MVHD).(*mp4io.MovieHeader)
	return a
}

// TrackBoxes lists the trak boxes of moov in file order.
func TrackBoxes(moov mp4io.Box) (out []*mp4io.Container) {
	for _, b := range children(moov, mp4io.TRAK) {
		if c, ok := b.(*mp4io.Container); ok {
			out = append(out, c)
		}
	}
	return
}

func TrackHeaderBox(trak mp4io.Box) *mp4io.TrackHeader {
	a, _ := child(trak, mp4io.TKHD).(*mp4io.TrackHeader)
	return a
}

func EditListBox(trak mp4io.Box) *mp4io.EditList {
	a, _ := child(child(trak, mp4io.EDTS), mp4io.ELST).(*mp4io.EditList)
	return a
}

func MediaBox(trak mp4io.Box) *mp4io.Container {
	a, _ := child(trak, mp4io.MDIA).(*mp4io.Container)
	return a
}

func MediaHeaderBox(trak mp4io.Box) *mp4io.MediaHeader {
	a, _ := child(MediaBox(trak), mp4io.MDHD).(*mp4io.MediaHeader)
	return a
}

func HandlerBox(trak mp4io.Box) *mp4io.HandlerRefer {
	a, _ := child(MediaBox(trak), mp4io.HDLR).(*mp4io.HandlerRefer)
	return a
}

func SampleTableBox(trak mp4io.Box) *mp4io.Container {
	minf := child(MediaBox(trak), mp4io.MINF)
	a, _ := child(minf, mp4io.STBL).(*mp4io.Container)
	return a
}

func SampleDescBox(trak mp4io.Box) *mp4io.SampleDesc {
	a, _ := child(SampleTableBox(trak), mp4io.STSD).(*mp4io.SampleDesc)
	return a
}

func TimeToSampleBox(trak mp4io.Box) *mp4io.TimeToSample {
	a, _ := child(SampleTableBox(trak), mp4io.STTS).(*mp4io.TimeToSample)
	return a
}

func CompositionOffsetBox(trak mp4io.Box) *mp4io.CompositionOffset {
	a, _ := child(SampleTableBox(trak), mp4io.CTTS).(*mp4io.CompositionOffset)
	return a
}

func SampleToChunkBox(trak mp4io.Box) *mp4io.SampleToChunk {
	a, _ := child(SampleTableBox(trak), mp4io.STSC).(*mp4io.SampleToChunk)
	return a
}

func SampleSizeBox(trak mp4io.Box) *mp4io.SampleSize {
	a, _ := child(SampleTableBox(trak), mp4io.STSZ).(*mp4io.SampleSize)
	return a
}

// ChunkOffsetBox returns stco, or co64 when the file uses 64-bit offsets.
func ChunkOffsetBox(trak mp4io.Box) *mp4io.ChunkOffset {
	stbl := SampleTableBox(trak)
	if a, ok := child(stbl, mp4io.STCO).(*mp4io.ChunkOffset); ok {
		return a
	}
	a, _ := child(stbl, mp4io.CO64).(*mp4io.ChunkOffset)
	return a
}

// SyncSampleBox is nil for tracks where every sample is a key frame.
func SyncSampleBox(trak mp4io.Box) *mp4io.SyncSample {
	a, _ := child(SampleTableBox(trak), mp4io.STSS).(*mp4io.SyncSample)
	return a
}

// TrackID is required: a trak without tkhd is malformed.
func TrackID(trak mp4io.Box) (uint32, error) {
	tkhd := TrackHeaderBox(trak)
	if tkhd == nil {
		return 0, missing(mp4io.TRAK, mp4io.TKHD)
	}
	return tkhd.TrackID, nil
}

// Timescale is the mdhd timescale. It is required.
func Timescale(trak mp4io.Box) (uint32, error) {
	mdhd := MediaHeaderBox(trak)
	if mdhd == nil {
		return 0, missing(mp4io.MDIA, mp4io.MDHD)
	}
	return mdhd.TimeScale, nil
}

// SampleEntries lists the sample entries of the track's stsd.
func SampleEntries(trak mp4io.Box) []mp4io.Box {
	stsd := SampleDescBox(trak)
	if stsd == nil {
		return nil
	}
	return stsd.Entries
}

var videoConfigTags = []mp4io.Tag{mp4io.AVCC, mp4io.HVCC, mp4io.AV1C, mp4io.VPCC}

// VideoDescriptors returns the first codec configuration record embedded
// in a visual sample entry, or nil when no entry embeds one.
func VideoDescriptors(trak mp4io.Box) []byte {
	for _, entry := range SampleEntries(trak) {
		if _, ok := entry.(*mp4io.VisualSampleEntry); !ok {
			continue
		}
		for _, tag := range videoConfigTags {
			if conf, ok := child(entry, tag).(*mp4io.CodecConfig); ok && len(conf.Data) > 0 {
				return conf.Data
			}
		}
	}
	return nil
}

// AudioDescriptors returns the first decoder specific payload of an audio
// sample entry: the AudioSpecificConfig of an esds, or a dOps, dac3, dec3
// or dfLa record. It is nil when none is embedded.
func AudioDescriptors(trak mp4io.Box) []byte {
	for _, entry := range SampleEntries(trak) {
		if _, ok := entry.(*mp4io.AudioSampleEntry); !ok {
			continue
		}
		for _, c := range entry.Children() {
			switch a := c.(type) {
			case *mp4io.ElemStreamDesc:
				if sd := a.StreamDescriptor; sd != nil && sd.DecoderConfig != nil && len(sd.DecoderConfig.DecoderSpecific) > 0 {
					return sd.DecoderConfig.DecoderSpecific
				}
			case *mp4io.CodecConfig:
				if len(a.Data) > 0 {
					return a.Data
				}
			}
		}
	}
	return nil
}

// MediaDataSkip reports an mdat whose payload was passed over before any
// sample table could index it. FileOffset is where that payload starts and
// is only set when Skipped is.
type MediaDataSkip struct {
	Skipped    bool
	FileOffset int64
}

// SkippedMediaData looks at the first mdat box. A file without one, or
// whose mdat follows the moov, has nothing left to revisit.
func SkippedMediaData(roots []mp4io.Box) MediaDataSkip {
	mdat, ok := rootBox(roots, mp4io.MDAT).(*mp4io.MediaData)
	if !ok || mdat.SamplesIndexed {
		return MediaDataSkip{}
	}
	return MediaDataSkip{Skipped: true, FileOffset: mdat.PayloadOffset}
}
