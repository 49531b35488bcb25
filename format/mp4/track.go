package mp4

import (
	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/codec"
	"github.com/deepch/mediaparser/codec/opusparser"
	"github.com/deepch/mediaparser/format/mp4/mp4io"
)

var (
	handlerVideo = mp4io.StringToTag("vide")
	handlerAudio = mp4io.StringToTag("soun")
)

// MediaKind classifies trak by its handler type.
func MediaKind(trak mp4io.Box) av.MediaKind {
	hdlr := HandlerBox(trak)
	if hdlr == nil {
		return av.Other
	}
	switch hdlr.SubType {
	case handlerVideo:
		return av.Video
	case handlerAudio:
		return av.Audio
	}
	return av.Other
}

// Tracks summarizes every trak of the movie box. Samples are expanded only
// when withSamples is set; fragmented files contribute their moof samples.
func Tracks(roots []mp4io.Box, withSamples bool) ([]*av.Track, error) {
	moov := MovieBox(roots)
	if moov == nil {
		return nil, missing(mp4io.Tag(0), mp4io.MOOV)
	}
	var tracks []*av.Track
	for _, trak := range TrackBoxes(moov) {
		t, err := track(trak)
		if err != nil {
			return nil, err
		}
		if withSamples {
			if t.Samples, err = Samples(trak); err != nil {
				return nil, err
			}
			t.Samples = append(t.Samples, FragmentSamples(roots, uint32(t.ID))...)
			if t.Duration == 0 && len(t.Samples) > 0 {
				last := t.Samples[len(t.Samples)-1]
				t.Duration = last.DTS + last.Duration
			}
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

func track(trak mp4io.Box) (*av.Track, error) {
	id, err := TrackID(trak)
	if err != nil {
		return nil, err
	}
	scale, err := Timescale(trak)
	if err != nil {
		return nil, err
	}
	t := &av.Track{
		ID:        uint64(id),
		Kind:      MediaKind(trak),
		Timescale: scale,
	}
	if mdhd := MediaHeaderBox(trak); mdhd != nil {
		t.Duration = int64(mdhd.Duration)
		t.Language = mdhd.Language
	}

	entries := SampleEntries(trak)
	if len(entries) == 0 {
		return t, nil
	}
	t.CodecTag = entries[0].Tag().String()
	t.Codec = codec.FromFourCC(t.CodecTag)

	switch entry := entries[0].(type) {
	case *mp4io.VisualSampleEntry:
		t.Width, t.Height = int(entry.Width), int(entry.Height)
		if tkhd := TrackHeaderBox(trak); tkhd != nil && (t.Width == 0 || t.Height == 0) {
			t.Width, t.Height = int(tkhd.TrackWidth), int(tkhd.TrackHeight)
		}
		t.CodecPrivate = VideoDescriptors(trak)
		if esds, ok := child(entry, mp4io.ESDS).(*mp4io.ElemStreamDesc); ok {
			refineObjectType(t, esds)
		}

	case *mp4io.AudioSampleEntry:
		t.SampleRate = int(entry.SampleRate)
		t.Channels = int(entry.ChannelCount)
		t.BitDepth = int(entry.SampleSize)
		t.CodecPrivate = AudioDescriptors(trak)
		if esds, ok := child(entry, mp4io.ESDS).(*mp4io.ElemStreamDesc); ok {
			refineObjectType(t, esds)
		}
		if conf, ok := child(entry, mp4io.DOPS).(*mp4io.CodecConfig); ok {
			if head, err := opusparser.ParseDOps(conf.Data); err == nil && head.Channels > 0 {
				t.Channels = head.Channels
			}
		}
	}
	return t, nil
}

// refineObjectType replaces a generic mp4a/mp4v codec guess with the one
// named by the decoder config.
func refineObjectType(t *av.Track, esds *mp4io.ElemStreamDesc) {
	sd := esds.StreamDescriptor
	if sd == nil || sd.DecoderConfig == nil {
		return
	}
	if c := codec.FromObjectType(uint8(sd.DecoderConfig.ObjectType)); c != codec.Unknown {
		t.Codec = c
	}
}
