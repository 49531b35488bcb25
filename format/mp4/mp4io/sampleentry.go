package mp4io

import (
	"fmt"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/format/mp4/esio"
	"github.com/deepch/mediaparser/utils/bits/pio"
)

// SampleDesc is stsd. Its children are the sample entries.
type SampleDesc struct {
	FullBox
	EntryCount uint32
	Entries    []Box
	BoxPos
}

func (a SampleDesc) Tag() Tag {
	return STSD
}

func (a SampleDesc) Children() []Box {
	return a.Entries
}

func (a SampleDesc) String() string {
	return fmt.Sprintf("entries=%d", a.EntryCount)
}

const lenSampleDescPrefix = 8

func readSampleDescPrefix(c *mediaio.Cursor, h mediaio.Header) (interface{}, error) {
	if h.Size >= 0 && h.Size < lenSampleDescPrefix {
		return nil, parseErr("stsd", h.Offset, errShort)
	}
	b, err := c.ReadBytes(lenSampleDescPrefix)
	if err != nil {
		return nil, err
	}
	a := &SampleDesc{}
	a.Version = pio.U8(b)
	a.Flags = pio.U24BE(b[1:])
	a.EntryCount = pio.U32BE(b[4:])
	a.PrefixSize = lenSampleDescPrefix
	return a, nil
}

// VisualSampleEntry is a video sample entry such as avc1 or vp09. Boxes
// holds the codec configuration and any other trailing boxes.
type VisualSampleEntry struct {
	Tag_                 Tag
	DataRefIdx           uint16
	Width                uint16
	Height               uint16
	HorizontalResolution float64
	VerticalResolution   float64
	FrameCount           uint16
	CompressorName       string
	Depth                uint16
	Boxes                []Box
	BoxPos
}

func (a VisualSampleEntry) Tag() Tag {
	return a.Tag_
}

func (a VisualSampleEntry) Children() []Box {
	return a.Boxes
}

func (a VisualSampleEntry) String() string {
	return fmt.Sprintf("%dx%d", a.Width, a.Height)
}

const lenVisualPrefix = 78

func readVisualPrefix(c *mediaio.Cursor, h mediaio.Header) (interface{}, error) {
	tag := Tag(h.ID)
	if h.Size >= 0 && h.Size < lenVisualPrefix {
		return nil, parseErr(tag.String(), h.Offset, errShort)
	}
	b, err := c.ReadBytes(lenVisualPrefix)
	if err != nil {
		return nil, err
	}
	a := &VisualSampleEntry{Tag_: tag}
	a.DataRefIdx = pio.U16BE(b[6:])
	a.Width = pio.U16BE(b[24:])
	a.Height = pio.U16BE(b[26:])
	a.HorizontalResolution = GetFixed32(b[28:])
	a.VerticalResolution = GetFixed32(b[32:])
	a.FrameCount = pio.U16BE(b[40:])
	if l := int(b[42]); l > 0 && l < 32 {
		a.CompressorName = string(b[43 : 43+l])
	}
	a.Depth = pio.U16BE(b[74:])
	a.PrefixSize = lenVisualPrefix
	return a, nil
}

// AudioSampleEntry is a sound sample entry such as mp4a or Opus. Version 1
// and 2 entries carry the QuickTime sound description extensions.
type AudioSampleEntry struct {
	Tag_         Tag
	DataRefIdx   uint16
	Version      uint16
	ChannelCount uint32
	SampleSize   uint16
	SampleRate   float64
	Boxes        []Box
	BoxPos
}

func (a AudioSampleEntry) Tag() Tag {
	return a.Tag_
}

func (a AudioSampleEntry) Children() []Box {
	return a.Boxes
}

func (a AudioSampleEntry) String() string {
	return fmt.Sprintf("channels=%d rate=%g", a.ChannelCount, a.SampleRate)
}

const lenAudioPrefix = 28

func readAudioPrefix(c *mediaio.Cursor, h mediaio.Header) (interface{}, error) {
	tag := Tag(h.ID)
	if h.Size >= 0 && h.Size < lenAudioPrefix {
		return nil, parseErr(tag.String(), h.Offset, errShort)
	}
	b, err := c.PeekBytes(lenAudioPrefix)
	if err != nil {
		return nil, err
	}
	a := &AudioSampleEntry{Tag_: tag}
	a.Version = pio.U16BE(b[8:])
	n := lenAudioPrefix
	switch a.Version {
	case 1:
		n += 16
	case 2:
		n += 36
	}
	if h.Size >= 0 && h.Size < int64(n) {
		return nil, parseErr(tag.String(), h.Offset, errShort)
	}
	if b, err = c.ReadBytes(n); err != nil {
		return nil, err
	}
	a.DataRefIdx = pio.U16BE(b[6:])
	a.ChannelCount = uint32(pio.U16BE(b[16:]))
	a.SampleSize = pio.U16BE(b[18:])
	a.SampleRate = GetFixed32(b[24:])
	if a.Version == 2 {
		a.SampleRate = pio.F64BE(b[32:])
		a.ChannelCount = pio.U32BE(b[40:])
	}
	a.PrefixSize = n
	return a, nil
}

// CodecConfig is a codec configuration record (avcC, hvcC, dOps...) kept
// as raw bytes.
type CodecConfig struct {
	Tag_ Tag
	Data []byte
	BoxPos
	leaf
}

func (a CodecConfig) Tag() Tag {
	return a.Tag_
}

func (a CodecConfig) String() string {
	return fmt.Sprintf("len=%d", len(a.Data))
}

func decodeCodecConfig(h mediaio.Header, b []byte) (Box, error) {
	a := &CodecConfig{Tag_: Tag(h.ID), Data: append([]byte(nil), b...)}
	a.setPos(h)
	return a, nil
}

type ElemStreamDesc struct {
	FullBox
	StreamDescriptor *esio.StreamDescriptor
	BoxPos
	leaf
}

func (a ElemStreamDesc) Tag() Tag {
	return ESDS
}

func (a ElemStreamDesc) String() string {
	if a.StreamDescriptor == nil || a.StreamDescriptor.DecoderConfig == nil {
		return ""
	}
	return fmt.Sprintf("objecttype=0x%02x", uint8(a.StreamDescriptor.DecoderConfig.ObjectType))
}

func decodeElemStreamDesc(h mediaio.Header, b []byte) (Box, error) {
	a := &ElemStreamDesc{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if a.StreamDescriptor, _, err = esio.ParseStreamDescriptor(b[n:]); err != nil {
		return nil, parseErr("esds", h.Offset, err)
	}
	return a, nil
}

type PixelAspect struct {
	HorizontalSpacing uint32
	VerticalSpacing   uint32
	BoxPos
	leaf
}

func (a PixelAspect) Tag() Tag {
	return PASP
}

func (a PixelAspect) String() string {
	return fmt.Sprintf("%d:%d", a.HorizontalSpacing, a.VerticalSpacing)
}

func decodePixelAspect(h mediaio.Header, b []byte) (Box, error) {
	if len(b) < 8 {
		return nil, parseErr("pasp", h.Offset, errShort)
	}
	a := &PixelAspect{
		HorizontalSpacing: pio.U32BE(b),
		VerticalSpacing:   pio.U32BE(b[4:]),
	}
	a.setPos(h)
	return a, nil
}
