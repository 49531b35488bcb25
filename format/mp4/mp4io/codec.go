package mp4io

import (
	"math"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/utils/bits/pio"
)

// ReadBoxHeader decodes a box header: a 32-bit size and a fourcc, followed
// by a 64-bit size when the 32-bit size is 1. A size of 0 means the box runs
// to the end of the source, which is only legal at depth 0. Nothing is
// consumed unless the whole header is buffered.
func ReadBoxHeader(c *mediaio.Cursor, depth int) (h mediaio.Header, err error) {
	h.Offset = c.Offset()
	b, err := c.PeekBytes(8)
	if err != nil {
		return
	}
	size := pio.U32BE(b)
	tag := Tag(pio.U32BE(b[4:]))
	h.ID = uint32(tag)
	h.HeaderSize = 8

	switch size {
	case 1:
		if b, err = c.PeekBytes(16); err != nil {
			return
		}
		large := pio.U64BE(b[8:])
		if large < 16 {
			err = parseErr(tag.String(), h.Offset, ErrSizeTooSmall)
			return
		}
		if large > math.MaxInt64 {
			err = parseErr(tag.String(), h.Offset, ErrSizeOverflow)
			return
		}
		h.HeaderSize = 16
		h.Size = int64(large) - 16
	case 0:
		if depth > 0 {
			err = parseErr(tag.String(), h.Offset, ErrSizeToEOF)
			return
		}
		h.Size = -1
	default:
		if size < 8 {
			err = parseErr(tag.String(), h.Offset, ErrSizeTooSmall)
			return
		}
		h.Size = int64(size) - 8
	}
	_, err = c.ReadBytes(h.HeaderSize)
	return
}

type leafDecoder func(h mediaio.Header, b []byte) (Box, error)

var leafDecoders = map[Tag]leafDecoder{
	FTYP: decodeFileType,
	STYP: decodeFileType,
	MVHD: decodeMovieHeader,
	TKHD: decodeTrackHeader,
	MDHD: decodeMediaHeader,
	HDLR: decodeHandlerRefer,
	ELST: decodeEditList,
	STTS: decodeTimeToSample,
	CTTS: decodeCompositionOffset,
	STSC: decodeSampleToChunk,
	STSZ: decodeSampleSize,
	STCO: decodeChunkOffset,
	CO64: decodeChunkOffset,
	STSS: decodeSyncSample,
	ESDS: decodeElemStreamDesc,
	PASP: decodePixelAspect,
	TREX: decodeTrackExtend,
	MFHD: decodeMovieFragHeader,
	TFHD: decodeTrackFragHeader,
	TFDT: decodeTrackFragDecodeTime,
	TRUN: decodeTrackFragRun,
}

func init() {
	for tag := range configTags {
		leafDecoders[tag] = decodeCodecConfig
	}
}

// boxCodec is the ISOBMFF dispatch table for a mediaio.Tree.
type boxCodec struct {
	movieSeen bool
}

// NewTree returns a resumable ISOBMFF parse.
func NewTree() *mediaio.Tree[Box] {
	return mediaio.NewTree[Box](&boxCodec{})
}

func (bc *boxCodec) Prologue(c *mediaio.Cursor) error {
	return nil
}

func (bc *boxCodec) ReadHeader(c *mediaio.Cursor, depth int) (mediaio.Header, error) {
	return ReadBoxHeader(c, depth)
}

func (bc *boxCodec) Kind(h mediaio.Header, parent mediaio.Header) mediaio.Kind {
	tag := Tag(h.ID)
	switch {
	case tag == MDAT:
		return mediaio.KindDeferred
	case Tag(parent.ID) == STSD:
		// sample entries are only recognized inside stsd
		if IsVisualSampleEntry(tag) || IsAudioSampleEntry(tag) {
			return mediaio.KindContainer
		}
		return mediaio.KindSkip
	case IsContainer(tag):
		return mediaio.KindContainer
	case leafDecoders[tag] != nil:
		return mediaio.KindLeaf
	}
	return mediaio.KindSkip
}

func (bc *boxCodec) Prefix(c *mediaio.Cursor, h mediaio.Header) (interface{}, error) {
	tag := Tag(h.ID)
	switch {
	case tag == STSD:
		return readSampleDescPrefix(c, h)
	case IsVisualSampleEntry(tag):
		return readVisualPrefix(c, h)
	case IsAudioSampleEntry(tag):
		return readAudioPrefix(c, h)
	}
	return nil, nil
}

func (bc *boxCodec) Leaf(h mediaio.Header, payload []byte) (Box, error) {
	return leafDecoders[Tag(h.ID)](h, payload)
}

// Deferred records where the media data payload starts and whether a movie
// box, whose sample tables index that payload, was already seen.
func (bc *boxCodec) Deferred(c *mediaio.Cursor, h mediaio.Header) (Box, error) {
	a := &MediaData{
		PayloadOffset:  h.PayloadOffset(),
		SamplesIndexed: bc.movieSeen,
	}
	a.setPos(h)
	return a, nil
}

func (bc *boxCodec) Skipped(h mediaio.Header) Box {
	a := &Dummy{Tag_: Tag(h.ID)}
	a.setPos(h)
	return a
}

func (bc *boxCodec) Container(h mediaio.Header, prefix interface{}, children []Box) (Box, error) {
	switch a := prefix.(type) {
	case *SampleDesc:
		a.Entries = children
		a.setPos(h)
		return a, nil
	case *VisualSampleEntry:
		a.Boxes = children
		a.setPos(h)
		return a, nil
	case *AudioSampleEntry:
		a.Boxes = children
		a.setPos(h)
		return a, nil
	}
	tag := Tag(h.ID)
	if tag == MOOV {
		bc.movieSeen = true
	}
	a := &Container{Tag_: tag, Boxes: children}
	a.setPos(h)
	return a, nil
}

func (bc *boxCodec) Closes(parent mediaio.Header, id uint32) bool {
	return false
}

func (bc *boxCodec) Tag(id uint32) string {
	return Tag(id).String()
}
