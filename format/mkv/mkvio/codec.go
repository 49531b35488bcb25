package mkvio

import (
	"fmt"
	"time"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/utils/bits/pio"
)

// EBML header body lengths produced by the muxers this package accepts.
const (
	HeaderBodyLength       = 31
	HeaderBodyLengthLegacy = 35
)

// ReadElementHeader decodes an element id and its size vint. An all-ones
// size is reported as -1. The element at offset 0 must be an EBML header
// with one of the known body lengths, and every later top-level element a
// Segment, Void or CRC-32.
func ReadElementHeader(c *mediaio.Cursor, depth int) (h mediaio.Header, err error) {
	h.Offset = c.Offset()
	id, err := c.ReadEBMLID()
	if err != nil {
		return
	}
	size, width, err := c.ReadEBMLVint()
	if err != nil {
		return
	}
	h.ID = id
	h.HeaderSize = int(c.Offset() - h.Offset)
	h.Size = int64(size)
	if mediaio.VintUnknown(size, width) {
		h.Size = -1
	}
	if h.Offset == 0 && depth == 0 {
		if id != ElementEBML.ID {
			err = parseErr("EBML", 0, ErrNotEBML)
			return
		}
		if h.Size != HeaderBodyLength && h.Size != HeaderBodyLengthLegacy {
			err = parseErr("EBML", 0, fmt.Errorf("%w: %d", ErrBadHeaderLength, h.Size))
			return
		}
	} else if depth == 0 && id != ElementSegment.ID && id != ElementVoid.ID && id != ElementCRC32.ID {
		err = parseErr(elementCodec{}.Tag(id), h.Offset, ErrNotSegment)
		return
	}
	return
}

// binaries decoded into Element.Data; other binary elements are spans.
var binaries = map[uint32]bool{
	ElementCodecPrivate.ID:        true,
	ElementSeekID.ID:              true,
	ElementSegmentUID.ID:          true,
	ElementContentCompSettings.ID: true,
}

// levels of the elements that may close an unknown-size parent.
var levels = map[uint32]int{
	ElementEBML.ID:        0,
	ElementSegment.ID:     0,
	ElementSeekHead.ID:    1,
	ElementInfo.ID:        1,
	ElementTracks.ID:      1,
	ElementCluster.ID:     1,
	ElementCues.ID:        1,
	ElementAttachments.ID: 1,
	ElementChapters.ID:    1,
	ElementTags.ID:        1,
}

type elementCodec struct{}

// NewTree returns a resumable Matroska/WebM parse. Its roots are the EBML
// header followed by the Segment.
func NewTree() *mediaio.Tree[*Element] {
	return mediaio.NewTree[*Element](elementCodec{})
}

func (elementCodec) Prologue(c *mediaio.Cursor) error {
	return nil
}

func (elementCodec) ReadHeader(c *mediaio.Cursor, depth int) (mediaio.Header, error) {
	return ReadElementHeader(c, depth)
}

func (elementCodec) Kind(h mediaio.Header, parent mediaio.Header) mediaio.Kind {
	if h.ID == ElementSimpleBlock.ID || h.ID == ElementBlock.ID {
		return mediaio.KindDeferred
	}
	switch GetElementRegister(h.ID).Type {
	case ElementTypeMaster:
		return mediaio.KindContainer
	case ElementTypeUint, ElementTypeInt, ElementTypeFloat,
		ElementTypeString, ElementTypeUnicode, ElementTypeDate:
		return mediaio.KindLeaf
	case ElementTypeBinary:
		if binaries[h.ID] {
			return mediaio.KindLeaf
		}
	}
	return mediaio.KindSkip
}

func (elementCodec) Prefix(c *mediaio.Cursor, h mediaio.Header) (interface{}, error) {
	return nil, nil
}

func newElement(h mediaio.Header) *Element {
	return &Element{
		ElementRegister: GetElementRegister(h.ID),
		Offset:          h.Offset,
		HeaderSize:      h.HeaderSize,
		Size:            h.Size,
	}
}

// 2001-01-01T00:00:00 UTC
var dateEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

func (elementCodec) Leaf(h mediaio.Header, b []byte) (*Element, error) {
	el := newElement(h)
	switch el.Type {
	case ElementTypeUint:
		if len(b) > 8 {
			return nil, parseErr(el.Name, h.Offset, ErrBadElementSize)
		}
		el.Uint = pio.UintBE(b)
	case ElementTypeInt:
		if len(b) > 8 {
			return nil, parseErr(el.Name, h.Offset, ErrBadElementSize)
		}
		el.Int = pio.IntBE(b)
	case ElementTypeFloat:
		switch len(b) {
		case 0:
		case 4:
			el.Float = float64(pio.F32BE(b))
		case 8:
			el.Float = pio.F64BE(b)
		default:
			return nil, parseErr(el.Name, h.Offset, ErrBadElementSize)
		}
	case ElementTypeString, ElementTypeUnicode:
		n := len(b)
		for n > 0 && b[n-1] == 0 {
			n--
		}
		el.String = string(b[:n])
	case ElementTypeDate:
		switch len(b) {
		case 0:
			el.Date = dateEpoch
		case 8:
			el.Date = dateEpoch.Add(time.Duration(pio.I64BE(b)))
		default:
			return nil, parseErr(el.Name, h.Offset, ErrBadElementSize)
		}
	case ElementTypeBinary:
		el.Data = append([]byte(nil), b...)
		if h.ID == ElementSeekID.ID && len(b) <= 4 {
			el.Uint = pio.UintBE(b)
		}
	}
	return el, nil
}

func (elementCodec) Deferred(c *mediaio.Cursor, h mediaio.Header) (*Element, error) {
	el := newElement(h)
	if h.Size < 0 {
		return nil, parseErr(el.Name, h.Offset, ErrUnknownSizeBlock)
	}
	block, err := readBlock(c, h)
	if err != nil {
		return nil, err
	}
	el.Block = block
	return el, nil
}

func (elementCodec) Skipped(h mediaio.Header) *Element {
	return newElement(h)
}

func (elementCodec) Container(h mediaio.Header, prefix interface{}, children []*Element) (*Element, error) {
	el := newElement(h)
	el.Children = children
	return el, nil
}

// Closes ends an unknown-size Segment or Cluster when an element of the
// same or an upper level starts.
func (elementCodec) Closes(parent mediaio.Header, id uint32) bool {
	pl, ok := levels[parent.ID]
	if !ok {
		return false
	}
	l, ok := levels[id]
	return ok && l <= pl
}

func (elementCodec) Tag(id uint32) string {
	r := GetElementRegister(id)
	if r.Name == ElementUnknown.Name {
		return fmt.Sprintf("0x%x", id)
	}
	return r.Name
}
