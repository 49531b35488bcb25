package mediaio

import (
	"io"
	"math/bits"

	"github.com/deepch/mediaparser/utils/bits/pio"
)

// Cursor is a resumable reader over a growing byte buffer.
//
// Bytes are appended with Write in arrival order. Every read either succeeds
// and advances the read position, or fails with ErrIncomplete and leaves the
// position untouched so the same read can be retried after more bytes arrive.
// Slices returned by PeekBytes and ReadBytes alias the internal buffer and are
// only valid until the next Write or Commit.
type Cursor struct {
	buf    []byte
	pos    int
	base   int64 // absolute offset of buf[0]
	skip   int64 // bytes still to be dropped on arrival
	toEnd  bool  // drop everything until Close
	closed bool
}

// Mark is a checkpoint of the read position.
type Mark int

func NewCursor() *Cursor {
	return &Cursor{}
}

// Write appends p to the buffer. Bytes covered by a pending Discard are
// dropped without being buffered.
func (c *Cursor) Write(p []byte) (n int, err error) {
	if c.closed {
		return 0, ErrClosed
	}
	n = len(p)
	if c.toEnd {
		c.base += int64(len(p))
		return
	}
	if c.skip > 0 {
		k := c.skip
		if int64(len(p)) < k {
			k = int64(len(p))
		}
		c.skip -= k
		c.base += k
		p = p[k:]
	}
	c.buf = append(c.buf, p...)
	return
}

// Close marks the source as finished. Reads past the end then fail with
// io.ErrUnexpectedEOF instead of ErrIncomplete.
func (c *Cursor) Close() error {
	c.closed = true
	return nil
}

func (c *Cursor) Closed() bool {
	return c.closed
}

// Offset is the absolute source offset of the read position, counting
// bytes that were discarded but have not arrived yet.
func (c *Cursor) Offset() int64 {
	return c.base + int64(c.pos) + c.skip
}

// Buffered is the number of bytes available to read without more input.
func (c *Cursor) Buffered() int {
	if c.skip > 0 || c.toEnd {
		return 0
	}
	return len(c.buf) - c.pos
}

// AtEOF reports whether the source is finished and every byte was consumed.
func (c *Cursor) AtEOF() bool {
	if !c.closed {
		return false
	}
	if c.toEnd {
		return true
	}
	return c.skip == 0 && c.pos == len(c.buf)
}

func (c *Cursor) Mark() Mark {
	return Mark(c.pos)
}

// Reset rewinds to m. Marks taken before a Discard or Commit are invalid.
func (c *Cursor) Reset(m Mark) {
	c.pos = int(m)
}

// Commit releases the bytes before the read position.
func (c *Cursor) Commit() {
	if c.pos == 0 {
		return
	}
	if c.pos < 4096 && c.pos*2 < len(c.buf) {
		return
	}
	c.base += int64(c.pos)
	c.buf = append(c.buf[:0], c.buf[c.pos:]...)
	c.pos = 0
}

func (c *Cursor) short() error {
	if c.closed {
		return NewParseError("read", c.Offset(), io.ErrUnexpectedEOF)
	}
	return ErrIncomplete
}

func (c *Cursor) PeekBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, NewParseError("read", c.Offset(), ErrNegativeLength)
	}
	if c.Buffered() < n {
		return nil, c.short()
	}
	return c.buf[c.pos : c.pos+n], nil
}

func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.PeekBytes(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Discard advances the read position by n bytes. Bytes that are not
// buffered yet are dropped as they arrive.
func (c *Cursor) Discard(n int64) error {
	if n < 0 {
		return NewParseError("discard", c.Offset(), ErrNegativeLength)
	}
	if c.skip > 0 || c.toEnd {
		c.skip += n
		return nil
	}
	avail := int64(len(c.buf) - c.pos)
	if n <= avail {
		c.pos += int(n)
		return nil
	}
	c.base += int64(len(c.buf))
	c.buf = c.buf[:0]
	c.pos = 0
	c.skip = n - avail
	return nil
}

// DiscardToEnd drops everything up to the end of the source.
func (c *Cursor) DiscardToEnd() {
	c.base += int64(len(c.buf)) + c.skip
	c.buf = c.buf[:0]
	c.pos = 0
	c.skip = 0
	c.toEnd = true
}

func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadU16BE() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return pio.U16BE(b), nil
}

func (c *Cursor) ReadU24BE() (uint32, error) {
	b, err := c.ReadBytes(3)
	if err != nil {
		return 0, err
	}
	return pio.U24BE(b), nil
}

func (c *Cursor) ReadU32BE() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return pio.U32BE(b), nil
}

func (c *Cursor) ReadU64BE() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return pio.U64BE(b), nil
}

// ReadFourCC reads an ISOBMFF box type.
func (c *Cursor) ReadFourCC() (uint32, error) {
	return c.ReadU32BE()
}

// ReadEBMLVint reads an EBML variable-length integer. The number of leading
// zero bits of the first byte gives the encoded width minus one; the marker
// bit is stripped from the value.
func (c *Cursor) ReadEBMLVint() (v uint64, width int, err error) {
	b, err := c.PeekBytes(1)
	if err != nil {
		return
	}
	if b[0] == 0 {
		err = NewParseError("vint", c.Offset(), ErrInvalidVint)
		return
	}
	width = bits.LeadingZeros8(b[0]) + 1
	if b, err = c.PeekBytes(width); err != nil {
		return 0, 0, err
	}
	v = uint64(b[0] & (0xff >> uint(width)))
	for _, x := range b[1:] {
		v = v<<8 | uint64(x)
	}
	c.pos += width
	return
}

// ReadEBMLID reads an EBML element ID. The marker bit is kept, matching the
// way element IDs are written in the Matroska tables.
func (c *Cursor) ReadEBMLID() (id uint32, err error) {
	b, err := c.PeekBytes(1)
	if err != nil {
		return
	}
	width := bits.LeadingZeros8(b[0]) + 1
	if width > 4 {
		err = NewParseError("elementid", c.Offset(), ErrInvalidVint)
		return
	}
	if b, err = c.PeekBytes(width); err != nil {
		return 0, err
	}
	id = uint32(pio.UintBE(b))
	c.pos += width
	return
}
