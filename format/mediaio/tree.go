package mediaio

import (
	"context"
	"errors"
	"fmt"
)

// Status is the outcome of a Tree.Parse call.
type Status int

const (
	// StatusIncomplete means the buffered bytes ran out mid-element. No
	// partial node is exposed; append bytes and call Parse again.
	StatusIncomplete Status = iota
	// StatusDone means the whole source was parsed and Roots is final.
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusDone:
		return "done"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Kind tells the tree how to consume an element once its header is known.
type Kind int

const (
	// KindSkip elements are recorded as an opaque span and discarded.
	KindSkip Kind = iota
	// KindLeaf elements are buffered whole and decoded.
	KindLeaf
	// KindContainer elements read a fixed prefix and then recurse.
	KindContainer
	// KindDeferred elements read a small prefix; the rest is discarded.
	KindDeferred
)

// Header is a decoded element header.
type Header struct {
	ID         uint32
	Offset     int64 // absolute offset of the first header byte
	HeaderSize int
	Size       int64 // payload size, -1 when it runs to the end of the source
}

func (h Header) PayloadOffset() int64 {
	return h.Offset + int64(h.HeaderSize)
}

// End is the absolute offset just past the element, or -1 if unbounded.
func (h Header) End() int64 {
	if h.Size < 0 {
		return -1
	}
	return h.PayloadOffset() + h.Size
}

// Codec is the format-specific half of a Tree: header decoding and the
// element dispatch table. N is the node type produced by the format.
type Codec[N any] interface {
	// Prologue consumes anything that precedes the first element.
	Prologue(c *Cursor) error
	// ReadHeader decodes the next element header at the given depth
	// (0 for top level).
	ReadHeader(c *Cursor, depth int) (Header, error)
	// Kind classifies h. parent is the enclosing element, with a zero ID
	// at the top level.
	Kind(h Header, parent Header) Kind
	// Prefix reads the fixed fields that precede a container's children.
	Prefix(c *Cursor, h Header) (interface{}, error)
	Leaf(h Header, payload []byte) (N, error)
	Deferred(c *Cursor, h Header) (N, error)
	Skipped(h Header) N
	Container(h Header, prefix interface{}, children []N) (N, error)
	// Closes reports whether an element with the given id, met inside the
	// unknown-size element parent, belongs to an ancestor level.
	Closes(parent Header, id uint32) bool
}

type frame[N any] struct {
	header   Header
	unknown  bool // declared without a size; End may be the parent's
	prefix   interface{}
	children []N
}

// DefaultMaxLeafSize bounds the payload of a fully buffered leaf.
const DefaultMaxLeafSize = 64 << 20

const maxDepth = 32

// Tree is a resumable parse of one source. It keeps, for every open
// container, the children decided so far, so a Parse call after more bytes
// arrive continues at the exact element where the previous call stopped.
type Tree[N any] struct {
	Cursor      *Cursor
	MaxLeafSize int64

	codec   Codec[N]
	stack   []*frame[N]
	started bool
	done    bool
	err     error
}

func NewTree[N any](codec Codec[N]) *Tree[N] {
	return &Tree[N]{
		Cursor:      NewCursor(),
		MaxLeafSize: DefaultMaxLeafSize,
		codec:       codec,
		stack:       []*frame[N]{{header: Header{Size: -1}}},
	}
}

// Write appends source bytes.
func (t *Tree[N]) Write(p []byte) (int, error) {
	return t.Cursor.Write(p)
}

// Close marks the end of the source.
func (t *Tree[N]) Close() error {
	return t.Cursor.Close()
}

func (t *Tree[N]) Done() bool {
	return t.done
}

// Roots returns the top-level nodes once parsing is done, nil before.
func (t *Tree[N]) Roots() []N {
	if !t.done {
		return nil
	}
	return t.stack[0].children
}

// Depth is the number of currently open containers.
func (t *Tree[N]) Depth() int {
	return len(t.stack) - 1
}

func (t *Tree[N]) fail(err error) (Status, error) {
	t.err = err
	return StatusIncomplete, err
}

// Parse consumes as much of the buffered input as possible. It returns
// StatusIncomplete with a nil error when more bytes are needed, StatusDone
// once the source is closed and fully consumed, or a malformed-structure
// error, after which the tree is unusable. ctx is checked between elements.
func (t *Tree[N]) Parse(ctx context.Context) (Status, error) {
	if t.err != nil {
		return StatusIncomplete, t.err
	}
	if t.done {
		return StatusDone, nil
	}
	c := t.Cursor
	if !t.started {
		mark := c.Mark()
		if err := t.codec.Prologue(c); err != nil {
			if errors.Is(err, ErrIncomplete) {
				c.Reset(mark)
				return StatusIncomplete, nil
			}
			return t.fail(err)
		}
		t.started = true
		c.Commit()
	}

	for {
		top := t.stack[len(t.stack)-1]
		depth := len(t.stack) - 1

		if depth > 0 && top.header.Size >= 0 {
			end := top.header.End()
			if off := c.Offset(); off == end {
				if err := t.pop(); err != nil {
					return t.fail(err)
				}
				continue
			} else if off > end {
				return t.fail(NewParseError(t.tag(top.header), top.header.Offset, ErrOverrun))
			}
		}

		if err := ctx.Err(); err != nil {
			return t.fail(fmt.Errorf("%w: %w", ErrCancelled, err))
		}

		if c.AtEOF() {
			if depth == 0 {
				t.done = true
				return StatusDone, nil
			}
			if top.header.Size < 0 {
				if err := t.pop(); err != nil {
					return t.fail(err)
				}
				continue
			}
			return t.fail(NewParseError(t.tag(top.header), top.header.Offset, ErrTruncated))
		}
		if c.Buffered() == 0 {
			if c.Closed() {
				return t.fail(NewParseError(t.tag(top.header), c.Offset(), ErrTruncated))
			}
			return StatusIncomplete, nil
		}

		mark := c.Mark()
		h, err := t.codec.ReadHeader(c, depth)
		if err != nil {
			if errors.Is(err, ErrIncomplete) {
				c.Reset(mark)
				return StatusIncomplete, nil
			}
			return t.fail(err)
		}

		if depth > 0 && top.unknown && t.codec.Closes(top.header, h.ID) {
			c.Reset(mark)
			if err := t.pop(); err != nil {
				return t.fail(err)
			}
			continue
		}
		unknown := h.Size < 0
		if depth > 0 && top.header.Size >= 0 {
			end := top.header.End()
			if unknown {
				h.Size = end - h.PayloadOffset()
			}
			if h.End() > end {
				return t.fail(NewParseError(t.tag(h), h.Offset, ErrOverrun))
			}
		}

		switch kind := t.codec.Kind(h, top.header); kind {
		case KindContainer:
			if depth >= maxDepth {
				return t.fail(NewParseError(t.tag(h), h.Offset, ErrTooDeep))
			}
			prefix, err := t.codec.Prefix(c, h)
			if err != nil {
				if errors.Is(err, ErrIncomplete) {
					c.Reset(mark)
					return StatusIncomplete, nil
				}
				return t.fail(err)
			}
			if h.Size >= 0 && c.Offset() > h.End() {
				return t.fail(NewParseError(t.tag(h), h.Offset, ErrOverrun))
			}
			t.stack = append(t.stack, &frame[N]{header: h, unknown: unknown, prefix: prefix})

		case KindLeaf:
			if h.Size < 0 {
				return t.fail(NewParseError(t.tag(h), h.Offset, ErrTruncated))
			}
			if h.Size > t.MaxLeafSize {
				return t.fail(NewParseError(t.tag(h), h.Offset, ErrTooLarge))
			}
			payload, err := c.ReadBytes(int(h.Size))
			if err != nil {
				if errors.Is(err, ErrIncomplete) {
					c.Reset(mark)
					return StatusIncomplete, nil
				}
				return t.fail(NewParseError(t.tag(h), h.Offset, err))
			}
			node, err := t.codec.Leaf(h, payload)
			if err != nil {
				return t.fail(err)
			}
			top.children = append(top.children, node)

		default:
			var node N
			if kind == KindDeferred {
				if node, err = t.codec.Deferred(c, h); err != nil {
					if errors.Is(err, ErrIncomplete) {
						c.Reset(mark)
						return StatusIncomplete, nil
					}
					return t.fail(err)
				}
			} else {
				node = t.codec.Skipped(h)
			}
			if h.Size < 0 {
				c.DiscardToEnd()
			} else {
				rest := h.End() - c.Offset()
				if rest < 0 {
					return t.fail(NewParseError(t.tag(h), h.Offset, ErrOverrun))
				}
				if err := c.Discard(rest); err != nil {
					return t.fail(err)
				}
			}
			top.children = append(top.children, node)
		}
		c.Commit()
	}
}

func (t *Tree[N]) pop() error {
	top := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	h := top.header
	if top.unknown {
		// the element ended where its successor starts
		h.Size = t.Cursor.Offset() - h.PayloadOffset()
	}
	node, err := t.codec.Container(h, top.prefix, top.children)
	if err != nil {
		return err
	}
	parent := t.stack[len(t.stack)-1]
	parent.children = append(parent.children, node)
	return nil
}

type tagger interface {
	Tag(id uint32) string
}

func (t *Tree[N]) tag(h Header) string {
	if tg, ok := t.codec.(tagger); ok {
		return tg.Tag(h.ID)
	}
	return fmt.Sprintf("0x%x", h.ID)
}
