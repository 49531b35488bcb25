package mp4io

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/utils/bits/pio"
)

type Tag uint32

func (a Tag) String() string {
	var b [4]byte
	b[0], b[1], b[2], b[3] = byte(a>>24), byte(a>>16), byte(a>>8), byte(a)
	for i := 0; i < 4; i++ {
		if b[i] == 0 {
			b[i] = ' '
		}
	}
	return string(b[:])
}

func StringToTag(tag string) Tag {
	var b [4]byte
	copy(b[:], []byte(tag))
	return Tag(pio.U32BE(b[:]))
}

// Box is one node of an ISOBMFF tree. The concrete types are the variants
// of the tree; type-switch on them to read decoded fields.
type Box interface {
	Tag() Tag
	Pos() (offset int64, size int64)
	Children() []Box
}

// BoxPos locates a box in the source. Size includes the header and is -1
// for a final box that runs to the end of the source. PrefixSize counts the
// fixed fields a container carries before its first child.
type BoxPos struct {
	Offset     int64
	Size       int64
	HeaderSize int
	PrefixSize int
}

func (a BoxPos) Pos() (int64, int64) {
	return a.Offset, a.Size
}

func (a *BoxPos) setPos(h mediaio.Header) {
	a.Offset = h.Offset
	a.HeaderSize = h.HeaderSize
	if h.Size < 0 {
		a.Size = -1
	} else {
		a.Size = int64(h.HeaderSize) + h.Size
	}
}

// Dummy is a box this package does not decode. Only its span is kept.
type Dummy struct {
	Tag_ Tag
	BoxPos
}

func (a Dummy) Tag() Tag {
	return a.Tag_
}

func (a Dummy) Children() []Box {
	return nil
}

// Container is a box whose payload is a plain list of child boxes.
type Container struct {
	Tag_  Tag
	Boxes []Box
	BoxPos
}

func (a Container) Tag() Tag {
	return a.Tag_
}

// Children is nil for a nil container, so lookups can be chained.
func (a *Container) Children() []Box {
	if a == nil {
		return nil
	}
	return a.Boxes
}

type leaf struct{}

func (leaf) Children() []Box {
	return nil
}

type FullBox struct {
	Version uint8
	Flags   uint32
}

func (f *FullBox) unmarshalFull(b []byte, h mediaio.Header) (n int, err error) {
	if len(b) < 4 {
		return 0, parseErr("fullBox", h.PayloadOffset(), errShort)
	}
	f.Version = pio.U8(b)
	f.Flags = pio.U24BE(b[1:])
	return 4, nil
}

// FindChildren returns the first box tagged tag in a depth-first walk of
// root, root included.
func FindChildren(root Box, tag Tag) Box {
	if root.Tag() == tag {
		return root
	}
	for _, child := range root.Children() {
		if r := FindChildren(child, tag); r != nil {
			return r
		}
	}
	return nil
}

func FindChildrenByName(root Box, tag string) Box {
	return FindChildren(root, StringToTag(tag))
}

func printbox(out io.Writer, root Box, depth int) {
	offset, size := root.Pos()

	type stringintf interface {
		String() string
	}

	fmt.Fprintf(out,
		"%s%s offset=%d size=%d",
		strings.Repeat(" ", depth*2), root.Tag(), offset, size,
	)
	if str, ok := root.(stringintf); ok {
		fmt.Fprint(out, " ", str.String())
	}
	fmt.Fprintln(out)

	for _, child := range root.Children() {
		printbox(out, child, depth+1)
	}
}

func FprintBox(out io.Writer, root Box) {
	printbox(out, root, 0)
}

func PrintBox(root Box) {
	FprintBox(os.Stdout, root)
}
