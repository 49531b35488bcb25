package mkvio

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ElementRegister contains the ID, type and name of the
// standard WebM/Matroska elements
type ElementRegister struct {
	ID   uint32
	Type uint8
	Name string
}

// Element is one node of a Matroska/WebM tree. Only the value field that
// matches the register type is set. Binary elements that are not decoded
// keep only their span.
type Element struct {
	ElementRegister

	Offset     int64 // absolute offset of the element id
	HeaderSize int
	Size       int64 // payload size

	Uint   uint64
	Int    int64
	Float  float64
	String string
	Date   time.Time
	Data   []byte
	Block  *Block

	Children []*Element
}

// End is the absolute offset just past the element.
func (el *Element) End() int64 {
	return el.Offset + int64(el.HeaderSize) + el.Size
}

// Child returns the first direct child with the given register.
func (el *Element) Child(r ElementRegister) *Element {
	if el == nil {
		return nil
	}
	for _, c := range el.Children {
		if c.ID == r.ID {
			return c
		}
	}
	return nil
}

// ChildrenOf returns every direct child with the given register.
func (el *Element) ChildrenOf(r ElementRegister) (out []*Element) {
	if el == nil {
		return
	}
	for _, c := range el.Children {
		if c.ID == r.ID {
			out = append(out, c)
		}
	}
	return
}

func (el *Element) value() string {
	switch el.Type {
	case ElementTypeUint:
		return fmt.Sprint(el.Uint)
	case ElementTypeInt:
		return fmt.Sprint(el.Int)
	case ElementTypeFloat:
		return fmt.Sprint(el.Float)
	case ElementTypeString, ElementTypeUnicode:
		return fmt.Sprintf("%q", el.String)
	case ElementTypeDate:
		return el.Date.Format(time.RFC3339)
	}
	if el.Block != nil {
		return el.Block.String()
	}
	if el.Data != nil {
		return fmt.Sprintf("len=%d", len(el.Data))
	}
	return ""
}

func printElement(out io.Writer, el *Element, depth int) {
	fmt.Fprintf(out, "%s%s offset=%d size=%d", strings.Repeat(" ", depth*2), el.Name, el.Offset, el.Size)
	if v := el.value(); v != "" {
		fmt.Fprint(out, " ", v)
	}
	fmt.Fprintln(out)
	for _, c := range el.Children {
		printElement(out, c, depth+1)
	}
}

func FprintElement(out io.Writer, el *Element) {
	printElement(out, el, 0)
}

func PrintElement(el *Element) {
	FprintElement(os.Stdout, el)
}
