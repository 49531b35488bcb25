package mkvio

import (
	"errors"

	"github.com/deepch/mediaparser/format/mediaio"
)

var (
	ErrNotEBML          = errors.New("source does not start with an EBML header")
	ErrBadHeaderLength  = errors.New("EBML header body length is neither 31 nor 35")
	ErrNotSegment       = errors.New("top-level element is not a Segment")
	ErrBadElementSize   = errors.New("element size does not match its type")
	ErrUnknownSizeBlock = errors.New("block of unknown size")
	ErrBadLacing        = errors.New("lace sizes exceed block payload")
)

func parseErr(debug string, offset int64, prev error) error {
	return mediaio.NewParseError(debug, offset, prev)
}
