package mediaio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncomplete is a control-flow signal: the buffered bytes end inside
	// the element being read. Retry after appending more bytes.
	ErrIncomplete = errors.New("mediaio: incomplete data")

	ErrCancelled      = errors.New("mediaio: parse cancelled")
	ErrClosed         = errors.New("mediaio: write after close")
	ErrInvalidVint    = errors.New("invalid variable-length integer")
	ErrNegativeLength = errors.New("negative length")
	ErrOverrun        = errors.New("element overruns its parent")
	ErrTooLarge       = errors.New("element exceeds size limit")
	ErrTruncated      = errors.New("source ended inside element")
	ErrTooDeep        = errors.New("element nesting too deep")
)

// ParseError is a malformed-structure failure. Debug names the offending
// box or element and Offset is its absolute position in the source. Errors
// raised while decoding a child chain up to the enclosing element.
type ParseError struct {
	Debug  string
	Offset int64
	prev   *ParseError
	orig   error
}

func (a *ParseError) Error() string {
	s := []string{}
	for p := a; p != nil; p = p.prev {
		s = append(s, fmt.Sprintf("%s:%d", p.Debug, p.Offset))
		if p.prev == nil && p.orig != nil {
			s = append(s, p.orig.Error())
		}
	}
	return "mediaio: parse error: " + strings.Join(s, ",")
}

func (a *ParseError) Unwrap() error {
	for p := a; p != nil; p = p.prev {
		if p.prev == nil {
			return p.orig
		}
	}
	return nil
}

// NewParseError wraps prev with the tag and offset of the element being
// decoded. A *ParseError prev is chained rather than flattened.
func NewParseError(debug string, offset int64, prev error) error {
	_prev, _ := prev.(*ParseError)
	if _prev != nil {
		prev = nil
	}
	return &ParseError{
		Debug:  debug,
		Offset: offset,
		prev:   _prev,
		orig:   prev,
	}
}
