package mp4io

import (
	"errors"

	"github.com/deepch/mediaparser/format/mediaio"
)

var (
	errShort        = errors.New("box payload too short")
	ErrSizeTooSmall = errors.New("box size smaller than its header")
	ErrSizeToEOF    = errors.New("box size 0 is only valid for a top-level box")
	ErrEntryCount   = errors.New("entry count exceeds box payload")
	ErrSizeOverflow = errors.New("64-bit box size overflows")
)

func parseErr(debug string, offset int64, prev error) error {
	return mediaio.NewParseError(debug, offset, prev)
}
