package mp4

import (
	"github.com/deepch/mediaparser/format/mp4/mp4io"
	"github.com/deepch/mediaparser/utils/bits/pio"
)

// Probe reports whether b starts with a box header of a box that may open
// an ISOBMFF file.
func Probe(b []byte) bool {
	if len(b) < 8 {
		return false
	}
	size := pio.U32BE(b)
	if size != 0 && size != 1 && size < 8 {
		return false
	}
	return mp4io.IsTopLevelTag(mp4io.Tag(pio.U32BE(b[4:])))
}
