package mp4io

import "fmt"

// MediaData is the mdat box. Its payload is never read: only the absolute
// offset where the samples start is kept. SamplesIndexed is true when a moov
// box preceded it, so the sample tables already locate every sample inside.
type MediaData struct {
	PayloadOffset  int64
	SamplesIndexed bool
	BoxPos
	leaf
}

func (a MediaData) Tag() Tag {
	return MDAT
}

func (a MediaData) String() string {
	return fmt.Sprintf("payload=%d indexed=%t", a.PayloadOffset, a.SamplesIndexed)
}
