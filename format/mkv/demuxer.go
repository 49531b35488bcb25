package mkv

import (
	"context"
	"io"

	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/format/mkv/mkvio"
)

type Demuxer struct {
	r         io.Reader
	tree      *mediaio.Tree[*mkvio.Element]
	tracks    []*av.Track
	ChunkSize int
}

func NewDemuxer(r io.Reader) *Demuxer {
	return &Demuxer{
		r:         r,
		tree:      mkvio.NewTree(),
		ChunkSize: mediaio.DefaultChunkSize,
	}
}

func (self *Demuxer) probe(ctx context.Context) (err error) {
	if self.tree.Done() {
		return
	}
	return self.tree.ReadFrom(ctx, self.r, self.ChunkSize)
}

// Elements reads the whole source and returns the EBML header and the
// segment.
func (self *Demuxer) Elements(ctx context.Context) ([]*mkvio.Element, error) {
	if err := self.probe(ctx); err != nil {
		return nil, err
	}
	return self.tree.Roots(), nil
}

// Tracks reads the whole source and summarizes its tracks with samples.
func (self *Demuxer) Tracks(ctx context.Context) ([]*av.Track, error) {
	if self.tracks != nil {
		return self.tracks, nil
	}
	roots, err := self.Elements(ctx)
	if err != nil {
		return nil, err
	}
	if self.tracks, err = Tracks(roots, true); err != nil {
		return nil, err
	}
	return self.tracks, nil
}

// DocType is the EBML header DocType, "webm" or "matroska".
func DocType(roots []*mkvio.Element) string {
	for _, el := range roots {
		if el.ID == mkvio.ElementEBML.ID {
			if dt := el.Child(mkvio.ElementDocType); dt != nil {
				return dt.String
			}
		}
	}
	return ""
}
