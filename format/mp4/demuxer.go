package mp4

import (
	"context"
	"io"

	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/format/mp4/mp4io"
)

type Demuxer struct {
	r         io.Reader
	tree      *mediaio.Tree[mp4io.Box]
	tracks    []*av.Track
	ChunkSize int
}

func NewDemuxer(r io.Reader) *Demuxer {
	return &Demuxer{
		r:         r,
		tree:      mp4io.NewTree(),
		ChunkSize: mediaio.DefaultChunkSize,
	}
}

func (self *Demuxer) probe(ctx context.Context) (err error) {
	if self.tree.Done() {
		return
	}
	return self.tree.ReadFrom(ctx, self.r, self.ChunkSize)
}

// Boxes reads the whole source and returns the top-level boxes.
func (self *Demuxer) Boxes(ctx context.Context) ([]mp4io.Box, error) {
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
	roots, err := self.Boxes(ctx)
	if err != nil {
		return nil, err
	}
	if self.tracks, err = Tracks(roots, true); err != nil {
		return nil, err
	}
	return self.tracks, nil
}
