package mkvio

import (
	"fmt"

	"github.com/deepch/mediaparser/format/mediaio"
)

// Lacing modes, bits 1-2 of the block flags.
const (
	LacingNone  = 0
	LacingXiph  = 1
	LacingFixed = 2
	LacingEBML  = 3
)

// Block flags
const (
	BlockFlagKeyframe    = 0x80
	BlockFlagInvisible   = 0x08
	BlockFlagDiscardable = 0x01
)

// Block is the decoded header of a SimpleBlock or Block. Frame payloads
// are not read; Frames locates each laced frame in the source.
type Block struct {
	Track    uint64
	Timecode int16 // relative to the cluster timecode
	Flags    uint8
	Lacing   int
	Frames   []Frame
	Head     []byte // up to headSize leading bytes of the first frame
}

const headSize = 3

type Frame struct {
	Offset int64
	Size   int64
}

// Keyframe is only meaningful for a SimpleBlock.
func (b *Block) Keyframe() bool {
	return b.Flags&BlockFlagKeyframe != 0
}

func (b *Block) String() string {
	return fmt.Sprintf("track=%d timecode=%d frames=%d", b.Track, b.Timecode, len(b.Frames))
}

func readBlock(c *mediaio.Cursor, h mediaio.Header) (*Block, error) {
	end := h.End()
	track, _, err := c.ReadEBMLVint()
	if err != nil {
		return nil, err
	}
	timecode, err := c.ReadU16BE()
	if err != nil {
		return nil, err
	}
	flags, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	b := &Block{
		Track:    track,
		Timecode: int16(timecode),
		Flags:    flags,
		Lacing:   int(flags>>1) & 3,
	}
	if c.Offset() > end {
		return nil, parseErr("Block", h.Offset, ErrBadLacing)
	}

	var sizes []int64
	if b.Lacing != LacingNone {
		n, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		count := int(n) + 1
		switch b.Lacing {
		case LacingXiph:
			for i := 0; i < count-1; i++ {
				var size int64
				for {
					v, err := c.ReadU8()
					if err != nil {
						return nil, err
					}
					size += int64(v)
					if v != 0xff {
						break
					}
				}
				sizes = append(sizes, size)
			}
		case LacingEBML:
			first, _, err := c.ReadEBMLVint()
			if err != nil {
				return nil, err
			}
			size := int64(first)
			sizes = append(sizes, size)
			for i := 1; i < count-1; i++ {
				v, width, err := c.ReadEBMLVint()
				if err != nil {
					return nil, err
				}
				// signed vint: subtract half the range
				size += int64(v) - (int64(1)<<(7*width-1) - 1)
				sizes = append(sizes, size)
			}
		case LacingFixed:
			rest := end - c.Offset()
			if rest < 0 || rest%int64(count) != 0 {
				return nil, parseErr("Block", h.Offset, ErrBadLacing)
			}
			for i := 0; i < count-1; i++ {
				sizes = append(sizes, rest/int64(count))
			}
		}
	}

	off := c.Offset()
	rest := end - off
	for _, size := range sizes {
		if size < 0 || size > rest {
			return nil, parseErr("Block", h.Offset, ErrBadLacing)
		}
		b.Frames = append(b.Frames, Frame{Offset: off, Size: size})
		off += size
		rest -= size
	}
	if rest < 0 {
		return nil, parseErr("Block", h.Offset, ErrBadLacing)
	}
	b.Frames = append(b.Frames, Frame{Offset: off, Size: rest})

	head, err := c.PeekBytes(int(min(b.Frames[0].Size, headSize)))
	if err != nil {
		return nil, err
	}
	b.Head = append([]byte(nil), head...)
	return b, nil
}
