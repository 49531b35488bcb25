package mp4io

import (
	"fmt"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/utils/bits/pio"
)

type TimeToSample struct {
	FullBox
	Entries []TimeToSampleEntry
	BoxPos
	leaf
}

type TimeToSampleEntry struct {
	Count    uint32
	Duration uint32
}

const lenTimeToSampleEntry = 8

func (a TimeToSample) Tag() Tag {
	return STTS
}

func (a TimeToSample) String() string {
	return fmt.Sprintf("entries=%d", len(a.Entries))
}

func decodeTimeToSample(h mediaio.Header, b []byte) (Box, error) {
	a := &TimeToSample{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	count, n, err := entryCount(b, n, lenTimeToSampleEntry, h, "stts")
	if err != nil {
		return nil, err
	}
	a.Entries = make([]TimeToSampleEntry, count)
	for i := range a.Entries {
		a.Entries[i].Count = pio.U32BE(b[n:])
		a.Entries[i].Duration = pio.U32BE(b[n+4:])
		n += lenTimeToSampleEntry
	}
	return a, nil
}

type CompositionOffset struct {
	FullBox
	Entries []CompositionOffsetEntry
	BoxPos
	leaf
}

type CompositionOffsetEntry struct {
	Count  uint32
	Offset int32
}

const lenCompositionOffsetEntry = 8

func (a CompositionOffset) Tag() Tag {
	return CTTS
}

func (a CompositionOffset) String() string {
	return fmt.Sprintf("entries=%d", len(a.Entries))
}

func decodeCompositionOffset(h mediaio.Header, b []byte) (Box, error) {
	a := &CompositionOffset{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	count, n, err := entryCount(b, n, lenCompositionOffsetEntry, h, "ctts")
	if err != nil {
		return nil, err
	}
	a.Entries = make([]CompositionOffsetEntry, count)
	for i := range a.Entries {
		a.Entries[i].Count = pio.U32BE(b[n:])
		// read signed for both versions
		a.Entries[i].Offset = pio.I32BE(b[n+4:])
		n += lenCompositionOffsetEntry
	}
	return a, nil
}

type SampleToChunk struct {
	FullBox
	Entries []SampleToChunkEntry
	BoxPos
	leaf
}

type SampleToChunkEntry struct {
	FirstChunk      uint32
	SamplesPerChunk uint32
	SampleDescId    uint32
}

const lenSampleToChunkEntry = 12

func (a SampleToChunk) Tag() Tag {
	return STSC
}

func (a SampleToChunk) String() string {
	return fmt.Sprintf("entries=%d", len(a.Entries))
}

func decodeSampleToChunk(h mediaio.Header, b []byte) (Box, error) {
	a := &SampleToChunk{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	count, n, err := entryCount(b, n, lenSampleToChunkEntry, h, "stsc")
	if err != nil {
		return nil, err
	}
	a.Entries = make([]SampleToChunkEntry, count)
	for i := range a.Entries {
		a.Entries[i].FirstChunk = pio.U32BE(b[n:])
		a.Entries[i].SamplesPerChunk = pio.U32BE(b[n+4:])
		a.Entries[i].SampleDescId = pio.U32BE(b[n+8:])
		n += lenSampleToChunkEntry
	}
	return a, nil
}

// SampleSize is stsz. When SampleSize is non-zero every sample has that
// size and Entries is empty.
type SampleSize struct {
	FullBox
	SampleSize  uint32
	SampleCount uint32
	Entries     []uint32
	BoxPos
	leaf
}

func (a SampleSize) Tag() Tag {
	return STSZ
}

func (a SampleSize) String() string {
	return fmt.Sprintf("size=%d count=%d", a.SampleSize, a.SampleCount)
}

// Size returns the size of the i'th sample.
func (a SampleSize) Size(i int) uint32 {
	if a.SampleSize != 0 {
		return a.SampleSize
	}
	return a.Entries[i]
}

func decodeSampleSize(h mediaio.Header, b []byte) (Box, error) {
	a := &SampleSize{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if len(b) < n+4 {
		return nil, parseErr("stsz", h.Offset, errShort)
	}
	a.SampleSize = pio.U32BE(b[n:])
	n += 4
	count, n, err := entryCount(b, n, 0, h, "stsz")
	if err != nil {
		return nil, err
	}
	a.SampleCount = uint32(count)
	if a.SampleSize != 0 {
		return a, nil
	}
	if int64(count)*4 > int64(len(b)-n) {
		return nil, parseErr("stsz", h.Offset, ErrEntryCount)
	}
	a.Entries = make([]uint32, count)
	for i := range a.Entries {
		a.Entries[i] = pio.U32BE(b[n:])
		n += 4
	}
	return a, nil
}

// ChunkOffset is stco or co64. Entries are widened to 64 bits either way.
type ChunkOffset struct {
	Tag_ Tag
	FullBox
	Entries []uint64
	BoxPos
	leaf
}

func (a ChunkOffset) Tag() Tag {
	return a.Tag_
}

func (a ChunkOffset) String() string {
	return fmt.Sprintf("entries=%d", len(a.Entries))
}

func decodeChunkOffset(h mediaio.Header, b []byte) (Box, error) {
	a := &ChunkOffset{Tag_: Tag(h.ID)}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	entryLen := 4
	if a.Tag_ == CO64 {
		entryLen = 8
	}
	count, n, err := entryCount(b, n, entryLen, h, a.Tag_.String())
	if err != nil {
		return nil, err
	}
	a.Entries = make([]uint64, count)
	for i := range a.Entries {
		if entryLen == 8 {
			a.Entries[i] = pio.U64BE(b[n:])
		} else {
			a.Entries[i] = uint64(pio.U32BE(b[n:]))
		}
		n += entryLen
	}
	return a, nil
}

// SyncSample lists the 1-based numbers of the key frames.
type SyncSample struct {
	FullBox
	Entries []uint32
	BoxPos
	leaf
}

func (a SyncSample) Tag() Tag {
	return STSS
}

func (a SyncSample) String() string {
	return fmt.Sprintf("entries=%d", len(a.Entries))
}

func decodeSyncSample(h mediaio.Header, b []byte) (Box, error) {
	a := &SyncSample{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	count, n, err := entryCount(b, n, 4, h, "stss")
	if err != nil {
		return nil, err
	}
	a.Entries = make([]uint32, count)
	for i := range a.Entries {
		a.Entries[i] = pio.U32BE(b[n:])
		n += 4
	}
	return a, nil
}
