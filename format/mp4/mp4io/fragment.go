package mp4io

import (
	"fmt"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/utils/bits/pio"
)

type SampleFlags uint32

// fragment sample flags
const (
	SampleIsNonSync       SampleFlags = 0x00010000
	SampleHasDependencies SampleFlags = 0x01000000
	SampleNoDependencies  SampleFlags = 0x02000000

	SampleNonKeyframe = SampleHasDependencies | SampleIsNonSync
)

// IsKeyframe reports whether flags mark a sync sample.
func (f SampleFlags) IsKeyframe() bool {
	return f&SampleIsNonSync == 0
}

type TrackExtend struct {
	FullBox
	TrackID               uint32
	DefaultSampleDescIdx  uint32
	DefaultSampleDuration uint32
	DefaultSampleSize     uint32
	DefaultSampleFlags    SampleFlags
	BoxPos
	leaf
}

func (a TrackExtend) Tag() Tag {
	return TREX
}

func decodeTrackExtend(h mediaio.Header, b []byte) (Box, error) {
	a := &TrackExtend{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if len(b) < n+20 {
		return nil, parseErr("trex", h.Offset, errShort)
	}
	a.TrackID = pio.U32BE(b[n:])
	a.DefaultSampleDescIdx = pio.U32BE(b[n+4:])
	a.DefaultSampleDuration = pio.U32BE(b[n+8:])
	a.DefaultSampleSize = pio.U32BE(b[n+12:])
	a.DefaultSampleFlags = SampleFlags(pio.U32BE(b[n+16:]))
	return a, nil
}

type MovieFragHeader struct {
	FullBox
	Seqnum uint32
	BoxPos
	leaf
}

func (a MovieFragHeader) Tag() Tag {
	return MFHD
}

func (a MovieFragHeader) String() string {
	return fmt.Sprintf("seq=%d", a.Seqnum)
}

func decodeMovieFragHeader(h mediaio.Header, b []byte) (Box, error) {
	a := &MovieFragHeader{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if len(b) < n+4 {
		return nil, parseErr("mfhd", h.Offset, errShort)
	}
	a.Seqnum = pio.U32BE(b[n:])
	return a, nil
}

// TrackFragFlags is the type of TrackFragHeader's Flags
type TrackFragFlags uint32

// TrackFragFlags for TrackFragHeader
const (
	TrackFragBaseDataOffset    TrackFragFlags = 0x01
	TrackFragStsdID            TrackFragFlags = 0x02
	TrackFragDefaultDuration   TrackFragFlags = 0x08
	TrackFragDefaultSize       TrackFragFlags = 0x10
	TrackFragDefaultFlags      TrackFragFlags = 0x20
	TrackFragDurationIsEmpty   TrackFragFlags = 0x010000
	TrackFragDefaultBaseIsMOOF TrackFragFlags = 0x020000
)

type TrackFragHeader struct {
	Version         uint8
	Flags           TrackFragFlags
	TrackID         uint32
	BaseDataOffset  uint64
	StsdID          uint32
	DefaultDuration uint32
	DefaultSize     uint32
	DefaultFlags    SampleFlags
	BoxPos
	leaf
}

func (a TrackFragHeader) Tag() Tag {
	return TFHD
}

func (a TrackFragHeader) String() string {
	return fmt.Sprintf("track=%d flags=0x%x", a.TrackID, uint32(a.Flags))
}

func decodeTrackFragHeader(h mediaio.Header, b []byte) (Box, error) {
	a := &TrackFragHeader{}
	a.setPos(h)
	var full FullBox
	n, err := full.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	a.Version = full.Version
	a.Flags = TrackFragFlags(full.Flags)

	need := n + 4
	for _, f := range []struct {
		flag TrackFragFlags
		len  int
	}{
		{TrackFragBaseDataOffset, 8},
		{TrackFragStsdID, 4},
		{TrackFragDefaultDuration, 4},
		{TrackFragDefaultSize, 4},
		{TrackFragDefaultFlags, 4},
	} {
		if a.Flags&f.flag != 0 {
			need += f.len
		}
	}
	if len(b) < need {
		return nil, parseErr("tfhd", h.Offset, errShort)
	}

	a.TrackID = pio.U32BE(b[n:])
	n += 4
	if a.Flags&TrackFragBaseDataOffset != 0 {
		a.BaseDataOffset = pio.U64BE(b[n:])
		n += 8
	}
	if a.Flags&TrackFragStsdID != 0 {
		a.StsdID = pio.U32BE(b[n:])
		n += 4
	}
	if a.Flags&TrackFragDefaultDuration != 0 {
		a.DefaultDuration = pio.U32BE(b[n:])
		n += 4
	}
	if a.Flags&TrackFragDefaultSize != 0 {
		a.DefaultSize = pio.U32BE(b[n:])
		n += 4
	}
	if a.Flags&TrackFragDefaultFlags != 0 {
		a.DefaultFlags = SampleFlags(pio.U32BE(b[n:]))
	}
	return a, nil
}

type TrackFragDecodeTime struct {
	FullBox
	Time uint64
	BoxPos
	leaf
}

func (a TrackFragDecodeTime) Tag() Tag {
	return TFDT
}

func (a TrackFragDecodeTime) String() string {
	return fmt.Sprintf("time=%d", a.Time)
}

func decodeTrackFragDecodeTime(h mediaio.Header, b []byte) (Box, error) {
	a := &TrackFragDecodeTime{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if a.Version != 0 {
		if len(b) < n+8 {
			return nil, parseErr("tfdt", h.Offset, errShort)
		}
		a.Time = pio.U64BE(b[n:])
	} else {
		if len(b) < n+4 {
			return nil, parseErr("tfdt", h.Offset, errShort)
		}
		a.Time = uint64(pio.U32BE(b[n:]))
	}
	return a, nil
}

// TrackRunFlags is the type of TrackFragRun's Flags
type TrackRunFlags uint32

// TrackRunFlags for TrackFragRun
const (
	TrackRunDataOffset       TrackRunFlags = 0x01
	TrackRunFirstSampleFlags TrackRunFlags = 0x04
	TrackRunSampleDuration   TrackRunFlags = 0x100
	TrackRunSampleSize       TrackRunFlags = 0x200
	TrackRunSampleFlags      TrackRunFlags = 0x400
	TrackRunSampleCTS        TrackRunFlags = 0x800
)

const maxRunEntries = 1 << 24

type TrackFragRun struct {
	Version          uint8
	Flags            TrackRunFlags
	DataOffset       int32
	FirstSampleFlags SampleFlags
	Entries          []TrackFragRunEntry
	BoxPos
	leaf
}

type TrackFragRunEntry struct {
	Duration uint32
	Size     uint32
	Flags    SampleFlags
	CTS      int32
}

func (a TrackFragRun) Tag() Tag {
	return TRUN
}

func (a TrackFragRun) String() string {
	return fmt.Sprintf("entries=%d", len(a.Entries))
}

func decodeTrackFragRun(h mediaio.Header, b []byte) (Box, error) {
	a := &TrackFragRun{}
	a.setPos(h)
	var full FullBox
	n, err := full.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	a.Version = full.Version
	a.Flags = TrackRunFlags(full.Flags)

	if len(b) < n+4 {
		return nil, parseErr("trun", h.Offset, errShort)
	}
	count := int64(pio.U32BE(b[n:]))
	n += 4
	if a.Flags&TrackRunDataOffset != 0 {
		if len(b) < n+4 {
			return nil, parseErr("trun", h.Offset, errShort)
		}
		a.DataOffset = pio.I32BE(b[n:])
		n += 4
	}
	if a.Flags&TrackRunFirstSampleFlags != 0 {
		if len(b) < n+4 {
			return nil, parseErr("trun", h.Offset, errShort)
		}
		a.FirstSampleFlags = SampleFlags(pio.U32BE(b[n:]))
		n += 4
	}

	entryLen := 0
	for _, f := range []TrackRunFlags{TrackRunSampleDuration, TrackRunSampleSize, TrackRunSampleFlags, TrackRunSampleCTS} {
		if a.Flags&f != 0 {
			entryLen += 4
		}
	}
	if count*int64(entryLen) > int64(len(b)-n) {
		return nil, parseErr("trun", h.Offset, ErrEntryCount)
	}
	if count > maxRunEntries {
		return nil, parseErr("trun", h.Offset, ErrEntryCount)
	}

	a.Entries = make([]TrackFragRunEntry, count)
	for i := range a.Entries {
		entry := &a.Entries[i]
		if a.Flags&TrackRunSampleDuration != 0 {
			entry.Duration = pio.U32BE(b[n:])
			n += 4
		}
		if a.Flags&TrackRunSampleSize != 0 {
			entry.Size = pio.U32BE(b[n:])
			n += 4
		}
		if a.Flags&TrackRunSampleFlags != 0 {
			entry.Flags = SampleFlags(pio.U32BE(b[n:]))
			n += 4
		}
		if a.Flags&TrackRunSampleCTS != 0 {
			entry.CTS = pio.I32BE(b[n:])
			n += 4
		}
	}
	return a, nil
}
