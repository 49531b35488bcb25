package mp4io

import (
	"fmt"
	"strings"
	"time"

	"github.com/deepch/mediaparser/format/mediaio"
	"github.com/deepch/mediaparser/utils/bits/pio"
)

type FileType struct {
	Tag_             Tag
	MajorBrand       Tag
	MinorVersion     uint32
	CompatibleBrands []Tag
	BoxPos
	leaf
}

func (a FileType) Tag() Tag {
	return a.Tag_
}

func (a FileType) String() string {
	return fmt.Sprintf("major=%s minor=%d", a.MajorBrand, a.MinorVersion)
}

func decodeFileType(h mediaio.Header, b []byte) (Box, error) {
	a := &FileType{Tag_: Tag(h.ID)}
	a.setPos(h)
	if len(b) < 8 {
		return nil, parseErr("ftyp", h.Offset, errShort)
	}
	a.MajorBrand = Tag(pio.U32BE(b))
	a.MinorVersion = pio.U32BE(b[4:])
	for n := 8; n+4 <= len(b); n += 4 {
		a.CompatibleBrands = append(a.CompatibleBrands, Tag(pio.U32BE(b[n:])))
	}
	return a, nil
}

type MovieHeader struct {
	FullBox
	CreateTime      time.Time
	ModifyTime      time.Time
	TimeScale       uint32
	Duration        uint64
	PreferredRate   float64
	PreferredVolume float64
	Matrix          [9]int32
	NextTrackID     uint32
	BoxPos
	leaf
}

func (a MovieHeader) Tag() Tag {
	return MVHD
}

func (a MovieHeader) String() string {
	return fmt.Sprintf("timescale=%d duration=%d", a.TimeScale, a.Duration)
}

func decodeMovieHeader(h mediaio.Header, b []byte) (Box, error) {
	a := &MovieHeader{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if a.Version == 1 {
		if len(b) < n+28 {
			return nil, parseErr("mvhd", h.Offset, errShort)
		}
		a.CreateTime = GetTime64(b[n:])
		a.ModifyTime = GetTime64(b[n+8:])
		a.TimeScale = pio.U32BE(b[n+16:])
		a.Duration = pio.U64BE(b[n+20:])
		n += 28
	} else {
		if len(b) < n+16 {
			return nil, parseErr("mvhd", h.Offset, errShort)
		}
		a.CreateTime = GetTime32(b[n:])
		a.ModifyTime = GetTime32(b[n+4:])
		a.TimeScale = pio.U32BE(b[n+8:])
		a.Duration = uint64(pio.U32BE(b[n+12:]))
		n += 16
	}
	if len(b) < n+80 {
		return nil, parseErr("mvhd", h.Offset, errShort)
	}
	a.PreferredRate = GetFixed32(b[n:])
	a.PreferredVolume = GetFixed16(b[n+4:])
	n += 16
	for i := range a.Matrix {
		a.Matrix[i] = pio.I32BE(b[n:])
		n += 4
	}
	n += 24
	a.NextTrackID = pio.U32BE(b[n:])
	return a, nil
}

type TrackHeader struct {
	FullBox
	CreateTime     time.Time
	ModifyTime     time.Time
	TrackID        uint32
	Duration       uint64
	Layer          int16
	AlternateGroup int16
	Volume         float64
	Matrix         [9]int32
	TrackWidth     float64
	TrackHeight    float64
	BoxPos
	leaf
}

func (a TrackHeader) Tag() Tag {
	return TKHD
}

func (a TrackHeader) String() string {
	return fmt.Sprintf("id=%d %gx%g", a.TrackID, a.TrackWidth, a.TrackHeight)
}

func decodeTrackHeader(h mediaio.Header, b []byte) (Box, error) {
	a := &TrackHeader{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if a.Version == 1 {
		if len(b) < n+32 {
			return nil, parseErr("tkhd", h.Offset, errShort)
		}
		a.CreateTime = GetTime64(b[n:])
		a.ModifyTime = GetTime64(b[n+8:])
		a.TrackID = pio.U32BE(b[n+16:])
		a.Duration = pio.U64BE(b[n+24:])
		n += 32
	} else {
		if len(b) < n+20 {
			return nil, parseErr("tkhd", h.Offset, errShort)
		}
		a.CreateTime = GetTime32(b[n:])
		a.ModifyTime = GetTime32(b[n+4:])
		a.TrackID = pio.U32BE(b[n+8:])
		a.Duration = uint64(pio.U32BE(b[n+16:]))
		n += 20
	}
	if len(b) < n+60 {
		return nil, parseErr("tkhd", h.Offset, errShort)
	}
	n += 8
	a.Layer = pio.I16BE(b[n:])
	a.AlternateGroup = pio.I16BE(b[n+2:])
	a.Volume = GetFixed16(b[n+4:])
	n += 8
	for i := range a.Matrix {
		a.Matrix[i] = pio.I32BE(b[n:])
		n += 4
	}
	a.TrackWidth = GetFixed32(b[n:])
	a.TrackHeight = GetFixed32(b[n+4:])
	return a, nil
}

type MediaHeader struct {
	FullBox
	CreateTime time.Time
	ModifyTime time.Time
	TimeScale  uint32
	Duration   uint64
	Language   string
	BoxPos
	leaf
}

func (a MediaHeader) Tag() Tag {
	return MDHD
}

func (a MediaHeader) String() string {
	return fmt.Sprintf("timescale=%d duration=%d lang=%s", a.TimeScale, a.Duration, a.Language)
}

func decodeMediaHeader(h mediaio.Header, b []byte) (Box, error) {
	a := &MediaHeader{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if a.Version == 1 {
		if len(b) < n+28 {
			return nil, parseErr("mdhd", h.Offset, errShort)
		}
		a.CreateTime = GetTime64(b[n:])
		a.ModifyTime = GetTime64(b[n+8:])
		a.TimeScale = pio.U32BE(b[n+16:])
		a.Duration = pio.U64BE(b[n+20:])
		n += 28
	} else {
		if len(b) < n+16 {
			return nil, parseErr("mdhd", h.Offset, errShort)
		}
		a.CreateTime = GetTime32(b[n:])
		a.ModifyTime = GetTime32(b[n+4:])
		a.TimeScale = pio.U32BE(b[n+8:])
		a.Duration = uint64(pio.U32BE(b[n+12:]))
		n += 16
	}
	if len(b) >= n+2 {
		lang := pio.U16BE(b[n:])
		if lang != 0 {
			a.Language = string([]byte{
				byte(lang>>10&0x1f) + 0x60,
				byte(lang>>5&0x1f) + 0x60,
				byte(lang&0x1f) + 0x60,
			})
		}
	}
	return a, nil
}

type HandlerRefer struct {
	FullBox
	Type    Tag
	SubType Tag
	Name    string
	BoxPos
	leaf
}

func (a HandlerRefer) Tag() Tag {
	return HDLR
}

func (a HandlerRefer) String() string {
	return fmt.Sprintf("type=%s", a.SubType)
}

func decodeHandlerRefer(h mediaio.Header, b []byte) (Box, error) {
	a := &HandlerRefer{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	if len(b) < n+8 {
		return nil, parseErr("hdlr", h.Offset, errShort)
	}
	a.Type = Tag(pio.U32BE(b[n:]))
	a.SubType = Tag(pio.U32BE(b[n+4:]))
	n += 20
	if len(b) > n {
		a.Name = strings.TrimRight(string(b[n:]), "\x00")
	}
	return a, nil
}

type EditList struct {
	FullBox
	Entries []EditListEntry
	BoxPos
	leaf
}

type EditListEntry struct {
	SegmentDuration   uint64
	MediaTime         int64
	MediaRateInteger  int16
	MediaRateFraction int16
}

func (a EditList) Tag() Tag {
	return ELST
}

func (a EditList) String() string {
	return fmt.Sprintf("entries=%d", len(a.Entries))
}

func decodeEditList(h mediaio.Header, b []byte) (Box, error) {
	a := &EditList{}
	a.setPos(h)
	n, err := a.unmarshalFull(b, h)
	if err != nil {
		return nil, err
	}
	entryLen := 12
	if a.Version == 1 {
		entryLen = 20
	}
	count, n, err := entryCount(b, n, entryLen, h, "elst")
	if err != nil {
		return nil, err
	}
	a.Entries = make([]EditListEntry, count)
	for i := range a.Entries {
		e := &a.Entries[i]
		if a.Version == 1 {
			e.SegmentDuration = pio.U64BE(b[n:])
			e.MediaTime = pio.I64BE(b[n+8:])
			n += 16
		} else {
			e.SegmentDuration = uint64(pio.U32BE(b[n:]))
			e.MediaTime = int64(pio.I32BE(b[n+4:]))
			n += 8
		}
		e.MediaRateInteger = pio.I16BE(b[n:])
		e.MediaRateFraction = pio.I16BE(b[n+2:])
		n += 4
	}
	return a, nil
}

// entryCount reads a 32-bit entry count at b[n:] and checks that count
// entries of entryLen bytes fit in the rest of the payload.
func entryCount(b []byte, n int, entryLen int, h mediaio.Header, debug string) (int, int, error) {
	if len(b) < n+4 {
		return 0, n, parseErr(debug, h.Offset, errShort)
	}
	count := int64(pio.U32BE(b[n:]))
	n += 4
	if count*int64(entryLen) > int64(len(b)-n) {
		return 0, n, parseErr(debug, h.Offset, ErrEntryCount)
	}
	return int(count), n, nil
}
