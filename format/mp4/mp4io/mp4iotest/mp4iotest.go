// Package mp4iotest builds small ISOBMFF files for tests.
package mp4iotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

func U16(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

func U32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

func U64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

func Zeros(n int) []byte {
	return make([]byte, n)
}

// Box frames payload with a 32-bit size and tag.
func Box(tag string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	b := U32(uint32(8 + len(body)))
	b = append(b, tag[:4]...)
	return append(b, body...)
}

// LargeBox frames payload with size 1 and a 64-bit size.
func LargeBox(tag string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	b := U32(1)
	b = append(b, tag[:4]...)
	b = append(b, U64(uint64(16+len(body)))...)
	return append(b, body...)
}

// FullBox is Box with a version and flags word in front of payload.
func FullBox(tag string, version uint8, flags uint32, payload ...[]byte) []byte {
	vf := U32(uint32(version)<<24 | flags&0xffffff)
	return Box(tag, append([][]byte{vf}, payload...)...)
}

func FileType() []byte {
	return Box("ftyp", []byte("isom"), U32(0x200), []byte("isom"), []byte("avc1"))
}

// Track describes one track of a generated movie. All samples go into a
// single chunk.
type Track struct {
	ID        uint32
	Handler   string
	Timescale uint32
	Width     uint16
	Height    uint16
	Entry     []byte
	Sizes     []uint32
	Duration  uint32
	Sync      []uint32
	CTS       []int32
}

func (t Track) total() (n int) {
	for _, s := range t.Sizes {
		n += int(s)
	}
	return
}

func MovieHeader(timescale uint32, duration uint32) []byte {
	return FullBox("mvhd", 0, 0,
		Zeros(8), U32(timescale), U32(duration),
		U32(0x10000), U16(0x100), Zeros(10),
		identity(), Zeros(24), U32(2))
}

func identity() []byte {
	var b []byte
	for _, v := range []uint32{0x10000, 0, 0, 0, 0x10000, 0, 0, 0, 0x40000000} {
		b = append(b, U32(v)...)
	}
	return b
}

func trackHeader(t Track) []byte {
	return FullBox("tkhd", 0, 3,
		Zeros(8), U32(t.ID), Zeros(4), U32(t.Duration*uint32(len(t.Sizes))),
		Zeros(8), Zeros(4), U16(0), Zeros(2),
		identity(), U32(uint32(t.Width)<<16), U32(uint32(t.Height)<<16))
}

func mediaHeader(t Track) []byte {
	// "und" packed as 5-bit letters
	return FullBox("mdhd", 0, 0,
		Zeros(8), U32(t.Timescale), U32(t.Duration*uint32(len(t.Sizes))),
		U16(0x55c4), Zeros(2))
}

func handler(kind string) []byte {
	return FullBox("hdlr", 0, 0, Zeros(4), []byte(kind), Zeros(12), []byte("handler\x00"))
}

func sampleTable(t Track, chunkOffset uint32) []byte {
	stsd := FullBox("stsd", 0, 0, U32(1), t.Entry)
	stts := FullBox("stts", 0, 0, U32(1), U32(uint32(len(t.Sizes))), U32(t.Duration))
	var sizes []byte
	for _, s := range t.Sizes {
		sizes = append(sizes, U32(s)...)
	}
	stsz := FullBox("stsz", 0, 0, U32(0), U32(uint32(len(t.Sizes))), sizes)
	stsc := FullBox("stsc", 0, 0, U32(1), U32(1), U32(uint32(len(t.Sizes))), U32(1))
	stco := FullBox("stco", 0, 0, U32(1), U32(chunkOffset))
	boxes := [][]byte{stsd, stts}
	if t.CTS != nil {
		var entries []byte
		for _, c := range t.CTS {
			entries = append(entries, U32(1)...)
			entries = append(entries, U32(uint32(c))...)
		}
		boxes = append(boxes, FullBox("ctts", 0, 0, U32(uint32(len(t.CTS))), entries))
	}
	boxes = append(boxes, stsc, stsz, stco)
	if t.Sync != nil {
		var entries []byte
		for _, s := range t.Sync {
			entries = append(entries, U32(s)...)
		}
		boxes = append(boxes, FullBox("stss", 0, 0, U32(uint32(len(t.Sync))), entries))
	}
	return Box("stbl", boxes...)
}

func trak(t Track, chunkOffset uint32) []byte {
	mhd := FullBox("smhd", 0, 0, Zeros(4))
	if t.Handler == "vide" {
		mhd = FullBox("vmhd", 0, 1, Zeros(8))
	}
	return Box("trak",
		trackHeader(t),
		Box("mdia",
			mediaHeader(t),
			handler(t.Handler),
			Box("minf", mhd, sampleTable(t, chunkOffset))))
}

func moov(tracks []Track, offsets []uint32) []byte {
	boxes := [][]byte{MovieHeader(1000, 0)}
	for i, t := range tracks {
		boxes = append(boxes, trak(t, offsets[i]))
	}
	return Box("moov", boxes...)
}

// Movie returns ftyp, moov and mdat. Sample i of a track is filled with
// byte i+1.
func Movie(tracks ...Track) []byte {
	ftyp := FileType()
	offsets := make([]uint32, len(tracks))
	// moov size does not depend on the offset values
	size := len(moov(tracks, offsets))
	pos := uint32(len(ftyp) + size + 8)
	var data []byte
	for i, t := range tracks {
		offsets[i] = pos
		for j, s := range t.Sizes {
			data = append(data, bytes.Repeat([]byte{byte(j + 1)}, int(s))...)
		}
		pos += uint32(t.total())
	}
	out := append(ftyp, moov(tracks, offsets)...)
	return append(out, Box("mdat", data)...)
}

// MediaFirst is Movie with mdat written before moov.
func MediaFirst(tracks ...Track) []byte {
	ftyp := FileType()
	offsets := make([]uint32, len(tracks))
	pos := uint32(len(ftyp) + 8)
	var data []byte
	for i, t := range tracks {
		offsets[i] = pos
		data = append(data, Zeros(t.total())...)
		pos += uint32(t.total())
	}
	out := append(ftyp, Box("mdat", data)...)
	return append(out, moov(tracks, offsets)...)
}

// Fragmented returns an init segment followed by one moof and mdat per
// track, with the sample tables left empty.
func Fragmented(tracks ...Track) []byte {
	var traks, trexs [][]byte
	for _, t := range tracks {
		empty := t
		empty.Sizes = nil
		empty.Sync = nil
		empty.CTS = nil
		traks = append(traks, trak(empty, 0))
		trexs = append(trexs, FullBox("trex", 0, 0, U32(t.ID), U32(1), U32(t.Duration), U32(0), U32(0)))
	}
	out := FileType()
	out = append(out, Box("moov", append(append([][]byte{MovieHeader(1000, 0)}, traks...), Box("mvex", trexs...))...)...)
	for seq, t := range tracks {
		out = append(out, fragment(uint32(seq+1), t)...)
	}
	return out
}

func fragment(seq uint32, t Track) []byte {
	flags := uint32(0x01 | 0x200 | 0x400)
	build := func(dataOffset uint32) []byte {
		var entries []byte
		for i, s := range t.Sizes {
			entries = append(entries, U32(s)...)
			f := uint32(0x01010000)
			if i == 0 {
				f = 0x02000000
			}
			entries = append(entries, U32(f)...)
		}
		return Box("moof",
			FullBox("mfhd", 0, 0, U32(seq)),
			Box("traf",
				FullBox("tfhd", 0, 0x020008, U32(t.ID), U32(t.Duration)),
				FullBox("tfdt", 1, 0, U64(uint64(seq-1)*1000)),
				FullBox("trun", 0, flags, U32(uint32(len(t.Sizes))), U32(dataOffset), entries)))
	}
	moof := build(0)
	moof = build(uint32(len(moof) + 8))
	return append(moof, Box("mdat", Zeros(t.total()))...)
}

// AVC1 is a visual sample entry with an avcC record.
func AVC1(width, height uint16) []byte {
	return Box("avc1",
		Zeros(6), U16(1), Zeros(16),
		U16(width), U16(height),
		U32(0x480000), U32(0x480000), Zeros(4), U16(1),
		Zeros(32), U16(0x18), U16(0xffff),
		Box("avcC", []byte{1, 0x64, 0, 0x28, 0xff, 0xe0, 0}))
}

func audioEntry(tag string, channels uint16, rate uint32, boxes ...[]byte) []byte {
	return Box(tag, append([][]byte{
		Zeros(6), U16(1), Zeros(8),
		U16(channels), U16(16), Zeros(4), U32(rate << 16),
	}, boxes...)...)
}

// Opus is an Opus sample entry carrying a dOps box.
func Opus(channels uint16, dOpsChannels uint8, rate uint32) []byte {
	dops := Box("dOps", []byte{0, dOpsChannels}, U16(312), U32(rate), U16(0), []byte{0})
	return audioEntry("Opus", channels, rate, dops)
}

// MP4A is an AAC sample entry with an esds descriptor.
func MP4A(channels uint16, rate uint32) []byte {
	asc := []byte{0x12, 0x10}
	dsi := append([]byte{0x05, byte(len(asc))}, asc...)
	dcd := append([]byte{0x04, byte(13 + len(dsi)), 0x40, 0x15, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, dsi...)
	es := append([]byte{0x03, byte(3 + len(dcd)), 0, 1, 0}, dcd...)
	return audioEntry("mp4a", channels, rate, FullBox("esds", 0, 0, es))
}

// Float64 is an IEEE 754 double in big-endian order.
func Float64(v float64) []byte {
	return U64(math.Float64bits(v))
}
