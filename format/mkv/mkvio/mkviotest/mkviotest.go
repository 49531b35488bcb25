// Package mkviotest builds small Matroska and WebM files for tests.
package mkviotest

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/deepch/mediaparser/format/mediaio"
)

func id(v uint32) []byte {
	switch {
	case v >= 1<<24:
		return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
	case v >= 1<<16:
		return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
	case v >= 1<<8:
		return []byte{byte(v >> 8), byte(v)}
	}
	return []byte{byte(v)}
}

// Element encodes id, a shortest-width size and payload.
func Element(elementID uint32, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	b := mediaio.AppendEBMLVint(id(elementID), uint64(len(body)))
	return append(b, body...)
}

// UnknownSize encodes an element whose size is the reserved all-ones value.
func UnknownSize(elementID uint32, payload ...[]byte) []byte {
	b := append(id(elementID), mediaio.UnknownVint(8)...)
	return append(b, bytes.Join(payload, nil)...)
}

func Uint(elementID uint32, v uint64) []byte {
	var b []byte
	for v > 0 || len(b) == 0 {
		b = append([]byte{byte(v)}, b...)
		v >>= 8
	}
	return Element(elementID, b)
}

func Float(elementID uint32, v float64) []byte {
	return Element(elementID, binary.BigEndian.AppendUint64(nil, math.Float64bits(v)))
}

func String(elementID uint32, s string) []byte {
	return Element(elementID, []byte(s))
}

// Header is an EBML header. A "webm" doc type gives a 31-byte body and
// "matroska" a 35-byte one.
func Header(docType string) []byte {
	return Element(0x1a45dfa3,
		Uint(0x4286, 1), Uint(0x42f7, 1), Uint(0x42f2, 4), Uint(0x42f3, 8),
		String(0x4282, docType), Uint(0x4287, 4), Uint(0x4285, 2))
}

// HeaderWithLength is an EBML header declaring bodyLen and carrying that
// many zero bytes.
func HeaderWithLength(bodyLen int) []byte {
	return Element(0x1a45dfa3, make([]byte, bodyLen))
}

type Frame struct {
	Timecode int16
	Size     int
	Keyframe bool
}

type Track struct {
	Number       uint64
	Type         uint64
	CodecID      string
	CodecPrivate []byte
	Width        uint64
	Height       uint64
	SampleRate   float64
	Channels     uint64
	BitDepth     uint64
	Frames       []Frame
}

func (t Track) entry() []byte {
	fields := [][]byte{Uint(0xd7, t.Number), Uint(0x73c5, t.Number), Uint(0x83, t.Type), String(0x86, t.CodecID)}
	if t.CodecPrivate != nil {
		fields = append(fields, Element(0x63a2, t.CodecPrivate))
	}
	switch t.Type {
	case 1:
		fields = append(fields, Element(0xe0, Uint(0xb0, t.Width), Uint(0xba, t.Height)))
	case 2:
		var audio [][]byte
		if t.SampleRate != 0 {
			audio = append(audio, Float(0xb5, t.SampleRate))
		}
		if t.Channels != 0 {
			audio = append(audio, Uint(0x9f, t.Channels))
		}
		if t.BitDepth != 0 {
			audio = append(audio, Uint(0x6264, t.BitDepth))
		}
		fields = append(fields, Element(0xe1, audio...))
	}
	return Element(0xae, fields...)
}

// SimpleBlock is an unlaced SimpleBlock whose frame bytes are all fill.
func SimpleBlock(track uint64, timecode int16, keyframe bool, size int, fill byte) []byte {
	var flags byte
	if keyframe {
		flags = 0x80
	}
	b := mediaio.AppendEBMLVint(nil, track)
	b = append(b, byte(uint16(timecode)>>8), byte(timecode), flags)
	return Element(0xa3, b, bytes.Repeat([]byte{fill}, size))
}

func info(timecodeScale uint64, duration float64) []byte {
	return Element(0x1549a966,
		Uint(0x2ad7b1, timecodeScale), Float(0x4489, duration),
		String(0x4d80, "mkviotest"), String(0x5741, "mkviotest"))
}

func cluster(timecode uint64, tracks []Track) [][]byte {
	out := [][]byte{Uint(0xe7, timecode)}
	for _, t := range tracks {
		for i, f := range t.Frames {
			out = append(out, SimpleBlock(t.Number, f.Timecode, f.Keyframe, f.Size, byte(i+1)))
		}
	}
	return out
}

func segmentBody(timecodeScale uint64, tracks []Track) [][]byte {
	var entries [][]byte
	for _, t := range tracks {
		entries = append(entries, t.entry())
	}
	return [][]byte{
		info(timecodeScale, 1000),
		Element(0x1654ae6b, entries...),
	}
}

// File is a WebM file with one sized Segment holding Info, Tracks and a
// single Cluster at timecode 0.
func File(timecodeScale uint64, tracks ...Track) []byte {
	body := segmentBody(timecodeScale, tracks)
	body = append(body, Element(0x1f43b675, cluster(0, tracks)...))
	return append(Header("webm"), Element(0x18538067, body...)...)
}

// LiveFile is File with an unknown-size Segment and two unknown-size
// Clusters at timecodes 0 and 1000, as written by live muxers.
func LiveFile(timecodeScale uint64, tracks ...Track) []byte {
	body := segmentBody(timecodeScale, tracks)
	body = append(body, UnknownSize(0x1f43b675, cluster(0, tracks)...))
	body = append(body, UnknownSize(0x1f43b675, cluster(1000, tracks)...))
	return append(Header("webm"), UnknownSize(0x18538067, body...)...)
}
