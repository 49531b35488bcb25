// Package opusparser reads Opus stream headers and packet durations.
package opusparser

import (
	"errors"
	"time"

	"github.com/deepch/mediaparser/utils/bits/pio"
)

var ErrShortHead = errors.New("opus header too short")

// Head is an identification header. It comes from a Matroska CodecPrivate
// (an OpusHead packet, little endian) or an ISOBMFF dOps box (big endian,
// no magic).
type Head struct {
	Version         uint8
	Channels        int
	PreSkip         uint16
	InputSampleRate uint32
	OutputGain      int16
	MappingFamily   uint8
}

// SampleRate is the decoding rate, which is always 48 kHz for Opus.
func (h Head) SampleRate() int {
	return 48000
}

const opusHeadMagic = "OpusHead"

// ParseHead decodes an OpusHead packet.
func ParseHead(b []byte) (h Head, err error) {
	if len(b) < 19 || string(b[:8]) != opusHeadMagic {
		err = ErrShortHead
		return
	}
	h.Version = b[8]
	h.Channels = int(b[9])
	h.PreSkip = uint16(b[10]) | uint16(b[11])<<8
	h.InputSampleRate = uint32(b[12]) | uint32(b[13])<<8 | uint32(b[14])<<16 | uint32(b[15])<<24
	h.OutputGain = int16(uint16(b[16]) | uint16(b[17])<<8)
	h.MappingFamily = b[18]
	return
}

// ParseDOps decodes the payload of an Opus specific box.
func ParseDOps(b []byte) (h Head, err error) {
	if len(b) < 11 {
		err = ErrShortHead
		return
	}
	h.Version = b[0]
	h.Channels = int(b[1])
	h.PreSkip = pio.U16BE(b[2:])
	h.InputSampleRate = pio.U32BE(b[4:])
	h.OutputGain = pio.I16BE(b[8:])
	h.MappingFamily = b[10]
	return
}

func Channels(pkt []byte) int {
	if len(pkt) > 0 && (pkt[0]&0x4) == 0 {
		return 1
	}
	return 2
}

func PacketDuration(pkt []byte) (time.Duration, error) {
	if len(pkt) < 1 {
		return 0, errors.New("empty opus packet")
	}
	toc := pkt[0]
	config := toc >> 3
	//stereo := (toc & 0x4) != 0
	code := toc & 0x3
	numFr := 0
	switch code {
	case 0:
		// one frame
		if len(pkt) > 1 {
			numFr = 1
		}
	case 1, 2:
		// two frames
		if len(pkt) > 2 {
			numFr = 2
		}
	case 3:
		// N frames
		if len(pkt) < 2 {
			return 0, errors.New("invalid opus packet")
		}
		numFr = int(pkt[1] & 0x3f)
	}
	return time.Duration(numFr) * opusFrameTimes[config], nil
}

var opusFrameTimes = []time.Duration{
	// SILK NB
	10 * time.Millisecond,
	20 * time.Millisecond,
	40 * time.Millisecond,
	60 * time.Millisecond,
	// SILK MB
	10 * time.Millisecond,
	20 * time.Millisecond,
	40 * time.Millisecond,
	60 * time.Millisecond,
	// SILK WB
	10 * time.Millisecond,
	20 * time.Millisecond,
	40 * time.Millisecond,
	60 * time.Millisecond,
	// Hybrid SWB
	10 * time.Millisecond,
	20 * time.Millisecond,
	// Hybrid FB
	10 * time.Millisecond,
	20 * time.Millisecond,
	// CELT NB
	2500 * time.Microsecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	20 * time.Millisecond,
	// CELT WB
	2500 * time.Microsecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	20 * time.Millisecond,
	// CELT SWB
	2500 * time.Microsecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	20 * time.Millisecond,
	// CELT FB
	2500 * time.Microsecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	20 * time.Millisecond,
}
