package esio

import (
	"fmt"

	"github.com/deepch/mediaparser/utils/bits/pio"
)

type DecoderConfigDescriptor struct {
	ObjectType ObjectType
	StreamType StreamType
	BufferSize uint32
	MaxBitrate uint32
	AvgBitrate uint32

	// DecoderSpecific is the DecoderSpecificInfo payload, an
	// AudioSpecificConfig for AAC.
	DecoderSpecific []byte
}

type ObjectType uint8

// ISO/IEC 14496-1 7.2.6.6.2 Table 5
const (
	ObjectTypeVisual     = ObjectType(0x20)
	ObjectTypeAudio      = ObjectType(0x40)
	ObjectTypeMPEG2AAC   = ObjectType(0x67)
	ObjectTypeMPEG2Audio = ObjectType(0x69)
	ObjectTypeMPEG1Audio = ObjectType(0x6b)
)

type StreamType uint8

// ISO/IEC 14496-1 7.2.6.6.2 Table 6
const (
	StreamTypeVisualStream = StreamType(0x04)
	StreamTypeAudioStream  = StreamType(0x05)
)

func parseDecoderConfig(d []byte) (*DecoderConfigDescriptor, error) {
	if len(d) < 13 {
		return nil, fmt.Errorf("DecoderConfigDescriptor: %w", ErrShortDescriptor)
	}
	conf := &DecoderConfigDescriptor{
		ObjectType: ObjectType(d[0]),
		StreamType: StreamType(d[1] >> 2),
		BufferSize: pio.U24BE(d[2:]),
		MaxBitrate: pio.U32BE(d[5:]),
		AvgBitrate: pio.U32BE(d[9:]),
	}
	d = d[13:]
	for len(d) > 0 {
		tag, contents, remainder, err := parseHeader(d)
		if err != nil {
			return nil, fmt.Errorf("DecoderConfigDescriptor: %w", err)
		}
		d = remainder
		if tag == TagDecoderSpecificInfo {
			conf.DecoderSpecific = append([]byte(nil), contents...)
		}
	}
	return conf, nil
}
