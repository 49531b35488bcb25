// Package esio reads the MPEG-4 elementary stream descriptors carried in
// an esds box.
package esio

import (
	"errors"
	"fmt"

	"github.com/deepch/mediaparser/utils/bits/pio"
)

type StreamDescriptor struct {
	ESID      uint16
	DependsOn *uint16
	URL       *string
	OCR       *uint16

	DecoderConfig *DecoderConfigDescriptor
}

// Tag identifies element stream descriptor types
type Tag uint8

// ISO/IEC 14496-1:2004 7.2.2 Table 1
const (
	TagForbidden = Tag(iota)
	TagObjectDescriptor
	TagInitialObjectDescriptor
	TagESDescriptor
	TagDecoderConfigDescriptor
	TagDecoderSpecificInfo
	TagSLConfigDescriptor
)

const (
	esFlagStreamDependence = 0x80
	esFlagURL              = 0x40
	esFlagOCR              = 0x20
)

var ErrShortDescriptor = errors.New("short descriptor")

func ParseStreamDescriptor(start []byte) (desc *StreamDescriptor, remainder []byte, err error) {
	// ISO/IEC 14496-1:2004 7.2.6.5.1
	tag, d, remainder, err := parseHeader(start)
	if err != nil {
		err = fmt.Errorf("ES_Descriptor: %w", err)
		return
	} else if tag != TagESDescriptor {
		err = fmt.Errorf("expected ES_Descriptor but got tag %02X", tag)
		return
	}
	if len(d) < 3 {
		err = fmt.Errorf("ES_Descriptor: %w", ErrShortDescriptor)
		return
	}
	desc = &StreamDescriptor{ESID: pio.U16BE(d)}
	flags := d[2]
	d = d[3:]
	if flags&esFlagStreamDependence != 0 {
		if len(d) < 2 {
			err = fmt.Errorf("ES_Descriptor: %w", ErrShortDescriptor)
			return
		}
		v := pio.U16BE(d)
		desc.DependsOn = &v
		d = d[2:]
	}
	if flags&esFlagURL != 0 {
		if len(d) < 1 || len(d) < 1+int(d[0]) {
			err = fmt.Errorf("ES_Descriptor: %w", ErrShortDescriptor)
			return
		}
		urlLength := d[0]
		v := string(d[1 : 1+urlLength])
		desc.URL = &v
		d = d[1+urlLength:]
	}
	if flags&esFlagOCR != 0 {
		if len(d) < 2 {
			err = fmt.Errorf("ES_Descriptor: %w", ErrShortDescriptor)
			return
		}
		v := pio.U16BE(d)
		desc.OCR = &v
		d = d[2:]
	}
	for len(d) > 0 {
		var child []byte
		tag, child, d, err = parseHeader(d)
		if err != nil {
			err = fmt.Errorf("ES_Descriptor: %w", err)
			return
		}
		if tag == TagDecoderConfigDescriptor {
			if desc.DecoderConfig, err = parseDecoderConfig(child); err != nil {
				return
			}
		}
	}
	return
}

func parseLength(start []byte) (length int, d []byte, err error) {
	// ISO/IEC 14496-1:2004 8.3.3
	d = start
	for i := 0; i < 4; i++ {
		if len(d) == 0 {
			err = ErrShortDescriptor
			return
		}
		v := d[0]
		d = d[1:]
		length <<= 7
		length |= int(v & 0x7f)
		if v&0x80 == 0 {
			break
		}
	}
	return
}

func parseHeader(start []byte) (tag Tag, contents, d []byte, err error) {
	d = start
	if len(d) < 2 {
		err = ErrShortDescriptor
		return
	}
	tag = Tag(d[0])
	length, d, err := parseLength(d[1:])
	if err != nil {
		return
	}
	if length > len(d) {
		err = fmt.Errorf("%w: %02x: expected %d bytes but only got %d", ErrShortDescriptor, tag, length, len(d))
		return
	}
	contents = d[:length]
	d = d[length:]
	return
}
