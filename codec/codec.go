// Package codec identifies the codec carried by a track from its
// container-level codec tag.
package codec

import "strings"

type Type uint32

const (
	Unknown Type = iota
	H264
	H265
	VP8
	VP9
	AV1
	MPEG4Video
	AAC
	OPUS
	MP3
	AC3
	EAC3
	FLAC
	VORBIS
	ALAC
	PCM
	PCM_MULAW
	PCM_ALAW
)

var names = map[Type]string{
	Unknown:    "unknown",
	H264:       "H264",
	H265:       "H265",
	VP8:        "VP8",
	VP9:        "VP9",
	AV1:        "AV1",
	MPEG4Video: "MPEG4",
	AAC:        "AAC",
	OPUS:       "OPUS",
	MP3:        "MP3",
	AC3:        "AC3",
	EAC3:       "EAC3",
	FLAC:       "FLAC",
	VORBIS:     "VORBIS",
	ALAC:       "ALAC",
	PCM:        "PCM",
	PCM_MULAW:  "PCM_MULAW",
	PCM_ALAW:   "PCM_ALAW",
}

func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "unknown"
}

func (t Type) IsVideo() bool {
	switch t {
	case H264, H265, VP8, VP9, AV1, MPEG4Video:
		return true
	}
	return false
}

func (t Type) IsAudio() bool {
	return t != Unknown && !t.IsVideo()
}

var fourccs = map[string]Type{
	"avc1": H264,
	"avc3": H264,
	"hvc1": H265,
	"hev1": H265,
	"vp08": VP8,
	"vp09": VP9,
	"av01": AV1,
	"mp4v": MPEG4Video,
	"mp4a": AAC,
	"Opus": OPUS,
	".mp3": MP3,
	"ac-3": AC3,
	"ec-3": EAC3,
	"fLaC": FLAC,
	"alac": ALAC,
	"lpcm": PCM,
	"sowt": PCM,
	"twos": PCM,
	"ulaw": PCM_MULAW,
	"alaw": PCM_ALAW,
}

// FromFourCC maps an ISOBMFF sample entry type to a codec.
func FromFourCC(fourcc string) Type {
	return fourccs[fourcc]
}

// FromObjectType maps an MPEG-4 ObjectTypeIndication, as found in an esds
// decoder config, to a codec.
func FromObjectType(oti uint8) Type {
	switch oti {
	case 0x40, 0x66, 0x67, 0x68:
		return AAC
	case 0x69, 0x6b:
		return MP3
	case 0x20:
		return MPEG4Video
	case 0x21:
		return H264
	case 0x23:
		return H265
	case 0xa5:
		return AC3
	case 0xa6:
		return EAC3
	case 0xad:
		return OPUS
	}
	return Unknown
}

var matroskaIDs = map[string]Type{
	"V_MPEG4/ISO/AVC":  H264,
	"V_MPEGH/ISO/HEVC": H265,
	"V_VP8":            VP8,
	"V_VP9":            VP9,
	"V_AV1":            AV1,
	"A_OPUS":           OPUS,
	"A_VORBIS":         VORBIS,
	"A_FLAC":           FLAC,
	"A_MPEG/L3":        MP3,
	"A_AC3":            AC3,
	"A_EAC3":           EAC3,
	"A_ALAC":           ALAC,
	"A_PCM/INT/LIT":    PCM,
	"A_PCM/INT/BIG":    PCM,
	"A_PCM/FLOAT/IEEE": PCM,
}

// FromMatroska maps a Matroska CodecID to a codec. AAC and MPEG-4 Part 2
// ids carry a profile suffix and are matched by prefix.
func FromMatroska(codecID string) Type {
	if t, ok := matroskaIDs[codecID]; ok {
		return t
	}
	switch {
	case strings.HasPrefix(codecID, "A_AAC"):
		return AAC
	case strings.HasPrefix(codecID, "V_MPEG4/ISO/"):
		return MPEG4Video
	}
	return Unknown
}
