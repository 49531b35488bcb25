package mp4io

const (
	FTYP = Tag(0x66747970)
	STYP = Tag(0x73747970)
	MOOV = Tag(0x6d6f6f76)
	MVHD = Tag(0x6d766864)
	TRAK = Tag(0x7472616b)
	TKHD = Tag(0x746b6864)
	EDTS = Tag(0x65647473)
	ELST = Tag(0x656c7374)
	MDIA = Tag(0x6d646961)
	MDHD = Tag(0x6d646864)
	HDLR = Tag(0x68646c72)
	MINF = Tag(0x6d696e66)
	VMHD = Tag(0x766d6864)
	SMHD = Tag(0x736d6864)
	DINF = Tag(0x64696e66)
	STBL = Tag(0x7374626c)
	STSD = Tag(0x73747364)
	STTS = Tag(0x73747473)
	CTTS = Tag(0x63747473)
	STSC = Tag(0x73747363)
	STSZ = Tag(0x7374737a)
	STCO = Tag(0x7374636f)
	CO64 = Tag(0x636f3634)
	STSS = Tag(0x73747373)
	UDTA = Tag(0x75647461)
	MVEX = Tag(0x6d766578)
	TREX = Tag(0x74726578)
	MOOF = Tag(0x6d6f6f66)
	MFHD = Tag(0x6d666864)
	TRAF = Tag(0x74726166)
	TFHD = Tag(0x74666864)
	TFDT = Tag(0x74666474)
	TRUN = Tag(0x7472756e)
	MFRA = Tag(0x6d667261)
	MDAT = Tag(0x6d646174)
	FREE = Tag(0x66726565)
	SKIP = Tag(0x736b6970)
	WIDE = Tag(0x77696465)
	SIDX = Tag(0x73696478)
	PDIN = Tag(0x7064696e)
)

// sample entries
const (
	AVC1 = Tag(0x61766331)
	AVC3 = Tag(0x61766333)
	HVC1 = Tag(0x68766331)
	HEV1 = Tag(0x68657631)
	VP08 = Tag(0x76703038)
	VP09 = Tag(0x76703039)
	AV01 = Tag(0x61763031)
	MP4V = Tag(0x6d703476)

	MP4A   = Tag(0x6d703461)
	OPUS   = Tag(0x4f707573)
	AC3    = Tag(0x61632d33)
	EC3    = Tag(0x65632d33)
	FLAC   = Tag(0x664c6143)
	ALAC   = Tag(0x616c6163)
	DOTMP3 = Tag(0x2e6d7033)
	LPCM   = Tag(0x6c70636d)
	SOWT   = Tag(0x736f7774)
	TWOS   = Tag(0x74776f73)
	ULAW   = Tag(0x756c6177)
	ALAW   = Tag(0x616c6177)
)

// codec configuration boxes
const (
	AVCC = Tag(0x61766343)
	HVCC = Tag(0x68766343)
	AV1C = Tag(0x61763143)
	VPCC = Tag(0x76706343)
	DOPS = Tag(0x644f7073)
	DAC3 = Tag(0x64616333)
	DEC3 = Tag(0x64656333)
	DFLA = Tag(0x64664c61)
	ESDS = Tag(0x65736473)
	PASP = Tag(0x70617370)
	BTRT = Tag(0x62747274)
)

var containerTags = map[Tag]bool{
	MOOV: true, TRAK: true, EDTS: true, MDIA: true, MINF: true, DINF: true,
	STBL: true, UDTA: true, MVEX: true, MOOF: true, TRAF: true, MFRA: true,
}

var visualEntryTags = map[Tag]bool{
	AVC1: true, AVC3: true, HVC1: true, HEV1: true,
	VP08: true, VP09: true, AV01: true, MP4V: true,
}

var audioEntryTags = map[Tag]bool{
	MP4A: true, OPUS: true, AC3: true, EC3: true, FLAC: true, ALAC: true,
	DOTMP3: true, LPCM: true, SOWT: true, TWOS: true, ULAW: true, ALAW: true,
}

var configTags = map[Tag]bool{
	AVCC: true, HVCC: true, AV1C: true, VPCC: true,
	DOPS: true, DAC3: true, DEC3: true, DFLA: true,
}

// IsContainer reports whether boxes tagged t are parsed into children.
// Sample entries are containers too, but only inside stsd.
func IsContainer(t Tag) bool {
	return containerTags[t] || t == STSD
}

// IsVisualSampleEntry reports whether t is a video sample entry format.
func IsVisualSampleEntry(t Tag) bool {
	return visualEntryTags[t]
}

// IsAudioSampleEntry reports whether t is an audio sample entry format.
func IsAudioSampleEntry(t Tag) bool {
	return audioEntryTags[t]
}

// IsTopLevelTag reports whether t commonly starts an ISOBMFF file.
func IsTopLevelTag(t Tag) bool {
	switch t {
	case FTYP, STYP, MOOV, MDAT, FREE, SKIP, WIDE, MOOF, SIDX, PDIN:
		return true
	}
	return false
}
