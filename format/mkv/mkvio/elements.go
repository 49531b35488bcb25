package mkvio

// Element types, as listed in the Matroska element specification.
const (
	ElementTypeUnknown uint8 = iota
	ElementTypeMaster
	ElementTypeUint
	ElementTypeInt
	ElementTypeString
	ElementTypeUnicode
	ElementTypeBinary
	ElementTypeFloat
	ElementTypeDate
)

// ElementUnknown is returned by GetElementRegister for ids missing from the
// table.
var ElementUnknown = ElementRegister{Name: "Unknown"}

var (
	ElementEBML                        = ElementRegister{ID: 0x1a45dfa3, Type: ElementTypeMaster, Name: "EBML"}
	ElementEBMLVersion                 = ElementRegister{ID: 0x4286, Type: ElementTypeUint, Name: "EBMLVersion"}
	ElementEBMLReadVersion             = ElementRegister{ID: 0x42f7, Type: ElementTypeUint, Name: "EBMLReadVersion"}
	ElementEBMLMaxIDLength             = ElementRegister{ID: 0x42f2, Type: ElementTypeUint, Name: "EBMLMaxIDLength"}
	ElementEBMLMaxSizeLength           = ElementRegister{ID: 0x42f3, Type: ElementTypeUint, Name: "EBMLMaxSizeLength"}
	ElementDocType                     = ElementRegister{ID: 0x4282, Type: ElementTypeString, Name: "DocType"}
	ElementDocTypeVersion              = ElementRegister{ID: 0x4287, Type: ElementTypeUint, Name: "DocTypeVersion"}
	ElementDocTypeReadVersion          = ElementRegister{ID: 0x4285, Type: ElementTypeUint, Name: "DocTypeReadVersion"}
	ElementVoid                        = ElementRegister{ID: 0xec, Type: ElementTypeBinary, Name: "Void"}
	ElementCRC32                       = ElementRegister{ID: 0xbf, Type: ElementTypeBinary, Name: "CRC-32"}
	ElementSegment                     = ElementRegister{ID: 0x18538067, Type: ElementTypeMaster, Name: "Segment"}
	ElementSeekHead                    = ElementRegister{ID: 0x114d9b74, Type: ElementTypeMaster, Name: "SeekHead"}
	ElementSeek                        = ElementRegister{ID: 0x4dbb, Type: ElementTypeMaster, Name: "Seek"}
	ElementSeekID                      = ElementRegister{ID: 0x53ab, Type: ElementTypeBinary, Name: "SeekID"}
	ElementSeekPosition                = ElementRegister{ID: 0x53ac, Type: ElementTypeUint, Name: "SeekPosition"}
	ElementInfo                        = ElementRegister{ID: 0x1549a966, Type: ElementTypeMaster, Name: "Info"}
	ElementSegmentUID                  = ElementRegister{ID: 0x73a4, Type: ElementTypeBinary, Name: "SegmentUID"}
	ElementSegmentFilename             = ElementRegister{ID: 0x7384, Type: ElementTypeUnicode, Name: "SegmentFilename"}
	ElementPrevUID                     = ElementRegister{ID: 0x3cb923, Type: ElementTypeBinary, Name: "PrevUID"}
	ElementPrevFilename                = ElementRegister{ID: 0x3c83ab, Type: ElementTypeUnicode, Name: "PrevFilename"}
	ElementNextUID                     = ElementRegister{ID: 0x3eb923, Type: ElementTypeBinary, Name: "NextUID"}
	ElementNextFilename                = ElementRegister{ID: 0x3e83bb, Type: ElementTypeUnicode, Name: "NextFilename"}
	ElementSegmentFamily               = ElementRegister{ID: 0x4444, Type: ElementTypeBinary, Name: "SegmentFamily"}
	ElementChapterTranslate            = ElementRegister{ID: 0x6924, Type: ElementTypeMaster, Name: "ChapterTranslate"}
	ElementChapterTranslateEditionUID  = ElementRegister{ID: 0x69fc, Type: ElementTypeUint, Name: "ChapterTranslateEditionUID"}
	ElementChapterTranslateCodec       = ElementRegister{ID: 0x69bf, Type: ElementTypeUint, Name: "ChapterTranslateCodec"}
	ElementChapterTranslateID          = ElementRegister{ID: 0x69a5, Type: ElementTypeBinary, Name: "ChapterTranslateID"}
	ElementTimecodeScale               = ElementRegister{ID: 0x2ad7b1, Type: ElementTypeUint, Name: "TimecodeScale"}
	ElementDuration                    = ElementRegister{ID: 0x4489, Type: ElementTypeFloat, Name: "Duration"}
	ElementDateUTC                     = ElementRegister{ID: 0x4461, Type: ElementTypeDate, Name: "DateUTC"}
	ElementTitle                       = ElementRegister{ID: 0x7ba9, Type: ElementTypeUnicode, Name: "Title"}
	ElementMuxingApp                   = ElementRegister{ID: 0x4d80, Type: ElementTypeUnicode, Name: "MuxingApp"}
	ElementWritingApp                  = ElementRegister{ID: 0x5741, Type: ElementTypeUnicode, Name: "WritingApp"}
	ElementCluster                     = ElementRegister{ID: 0x1f43b675, Type: ElementTypeMaster, Name: "Cluster"}
	ElementTimecode                    = ElementRegister{ID: 0xe7, Type: ElementTypeUint, Name: "Timecode"}
	ElementSilentTracks                = ElementRegister{ID: 0x5854, Type: ElementTypeMaster, Name: "SilentTracks"}
	ElementSilentTrackNumber           = ElementRegister{ID: 0x58d7, Type: ElementTypeUint, Name: "SilentTrackNumber"}
	ElementPosition                    = ElementRegister{ID: 0xa7, Type: ElementTypeUint, Name: "Position"}
	ElementPrevSize                    = ElementRegister{ID: 0xab, Type: ElementTypeUint, Name: "PrevSize"}
	ElementSimpleBlock                 = ElementRegister{ID: 0xa3, Type: ElementTypeBinary, Name: "SimpleBlock"}
	ElementBlockGroup                  = ElementRegister{ID: 0xa0, Type: ElementTypeMaster, Name: "BlockGroup"}
	ElementBlock                       = ElementRegister{ID: 0xa1, Type: ElementTypeBinary, Name: "Block"}
	ElementBlockAdditions              = ElementRegister{ID: 0x75a1, Type: ElementTypeMaster, Name: "BlockAdditions"}
	ElementBlockMore                   = ElementRegister{ID: 0xa6, Type: ElementTypeMaster, Name: "BlockMore"}
	ElementBlockAddID                  = ElementRegister{ID: 0xee, Type: ElementTypeUint, Name: "BlockAddID"}
	ElementBlockAdditional             = ElementRegister{ID: 0xa5, Type: ElementTypeBinary, Name: "BlockAdditional"}
	ElementBlockDuration               = ElementRegister{ID: 0x9b, Type: ElementTypeUint, Name: "BlockDuration"}
	ElementReferencePriority           = ElementRegister{ID: 0xfa, Type: ElementTypeUint, Name: "ReferencePriority"}
	ElementReferenceBlock              = ElementRegister{ID: 0xfb, Type: ElementTypeInt, Name: "ReferenceBlock"}
	ElementCodecState                  = ElementRegister{ID: 0xa4, Type: ElementTypeBinary, Name: "CodecState"}
	ElementDiscardPadding              = ElementRegister{ID: 0x75a2, Type: ElementTypeInt, Name: "DiscardPadding"}
	ElementSlices                      = ElementRegister{ID: 0x8e, Type: ElementTypeMaster, Name: "Slices"}
	ElementTimeSlice                   = ElementRegister{ID: 0xe8, Type: ElementTypeMaster, Name: "TimeSlice"}
	ElementLaceNumber                  = ElementRegister{ID: 0xcc, Type: ElementTypeUint, Name: "LaceNumber"}
	ElementTracks                      = ElementRegister{ID: 0x1654ae6b, Type: ElementTypeMaster, Name: "Tracks"}
	ElementTrackEntry                  = ElementRegister{ID: 0xae, Type: ElementTypeMaster, Name: "TrackEntry"}
	ElementTrackNumber                 = ElementRegister{ID: 0xd7, Type: ElementTypeUint, Name: "TrackNumber"}
	ElementTrackUID                    = ElementRegister{ID: 0x73c5, Type: ElementTypeUint, Name: "TrackUID"}
	ElementTrackType                   = ElementRegister{ID: 0x83, Type: ElementTypeUint, Name: "TrackType"}
	ElementFlagEnabled                 = ElementRegister{ID: 0xb9, Type: ElementTypeUint, Name: "FlagEnabled"}
	ElementFlagDefault                 = ElementRegister{ID: 0x88, Type: ElementTypeUint, Name: "FlagDefault"}
	ElementFlagForced                  = ElementRegister{ID: 0x55aa, Type: ElementTypeUint, Name: "FlagForced"}
	ElementFlagLacing                  = ElementRegister{ID: 0x9c, Type: ElementTypeUint, Name: "FlagLacing"}
	ElementMinCache                    = ElementRegister{ID: 0x6de7, Type: ElementTypeUint, Name: "MinCache"}
	ElementMaxCache                    = ElementRegister{ID: 0x6df8, Type: ElementTypeUint, Name: "MaxCache"}
	ElementDefaultDuration             = ElementRegister{ID: 0x23e383, Type: ElementTypeUint, Name: "DefaultDuration"}
	ElementDefaultDecodedFieldDuration = ElementRegister{ID: 0x234e7a, Type: ElementTypeUint, Name: "DefaultDecodedFieldDuration"}
	ElementMaxBlockAdditionID          = ElementRegister{ID: 0x55ee, Type: ElementTypeUint, Name: "MaxBlockAdditionID"}
	ElementName                        = ElementRegister{ID: 0x536e, Type: ElementTypeUnicode, Name: "Name"}
	ElementLanguage                    = ElementRegister{ID: 0x22b59c, Type: ElementTypeString, Name: "Language"}
	ElementCodecID                     = ElementRegister{ID: 0x86, Type: ElementTypeString, Name: "CodecID"}
	ElementCodecPrivate                = ElementRegister{ID: 0x63a2, Type: ElementTypeBinary, Name: "CodecPrivate"}
	ElementCodecName                   = ElementRegister{ID: 0x258688, Type: ElementTypeUnicode, Name: "CodecName"}
	ElementAttachmentLink              = ElementRegister{ID: 0x7446, Type: ElementTypeUint, Name: "AttachmentLink"}
	ElementCodecDecodeAll              = ElementRegister{ID: 0xaa, Type: ElementTypeUint, Name: "CodecDecodeAll"}
	ElementTrackOverlay                = ElementRegister{ID: 0x6fab, Type: ElementTypeUint, Name: "TrackOverlay"}
	ElementCodecDelay                  = ElementRegister{ID: 0x56aa, Type: ElementTypeUint, Name: "CodecDelay"}
	ElementSeekPreRoll                 = ElementRegister{ID: 0x56bb, Type: ElementTypeUint, Name: "SeekPreRoll"}
	ElementTrackTranslate              = ElementRegister{ID: 0x6624, Type: ElementTypeMaster, Name: "TrackTranslate"}
	ElementTrackTranslateEditionUID    = ElementRegister{ID: 0x66fc, Type: ElementTypeUint, Name: "TrackTranslateEditionUID"}
	ElementTrackTranslateCodec         = ElementRegister{ID: 0x66bf, Type: ElementTypeUint, Name: "TrackTranslateCodec"}
	ElementTrackTranslateTrackID       = ElementRegister{ID: 0x66a5, Type: ElementTypeBinary, Name: "TrackTranslateTrackID"}
	ElementVideo                       = ElementRegister{ID: 0xe0, Type: ElementTypeMaster, Name: "Video"}
	ElementFlagInterlaced              = ElementRegister{ID: 0x9a, Type: ElementTypeUint, Name: "FlagInterlaced"}
	ElementStereoMode                  = ElementRegister{ID: 0x53b8, Type: ElementTypeUint, Name: "StereoMode"}
	ElementAlphaMode                   = ElementRegister{ID: 0x53c0, Type: ElementTypeUint, Name: "AlphaMode"}
	ElementPixelWidth                  = ElementRegister{ID: 0xb0, Type: ElementTypeUint, Name: "PixelWidth"}
	ElementPixelHeight                 = ElementRegister{ID: 0xba, Type: ElementTypeUint, Name: "PixelHeight"}
	ElementPixelCropBottom             = ElementRegister{ID: 0x54aa, Type: ElementTypeUint, Name: "PixelCropBottom"}
	ElementPixelCropTop                = ElementRegister{ID: 0x54bb, Type: ElementTypeUint, Name: "PixelCropTop"}
	ElementPixelCropLeft               = ElementRegister{ID: 0x54cc, Type: ElementTypeUint, Name: "PixelCropLeft"}
	ElementPixelCropRight              = ElementRegister{ID: 0x54dd, Type: ElementTypeUint, Name: "PixelCropRight"}
	ElementDisplayWidth                = ElementRegister{ID: 0x54b0, Type: ElementTypeUint, Name: "DisplayWidth"}
	ElementDisplayHeight               = ElementRegister{ID: 0x54ba, Type: ElementTypeUint, Name: "DisplayHeight"}
	ElementDisplayUnit                 = ElementRegister{ID: 0x54b2, Type: ElementTypeUint, Name: "DisplayUnit"}
	ElementAspectRatioType             = ElementRegister{ID: 0x54b3, Type: ElementTypeUint, Name: "AspectRatioType"}
	ElementColourSpace                 = ElementRegister{ID: 0x2eb524, Type: ElementTypeBinary, Name: "ColourSpace"}
	ElementAudio                       = ElementRegister{ID: 0xe1, Type: ElementTypeMaster, Name: "Audio"}
	ElementSamplingFrequency           = ElementRegister{ID: 0xb5, Type: ElementTypeFloat, Name: "SamplingFrequency"}
	ElementOutputSamplingFrequency     = ElementRegister{ID: 0x78b5, Type: ElementTypeFloat, Name: "OutputSamplingFrequency"}
	ElementChannels                    = ElementRegister{ID: 0x9f, Type: ElementTypeUint, Name: "Channels"}
	ElementBitDepth                    = ElementRegister{ID: 0x6264, Type: ElementTypeUint, Name: "BitDepth"}
	ElementTrackOperation              = ElementRegister{ID: 0xe2, Type: ElementTypeMaster, Name: "TrackOperation"}
	ElementTrackCombinePlanes          = ElementRegister{ID: 0xe3, Type: ElementTypeMaster, Name: "TrackCombinePlanes"}
	ElementTrackPlane                  = ElementRegister{ID: 0xe4, Type: ElementTypeMaster, Name: "TrackPlane"}
	ElementTrackPlaneUID               = ElementRegister{ID: 0xe5, Type: ElementTypeUint, Name: "TrackPlaneUID"}
	ElementTrackPlaneType              = ElementRegister{ID: 0xe6, Type: ElementTypeUint, Name: "TrackPlaneType"}
	ElementTrackJoinBlocks             = ElementRegister{ID: 0xe9, Type: ElementTypeMaster, Name: "TrackJoinBlocks"}
	ElementTrackJoinUID                = ElementRegister{ID: 0xed, Type: ElementTypeUint, Name: "TrackJoinUID"}
	ElementContentEncodings            = ElementRegister{ID: 0x6d80, Type: ElementTypeMaster, Name: "ContentEncodings"}
	ElementContentEncoding             = ElementRegister{ID: 0x6240, Type: ElementTypeMaster, Name: "ContentEncoding"}
	ElementContentEncodingOrder        = ElementRegister{ID: 0x5031, Type: ElementTypeUint, Name: "ContentEncodingOrder"}
	ElementContentEncodingScope        = ElementRegister{ID: 0x5032, Type: ElementTypeUint, Name: "ContentEncodingScope"}
	ElementContentEncodingType         = ElementRegister{ID: 0x5033, Type: ElementTypeUint, Name: "ContentEncodingType"}
	ElementContentCompression          = ElementRegister{ID: 0x5034, Type: ElementTypeMaster, Name: "ContentCompression"}
	ElementContentCompAlgo             = ElementRegister{ID: 0x4254, Type: ElementTypeUint, Name: "ContentCompAlgo"}
	ElementContentCompSettings         = ElementRegister{ID: 0x4255, Type: ElementTypeBinary, Name: "ContentCompSettings"}
	ElementContentEncryption           = ElementRegister{ID: 0x5035, Type: ElementTypeMaster, Name: "ContentEncryption"}
	ElementContentEncAlgo              = ElementRegister{ID: 0x47e1, Type: ElementTypeUint, Name: "ContentEncAlgo"}
	ElementContentEncKeyID             = ElementRegister{ID: 0x47e2, Type: ElementTypeBinary, Name: "ContentEncKeyID"}
	ElementContentSignature            = ElementRegister{ID: 0x47e3, Type: ElementTypeBinary, Name: "ContentSignature"}
	ElementContentSigKeyID             = ElementRegister{ID: 0x47e4, Type: ElementTypeBinary, Name: "ContentSigKeyID"}
	ElementContentSigAlgo              = ElementRegister{ID: 0x47e5, Type: ElementTypeUint, Name: "ContentSigAlgo"}
	ElementContentSigHashAlgo          = ElementRegister{ID: 0x47e6, Type: ElementTypeUint, Name: "ContentSigHashAlgo"}
	ElementCues                        = ElementRegister{ID: 0x1c53bb6b, Type: ElementTypeMaster, Name: "Cues"}
	ElementCuePoint                    = ElementRegister{ID: 0xbb, Type: ElementTypeMaster, Name: "CuePoint"}
	ElementCueTime                     = ElementRegister{ID: 0xb3, Type: ElementTypeUint, Name: "CueTime"}
	ElementCueTrackPositions           = ElementRegister{ID: 0xb7, Type: ElementTypeMaster, Name: "CueTrackPositions"}
	ElementCueTrack                    = ElementRegister{ID: 0xf7, Type: ElementTypeUint, Name: "CueTrack"}
	ElementCueClusterPosition          = ElementRegister{ID: 0xf1, Type: ElementTypeUint, Name: "CueClusterPosition"}
	ElementCueRelativePosition         = ElementRegister{ID: 0xf0, Type: ElementTypeUint, Name: "CueRelativePosition"}
	ElementCueDuration                 = ElementRegister{ID: 0xb2, Type: ElementTypeUint, Name: "CueDuration"}
	ElementCueBlockNumber              = ElementRegister{ID: 0x5378, Type: ElementTypeUint, Name: "CueBlockNumber"}
	ElementCueCodecState               = ElementRegister{ID: 0xea, Type: ElementTypeUint, Name: "CueCodecState"}
	ElementCueReference                = ElementRegister{ID: 0xdb, Type: ElementTypeMaster, Name: "CueReference"}
	ElementCueRefTime                  = ElementRegister{ID: 0x96, Type: ElementTypeUint, Name: "CueRefTime"}
	ElementAttachments                 = ElementRegister{ID: 0x1941a469, Type: ElementTypeMaster, Name: "Attachments"}
	ElementAttachedFile                = ElementRegister{ID: 0x61a7, Type: ElementTypeMaster, Name: "AttachedFile"}
	ElementFileDescription             = ElementRegister{ID: 0x467e, Type: ElementTypeUnicode, Name: "FileDescription"}
	ElementFileName                    = ElementRegister{ID: 0x466e, Type: ElementTypeUnicode, Name: "FileName"}
	ElementFileMimeType                = ElementRegister{ID: 0x6460, Type: ElementTypeString, Name: "FileMimeType"}
	ElementFileData                    = ElementRegister{ID: 0x465c, Type: ElementTypeBinary, Name: "FileData"}
	ElementFileUID                     = ElementRegister{ID: 0x46ae, Type: ElementTypeUint, Name: "FileUID"}
	ElementChapters                    = ElementRegister{ID: 0x1043a770, Type: ElementTypeMaster, Name: "Chapters"}
	ElementEditionEntry                = ElementRegister{ID: 0x45b9, Type: ElementTypeMaster, Name: "EditionEntry"}
	ElementEditionUID                  = ElementRegister{ID: 0x45bc, Type: ElementTypeUint, Name: "EditionUID"}
	ElementEditionFlagHidden           = ElementRegister{ID: 0x45bd, Type: ElementTypeUint, Name: "EditionFlagHidden"}
	ElementEditionFlagDefault          = ElementRegister{ID: 0x45db, Type: ElementTypeUint, Name: "EditionFlagDefault"}
	ElementEditionFlagOrdered          = ElementRegister{ID: 0x45dd, Type: ElementTypeUint, Name: "EditionFlagOrdered"}
	ElementChapterAtom                 = ElementRegister{ID: 0xb6, Type: ElementTypeMaster, Name: "ChapterAtom"}
	ElementChapterUID                  = ElementRegister{ID: 0x73c4, Type: ElementTypeUint, Name: "ChapterUID"}
	ElementChapterStringUID            = ElementRegister{ID: 0x5654, Type: ElementTypeUnicode, Name: "ChapterStringUID"}
	ElementChapterTimeStart            = ElementRegister{ID: 0x91, Type: ElementTypeUint, Name: "ChapterTimeStart"}
	ElementChapterTimeEnd              = ElementRegister{ID: 0x92, Type: ElementTypeUint, Name: "ChapterTimeEnd"}
	ElementChapterFlagHidden           = ElementRegister{ID: 0x98, Type: ElementTypeUint, Name: "ChapterFlagHidden"}
	ElementChapterFlagEnabled          = ElementRegister{ID: 0x4598, Type: ElementTypeUint, Name: "ChapterFlagEnabled"}
	ElementChapterSegmentUID           = ElementRegister{ID: 0x6e67, Type: ElementTypeBinary, Name: "ChapterSegmentUID"}
	ElementChapterSegmentEditionUID    = ElementRegister{ID: 0x6ebc, Type: ElementTypeUint, Name: "ChapterSegmentEditionUID"}
	ElementChapterPhysicalEquiv        = ElementRegister{ID: 0x63c3, Type: ElementTypeUint, Name: "ChapterPhysicalEquiv"}
	ElementChapterTrack                = ElementRegister{ID: 0x8f, Type: ElementTypeMaster, Name: "ChapterTrack"}
	ElementChapterTrackNumber          = ElementRegister{ID: 0x89, Type: ElementTypeUint, Name: "ChapterTrackNumber"}
	ElementChapterDisplay              = ElementRegister{ID: 0x80, Type: ElementTypeMaster, Name: "ChapterDisplay"}
	ElementChapString                  = ElementRegister{ID: 0x85, Type: ElementTypeUnicode, Name: "ChapString"}
	ElementChapLanguage                = ElementRegister{ID: 0x437c, Type: ElementTypeString, Name: "ChapLanguage"}
	ElementChapCountry                 = ElementRegister{ID: 0x437e, Type: ElementTypeString, Name: "ChapCountry"}
	ElementChapProcess                 = ElementRegister{ID: 0x6944, Type: ElementTypeMaster, Name: "ChapProcess"}
	ElementChapProcessCodecID          = ElementRegister{ID: 0x6955, Type: ElementTypeUint, Name: "ChapProcessCodecID"}
	ElementChapProcessPrivate          = ElementRegister{ID: 0x450d, Type: ElementTypeBinary, Name: "ChapProcessPrivate"}
	ElementChapProcessCommand          = ElementRegister{ID: 0x6911, Type: ElementTypeMaster, Name: "ChapProcessCommand"}
	ElementChapProcessTime             = ElementRegister{ID: 0x6922, Type: ElementTypeUint, Name: "ChapProcessTime"}
	ElementChapProcessData             = ElementRegister{ID: 0x6933, Type: ElementTypeBinary, Name: "ChapProcessData"}
	ElementTags                        = ElementRegister{ID: 0x1254c367, Type: ElementTypeMaster, Name: "Tags"}
	ElementTag                         = ElementRegister{ID: 0x7373, Type: ElementTypeMaster, Name: "Tag"}
	ElementTargets                     = ElementRegister{ID: 0x63c0, Type: ElementTypeMaster, Name: "Targets"}
	ElementTargetTypeValue             = ElementRegister{ID: 0x68ca, Type: ElementTypeUint, Name: "TargetTypeValue"}
	ElementTagTrackUID                 = ElementRegister{ID: 0x63c5, Type: ElementTypeUint, Name: "TagTrackUID"}
	ElementSimpleTag                   = ElementRegister{ID: 0x67c8, Type: ElementTypeMaster, Name: "SimpleTag"}
	ElementTagName                     = ElementRegister{ID: 0x45a3, Type: ElementTypeUnicode, Name: "TagName"}
	ElementTagLanguage                 = ElementRegister{ID: 0x447a, Type: ElementTypeString, Name: "TagLanguage"}
	ElementTagString                   = ElementRegister{ID: 0x4487, Type: ElementTypeUnicode, Name: "TagString"}
)

var registers = map[uint32]ElementRegister{}

func init() {
	for _, r := range []ElementRegister{
		ElementEBML,
		ElementEBMLVersion,
		ElementEBMLReadVersion,
		ElementEBMLMaxIDLength,
		ElementEBMLMaxSizeLength,
		ElementDocType,
		ElementDocTypeVersion,
		ElementDocTypeReadVersion,
		ElementVoid,
		ElementCRC32,
		ElementSegment,
		ElementSeekHead,
		ElementSeek,
		ElementSeekID,
		ElementSeekPosition,
		ElementInfo,
		ElementSegmentUID,
		ElementSegmentFilename,
		ElementPrevUID,
		ElementPrevFilename,
		ElementNextUID,
		ElementNextFilename,
		ElementSegmentFamily,
		ElementChapterTranslate,
		ElementChapterTranslateEditionUID,
		ElementChapterTranslateCodec,
		ElementChapterTranslateID,
		ElementTimecodeScale,
		ElementDuration,
		ElementDateUTC,
		ElementTitle,
		ElementMuxingApp,
		ElementWritingApp,
		ElementCluster,
		ElementTimecode,
		ElementSilentTracks,
		ElementSilentTrackNumber,
		ElementPosition,
		ElementPrevSize,
		ElementSimpleBlock,
		ElementBlockGroup,
		ElementBlock,
		ElementBlockAdditions,
		ElementBlockMore,
		ElementBlockAddID,
		ElementBlockAdditional,
		ElementBlockDuration,
		ElementReferencePriority,
		ElementReferenceBlock,
		ElementCodecState,
		ElementDiscardPadding,
		ElementSlices,
		ElementTimeSlice,
		ElementLaceNumber,
		ElementTracks,
		ElementTrackEntry,
		ElementTrackNumber,
		ElementTrackUID,
		ElementTrackType,
		ElementFlagEnabled,
		ElementFlagDefault,
		ElementFlagForced,
		ElementFlagLacing,
		ElementMinCache,
		ElementMaxCache,
		ElementDefaultDuration,
		ElementDefaultDecodedFieldDuration,
		ElementMaxBlockAdditionID,
		ElementName,
		ElementLanguage,
		ElementCodecID,
		ElementCodecPrivate,
		ElementCodecName,
		ElementAttachmentLink,
		ElementCodecDecodeAll,
		ElementTrackOverlay,
		ElementCodecDelay,
		ElementSeekPreRoll,
		ElementTrackTranslate,
		ElementTrackTranslateEditionUID,
		ElementTrackTranslateCodec,
		ElementTrackTranslateTrackID,
		ElementVideo,
		ElementFlagInterlaced,
		ElementStereoMode,
		ElementAlphaMode,
		ElementPixelWidth,
		ElementPixelHeight,
		ElementPixelCropBottom,
		ElementPixelCropTop,
		ElementPixelCropLeft,
		ElementPixelCropRight,
		ElementDisplayWidth,
		ElementDisplayHeight,
		ElementDisplayUnit,
		ElementAspectRatioType,
		ElementColourSpace,
		ElementAudio,
		ElementSamplingFrequency,
		ElementOutputSamplingFrequency,
		ElementChannels,
		ElementBitDepth,
		ElementTrackOperation,
		ElementTrackCombinePlanes,
		ElementTrackPlane,
		ElementTrackPlaneUID,
		ElementTrackPlaneType,
		ElementTrackJoinBlocks,
		ElementTrackJoinUID,
		ElementContentEncodings,
		ElementContentEncoding,
		ElementContentEncodingOrder,
		ElementContentEncodingScope,
		ElementContentEncodingType,
		ElementContentCompression,
		ElementContentCompAlgo,
		ElementContentCompSettings,
		ElementContentEncryption,
		ElementContentEncAlgo,
		ElementContentEncKeyID,
		ElementContentSignature,
		ElementContentSigKeyID,
		ElementContentSigAlgo,
		ElementContentSigHashAlgo,
		ElementCues,
		ElementCuePoint,
		ElementCueTime,
		ElementCueTrackPositions,
		ElementCueTrack,
		ElementCueClusterPosition,
		ElementCueRelativePosition,
		ElementCueDuration,
		ElementCueBlockNumber,
		ElementCueCodecState,
		ElementCueReference,
		ElementCueRefTime,
		ElementAttachments,
		ElementAttachedFile,
		ElementFileDescription,
		ElementFileName,
		ElementFileMimeType,
		ElementFileData,
		ElementFileUID,
		ElementChapters,
		ElementEditionEntry,
		ElementEditionUID,
		ElementEditionFlagHidden,
		ElementEditionFlagDefault,
		ElementEditionFlagOrdered,
		ElementChapterAtom,
		ElementChapterUID,
		ElementChapterStringUID,
		ElementChapterTimeStart,
		ElementChapterTimeEnd,
		ElementChapterFlagHidden,
		ElementChapterFlagEnabled,
		ElementChapterSegmentUID,
		ElementChapterSegmentEditionUID,
		ElementChapterPhysicalEquiv,
		ElementChapterTrack,
		ElementChapterTrackNumber,
		ElementChapterDisplay,
		ElementChapString,
		ElementChapLanguage,
		ElementChapCountry,
		ElementChapProcess,
		ElementChapProcessCodecID,
		ElementChapProcessPrivate,
		ElementChapProcessCommand,
		ElementChapProcessTime,
		ElementChapProcessData,
		ElementTags,
		ElementTag,
		ElementTargets,
		ElementTargetTypeValue,
		ElementTagTrackUID,
		ElementSimpleTag,
		ElementTagName,
		ElementTagLanguage,
		ElementTagString,
	} {
		registers[r.ID] = r
	}
}

// GetElementRegister returns the infos concerning the provided element ID.
// Unlisted ids keep their id under the ElementUnknown name and type.
func GetElementRegister(id uint32) ElementRegister {
	if r, ok := registers[id]; ok {
		return r
	}
	r := ElementUnknown
	r.ID = id
	return r
}
