package mp4

import (
	"errors"
	"fmt"

	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/format/mp4/mp4io"
)

var ErrSampleTable = errors.New("mp4: sample tables disagree")

const maxSamples = 1 << 26

// Samples expands the sample tables of trak into one entry per sample in
// decode order. stsz, stco (or co64), stsc and stts are mandatory; ctts and
// stss are optional, and without stss every sample is a key frame.
func Samples(trak mp4io.Box) ([]av.Sample, error) {
	stsz := SampleSizeBox(trak)
	if stsz == nil {
		return nil, missing(mp4io.STBL, mp4io.STSZ)
	}
	stco := ChunkOffsetBox(trak)
	if stco == nil {
		return nil, missing(mp4io.STBL, mp4io.STCO)
	}
	stsc := SampleToChunkBox(trak)
	if stsc == nil {
		return nil, missing(mp4io.STBL, mp4io.STSC)
	}
	stts := TimeToSampleBox(trak)
	if stts == nil {
		return nil, missing(mp4io.STBL, mp4io.STTS)
	}

	count := int(stsz.SampleCount)
	if count > maxSamples {
		return nil, fmt.Errorf("%w: %d samples", ErrSampleTable, count)
	}
	// counts are checked before allocating: a constant-size stsz declares
	// its count without any entries behind it
	if held := chunkedSamples(stco, stsc, count); held < count {
		return nil, fmt.Errorf("%w: chunks hold %d of %d samples", ErrSampleTable, held, count)
	}
	if timed := timedSamples(stts, count); timed < count {
		return nil, fmt.Errorf("%w: stts times %d of %d samples", ErrSampleTable, timed, count)
	}
	samples := make([]av.Sample, 0, min(count, max(len(stsz.Entries), len(stco.Entries))))

	// offsets
	entry := 0
	for chunk := 0; chunk < len(stco.Entries) && len(samples) < count; chunk++ {
		for entry+1 < len(stsc.Entries) && int(stsc.Entries[entry+1].FirstChunk) <= chunk+1 {
			entry++
		}
		offset := int64(stco.Entries[chunk])
		for i := uint32(0); i < stsc.Entries[entry].SamplesPerChunk && len(samples) < count; i++ {
			size := int64(stsz.Size(len(samples)))
			samples = append(samples, av.Sample{Offset: offset, Size: size})
			offset += size
		}
	}

	// decode times
	i := 0
	var dts int64
	for _, e := range stts.Entries {
		for n := uint32(0); n < e.Count && i < count; n++ {
			samples[i].DTS = dts
			samples[i].Duration = int64(e.Duration)
			dts += int64(e.Duration)
			i++
		}
	}

	// composition offsets
	i = 0
	if ctts := CompositionOffsetBox(trak); ctts != nil {
		for _, e := range ctts.Entries {
			for n := uint32(0); n < e.Count && i < count; n++ {
				samples[i].PTS = int64(e.Offset)
				i++
			}
		}
	}
	for i := range samples {
		samples[i].PTS += samples[i].DTS
	}

	if stss := SyncSampleBox(trak); stss != nil {
		for _, n := range stss.Entries {
			if n >= 1 && int(n) <= count {
				samples[n-1].KeyFrame = true
			}
		}
	} else {
		for i := range samples {
			samples[i].KeyFrame = true
		}
	}
	return samples, nil
}

// chunkedSamples counts the samples stsc places in the stco chunks, up to
// limit.
func chunkedSamples(stco *mp4io.ChunkOffset, stsc *mp4io.SampleToChunk, limit int) int {
	if len(stsc.Entries) == 0 {
		return 0
	}
	n, entry := 0, 0
	for chunk := 0; chunk < len(stco.Entries) && n < limit; chunk++ {
		for entry+1 < len(stsc.Entries) && int(stsc.Entries[entry+1].FirstChunk) <= chunk+1 {
			entry++
		}
		n += int(stsc.Entries[entry].SamplesPerChunk)
	}
	return min(n, limit)
}

func timedSamples(stts *mp4io.TimeToSample, limit int) int {
	n := 0
	for _, e := range stts.Entries {
		if n >= limit {
			break
		}
		n += int(e.Count)
	}
	return min(n, limit)
}

// TrackExtendBox is the trex of the given track, or nil.
func TrackExtendBox(roots []mp4io.Box, trackID uint32) *mp4io.TrackExtend {
	for _, b := range children(child(MovieBox(roots), mp4io.MVEX), mp4io.TREX) {
		if a, ok := b.(*mp4io.TrackExtend); ok && a.TrackID == trackID {
			return a
		}
	}
	return nil
}

// FragmentSamples collects the samples that movie fragments carry for
// trackID, in file order. Unfragmented files have none.
func FragmentSamples(roots []mp4io.Box, trackID uint32) (samples []av.Sample) {
	trex := TrackExtendBox(roots, trackID)
	var dts int64
	for _, moof := range roots {
		if moof.Tag() != mp4io.MOOF {
			continue
		}
		moofOffset, _ := moof.Pos()
		for _, traf := range children(moof, mp4io.TRAF) {
			tfhd, ok := child(traf, mp4io.TFHD).(*mp4io.TrackFragHeader)
			if !ok || tfhd.TrackID != trackID {
				continue
			}
			if tfdt, ok := child(traf, mp4io.TFDT).(*mp4io.TrackFragDecodeTime); ok {
				dts = int64(tfdt.Time)
			}
			base := moofOffset
			if tfhd.Flags&mp4io.TrackFragBaseDataOffset != 0 {
				base = int64(tfhd.BaseDataOffset)
			}
			next := base
			for _, b := range children(traf, mp4io.TRUN) {
				trun := b.(*mp4io.TrackFragRun)
				offset := next
				if trun.Flags&mp4io.TrackRunDataOffset != 0 {
					offset = base + int64(trun.DataOffset)
				}
				for i, e := range trun.Entries {
					s := av.Sample{Offset: offset, DTS: dts}
					s.Duration = int64(fragmentDefault(trun.Flags&mp4io.TrackRunSampleDuration != 0, e.Duration,
						tfhd.Flags&mp4io.TrackFragDefaultDuration != 0, tfhd.DefaultDuration, trex, func(x *mp4io.TrackExtend) uint32 { return x.DefaultSampleDuration }))
					s.Size = int64(fragmentDefault(trun.Flags&mp4io.TrackRunSampleSize != 0, e.Size,
						tfhd.Flags&mp4io.TrackFragDefaultSize != 0, tfhd.DefaultSize, trex, func(x *mp4io.TrackExtend) uint32 { return x.DefaultSampleSize }))
					flags := mp4io.SampleFlags(fragmentDefault(trun.Flags&mp4io.TrackRunSampleFlags != 0, uint32(e.Flags),
						tfhd.Flags&mp4io.TrackFragDefaultFlags != 0, uint32(tfhd.DefaultFlags), trex, func(x *mp4io.TrackExtend) uint32 { return uint32(x.DefaultSampleFlags) }))
					if i == 0 && trun.Flags&mp4io.TrackRunFirstSampleFlags != 0 {
						flags = trun.FirstSampleFlags
					}
					s.KeyFrame = flags.IsKeyframe()
					s.PTS = s.DTS
					if trun.Flags&mp4io.TrackRunSampleCTS != 0 {
						s.PTS += int64(e.CTS)
					}
					samples = append(samples, s)
					offset += s.Size
					dts += s.Duration
				}
				next = offset
			}
		}
	}
	return
}

// fragmentDefault picks a per-sample value, then the tfhd default, then
// the trex default.
func fragmentDefault(inRun bool, run uint32, inHeader bool, header uint32, trex *mp4io.TrackExtend, fromTrex func(*mp4io.TrackExtend) uint32) uint32 {
	switch {
	case inRun:
		return run
	case inHeader:
		return header
	case trex != nil:
		return fromTrex(trex)
	}
	return 0
}

