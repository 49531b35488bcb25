package mkv

import (
	"github.com/deepch/mediaparser/av"
	"github.com/deepch/mediaparser/codec/opusparser"
	"github.com/deepch/mediaparser/format/fmp4/timescale"
	"github.com/deepch/mediaparser/format/mkv/mkvio"
)

// Timescale is the track timescale for the segment's TimestampScale, and
// unit the number of track units in one Matroska tick. A scale that divides
// one second evenly keeps ticks as units; any other scale counts in
// nanoseconds so no precision is lost.
func Timescale(segment *mkvio.Element) (rate uint32, unit int64) {
	scale, _ := TimestampScale(segment)
	switch {
	case scale >= 1e9 && scale%1e9 == 0:
		return 1, int64(scale / 1e9)
	case scale < 1e9 && 1e9%scale == 0:
		return uint32(1e9 / scale), 1
	}
	return 1e9, int64(scale)
}

type blockRef struct {
	block    *mkvio.Block
	keyframe bool
	duration int64
}

// blocks lists the SimpleBlocks and grouped Blocks of a cluster in file
// order. A grouped Block is a key frame when it references no other block.
func blocks(cluster *mkvio.Element) (out []blockRef) {
	for _, el := range cluster.Children {
		switch el.ID {
		case mkvio.ElementSimpleBlock.ID:
			if el.Block != nil {
				out = append(out, blockRef{block: el.Block, keyframe: el.Block.Keyframe()})
			}
		case mkvio.ElementBlockGroup.ID:
			b := el.Child(mkvio.ElementBlock)
			if b == nil || b.Block == nil {
				continue
			}
			ref := blockRef{block: b.Block, keyframe: el.Child(mkvio.ElementReferenceBlock) == nil}
			if d := el.Child(mkvio.ElementBlockDuration); d != nil {
				ref.duration = int64(d.Uint)
			}
			out = append(out, ref)
		}
	}
	return
}

// ClusterSamples expands every block of the segment into samples, keyed by
// track number. A laced block yields one sample per frame, all with the
// block timestamp. Times are in ticks.
func ClusterSamples(segment *mkvio.Element) map[uint64][]av.Sample {
	return clusterSamples(segment, 1, nil)
}

// blockDuration measures a block from its payload, in track units. Zero
// means unknown.
type blockDuration func(b *mkvio.Block) int64

// clusterSamples is ClusterSamples with ticks scaled by unit. A block
// without BlockDuration takes its duration from the track's entry in
// measure, if any.
func clusterSamples(segment *mkvio.Element, unit int64, measure map[uint64]blockDuration) map[uint64][]av.Sample {
	out := map[uint64][]av.Sample{}
	for _, cluster := range ClusterSegment(segment) {
		var base int64
		if tc := cluster.Child(mkvio.ElementTimecode); tc != nil {
			base = int64(tc.Uint)
		}
		for _, ref := range blocks(cluster) {
			ts := (base + int64(ref.block.Timecode)) * unit
			duration := ref.duration * unit
			if f := measure[ref.block.Track]; duration == 0 && f != nil {
				duration = f(ref.block)
			}
			for _, f := range ref.block.Frames {
				out[ref.block.Track] = append(out[ref.block.Track], av.Sample{
					Offset:   f.Offset,
					Size:     f.Size,
					DTS:      ts,
					PTS:      ts,
					Duration: duration,
					KeyFrame: ref.keyframe,
				})
			}
		}
	}
	return out
}

// opusDuration reads the packet duration from the TOC of the first frame.
func opusDuration(rate uint32) blockDuration {
	return func(b *mkvio.Block) int64 {
		d, err := opusparser.PacketDuration(b.Head)
		if err != nil {
			return 0
		}
		return int64(timescale.ToScale(d, rate))
	}
}

// fillDurations gives each sample without a BlockDuration the distance to
// the next one; the last sample keeps def.
func fillDurations(samples []av.Sample, def int64) {
	for i := range samples {
		if samples[i].Duration != 0 {
			continue
		}
		if i+1 < len(samples) {
			if d := samples[i+1].DTS - samples[i].DTS; d > 0 {
				samples[i].Duration = d
			}
		} else {
			samples[i].Duration = def
		}
	}
}
