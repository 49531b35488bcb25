package timescale

import (
	"math/bits"
	"time"
)

// ToScale converts a decode time from time.Duration to a specified timescale
func ToScale(t time.Duration, scale uint32) uint64 {
	hi, lo := bits.Mul64(uint64(t), uint64(scale))
	dts, rem := bits.Div64(hi, lo, uint64(time.Second))
	if rem >= uint64(time.Second/2) {
		// round up
		dts++
	}
	return dts
}

// ToDuration converts a time in a given timescale to time.Duration
func ToDuration(v int64, scale uint32) time.Duration {
	if scale == 0 {
		return 0
	}
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	hi, lo := bits.Mul64(u, uint64(time.Second))
	if hi >= uint64(scale) {
		// Div64 panics when the quotient overflows
		hi %= uint64(scale)
	}
	d, rem := bits.Div64(hi, lo, uint64(scale))
	if rem >= (uint64(scale)+1)/2 {
		d++
	}
	if neg {
		return -time.Duration(d)
	}
	return time.Duration(d)
}
