package timescale

import (
	"testing"
	"time"
)

func TestToScale(t *testing.T) {
	const scale uint32 = 90000
	values := []struct {
		T time.Duration
		V uint64
	}{
		{0, 0},
		{time.Second/60 - 1, 1500},
		{time.Second/60 + 0, 1500},
		{time.Second/60 + 1, 1500},
		{(time.Second/60)*60 - 1, 90000},
		{(time.Second/60)*60 + 0, 90000},
		{(time.Second/60)*60 + 1, 90000},
		{time.Second * (1 << 32), 90000 * (1 << 32)},
		{time.Second*(1<<32) + time.Second/60 - 1, 90000*(1<<32) + 1500},
		{time.Second*(1<<32) + time.Second/60 + 0, 90000*(1<<32) + 1500},
		{time.Second*(1<<32) + time.Second/60 + 1, 90000*(1<<32) + 1500},
	}
	for _, ex := range values {
		n := ToScale(ex.T, scale)
		if n != ex.V {
			t.Errorf("%d (%s): expected %d, got %d", ex.T, ex.T, ex.V, n)
		}
	}
}

func TestToDuration(t *testing.T) {
	values := []struct {
		V     int64
		Scale uint32
		T     time.Duration
	}{
		{0, 90000, 0},
		{1500, 90000, time.Second / 60},
		{90000, 90000, time.Second},
		{-1500, 90000, -time.Second / 60},
		{1, 3, 333333333},
		{2, 3, 666666667},
		{33, 1000, 33 * time.Millisecond},
		{5, 0, 0},
	}
	for _, ex := range values {
		d := ToDuration(ex.V, ex.Scale)
		if d != ex.T {
			t.Errorf("%d/%d: expected %s, got %s", ex.V, ex.Scale, ex.T, d)
		}
	}
}

func TestToScaleRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 1499, 1500, 90000, 1 << 40} {
		d := ToDuration(int64(v), 90000)
		if got := ToScale(d, 90000); got != v {
			t.Errorf("%d: round trip gave %d", v, got)
		}
	}
}
