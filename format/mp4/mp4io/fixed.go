package mp4io

import (
	"time"

	"github.com/deepch/mediaparser/utils/bits/pio"
)

var epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

func GetTime32(b []byte) (t time.Time) {
	sec := pio.U32BE(b)
	if sec != 0 {
		t = epoch1904.Add(time.Second * time.Duration(sec))
	}
	return
}

func GetTime64(b []byte) (t time.Time) {
	sec := pio.U64BE(b)
	if sec != 0 {
		t = epoch1904.Add(time.Second * time.Duration(sec))
	}
	return
}

func GetFixed16(b []byte) float64 {
	return float64(b[0]) + float64(b[1])/256.0
}

func GetFixed32(b []byte) float64 {
	return float64(pio.U16BE(b[0:2])) + float64(pio.U16BE(b[2:4]))/65536.0
}
