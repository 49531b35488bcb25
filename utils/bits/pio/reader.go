package pio

import "math"

func U8(b []byte) (i uint8) {
	return b[0]
}

func U16BE(b []byte) (i uint16) {
	i = uint16(b[0])
	i <<= 8
	i |= uint16(b[1])
	return
}

func I16BE(b []byte) (i int16) {
	return int16(U16BE(b))
}

func U24BE(b []byte) (i uint32) {
	i = uint32(b[0])
	i <<= 8
	i |= uint32(b[1])
	i <<= 8
	i |= uint32(b[2])
	return
}

func I24BE(b []byte) (i int32) {
	i = int32(U24BE(b))
	if i&0x800000 != 0 {
		i -= 0x1000000
	}
	return
}

func U32BE(b []byte) (i uint32) {
	i = uint32(b[0])
	i <<= 8
	i |= uint32(b[1])
	i <<= 8
	i |= uint32(b[2])
	i <<= 8
	i |= uint32(b[3])
	return
}

func I32BE(b []byte) (i int32) {
	return int32(U32BE(b))
}

func U64BE(b []byte) (i uint64) {
	i = uint64(U32BE(b[0:]))
	i <<= 32
	i |= uint64(U32BE(b[4:]))
	return
}

func I64BE(b []byte) (i int64) {
	return int64(U64BE(b))
}

// UintBE decodes an unsigned big-endian integer of len(b) bytes (0-8).
func UintBE(b []byte) (i uint64) {
	for _, c := range b {
		i <<= 8
		i |= uint64(c)
	}
	return
}

// IntBE decodes a sign-extended big-endian integer of len(b) bytes (0-8).
func IntBE(b []byte) (i int64) {
	if len(b) == 0 {
		return 0
	}
	u := UintBE(b)
	shift := uint(64 - 8*len(b))
	return int64(u<<shift) >> shift
}

func F32BE(b []byte) float32 {
	return math.Float32frombits(U32BE(b))
}

func F64BE(b []byte) float64 {
	return math.Float64frombits(U64BE(b))
}
