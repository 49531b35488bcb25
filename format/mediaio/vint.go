package mediaio

// VintUnknown reports whether an EBML size of the given width has every
// value bit set, which Matroska reserves for "unknown size".
func VintUnknown(v uint64, width int) bool {
	return width >= 1 && width <= 8 && v == vintMax(width)
}

func vintMax(width int) uint64 {
	return 1<<(7*uint(width)) - 1
}

// VintWidth is the shortest EBML width able to carry v. The all-ones value
// of a width is reserved, so it moves to the next width.
func VintWidth(v uint64) int {
	for w := 1; w <= 8; w++ {
		if v < vintMax(w) {
			return w
		}
	}
	return 0
}

// AppendEBMLVint appends v using the shortest EBML encoding.
func AppendEBMLVint(b []byte, v uint64) []byte {
	return AppendEBMLVintWidth(b, v, VintWidth(v))
}

// AppendEBMLVintWidth appends v using exactly width bytes.
func AppendEBMLVintWidth(b []byte, v uint64, width int) []byte {
	marker := uint64(1) << (7 * uint(width))
	v |= marker
	for i := width - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}

// UnknownVint returns the reserved unknown-size encoding of the given width.
func UnknownVint(width int) []byte {
	return AppendEBMLVintWidth(nil, vintMax(width), width)
}
