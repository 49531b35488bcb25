package mkv

// Probe reports whether b starts with an EBML header id.
func Probe(b []byte) bool {
	return len(b) >= 4 && b[0] == 0x1a && b[1] == 0x45 && b[2] == 0xdf && b[3] == 0xa3
}
