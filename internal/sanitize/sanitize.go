// Package sanitize removes control characters the engine's XML parser rejects.
package sanitize

// Tab (0x09), LF (0x0A) and CR (0x0D) are legal in XML and stay.
var illegal = [0x20]bool{
	0x00: true, 0x01: true, 0x02: true, 0x03: true, 0x04: true, 0x05: true,
	0x06: true, 0x07: true, 0x08: true, 0x0b: true, 0x0c: true, 0x0e: true,
	0x0f: true, 0x10: true, 0x11: true, 0x12: true, 0x13: true, 0x14: true,
	0x15: true, 0x16: true, 0x17: true, 0x18: true, 0x19: true, 0x1a: true,
	0x1b: true, 0x1c: true, 0x1d: true, 0x1e: true, 0x1f: true,
}

// IsIllegal reports whether b is one of the removed control bytes.
func IsIllegal(b byte) bool {
	return b < 0x20 && illegal[b]
}

// Bytes returns data without the illegal control bytes.
// The input is not modified; a clean input is returned as is.
func Bytes(data []byte) []byte {
	first := -1
	for i, b := range data {
		if IsIllegal(b) {
			first = i
			break
		}
	}
	if first < 0 {
		return data
	}
	out := make([]byte, first, len(data))
	copy(out, data[:first])
	for _, b := range data[first:] {
		if !IsIllegal(b) {
			out = append(out, b)
		}
	}
	return out
}

// String is Bytes for strings.
func String(s string) string {
	if !Contains(s) {
		return s
	}
	return string(Bytes([]byte(s)))
}

// Contains reports whether s holds any illegal control byte.
func Contains(s string) bool {
	for i := 0; i < len(s); i++ {
		if IsIllegal(s[i]) {
			return true
		}
	}
	return false
}
