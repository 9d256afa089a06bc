package dict

import (
	"encoding/binary"
	"slices"
	"unicode/utf16"
)

// UTF16 converts s to UTF-16 code units.
func UTF16(s string) []uint16 { return utf16.Encode([]rune(s)) }

// String converts UTF-16 code units back to a Go string.
func String(u []uint16) string { return string(utf16.Decode(u)) }

// Reverse returns the code units of u in reverse order followed by
// WordStartSymbol, the form used for patterns trie lookups.
func Reverse(u []uint16) []uint16 {
	out := make([]uint16, len(u), len(u)+1)
	for i, c := range u {
		out[len(u)-1-i] = c
	}
	return append(out, WordStartSymbol)
}

// IndexDelimiter returns the position of AffixDelimiter in u, or -1.
func IndexDelimiter(u []uint16) int { return slices.Index(u, AffixDelimiter) }

// EncodeText stores u as little-endian UTF-16 followed by a NUL code unit.
func EncodeText(u []uint16) []byte {
	out := make([]byte, 2*len(u)+2)
	for i, c := range u {
		binary.LittleEndian.PutUint16(out[2*i:], c)
	}
	return out
}

// DecodeText reads little-endian UTF-16 code units from b up to the first
// NUL code unit or the end of b.
func DecodeText(b []byte) []uint16 {
	n := 0
	for n+1 < len(b) && (b[n] != 0 || b[n+1] != 0) {
		n += 2
	}
	out := make([]uint16, n/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return out
}

// ValidText reports whether b is even-sized and ends with a NUL code unit.
func ValidText(b []byte) bool {
	n := len(b)
	return n >= 2 && n%2 == 0 && b[n-1] == 0 && b[n-2] == 0
}
