package hash

import "hash/crc32"

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Sum returns the CRC32C of a dictionary payload.
func Sum(payload []byte) uint32 {
	return crc32.Checksum(payload, castagnoli)
}

// Verify reports whether payload matches the stored checksum want.
func Verify(payload []byte, want uint32) bool {
	return Sum(payload) == want
}
