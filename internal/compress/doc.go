// Package compress wraps compiled dictionaries in a small compressed envelope.
//
// Layout (little endian):
//
//	[0:4]   magic "LEMZ"
//	[4]     algorithm (0 none, 1 lz4, 2 zstd)
//	[5:8]   reserved, zero
//	[8:12]  uncompressed size
//	[12:16] CRC32C of the uncompressed payload
//	[16:]   payload
//
// Blobs without the magic are passed through unchanged by Unwrap, so a
// registry can serve plain and compressed dictionaries side by side.
package compress
