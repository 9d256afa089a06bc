package hash

import (
	"fmt"
	"hash"
	"hash/crc32"
)

// Fingerprint accumulates the identity of a compiled dictionary. Equal
// inputs written in the same order give equal fingerprints.
type Fingerprint struct {
	h hash.Hash32
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{h: crc32.New(castagnoli)}
}

// Record adds one line of fields separated by '|'.
func (f *Fingerprint) Record(fields ...any) {
	for i, v := range fields {
		if i > 0 {
			_, _ = f.h.Write([]byte{'|'})
		}
		_, _ = fmt.Fprint(f.h, v)
	}
	_, _ = f.h.Write([]byte{'\n'})
}

// Table adds a serialized table verbatim.
func (f *Fingerprint) Table(data []byte) {
	_, _ = f.h.Write(data)
}

// String returns the fingerprint in the form "lemmago-xxxxxxxx".
func (f *Fingerprint) String() string {
	return fmt.Sprintf("lemmago-%08x", f.h.Sum32())
}
