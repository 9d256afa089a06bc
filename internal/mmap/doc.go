// Package mmap maps dictionary files read-only into memory.
//
// A compiled binary dictionary is read in place: tries, tables and text
// sections are sliced straight out of the mapping, so opening a dictionary
// costs one mmap(2) call regardless of its size.
//
//	m, err := mmap.Open("rus.lemd")
//	if err != nil { ... }
//	defer m.Close()
//
//	d, err := bindict.Open(m.Bytes())
//
// On Unix the mapping uses mmap(2) and madvise(2). On Windows it uses
// CreateFileMapping/MapViewOfFile and Advise is a no-op.
//
// Close is idempotent. Slices obtained from Bytes must not be used after
// Close returns.
package mmap
