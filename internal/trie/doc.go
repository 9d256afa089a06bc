// Package trie implements a compact, read-in-place trie over UTF-16 keys.
//
// A serialized trie maps []uint16 keys to uint32 values. Open validates the
// whole structure once; lookups afterwards work directly on the byte slice and
// never allocate.
//
// # Layout
//
//	header: magic u32 | root offset u32
//	node:   flags u8 | [value u32] | child count uvarint | children
//	child:  label u16 | node offset u32
//
// All integers are little-endian. Children are sorted by label and every child
// offset is greater than its parent's offset, so the node graph is acyclic.
package trie
