// Package bindict implements the flat binary lemmer dictionary format.
//
// The file is a fixed header followed by typed sections:
//
//	+--------------------------------------------+
//	| Header (magic "LD", version, checksum,     |
//	|         31 section offsets, 31 lengths)    |
//	+--------------------------------------------+
//	| grammar strings, grammar refs              |
//	| flexion texts (UTF-16LE), flexion addrs    |
//	| flex tries, flex trie addrs, patterns trie |
//	| scheme columns, block columns              |
//	| pattern columns, pattern chains            |
//	| frequency table, default grammar ref       |
//	| fingerprint                                |
//	+--------------------------------------------+
//
// Sections are read in place. Open validates every cross reference once, so
// queries on an opened Dict never read out of bounds.
package bindict
