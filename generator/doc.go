// Package generator enumerates the inflected forms of an analyzed lemma.
//
// An Iterator walks the blocks of the lemma's scheme and yields one Wordform
// per block reading, in block order. Iterators are lazy and cheap; each call
// to All starts a fresh walk.
package generator
