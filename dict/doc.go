// Package dict defines the read-only view a morphological analyzer has of a
// compiled lemmer dictionary.
//
// A dictionary is made of schemes (paradigms), blocks (groups of wordforms of a
// scheme sharing one flexion), patterns (suffix match entries that point at a
// scheme and describe how to split a word into stem and flexion) and grammar
// strings. Two storage backends implement Data: dict/bindict (a flat binary
// layout read in place) and dict/protodict (a protobuf message). For the same
// Source both return identical query results.
//
// # Handles
//
// Scheme, Block and Pattern values are small handles borrowing from the
// dictionary. They are valid as long as the dictionary bytes are alive and
// carry no state of their own, so they may be copied and shared freely.
//
// # Text
//
// Flexion texts are UTF-16 code unit sequences. A scheme's lemma flexion may
// contain AffixDelimiter as "prefix$suffix"; a block's form flexion may contain
// it as "flex$prefix". Reversed lookup keys end with WordStartSymbol.
//
// # Errors
//
// Malformed input is reported once, by the backend constructor, as a
// *FormatError. Query methods do not return errors: an out-of-range id or a
// dereferenced exhausted iterator is a programming error and panics with an
// error wrapping ErrOutOfRange, ErrExhausted or ErrNoFlexTrie.
package dict
