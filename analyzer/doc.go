// Package analyzer turns a word into ranked lemma candidates using a
// compiled dictionary.
//
// The word is reversed and matched against the patterns trie. Every pattern
// of the longest matched ending proposes a stem/flexion split; candidates are
// validated, resolved to a block of their scheme, filtered by grammar and
// diacritic distortion and finally ranked by weight. When a matched length
// yields nothing final, the ending is shortened by one character and the
// lookup repeats.
//
// An Analyzer holds no per-call state. One Analyzer may be shared by any
// number of goroutines.
package analyzer
