package dict

import (
	"iter"

	"github.com/hupe1980/lemmago/grammar"
)

// Patterns adapts a pattern iterator to a range-over-func sequence.
func Patterns(it PatternIterator) iter.Seq[Pattern] {
	return func(yield func(Pattern) bool) {
		for ; it.Valid(); it.Next() {
			if !yield(it.Pattern()) {
				return
			}
		}
	}
}

// Grammars adapts a grammar iterator to a range-over-func sequence.
func Grammars(it GrammarIterator) iter.Seq[grammar.String] {
	return func(yield func(grammar.String) bool) {
		for ; it.Valid(); it.Next() {
			if !yield(it.Grammar()) {
				return
			}
		}
	}
}

// Blocks yields the blocks of a scheme with their index, following the
// HasNext chain from block 0.
func Blocks(s Scheme) iter.Seq2[int, Block] {
	return func(yield func(int, Block) bool) {
		for i := 0; ; i++ {
			b := s.Block(i)
			if !yield(i, b) || !b.HasNext() {
				return
			}
		}
	}
}

// BlockCount counts the blocks of a scheme by following the HasNext chain.
func BlockCount(s Scheme) int {
	n := 0
	for range Blocks(s) {
		n++
	}
	return n
}
