package dict

import "github.com/hupe1980/lemmago/grammar"

const (
	// AffixDelimiter separates prefix and suffix parts inside a flexion text.
	AffixDelimiter uint16 = '$'
	// WordStartSymbol terminates a reversed word, marking the word start.
	WordStartSymbol uint16 = '_'
)

// Data is a loaded dictionary.
type Data interface {
	// MatchPatterns finds the longest prefix of rev stored in the patterns
	// trie. rev is a reversed word, usually followed by WordStartSymbol.
	MatchPatterns(rev []uint16) MatchResult
	// Scheme returns the scheme with the given id. It panics for ids outside
	// [0, SchemeCount()).
	Scheme(id uint32) Scheme
	// SchemeCount returns the number of schemes.
	SchemeCount() int
	// Fingerprint returns the build fingerprint stored in the dictionary.
	Fingerprint() string
}

// MatchResult is the outcome of a patterns trie lookup. A zero MatchedLength
// with an exhausted iterator is an ordinary miss.
type MatchResult struct {
	MatchedLength int
	Patterns      PatternIterator
}

// FlexTrie maps flexion texts of one scheme to block indexes.
type FlexTrie interface {
	Find(key []uint16) (uint32, bool)
	FindLongestPrefix(key []uint16) (length int, value uint32, ok bool)
}

// Scheme is a paradigm: a lemma flexion, a stem grammar and a chain of blocks.
type Scheme interface {
	ID() uint32
	Frequency() uint32
	// FlexTrie returns the trie mapping form flexions to block indexes.
	// It panics with ErrNoFlexTrie when the dictionary has none.
	FlexTrie() FlexTrie
	LemmaFlex() []uint16
	GrammarString() grammar.String
	// Block returns the block at index within the scheme. The caller is
	// expected to stay within the chain delimited by Block.HasNext.
	Block(index int) Block
}

// Block is a group of wordforms of a scheme sharing one form flexion.
type Block interface {
	Frequency() uint32
	FormFlex() []uint16
	Grammars() GrammarIterator
	// HasNext reports whether another block of the same scheme follows.
	HasNext() bool
}

// Pattern is one alternative way to split a matched word ending.
type Pattern interface {
	Scheme() Scheme
	SchemeID() uint32
	StemLen() int
	OldFlexLen() int
	HasPrefix() bool
	IsFinal() bool
	Rest() int
	IsUseAlways() bool
	Frequency() uint32
	DiaMask() uint16
	HasFlexTrie() bool
	FlexTrie() FlexTrie
}

// PatternIterator walks a chain of sibling patterns.
type PatternIterator interface {
	Valid() bool
	Next()
	// Pattern panics with ErrExhausted when the iterator is not valid.
	Pattern() Pattern
}

// GrammarIterator walks the grammar readings of a block.
type GrammarIterator interface {
	Valid() bool
	Next()
	// Grammar panics with ErrExhausted when the iterator is not valid.
	Grammar() grammar.String
}
