package analyzer

import (
	"github.com/hupe1980/lemmago/alpha"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lang"
	"github.com/hupe1980/lemmago/lemma"
)

// Alphabet classifies characters of the dictionary language.
type Alphabet interface {
	CharClass(r rune) alpha.CharClass
}

// Diacritics strips and restores diacritics without changing text length.
type Diacritics interface {
	Generalize(text []uint16) []uint16
	// SpecializeBackward restores diacritics at the positions of mask,
	// bit 0 being the last character.
	SpecializeBackward(text []uint16, mask uint16) []uint16
}

// Options control a single analysis.
type Options struct {
	// Accept selects candidate kinds. Without AcceptDictionary nothing is
	// returned.
	Accept lemma.Accept
	// GenerateAllBastards keeps collecting heuristic candidates of distinct
	// schemes over shorter endings.
	GenerateAllBastards bool
	// RequiredGrammar keeps candidates whose stem grammar and one block
	// reading together carry every listed grammeme.
	RequiredGrammar grammar.String
	// MaxLemmas limits the result size; zero or less means unlimited.
	MaxLemmas int
	// MinProbability drops candidates whose normalized weight is lower.
	MinProbability float64
	// RuleID breaks weight ties, lower first. Defaults to the paradigm id.
	RuleID func(lemma.Lemma) uint32
}

// DefaultOptions accepts dictionary and heuristic candidates without limits.
func DefaultOptions() Options {
	return Options{Accept: lemma.AcceptDictionary | lemma.AcceptBastard}
}

type options struct {
	alphabet   Alphabet
	diacritics Diacritics
	language   lang.Language
}

// Option configures an Analyzer.
type Option func(*options)

// WithAlphabet sets the alphabet used to validate heuristic candidates.
// Without one, heuristic patterns never match.
func WithAlphabet(a Alphabet) Option {
	return func(o *options) {
		o.alphabet = a
	}
}

// WithDiacritics enables diacritic restoration and minimum-distortion
// selection.
func WithDiacritics(d Diacritics) Option {
	return func(o *options) {
		o.diacritics = d
	}
}

// WithLanguage sets the language stamped on produced lemmas.
func WithLanguage(l lang.Language) Option {
	return func(o *options) {
		o.language = l
	}
}
