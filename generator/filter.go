package generator

import (
	"iter"

	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lemma"
)

// Filter selects generated wordforms.
type Filter interface {
	// ProperStem reports whether the paradigm can produce accepted forms.
	ProperStem(stem grammar.String) bool
	Accept(w Wordform) bool
}

// GrammarFilter keeps forms carrying every required grammeme.
type GrammarFilter struct {
	grammar.Filter
}

// NewGrammarFilter returns a filter requiring the grammemes of required.
func NewGrammarFilter(required grammar.String) GrammarFilter {
	return GrammarFilter{Filter: grammar.NewFilter(required)}
}

// Accept implements Filter.
func (f GrammarFilter) Accept(w Wordform) bool {
	return f.Match(w.StemGram, w.FlexGram)
}

// NewFiltered returns the forms of l accepted by f. A paradigm rejected by
// ProperStem yields nothing.
func NewFiltered(data dict.Data, l lemma.Lemma, f Filter) (iter.Seq[Wordform], error) {
	if _, err := New(data, l); err != nil {
		return nil, err
	}
	return func(yield func(Wordform) bool) {
		if !f.ProperStem(data.Scheme(l.ParadigmID).GrammarString()) {
			return
		}
		for w := range All(data, l) {
			if f.Accept(w) && !yield(w) {
				return
			}
		}
	}, nil
}
