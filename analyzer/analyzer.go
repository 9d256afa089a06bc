package analyzer

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/lemma"
)

// Analyzer analyzes words against one dictionary.
type Analyzer struct {
	data dict.Data
	opts options
}

// New returns an analyzer over data.
func New(data dict.Data, optFns ...Option) *Analyzer {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return &Analyzer{data: data, opts: o}
}

// Data returns the dictionary of the analyzer.
func (a *Analyzer) Data() dict.Data { return a.data }

// Analyze returns the ranked lemma candidates of word. The word is expected
// to be normalized already. The result is empty, never an error, for words
// the dictionary cannot analyze. Words containing dict.WordStartSymbol are
// never analyzed.
func (a *Analyzer) Analyze(word string, o Options) []lemma.Lemma {
	if !o.Accept.Has(lemma.AcceptDictionary) || word == "" {
		return nil
	}
	if strings.ContainsRune(word, rune(dict.WordStartSymbol)) {
		return nil
	}
	s := &session{
		a:           a,
		form:        word,
		word:        dict.UTF16(word),
		opts:        o,
		allBastards: o.GenerateAllBastards,
		minDist:     math.MaxInt,
	}
	s.run()
	return rank(s.out, o)
}

// rank sorts candidates by weight, truncates them and normalizes the weights
// into a probability distribution.
func rank(out []lemma.Lemma, o Options) []lemma.Lemma {
	if o.RuleID != nil {
		for i := range out {
			out[i].RuleID = o.RuleID(out[i])
		}
	}
	slices.SortStableFunc(out, func(x, y lemma.Lemma) int {
		return cmp.Or(cmp.Compare(y.Weight, x.Weight), cmp.Compare(x.RuleID, y.RuleID))
	})
	if o.MaxLemmas > 0 && len(out) > o.MaxLemmas {
		out = out[:o.MaxLemmas]
	}

	var z float64
	for _, l := range out {
		z += l.Weight
	}
	if z > 0 {
		for i := range out {
			out[i].Weight /= z
			if out[i].Weight < o.MinProbability {
				return out[:i]
			}
		}
	}
	return out
}
