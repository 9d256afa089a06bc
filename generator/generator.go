package generator

import (
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lemma"
)

// Wordform is one inflected form of a lemma.
type Wordform struct {
	Prefix   []uint16
	Stem     []uint16
	Flexion  []uint16
	Postfix  []uint16
	StemGram grammar.String
	FlexGram grammar.String
	// Weight is the frequency of the block the form belongs to.
	Weight uint32
}

// Text returns prefix, stem, flexion and postfix joined.
func (w Wordform) Text() string {
	return dict.String(slices.Concat(w.Prefix, w.Stem, w.Flexion, w.Postfix))
}

// Grammars returns the stem grammar followed by the flexion grammar.
func (w Wordform) Grammars() grammar.String {
	return w.StemGram.Append(w.FlexGram)
}

func (w Wordform) String() string {
	return fmt.Sprintf("%s %s", w.Text(), w.Grammars().Format())
}

// Iterator walks the wordforms of one lemma.
type Iterator struct {
	scheme   dict.Scheme
	stem     []uint16
	postfix  []uint16
	stemGram grammar.String

	index   int
	done    bool
	block   dict.Block
	grams   dict.GrammarIterator
	hasNext bool
	current Wordform
}

// New returns an iterator over the forms of l. It fails with an error
// wrapping dict.ErrOutOfRange when the paradigm id is not in data.
func New(data dict.Data, l lemma.Lemma) (*Iterator, error) {
	if int(l.ParadigmID) >= data.SchemeCount() {
		return nil, fmt.Errorf("generator: paradigm %d: %w", l.ParadigmID, dict.ErrOutOfRange)
	}
	scheme := data.Scheme(l.ParadigmID)
	it := &Iterator{
		scheme:   scheme,
		stem:     l.Stem(),
		postfix:  l.Postfix(),
		stemGram: scheme.GrammarString(),
	}
	it.enter(0)
	return it, nil
}

func (it *Iterator) enter(index int) {
	it.index = index
	it.block = it.scheme.Block(index)
	it.hasNext = it.block.HasNext()
	it.grams = it.block.Grammars()
	flex := it.block.FormFlex()
	it.current = Wordform{
		Stem:     it.stem,
		Postfix:  it.postfix,
		StemGram: it.stemGram,
		Weight:   it.block.Frequency(),
	}
	if pos := dict.IndexDelimiter(flex); pos >= 0 {
		it.current.Flexion = flex[:pos]
		it.current.Prefix = flex[pos+1:]
	} else {
		it.current.Flexion = flex
	}
	if it.grams.Valid() {
		it.current.FlexGram = it.grams.Grammar()
	}
}

// Valid reports whether Form may be called.
func (it *Iterator) Valid() bool { return !it.done }

// Next advances to the next reading, moving to the next block when the
// current one is exhausted.
func (it *Iterator) Next() {
	if it.done {
		dict.Exhausted("wordform iterator")
	}
	if it.grams.Valid() {
		it.grams.Next()
	}
	if it.grams.Valid() {
		it.current.FlexGram = it.grams.Grammar()
		return
	}
	if !it.hasNext {
		it.done = true
		return
	}
	it.enter(it.index + 1)
}

// Form returns the current wordform. It panics when the iterator is
// exhausted.
func (it *Iterator) Form() Wordform {
	if it.done {
		dict.Exhausted("wordform iterator")
	}
	return it.current
}

// FormsCount returns the number of blocks of the scheme, independently of
// the iterator position.
func (it *Iterator) FormsCount() int {
	return dict.BlockCount(it.scheme)
}

// All returns the forms of l as a sequence. Each range starts a new walk.
// An unknown paradigm yields nothing.
func All(data dict.Data, l lemma.Lemma) iter.Seq[Wordform] {
	return func(yield func(Wordform) bool) {
		it, err := New(data, l)
		if err != nil {
			return
		}
		for ; it.Valid(); it.Next() {
			if !yield(it.Form()) {
				return
			}
		}
	}
}
