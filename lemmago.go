package lemmago

import (
	"context"
	"fmt"
	"iter"
	"math"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf16"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lemmago/alpha"
	"github.com/hupe1980/lemmago/analyzer"
	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/generator"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lang"
	"github.com/hupe1980/lemmago/lemma"
	"github.com/hupe1980/lemmago/registry"
)

// Alphabet is the alphabet of a registered language. *alpha.Table
// implements it.
type Alphabet interface {
	analyzer.Alphabet
	// Normalize maps a surface word to the form stored in the dictionary.
	Normalize(word string) string
	// Accepts reports whether a normalized word belongs to the language.
	Accepts(word string) bool
}

// FoundlingParadigm is the paradigm id of foundling lemmas. No dictionary
// holds it, so foundlings have no forms to generate.
const FoundlingParadigm = math.MaxUint32

type language struct {
	id       lang.Language
	data     dict.Data
	alphabet Alphabet
	analyzer *analyzer.Analyzer
}

// Lemmer analyzes words against the dictionaries of several languages.
// It is safe for concurrent use.
type Lemmer struct {
	mu        sync.RWMutex
	languages map[lang.Language]*language

	metrics MetricsCollector
	logger  *Logger
	workers int
}

// New creates an empty Lemmer.
func New(optFns ...Option) *Lemmer {
	o := applyOptions(optFns)
	return &Lemmer{
		languages: make(map[lang.Language]*language),
		metrics:   o.metricsCollector,
		logger:    o.logger,
		workers:   o.batchConcurrency,
	}
}

// Register adds the dictionary of a language. A nil alphabet selects the
// built-in alphabet of the language. Diacritics restoration is enabled when
// the alphabet provides a diacritics map.
func (m *Lemmer) Register(l lang.Language, data dict.Data, alphabet Alphabet) error {
	if data == nil {
		return fmt.Errorf("%w: %s", ErrNoDictionary, l)
	}
	if alphabet == nil {
		tbl, ok := alpha.ForLanguage(l)
		if !ok {
			return fmt.Errorf("%w: %s has no built-in alphabet", ErrUnknownLanguage, l)
		}
		alphabet = tbl
	}

	opts := []analyzer.Option{
		analyzer.WithAlphabet(alphabet),
		analyzer.WithLanguage(l),
	}
	if d, ok := alphabet.(interface{ Diacritics() *alpha.DiacriticsMap }); ok {
		if dm := d.Diacritics(); dm != nil {
			opts = append(opts, analyzer.WithDiacritics(dm))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.languages[l]; ok {
		return fmt.Errorf("%w: %s", ErrLanguageRegistered, l)
	}
	m.languages[l] = &language{
		id:       l,
		data:     data,
		alphabet: alphabet,
		analyzer: analyzer.New(data, opts...),
	}
	return nil
}

// RegisterFrom loads the named dictionary from reg and registers it for l.
func (m *Lemmer) RegisterFrom(ctx context.Context, reg *registry.Registry, name string, l lang.Language, alphabet Alphabet) error {
	start := time.Now()

	d, err := reg.Get(ctx, name)
	if err != nil {
		m.metrics.RecordLoad(name, 0, time.Since(start), err)
		m.logger.LogLoad(ctx, name, 0, 0, err)
		return err
	}
	m.metrics.RecordLoad(name, d.Size, time.Since(start), nil)
	m.logger.LogLoad(ctx, name, d.Format, d.Size, nil)

	return m.Register(l, d.Data, alphabet)
}

// Languages returns the registered languages.
func (m *Lemmer) Languages() lang.Mask {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]lang.Language, 0, len(m.languages))
	for id := range m.languages {
		ids = append(ids, id)
	}
	return lang.NewMask(ids...)
}

// Dictionary returns the dictionary registered for l.
func (m *Lemmer) Dictionary(l lang.Language) (dict.Data, bool) {
	e := m.language(l)
	if e == nil {
		return nil, false
	}
	return e.data, true
}

func (m *Lemmer) language(l lang.Language) *language {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.languages[l]
}

// Analyze returns the lemmas of word in every language of mask whose
// alphabet accepts it, in mask order. Languages without a dictionary are
// skipped. With lemma.AcceptFoundling, an accepting language without
// candidates contributes a foundling lemma.
func (m *Lemmer) Analyze(word string, mask lang.Mask, o analyzer.Options) []lemma.Lemma {
	return m.analyze(context.Background(), word, mask, o)
}

func (m *Lemmer) analyze(ctx context.Context, word string, mask lang.Mask, o analyzer.Options) []lemma.Lemma {
	var out []lemma.Lemma
	for _, l := range mask.Languages() {
		e := m.language(l)
		if e == nil {
			continue
		}
		form := e.alphabet.Normalize(word)
		if !e.alphabet.Accepts(form) {
			continue
		}

		start := time.Now()
		res := e.analyzer.Analyze(form, o)
		if len(res) == 0 && o.Accept.Has(lemma.AcceptFoundling) {
			res = append(res, foundling(form, l))
		}
		m.metrics.RecordAnalyze(l, time.Since(start), len(res))
		m.logger.LogAnalyze(ctx, l, form, len(res))

		out = append(out, res...)
	}
	return out
}

// AnalyzeBatch analyzes words concurrently. The result is aligned with
// words. It stops early with the context error when ctx is canceled.
func (m *Lemmer) AnalyzeBatch(ctx context.Context, words []string, mask lang.Mask, o analyzer.Options) ([][]lemma.Lemma, error) {
	start := time.Now()
	out := make([][]lemma.Lemma, len(words))

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for i, w := range words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = m.analyze(gctx, w, mask, o)
			done.Add(1)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	failed := len(words) - int(done.Load())
	m.metrics.RecordBatch(len(words), failed, time.Since(start))
	m.logger.LogBatch(ctx, len(words), failed)

	if err != nil {
		return nil, err
	}
	return out, nil
}

// Generate returns the wordforms of l from the dictionary of its language.
// Foundlings and lemmas of an unknown paradigm fail with an error wrapping
// dict.ErrOutOfRange.
func (m *Lemmer) Generate(l lemma.Lemma) (iter.Seq[generator.Wordform], error) {
	e := m.language(l.Language)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, l.Language)
	}
	if _, err := generator.New(e.data, l); err != nil {
		return nil, err
	}
	return generator.All(e.data, l), nil
}

// GenerateFiltered is Generate restricted to forms carrying every grammeme
// of required.
func (m *Lemmer) GenerateFiltered(l lemma.Lemma, required grammar.String) (iter.Seq[generator.Wordform], error) {
	e := m.language(l.Language)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, l.Language)
	}
	return generator.NewFiltered(e.data, l, generator.NewGrammarFilter(required))
}

func foundling(form string, l lang.Language) lemma.Lemma {
	return lemma.Lemma{
		Text:       form,
		Form:       form,
		Language:   l,
		Quality:    lemma.QualityFoundling,
		Weight:     1,
		ParadigmID: FoundlingParadigm,
		RuleID:     FoundlingParadigm,
		FormLen:    len(utf16.Encode([]rune(form))),
	}
}
