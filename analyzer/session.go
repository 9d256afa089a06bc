package analyzer

import (
	"slices"

	"github.com/hupe1980/lemmago/alpha"
	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lemma"
)

// session is the state of one Analyze call.
type session struct {
	a    *Analyzer
	form string
	word []uint16
	opts Options

	// restored is word with diacritics restored in the current stem window.
	restored    []uint16
	endLen      int
	flexLen     int
	stemLen     int
	prefixLen   int
	distortions int

	out           []lemma.Lemma
	allBastards   bool
	minDist       int
	minDistEndLen int
}

func (s *session) run() {
	rev := dict.Reverse(s.word)
	for {
		m := s.a.data.MatchPatterns(rev)
		s.endLen = m.MatchedLength
		finish := false
		if m.Patterns != nil {
			for it := m.Patterns; it.Valid(); it.Next() {
				p := it.Pattern()
				if !p.IsFinal() && !s.opts.Accept.Has(lemma.AcceptBastard) {
					return
				}
				if s.process(p) {
					finish = true
				}
			}
		}
		if finish || s.endLen == 0 {
			return
		}
		rev = rev[:s.endLen-1]
	}
}

// process evaluates one pattern and reports whether the current length
// finishes the analysis.
func (s *session) process(p dict.Pattern) bool {
	s.flexLen = s.endLen - p.StemLen()
	s.stemLen = len(s.word) - s.flexLen
	if s.flexLen < 0 || s.stemLen < 0 {
		return false
	}
	if !s.valid(p) {
		return false
	}
	s.computeDistortions(p.DiaMask())

	scheme := p.Scheme()
	id, ok := s.blockID(p)
	if !ok {
		return false
	}
	block := scheme.Block(id)
	if !hasFlexWithGrammar(s.opts.RequiredGrammar, scheme.GrammarString(), block) {
		return false
	}
	if !s.computeMinDistortions(p, block) {
		return false
	}
	if s.allBastards && s.hasScheme(scheme.ID()) {
		return false
	}
	s.appendLemma(p, scheme, block)
	return !s.allBastards || p.IsFinal()
}

func (s *session) valid(p dict.Pattern) bool {
	if p.IsFinal() || p.IsUseAlways() {
		return true
	}
	if len(s.word)+1 < p.Rest()+s.endLen {
		return false
	}
	ab := s.a.opts.alphabet
	if ab == nil {
		return false
	}
	for k := 0; k+p.OldFlexLen() < len(s.word); k++ {
		if ab.CharClass(rune(s.word[k]))&alpha.CharAlphaRequired != 0 {
			return true
		}
	}
	return false
}

// computeDistortions restores diacritics in the matched part of the stem.
func (s *session) computeDistortions(mask uint16) {
	dm := s.a.opts.diacritics
	if dm == nil || mask == 0 {
		s.restored = s.word
		s.distortions = 0
		return
	}
	pos := 0
	if s.endLen <= len(s.word) {
		pos = len(s.word) - s.endLen
	}
	window := s.word[pos:s.stemLen]
	restored := dm.SpecializeBackward(dm.Generalize(window), mask>>1)
	s.restored = slices.Concat(s.word[:pos], restored, s.word[s.stemLen:])
	s.distortions = countDistortions(window, restored)
}

// blockID resolves the block of the candidate flexion. A prefixed pattern
// must match a longer flex$prefix key; a plain one falls back to block 0.
func (s *session) blockID(p dict.Pattern) (int, bool) {
	s.prefixLen = 0
	if !p.HasFlexTrie() {
		return 0, true
	}
	t := p.FlexTrie()
	if p.HasPrefix() {
		sample := make([]uint16, 0, s.flexLen+1+len(s.word))
		sample = append(sample, s.word[s.stemLen:]...)
		sample = append(sample, dict.AffixDelimiter)
		sample = append(sample, s.word...)
		n, id, _ := t.FindLongestPrefix(sample)
		if n <= s.flexLen {
			return 0, false
		}
		s.prefixLen = n - s.flexLen - 1
		if s.prefixLen > s.stemLen {
			return 0, false
		}
		return int(id), true
	}
	id, ok := t.Find(s.word[s.stemLen:])
	if !ok {
		return 0, true
	}
	return int(id), true
}

func (s *session) computeMinDistortions(p dict.Pattern, b dict.Block) bool {
	if s.a.opts.diacritics == nil {
		return true
	}
	flex := b.FormFlex()
	s.distortions += countDistortions(s.word[s.stemLen:], flex[:min(s.flexLen, len(flex))])
	switch {
	case s.distortions < s.minDist:
		s.out = s.out[:0]
	case s.distortions > s.minDist:
		return false
	case s.endLen < s.minDistEndLen:
		return false
	}
	if !p.IsFinal() {
		s.allBastards = true
	}
	s.minDist = s.distortions
	s.minDistEndLen = s.endLen
	return true
}

func (s *session) hasScheme(id uint32) bool {
	return slices.ContainsFunc(s.out, func(l lemma.Lemma) bool { return l.ParadigmID == id })
}

func (s *session) appendLemma(p dict.Pattern, scheme dict.Scheme, b dict.Block) {
	quality := lemma.QualityBastard
	if p.IsFinal() {
		quality = lemma.QualityDictionary
	}
	weight := float64(p.Frequency()) * float64(b.Frequency()) / (float64(scheme.Frequency()) + 1)
	var flexGrams []grammar.String
	for g := range dict.Grammars(b.Grammars()) {
		flexGrams = append(flexGrams, g)
	}
	distortions := 0
	if s.a.opts.diacritics != nil {
		distortions = s.distortions
	}
	s.out = append(s.out, lemma.Build(lemma.Fields{
		Form:        s.form,
		Stem:        s.restored[s.prefixLen:s.stemLen],
		LemmaFlex:   scheme.LemmaFlex(),
		Language:    s.a.opts.language,
		Quality:     quality,
		Weight:      weight,
		ParadigmID:  scheme.ID(),
		PrefixLen:   s.prefixLen,
		FlexLen:     s.flexLen,
		FormLen:     len(s.word),
		StemGram:    scheme.GrammarString(),
		FlexGrams:   flexGrams,
		Distortions: distortions,
	}))
}

// hasFlexWithGrammar reports whether every required grammeme is carried by
// the stem grammar or, together, by one reading of the block.
func hasFlexWithGrammar(required, stem grammar.String, b dict.Block) bool {
	if required.Len() == 0 {
		return true
	}
	missing := make([]grammar.Grammeme, 0, required.Len())
	for _, g := range required.Grammemes() {
		if !stem.Has(g) {
			missing = append(missing, g)
		}
	}
	if len(missing) == 0 {
		return true
	}
	for flex := range dict.Grammars(b.Grammars()) {
		if !slices.ContainsFunc(missing, func(g grammar.Grammeme) bool { return !flex.Has(g) }) {
			return true
		}
	}
	return false
}

func countDistortions(a, b []uint16) int {
	n := 0
	for i := 0; i < len(a) && i < len(b) && a[i] != 0 && b[i] != 0; i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
