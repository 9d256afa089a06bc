package protodict

import "github.com/hupe1980/lemmago/dict"

// Encode serializes src as a TLemmerDict message.
func Encode(src *dict.Source) ([]byte, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	m := &message{
		patternsTrie:      src.PatternsTrie,
		flexTries:         src.FlexTries,
		fingerprint:       src.Fingerprint,
		defaultGrammarRef: src.DefaultGrammarRef,
	}
	for _, g := range src.Grammars {
		m.grammars = append(m.grammars, g.Raw())
	}
	for _, r := range src.GrammarRefs {
		m.grammarRefs = append(m.grammarRefs, ref{id: r.ID, hasNext: r.HasNext})
	}
	for _, s := range src.Schemes {
		m.schemes = append(m.schemes, schemeMsg{
			flex:      dict.EncodeText(s.LemmaFlex),
			grammarID: s.GrammarRef,
			blockID:   s.FirstBlock,
			frequency: s.Frequency,
		})
	}
	for _, b := range src.Blocks {
		m.blocks = append(m.blocks, blockMsg{
			flex:       dict.EncodeText(b.FormFlex),
			grammarRef: b.GrammarRef,
			frequency:  b.Frequency,
			hasNext:    b.HasNext,
		})
	}
	for _, p := range src.Patterns {
		m.patterns = append(m.patterns, patternMsg{
			bitmask:   p.Info.Pack(),
			frequency: p.Frequency,
			diaMask:   uint32(p.DiaMask),
		})
	}
	for _, r := range src.PatternRefs {
		m.matched = append(m.matched, ref{id: r.ID, hasNext: r.HasNext})
	}
	return m.marshal(), nil
}
