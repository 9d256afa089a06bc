package dictbuild

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/internal/hash"
	"github.com/hupe1980/lemmago/internal/trie"
)

var (
	// ErrUnknownParadigm is returned for a lexeme naming a missing paradigm.
	ErrUnknownParadigm = errors.New("dictbuild: unknown paradigm")
	// ErrInvalidSpec is returned for structurally invalid input.
	ErrInvalidSpec = errors.New("dictbuild: invalid spec")
)

const defaultMaxBastardTail = 2

// Generalizer strips diacritics from text without changing its length.
type Generalizer interface {
	Generalize(text []uint16) []uint16
}

type options struct {
	generalizer    Generalizer
	maxBastardTail int
}

// Option configures Compile.
type Option func(*options)

// WithDiacritics stores stems without diacritics and records the stripped
// positions in the dia mask of their final patterns.
func WithDiacritics(g Generalizer) Option {
	return func(o *options) {
		o.generalizer = g
	}
}

// WithMaxBastardTail sets how many trailing stem characters heuristic
// pattern keys may include.
func WithMaxBastardTail(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxBastardTail = n
		}
	}
}

type block struct {
	text     []uint16
	readings []uint32
	freq     uint32
}

type compiler struct {
	opts options
	src  dict.Source

	grammarIDs map[string]uint32
	refChains  map[string]uint32
	patternIDs map[patternKey]uint32
	keys       map[string][]uint32

	schemeByName map[string]uint32
	paradigms    []Paradigm
	blocks       [][]block
}

type patternKey struct {
	info    uint32
	diaMask uint16
}

// Compile builds a dict.Source from spec.
func Compile(spec Spec, optFns ...Option) (*dict.Source, error) {
	o := options{maxBastardTail: defaultMaxBastardTail}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	c := &compiler{
		opts:         o,
		grammarIDs:   make(map[string]uint32),
		refChains:    make(map[string]uint32),
		patternIDs:   make(map[patternKey]uint32),
		keys:         make(map[string][]uint32),
		schemeByName: make(map[string]uint32),
	}
	// The empty grammar always exists and backs the default block reading.
	c.grammarID(grammar.String{})
	c.src.DefaultGrammarRef = c.chain([]uint32{0})

	if err := c.addParadigms(spec.Paradigms); err != nil {
		return nil, err
	}
	usage, err := c.addLexemes(spec.Lexemes, spec.Bastards)
	if err != nil {
		return nil, err
	}
	for i := range c.src.Schemes {
		if f := c.paradigms[i].Frequency; f > 0 {
			c.src.Schemes[i].Frequency = f
		} else {
			c.src.Schemes[i].Frequency = usage[i]
		}
	}
	if err := c.addFallbacks(); err != nil {
		return nil, err
	}
	if err := c.finishPatterns(); err != nil {
		return nil, err
	}

	c.src.Fingerprint = spec.Fingerprint
	if c.src.Fingerprint == "" {
		c.src.Fingerprint = c.fingerprint()
	}
	if err := c.src.Validate(); err != nil {
		return nil, err
	}
	return &c.src, nil
}

func (c *compiler) grammarID(g grammar.String) uint32 {
	if id, ok := c.grammarIDs[string(g)]; ok {
		return id
	}
	id := uint32(len(c.src.Grammars))
	c.grammarIDs[string(g)] = id
	c.src.Grammars = append(c.src.Grammars, g.Clone())
	return id
}

// chain interns a chain of grammar ids and returns the index of its head.
func (c *compiler) chain(ids []uint32) uint32 {
	key := fmt.Sprint(ids)
	if head, ok := c.refChains[key]; ok {
		return head
	}
	head := uint32(len(c.src.GrammarRefs))
	for i, id := range ids {
		c.src.GrammarRefs = append(c.src.GrammarRefs, dict.Ref{ID: id, HasNext: i < len(ids)-1})
	}
	c.refChains[key] = head
	return head
}

// keyOf packs code units into a map key without UTF-16 decoding, so reversed
// surrogate pairs survive.
func keyOf(u []uint16) string {
	b := make([]byte, 2*len(u))
	for i, c := range u {
		b[2*i], b[2*i+1] = byte(c>>8), byte(c)
	}
	return string(b)
}

func fromKey(k string) []uint16 {
	u := make([]uint16, len(k)/2)
	for i := range u {
		u[i] = uint16(k[2*i])<<8 | uint16(k[2*i+1])
	}
	return u
}

func storedFlex(flex, prefix string) []uint16 {
	if prefix == "" {
		return dict.UTF16(flex)
	}
	return dict.UTF16(flex + "$" + prefix)
}

func (c *compiler) addParadigms(paradigms []Paradigm) error {
	if len(paradigms) > dict.MaxSchemeID+1 {
		return fmt.Errorf("%w: %d paradigms exceed the scheme id range", ErrInvalidSpec, len(paradigms))
	}
	for _, p := range paradigms {
		if p.Name == "" {
			return fmt.Errorf("%w: paradigm without name", ErrInvalidSpec)
		}
		if _, dup := c.schemeByName[p.Name]; dup {
			return fmt.Errorf("%w: duplicate paradigm %q", ErrInvalidSpec, p.Name)
		}
		if len(p.Forms) == 0 {
			return fmt.Errorf("%w: paradigm %q has no forms", ErrInvalidSpec, p.Name)
		}
		stemGram, err := grammar.Parse(p.StemGrammar)
		if err != nil {
			return fmt.Errorf("paradigm %q: %w", p.Name, err)
		}

		var blocks []block
		index := make(map[string]int)
		for _, f := range p.Forms {
			g, err := grammar.Parse(f.Grammar)
			if err != nil {
				return fmt.Errorf("paradigm %q form %q: %w", p.Name, f.Flex, err)
			}
			text := storedFlex(f.Flex, f.Prefix)
			i, ok := index[keyOf(text)]
			if !ok {
				i = len(blocks)
				index[keyOf(text)] = i
				blocks = append(blocks, block{text: text})
			}
			gid := c.grammarID(g)
			if !slices.Contains(blocks[i].readings, gid) {
				blocks[i].readings = append(blocks[i].readings, gid)
			}
			blocks[i].freq += max(f.Frequency, 1)
		}

		id := uint32(len(c.src.Schemes))
		c.schemeByName[p.Name] = id
		c.paradigms = append(c.paradigms, p)
		c.blocks = append(c.blocks, blocks)

		lemma := dict.UTF16(p.LemmaFlex)
		if p.LemmaPrefix != "" {
			lemma = dict.UTF16(p.LemmaPrefix + "$" + p.LemmaFlex)
		}
		c.src.Schemes = append(c.src.Schemes, dict.SourceScheme{
			LemmaFlex:  lemma,
			GrammarRef: c.chain([]uint32{c.grammarID(stemGram)}),
			FirstBlock: uint32(len(c.src.Blocks)),
		})
		entries := make([]trie.Entry, len(blocks))
		for i, b := range blocks {
			c.src.Blocks = append(c.src.Blocks, dict.SourceBlock{
				FormFlex:   b.text,
				GrammarRef: c.chain(b.readings),
				Frequency:  b.freq,
				HasNext:    i < len(blocks)-1,
			})
			entries[i] = trie.Entry{Key: b.text, Value: uint32(i)}
		}
		t, err := trie.Build(entries)
		if err != nil {
			return fmt.Errorf("paradigm %q: %w", p.Name, err)
		}
		c.src.FlexTries = append(c.src.FlexTries, t)
	}
	return nil
}

func (c *compiler) addPattern(key []uint16, info dict.EndInfo, freq uint32, diaMask uint16) error {
	if err := info.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	k := keyOf(key)
	pk := patternKey{info: info.Pack(), diaMask: diaMask}
	id, ok := c.patternIDs[pk]
	if !ok {
		id = uint32(len(c.src.Patterns))
		c.patternIDs[pk] = id
		c.src.Patterns = append(c.src.Patterns, dict.SourcePattern{Info: info, DiaMask: diaMask})
	}
	c.src.Patterns[id].Frequency += freq
	if !slices.Contains(c.keys[k], id) {
		c.keys[k] = append(c.keys[k], id)
	}
	return nil
}

// addLexemes creates final and heuristic patterns and returns per-scheme
// usage counts.
func (c *compiler) addLexemes(lexemes []Lexeme, bastards bool) ([]uint32, error) {
	usage := make([]uint32, len(c.src.Schemes))
	for _, lx := range lexemes {
		id, ok := c.schemeByName[lx.Paradigm]
		if !ok {
			return nil, fmt.Errorf("%w: %q (stem %q)", ErrUnknownParadigm, lx.Paradigm, lx.Stem)
		}
		usage[id]++
		freq := max(lx.Frequency, 1)
		stem := dict.UTF16(strings.ToLower(lx.Stem))
		var diaMask uint16
		if c.opts.generalizer != nil {
			gen := c.opts.generalizer.Generalize(stem)
			diaMask = maskOf(stem, gen)
			stem = gen
		}

		for _, f := range c.paradigms[id].Forms {
			prefix := dict.UTF16(f.Prefix)
			flex := dict.UTF16(f.Flex)
			word := slices.Concat(prefix, stem, flex)
			info := dict.EndInfo{
				SchemeID:   id,
				StemLen:    len(prefix) + len(stem) + 1,
				HasPrefix:  len(prefix) > 0,
				IsFinal:    true,
				OldFlexLen: min(len(flex), dict.MaxOldFlexLen),
			}
			if err := c.addPattern(dict.Reverse(word), info, freq, diaMask); err != nil {
				return nil, fmt.Errorf("lexeme %q: %w", lx.Stem, err)
			}
			if !bastards || len(prefix) > 0 {
				continue
			}
			for k := 0; k <= c.opts.maxBastardTail && k < len(stem); k++ {
				tail := slices.Concat(stem[len(stem)-k:], flex)
				if len(tail) == 0 {
					continue
				}
				key := dict.Reverse(tail)
				key = key[:len(key)-1]
				info := dict.EndInfo{
					SchemeID:   id,
					StemLen:    k,
					Rest:       min(len(stem)-k, dict.MaxRest-1) + 1,
					OldFlexLen: min(len(flex), dict.MaxOldFlexLen),
				}
				if err := c.addPattern(key, info, freq, 0); err != nil {
					return nil, fmt.Errorf("lexeme %q: %w", lx.Stem, err)
				}
			}
		}
	}
	return usage, nil
}

// addFallbacks adds a use-always pattern on the empty key for fallback
// paradigms. Such a paradigm needs a block with an empty flexion.
func (c *compiler) addFallbacks() error {
	for id, p := range c.paradigms {
		if !p.Fallback {
			continue
		}
		hasEmpty := slices.ContainsFunc(c.blocks[id], func(b block) bool { return len(b.text) == 0 })
		if !hasEmpty {
			return fmt.Errorf("%w: fallback paradigm %q needs a form with empty flexion", ErrInvalidSpec, p.Name)
		}
		info := dict.EndInfo{SchemeID: uint32(id), UseAlways: true}
		if err := c.addPattern(nil, info, max(p.Frequency, 1), 0); err != nil {
			return err
		}
	}
	return nil
}

// finishPatterns orders every chain, shares identical chains and builds the
// patterns trie.
func (c *compiler) finishPatterns() error {
	keys := make([]string, 0, len(c.keys))
	for k := range c.keys {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	heads := make(map[string]uint32)
	entries := make([]trie.Entry, 0, len(keys))
	for _, k := range keys {
		ids := c.keys[k]
		slices.SortStableFunc(ids, func(a, b uint32) int {
			pa, pb := c.src.Patterns[a], c.src.Patterns[b]
			if pa.Info.IsFinal != pb.Info.IsFinal {
				if pa.Info.IsFinal {
					return -1
				}
				return 1
			}
			return cmp.Or(
				cmp.Compare(pb.Frequency, pa.Frequency),
				cmp.Compare(pa.Info.SchemeID, pb.Info.SchemeID),
				cmp.Compare(pa.Info.StemLen, pb.Info.StemLen),
			)
		})
		chainKey := fmt.Sprint(ids)
		head, ok := heads[chainKey]
		if !ok {
			head = uint32(len(c.src.PatternRefs))
			for i, id := range ids {
				c.src.PatternRefs = append(c.src.PatternRefs, dict.Ref{ID: id, HasNext: i < len(ids)-1})
			}
			heads[chainKey] = head
		}
		entries = append(entries, trie.Entry{Key: fromKey(k), Value: head})
	}
	t, err := trie.Build(entries)
	if err != nil {
		return err
	}
	c.src.PatternsTrie = t
	return nil
}

func (c *compiler) fingerprint() string {
	fp := hash.NewFingerprint()
	for _, p := range c.paradigms {
		fp.Record(p.Name, p.LemmaFlex, p.StemGrammar, len(p.Forms))
	}
	fp.Table(c.src.PatternsTrie)
	return fp.String()
}

// maskOf sets bit i+1 for every position i, counted from the end of the
// stem, where the generalized stem differs; bit 0 marks a non-empty mask.
func maskOf(stem, gen []uint16) uint16 {
	var mask uint16
	for i := 0; i < len(stem) && i < 15; i++ {
		p := len(stem) - 1 - i
		if stem[p] != gen[p] {
			mask |= 1 << (i + 1)
		}
	}
	if mask != 0 {
		mask |= 1
	}
	return mask
}
