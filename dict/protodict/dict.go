package protodict

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/internal/trie"
)

const backend = "protobuf"

type options struct {
	name string
}

// Option configures Open.
type Option func(*options)

// WithName sets the dictionary name used in format errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Dict is a dictionary decoded from a TLemmerDict message.
// It is immutable and safe for concurrent use.
type Dict struct {
	msg       *message
	endsTrie  *trie.Trie
	flexTries []*trie.Trie
}

var _ dict.Data = (*Dict)(nil)

// Open decodes and validates data. Byte fields are not copied, so data must
// stay alive and unmodified for the lifetime of the Dict.
func Open(data []byte, optFns ...Option) (*Dict, error) {
	o := options{name: backend}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	msg, err := decodeMessage(data)
	if err != nil {
		return nil, dict.NewFormatError(o.name, "message", "cannot decode", err)
	}
	d := &Dict{msg: msg}
	if err := d.validate(o.name); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dict) validate(name string) error {
	m := d.msg
	fail := func(section, format string, args ...any) error {
		return dict.Formatf(name, section, format, args...)
	}

	if len(m.grammars) == 0 {
		return fail("Grammars", "at least one grammar string is required")
	}
	for i, g := range m.grammars {
		if len(g) == 0 || g[len(g)-1] != 0 {
			return fail("Grammars", "grammar %d is not NUL terminated", i)
		}
	}
	if err := validRefs(m.grammarRefs, len(m.grammars)); err != nil {
		return fail("GrammarRefs", "%v", err)
	}
	if len(m.grammarRefs) == 0 {
		return fail("GrammarRefs", "empty")
	}
	if int(m.defaultGrammarRef) >= len(m.grammarRefs) {
		return fail("DefaultGrammarRefIndex", "%d out of %d", m.defaultGrammarRef, len(m.grammarRefs))
	}

	if len(m.schemes) > dict.MaxSchemeID+1 {
		return fail("Schemes", "%d schemes exceed the id range", len(m.schemes))
	}
	for i, s := range m.schemes {
		if !dict.ValidText(s.flex) {
			return fail("Schemes", "scheme %d flexion has odd length or no NUL/NUL terminator", i)
		}
		if int(s.grammarID) >= len(m.grammarRefs) {
			return fail("Schemes", "scheme %d grammar %d out of %d", i, s.grammarID, len(m.grammarRefs))
		}
		if int(s.blockID) >= len(m.blocks) {
			return fail("Schemes", "scheme %d first block %d out of %d", i, s.blockID, len(m.blocks))
		}
	}
	for i, b := range m.blocks {
		if !dict.ValidText(b.flex) {
			return fail("Blocks", "block %d flexion has odd length or no NUL/NUL terminator", i)
		}
		if int(b.grammarRef) >= len(m.grammarRefs) {
			return fail("Blocks", "block %d grammar ref %d out of %d", i, b.grammarRef, len(m.grammarRefs))
		}
	}
	if n := len(m.blocks); n > 0 && m.blocks[n-1].hasNext {
		return fail("Blocks", "last block chain is not terminated")
	}
	for i, p := range m.patterns {
		if !dict.ValidPacked(p.bitmask) {
			return fail("Patterns", "pattern %d has invalid bits %#08x", i, p.bitmask)
		}
		if id := dict.UnpackEndInfo(p.bitmask).SchemeID; int(id) >= len(m.schemes) {
			return fail("Patterns", "pattern %d scheme %d out of %d", i, id, len(m.schemes))
		}
		if p.diaMask > 0xFFFF {
			return fail("Patterns", "pattern %d dia mask %#x overflows uint16", i, p.diaMask)
		}
	}
	if err := validRefs(m.matched, len(m.patterns)); err != nil {
		return fail("MatchedPatterns", "%v", err)
	}

	var err error
	if d.endsTrie, err = trie.Open(m.patternsTrie); err != nil {
		return dict.NewFormatError(name, "PatternsTrie", "invalid trie", err)
	}
	if v, ok := maxValue(d.endsTrie); ok && int(v) >= len(m.matched) {
		return fail("PatternsTrie", "chain head %d out of %d", v, len(m.matched))
	}

	if len(m.flexTries) > 0 {
		if len(m.flexTries) != len(m.schemes) {
			return fail("FlexTries", "%d tries for %d schemes", len(m.flexTries), len(m.schemes))
		}
		d.flexTries = make([]*trie.Trie, len(m.flexTries))
		for i, bin := range m.flexTries {
			t, err := trie.Open(bin)
			if err != nil {
				return dict.NewFormatError(name, "FlexTries", "invalid trie", err)
			}
			size := d.chainLen(int(m.schemes[i].blockID))
			if v, ok := maxValue(t); ok && int(v) >= size {
				return fail("FlexTries", "scheme %d block index %d out of %d", i, v, size)
			}
			d.flexTries[i] = t
		}
	}
	return nil
}

var errUnterminated = errors.New("last chain is not terminated")

func validRefs(refs []ref, size int) error {
	for i, r := range refs {
		if int(r.id) >= size {
			return fmt.Errorf("entry %d id %d out of %d", i, r.id, size)
		}
	}
	if n := len(refs); n > 0 && refs[n-1].hasNext {
		return errUnterminated
	}
	return nil
}

func maxValue(t *trie.Trie) (uint32, bool) {
	var (
		maxV  uint32
		found bool
	)
	t.Walk(func(_ []uint16, v uint32) bool {
		if !found || v > maxV {
			maxV, found = v, true
		}
		return true
	})
	return maxV, found
}

func (d *Dict) chainLen(first int) int {
	n := 1
	for i := first; d.msg.blocks[i].hasNext; i++ {
		n++
	}
	return n
}

func (d *Dict) grammarAt(ref int) grammar.String {
	return grammar.FromRaw(d.msg.grammars[d.msg.grammarRefs[ref].id])
}

// MatchPatterns implements dict.Data.
func (d *Dict) MatchPatterns(rev []uint16) dict.MatchResult {
	n, head, ok := d.endsTrie.FindLongestPrefix(rev)
	if !ok {
		return dict.MatchResult{Patterns: &patternIter{d: d, done: true}}
	}
	return dict.MatchResult{MatchedLength: n, Patterns: &patternIter{d: d, pos: int(head)}}
}

// Scheme implements dict.Data.
func (d *Dict) Scheme(id uint32) dict.Scheme {
	if int64(id) >= int64(len(d.msg.schemes)) {
		dict.OutOfRange("scheme", int(id), len(d.msg.schemes))
	}
	return scheme{d: d, id: id}
}

// SchemeCount implements dict.Data.
func (d *Dict) SchemeCount() int { return len(d.msg.schemes) }

// Fingerprint implements dict.Data.
func (d *Dict) Fingerprint() string { return d.msg.fingerprint }

// Stats reports table sizes.
func (d *Dict) Stats() dict.Stats {
	return dict.Stats{
		Grammars:    len(d.msg.grammars),
		GrammarRefs: len(d.msg.grammarRefs),
		Schemes:     len(d.msg.schemes),
		Blocks:      len(d.msg.blocks),
		Patterns:    len(d.msg.patterns),
		PatternRefs: len(d.msg.matched),
		PatternKeys: d.endsTrie.Len(),
		FlexTries:   len(d.flexTries),
	}
}

type scheme struct {
	d  *Dict
	id uint32
}

func (s scheme) msg() *schemeMsg { return &s.d.msg.schemes[s.id] }

func (s scheme) ID() uint32        { return s.id }
func (s scheme) Frequency() uint32 { return s.msg().frequency }

func (s scheme) FlexTrie() dict.FlexTrie {
	if len(s.d.flexTries) == 0 {
		panic(dict.ErrNoFlexTrie)
	}
	return s.d.flexTries[s.id]
}

func (s scheme) LemmaFlex() []uint16 { return dict.DecodeText(s.msg().flex) }

func (s scheme) GrammarString() grammar.String { return s.d.grammarAt(int(s.msg().grammarID)) }

func (s scheme) Block(index int) dict.Block {
	first := int(s.msg().blockID)
	abs := first + index
	if index < 0 || abs >= len(s.d.msg.blocks) {
		dict.OutOfRange("block", index, len(s.d.msg.blocks)-first)
	}
	return block{d: s.d, idx: abs}
}

type block struct {
	d   *Dict
	idx int
}

func (b block) msg() *blockMsg { return &b.d.msg.blocks[b.idx] }

func (b block) Frequency() uint32  { return b.msg().frequency }
func (b block) FormFlex() []uint16 { return dict.DecodeText(b.msg().flex) }
func (b block) HasNext() bool      { return b.msg().hasNext }

func (b block) Grammars() dict.GrammarIterator {
	return &grammarIter{d: b.d, pos: int(b.msg().grammarRef)}
}

type pattern struct {
	d    *Dict
	id   int
	info dict.EndInfo
}

func (p pattern) Scheme() dict.Scheme { return scheme{d: p.d, id: p.info.SchemeID} }
func (p pattern) SchemeID() uint32    { return p.info.SchemeID }
func (p pattern) StemLen() int        { return p.info.StemLen }
func (p pattern) OldFlexLen() int     { return p.info.OldFlexLen }
func (p pattern) HasPrefix() bool     { return p.info.HasPrefix }
func (p pattern) IsFinal() bool       { return p.info.IsFinal }
func (p pattern) Rest() int           { return p.info.Rest }
func (p pattern) IsUseAlways() bool   { return p.info.UseAlways }
func (p pattern) Frequency() uint32   { return p.d.msg.patterns[p.id].frequency }
func (p pattern) DiaMask() uint16     { return uint16(p.d.msg.patterns[p.id].diaMask) }
func (p pattern) HasFlexTrie() bool   { return len(p.d.flexTries) > 0 }
func (p pattern) FlexTrie() dict.FlexTrie {
	return p.Scheme().FlexTrie()
}

type patternIter struct {
	d    *Dict
	pos  int
	done bool
}

func (it *patternIter) Valid() bool { return !it.done }

func (it *patternIter) Next() {
	if it.done {
		return
	}
	if !it.d.msg.matched[it.pos].hasNext {
		it.done = true
		return
	}
	it.pos++
}

func (it *patternIter) Pattern() dict.Pattern {
	if it.done {
		dict.Exhausted("pattern iterator")
	}
	id := int(it.d.msg.matched[it.pos].id)
	return pattern{d: it.d, id: id, info: dict.UnpackEndInfo(it.d.msg.patterns[id].bitmask)}
}

type grammarIter struct {
	d    *Dict
	pos  int
	done bool
}

func (it *grammarIter) Valid() bool { return !it.done }

func (it *grammarIter) Next() {
	if it.done {
		return
	}
	if !it.d.msg.grammarRefs[it.pos].hasNext {
		it.done = true
		return
	}
	it.pos++
}

func (it *grammarIter) Grammar() grammar.String {
	if it.done {
		dict.Exhausted("grammar iterator")
	}
	return it.d.grammarAt(it.pos)
}
