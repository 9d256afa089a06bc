package bindict

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/internal/hash"
	"github.com/hupe1980/lemmago/internal/trie"
)

const backend = "binary"

type options struct {
	verifyChecksum bool
}

// Option configures Open.
type Option func(*options)

// WithVerifyChecksum makes Open verify the body checksum when the header
// carries one.
func WithVerifyChecksum(verify bool) Option {
	return func(o *options) {
		o.verifyChecksum = verify
	}
}

// Dict is a binary dictionary read in place from a byte slice.
// It is immutable and safe for concurrent use.
type Dict struct {
	hdr       *Header
	sec       [NumFields][]byte
	endsTrie  *trie.Trie
	flexTries []*trie.Trie

	schemes  int
	blocks   int
	patterns int
	refs     int
	flexies  int
	anas     int
	freqs    int

	fingerprint string
}

var _ dict.Data = (*Dict)(nil)

// Open validates data and returns a dictionary reading from it. data must stay
// alive and unmodified for the lifetime of the Dict and every handle obtained
// from it.
func Open(data []byte, optFns ...Option) (*Dict, error) {
	var o options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	hdr, err := DecodeHeader(data)
	if err != nil {
		return nil, dict.NewFormatError(backend, "header", "cannot decode", err)
	}
	if o.verifyChecksum && hdr.Checksum != 0 {
		if sum := hash.Sum(data[HeaderSize:]); sum != hdr.Checksum {
			return nil, dict.NewFormatError(backend, "header",
				fmt.Sprintf("stored %#08x, computed %#08x", hdr.Checksum, sum), ErrChecksum)
		}
	}

	d := &Dict{hdr: hdr}
	for f := Field(0); f < NumFields; f++ {
		off, n := uint64(hdr.Offset[f]), uint64(hdr.Length[f])
		if n == 0 {
			continue
		}
		if off < HeaderSize || off+n > uint64(len(data)) {
			return nil, dict.Formatf(backend, f.String(), "section [%d, %d) outside %d bytes", off, off+n, len(data))
		}
		if f < numDataFields && n%uint64(fieldWidth[f]) != 0 {
			return nil, dict.Formatf(backend, f.String(), "length %d not a multiple of %d", n, fieldWidth[f])
		}
		d.sec[f] = data[off : off+n : off+n]
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dict) has(f Field) bool { return len(d.sec[f]) > 0 }

func (d *Dict) count(f Field) int { return len(d.sec[f]) / fieldWidth[f] }

func (d *Dict) u32(f Field, i int) uint32 { return binary.LittleEndian.Uint32(d.sec[f][4*i:]) }

func (d *Dict) u16(f Field, i int) uint32 { return uint32(binary.LittleEndian.Uint16(d.sec[f][2*i:])) }

func (d *Dict) freq(f Field, i int) uint32 { return d.u32(FieldFreqs, int(d.u16(f, i))) }

func (d *Dict) flexText(id uint32) []uint16 {
	return dict.DecodeText(d.sec[FieldFlexies][d.u32(FieldFlexiesAddrs, int(id)):])
}

func (d *Dict) grammarAt(ref int) grammar.String {
	return grammar.FromRaw(d.sec[FieldGrammar][d.u32(FieldGrammarAddrs, ref)&idMask:])
}

func (d *Dict) blockGrammarRef(block int) int {
	if d.has(FieldBlocksFlexGram) {
		return int(d.u16(FieldBlocksFlexGram, block))
	}
	return int(d.u16(FieldDefaultFlexGram, 0))
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
	if int64(id) >= int64(d.schemes) {
		dict.OutOfRange("scheme", int(id), d.schemes)
	}
	return scheme{d: d, id: id}
}

// SchemeCount implements dict.Data.
func (d *Dict) SchemeCount() int { return d.schemes }

// Fingerprint implements dict.Data.
func (d *Dict) Fingerprint() string { return d.fingerprint }

// Header returns the decoded file header.
func (d *Dict) Header() Header { return *d.hdr }

// Stats reports table sizes.
func (d *Dict) Stats() dict.Stats {
	return dict.Stats{
		Grammars:    d.grammarCount(),
		GrammarRefs: d.refs,
		Schemes:     d.schemes,
		Blocks:      d.blocks,
		Patterns:    d.patterns,
		PatternRefs: d.anas,
		FlexTries:   len(d.flexTries),
		PatternKeys: d.endsTrie.Len(),
	}
}

func (d *Dict) grammarCount() int {
	n := 0
	for _, b := range d.sec[FieldGrammar] {
		if b == 0 {
			n++
		}
	}
	return n
}

type scheme struct {
	d  *Dict
	id uint32
}

func (s scheme) ID() uint32 { return s.id }

func (s scheme) Frequency() uint32 { return s.d.freq(FieldSchemesFreqID, int(s.id)) }

func (s scheme) FlexTrie() dict.FlexTrie {
	if len(s.d.flexTries) == 0 {
		panic(dict.ErrNoFlexTrie)
	}
	return s.d.flexTries[s.id]
}

func (s scheme) LemmaFlex() []uint16 { return s.d.flexText(s.d.u32(FieldSchemesLemmaFlex, int(s.id))) }

func (s scheme) GrammarString() grammar.String {
	return s.d.grammarAt(int(s.d.u16(FieldSchemesStemGram, int(s.id))))
}

func (s scheme) Block(index int) dict.Block {
	abs := int(s.d.u32(FieldSchemesBlockID, int(s.id))) + index
	if index < 0 || abs >= s.d.blocks {
		dict.OutOfRange("block", index, s.d.blocks-abs+index)
	}
	return block{d: s.d, idx: abs}
}

type block struct {
	d   *Dict
	idx int
}

func (b block) Frequency() uint32 { return b.d.freq(FieldBlocksFreqID, b.idx) }

func (b block) FormFlex() []uint16 { return b.d.flexText(b.d.u32(FieldBlocksFormFlex, b.idx) & idMask) }

func (b block) Grammars() dict.GrammarIterator {
	return &grammarIter{d: b.d, pos: b.d.blockGrammarRef(b.idx)}
}

func (b block) HasNext() bool { return b.d.u32(FieldBlocksFormFlex, b.idx)&hasNextBit != 0 }

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
func (p pattern) Frequency() uint32   { return p.d.freq(FieldEndFreqID, p.id) }
func (p pattern) DiaMask() uint16     { return uint16(p.d.u16(FieldEndDiaMask, p.id)) }
func (p pattern) HasFlexTrie() bool   { return p.d.has(FieldFlexTries) }
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
	if it.d.u32(FieldAnasLists, it.pos)&hasNextBit == 0 {
		it.done = true
		return
	}
	it.pos++
}

func (it *patternIter) Pattern() dict.Pattern {
	if it.done {
		dict.Exhausted("pattern iterator")
	}
	id := int(it.d.u32(FieldAnasLists, it.pos) & idMask)
	return pattern{d: it.d, id: id, info: dict.UnpackEndInfo(it.d.u32(FieldEndInfo, id))}
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
	if it.d.u32(FieldGrammarAddrs, it.pos)&hasNextBit == 0 {
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
