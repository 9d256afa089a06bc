package bindict

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/internal/conv"
	"github.com/hupe1980/lemmago/internal/hash"
)

// Encode serializes src into the binary format.
func Encode(src *dict.Source) ([]byte, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	w := newWriter()

	// Grammar strings and their chained refs.
	grammarOff := make([]uint32, len(src.Grammars))
	var grammars []byte
	for i, g := range src.Grammars {
		grammarOff[i] = uint32(len(grammars))
		grammars = append(grammars, g.Raw()...)
	}
	if len(grammars) > idMask {
		return nil, fmt.Errorf("%w: grammar section too large", dict.ErrInvalidSource)
	}
	refs := make([]uint32, len(src.GrammarRefs))
	for i, r := range src.GrammarRefs {
		refs[i] = withNext(grammarOff[r.ID], r.HasNext)
	}
	w.section(FieldGrammar, grammars)
	w.section(FieldGrammarAddrs, u32s(refs))

	// Flexion texts are stored once and shared.
	flexIDs := make(map[string]uint32)
	var flexies []byte
	var flexAddrs []uint32
	flexID := func(text []uint16) uint32 {
		enc := dict.EncodeText(text)
		if id, ok := flexIDs[string(enc)]; ok {
			return id
		}
		id := uint32(len(flexAddrs))
		flexIDs[string(enc)] = id
		flexAddrs = append(flexAddrs, uint32(len(flexies)))
		flexies = append(flexies, enc...)
		return id
	}

	freqIDs := make(map[uint32]uint16)
	var freqs []uint32
	var freqErr error
	freqID := func(v uint32) uint16 {
		if id, ok := freqIDs[v]; ok {
			return id
		}
		id, err := conv.IntToUint16(len(freqs))
		if err != nil {
			freqErr = fmt.Errorf("%w: too many distinct frequencies: %w", dict.ErrInvalidSource, err)
			return 0
		}
		freqIDs[v] = id
		freqs = append(freqs, v)
		return id
	}

	n := len(src.Schemes)
	lemmaFlex := make([]uint32, n)
	stemGram := make([]uint16, n)
	blockID := make([]uint32, n)
	schemeFreq := make([]uint16, n)
	for i, s := range src.Schemes {
		ref, err := conv.Uint32ToUint16(s.GrammarRef)
		if err != nil {
			return nil, fmt.Errorf("%w: scheme %d grammar ref: %w", dict.ErrInvalidSource, i, err)
		}
		lemmaFlex[i] = flexID(s.LemmaFlex)
		stemGram[i] = ref
		blockID[i] = s.FirstBlock
		schemeFreq[i] = freqID(s.Frequency)
	}

	n = len(src.Blocks)
	formFlex := make([]uint32, n)
	flexGram := make([]uint16, n)
	blockFreq := make([]uint16, n)
	for i, b := range src.Blocks {
		ref, err := conv.Uint32ToUint16(b.GrammarRef)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d grammar ref: %w", dict.ErrInvalidSource, i, err)
		}
		formFlex[i] = withNext(flexID(b.FormFlex), b.HasNext)
		flexGram[i] = ref
		blockFreq[i] = freqID(b.Frequency)
	}

	n = len(src.Patterns)
	endInfo := make([]uint32, n)
	diaMask := make([]uint16, n)
	endFreq := make([]uint16, n)
	for i, p := range src.Patterns {
		endInfo[i] = p.Info.Pack()
		diaMask[i] = p.DiaMask
		endFreq[i] = freqID(p.Frequency)
	}
	if freqErr != nil {
		return nil, freqErr
	}
	defaultRef, err := conv.Uint32ToUint16(src.DefaultGrammarRef)
	if err != nil {
		return nil, fmt.Errorf("%w: default grammar ref: %w", dict.ErrInvalidSource, err)
	}

	anas := make([]uint32, len(src.PatternRefs))
	for i, r := range src.PatternRefs {
		anas[i] = withNext(r.ID, r.HasNext)
	}

	w.section(FieldFlexies, flexies)
	w.section(FieldFlexiesAddrs, u32s(flexAddrs))
	if len(src.FlexTries) > 0 {
		var tries []byte
		addrs := make([]uint32, len(src.FlexTries))
		for i, t := range src.FlexTries {
			addrs[i] = uint32(len(tries))
			tries = append(tries, t...)
		}
		w.section(FieldFlexTries, tries)
		w.section(FieldFlexTriesAddrs, u32s(addrs))
	}
	w.section(FieldEndsTrie, src.PatternsTrie)
	w.section(FieldSchemesLemmaFlex, u32s(lemmaFlex))
	w.section(FieldSchemesStemGram, u16s(stemGram))
	w.section(FieldSchemesBlockID, u32s(blockID))
	w.section(FieldSchemesFreqID, u16s(schemeFreq))
	w.section(FieldBlocksFormFlex, u32s(formFlex))
	w.section(FieldBlocksFlexGram, u16s(flexGram))
	w.section(FieldBlocksFreqID, u16s(blockFreq))
	w.section(FieldEndInfo, u32s(endInfo))
	w.section(FieldEndDiaMask, u16s(diaMask))
	w.section(FieldEndFreqID, u16s(endFreq))
	w.section(FieldAnasLists, u32s(anas))
	w.section(FieldFreqs, u32s(freqs))
	w.section(FieldDefaultFlexGram, u16s([]uint16{defaultRef}))
	w.section(FieldFingerprint, []byte(src.Fingerprint))
	return w.finish()
}

type writer struct {
	hdr  Header
	body []byte
	err  error
}

func newWriter() *writer {
	return &writer{hdr: Header{Magic: Magic, Version: FormatVersion}}
}

// section appends data aligned to 4 bytes and records its location.
func (w *writer) section(f Field, data []byte) {
	if len(data) == 0 || w.err != nil {
		return
	}
	for len(w.body)%4 != 0 {
		w.body = append(w.body, 0)
	}
	off, err := conv.IntToUint32(HeaderSize + len(w.body))
	if err == nil {
		_, err = conv.IntToUint32(HeaderSize + len(w.body) + len(data))
	}
	if err != nil {
		w.err = fmt.Errorf("%w: section %s: %w", dict.ErrInvalidSource, f, err)
		return
	}
	w.hdr.Offset[f] = off
	w.hdr.Length[f] = uint32(len(data))
	w.body = append(w.body, data...)
}

func (w *writer) finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.hdr.Checksum = hash.Sum(w.body)
	return append(w.hdr.Encode(), w.body...), nil
}

func withNext(v uint32, next bool) uint32 {
	if next {
		return v | hasNextBit
	}
	return v
}

func u32s(v []uint32) []byte {
	b := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[4*i:], x)
	}
	return b
}

func u16s(v []uint16) []byte {
	b := make([]byte, 2*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint16(b[2*i:], x)
	}
	return b
}
