package protodict

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// TLemmerDict field numbers.
const (
	fieldGrammars           protowire.Number = 1
	fieldGrammarRefs        protowire.Number = 2
	fieldSchemes            protowire.Number = 3
	fieldBlocks             protowire.Number = 4
	fieldPatterns           protowire.Number = 5
	fieldMatchedPatterns    protowire.Number = 6
	fieldPatternsTrie       protowire.Number = 7
	fieldFlexTries          protowire.Number = 8
	fieldFingerprint        protowire.Number = 9
	fieldDefaultGrammarRefs protowire.Number = 10
)

type ref struct {
	id      uint32
	hasNext bool
}

type schemeMsg struct {
	flex      []byte
	grammarID uint32
	blockID   uint32
	frequency uint32
}

type blockMsg struct {
	flex       []byte
	grammarRef uint32
	frequency  uint32
	hasNext    bool
}

type patternMsg struct {
	bitmask   uint32
	frequency uint32
	diaMask   uint32
}

type message struct {
	grammars          [][]byte
	grammarRefs       []ref
	schemes           []schemeMsg
	blocks            []blockMsg
	patterns          []patternMsg
	matched           []ref
	patternsTrie      []byte
	flexTries         [][]byte
	fingerprint       string
	defaultGrammarRef uint32
}

// fields iterates over the top-level fields of a serialized message.
func fields(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var (
			v []byte
			x uint64
		)
		switch typ {
		case protowire.BytesType:
			v, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			x, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if err := fn(num, typ, v, x); err != nil {
			return err
		}
	}
	return nil
}

func wireError(field string, typ protowire.Type) error {
	return fmt.Errorf("field %s has wire type %d", field, typ)
}

func u32(field string, typ protowire.Type, x uint64) (uint32, error) {
	if typ != protowire.VarintType {
		return 0, wireError(field, typ)
	}
	if x > 1<<32-1 {
		return 0, fmt.Errorf("field %s value %d overflows uint32", field, x)
	}
	return uint32(x), nil
}

func decodeRef(b []byte) (ref, error) {
	var r ref
	err := fields(b, func(num protowire.Number, typ protowire.Type, _ []byte, x uint64) error {
		var err error
		switch num {
		case 1:
			r.id, err = u32("TRef.Id", typ, x)
		case 2:
			if typ != protowire.VarintType {
				return wireError("TRef.HasNext", typ)
			}
			r.hasNext = protowire.DecodeBool(x)
		}
		return err
	})
	return r, err
}

// decodeText extracts TFlexie.Text.
func decodeText(b []byte) ([]byte, error) {
	var text []byte
	err := fields(b, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != 1 {
			return nil
		}
		if typ != protowire.BytesType {
			return wireError("TFlexie.Text", typ)
		}
		text = v
		return nil
	})
	return text, err
}

// decodeTrie extracts TTrie.Binary.
func decodeTrie(b []byte) ([]byte, error) {
	var bin []byte
	err := fields(b, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != 1 {
			return nil
		}
		if typ != protowire.BytesType {
			return wireError("TTrie.Binary", typ)
		}
		bin = v
		return nil
	})
	return bin, err
}

func decodeScheme(b []byte) (schemeMsg, error) {
	var s schemeMsg
	err := fields(b, func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error {
		var err error
		switch num {
		case 1:
			if typ != protowire.BytesType {
				return wireError("TScheme.Flex", typ)
			}
			s.flex, err = decodeText(v)
		case 2:
			s.grammarID, err = u32("TScheme.GrammarId", typ, x)
		case 3:
			s.blockID, err = u32("TScheme.BlockId", typ, x)
		case 4:
			s.frequency, err = u32("TScheme.Frequency", typ, x)
		}
		return err
	})
	return s, err
}

func decodeBlock(b []byte) (blockMsg, error) {
	var bl blockMsg
	err := fields(b, func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error {
		var err error
		switch num {
		case 1:
			if typ != protowire.BytesType {
				return wireError("TBlock.Flex", typ)
			}
			bl.flex, err = decodeText(v)
		case 2:
			bl.grammarRef, err = u32("TBlock.GrammarRefIndex", typ, x)
		case 3:
			bl.frequency, err = u32("TBlock.Frequency", typ, x)
		case 4:
			if typ != protowire.VarintType {
				return wireError("TBlock.HasNext", typ)
			}
			bl.hasNext = protowire.DecodeBool(x)
		}
		return err
	})
	return bl, err
}

func decodePattern(b []byte) (patternMsg, error) {
	var p patternMsg
	err := fields(b, func(num protowire.Number, typ protowire.Type, _ []byte, x uint64) error {
		var err error
		switch num {
		case 1:
			p.bitmask, err = u32("TPattern.Bitmask", typ, x)
		case 2:
			p.frequency, err = u32("TPattern.Frequency", typ, x)
		case 3:
			p.diaMask, err = u32("TPattern.DiaMask", typ, x)
		}
		return err
	})
	return p, err
}

func decodeMessage(b []byte) (*message, error) {
	m := &message{}
	err := fields(b, func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error {
		if num >= fieldGrammars && num <= fieldFingerprint && typ != protowire.BytesType {
			return wireError(fmt.Sprintf("TLemmerDict.%d", num), typ)
		}
		switch num {
		case fieldGrammars:
			m.grammars = append(m.grammars, v)
		case fieldGrammarRefs:
			r, err := decodeRef(v)
			if err != nil {
				return err
			}
			m.grammarRefs = append(m.grammarRefs, r)
		case fieldSchemes:
			s, err := decodeScheme(v)
			if err != nil {
				return err
			}
			m.schemes = append(m.schemes, s)
		case fieldBlocks:
			bl, err := decodeBlock(v)
			if err != nil {
				return err
			}
			m.blocks = append(m.blocks, bl)
		case fieldPatterns:
			p, err := decodePattern(v)
			if err != nil {
				return err
			}
			m.patterns = append(m.patterns, p)
		case fieldMatchedPatterns:
			r, err := decodeRef(v)
			if err != nil {
				return err
			}
			m.matched = append(m.matched, r)
		case fieldPatternsTrie:
			t, err := decodeTrie(v)
			if err != nil {
				return err
			}
			m.patternsTrie = t
		case fieldFlexTries:
			t, err := decodeTrie(v)
			if err != nil {
				return err
			}
			m.flexTries = append(m.flexTries, t)
		case fieldFingerprint:
			m.fingerprint = string(v)
		case fieldDefaultGrammarRefs:
			var err error
			m.defaultGrammarRef, err = u32("TLemmerDict.DefaultGrammarRefIndex", typ, x)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func appendRef(b []byte, num protowire.Number, r ref) []byte {
	var inner []byte
	inner = protowire.AppendTag(inner, 1, protowire.VarintType)
	inner = protowire.AppendVarint(inner, uint64(r.id))
	if r.hasNext {
		inner = protowire.AppendTag(inner, 2, protowire.VarintType)
		inner = protowire.AppendVarint(inner, protowire.EncodeBool(true))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

// appendBytesMsg appends a nested message whose only field 1 holds text.
func appendBytesMsg(b []byte, num protowire.Number, text []byte) []byte {
	var inner []byte
	inner = protowire.AppendTag(inner, 1, protowire.BytesType)
	inner = protowire.AppendBytes(inner, text)
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func appendUint(b []byte, num protowire.Number, v uint32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func (m *message) marshal() []byte {
	var b []byte
	for _, g := range m.grammars {
		b = protowire.AppendTag(b, fieldGrammars, protowire.BytesType)
		b = protowire.AppendBytes(b, g)
	}
	for _, r := range m.grammarRefs {
		b = appendRef(b, fieldGrammarRefs, r)
	}
	for _, s := range m.schemes {
		var inner []byte
		inner = appendBytesMsg(inner, 1, s.flex)
		inner = appendUint(inner, 2, s.grammarID)
		inner = appendUint(inner, 3, s.blockID)
		inner = appendUint(inner, 4, s.frequency)
		b = protowire.AppendTag(b, fieldSchemes, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}
	for _, bl := range m.blocks {
		var inner []byte
		inner = appendBytesMsg(inner, 1, bl.flex)
		inner = appendUint(inner, 2, bl.grammarRef)
		inner = appendUint(inner, 3, bl.frequency)
		if bl.hasNext {
			inner = protowire.AppendTag(inner, 4, protowire.VarintType)
			inner = protowire.AppendVarint(inner, protowire.EncodeBool(true))
		}
		b = protowire.AppendTag(b, fieldBlocks, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}
	for _, p := range m.patterns {
		var inner []byte
		inner = appendUint(inner, 1, p.bitmask)
		inner = appendUint(inner, 2, p.frequency)
		inner = appendUint(inner, 3, p.diaMask)
		b = protowire.AppendTag(b, fieldPatterns, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}
	for _, r := range m.matched {
		b = appendRef(b, fieldMatchedPatterns, r)
	}
	if m.patternsTrie != nil {
		b = appendBytesMsg(b, fieldPatternsTrie, m.patternsTrie)
	}
	for _, t := range m.flexTries {
		b = appendBytesMsg(b, fieldFlexTries, t)
	}
	if m.fingerprint != "" {
		b = protowire.AppendTag(b, fieldFingerprint, protowire.BytesType)
		b = protowire.AppendString(b, m.fingerprint)
	}
	b = appendUint(b, fieldDefaultGrammarRefs, m.defaultGrammarRef)
	return b
}

// IsProto reports whether data starts with a well-formed TLemmerDict field tag.
func IsProto(data []byte) bool {
	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 {
		return false
	}
	switch {
	case num >= fieldGrammars && num <= fieldFingerprint:
		return typ == protowire.BytesType
	case num == fieldDefaultGrammarRefs:
		return typ == protowire.VarintType
	}
	return false
}
