package dict

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lemmago/grammar"
)

// ErrInvalidSource is returned by writers for an inconsistent Source.
var ErrInvalidSource = errors.New("dict: invalid source")

// Ref is an entry of a chained reference list. Consecutive entries with
// HasNext set form one chain.
type Ref struct {
	ID      uint32
	HasNext bool
}

// SourceScheme is the logical form of a scheme. GrammarRef is the index of a
// GrammarRefs entry naming the stem grammar; FirstBlock is the absolute index
// of the scheme's first block.
type SourceScheme struct {
	LemmaFlex  []uint16
	GrammarRef uint32
	FirstBlock uint32
	Frequency  uint32
}

// SourceBlock is the logical form of a block. GrammarRef is the head of the
// block's chain of grammar readings.
type SourceBlock struct {
	FormFlex   []uint16
	GrammarRef uint32
	Frequency  uint32
	HasNext    bool
}

// SourcePattern is the logical form of a pattern.
type SourcePattern struct {
	Info      EndInfo
	Frequency uint32
	DiaMask   uint16
}

// Source is the backend independent content of a dictionary. Both writers
// serialize exactly this schema.
type Source struct {
	Grammars          []grammar.String
	GrammarRefs       []Ref
	Schemes           []SourceScheme
	Blocks            []SourceBlock
	Patterns          []SourcePattern
	PatternRefs       []Ref
	PatternsTrie      []byte   // reversed key -> index of a PatternRefs chain head
	FlexTries         [][]byte // per scheme, flexion -> block index; empty or one per scheme
	DefaultGrammarRef uint32
	Fingerprint       string
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSource, fmt.Sprintf(format, args...))
}

// Validate checks the cross references writers rely on.
func (s *Source) Validate() error {
	if len(s.Grammars) == 0 {
		return invalid("no grammar strings")
	}
	for i, g := range s.Grammars {
		for _, c := range g {
			if c == 0 {
				return invalid("grammar %d contains NUL", i)
			}
		}
	}
	if err := validChain("grammar ref", s.GrammarRefs, len(s.Grammars)); err != nil {
		return err
	}
	if err := validChain("pattern ref", s.PatternRefs, len(s.Patterns)); err != nil {
		return err
	}
	if len(s.GrammarRefs) == 0 {
		return invalid("no grammar refs")
	}
	if int(s.DefaultGrammarRef) >= len(s.GrammarRefs) {
		return invalid("default grammar ref %d out of range", s.DefaultGrammarRef)
	}
	if n := len(s.Blocks); n > 0 && s.Blocks[n-1].HasNext {
		return invalid("last block continues past the table")
	}
	for i, sc := range s.Schemes {
		if int(sc.GrammarRef) >= len(s.GrammarRefs) {
			return invalid("scheme %d grammar ref %d out of range", i, sc.GrammarRef)
		}
		if int(sc.FirstBlock) >= len(s.Blocks) {
			return invalid("scheme %d first block %d out of range", i, sc.FirstBlock)
		}
	}
	for i, b := range s.Blocks {
		if int(b.GrammarRef) >= len(s.GrammarRefs) {
			return invalid("block %d grammar ref %d out of range", i, b.GrammarRef)
		}
	}
	for i, p := range s.Patterns {
		if err := p.Info.Validate(); err != nil {
			return invalid("pattern %d: %v", i, err)
		}
		if int(p.Info.SchemeID) >= len(s.Schemes) {
			return invalid("pattern %d scheme %d out of range", i, p.Info.SchemeID)
		}
	}
	if len(s.PatternsTrie) == 0 {
		return invalid("missing patterns trie")
	}
	if len(s.FlexTries) != 0 && len(s.FlexTries) != len(s.Schemes) {
		return invalid("%d flex tries for %d schemes", len(s.FlexTries), len(s.Schemes))
	}
	for i, t := range s.FlexTries {
		if len(t) == 0 {
			return invalid("flex trie %d is empty", i)
		}
	}
	return nil
}

func validChain(what string, refs []Ref, size int) error {
	for i, r := range refs {
		if int(r.ID) >= size {
			return invalid("%s %d points at %d of %d", what, i, r.ID, size)
		}
	}
	if n := len(refs); n > 0 && refs[n-1].HasNext {
		return invalid("last %s continues past the table", what)
	}
	return nil
}
