package lemma

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lang"
)

// Quality tells how a lemma was obtained.
type Quality uint32

const (
	// QualityDictionary marks a lemma of a word found in the dictionary.
	QualityDictionary Quality = 0
	// QualityBastard marks a lemma guessed from a heuristic pattern.
	QualityBastard Quality = 1
	// QualitySob marks a guess made from a short ending only.
	QualitySob Quality = 2
	// QualityFoundling marks a word no dictionary could analyze.
	QualityFoundling Quality = 8
)

func (q Quality) String() string {
	switch q {
	case QualityDictionary:
		return "dictionary"
	case QualityBastard:
		return "bastard"
	case QualitySob:
		return "sob"
	case QualityFoundling:
		return "foundling"
	default:
		return fmt.Sprintf("quality(%d)", uint32(q))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// Accept is a set of candidate kinds a caller is willing to receive.
type Accept uint8

const (
	AcceptDictionary Accept = 1 << iota
	AcceptBastard
	AcceptSob
	AcceptFoundling

	AcceptAll = AcceptDictionary | AcceptBastard | AcceptSob | AcceptFoundling
)

// Has reports whether every kind of f is accepted.
func (a Accept) Has(f Accept) bool { return a&f == f }

// Lemma is one analysis of a word.
type Lemma struct {
	// Text is the normalized lemma.
	Text string `json:"text"`
	// Form is the analyzed surface word.
	Form     string        `json:"form"`
	Language lang.Language `json:"language"`
	Quality  Quality       `json:"quality"`
	Weight   float64       `json:"weight"`

	ParadigmID uint32 `json:"paradigm_id"`
	RuleID     uint32 `json:"rule_id"`

	// PrefixLen and FlexLen split Form into prefix, stem and flexion, in
	// UTF-16 code units.
	PrefixLen int `json:"prefix_len,omitempty"`
	FlexLen   int `json:"flex_len,omitempty"`
	// FormLen is the length of Form in UTF-16 code units.
	FormLen int `json:"form_len"`
	// LemmaPrefixLen and SuffixLen delimit the stem inside Text.
	LemmaPrefixLen int `json:"lemma_prefix_len,omitempty"`
	SuffixLen      int `json:"suffix_len,omitempty"`

	StemGram  grammar.String   `json:"stem_grammar"`
	FlexGrams []grammar.String `json:"flex_grammars"`
	AdditGram grammar.String   `json:"addit_grammar,omitempty"`

	Distortions int `json:"distortions,omitempty"`

	TokenPos  int `json:"token_pos,omitempty"`
	TokenSpan int `json:"token_span,omitempty"`
}

// Fields are the inputs Build turns into a Lemma.
type Fields struct {
	Form string
	// Stem is the stem of the analyzed word without its prefix.
	Stem []uint16
	// LemmaFlex is the lemma flexion of the scheme, optionally embedding
	// an affix delimiter as prefix$suffix.
	LemmaFlex  []uint16
	Language   lang.Language
	Quality    Quality
	Weight     float64
	ParadigmID uint32
	PrefixLen  int
	FlexLen    int
	FormLen    int
	StemGram   grammar.String
	FlexGrams  []grammar.String
	// Distortions is the number of restored diacritics; a positive value
	// adds the distort grammeme.
	Distortions int
}

const affixDelimiter = '$'

// Build assembles a lemma. RuleID defaults to the paradigm id.
func Build(f Fields) Lemma {
	l := Lemma{
		Form:        f.Form,
		Language:    f.Language,
		Quality:     f.Quality,
		Weight:      f.Weight,
		ParadigmID:  f.ParadigmID,
		RuleID:      f.ParadigmID,
		PrefixLen:   f.PrefixLen,
		FlexLen:     f.FlexLen,
		FormLen:     f.FormLen,
		StemGram:    f.StemGram.Clone(),
		FlexGrams:   make([]grammar.String, len(f.FlexGrams)),
		Distortions: f.Distortions,
	}
	for i, g := range f.FlexGrams {
		l.FlexGrams[i] = g.Clone()
	}

	var text []uint16
	if pos := slices.Index(f.LemmaFlex, affixDelimiter); pos >= 0 {
		text = slices.Concat(f.LemmaFlex[:pos], f.Stem, f.LemmaFlex[pos+1:])
		l.LemmaPrefixLen = pos
	} else {
		text = slices.Concat(f.Stem, f.LemmaFlex)
	}
	l.Text = decode(text)
	if f.Distortions > 0 {
		l.AdditGram = grammar.New(grammar.Distort)
	}
	return l
}

// IsDistorted reports whether diacritics were restored in the lemma.
func (l Lemma) IsDistorted() bool { return l.AdditGram.Has(grammar.Distort) }

// HasGram reports whether the stem grammar or any flexion reading holds g.
func (l Lemma) HasGram(g grammar.Grammeme) bool {
	if l.StemGram.Has(g) {
		return true
	}
	return slices.ContainsFunc(l.FlexGrams, func(s grammar.String) bool { return s.Has(g) })
}

// Stem returns the lemma stem: Text without its lemma prefix and flexion.
// The stem length is derived from the analyzed form.
func (l Lemma) Stem() []uint16 {
	text := encode(l.Text)
	n := l.FormLen - l.PrefixLen - l.FlexLen
	if n < 0 || l.LemmaPrefixLen+n > len(text) {
		return nil
	}
	return text[l.LemmaPrefixLen : l.LemmaPrefixLen+n]
}

// Postfix returns the trailing part of Text excluded from inflection.
func (l Lemma) Postfix() []uint16 {
	text := encode(l.Text)
	if l.SuffixLen <= 0 || l.SuffixLen > len(text) {
		return nil
	}
	return text[len(text)-l.SuffixLen:]
}

func (l Lemma) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] %s", l.Text, l.Language, l.StemGram.Format())
	for i, g := range l.FlexGrams {
		if i == 0 {
			sb.WriteString(" (")
		} else {
			sb.WriteString(" | ")
		}
		sb.WriteString(g.Format())
		if i == len(l.FlexGrams)-1 {
			sb.WriteString(")")
		}
	}
	if l.Quality != QualityDictionary {
		fmt.Fprintf(&sb, " %s", l.Quality)
	}
	return sb.String()
}
