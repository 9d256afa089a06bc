package lemma

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lang"
)

func u(s string) []uint16 { return utf16.Encode([]rune(s)) }

func TestBuild(t *testing.T) {
	l := Build(Fields{
		Form:       "дня",
		Stem:       u("д"),
		LemmaFlex:  u("ень"),
		Language:   lang.Russian,
		ParadigmID: 7,
		FlexLen:    2,
		FormLen:    3,
		StemGram:   grammar.MustParse("S,m,inan"),
		FlexGrams:  []grammar.String{grammar.MustParse("gen,sg")},
		Weight:     1.5,
	})
	assert.Equal(t, "день", l.Text)
	assert.Equal(t, uint32(7), l.RuleID)
	assert.Equal(t, QualityDictionary, l.Quality)
	assert.False(t, l.IsDistorted())
	assert.True(t, l.HasGram(grammar.Genitive))
	assert.True(t, l.HasGram(grammar.Noun))
	assert.False(t, l.HasGram(grammar.Plural))
	assert.Equal(t, u("д"), l.Stem())
	assert.Nil(t, l.Postfix())
}

func TestBuildAffix(t *testing.T) {
	l := Build(Fields{
		Form:      "наибольший",
		Stem:      u("больш"),
		LemmaFlex: u("$ий"),
		PrefixLen: 3,
		FlexLen:   2,
		FormLen:   10,
	})
	assert.Equal(t, "больший", l.Text)
	assert.Equal(t, 0, l.LemmaPrefixLen)
	assert.Equal(t, u("больш"), l.Stem())

	l = Build(Fields{Stem: u("дел"), LemmaFlex: u("по$ать"), FormLen: 3})
	assert.Equal(t, "поделать", l.Text)
	assert.Equal(t, 2, l.LemmaPrefixLen)
	assert.Equal(t, u("дел"), l.Stem())
}

func TestBuildDistorted(t *testing.T) {
	l := Build(Fields{Stem: u("ёлк"), LemmaFlex: u("а"), Distortions: 1, FormLen: 4, FlexLen: 1})
	require.True(t, l.IsDistorted())
	assert.Equal(t, "ёлка", l.Text)
	assert.Equal(t, 1, l.Distortions)
}

func TestAccept(t *testing.T) {
	a := AcceptDictionary | AcceptBastard
	assert.True(t, a.Has(AcceptDictionary))
	assert.True(t, a.Has(AcceptDictionary|AcceptBastard))
	assert.False(t, a.Has(AcceptFoundling))
	assert.True(t, AcceptAll.Has(AcceptSob))
}

func TestQualityString(t *testing.T) {
	assert.Equal(t, "bastard", QualityBastard.String())
	assert.Equal(t, "foundling", QualityFoundling.String())
	assert.Equal(t, "quality(5)", Quality(5).String())
}
