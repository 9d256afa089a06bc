package dictbuild_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lemmago/alpha"
	"github.com/hupe1980/lemmago/analyzer"
	"github.com/hupe1980/lemmago/dict"
	"github.com/hupe1980/lemmago/dictbuild"
	"github.com/hupe1980/lemmago/generator"
	"github.com/hupe1980/lemmago/grammar"
	"github.com/hupe1980/lemmago/lemma"
	"github.com/hupe1980/lemmago/testutil"
)

func TestCompile(t *testing.T) {
	src := testutil.RussianSource(t)

	assert.Zero(t, src.Grammars[0].Len())
	assert.Equal(t, dict.Ref{ID: 0}, src.GrammarRefs[src.DefaultGrammarRef])
	assert.Len(t, src.Schemes, 6)
	assert.Len(t, src.FlexTries, 6)
	assert.Equal(t, "rus-fixture-1", src.Fingerprint)
	require.NoError(t, src.Validate())

	d := testutil.Binary(t, src)
	for _, p := range collect(d, "ель") {
		assert.False(t, p.IsFinal())
	}
	final := collect(d, "день")
	require.NotEmpty(t, final)
	assert.True(t, final[0].IsFinal())
}

func collect(d dict.Data, word string) []dict.Pattern {
	var out []dict.Pattern
	for p := range dict.Patterns(d.MatchPatterns(dict.Reverse(dict.UTF16(word))).Patterns) {
		out = append(out, p)
	}
	return out
}

func TestCompileChainOrder(t *testing.T) {
	d := testutil.Binary(t, testutil.RussianSource(t))
	// "ело" ends оле, ола and оля; the last two share a stem and the
	// chain is ordered by descending frequency.
	ps := collect(d, "оле")
	require.Len(t, ps, 3)
	for i := 1; i < len(ps); i++ {
		assert.GreaterOrEqual(t, ps[i-1].Frequency(), ps[i].Frequency())
	}
}

func TestCompileDiaMask(t *testing.T) {
	d := testutil.Binary(t, testutil.RussianSource(t))
	ps := collect(d, "елка")
	require.Len(t, ps, 1)
	assert.Equal(t, uint16(1<<3|1), ps[0].DiaMask())

	plain := testutil.Binary(t, testutil.Compile(t, testutil.RussianSpec()))
	ps = collect(plain, "ёлка")
	require.Len(t, ps, 1)
	assert.Zero(t, ps[0].DiaMask())
}

func TestCompileWithoutBastards(t *testing.T) {
	spec := testutil.RussianSpec()
	spec.Bastards = false
	d := testutil.Proto(t, testutil.Compile(t, spec))
	for _, w := range []string{"пень", "ель", "ня"} {
		for _, p := range collect(d, w) {
			assert.True(t, p.IsFinal() || p.IsUseAlways(), w)
		}
	}
}

func TestCompileFingerprint(t *testing.T) {
	spec := testutil.EnglishSpec()
	spec.Fingerprint = ""
	a := testutil.Compile(t, spec)
	b := testutil.Compile(t, spec)
	assert.Regexp(t, `^lemmago-[0-9a-f]{8}$`, a.Fingerprint)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	spec.Lexemes = append(spec.Lexemes, dictbuild.Lexeme{Stem: "cab", Paradigm: "noun"})
	assert.NotEqual(t, a.Fingerprint, testutil.Compile(t, spec).Fingerprint)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dictbuild.Spec)
		target error
	}{
		{"unknown paradigm", func(s *dictbuild.Spec) {
			s.Lexemes = append(s.Lexemes, dictbuild.Lexeme{Stem: "x", Paradigm: "missing"})
		}, dictbuild.ErrUnknownParadigm},
		{"duplicate paradigm", func(s *dictbuild.Spec) {
			s.Paradigms = append(s.Paradigms, s.Paradigms[0])
		}, dictbuild.ErrInvalidSpec},
		{"no forms", func(s *dictbuild.Spec) {
			s.Paradigms = append(s.Paradigms, dictbuild.Paradigm{Name: "empty"})
		}, dictbuild.ErrInvalidSpec},
		{"unnamed paradigm", func(s *dictbuild.Spec) {
			s.Paradigms[0].Name = ""
		}, dictbuild.ErrInvalidSpec},
		{"unknown grammeme", func(s *dictbuild.Spec) {
			s.Paradigms[0].StemGrammar = "S,bogus"
		}, grammar.ErrUnknownGrammeme},
		{"fallback without empty flexion", func(s *dictbuild.Spec) {
			s.Paradigms[0].Fallback = true
		}, dictbuild.ErrInvalidSpec},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := testutil.EnglishSpec()
			spec.Paradigms[0].Forms = []dictbuild.Form{{Flex: "s", Grammar: "pl"}}
			tc.mutate(&spec)
			_, err := dictbuild.Compile(spec)
			require.ErrorIs(t, err, tc.target)
		})
	}
}

func TestCompilePrefixedForms(t *testing.T) {
	spec := dictbuild.Spec{
		Paradigms: []dictbuild.Paradigm{{
			Name:        "comparative",
			LemmaFlex:   "ий",
			StemGrammar: "A",
			Forms: []dictbuild.Form{
				{Flex: "ий", Grammar: "nom,sg,m"},
				{Flex: "ий", Prefix: "наи", Grammar: "nom,sg,m,comp"},
			},
		}},
		Lexemes: []dictbuild.Lexeme{{Stem: "больш", Paradigm: "comparative"}},
	}
	src := testutil.Compile(t, spec)
	for name, data := range testutil.Backends(t, src) {
		t.Run(name, func(t *testing.T) {
			a := analyzer.New(data, analyzer.WithAlphabet(alpha.Russian()))
			res := a.Analyze("наибольший", analyzer.Options{Accept: lemma.AcceptDictionary})
			require.Len(t, res, 1)
			l := res[0]
			assert.Equal(t, "больший", l.Text)
			assert.Equal(t, 3, l.PrefixLen)
			assert.Equal(t, 2, l.FlexLen)
			assert.Equal(t, []grammar.String{grammar.MustParse("nom,sg,m,comp")}, l.FlexGrams)

			res = a.Analyze("больший", analyzer.Options{Accept: lemma.AcceptDictionary})
			require.Len(t, res, 1)
			assert.Equal(t, 0, res[0].PrefixLen)
			assert.Equal(t, []grammar.String{grammar.MustParse("nom,sg,m")}, res[0].FlexGrams)

			var forms []string
			for w := range generator.All(data, l) {
				forms = append(forms, w.Text())
			}
			assert.Equal(t, []string{"больший", "наибольший"}, forms)
		})
	}
}

func TestCompileLemmaPrefix(t *testing.T) {
	spec := dictbuild.Spec{
		Paradigms: []dictbuild.Paradigm{{
			Name:        "verb",
			LemmaPrefix: "по",
			LemmaFlex:   "ать",
			StemGrammar: "V,pf",
			Forms: []dictbuild.Form{
				{Flex: "ал", Grammar: "praet,m,sg"},
			},
		}},
		Lexemes: []dictbuild.Lexeme{{Stem: "дел", Paradigm: "verb"}},
	}
	d := testutil.Binary(t, testutil.Compile(t, spec))
	res := analyzer.New(d).Analyze("делал", analyzer.Options{Accept: lemma.AcceptDictionary})
	require.Len(t, res, 1)
	assert.Equal(t, "поделать", res[0].Text)
	assert.Equal(t, 2, res[0].LemmaPrefixLen)
}
