package testutil

import (
	"github.com/hupe1980/lemmago/dictbuild"
)

func forms(grammars map[string][]string, order ...string) []dictbuild.Form {
	var out []dictbuild.Form
	for _, flex := range order {
		for _, g := range grammars[flex] {
			out = append(out, dictbuild.Form{Flex: flex, Grammar: g})
		}
	}
	return out
}

var nounCases = []string{
	"nom,sg", "gen,sg", "dat,sg", "acc,sg", "ins,sg", "loc,sg",
	"nom,pl", "gen,pl", "dat,pl", "acc,pl", "ins,pl", "loc,pl",
}

// RussianSpec returns the Russian fixture. It covers a masculine noun with
// a fleeting vowel (день), homonymous forms of three paradigms (оле), an
// indeclinable noun (такси), a stem with a diacritic (ёлка) and a fallback
// paradigm for unknown proper names.
func RussianSpec() dictbuild.Spec {
	return dictbuild.Spec{
		Fingerprint: "rus-fixture-1",
		Bastards:    true,
		Paradigms: []dictbuild.Paradigm{
			{
				Name:        "den",
				LemmaFlex:   "ень",
				StemGrammar: "S,m,inan",
				Forms: forms(map[string][]string{
					"ень":  {"nom,sg", "acc,sg"},
					"ня":   {"gen,sg"},
					"ню":   {"dat,sg"},
					"нем":  {"ins,sg"},
					"не":   {"loc,sg"},
					"ни":   {"nom,pl", "acc,pl"},
					"ней":  {"gen,pl"},
					"ням":  {"dat,pl"},
					"нями": {"ins,pl"},
					"нях":  {"loc,pl"},
				}, "ень", "ня", "ню", "нем", "не", "ни", "ней", "ням", "нями", "нях"),
			},
			{
				Name:        "ola",
				LemmaFlex:   "а",
				StemGrammar: "S,geo,f,inan",
				Forms: forms(map[string][]string{
					"а":  {"nom,sg"},
					"ы":  {"gen,sg"},
					"е":  {"dat,sg", "loc,sg"},
					"у":  {"acc,sg"},
					"ой": {"ins,sg"},
				}, "а", "ы", "е", "у", "ой"),
			},
			{
				Name:        "olya",
				LemmaFlex:   "я",
				StemGrammar: "S,persn,f,anim",
				Forms: forms(map[string][]string{
					"я":  {"nom,sg"},
					"и":  {"gen,sg"},
					"е":  {"dat,sg", "loc,sg"},
					"ю":  {"acc,sg"},
					"ей": {"ins,sg"},
				}, "я", "и", "е", "ю", "ей"),
			},
			{
				Name:        "indecl",
				LemmaFlex:   "",
				StemGrammar: "S,n,inan,0",
				Forms:       forms(map[string][]string{"": nounCases}, ""),
			},
			{
				Name:        "yolka",
				LemmaFlex:   "а",
				StemGrammar: "S,f,inan",
				Forms: forms(map[string][]string{
					"а":  {"nom,sg"},
					"и":  {"gen,sg", "nom,pl", "acc,pl"},
					"е":  {"dat,sg", "loc,sg"},
					"у":  {"acc,sg"},
					"ой": {"ins,sg"},
				}, "а", "и", "е", "у", "ой"),
			},
			{
				Name:     "unknown",
				Fallback: true,
				Forms:    []dictbuild.Form{{Flex: ""}},
			},
		},
		Lexemes: []dictbuild.Lexeme{
			{Stem: "д", Paradigm: "den", Frequency: 40},
			{Stem: "ол", Paradigm: "ola"},
			{Stem: "ол", Paradigm: "olya", Frequency: 3},
			{Stem: "оле", Paradigm: "indecl"},
			{Stem: "такси", Paradigm: "indecl", Frequency: 5},
			{Stem: "ёлк", Paradigm: "yolka", Frequency: 2},
		},
	}
}

// UkrainianSpec returns the Ukrainian fixture with heuristic patterns
// learned from книга.
func UkrainianSpec() dictbuild.Spec {
	return dictbuild.Spec{
		Fingerprint: "ukr-fixture-1",
		Bastards:    true,
		Paradigms: []dictbuild.Paradigm{
			{
				Name:        "knyha",
				LemmaFlex:   "а",
				StemGrammar: "S,f,inan",
				Forms: forms(map[string][]string{
					"а":  {"nom,sg"},
					"и":  {"gen,sg", "nom,pl", "acc,pl"},
					"і":  {"dat,sg", "loc,sg"},
					"у":  {"acc,sg"},
					"ою": {"ins,sg"},
					"ам": {"dat,pl"},
				}, "а", "и", "і", "у", "ою", "ам"),
			},
		},
		Lexemes: []dictbuild.Lexeme{
			{Stem: "книг", Paradigm: "knyha"},
		},
	}
}

// EnglishSpec returns the English fixture.
func EnglishSpec() dictbuild.Spec {
	return dictbuild.Spec{
		Fingerprint: "eng-fixture-1",
		Paradigms: []dictbuild.Paradigm{
			{
				Name:        "noun",
				StemGrammar: "S",
				Forms: []dictbuild.Form{
					{Flex: "", Grammar: "sg"},
					{Flex: "s", Grammar: "pl"},
				},
			},
		},
		Lexemes: []dictbuild.Lexeme{
			{Stem: "taxi", Paradigm: "noun"},
			{Stem: "day", Paradigm: "noun"},
		},
	}
}
