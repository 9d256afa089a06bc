package grammar

import "fmt"

// Grammeme is a single grammatical category value.
type Grammeme byte

// Invalid is the terminator of a grammar string and never a valid grammeme.
const Invalid Grammeme = 0

// Parts of speech.
const (
	Noun Grammeme = iota + 1
	Adjective
	Verb
	Adverb
	Numeral
	AdjNumeral
	Pronoun
	AdjPronoun
	AdvPronoun
	Preposition
	Conjunction
	Particle
	Interjection
	Predicative
	Composite
)

// Genders, animacy and number.
const (
	Masculine Grammeme = iota + 32
	Feminine
	Neuter
	MasFem
	Animated
	Inanimated
	Singular
	Plural
)

// Cases.
const (
	Nominative Grammeme = iota + 48
	Genitive
	Dative
	Accusative
	Instrumental
	Ablative
	Partitive
	Locative
	Vocative
)

// Verbal categories.
const (
	Present Grammeme = iota + 64
	Past
	Future
	Indicative
	Imperative
	Infinitive
	Participle
	Gerund
	Person1
	Person2
	Person3
	Imperfective
	Perfective
	Active
	Passive
	Short
	Comparative
)

// Semantic and service markers.
const (
	FirstName Grammeme = iota + 96
	Surname
	Patronymic
	Geo
	Abbreviation
	Obsolete
	Rare
	Indeclinable
	Distort
)

var names = map[Grammeme]string{
	Noun:         "S",
	Adjective:    "A",
	Verb:         "V",
	Adverb:       "ADV",
	Numeral:      "NUM",
	AdjNumeral:   "ANUM",
	Pronoun:      "SPRO",
	AdjPronoun:   "APRO",
	AdvPronoun:   "ADVPRO",
	Preposition:  "PR",
	Conjunction:  "CONJ",
	Particle:     "PART",
	Interjection: "INTJ",
	Predicative:  "praedic",
	Composite:    "COM",
	Masculine:    "m",
	Feminine:     "f",
	Neuter:       "n",
	MasFem:       "mf",
	Animated:     "anim",
	Inanimated:   "inan",
	Singular:     "sg",
	Plural:       "pl",
	Nominative:   "nom",
	Genitive:     "gen",
	Dative:       "dat",
	Accusative:   "acc",
	Instrumental: "ins",
	Ablative:     "abl",
	Partitive:    "part",
	Locative:     "loc",
	Vocative:     "voc",
	Present:      "praes",
	Past:         "praet",
	Future:       "fut",
	Indicative:   "indic",
	Imperative:   "imper",
	Infinitive:   "inf",
	Participle:   "partcp",
	Gerund:       "ger",
	Person1:      "1p",
	Person2:      "2p",
	Person3:      "3p",
	Imperfective: "ipf",
	Perfective:   "pf",
	Active:       "act",
	Passive:      "pass",
	Short:        "brev",
	Comparative:  "comp",
	FirstName:    "persn",
	Surname:      "famn",
	Patronymic:   "patrn",
	Geo:          "geo",
	Abbreviation: "abbr",
	Obsolete:     "obsol",
	Rare:         "rare",
	Indeclinable: "0",
	Distort:      "distort",
}

var codes = func() map[string]Grammeme {
	m := make(map[string]Grammeme, len(names))
	for g, n := range names {
		m[n] = g
	}
	return m
}()

// String returns the short tag of the grammeme.
func (g Grammeme) String() string {
	if n, ok := names[g]; ok {
		return n
	}
	return fmt.Sprintf("Grammeme(%d)", byte(g))
}

// Valid reports whether g is a known grammeme.
func (g Grammeme) Valid() bool {
	_, ok := names[g]
	return ok
}

// Lookup returns the grammeme with the given short tag.
func Lookup(name string) (Grammeme, bool) {
	g, ok := codes[name]
	return g, ok
}
