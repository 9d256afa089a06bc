package alpha

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/hupe1980/lemmago/lang"
)

// CharClass is a bit set describing a character within an alphabet.
type CharClass uint8

const (
	// CharAlpha marks characters that may appear in a word.
	CharAlpha CharClass = 1 << iota
	// CharAlphaRequired marks letters; a heuristic stem needs at least one.
	CharAlphaRequired
	// CharSign marks word-internal signs such as apostrophes.
	CharSign
	// CharDiacritic marks letters that carry a removable diacritic.
	CharDiacritic
)

// Table is the alphabet of one language. It is immutable and safe for
// concurrent use.
type Table struct {
	language lang.Language
	classes  map[rune]CharClass
	dia      *DiacriticsMap
}

// NewTable builds an alphabet from lowercase letters, signs and the subset of
// letters that carry diacritics.
func NewTable(l lang.Language, letters, signs, diacritics string) *Table {
	t := &Table{language: l, classes: make(map[rune]CharClass)}
	for _, r := range letters {
		t.classes[r] |= CharAlpha | CharAlphaRequired
	}
	for _, r := range signs {
		t.classes[r] |= CharAlpha | CharSign
	}
	if diacritics != "" {
		for _, r := range diacritics {
			t.classes[r] |= CharAlpha | CharAlphaRequired | CharDiacritic
		}
		t.dia = NewDiacriticsMap(diacritics)
	}
	return t
}

// Language returns the language of the alphabet.
func (t *Table) Language() lang.Language { return t.language }

// CharClass returns the class of r, zero for characters outside the alphabet.
// Uppercase letters are classified as their lowercase form.
func (t *Table) CharClass(r rune) CharClass {
	if c, ok := t.classes[r]; ok {
		return c
	}
	return t.classes[unicode.ToLower(r)]
}

// Diacritics returns the diacritics map, or nil if the language has none.
func (t *Table) Diacritics() *DiacriticsMap { return t.dia }

// Normalize returns the NFC, lowercase form of word.
func (t *Table) Normalize(word string) string {
	return strings.ToLower(norm.NFC.String(word))
}

// Accepts reports whether every character of the normalized word belongs to
// the alphabet and at least one is a letter.
func (t *Table) Accepts(word string) bool {
	required := false
	for _, r := range word {
		c := t.CharClass(r)
		if c&CharAlpha == 0 {
			return false
		}
		if c&CharAlphaRequired != 0 {
			required = true
		}
	}
	return required
}

var (
	russian   = NewTable(lang.Russian, "абвгдежзийклмнопрстуфхцчшщъыьэюя", "-", "ё")
	ukrainian = NewTable(lang.Ukrainian, "абвгґдеєжзиіїйклмнопрстуфхцчшщьюя", "'ʼ-", "")
	english   = NewTable(lang.English, "abcdefghijklmnopqrstuvwxyz", "'-", "")
)

// Russian returns the Russian alphabet.
func Russian() *Table { return russian }

// Ukrainian returns the Ukrainian alphabet.
func Ukrainian() *Table { return ukrainian }

// English returns the English alphabet.
func English() *Table { return english }

// ForLanguage returns the built-in alphabet of l.
func ForLanguage(l lang.Language) (*Table, bool) {
	switch l {
	case lang.Russian:
		return russian, true
	case lang.Ukrainian:
		return ukrainian, true
	case lang.English:
		return english, true
	default:
		return nil, false
	}
}
