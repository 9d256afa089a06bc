package alpha

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DiacriticsMap converts between letters with and without diacritics.
// Both directions keep the text length, so positions stay comparable.
type DiacriticsMap struct {
	general map[uint16]uint16
	special map[uint16]uint16
}

// NewDiacriticsMap builds a map for the given letters; each letter must lose
// its marks to a single BMP character.
func NewDiacriticsMap(letters string) *DiacriticsMap {
	m := &DiacriticsMap{general: make(map[uint16]uint16), special: make(map[uint16]uint16)}
	for _, r := range letters {
		for _, v := range []rune{r, unicode.ToUpper(r)} {
			gen, _, err := transform.String(stripMarks, string(v))
			if err != nil || utf8.RuneCountInString(gen) != 1 {
				continue
			}
			g, _ := utf8.DecodeRuneInString(gen)
			if g == v || g > 0xFFFF || v > 0xFFFF {
				continue
			}
			m.general[uint16(v)] = uint16(g)
			if _, ok := m.special[uint16(g)]; !ok {
				m.special[uint16(g)] = uint16(v)
			}
		}
	}
	return m
}

// Generalize returns text with every diacritic letter replaced by its base.
func (m *DiacriticsMap) Generalize(text []uint16) []uint16 {
	out := make([]uint16, len(text))
	for i, c := range text {
		if g, ok := m.general[c]; ok {
			c = g
		}
		out[i] = c
	}
	return out
}

// SpecializeBackward restores diacritics at the positions selected by mask,
// counted from the end of text: bit 0 is the last character.
func (m *DiacriticsMap) SpecializeBackward(text []uint16, mask uint16) []uint16 {
	out := make([]uint16, len(text))
	copy(out, text)
	for i := 0; i < 16 && i < len(out); i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		p := len(out) - 1 - i
		if s, ok := m.special[out[p]]; ok {
			out[p] = s
		}
	}
	return out
}
