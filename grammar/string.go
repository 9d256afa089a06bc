package grammar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGrammeme is returned by Parse for an unrecognized tag.
var ErrUnknownGrammeme = errors.New("grammar: unknown grammeme")

// String is a sequence of grammeme codes. It never contains the NUL terminator;
// dictionary backends store the terminator and cut it off with FromRaw.
//
// A String may borrow memory from a loaded dictionary and must not be modified.
type String []byte

// FromRaw returns the grammar string stored at the start of b, up to the
// first NUL byte or the end of b.
func FromRaw(b []byte) String {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return String(b[:i])
	}
	return String(b)
}

// New builds a grammar string from grammemes, skipping Invalid entries.
func New(gs ...Grammeme) String {
	s := make(String, 0, len(gs))
	for _, g := range gs {
		if g != Invalid {
			s = append(s, byte(g))
		}
	}
	return s
}

// Parse parses a comma separated tag list such as "S,m,inan".
// Whitespace around tags is ignored and an empty input yields an empty string.
func Parse(text string) (String, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return String{}, nil
	}
	parts := strings.Split(text, ",")
	s := make(String, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, ok := Lookup(p)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGrammeme, p)
		}
		s = append(s, byte(g))
	}
	return s, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) String {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Has reports whether the string contains g. It is a linear scan.
func (s String) Has(g Grammeme) bool {
	if g == Invalid {
		return false
	}
	return bytes.IndexByte(s, byte(g)) >= 0
}

// HasAll reports whether the string contains every grammeme of other.
func (s String) HasAll(other String) bool {
	for _, g := range other {
		if bytes.IndexByte(s, g) < 0 {
			return false
		}
	}
	return true
}

// Grammemes returns the codes as a Grammeme slice.
func (s String) Grammemes() []Grammeme {
	out := make([]Grammeme, len(s))
	for i, b := range s {
		out[i] = Grammeme(b)
	}
	return out
}

// Len returns the number of grammemes.
func (s String) Len() int { return len(s) }

// Equal reports whether both strings hold the same codes in the same order.
func (s String) Equal(other String) bool { return bytes.Equal(s, other) }

// Clone returns a copy that does not borrow dictionary memory.
func (s String) Clone() String {
	if s == nil {
		return nil
	}
	return append(String{}, s...)
}

// Append returns s followed by the grammemes of other that s lacks.
func (s String) Append(other String) String {
	out := s.Clone()
	for _, g := range other {
		if bytes.IndexByte(out, g) < 0 {
			out = append(out, g)
		}
	}
	return out
}

// Raw returns the NUL terminated storage form.
func (s String) Raw() []byte {
	out := make([]byte, len(s)+1)
	copy(out, s)
	return out
}

// Format renders the string as a comma separated tag list.
func (s String) Format() string {
	var b strings.Builder
	for i, g := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Grammeme(g).String())
	}
	return b.String()
}

func (s String) String() string { return s.Format() }

// MarshalJSON encodes the string as its tag list.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Format())
}

// UnmarshalJSON decodes a tag list produced by MarshalJSON.
func (s *String) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
