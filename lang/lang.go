// Package lang identifies analysis languages and sets of them.
package lang

import (
	"fmt"
	"strings"
)

// Language is a stable numeric language id.
type Language uint16

const (
	Unknown Language = iota
	Russian
	English
	Ukrainian
	Belarusian
	Kazakh
	Tatar
	Turkish
	German
)

var isoNames = [...]string{
	Unknown:    "unk",
	Russian:    "rus",
	English:    "eng",
	Ukrainian:  "ukr",
	Belarusian: "bel",
	Kazakh:     "kaz",
	Tatar:      "tat",
	Turkish:    "tur",
	German:     "ger",
}

// String returns the three letter ISO 639-2 name.
func (l Language) String() string {
	if int(l) < len(isoNames) {
		return isoNames[l]
	}
	return fmt.Sprintf("lang(%d)", uint16(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Parse resolves an ISO 639-2 name (case insensitive).
func Parse(name string) (Language, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range isoNames {
		if n == name && Language(i) != Unknown {
			return Language(i), nil
		}
	}
	return Unknown, fmt.Errorf("lang: unknown language %q", name)
}
