// Package codec selects the JSON implementation used for dictionary sources
// and command output.
//
// Dictionary sources (paradigms and lexemes) are plain JSON documents; the
// codec only decides which decoder reads them. Both built-in codecs produce
// and accept the same documents.
package codec

import (
	"errors"
	"fmt"
)

// ErrTrailingData is returned when a document is followed by more input.
var ErrTrailingData = errors.New("codec: trailing data after document")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use. Unmarshal rejects keys
// that v does not declare, so a misspelled field in a dictionary source
// fails the build instead of being dropped.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Names lists the built-in codec names.
func Names() []string { return []string{"go-json", "json"} }

// MustMarshal marshals v and panics on failure. A nil codec means Default.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

type decoder interface {
	DisallowUnknownFields()
	Decode(v any) error
	More() bool
}

func decodeStrict(dec decoder, v any) error {
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}
