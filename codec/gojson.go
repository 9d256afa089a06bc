package codec

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// GoJSON is a JSON codec backed by github.com/goccy/go-json. It is the
// default for dictionary sources, which run to tens of megabytes.
type GoJSON struct{}

// Marshal encodes v as one JSON document.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes a single document into v, rejecting unknown keys.
func (GoJSON) Unmarshal(data []byte, v any) error {
	return decodeStrict(gojson.NewDecoder(bytes.NewReader(data)), v)
}

// Name returns "go-json".
func (GoJSON) Name() string { return "go-json" }

// Default is the codec used when none is requested.
var Default Codec = GoJSON{}
