package codec

import (
	"bytes"
	"encoding/json"
)

// JSON is the standard-library JSON codec.
type JSON struct{}

// Marshal encodes v as one JSON document.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes a single document into v, rejecting unknown keys.
func (JSON) Unmarshal(data []byte, v any) error {
	return decodeStrict(json.NewDecoder(bytes.NewReader(data)), v)
}

// Name returns "json".
func (JSON) Name() string { return "json" }
