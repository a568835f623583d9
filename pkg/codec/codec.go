// Package codec provides the pure conversions between argument text and typed
// values, and the JSON payload helpers used to render result envelopes.
package codec

import (
	"bytes"
	"encoding/json"
)

// EncodePayload serializes a value to JSON bytes. HTML characters are left
// unescaped so help text embedded in messages stays readable.
func EncodePayload(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodePayload deserializes JSON bytes into the given target.
func DecodePayload(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
