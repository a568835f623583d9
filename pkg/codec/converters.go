package codec

import (
	"encoding/base64"
	"errors"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

const logPrefix = "codec:converters"

// ParseIntPrefix parses the leading integer of s. Leading white space and a
// single sign are accepted; parsing stops at the first non-digit. It reports
// false when s has no leading digits or the value overflows int64.
func ParseIntPrefix(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsBooleanText reports whether s is "true" or "false", ignoring case.
func IsBooleanText(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}

// ParseBoolean reports whether s equals "true", ignoring case. Any other text
// is false.
func ParseBoolean(s string) bool {
	return strings.EqualFold(s, "true")
}

// ParseArray decodes a JSON array. Elements keep their JSON types.
func ParseArray(s string) ([]any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("%s - invalid JSON: %w", logPrefix, err)
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s - JSON value is %T, not an array", logPrefix, v)
	}
	return arr, nil
}

// FormatArray encodes arr as JSON text.
func FormatArray(arr []any) (string, error) {
	data, err := EncodePayload(arr)
	if err != nil {
		return "", fmt.Errorf("%s - failed to encode array: %w", logPrefix, err)
	}
	return string(data), nil
}

// IsBase64 reports whether s is non-empty padded standard base64: its length
// is a multiple of four, it only holds [A-Za-z0-9+/=], and '=' only appears in
// the last one or two positions.
func IsBase64(s string) bool {
	n := len(s)
	if n == 0 || n%4 != 0 {
		return false
	}
	for i := 0; i < n; i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '+', c == '/', c == '=':
		default:
			return false
		}
	}
	pad := strings.IndexByte(s, '=')
	return pad == -1 || pad == n-1 || (pad == n-2 && s[n-1] == '=')
}

// BytesToBase64 encodes b as padded standard base64.
func BytesToBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Base64ToBytes decodes padded standard base64. The empty string decodes to an
// empty, non-nil slice.
func Base64ToBytes(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s - invalid base64: %w", logPrefix, err)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

var bytesType = reflect.TypeOf([]byte(nil))

// ErrCycle is returned by EncodeBytes for a value that contains itself.
var ErrCycle = errors.New("value contains a cycle")

// EncodeBytes returns v with every []byte leaf replaced by its base64 text.
// Slices, arrays and string-keyed maps are walked recursively and rebuilt as
// []any and map[string]any; any other value, including json.RawMessage, is
// returned unchanged. A map, slice or pointer reached again through itself
// fails with ErrCycle.
func EncodeBytes(v any) (any, error) {
	e := byteEncoder{path: make(map[visit]struct{})}
	return e.encode(v)
}

// visit identifies a container on the current walk path. Slices sharing a
// backing array differ by length.
type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

type byteEncoder struct {
	path map[visit]struct{}
}

// enter marks rv as on the walk path; the returned func unmarks it.
func (e *byteEncoder) enter(rv reflect.Value) (func(), error) {
	k := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		k.len = rv.Len()
	}
	if _, ok := e.path[k]; ok {
		return nil, fmt.Errorf("%s - %s: %w", logPrefix, rv.Type(), ErrCycle)
	}
	e.path[k] = struct{}{}
	return func() { delete(e.path, k) }, nil
}

func (e *byteEncoder) encode(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return t, nil
	case []byte:
		return BytesToBase64(t), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v, nil
		}
		if rv.Type().ConvertibleTo(bytesType) {
			return BytesToBase64(rv.Convert(bytesType).Bytes()), nil
		}
		if rv.Len() == 0 {
			return []any{}, nil
		}
		leave, err := e.enter(rv)
		if err != nil {
			return nil, err
		}
		defer leave()
		return e.encodeList(rv)
	case reflect.Array:
		return e.encodeList(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, nil
		}
		if rv.IsNil() {
			return v, nil
		}
		leave, err := e.enter(rv)
		if err != nil {
			return nil, err
		}
		defer leave()
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			ev, err := e.encode(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = ev
		}
		return out, nil
	case reflect.Pointer:
		if rv.IsNil() {
			return v, nil
		}
		if el := rv.Elem(); el.Kind() == reflect.Slice || el.Kind() == reflect.Array || el.Kind() == reflect.Map {
			leave, err := e.enter(rv)
			if err != nil {
				return nil, err
			}
			defer leave()
			return e.encode(el.Interface())
		}
	}
	return v, nil
}

func (e *byteEncoder) encodeList(rv reflect.Value) ([]any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		ev, err := e.encode(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}
