package field

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/morezero/functioneer/pkg/codec"
)

// Stringify returns the text form of an argument value. Strings pass through,
// byte slices become base64, scalars use their shortest decimal or boolean
// text, and anything else is encoded as JSON. It reports false for nil and nil
// pointers, the placeholders of a missing argument.
func Stringify(arg any) (string, bool) {
	rv := reflect.ValueOf(arg)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", false
	}

	switch v := arg.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return codec.BytesToBase64(v), true
	case json.Number:
		return v.String(), true
	case fmt.Stringer:
		return v.String(), true
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}

	data, err := codec.EncodePayload(arg)
	if err != nil {
		return fmt.Sprint(arg), true
	}
	return string(data), true
}
