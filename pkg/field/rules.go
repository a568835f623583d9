package field

import "github.com/morezero/functioneer/pkg/codec"

// rule is the validate/convert strategy pair of a built-in type. invalid is
// the failure message format; it receives the field name.
type rule struct {
	validate func(value string) bool
	convert  func(value string) (any, error)
	invalid  string
}

// Custom is absent: its rule is supplied per descriptor.
var rules = map[Type]rule{
	String: {
		validate: func(v string) bool { return len(v) > 0 },
		convert:  func(v string) (any, error) { return v, nil },
		invalid:  "Invalid string length for field %s",
	},
	Number: {
		validate: func(v string) bool {
			_, ok := codec.ParseIntPrefix(v)
			return ok
		},
		convert: func(v string) (any, error) {
			n, _ := codec.ParseIntPrefix(v)
			return n, nil
		},
		invalid: "Invalid number for field %s",
	},
	Boolean: {
		validate: codec.IsBooleanText,
		convert:  func(v string) (any, error) { return codec.ParseBoolean(v), nil },
		invalid:  "Invalid boolean for field %s",
	},
	Array: {
		validate: func(v string) bool {
			arr, err := codec.ParseArray(v)
			return err == nil && len(arr) > 0
		},
		convert: func(v string) (any, error) { return codec.ParseArray(v) },
		invalid: "Invalid JSON array for field %s",
	},
	Base64Bytes: {
		validate: codec.IsBase64,
		convert:  func(v string) (any, error) { return codec.Base64ToBytes(v) },
		invalid:  "Invalid base64 string for field %s",
	},
}

const (
	customUndefined   = "Custom validation is undefined for field %s"
	customFailed      = "Custom validation failed for field %s"
	customUnsupported = "Unsupported conversion for custom field %s"
	unknownType       = "Invalid field type %s for field %s"
)
