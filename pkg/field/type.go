// Package field describes the typed arguments of a registered function and
// the rules that validate and convert their text values.
package field

import "fmt"

const logPrefix = "field:type"

// Type is the declared type of a field. The set is closed.
type Type int

const (
	String Type = iota + 1
	Number
	Boolean
	Array
	Base64Bytes
	Custom
)

var typeNames = map[Type]string{
	String:      "string",
	Number:      "number",
	Boolean:     "boolean",
	Array:       "array",
	Base64Bytes: "base64Bytes",
	Custom:      "custom",
}

// Types returns every field type in declaration order.
func Types() []Type {
	return []Type{String, Number, Boolean, Array, Base64Bytes, Custom}
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType returns the Type named by s.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%s - unknown field type %q", logPrefix, s)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%s - invalid field type %d", logPrefix, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
