package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/morezero/functioneer/pkg/dispatcher"
	"github.com/morezero/functioneer/pkg/field"
	"github.com/morezero/functioneer/pkg/invokable"
)

var namedColors = map[string]string{
	"red":   "#ff0000",
	"green": "#00ff00",
	"blue":  "#0000ff",
}

// registerFunctions installs the sample functions served by the command.
func registerFunctions(d *dispatcher.Dispatcher) {
	d.Register("add", "Add two numbers", invokable.MustFunc(func(a, b int64) int64 {
		return a + b
	})).
		AddField("a", field.Number, "The first number to add").
		AddField("b", field.Number, "The second number to add")

	d.RegisterWithSchema("subtract", "Subtract two numbers", invokable.MustFunc(func(a, b int64) int64 {
		return a - b
	}), []*field.Descriptor{
		field.New("a", field.Number, "The number to subtract from"),
		field.New("b", field.Number, "The number to subtract"),
	})

	d.Register("greet", "Greet someone", invokable.MustFunc(func(name string, loud bool) string {
		msg := fmt.Sprintf("Hello, %s!", name)
		if loud {
			return strings.ToUpper(msg)
		}
		return msg
	})).
		AddField("name", field.String, "Who to greet").
		AddField("loud", field.Boolean, "Shout the greeting")

	d.Register("sum", "Sum a JSON array of numbers", invokable.MustFunc(func(values []any) (float64, error) {
		total := 0.0
		for i, v := range values {
			n, ok := v.(float64)
			if !ok {
				return 0, fmt.Errorf("element %d is not a number", i)
			}
			total += n
		}
		return total, nil
	})).
		AddField("values", field.Array, "Numbers to add up, e.g. [1,2,3]")

	d.Register("encode", "Encode text as base64 bytes", invokable.MustFunc(func(text string) []byte {
		return []byte(text)
	})).
		AddField("text", field.String, "Text to encode")

	d.Register("decode", "Decode base64 bytes as text", invokable.MustFunc(func(data []byte) string {
		return string(data)
	})).
		AddField("data", field.Base64Bytes, "Base64 encoded text")

	d.Register("color", "Look up the hex code of a named color", invokable.MustFunc(func(ctx context.Context, hex string) string {
		return hex
	})).
		AddField("name", field.Custom, "One of red, green, blue",
			field.WithValidator(field.Predicate(func(v string) bool {
				_, ok := namedColors[strings.ToLower(v)]
				return ok
			})),
			field.WithConverter(func(v string) (any, error) {
				return namedColors[strings.ToLower(v)], nil
			}))
}
