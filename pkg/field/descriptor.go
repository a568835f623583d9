package field

import (
	"context"
	"fmt"

	"github.com/morezero/functioneer/pkg/fnerr"
)

// Validator decides whether value is acceptable for a Custom field. It may
// block; ctx is the context of the call being validated. Returning false
// fails validation; a non-nil error fails it with the error's message.
type Validator func(ctx context.Context, value string) (bool, error)

// Predicate adapts a plain predicate to a Validator.
func Predicate(fn func(value string) bool) Validator {
	return func(_ context.Context, value string) (bool, error) {
		return fn(value), nil
	}
}

// Converter turns a validated Custom field value into the value passed to the
// callback.
type Converter func(value string) (any, error)

// Option configures a Descriptor.
type Option func(*Descriptor)

// WithValidator sets the validator of a Custom field. It is ignored for the
// built-in types.
func WithValidator(v Validator) Option {
	return func(d *Descriptor) { d.validator = v }
}

// WithConverter sets the converter of a Custom field. Without one, converting
// a Custom field fails with a conversion error.
func WithConverter(c Converter) Option {
	return func(d *Descriptor) { d.converter = c }
}

// Descriptor declares one argument of a function. It is immutable once built.
type Descriptor struct {
	name        string
	typ         Type
	description string
	validator   Validator
	converter   Converter
}

// New creates a Descriptor.
func New(name string, t Type, description string, opts ...Option) *Descriptor {
	d := &Descriptor{name: name, typ: t, description: description}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Descriptor) Name() string        { return d.name }
func (d *Descriptor) Type() Type          { return d.typ }
func (d *Descriptor) Description() string { return d.description }

// HasValidator reports whether a custom validator was supplied.
func (d *Descriptor) HasValidator() bool { return d.validator != nil }

// Validate checks value against the rule of the field's type.
func (d *Descriptor) Validate(ctx context.Context, value string) error {
	return d.validate(ctx, -1, value, true)
}

// ValidateArg checks the argument at position index. A nil argument stands
// for a missing value and fails every type with that type's failure message.
func (d *Descriptor) ValidateArg(ctx context.Context, index int, arg any) error {
	value, ok := Stringify(arg)
	return d.validate(ctx, index, value, ok)
}

func (d *Descriptor) validate(ctx context.Context, index int, value string, present bool) error {
	if d.typ == Custom {
		if d.validator == nil {
			return d.invalid(index, fmt.Sprintf(customUndefined, d.name), nil)
		}
		if !present {
			return d.invalid(index, fmt.Sprintf(customFailed, d.name), nil)
		}
		ok, err := d.validator(ctx, value)
		if err != nil {
			return d.invalid(index, err.Error(), err)
		}
		if !ok {
			return d.invalid(index, fmt.Sprintf(customFailed, d.name), nil)
		}
		return nil
	}

	r, ok := rules[d.typ]
	if !ok {
		return d.invalid(index, fmt.Sprintf(unknownType, d.typ, d.name), nil)
	}
	if !present || !r.validate(value) {
		return d.invalid(index, fmt.Sprintf(r.invalid, d.name), nil)
	}
	return nil
}

func (d *Descriptor) invalid(index int, message string, cause error) error {
	err := fnerr.NewValidationError(d.name, index, d.typ.String(), message)
	err.Err = cause
	return err
}

// Convert maps an already validated value to the field's typed value:
// string, int64, bool, []any or []byte. Custom fields use their converter.
func (d *Descriptor) Convert(value string) (any, error) {
	return d.convert(-1, value)
}

// ConvertArg converts the argument at position index.
func (d *Descriptor) ConvertArg(index int, arg any) (any, error) {
	value, _ := Stringify(arg)
	return d.convert(index, value)
}

func (d *Descriptor) convert(index int, value string) (any, error) {
	if d.typ == Custom {
		if d.converter == nil {
			return nil, fnerr.NewConversionError(d.name, index, d.typ.String(), fmt.Sprintf(customUnsupported, d.name))
		}
		v, err := d.converter(value)
		if err != nil {
			ce := fnerr.NewConversionError(d.name, index, d.typ.String(), err.Error())
			ce.Err = err
			return nil, ce
		}
		return v, nil
	}

	r, ok := rules[d.typ]
	if !ok {
		return nil, fnerr.NewConversionError(d.name, index, d.typ.String(), fmt.Sprintf(unknownType, d.typ, d.name))
	}
	v, err := r.convert(value)
	if err != nil {
		ce := fnerr.NewConversionError(d.name, index, d.typ.String(), err.Error())
		ce.Err = err
		return nil, ce
	}
	return v, nil
}
