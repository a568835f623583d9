// Package invokable binds a callback to an ordered list of typed fields and
// runs it against text arguments.
package invokable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/morezero/functioneer/pkg/field"
	"github.com/morezero/functioneer/pkg/fnerr"
)

const logPrefix = "invokable:unit"

// Callback receives the converted arguments in field order.
type Callback func(ctx context.Context, args []any) (any, error)

// Unit is a callback bound to an ordered field schema. The order of the
// fields is the order of the positional arguments.
type Unit struct {
	fields   []*field.Descriptor
	callback Callback
	log      *slog.Logger
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New creates a Unit without fields. log receives one line per converted
// argument; nil disables it.
func New(callback Callback, log *slog.Logger) *Unit {
	if log == nil {
		log = DiscardLogger()
	}
	return &Unit{callback: callback, log: log}
}

// AddField appends a field. Names are not checked for uniqueness.
func (u *Unit) AddField(name string, t field.Type, description string, opts ...field.Option) *Unit {
	u.fields = append(u.fields, field.New(name, t, description, opts...))
	return u
}

// AddFunctionField appends an existing descriptor.
func (u *Unit) AddFunctionField(d *field.Descriptor) *Unit {
	u.fields = append(u.fields, d)
	return u
}

// SetFields replaces all fields with a copy of fields.
func (u *Unit) SetFields(fields []*field.Descriptor) {
	u.fields = append([]*field.Descriptor(nil), fields...)
}

// Fields returns a copy of the fields in declaration order.
func (u *Unit) Fields() []*field.Descriptor {
	return append([]*field.Descriptor(nil), u.fields...)
}

// FieldByIndex returns the field at position i.
func (u *Unit) FieldByIndex(i int) (*field.Descriptor, bool) {
	if i < 0 || i >= len(u.fields) {
		return nil, false
	}
	return u.fields[i], true
}

// Validate checks the argument count, then each argument in order, and
// returns the first failure.
func (u *Unit) Validate(ctx context.Context, args []any) error {
	if len(args) != len(u.fields) {
		return fnerr.NewArityError(len(u.fields), len(args))
	}
	for i, f := range u.fields {
		if err := f.ValidateArg(ctx, i, args[i]); err != nil {
			return err
		}
	}
	return nil
}

// Run validates args, converts them and invokes the callback with the
// converted values. Callback errors and panics are returned as callback
// errors; an *fnerr.Error returned by the callback is passed through.
func (u *Unit) Run(ctx context.Context, args []any) (any, error) {
	if err := u.Validate(ctx, args); err != nil {
		return nil, err
	}
	converted, err := u.convertArgs(args)
	if err != nil {
		return nil, err
	}
	if u.callback == nil {
		return nil, fnerr.NewCallbackError(errors.New("no callback registered"))
	}
	return invoke(ctx, u.callback, converted)
}

func (u *Unit) convertArgs(args []any) ([]any, error) {
	converted := make([]any, len(args))
	for i, f := range u.fields {
		v, err := f.ConvertArg(i, args[i])
		if err != nil {
			return nil, err
		}
		converted[i] = v
		raw, _ := field.Stringify(args[i])
		u.log.Debug(fmt.Sprintf("%s - Converted %q to %v", logPrefix, raw, v))
	}
	return converted, nil
}

func invoke(ctx context.Context, cb Callback, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok {
				perr = fmt.Errorf("%v", r)
			}
			result, err = nil, fnerr.NewCallbackError(perr)
		}
	}()

	result, err = cb(ctx, args)
	if err != nil {
		return nil, fnerr.NewCallbackError(err)
	}
	return result, nil
}
