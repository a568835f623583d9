package invokable

import (
	"context"
	"fmt"
	"reflect"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// FromFunc adapts an ordinary Go function to a Callback by spreading the
// converted arguments onto its parameters. fn may take a leading
// context.Context and may return (), (R), (error) or (R, error).
//
// Arguments are assigned when their type allows it and otherwise converted
// between numeric kinds, string kinds, bool kinds and, element by element,
// slices. A nil argument becomes the zero value of its parameter.
func FromFunc(fn any) (Callback, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%s - expected a function, got %T", logPrefix, fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("%s - variadic functions are not supported: %s", logPrefix, ft)
	}

	withCtx := ft.NumIn() > 0 && ft.In(0) == contextType
	first := 0
	if withCtx {
		first = 1
	}

	switch ft.NumOut() {
	case 0, 1:
	case 2:
		if ft.Out(1) != errorType {
			return nil, fmt.Errorf("%s - second result must be error: %s", logPrefix, ft)
		}
	default:
		return nil, fmt.Errorf("%s - too many results: %s", logPrefix, ft)
	}

	params := make([]reflect.Type, 0, ft.NumIn()-first)
	for i := first; i < ft.NumIn(); i++ {
		params = append(params, ft.In(i))
	}

	return func(ctx context.Context, args []any) (any, error) {
		if len(args) != len(params) {
			return nil, fmt.Errorf("%s - function takes %d arguments but got %d", logPrefix, len(params), len(args))
		}
		in := make([]reflect.Value, 0, ft.NumIn())
		if withCtx {
			in = append(in, reflect.ValueOf(&ctx).Elem())
		}
		for i, arg := range args {
			v, err := coerce(arg, params[i])
			if err != nil {
				return nil, fmt.Errorf("%s - argument %d: %w", logPrefix, i, err)
			}
			in = append(in, v)
		}
		return results(fv.Call(in))
	}, nil
}

// MustFunc is like FromFunc but panics on an unsupported function type.
func MustFunc(fn any) Callback {
	cb, err := FromFunc(fn)
	if err != nil {
		panic(err)
	}
	return cb
}

func results(out []reflect.Value) (any, error) {
	if len(out) == 0 {
		return nil, nil
	}
	last := out[len(out)-1]
	if last.Type() == errorType {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		if len(out) == 1 {
			return nil, nil
		}
	}
	return out[0].Interface(), nil
}

func coerce(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}

	switch {
	case isNumeric(v.Kind()) && isNumeric(t.Kind()),
		v.Kind() == reflect.String && t.Kind() == reflect.String,
		v.Kind() == reflect.Bool && t.Kind() == reflect.Bool:
		return v.Convert(t), nil
	case v.Kind() == reflect.Slice && t.Kind() == reflect.Slice:
		if v.Type().ConvertibleTo(t) {
			return v.Convert(t), nil
		}
		out := reflect.MakeSlice(t, v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			e, err := coerce(v.Index(i).Interface(), t.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(e)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, t)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
