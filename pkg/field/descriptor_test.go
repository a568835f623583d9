package field

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/morezero/functioneer/pkg/fnerr"
)

func TestDescriptor_Accessors(t *testing.T) {
	d := New("test", String, "test description")

	if d.Name() != "test" {
		t.Errorf("field:descriptor_test - Name() = %q, want %q", d.Name(), "test")
	}
	if d.Type() != String {
		t.Errorf("field:descriptor_test - Type() = %v, want %v", d.Type(), String)
	}
	if d.Description() != "test description" {
		t.Errorf("field:descriptor_test - Description() = %q, want %q", d.Description(), "test description")
	}
	if d.HasValidator() {
		t.Error("field:descriptor_test - HasValidator() = true, want false")
	}
}

func TestDescriptor_Validate(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		typ     Type
		value   string
		wantMsg string
	}{
		{name: "string ok", typ: String, value: "test"},
		{name: "string empty", typ: String, value: "", wantMsg: "Invalid string length for field test"},
		{name: "number ok", typ: Number, value: "123"},
		{name: "number prefix ok", typ: Number, value: "12px"},
		{name: "number bad", typ: Number, value: "test", wantMsg: "Invalid number for field test"},
		{name: "boolean ok", typ: Boolean, value: "true"},
		{name: "boolean upper ok", typ: Boolean, value: "TRUE"},
		{name: "boolean false ok", typ: Boolean, value: "false"},
		{name: "boolean bad", typ: Boolean, value: "test", wantMsg: "Invalid boolean for field test"},
		{name: "array ok", typ: Array, value: "[1,2,3]"},
		{name: "array empty", typ: Array, value: "[]", wantMsg: "Invalid JSON array for field test"},
		{name: "array object", typ: Array, value: `{"a":1}`, wantMsg: "Invalid JSON array for field test"},
		{name: "array bad", typ: Array, value: "test", wantMsg: "Invalid JSON array for field test"},
		{name: "base64 ok", typ: Base64Bytes, value: "dGVzdA=="},
		{name: "base64 bad", typ: Base64Bytes, value: "123", wantMsg: "Invalid base64 string for field test"},
		{name: "unknown type", typ: Type(42), value: "x", wantMsg: "Invalid field type Type(42) for field test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("test", tt.typ, "test description").Validate(ctx, tt.value)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("field:descriptor_test - unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("field:descriptor_test - expected %q, got nil", tt.wantMsg)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("field:descriptor_test - error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !errors.Is(err, fnerr.ErrValidation) {
				t.Errorf("field:descriptor_test - expected a validation error, got code %q", fnerr.CodeOf(err))
			}
		})
	}
}

func TestDescriptor_ValidatorIgnoredForBuiltins(t *testing.T) {
	called := false
	d := New("n", Number, "", WithValidator(func(context.Context, string) (bool, error) {
		called = true
		return false, nil
	}))

	if err := d.Validate(context.Background(), "5"); err != nil {
		t.Fatalf("field:descriptor_test - unexpected error: %v", err)
	}
	if called {
		t.Error("field:descriptor_test - validator should not run for a number field")
	}
}

func TestDescriptor_ValidateCustom(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("lookup failed")
	tests := []struct {
		name    string
		opts    []Option
		wantMsg string
		wantErr error
	}{
		{
			name: "passes",
			opts: []Option{WithValidator(Predicate(func(string) bool { return true }))},
		},
		{
			name:    "no validator",
			wantMsg: "Custom validation is undefined for field test",
		},
		{
			name:    "returns false",
			opts:    []Option{WithValidator(Predicate(func(string) bool { return false }))},
			wantMsg: "Custom validation failed for field test",
		},
		{
			name: "returns error",
			opts: []Option{WithValidator(func(context.Context, string) (bool, error) {
				return false, cause
			})},
			wantMsg: "lookup failed",
			wantErr: cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("test", Custom, "test description", tt.opts...).Validate(ctx, "123")
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("field:descriptor_test - unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantMsg {
				t.Fatalf("field:descriptor_test - error = %v, want %q", err, tt.wantMsg)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("field:descriptor_test - expected cause %v to be wrapped", tt.wantErr)
			}
		})
	}
}

func TestDescriptor_ValidateCustom_ReceivesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var seen any
	d := New("c", Custom, "", WithValidator(func(ctx context.Context, value string) (bool, error) {
		seen = ctx.Value(key{})
		return value == "ok", nil
	}))

	if err := d.Validate(ctx, "ok"); err != nil {
		t.Fatalf("field:descriptor_test - unexpected error: %v", err)
	}
	if seen != "marker" {
		t.Errorf("field:descriptor_test - validator saw %v, want the caller's context", seen)
	}
}

func TestDescriptor_ValidateArg(t *testing.T) {
	ctx := context.Background()

	err := New("b", Number, "").ValidateArg(ctx, 1, "x")
	var fe *fnerr.Error
	if !errors.As(err, &fe) {
		t.Fatalf("field:descriptor_test - expected *fnerr.Error, got %T", err)
	}
	if fe.Field != "b" || fe.Index != 1 || fe.FieldType != "number" {
		t.Errorf("field:descriptor_test - error fields = (%q, %d, %q), want (b, 1, number)", fe.Field, fe.Index, fe.FieldType)
	}

	if err := New("a", Number, "").ValidateArg(ctx, 0, 12); err != nil {
		t.Errorf("field:descriptor_test - native int should validate: %v", err)
	}
	if err := New("a", Boolean, "").ValidateArg(ctx, 0, true); err != nil {
		t.Errorf("field:descriptor_test - native bool should validate: %v", err)
	}
	if err := New("a", Array, "").ValidateArg(ctx, 0, []int{1, 2}); err != nil {
		t.Errorf("field:descriptor_test - native slice should validate: %v", err)
	}
	if err := New("a", Base64Bytes, "").ValidateArg(ctx, 0, []byte("test")); err != nil {
		t.Errorf("field:descriptor_test - native bytes should validate: %v", err)
	}
}

func TestDescriptor_ValidateArg_Missing(t *testing.T) {
	ctx := context.Background()
	called := false
	custom := New("c", Custom, "", WithValidator(Predicate(func(string) bool {
		called = true
		return true
	})))

	tests := []struct {
		d       *Descriptor
		wantMsg string
	}{
		{New("s", String, ""), "Invalid string length for field s"},
		{New("n", Number, ""), "Invalid number for field n"},
		{New("b", Boolean, ""), "Invalid boolean for field b"},
		{New("a", Array, ""), "Invalid JSON array for field a"},
		{New("x", Base64Bytes, ""), "Invalid base64 string for field x"},
		{custom, "Custom validation failed for field c"},
	}
	for _, tt := range tests {
		err := tt.d.ValidateArg(ctx, 0, nil)
		if err == nil || err.Error() != tt.wantMsg {
			t.Errorf("field:descriptor_test - ValidateArg(nil) for %s = %v, want %q", tt.d.Name(), err, tt.wantMsg)
		}
	}
	if called {
		t.Error("field:descriptor_test - custom validator should not run for a missing value")
	}
}

func TestDescriptor_Convert(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		value string
		want  any
	}{
		{"string", String, "test", "test"},
		{"number", Number, "123", int64(123)},
		{"number prefix", Number, "-8kg", int64(-8)},
		{"boolean true", Boolean, "true", true},
		{"boolean upper", Boolean, "TRUE", true},
		{"boolean other", Boolean, "anything", false},
		{"array", Array, "[1,2,3]", []any{float64(1), float64(2), float64(3)}},
		{"base64", Base64Bytes, "dGVzdA==", []byte{116, 101, 115, 116}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New("test", tt.typ, "").Convert(tt.value)
			if err != nil {
				t.Fatalf("field:descriptor_test - unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("field:descriptor_test - Convert mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDescriptor_ConvertCustom(t *testing.T) {
	_, err := New("c", Custom, "").Convert("x")
	if !errors.Is(err, fnerr.ErrConversion) {
		t.Fatalf("field:descriptor_test - expected conversion error, got %v", err)
	}
	if err.Error() != "Unsupported conversion for custom field c" {
		t.Errorf("field:descriptor_test - error = %q", err.Error())
	}

	upper := New("c", Custom, "", WithConverter(func(v string) (any, error) {
		return v + "!", nil
	}))
	got, err := upper.Convert("x")
	if err != nil {
		t.Fatalf("field:descriptor_test - unexpected error: %v", err)
	}
	if got != "x!" {
		t.Errorf("field:descriptor_test - Convert = %v, want %q", got, "x!")
	}

	failing := New("c", Custom, "", WithConverter(func(string) (any, error) {
		return nil, errors.New("no such color")
	}))
	if _, err := failing.ConvertArg(2, "x"); err == nil || err.Error() != "no such color" {
		t.Errorf("field:descriptor_test - ConvertArg error = %v, want %q", err, "no such color")
	}
}
