// Package fnerr defines the error kinds raised while validating, converting and
// invoking registered functions.
package fnerr

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	CodeArity      = "ARITY_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeConversion = "CONVERSION_ERROR"
	CodeLookup     = "LOOKUP_ERROR"
	CodeCallback   = "CALLBACK_ERROR"
)

// Error is a structured dispatch error. Error() returns Message unchanged so it
// can be placed in a result envelope as-is.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Field, Index and FieldType identify the offending field for validation
	// and conversion errors. Index is -1 when no field is involved.
	Field     string `json:"field,omitempty"`
	Index     int    `json:"index"`
	FieldType string `json:"fieldType,omitempty"`

	Err error `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code. A target without
// a message matches any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// Sentinels usable with errors.Is to test only the kind of an error.
var (
	ErrArity      = &Error{Code: CodeArity, Index: -1}
	ErrValidation = &Error{Code: CodeValidation, Index: -1}
	ErrConversion = &Error{Code: CodeConversion, Index: -1}
	ErrLookup     = &Error{Code: CodeLookup, Index: -1}
	ErrCallback   = &Error{Code: CodeCallback, Index: -1}
)

// NewArityError reports an argument count mismatch.
func NewArityError(expected, got int) *Error {
	return &Error{
		Code:    CodeArity,
		Message: fmt.Sprintf("Invalid number of arguments. Expected %d but got %d", expected, got),
		Index:   -1,
	}
}

// NewValidationError reports a field value that failed its type rule.
func NewValidationError(field string, index int, fieldType, message string) *Error {
	return &Error{
		Code:      CodeValidation,
		Message:   message,
		Field:     field,
		Index:     index,
		FieldType: fieldType,
	}
}

// NewConversionError reports a field type that has no conversion.
func NewConversionError(field string, index int, fieldType, message string) *Error {
	return &Error{
		Code:      CodeConversion,
		Message:   message,
		Field:     field,
		Index:     index,
		FieldType: fieldType,
	}
}

// NewLookupError reports a missing function or function name.
func NewLookupError(message string) *Error {
	return &Error{Code: CodeLookup, Message: message, Index: -1}
}

// NewCallbackError wraps an error returned by a registered callback. Errors
// that already are an *Error are returned unchanged.
func NewCallbackError(err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Code: CodeCallback, Message: err.Error(), Index: -1, Err: err}
}

// CodeOf returns the code of err, or CodeCallback for foreign errors and the
// empty string for nil.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return CodeCallback
}
