package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/protocomb/protocomb/wire"
)

// Message-level decoding errors.
var (
	ErrWireTypeMismatch     = errors.New("wire type mismatch")
	ErrMissingRequiredField = errors.New("missing required field")
)

// FieldError represents a decoding error with the path of field numbers
// leading to the failing value, e.g. "4.2.1" for a nested message field.
type FieldError struct {
	Path []wire.FieldNumber // outermost field first
	Err  error              // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}

	parts := make([]string, len(e.Path))
	for i, n := range e.Path {
		parts[i] = strconv.Itoa(int(n))
	}
	return fmt.Sprintf("error at field %s: %v", strings.Join(parts, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// wrapWithField prepends a field number to the error's path.
func wrapWithField(err error, number wire.FieldNumber) error {
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{
			Path: append([]wire.FieldNumber{number}, fe.Path...),
			Err:  fe.Err,
		}
	}

	return &FieldError{
		Path: []wire.FieldNumber{number},
		Err:  err,
	}
}
