package chart

import "fmt"

// ErrInvalidInput is returned for malformed birth data.
var ErrInvalidInput = fmt.Errorf("invalid birth input")

// ErrUnsupportedYear is returned for years outside the supported range, or,
// under PrecisionStrict, for instants without tabulated solar terms.
var ErrUnsupportedYear = fmt.Errorf("unsupported year")

// InputError describes which input field was rejected. It unwraps to
// ErrInvalidInput.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
