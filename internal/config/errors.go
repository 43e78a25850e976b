package config

import (
	"errors"
	"fmt"
)

// ErrConfigurationInvalid marks bad settings, profiles or collection
// inputs. Nothing is processed when it is returned.
var ErrConfigurationInvalid = errors.New("configuration invalid")

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfigurationInvalid, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool {
	return target == ErrConfigurationInvalid
}

// Invalid builds a *ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func wrapInvalid(field string, err error) error {
	return &ValidationError{Field: field, Reason: err.Error(), Err: err}
}
