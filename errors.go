package peoplecount

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every configuration error
var ErrConfiguration = errors.New("configuration error")

// ConfigError describes an invalid configuration field
type ConfigError struct {
	// Field is the name of the configuration field at fault
	Field string
	// Err is the underlying cause
	Err error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrConfiguration, e.Field, e.Err)
}

// Unwrap returns ErrConfiguration and the underlying cause so both can be
// matched with errors.Is
func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

func configErr(field string, err error) error {
	return &ConfigError{Field: field, Err: err}
}
