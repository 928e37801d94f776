package expand

import (
	"errors"
	"fmt"
)

// ErrZeroStep is returned for a numeric range whose step is zero.
var ErrZeroStep = errors.New("range step must not be zero")

// UnknownPlaceholderError is returned when a template references a name that
// no option declares.
type UnknownPlaceholderError struct {
	Name string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("template references unknown key %q", e.Name)
}

// DuplicateOptionError is returned when the same option name is declared twice.
type DuplicateOptionError struct {
	Name string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("option %q declared more than once", e.Name)
}
