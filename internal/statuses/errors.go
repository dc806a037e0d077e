package statuses

import (
	"errors"
	"fmt"
)

var (
	ErrStatusRepositoryRequired = errors.New("statuses: repository required")
	ErrStatusNameRequired       = errors.New("statuses: name is required")
	ErrStatusNameInvalid        = errors.New("statuses: name is invalid")
	ErrStatusNameExists         = errors.New("statuses: name already exists")
	ErrStatusNotFound           = errors.New("statuses: status not found")
)

// ValidationError reports rejected catalog input. Nothing is persisted when
// it is returned.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("statuses: invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
