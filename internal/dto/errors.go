package dto

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("errRecordNotFound")
	ErrValidation = errors.New("errValidation")
)

// ValidationError — некорректный ввод либо неуспешная запись при создании.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("invalid value in field '%s': %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
