package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError covers malformed user input: non-numeric or non-positive
// quantities, missing required selections. The operation aborts with no
// state change and the message is surfaced as an advisory notification.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// OverAllocationError is returned when an allocation (or a line replacement)
// would exceed the order line's quantity beyond the shared tolerance.
type OverAllocationError struct {
	Message string
}

func (e *OverAllocationError) Error() string {
	return e.Message
}

func NewOverAllocationError(format string, args ...interface{}) error {
	return &OverAllocationError{Message: fmt.Sprintf(format, args...)}
}

// ContainerOverloadError is returned when loading an item would exceed the
// container capacity. The capacity check is strict, no tolerance.
type ContainerOverloadError struct {
	Message string
}

func (e *ContainerOverloadError) Error() string {
	return e.Message
}

func NewContainerOverloadError(format string, args ...interface{}) error {
	return &ContainerOverloadError{Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError is returned when a destructive operation is attempted
// without admin mode enabled.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(format string, args ...interface{}) error {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsOverAllocationError(err error) bool {
	var oe *OverAllocationError
	return errors.As(err, &oe)
}

func IsContainerOverloadError(err error) bool {
	var ce *ContainerOverloadError
	return errors.As(err, &ce)
}

func IsAuthorizationError(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}
