package diskcompact

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// DiskMapError is an error carrying one of the sentinel causes below, optionally
// with a more specific message or an underlying error attached.
type DiskMapError interface {
	error
	WithMessage(message string) DiskMapError
	Wrap(err error) DiskMapError
}

type baseError string

var ErrUsage = baseError("Invalid usage")
var ErrEmptyInput = baseError("Empty disk map")
var ErrMalformedInput = baseError("Malformed disk map")
var ErrIOFailed = baseError("Input/output error")
var ErrArgumentOutOfRange = baseError("Numerical argument out of domain")
var ErrBlockConflict = baseError("Block already allocated")
var ErrChecksumMismatch = baseError("Checksum mismatch")

func (e baseError) Error() string {
	return string(e)
}

func (e baseError) WithMessage(message string) DiskMapError {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), message),
		originalError: e,
	}
}

func (e baseError) Wrap(err error) DiskMapError {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customError) Error() string {
	return e.message
}

func (e customError) WithMessage(message string) DiskMapError {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customError) Wrap(err error) DiskMapError {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customError) Unwrap() error {
	return e.originalError
}
