// Package calerr declares the error kinds shared by the calendar engines.
package calerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate reports a field outside the valid range of its calendar.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidPrecision reports a declared precision that does not match the
	// fields supplied.
	ErrInvalidPrecision = errors.New("invalid precision")

	// ErrUnsupportedConversion reports a calendar pair with no conversion path.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrSearchDidNotConverge reports a bounded search that hit its iteration cap.
	ErrSearchDidNotConverge = errors.New("search did not converge")
)

// InvalidDate wraps ErrInvalidDate with a formatted detail message.
func InvalidDate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDate, fmt.Sprintf(format, args...))
}

// InvalidPrecision wraps ErrInvalidPrecision with a formatted detail message.
func InvalidPrecision(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPrecision, fmt.Sprintf(format, args...))
}

// UnsupportedConversion wraps ErrUnsupportedConversion.
func UnsupportedConversion(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedConversion, fmt.Sprintf(format, args...))
}

// NotConverged wraps ErrSearchDidNotConverge.
func NotConverged(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSearchDidNotConverge, fmt.Sprintf(format, args...))
}
