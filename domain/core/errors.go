package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input contract violations (empty or degenerate samples where not tolerated)
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptySample  = fmt.Errorf("%w: empty sample", ErrInvalidInput)

	// Enum-valued configuration outside its recognized set
	ErrInvalidOption = errors.New("invalid option")

	// Numeric configuration outside its valid interval
	ErrInvalidRange = errors.New("invalid range")
)

// Error constructors with context
func NewInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

func NewOptionError(option string, value string, allowed string) error {
	return fmt.Errorf("%w: %s=%q, use one of %s", ErrInvalidOption, option, value, allowed)
}

func NewRangeError(option string, value interface{}, interval string) error {
	return fmt.Errorf("%w: %s=%v outside %s", ErrInvalidRange, option, value, interval)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsOptionError(err error) bool {
	return errors.Is(err, ErrInvalidOption)
}

func IsRangeError(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}
