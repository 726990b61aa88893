// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrQuoteNotFound  = errors.New("contract not found in chain")
	ErrInvalidOrder   = errors.New("invalid order")
	ErrDatabaseError  = errors.New("database error")
	ErrConfigInvalid  = errors.New("invalid configuration")
)

// FeedError represents an error from the upstream price feed.
type FeedError struct {
	Provider string
	Symbol   string
	Status   int
	Err      error
}

func (e *FeedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("feed error [%s] %s: status %d", e.Provider, e.Symbol, e.Status)
	}
	return fmt.Sprintf("feed error [%s] %s: %v", e.Provider, e.Symbol, e.Err)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// NewFeedError creates a new FeedError.
func NewFeedError(provider, symbol string, status int, err error) *FeedError {
	return &FeedError{
		Provider: provider,
		Symbol:   symbol,
		Status:   status,
		Err:      err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
